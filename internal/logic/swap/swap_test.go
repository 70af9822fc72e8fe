package swap

import (
	"context"
	"net/url"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jupkit/internal/client"
	"jupkit/internal/global"
	"jupkit/internal/journal"
	"jupkit/internal/logic/logictest"
	"jupkit/internal/types"
)

func TestSwap(t *testing.T) {
	env := logictest.New(t)
	var query url.Values
	env.WithJupiter(t, logictest.Jupiter(t, env.Payer(), func(q url.Values) { query = q }))

	resp, err := NewSwap(context.Background(), env.Svc).Swap(&types.SwapRequest{
		InputMint: global.JUPMint.String(),
		Amount:    1_000_000,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(512345), resp.OutAmount)
	assert.Equal(t, uint64(507221), resp.MinOut)
	assert.Equal(t, "Meteora DLMM", resp.Route)
	assert.NotEmpty(t, resp.Signature)

	assert.Equal(t, global.USDTMint.String(), query.Get("outputMint"))
	assert.Equal(t, "100", query.Get("slippageBps"))
	assert.Equal(t, "1000000", query.Get("amount"))

	sent := env.RPC.Sent()
	require.Len(t, sent, 1)
	require.NoError(t, sent[0].VerifySignatures())
	assert.Equal(t, env.Payer(), sent[0].Message.AccountKeys[0])

	entry, err := env.Svc.Journal.Get(context.Background(), resp.Signature)
	require.NoError(t, err)
	assert.Equal(t, journal.KindSwap, entry.Kind)
	assert.Equal(t, journal.StatusConfirmed, entry.Status)
}

func TestSwapMinOutGuard(t *testing.T) {
	env := logictest.New(t)
	env.WithJupiter(t, logictest.Jupiter(t, env.Payer(), nil))

	_, err := NewSwap(context.Background(), env.Svc).Swap(&types.SwapRequest{
		InputMint: global.JUPMint.String(),
		Amount:    1_000_000,
		MinOut:    600_000,
	})
	assert.ErrorIs(t, err, client.ErrQuoteBelowMinimum)
	assert.Empty(t, env.RPC.Sent())
}

func TestSwapTransactionFailed(t *testing.T) {
	env := logictest.New(t)
	env.WithJupiter(t, logictest.Jupiter(t, env.Payer(), nil))
	env.RPC.StatusErr = map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}}

	resp, err := NewSwap(context.Background(), env.Svc).Swap(&types.SwapRequest{
		InputMint: global.JUPMint.String(),
		Amount:    1_000_000,
	})
	assert.ErrorIs(t, err, client.ErrTransactionFailed)
	require.NotNil(t, resp)
	require.NotEmpty(t, resp.Signature)

	entry, err := env.Svc.Journal.Get(context.Background(), resp.Signature)
	require.NoError(t, err)
	assert.Equal(t, journal.StatusFailed, entry.Status)
	assert.NotEmpty(t, entry.Error)
}

func TestSwapDryRun(t *testing.T) {
	env := logictest.New(t)
	env.WithJupiter(t, logictest.Jupiter(t, env.Payer(), nil))
	env.Svc.DryRun = true

	resp, err := NewSwap(context.Background(), env.Svc).Swap(&types.SwapRequest{
		InputMint:  global.JUPMint.String(),
		OutputMint: solana.SolMint.String(),
		Amount:     1_000_000,
	})
	require.NoError(t, err)
	assert.True(t, resp.Simulated)
	assert.Empty(t, env.RPC.Sent())
	assert.Len(t, env.RPC.Simulated(), 1)
}
