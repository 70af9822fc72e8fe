package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jupkit/internal/client"
	"jupkit/internal/global"
	"jupkit/internal/logic/logictest"
	"jupkit/internal/types"
)

func withAllocation(t *testing.T, env *logictest.Env) {
	env.RPC.SetMint(global.JUPMint, solana.TokenProgramID, 6, 1)
	node := strings.TrimSuffix(strings.Repeat("7,", 32), ",")
	tree := solana.NewWallet().PublicKey()
	env.WithProofs(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"merkle_tree":%q,"amount":1000000,"locked_amount":0,"proof":[[%s]]}`, tree, node)
	})
}

func TestClaimSwap(t *testing.T) {
	env := logictest.New(t)
	withAllocation(t, env)
	var quoted url.Values
	env.WithJupiter(t, logictest.Jupiter(t, env.Payer(), func(q url.Values) { quoted = q }))

	resp, err := NewClaimSwap(context.Background(), env.Svc).ClaimSwap(&types.ClaimRequest{})
	require.NoError(t, err)
	assert.True(t, resp.ClaimOK)
	assert.Equal(t, uint64(1_000_000), resp.Claim.Amount)
	require.NotNil(t, resp.Swap)
	assert.Equal(t, uint64(512345), resp.Swap.OutAmount)

	assert.Equal(t, "1000000", quoted.Get("amount"))
	assert.Equal(t, global.JUPMint.String(), quoted.Get("inputMint"))
	assert.Equal(t, global.USDTMint.String(), quoted.Get("outputMint"))
	assert.Equal(t, "100", quoted.Get("slippageBps"))
	assert.Len(t, env.RPC.Sent(), 2)
}

func TestClaimSwapNoAllocation(t *testing.T) {
	env := logictest.New(t)
	env.WithProofs(t, func(w http.ResponseWriter, r *http.Request) {})
	env.WithJupiter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected jupiter call %s", r.URL.Path)
	})

	resp, err := NewClaimSwap(context.Background(), env.Svc).ClaimSwap(&types.ClaimRequest{})
	require.NoError(t, err)
	assert.Zero(t, resp.Claim.Amount)
	assert.Nil(t, resp.Swap)
	assert.Empty(t, env.RPC.Sent())
}

func TestClaimSwapQuoteFailsAfterClaim(t *testing.T) {
	env := logictest.New(t)
	withAllocation(t, env)
	env.WithJupiter(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no route"}`, http.StatusBadRequest)
	})

	resp, err := NewClaimSwap(context.Background(), env.Svc).ClaimSwap(&types.ClaimRequest{})
	require.Error(t, err)
	assert.True(t, resp.ClaimOK)
	assert.NotEmpty(t, resp.Claim.Signature)
	assert.Nil(t, resp.Swap)
	assert.Len(t, env.RPC.Sent(), 1)
}

func TestClaimSwapClaimFails(t *testing.T) {
	env := logictest.New(t)
	withAllocation(t, env)
	env.RPC.StatusErr = map[string]interface{}{"InstructionError": []interface{}{2, "Custom"}}
	env.WithJupiter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected jupiter call %s", r.URL.Path)
	})

	resp, err := NewClaimSwap(context.Background(), env.Svc).ClaimSwap(&types.ClaimRequest{})
	assert.ErrorIs(t, err, client.ErrTransactionFailed)
	assert.False(t, resp.ClaimOK)
	assert.Nil(t, resp.Swap)
}
