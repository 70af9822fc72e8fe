package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jupkit/internal/client"
	"jupkit/internal/global"
	"jupkit/internal/logic"
	"jupkit/internal/logic/logictest"
	"jupkit/internal/logic/vote"
	"jupkit/internal/pda"
	"jupkit/internal/types"
	"jupkit/pkg/govern"
	"jupkit/pkg/lockedvoter"
)

func init() {
	color.NoColor = true
}

func sentTx() types.TxResult {
	sig := solana.Signature{1, 2, 3}
	return types.TxResult{Signature: sig.String(), Link: global.TxLink(sig)}
}

func TestPrintTx(t *testing.T) {
	var buf bytes.Buffer
	printTx(&buf, sentTx(), nil)
	assert.Contains(t, buf.String(), "CONFIRMED")

	buf.Reset()
	printTx(&buf, sentTx(), fmt.Errorf("%w: custom", client.ErrTransactionFailed))
	assert.Contains(t, buf.String(), "FAILED")
	assert.Contains(t, buf.String(), "transaction failed")
	assert.NotContains(t, buf.String(), "CONFIRMED")

	buf.Reset()
	printTx(&buf, types.TxResult{}, errors.New("send: blockhash not found"))
	assert.Contains(t, buf.String(), "FAILED send: blockhash not found")

	buf.Reset()
	printTx(&buf, types.TxResult{Simulated: true, Tree: "tree"}, nil)
	assert.Contains(t, buf.String(), "DRY RUN simulated")
}

func TestPrintClaim(t *testing.T) {
	var buf bytes.Buffer
	resp := &types.ClaimResponse{Wallet: "W", TxResult: sentTx()}
	printClaim(&buf, resp, client.ErrBlockhashExpired)
	assert.NotContains(t, buf.String(), "claimed")
	assert.NotContains(t, buf.String(), "SKIP")
	assert.Contains(t, buf.String(), "FAILED")

	buf.Reset()
	printClaim(&buf, &types.ClaimResponse{Wallet: "W"}, fmt.Errorf("%w: status", logic.ErrAlreadyClaimed))
	assert.Contains(t, buf.String(), "SKIP W already claimed")

	buf.Reset()
	printClaim(&buf, &types.ClaimResponse{Wallet: "W"}, nil)
	assert.Contains(t, buf.String(), "SKIP W has no allocation")

	buf.Reset()
	resp = &types.ClaimResponse{Wallet: "W", Amount: 5, UIAmount: "0.000005", TxResult: sentTx()}
	printClaim(&buf, resp, nil)
	assert.Contains(t, buf.String(), "claimed 0.000005 for W")
	assert.Contains(t, buf.String(), "CONFIRMED")
}

func TestPrintVoteFailedTransaction(t *testing.T) {
	env := logictest.New(t)
	escrow, _, err := pda.DeriveEscrowPDA(lockedvoter.ProgramID, global.JupLocker, env.Payer())
	require.NoError(t, err)
	env.RPC.SetAccount(escrow, lockedvoter.ProgramID, make([]byte, 200))
	env.RPC.StatusErr = map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}}

	proposal := solana.NewWallet().PublicKey()
	resp, err := vote.NewVote(context.Background(), env.Svc).Vote(&types.VoteRequest{Proposal: proposal.String(), Side: govern.SideFor})
	require.ErrorIs(t, err, client.ErrTransactionFailed)
	require.NotNil(t, resp)

	var buf bytes.Buffer
	printVote(&buf, resp, err)
	assert.Contains(t, buf.String(), "FAILED "+resp.Link)
	assert.NotContains(t, buf.String(), "already voted")
	assert.NotContains(t, buf.String(), "CONFIRMED")
}

func TestPrintVoteAlreadyVoted(t *testing.T) {
	var buf bytes.Buffer
	printVote(&buf, &types.VoteResponse{Proposal: "P", Side: govern.SideAgainst, AlreadyVoted: true}, nil)
	assert.Equal(t, "SKIP already voted on P (side 1)\n", buf.String())
}
