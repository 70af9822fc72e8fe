package vote

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jupkit/internal/client"
	"jupkit/internal/global"
	"jupkit/internal/journal"
	"jupkit/internal/logic"
	"jupkit/internal/logic/logictest"
	"jupkit/internal/pda"
	"jupkit/internal/types"
	"jupkit/pkg/govern"
	"jupkit/pkg/lockedvoter"
)

func TestParseSide(t *testing.T) {
	for in, want := range map[string]uint8{"for": 2, "against": 1, "abstain": 3, "1": 1, "3": 3} {
		got, err := ParseSide(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"0", "4", "maybe", "-1", ""} {
		_, err := ParseSide(in)
		assert.ErrorIs(t, err, ErrInvalidSide, in)
	}
}

func withEscrow(t *testing.T, env *logictest.Env) solana.PublicKey {
	escrow, _, err := pda.DeriveEscrowPDA(lockedvoter.ProgramID, global.JupLocker, env.Payer())
	require.NoError(t, err)
	env.RPC.SetAccount(escrow, lockedvoter.ProgramID, make([]byte, 200))
	return escrow
}

func TestVote(t *testing.T) {
	env := logictest.New(t)
	escrow := withEscrow(t, env)
	proposal := solana.NewWallet().PublicKey()

	resp, err := NewVote(context.Background(), env.Svc).Vote(&types.VoteRequest{Proposal: proposal.String(), Side: govern.SideFor})
	require.NoError(t, err)
	assert.True(t, resp.Voted)

	votePDA, _, err := pda.DeriveVotePDA(govern.ProgramID, proposal, env.Payer())
	require.NoError(t, err)
	assert.Equal(t, votePDA.String(), resp.Vote)

	sent := env.RPC.Sent()
	require.Len(t, sent, 1)
	tx := sent[0]
	assert.Equal(t, []solana.PublicKey{
		computebudget.ProgramID,
		computebudget.ProgramID,
		govern.ProgramID,
		lockedvoter.ProgramID,
	}, logictest.Programs(t, tx))

	_, accounts, data := logictest.Instruction(t, tx, 2)
	decoded, err := govern.DecodeInstruction(accounts, data)
	require.NoError(t, err)
	newVote := decoded.Impl.(*govern.NewVote)
	assert.Equal(t, env.Payer(), newVote.Voter)
	assert.Equal(t, votePDA, newVote.GetVoteAccount().PublicKey)

	_, accounts, data = logictest.Instruction(t, tx, 3)
	decodedCast, err := lockedvoter.DecodeInstruction(accounts, data)
	require.NoError(t, err)
	cast := decodedCast.Impl.(*lockedvoter.CastVote)
	assert.Equal(t, govern.SideFor, cast.Side)
	assert.Equal(t, escrow, accounts[1].PublicKey)
	assert.True(t, accounts[2].IsSigner)
	assert.Equal(t, proposal, accounts[3].PublicKey)
	assert.Equal(t, votePDA, accounts[4].PublicKey)
	assert.Equal(t, global.JupGovernor, accounts[5].PublicKey)
	assert.Equal(t, govern.ProgramID, accounts[6].PublicKey)

	entries, err := env.Svc.Journal.ListByWallet(context.Background(), env.Payer().String(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, journal.KindVote, entries[0].Kind)
}

func TestVoteAlreadyVoted(t *testing.T) {
	env := logictest.New(t)
	withEscrow(t, env)
	proposal := solana.NewWallet().PublicKey()
	votePDA, _, _ := pda.DeriveVotePDA(govern.ProgramID, proposal, env.Payer())
	env.RPC.SetAccount(votePDA, govern.ProgramID, []byte{1, 2, 3})

	resp, err := NewVote(context.Background(), env.Svc).Vote(&types.VoteRequest{Proposal: proposal.String(), Side: govern.SideAgainst})
	require.NoError(t, err)
	assert.False(t, resp.Voted)
	assert.True(t, resp.AlreadyVoted)
	assert.Empty(t, env.RPC.Sent())
}

func TestVoteTransactionFailed(t *testing.T) {
	env := logictest.New(t)
	withEscrow(t, env)
	env.RPC.StatusErr = map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}}
	proposal := solana.NewWallet().PublicKey()

	resp, err := NewVote(context.Background(), env.Svc).Vote(&types.VoteRequest{Proposal: proposal.String(), Side: govern.SideFor})
	assert.ErrorIs(t, err, client.ErrTransactionFailed)
	require.NotNil(t, resp)
	assert.False(t, resp.Voted)
	assert.False(t, resp.AlreadyVoted)
	assert.NotEmpty(t, resp.Signature)

	entries, err := env.Svc.Journal.ListByWallet(context.Background(), env.Payer().String(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, journal.StatusFailed, entries[0].Status)
}

func TestVoteDryRun(t *testing.T) {
	env := logictest.New(t)
	withEscrow(t, env)
	env.Svc.DryRun = true
	proposal := solana.NewWallet().PublicKey()

	resp, err := NewVote(context.Background(), env.Svc).Vote(&types.VoteRequest{Proposal: proposal.String(), Side: govern.SideAbstain})
	require.NoError(t, err)
	assert.True(t, resp.Simulated)
	assert.False(t, resp.Voted)
	assert.False(t, resp.AlreadyVoted)
	assert.Empty(t, env.RPC.Sent())
}

func TestVoteNoEscrow(t *testing.T) {
	env := logictest.New(t)
	proposal := solana.NewWallet().PublicKey()

	_, err := NewVote(context.Background(), env.Svc).Vote(&types.VoteRequest{Proposal: proposal.String(), Side: govern.SideFor})
	assert.ErrorIs(t, err, logic.ErrNoEscrow)
}

func TestVoteLookupFailureAborts(t *testing.T) {
	env := logictest.New(t)
	withEscrow(t, env)
	proposal := solana.NewWallet().PublicKey()
	votePDA, _, _ := pda.DeriveVotePDA(govern.ProgramID, proposal, env.Payer())
	env.RPC.FailAccount(votePDA)

	_, err := NewVote(context.Background(), env.Svc).Vote(&types.VoteRequest{Proposal: proposal.String(), Side: govern.SideFor})
	require.Error(t, err)
	assert.Empty(t, env.RPC.Sent())
}

func TestVoteRejectsPending(t *testing.T) {
	env := logictest.New(t)
	_, err := NewVote(context.Background(), env.Svc).Vote(&types.VoteRequest{Proposal: solana.NewWallet().PublicKey().String(), Side: govern.SidePending})
	assert.ErrorIs(t, err, ErrInvalidSide)
}
