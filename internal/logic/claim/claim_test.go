package claim

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jupkit/internal/global"
	"jupkit/internal/journal"
	"jupkit/internal/logic"
	"jupkit/internal/logic/logictest"
	"jupkit/internal/pda"
	"jupkit/internal/types"
	"jupkit/pkg/ata"
	"jupkit/pkg/distributor"
)

func proofHandler(tree solana.PublicKey, amount uint64) http.HandlerFunc {
	node := make([]string, 32)
	for i := range node {
		node[i] = fmt.Sprint(i + 1)
	}
	body := fmt.Sprintf(`{"merkle_tree":%q,"amount":%d,"locked_amount":0,"proof":[[%s]]}`, tree, amount, strings.Join(node, ","))
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestClaim(t *testing.T) {
	tree := solana.NewWallet().PublicKey()
	env := logictest.New(t).WithProofs(t, proofHandler(tree, 2_500_000))
	env.RPC.SetMint(global.JUPMint, solana.TokenProgramID, 6, 10_000_000_000)

	resp, err := NewClaim(context.Background(), env.Svc).Claim(&types.ClaimRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2_500_000), resp.Amount)
	assert.Equal(t, "2.500000", resp.UIAmount)
	assert.NotEmpty(t, resp.Signature)
	// 5000 base + ceil(150000 * 56000 / 1e6) priority
	assert.Equal(t, uint64(13_400), resp.MaxFee)

	sent := env.RPC.Sent()
	require.Len(t, sent, 1)
	tx := sent[0]
	programs := logictest.Programs(t, tx)
	require.Len(t, programs, 4)
	assert.Equal(t, computebudget.ProgramID, programs[0])
	assert.Equal(t, computebudget.ProgramID, programs[1])
	assert.Equal(t, ata.ProgramID, programs[2])
	assert.Equal(t, distributor.ProgramID, programs[3])

	_, _, data := logictest.Instruction(t, tx, 0)
	assert.Equal(t, []byte{0x02, 0xf0, 0x49, 0x02, 0x00}, data)

	_, accounts, data := logictest.Instruction(t, tx, 3)
	decoded, err := distributor.DecodeInstruction(accounts, data)
	require.NoError(t, err)
	claim := decoded.Impl.(*distributor.NewClaim)
	assert.Equal(t, uint64(2_500_000), claim.AmountUnlocked)
	require.Len(t, claim.Proof, 1)
	assert.Equal(t, byte(32), claim.Proof[0][31])

	status, _, err := pda.DeriveClaimStatusPDA(distributor.ProgramID, env.Payer(), tree)
	require.NoError(t, err)
	vault, _, _ := ata.Find(tree, global.JUPMint, solana.TokenProgramID)
	dest, _, _ := ata.Find(env.Payer(), global.JUPMint, solana.TokenProgramID)
	assert.Equal(t, tree, claim.GetDistributorAccount().PublicKey)
	assert.Equal(t, status, claim.GetClaimStatusAccount().PublicKey)
	assert.Equal(t, vault, claim.GetFromAccount().PublicKey)
	assert.Equal(t, dest, claim.GetToAccount().PublicKey)
	assert.True(t, claim.GetClaimantAccount().IsSigner)

	entry, err := env.Svc.Journal.Get(context.Background(), resp.Signature)
	require.NoError(t, err)
	assert.Equal(t, journal.KindClaim, entry.Kind)
	assert.Equal(t, journal.StatusConfirmed, entry.Status)
}

func TestClaimSkipsExistingTokenAccount(t *testing.T) {
	tree := solana.NewWallet().PublicKey()
	env := logictest.New(t).WithProofs(t, proofHandler(tree, 1))
	env.RPC.SetMint(global.JUPMint, solana.Token2022ProgramID, 6, 1)
	dest, _, _ := ata.Find(env.Payer(), global.JUPMint, solana.Token2022ProgramID)
	env.RPC.SetAccount(dest, solana.Token2022ProgramID, make([]byte, 165))

	_, err := NewClaim(context.Background(), env.Svc).Claim(&types.ClaimRequest{})
	require.NoError(t, err)

	sent := env.RPC.Sent()
	require.Len(t, sent, 1)
	programs := logictest.Programs(t, sent[0])
	require.Len(t, programs, 3)
	assert.Equal(t, distributor.ProgramID, programs[2])

	_, accounts, _ := logictest.Instruction(t, sent[0], 2)
	assert.Equal(t, solana.Token2022ProgramID, accounts[5].PublicKey)
}

func TestClaimNoAllocation(t *testing.T) {
	env := logictest.New(t).WithProofs(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	resp, err := NewClaim(context.Background(), env.Svc).Claim(&types.ClaimRequest{})
	require.NoError(t, err)
	assert.Zero(t, resp.Amount)
	assert.Empty(t, env.RPC.Sent())
}

func TestClaimAlreadyClaimed(t *testing.T) {
	tree := solana.NewWallet().PublicKey()
	env := logictest.New(t).WithProofs(t, proofHandler(tree, 5))
	status, _, err := pda.DeriveClaimStatusPDA(distributor.ProgramID, env.Payer(), tree)
	require.NoError(t, err)
	env.RPC.SetAccount(status, distributor.ProgramID, make([]byte, 64))

	resp, err := NewClaim(context.Background(), env.Svc).Claim(&types.ClaimRequest{})
	assert.ErrorIs(t, err, logic.ErrAlreadyClaimed)
	require.NotNil(t, resp)
	assert.Zero(t, resp.Amount)
	assert.Equal(t, status.String(), resp.ClaimStatus)
	assert.Empty(t, env.RPC.Sent())
}

func TestClaimStatusLookupFailureAborts(t *testing.T) {
	tree := solana.NewWallet().PublicKey()
	env := logictest.New(t).WithProofs(t, proofHandler(tree, 5))
	status, _, _ := pda.DeriveClaimStatusPDA(distributor.ProgramID, env.Payer(), tree)
	env.RPC.FailAccount(status)

	_, err := NewClaim(context.Background(), env.Svc).Claim(&types.ClaimRequest{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, logic.ErrAlreadyClaimed)
	assert.Empty(t, env.RPC.Sent())
}

func TestClaimProofServerError(t *testing.T) {
	env := logictest.New(t).WithProofs(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := NewClaim(context.Background(), env.Svc).Claim(&types.ClaimRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestClaimDryRun(t *testing.T) {
	tree := solana.NewWallet().PublicKey()
	env := logictest.New(t).WithProofs(t, proofHandler(tree, 7))
	env.RPC.SetMint(global.JUPMint, solana.TokenProgramID, 6, 1)
	env.Svc.DryRun = true

	resp, err := NewClaim(context.Background(), env.Svc).Claim(&types.ClaimRequest{})
	require.NoError(t, err)
	assert.True(t, resp.Simulated)
	assert.Empty(t, resp.Signature)
	assert.Equal(t, uint64(4242), resp.UnitsConsumed)
	assert.Contains(t, resp.Tree, "NewClaim")
	assert.Empty(t, env.RPC.Sent())
	assert.Len(t, env.RPC.Simulated(), 1)

	entries, err := env.Svc.Journal.ListByWallet(context.Background(), env.Payer().String(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, journal.StatusSimulated, entries[0].Status)
}
