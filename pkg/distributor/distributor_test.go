package distributor

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"testing"

	solana "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscriminators(t *testing.T) {
	sum := sha256.Sum256([]byte("global:new_claim"))
	assert.Equal(t, sum[:8], NewClaimDiscriminator[:])

	sum = sha256.Sum256([]byte("account:ClaimStatus"))
	assert.Equal(t, sum[:8], ClaimStatusDiscriminator[:])
}

func testClaim(t *testing.T) (*Instruction, []solana.PublicKey) {
	t.Helper()
	keys := make([]solana.PublicKey, 5)
	for i := range keys {
		keys[i] = solana.NewWallet().PublicKey()
	}
	proof := [][32]byte{{1, 2, 3}, {4, 5, 6}}
	inst, err := NewNewClaimInstruction(
		1_000_000, 250_000, proof,
		keys[0], keys[1], keys[2], keys[3], keys[4],
		solana.TokenProgramID,
	).ValidateAndBuild()
	require.NoError(t, err)
	return inst, keys
}

func TestNewClaimData(t *testing.T) {
	inst, _ := testClaim(t)

	data, err := inst.Data()
	require.NoError(t, err)

	want := new(bytes.Buffer)
	want.Write(NewClaimDiscriminator[:])
	binary.Write(want, binary.LittleEndian, uint64(1_000_000))
	binary.Write(want, binary.LittleEndian, uint64(250_000))
	binary.Write(want, binary.LittleEndian, uint32(2))
	want.Write([]byte{1, 2, 3})
	want.Write(make([]byte, 29))
	want.Write([]byte{4, 5, 6})
	want.Write(make([]byte, 29))

	assert.Equal(t, want.Bytes(), data)
	assert.Len(t, data, 8+8+8+4+64)
}

func TestNewClaimAccounts(t *testing.T) {
	inst, keys := testClaim(t)

	accounts := inst.Accounts()
	require.Len(t, accounts, 7)
	for i := 0; i < 5; i++ {
		assert.Equal(t, keys[i], accounts[i].PublicKey)
		assert.True(t, accounts[i].IsWritable)
	}
	assert.True(t, accounts[4].IsSigner)
	assert.False(t, accounts[0].IsSigner)
	assert.Equal(t, solana.TokenProgramID, accounts[5].PublicKey)
	assert.Equal(t, solana.SystemProgramID, accounts[6].PublicKey)
	assert.Equal(t, ProgramID, inst.ProgramID())
}

func TestNewClaimDecodeRoundTrip(t *testing.T) {
	inst, keys := testClaim(t)
	data, err := inst.Data()
	require.NoError(t, err)

	decoded, err := DecodeInstruction(inst.Accounts(), data)
	require.NoError(t, err)

	claim, ok := decoded.Impl.(*NewClaim)
	require.True(t, ok)
	assert.Equal(t, uint64(1_000_000), claim.AmountUnlocked)
	assert.Equal(t, uint64(250_000), claim.AmountLocked)
	require.Len(t, claim.Proof, 2)
	assert.Equal(t, byte(4), claim.Proof[1][0])
	assert.Equal(t, keys[4], claim.GetClaimantAccount().PublicKey)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := DecodeInstruction(nil, []byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidInstructionData)

	_, err = DecodeInstruction(nil, make([]byte, 16))
	assert.ErrorIs(t, err, ErrInvalidInstructionData)

	// proof length larger than the payload
	data := append([]byte{}, NewClaimDiscriminator[:]...)
	data = append(data, make([]byte, 16)...)
	data = binary.LittleEndian.AppendUint32(data, 1000)
	_, err = DecodeInstruction(make([]*solana.AccountMeta, 7), data)
	assert.Error(t, err)
}

func TestNewClaimValidate(t *testing.T) {
	_, err := NewNewClaimInstructionBuilder().ValidateAndBuild()
	assert.Error(t, err)

	_, err = NewNewClaimInstructionBuilder().
		SetAmountUnlocked(1).
		SetProof([][32]byte{{}}).
		ValidateAndBuild()
	assert.ErrorContains(t, err, "distributor")
}

func TestDecodeClaimStatus(t *testing.T) {
	claimant := solana.NewWallet().PublicKey()

	buf := new(bytes.Buffer)
	buf.Write(ClaimStatusDiscriminator[:])
	buf.Write(claimant[:])
	binary.Write(buf, binary.LittleEndian, uint64(10))
	binary.Write(buf, binary.LittleEndian, uint64(3))
	binary.Write(buf, binary.LittleEndian, uint64(99))
	buf.Write(make([]byte, 40))

	status, err := DecodeClaimStatus(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, claimant, status.Claimant)
	assert.Equal(t, uint64(10), status.LockedAmount)
	assert.Equal(t, uint64(3), status.LockedAmountWithdrawn)
	assert.Equal(t, uint64(99), status.UnlockedAmount)

	_, err = DecodeClaimStatus(make([]byte, 80))
	assert.ErrorIs(t, err, ErrInvalidAccountData)
}

func TestTransactionRendersClaim(t *testing.T) {
	inst, keys := testClaim(t)
	tx, err := solana.NewTransaction(
		[]solana.Instruction{inst},
		solana.Hash{1},
		solana.TransactionPayer(keys[4]),
	)
	require.NoError(t, err)
	assert.Contains(t, tx.String(), "NewClaim")
}
