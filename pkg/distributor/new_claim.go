package distributor

import (
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	format "github.com/gagliardetto/solana-go/text/format"
	treeout "github.com/gagliardetto/treeout"
)

// NewClaim claims the unlocked part of an allocation and opens its claim
// status record. The proof is checked on-chain against the distributor root.
type NewClaim struct {
	AmountUnlocked uint64
	AmountLocked   uint64
	Proof          [][32]byte

	// [0] = [WRITE] distributor
	// [1] = [WRITE] claimStatus
	// [2] = [WRITE] from
	// ··········· distributor token vault
	// [3] = [WRITE] to
	// ··········· claimant token account
	// [4] = [WRITE, SIGNER] claimant
	// [5] = [] tokenProgram
	// [6] = [] systemProgram
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func NewNewClaimInstructionBuilder() *NewClaim {
	return &NewClaim{
		AccountMetaSlice: make(solana.AccountMetaSlice, 7),
	}
}

func (inst *NewClaim) SetAmountUnlocked(amount uint64) *NewClaim {
	inst.AmountUnlocked = amount
	return inst
}

func (inst *NewClaim) SetAmountLocked(amount uint64) *NewClaim {
	inst.AmountLocked = amount
	return inst
}

func (inst *NewClaim) SetProof(proof [][32]byte) *NewClaim {
	inst.Proof = proof
	return inst
}

func (inst *NewClaim) SetDistributorAccount(distributor solana.PublicKey) *NewClaim {
	inst.AccountMetaSlice[0] = solana.Meta(distributor).WRITE()
	return inst
}

func (inst *NewClaim) SetClaimStatusAccount(claimStatus solana.PublicKey) *NewClaim {
	inst.AccountMetaSlice[1] = solana.Meta(claimStatus).WRITE()
	return inst
}

func (inst *NewClaim) SetFromAccount(from solana.PublicKey) *NewClaim {
	inst.AccountMetaSlice[2] = solana.Meta(from).WRITE()
	return inst
}

func (inst *NewClaim) SetToAccount(to solana.PublicKey) *NewClaim {
	inst.AccountMetaSlice[3] = solana.Meta(to).WRITE()
	return inst
}

func (inst *NewClaim) SetClaimantAccount(claimant solana.PublicKey) *NewClaim {
	inst.AccountMetaSlice[4] = solana.Meta(claimant).WRITE().SIGNER()
	return inst
}

func (inst *NewClaim) SetTokenProgramAccount(tokenProgram solana.PublicKey) *NewClaim {
	inst.AccountMetaSlice[5] = solana.Meta(tokenProgram)
	return inst
}

func (inst *NewClaim) SetSystemProgramAccount(systemProgram solana.PublicKey) *NewClaim {
	inst.AccountMetaSlice[6] = solana.Meta(systemProgram)
	return inst
}

func (inst *NewClaim) GetDistributorAccount() *solana.AccountMeta {
	return inst.AccountMetaSlice.Get(0)
}

func (inst *NewClaim) GetClaimStatusAccount() *solana.AccountMeta {
	return inst.AccountMetaSlice.Get(1)
}

func (inst *NewClaim) GetFromAccount() *solana.AccountMeta {
	return inst.AccountMetaSlice.Get(2)
}

func (inst *NewClaim) GetToAccount() *solana.AccountMeta {
	return inst.AccountMetaSlice.Get(3)
}

func (inst *NewClaim) GetClaimantAccount() *solana.AccountMeta {
	return inst.AccountMetaSlice.Get(4)
}

func (inst NewClaim) Build() *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   &inst,
		TypeID: bin.NoTypeIDDefaultID,
	}}
}

func (inst NewClaim) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *NewClaim) Validate() error {
	if inst.AmountUnlocked == 0 && inst.AmountLocked == 0 {
		return errors.New("nothing to claim")
	}
	if len(inst.Proof) == 0 {
		return errors.New("Proof not set")
	}
	names := []string{"distributor", "claimStatus", "from", "to", "claimant", "tokenProgram", "systemProgram"}
	for i, name := range names {
		if inst.AccountMetaSlice.Get(i) == nil {
			return fmt.Errorf("accounts.%s not set", name)
		}
	}
	return nil
}

func (inst *NewClaim) EncodeToTree(parent treeout.Branches) {
	parent.Child(format.Program(ProgramName, ProgramID)).
		//
		ParentFunc(func(programBranch treeout.Branches) {
			programBranch.Child(format.Instruction("NewClaim")).
				//
				ParentFunc(func(instructionBranch treeout.Branches) {

					instructionBranch.Child("Params[len=3]").ParentFunc(func(paramsBranch treeout.Branches) {
						paramsBranch.Child(format.Param("AmountUnlocked", inst.AmountUnlocked))
						paramsBranch.Child(format.Param("  AmountLocked", inst.AmountLocked))
						paramsBranch.Child(format.Param("   Proof[len]", len(inst.Proof)))
					})

					instructionBranch.Child("Accounts[len=7]").ParentFunc(func(accountsBranch treeout.Branches) {
						accountsBranch.Child(format.Meta("  distributor", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(format.Meta("  claimStatus", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(format.Meta("         from", inst.AccountMetaSlice.Get(2)))
						accountsBranch.Child(format.Meta("           to", inst.AccountMetaSlice.Get(3)))
						accountsBranch.Child(format.Meta("     claimant", inst.AccountMetaSlice.Get(4)))
						accountsBranch.Child(format.Meta(" tokenProgram", inst.AccountMetaSlice.Get(5)))
						accountsBranch.Child(format.Meta("systemProgram", inst.AccountMetaSlice.Get(6)))
					})
				})
		})
}

func (inst NewClaim) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = encoder.WriteBytes(NewClaimDiscriminator[:], false); err != nil {
		return err
	}
	if err = encoder.WriteUint64(inst.AmountUnlocked, binary.LittleEndian); err != nil {
		return err
	}
	if err = encoder.WriteUint64(inst.AmountLocked, binary.LittleEndian); err != nil {
		return err
	}
	if err = encoder.WriteUint32(uint32(len(inst.Proof)), binary.LittleEndian); err != nil {
		return err
	}
	for _, node := range inst.Proof {
		if err = encoder.WriteBytes(node[:], false); err != nil {
			return err
		}
	}
	return nil
}

func (inst *NewClaim) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if err = readDiscriminator(decoder, NewClaimDiscriminator); err != nil {
		return err
	}
	if inst.AmountUnlocked, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	if inst.AmountLocked, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	n, err := decoder.ReadUint32(binary.LittleEndian)
	if err != nil {
		return err
	}
	if int(n)*32 > decoder.Remaining() {
		return fmt.Errorf("%w: proof length %d exceeds data", ErrInvalidInstructionData, n)
	}
	inst.Proof = make([][32]byte, n)
	for i := range inst.Proof {
		node, err := decoder.ReadNBytes(32)
		if err != nil {
			return err
		}
		copy(inst.Proof[i][:], node)
	}
	return nil
}

func (inst *NewClaim) SetAccounts(accounts []*solana.AccountMeta) error {
	if len(accounts) < 7 {
		return fmt.Errorf("NewClaim needs 7 accounts, got %d", len(accounts))
	}
	inst.AccountMetaSlice = accounts[:7]
	return nil
}

func (inst NewClaim) GetAccounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

// NewNewClaimInstruction declares a new NewClaim instruction with the provided parameters and accounts.
func NewNewClaimInstruction(
	// Parameters:
	amountUnlocked uint64,
	amountLocked uint64,
	proof [][32]byte,
	// Accounts:
	distributor solana.PublicKey,
	claimStatus solana.PublicKey,
	from solana.PublicKey,
	to solana.PublicKey,
	claimant solana.PublicKey,
	tokenProgram solana.PublicKey,
) *NewClaim {
	return NewNewClaimInstructionBuilder().
		SetAmountUnlocked(amountUnlocked).
		SetAmountLocked(amountLocked).
		SetProof(proof).
		SetDistributorAccount(distributor).
		SetClaimStatusAccount(claimStatus).
		SetFromAccount(from).
		SetToAccount(to).
		SetClaimantAccount(claimant).
		SetTokenProgramAccount(tokenProgram).
		SetSystemProgramAccount(solana.SystemProgramID)
}
