package lockedvoter

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	format "github.com/gagliardetto/solana-go/text/format"
	treeout "github.com/gagliardetto/treeout"
)

// NewEscrow opens an empty escrow for an owner in a locker.
type NewEscrow struct {
	// [0] = [] locker
	// [1] = [WRITE] escrow
	// [2] = [] escrowOwner
	// [3] = [WRITE, SIGNER] payer
	// [4] = [] systemProgram
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func NewNewEscrowInstructionBuilder() *NewEscrow {
	return &NewEscrow{
		AccountMetaSlice: make(solana.AccountMetaSlice, 5),
	}
}

func (inst *NewEscrow) SetLockerAccount(locker solana.PublicKey) *NewEscrow {
	inst.AccountMetaSlice[0] = solana.Meta(locker)
	return inst
}

func (inst *NewEscrow) SetEscrowAccount(escrow solana.PublicKey) *NewEscrow {
	inst.AccountMetaSlice[1] = solana.Meta(escrow).WRITE()
	return inst
}

func (inst *NewEscrow) SetEscrowOwnerAccount(owner solana.PublicKey) *NewEscrow {
	inst.AccountMetaSlice[2] = solana.Meta(owner)
	return inst
}

func (inst *NewEscrow) SetPayerAccount(payer solana.PublicKey) *NewEscrow {
	inst.AccountMetaSlice[3] = solana.Meta(payer).WRITE().SIGNER()
	return inst
}

func (inst *NewEscrow) SetSystemProgramAccount(systemProgram solana.PublicKey) *NewEscrow {
	inst.AccountMetaSlice[4] = solana.Meta(systemProgram)
	return inst
}

func (inst NewEscrow) Build() *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   &inst,
		TypeID: bin.NoTypeIDDefaultID,
	}}
}

func (inst NewEscrow) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *NewEscrow) Validate() error {
	names := []string{"locker", "escrow", "escrowOwner", "payer", "systemProgram"}
	for i, name := range names {
		if inst.AccountMetaSlice.Get(i) == nil {
			return fmt.Errorf("accounts.%s not set", name)
		}
	}
	return nil
}

func (inst *NewEscrow) EncodeToTree(parent treeout.Branches) {
	parent.Child(format.Program(ProgramName, ProgramID)).
		ParentFunc(func(programBranch treeout.Branches) {
			programBranch.Child(format.Instruction("NewEscrow")).
				ParentFunc(func(instructionBranch treeout.Branches) {
					instructionBranch.Child("Params[len=0]").ParentFunc(func(paramsBranch treeout.Branches) {})
					instructionBranch.Child("Accounts[len=5]").ParentFunc(func(accountsBranch treeout.Branches) {
						accountsBranch.Child(format.Meta("       locker", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(format.Meta("       escrow", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(format.Meta("  escrowOwner", inst.AccountMetaSlice.Get(2)))
						accountsBranch.Child(format.Meta("        payer", inst.AccountMetaSlice.Get(3)))
						accountsBranch.Child(format.Meta("systemProgram", inst.AccountMetaSlice.Get(4)))
					})
				})
		})
}

func (inst NewEscrow) MarshalWithEncoder(encoder *bin.Encoder) error {
	return encoder.WriteBytes(NewEscrowDiscriminator[:], false)
}

func (inst *NewEscrow) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	return readDiscriminator(decoder, NewEscrowDiscriminator)
}

func (inst *NewEscrow) SetAccounts(accounts []*solana.AccountMeta) error {
	if len(accounts) < 5 {
		return fmt.Errorf("NewEscrow needs 5 accounts, got %d", len(accounts))
	}
	inst.AccountMetaSlice = accounts[:5]
	return nil
}

func (inst NewEscrow) GetAccounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

// NewNewEscrowInstruction declares a new NewEscrow instruction with the provided accounts.
func NewNewEscrowInstruction(
	locker solana.PublicKey,
	escrow solana.PublicKey,
	escrowOwner solana.PublicKey,
	payer solana.PublicKey,
) *NewEscrow {
	return NewNewEscrowInstructionBuilder().
		SetLockerAccount(locker).
		SetEscrowAccount(escrow).
		SetEscrowOwnerAccount(escrowOwner).
		SetPayerAccount(payer).
		SetSystemProgramAccount(solana.SystemProgramID)
}
