package lockedvoter

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	format "github.com/gagliardetto/solana-go/text/format"
	treeout "github.com/gagliardetto/treeout"
)

// ToggleMaxLock pins the escrow at the locker's maximum duration, or releases it.
type ToggleMaxLock struct {
	IsMaxLock bool

	// [0] = [] locker
	// [1] = [WRITE] escrow
	// [2] = [SIGNER] escrowOwner
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func NewToggleMaxLockInstructionBuilder() *ToggleMaxLock {
	return &ToggleMaxLock{
		AccountMetaSlice: make(solana.AccountMetaSlice, 3),
	}
}

func (inst *ToggleMaxLock) SetIsMaxLock(isMaxLock bool) *ToggleMaxLock {
	inst.IsMaxLock = isMaxLock
	return inst
}

func (inst *ToggleMaxLock) SetLockerAccount(locker solana.PublicKey) *ToggleMaxLock {
	inst.AccountMetaSlice[0] = solana.Meta(locker)
	return inst
}

func (inst *ToggleMaxLock) SetEscrowAccount(escrow solana.PublicKey) *ToggleMaxLock {
	inst.AccountMetaSlice[1] = solana.Meta(escrow).WRITE()
	return inst
}

func (inst *ToggleMaxLock) SetEscrowOwnerAccount(owner solana.PublicKey) *ToggleMaxLock {
	inst.AccountMetaSlice[2] = solana.Meta(owner).SIGNER()
	return inst
}

func (inst ToggleMaxLock) Build() *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   &inst,
		TypeID: bin.NoTypeIDDefaultID,
	}}
}

func (inst ToggleMaxLock) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *ToggleMaxLock) Validate() error {
	names := []string{"locker", "escrow", "escrowOwner"}
	for i, name := range names {
		if inst.AccountMetaSlice.Get(i) == nil {
			return fmt.Errorf("accounts.%s not set", name)
		}
	}
	return nil
}

func (inst *ToggleMaxLock) EncodeToTree(parent treeout.Branches) {
	parent.Child(format.Program(ProgramName, ProgramID)).
		ParentFunc(func(programBranch treeout.Branches) {
			programBranch.Child(format.Instruction("ToggleMaxLock")).
				ParentFunc(func(instructionBranch treeout.Branches) {
					instructionBranch.Child("Params[len=1]").ParentFunc(func(paramsBranch treeout.Branches) {
						paramsBranch.Child(format.Param("IsMaxLock", inst.IsMaxLock))
					})
					instructionBranch.Child("Accounts[len=3]").ParentFunc(func(accountsBranch treeout.Branches) {
						accountsBranch.Child(format.Meta("     locker", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(format.Meta("     escrow", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(format.Meta("escrowOwner", inst.AccountMetaSlice.Get(2)))
					})
				})
		})
}

func (inst ToggleMaxLock) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteBytes(ToggleMaxLockDiscriminator[:], false); err != nil {
		return err
	}
	return encoder.WriteBool(inst.IsMaxLock)
}

func (inst *ToggleMaxLock) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if err = readDiscriminator(decoder, ToggleMaxLockDiscriminator); err != nil {
		return err
	}
	inst.IsMaxLock, err = decoder.ReadBool()
	return err
}

func (inst *ToggleMaxLock) SetAccounts(accounts []*solana.AccountMeta) error {
	if len(accounts) < 3 {
		return fmt.Errorf("ToggleMaxLock needs 3 accounts, got %d", len(accounts))
	}
	inst.AccountMetaSlice = accounts[:3]
	return nil
}

func (inst ToggleMaxLock) GetAccounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

// NewToggleMaxLockInstruction declares a new ToggleMaxLock instruction with the provided parameters and accounts.
func NewToggleMaxLockInstruction(
	// Parameters:
	isMaxLock bool,
	// Accounts:
	locker solana.PublicKey,
	escrow solana.PublicKey,
	escrowOwner solana.PublicKey,
) *ToggleMaxLock {
	return NewToggleMaxLockInstructionBuilder().
		SetIsMaxLock(isMaxLock).
		SetLockerAccount(locker).
		SetEscrowAccount(escrow).
		SetEscrowOwnerAccount(escrowOwner)
}
