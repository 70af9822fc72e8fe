package lockedvoter

import (
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	format "github.com/gagliardetto/solana-go/text/format"
	treeout "github.com/gagliardetto/treeout"
)

// IncreaseLockedAmount moves Amount tokens from the payer into the escrow.
type IncreaseLockedAmount struct {
	Amount uint64

	// [0] = [WRITE] locker
	// [1] = [WRITE] escrow
	// [2] = [WRITE] escrowTokens
	// [3] = [SIGNER] payer
	// [4] = [WRITE] sourceTokens
	// [5] = [] tokenProgram
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func NewIncreaseLockedAmountInstructionBuilder() *IncreaseLockedAmount {
	return &IncreaseLockedAmount{
		AccountMetaSlice: make(solana.AccountMetaSlice, 6),
	}
}

func (inst *IncreaseLockedAmount) SetAmount(amount uint64) *IncreaseLockedAmount {
	inst.Amount = amount
	return inst
}

func (inst *IncreaseLockedAmount) SetLockerAccount(locker solana.PublicKey) *IncreaseLockedAmount {
	inst.AccountMetaSlice[0] = solana.Meta(locker).WRITE()
	return inst
}

func (inst *IncreaseLockedAmount) SetEscrowAccount(escrow solana.PublicKey) *IncreaseLockedAmount {
	inst.AccountMetaSlice[1] = solana.Meta(escrow).WRITE()
	return inst
}

func (inst *IncreaseLockedAmount) SetEscrowTokensAccount(escrowTokens solana.PublicKey) *IncreaseLockedAmount {
	inst.AccountMetaSlice[2] = solana.Meta(escrowTokens).WRITE()
	return inst
}

func (inst *IncreaseLockedAmount) SetPayerAccount(payer solana.PublicKey) *IncreaseLockedAmount {
	inst.AccountMetaSlice[3] = solana.Meta(payer).SIGNER()
	return inst
}

func (inst *IncreaseLockedAmount) SetSourceTokensAccount(sourceTokens solana.PublicKey) *IncreaseLockedAmount {
	inst.AccountMetaSlice[4] = solana.Meta(sourceTokens).WRITE()
	return inst
}

func (inst *IncreaseLockedAmount) SetTokenProgramAccount(tokenProgram solana.PublicKey) *IncreaseLockedAmount {
	inst.AccountMetaSlice[5] = solana.Meta(tokenProgram)
	return inst
}

func (inst IncreaseLockedAmount) Build() *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   &inst,
		TypeID: bin.NoTypeIDDefaultID,
	}}
}

func (inst IncreaseLockedAmount) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *IncreaseLockedAmount) Validate() error {
	if inst.Amount == 0 {
		return errors.New("Amount not set")
	}
	names := []string{"locker", "escrow", "escrowTokens", "payer", "sourceTokens", "tokenProgram"}
	for i, name := range names {
		if inst.AccountMetaSlice.Get(i) == nil {
			return fmt.Errorf("accounts.%s not set", name)
		}
	}
	return nil
}

func (inst *IncreaseLockedAmount) EncodeToTree(parent treeout.Branches) {
	parent.Child(format.Program(ProgramName, ProgramID)).
		ParentFunc(func(programBranch treeout.Branches) {
			programBranch.Child(format.Instruction("IncreaseLockedAmount")).
				ParentFunc(func(instructionBranch treeout.Branches) {
					instructionBranch.Child("Params[len=1]").ParentFunc(func(paramsBranch treeout.Branches) {
						paramsBranch.Child(format.Param("Amount", inst.Amount))
					})
					instructionBranch.Child("Accounts[len=6]").ParentFunc(func(accountsBranch treeout.Branches) {
						accountsBranch.Child(format.Meta("      locker", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(format.Meta("      escrow", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(format.Meta("escrowTokens", inst.AccountMetaSlice.Get(2)))
						accountsBranch.Child(format.Meta("       payer", inst.AccountMetaSlice.Get(3)))
						accountsBranch.Child(format.Meta("sourceTokens", inst.AccountMetaSlice.Get(4)))
						accountsBranch.Child(format.Meta("tokenProgram", inst.AccountMetaSlice.Get(5)))
					})
				})
		})
}

func (inst IncreaseLockedAmount) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteBytes(IncreaseLockedAmountDiscriminator[:], false); err != nil {
		return err
	}
	return encoder.WriteUint64(inst.Amount, binary.LittleEndian)
}

func (inst *IncreaseLockedAmount) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if err = readDiscriminator(decoder, IncreaseLockedAmountDiscriminator); err != nil {
		return err
	}
	inst.Amount, err = decoder.ReadUint64(binary.LittleEndian)
	return err
}

func (inst *IncreaseLockedAmount) SetAccounts(accounts []*solana.AccountMeta) error {
	if len(accounts) < 6 {
		return fmt.Errorf("IncreaseLockedAmount needs 6 accounts, got %d", len(accounts))
	}
	inst.AccountMetaSlice = accounts[:6]
	return nil
}

func (inst IncreaseLockedAmount) GetAccounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

// NewIncreaseLockedAmountInstruction declares a new IncreaseLockedAmount instruction with the provided parameters and accounts.
func NewIncreaseLockedAmountInstruction(
	// Parameters:
	amount uint64,
	// Accounts:
	locker solana.PublicKey,
	escrow solana.PublicKey,
	escrowTokens solana.PublicKey,
	payer solana.PublicKey,
	sourceTokens solana.PublicKey,
) *IncreaseLockedAmount {
	return NewIncreaseLockedAmountInstructionBuilder().
		SetAmount(amount).
		SetLockerAccount(locker).
		SetEscrowAccount(escrow).
		SetEscrowTokensAccount(escrowTokens).
		SetPayerAccount(payer).
		SetSourceTokensAccount(sourceTokens).
		SetTokenProgramAccount(solana.TokenProgramID)
}
