package govern

import (
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	format "github.com/gagliardetto/solana-go/text/format"
	treeout "github.com/gagliardetto/treeout"
)

// NewVote creates the empty vote record for Voter on a proposal.
type NewVote struct {
	Voter solana.PublicKey

	// [0] = [] proposal
	// [1] = [WRITE] vote
	// [2] = [WRITE, SIGNER] payer
	// [3] = [] systemProgram
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func NewNewVoteInstructionBuilder() *NewVote {
	return &NewVote{
		AccountMetaSlice: make(solana.AccountMetaSlice, 4),
	}
}

func (inst *NewVote) SetVoter(voter solana.PublicKey) *NewVote {
	inst.Voter = voter
	return inst
}

func (inst *NewVote) SetProposalAccount(proposal solana.PublicKey) *NewVote {
	inst.AccountMetaSlice[0] = solana.Meta(proposal)
	return inst
}

func (inst *NewVote) SetVoteAccount(vote solana.PublicKey) *NewVote {
	inst.AccountMetaSlice[1] = solana.Meta(vote).WRITE()
	return inst
}

func (inst *NewVote) SetPayerAccount(payer solana.PublicKey) *NewVote {
	inst.AccountMetaSlice[2] = solana.Meta(payer).WRITE().SIGNER()
	return inst
}

func (inst *NewVote) SetSystemProgramAccount(systemProgram solana.PublicKey) *NewVote {
	inst.AccountMetaSlice[3] = solana.Meta(systemProgram)
	return inst
}

func (inst *NewVote) GetVoteAccount() *solana.AccountMeta {
	return inst.AccountMetaSlice.Get(1)
}

func (inst NewVote) Build() *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   &inst,
		TypeID: bin.NoTypeIDDefaultID,
	}}
}

func (inst NewVote) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *NewVote) Validate() error {
	if inst.Voter.IsZero() {
		return errors.New("Voter not set")
	}
	names := []string{"proposal", "vote", "payer", "systemProgram"}
	for i, name := range names {
		if inst.AccountMetaSlice.Get(i) == nil {
			return fmt.Errorf("accounts.%s not set", name)
		}
	}
	return nil
}

func (inst *NewVote) EncodeToTree(parent treeout.Branches) {
	parent.Child(format.Program(ProgramName, ProgramID)).
		ParentFunc(func(programBranch treeout.Branches) {
			programBranch.Child(format.Instruction("NewVote")).
				ParentFunc(func(instructionBranch treeout.Branches) {
					instructionBranch.Child("Params[len=1]").ParentFunc(func(paramsBranch treeout.Branches) {
						paramsBranch.Child(format.Account("Voter", inst.Voter))
					})
					instructionBranch.Child("Accounts[len=4]").ParentFunc(func(accountsBranch treeout.Branches) {
						accountsBranch.Child(format.Meta("     proposal", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(format.Meta("         vote", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(format.Meta("        payer", inst.AccountMetaSlice.Get(2)))
						accountsBranch.Child(format.Meta("systemProgram", inst.AccountMetaSlice.Get(3)))
					})
				})
		})
}

func (inst NewVote) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteBytes(NewVoteDiscriminator[:], false); err != nil {
		return err
	}
	return encoder.WriteBytes(inst.Voter[:], false)
}

func (inst *NewVote) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	if err := readDiscriminator(decoder, NewVoteDiscriminator); err != nil {
		return err
	}
	b, err := decoder.ReadNBytes(32)
	if err != nil {
		return err
	}
	inst.Voter = solana.PublicKeyFromBytes(b)
	return nil
}

func (inst *NewVote) SetAccounts(accounts []*solana.AccountMeta) error {
	if len(accounts) < 4 {
		return fmt.Errorf("NewVote needs 4 accounts, got %d", len(accounts))
	}
	inst.AccountMetaSlice = accounts[:4]
	return nil
}

func (inst NewVote) GetAccounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

// NewNewVoteInstruction declares a new NewVote instruction with the provided parameters and accounts.
func NewNewVoteInstruction(
	// Parameters:
	voter solana.PublicKey,
	// Accounts:
	proposal solana.PublicKey,
	vote solana.PublicKey,
	payer solana.PublicKey,
) *NewVote {
	return NewNewVoteInstructionBuilder().
		SetVoter(voter).
		SetProposalAccount(proposal).
		SetVoteAccount(vote).
		SetPayerAccount(payer).
		SetSystemProgramAccount(solana.SystemProgramID)
}
