package lockedvoter

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	format "github.com/gagliardetto/solana-go/text/format"
	treeout "github.com/gagliardetto/treeout"
)

// CastVote records Side on a proposal with the escrow's voting power. The
// vote account must already exist in the governance program.
type CastVote struct {
	Side uint8

	// [0] = [] locker
	// [1] = [] escrow
	// [2] = [SIGNER] voteDelegate
	// [3] = [WRITE] proposal
	// [4] = [WRITE] vote
	// [5] = [] governor
	// [6] = [] governProgram
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func NewCastVoteInstructionBuilder() *CastVote {
	return &CastVote{
		AccountMetaSlice: make(solana.AccountMetaSlice, 7),
	}
}

func (inst *CastVote) SetSide(side uint8) *CastVote {
	inst.Side = side
	return inst
}

func (inst *CastVote) SetLockerAccount(locker solana.PublicKey) *CastVote {
	inst.AccountMetaSlice[0] = solana.Meta(locker)
	return inst
}

func (inst *CastVote) SetEscrowAccount(escrow solana.PublicKey) *CastVote {
	inst.AccountMetaSlice[1] = solana.Meta(escrow)
	return inst
}

func (inst *CastVote) SetVoteDelegateAccount(delegate solana.PublicKey) *CastVote {
	inst.AccountMetaSlice[2] = solana.Meta(delegate).SIGNER()
	return inst
}

func (inst *CastVote) SetProposalAccount(proposal solana.PublicKey) *CastVote {
	inst.AccountMetaSlice[3] = solana.Meta(proposal).WRITE()
	return inst
}

func (inst *CastVote) SetVoteAccount(vote solana.PublicKey) *CastVote {
	inst.AccountMetaSlice[4] = solana.Meta(vote).WRITE()
	return inst
}

func (inst *CastVote) SetGovernorAccount(governor solana.PublicKey) *CastVote {
	inst.AccountMetaSlice[5] = solana.Meta(governor)
	return inst
}

func (inst *CastVote) SetGovernProgramAccount(governProgram solana.PublicKey) *CastVote {
	inst.AccountMetaSlice[6] = solana.Meta(governProgram)
	return inst
}

func (inst CastVote) Build() *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   &inst,
		TypeID: bin.NoTypeIDDefaultID,
	}}
}

func (inst CastVote) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *CastVote) Validate() error {
	names := []string{"locker", "escrow", "voteDelegate", "proposal", "vote", "governor", "governProgram"}
	for i, name := range names {
		if inst.AccountMetaSlice.Get(i) == nil {
			return fmt.Errorf("accounts.%s not set", name)
		}
	}
	return nil
}

func (inst *CastVote) EncodeToTree(parent treeout.Branches) {
	parent.Child(format.Program(ProgramName, ProgramID)).
		ParentFunc(func(programBranch treeout.Branches) {
			programBranch.Child(format.Instruction("CastVote")).
				ParentFunc(func(instructionBranch treeout.Branches) {
					instructionBranch.Child("Params[len=1]").ParentFunc(func(paramsBranch treeout.Branches) {
						paramsBranch.Child(format.Param("Side", inst.Side))
					})
					instructionBranch.Child("Accounts[len=7]").ParentFunc(func(accountsBranch treeout.Branches) {
						accountsBranch.Child(format.Meta("       locker", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(format.Meta("       escrow", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(format.Meta(" voteDelegate", inst.AccountMetaSlice.Get(2)))
						accountsBranch.Child(format.Meta("     proposal", inst.AccountMetaSlice.Get(3)))
						accountsBranch.Child(format.Meta("         vote", inst.AccountMetaSlice.Get(4)))
						accountsBranch.Child(format.Meta("     governor", inst.AccountMetaSlice.Get(5)))
						accountsBranch.Child(format.Meta("governProgram", inst.AccountMetaSlice.Get(6)))
					})
				})
		})
}

func (inst CastVote) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteBytes(CastVoteDiscriminator[:], false); err != nil {
		return err
	}
	return encoder.WriteUint8(inst.Side)
}

func (inst *CastVote) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if err = readDiscriminator(decoder, CastVoteDiscriminator); err != nil {
		return err
	}
	inst.Side, err = decoder.ReadUint8()
	return err
}

func (inst *CastVote) SetAccounts(accounts []*solana.AccountMeta) error {
	if len(accounts) < 7 {
		return fmt.Errorf("CastVote needs 7 accounts, got %d", len(accounts))
	}
	inst.AccountMetaSlice = accounts[:7]
	return nil
}

func (inst CastVote) GetAccounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

// NewCastVoteInstruction declares a new CastVote instruction with the provided parameters and accounts.
func NewCastVoteInstruction(
	// Parameters:
	side uint8,
	// Accounts:
	locker solana.PublicKey,
	escrow solana.PublicKey,
	voteDelegate solana.PublicKey,
	proposal solana.PublicKey,
	vote solana.PublicKey,
	governor solana.PublicKey,
	governProgram solana.PublicKey,
) *CastVote {
	return NewCastVoteInstructionBuilder().
		SetSide(side).
		SetLockerAccount(locker).
		SetEscrowAccount(escrow).
		SetVoteDelegateAccount(voteDelegate).
		SetProposalAccount(proposal).
		SetVoteAccount(vote).
		SetGovernorAccount(governor).
		SetGovernProgramAccount(governProgram)
}
