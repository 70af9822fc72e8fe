package distributor

import (
	"bytes"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/text"
	treeout "github.com/gagliardetto/treeout"
)

// ProgramName is the name of the Merkle distributor program
const ProgramName = "MerkleDistributor"

// ProgramID is the mainnet Jupiter Merkle distributor.
var ProgramID = solana.MustPublicKeyFromBase58("DiSLRwcSFvtwvMWSs7ubBMvYRaYNYupa76ZSuYLe6D7j")

// SetProgramID points the binding at another deployment.
func SetProgramID(pubkey solana.PublicKey) {
	ProgramID = pubkey
	solana.RegisterInstructionDecoder(ProgramID, registryDecodeInstruction)
}

func init() {
	solana.RegisterInstructionDecoder(ProgramID, registryDecodeInstruction)
}

// sha256("global:new_claim")[:8]
var NewClaimDiscriminator = [8]byte{0x4e, 0xb1, 0x62, 0x7b, 0xd2, 0x15, 0xbb, 0x53}

var ErrInvalidInstructionData = errors.New("unexpected instruction data")

type accountMetaSettable interface {
	bin.EncoderDecoder
	SetAccounts(accounts []*solana.AccountMeta) error
}

// Instruction is a base type for all instructions.
type Instruction struct {
	bin.BaseVariant
}

func (inst *Instruction) ProgramID() solana.PublicKey {
	return ProgramID
}

func (inst *Instruction) Accounts() []*solana.AccountMeta {
	return inst.Impl.(solana.AccountsGettable).GetAccounts()
}

func (inst *Instruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewBorshEncoder(buf).Encode(inst); err != nil {
		return nil, fmt.Errorf("unable to encode instruction: %w", err)
	}
	return buf.Bytes(), nil
}

func (inst *Instruction) EncodeToTree(parent treeout.Branches) {
	if enToTree, ok := inst.Impl.(text.EncodableToTree); ok {
		enToTree.EncodeToTree(parent)
	}
}

func (inst *Instruction) MarshalWithEncoder(encoder *bin.Encoder) error {
	return encoder.Encode(inst.Impl)
}

func (inst *Instruction) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	return decoder.Decode(inst.Impl)
}

func registryDecodeInstruction(accounts []*solana.AccountMeta, data []byte) (interface{}, error) {
	inst, err := DecodeInstruction(accounts, data)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// DecodeInstruction rebuilds an instruction from its accounts and data.
func DecodeInstruction(accounts []*solana.AccountMeta, data []byte) (*Instruction, error) {
	if len(data) < 8 {
		return nil, ErrInvalidInstructionData
	}
	var impl accountMetaSettable
	switch {
	case bytes.Equal(data[:8], NewClaimDiscriminator[:]):
		impl = new(NewClaim)
	default:
		return nil, fmt.Errorf("%w: unknown discriminator %x", ErrInvalidInstructionData, data[:8])
	}
	if err := bin.NewBorshDecoder(data).Decode(impl); err != nil {
		return nil, fmt.Errorf("unable to decode instruction: %w", err)
	}
	if err := impl.SetAccounts(accounts); err != nil {
		return nil, err
	}
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   impl,
		TypeID: bin.NoTypeIDDefaultID,
	}}, nil
}

func readDiscriminator(decoder *bin.Decoder, want [8]byte) error {
	got, err := decoder.ReadNBytes(8)
	if err != nil {
		return err
	}
	if !bytes.Equal(got, want[:]) {
		return fmt.Errorf("%w: discriminator %x, want %x", ErrInvalidInstructionData, got, want)
	}
	return nil
}

var _ solana.Instruction = (*Instruction)(nil)
var _ bin.EncoderDecoder = (*Instruction)(nil)
