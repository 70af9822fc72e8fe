package lockedvoter

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
)

// sha256("account:Escrow")[:8]
var EscrowDiscriminator = [8]byte{0x1f, 0xd5, 0x7b, 0xbb, 0xba, 0x16, 0xda, 0x9b}

var ErrInvalidAccountData = errors.New("unexpected account data")

// Escrow holds an owner's locked tokens and voting delegate. Trailing
// partial-unstake fields are ignored.
type Escrow struct {
	Locker          solana.PublicKey
	Owner           solana.PublicKey
	Bump            uint8
	Tokens          solana.PublicKey
	Amount          uint64
	EscrowStartedAt int64
	EscrowEndsAt    int64
	VoteDelegate    solana.PublicKey
	IsMaxLock       bool
}

func readKey(decoder *bin.Decoder) (solana.PublicKey, error) {
	b, err := decoder.ReadNBytes(32)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBytes(b), nil
}

func (e *Escrow) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	disc, err := decoder.ReadNBytes(8)
	if err != nil {
		return err
	}
	if !bytes.Equal(disc, EscrowDiscriminator[:]) {
		return fmt.Errorf("%w: not an Escrow account", ErrInvalidAccountData)
	}
	if e.Locker, err = readKey(decoder); err != nil {
		return err
	}
	if e.Owner, err = readKey(decoder); err != nil {
		return err
	}
	if e.Bump, err = decoder.ReadUint8(); err != nil {
		return err
	}
	if e.Tokens, err = readKey(decoder); err != nil {
		return err
	}
	if e.Amount, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	if e.EscrowStartedAt, err = decoder.ReadInt64(binary.LittleEndian); err != nil {
		return err
	}
	if e.EscrowEndsAt, err = decoder.ReadInt64(binary.LittleEndian); err != nil {
		return err
	}
	if e.VoteDelegate, err = readKey(decoder); err != nil {
		return err
	}
	e.IsMaxLock, err = decoder.ReadBool()
	return err
}

func (e Escrow) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = encoder.WriteBytes(EscrowDiscriminator[:], false); err != nil {
		return err
	}
	for _, step := range []func() error{
		func() error { return encoder.WriteBytes(e.Locker[:], false) },
		func() error { return encoder.WriteBytes(e.Owner[:], false) },
		func() error { return encoder.WriteUint8(e.Bump) },
		func() error { return encoder.WriteBytes(e.Tokens[:], false) },
		func() error { return encoder.WriteUint64(e.Amount, binary.LittleEndian) },
		func() error { return encoder.WriteInt64(e.EscrowStartedAt, binary.LittleEndian) },
		func() error { return encoder.WriteInt64(e.EscrowEndsAt, binary.LittleEndian) },
		func() error { return encoder.WriteBytes(e.VoteDelegate[:], false) },
		func() error { return encoder.WriteBool(e.IsMaxLock) },
	} {
		if err = step(); err != nil {
			return err
		}
	}
	return nil
}

// DecodeEscrow decodes raw account data.
func DecodeEscrow(data []byte) (*Escrow, error) {
	out := new(Escrow)
	if err := out.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return nil, err
	}
	return out, nil
}
