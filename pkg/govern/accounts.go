package govern

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
)

// sha256("account:Vote")[:8]
var VoteDiscriminator = [8]byte{0x60, 0x5b, 0x68, 0x39, 0x91, 0x23, 0xac, 0x9b}

var ErrInvalidAccountData = errors.New("unexpected account data")

// Vote sides as stored on chain.
const (
	SidePending uint8 = iota
	SideAgainst
	SideFor
	SideAbstain
)

// Vote is a voter's record on one proposal. Side stays SidePending until a
// vote is cast.
type Vote struct {
	Proposal solana.PublicKey
	Voter    solana.PublicKey
	Bump     uint8
	Side     uint8
	Weight   uint64
}

// Cast reports whether a side other than pending was recorded.
func (v *Vote) Cast() bool {
	return v.Side != SidePending
}

func (v *Vote) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	disc, err := decoder.ReadNBytes(8)
	if err != nil {
		return err
	}
	if !bytes.Equal(disc, VoteDiscriminator[:]) {
		return fmt.Errorf("%w: not a Vote account", ErrInvalidAccountData)
	}
	b, err := decoder.ReadNBytes(32)
	if err != nil {
		return err
	}
	v.Proposal = solana.PublicKeyFromBytes(b)
	if b, err = decoder.ReadNBytes(32); err != nil {
		return err
	}
	v.Voter = solana.PublicKeyFromBytes(b)
	if v.Bump, err = decoder.ReadUint8(); err != nil {
		return err
	}
	if v.Side, err = decoder.ReadUint8(); err != nil {
		return err
	}
	v.Weight, err = decoder.ReadUint64(binary.LittleEndian)
	return err
}

// DecodeVote decodes raw account data.
func DecodeVote(data []byte) (*Vote, error) {
	out := new(Vote)
	if err := out.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return nil, err
	}
	return out, nil
}
