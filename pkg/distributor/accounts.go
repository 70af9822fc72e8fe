package distributor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
)

// sha256("account:ClaimStatus")[:8]
var ClaimStatusDiscriminator = [8]byte{0x16, 0xb7, 0xf9, 0x9d, 0xf7, 0x5f, 0x96, 0x60}

var ErrInvalidAccountData = errors.New("unexpected account data")

// ClaimStatus is the per-claimant record created by NewClaim. Only the
// leading fields are decoded.
type ClaimStatus struct {
	Claimant              solana.PublicKey
	LockedAmount          uint64
	LockedAmountWithdrawn uint64
	UnlockedAmount        uint64
}

func (c *ClaimStatus) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	disc, err := decoder.ReadNBytes(8)
	if err != nil {
		return err
	}
	if !bytes.Equal(disc, ClaimStatusDiscriminator[:]) {
		return fmt.Errorf("%w: not a ClaimStatus account", ErrInvalidAccountData)
	}
	key, err := decoder.ReadNBytes(32)
	if err != nil {
		return err
	}
	c.Claimant = solana.PublicKeyFromBytes(key)
	if c.LockedAmount, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	if c.LockedAmountWithdrawn, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	if c.UnlockedAmount, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	return nil
}

// DecodeClaimStatus decodes raw account data.
func DecodeClaimStatus(data []byte) (*ClaimStatus, error) {
	out := new(ClaimStatus)
	if err := out.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return nil, err
	}
	return out, nil
}
