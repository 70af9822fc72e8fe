package global

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

var maxUint64 = decimal.NewFromUint64(math.MaxUint64)

func ToUIAmount(raw uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromUint64(raw).Shift(-int32(decimals))
}

func FormatAmount(raw uint64, decimals uint8) string {
	return ToUIAmount(raw, decimals).StringFixed(int32(decimals))
}

// FromUIAmount converts "12.5" into raw units. Precision finer than the mint
// supports is rejected rather than rounded.
func FromUIAmount(ui string, decimals uint8) (uint64, error) {
	d, err := decimal.NewFromString(ui)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, ui)
	}
	return FromDecimal(d, decimals)
}

func FromDecimal(d decimal.Decimal, decimals uint8) (uint64, error) {
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: %s must be positive", ErrInvalidAmount, d)
	}
	raw := d.Shift(int32(decimals))
	if !raw.Equal(raw.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s has more than %d decimals", ErrInvalidAmount, d, decimals)
	}
	if raw.GreaterThan(maxUint64) {
		return 0, fmt.Errorf("%w: %s overflows", ErrInvalidAmount, d)
	}
	return raw.BigInt().Uint64(), nil
}
