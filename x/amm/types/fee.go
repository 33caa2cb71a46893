package types

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"
)

// FeeRate is a fixed-point fraction Numerator/Denominator charged on the
// input side of a swap.
type FeeRate struct {
	Numerator   uint64 `json:"numerator"`
	Denominator uint64 `json:"denominator"`
}

// NewFeeRate returns a FeeRate; it is not validated.
func NewFeeRate(numerator, denominator uint64) FeeRate {
	return FeeRate{Numerator: numerator, Denominator: denominator}
}

// DefaultFeeRate returns the 0.3% fee used by constant-product pools.
func DefaultFeeRate() FeeRate {
	return NewFeeRate(DefaultFeeNumerator, DefaultFeeDenominator)
}

// Validate checks 0 <= Numerator <= Denominator and Denominator > 0.
func (f FeeRate) Validate() error {
	if f.Denominator == 0 {
		return ErrInvalidFeeRate.Wrap("fee denominator must be positive")
	}
	if f.Numerator > f.Denominator {
		return ErrInvalidFeeRate.Wrapf("fee numerator %d exceeds denominator %d", f.Numerator, f.Denominator)
	}
	return nil
}

// Complement returns Denominator - Numerator, the share of the input that
// reaches the pool's pricing curve. Only meaningful on a valid rate.
func (f FeeRate) Complement() uint64 {
	return f.Denominator - f.Numerator
}

// IsZero reports whether no fee is charged.
func (f FeeRate) IsZero() bool {
	return f.Numerator == 0
}

// Dec returns the fee as a decimal fraction. Only meaningful on a valid rate.
func (f FeeRate) Dec() math.LegacyDec {
	num := math.LegacyNewDecFromBigInt(new(big.Int).SetUint64(f.Numerator))
	return num.Quo(math.LegacyNewDecFromBigInt(new(big.Int).SetUint64(f.Denominator)))
}

func (f FeeRate) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}
