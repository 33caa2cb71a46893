package types

import (
	"math/big"

	"cosmossdk.io/math"
)

// AmountBitLen is the width of every reserve, amount and share count handled
// by the pricing core.
const AmountBitLen = 128

// MaxAmount is 2^128 - 1, the largest representable amount.
var MaxAmount = math.NewUintFromBigInt(
	new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), AmountBitLen), big.NewInt(1)),
)

func isZeroAmount(a math.Uint) bool {
	return a.IsNil() || a.IsZero()
}

// ValidateAmount rejects values wider than AmountBitLen. An uninitialized
// math.Uint is treated as zero.
func ValidateAmount(name string, amount math.Uint) error {
	if amount.IsNil() {
		return nil
	}
	if amount.BigIntMut().BitLen() > AmountBitLen {
		return ErrOverflow.Wrapf("%s %s exceeds %d bits", name, amount, AmountBitLen)
	}
	return nil
}
