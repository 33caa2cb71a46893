package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// SafeMath provides overflow-checked arithmetic over 128-bit amounts.
// Intermediates are computed exactly and then bounded to types.AmountBitLen;
// the boolean result is false whenever the exact value is not representable.

// InRange reports whether a fits in 128 bits. An uninitialized value is zero.
func InRange(a math.Uint) bool {
	return a.IsNil() || a.BigIntMut().BitLen() <= types.AmountBitLen
}

// MulWide returns a * b, or false if the product exceeds 128 bits.
func MulWide(a, b math.Uint) (math.Uint, bool) {
	x, y := toBig(a), toBig(b)
	if x.Sign() == 0 || y.Sign() == 0 {
		return math.ZeroUint(), true
	}
	return fromBig(x.Mul(x, y))
}

// DivFloor returns floor(n / d), or false if d is zero.
func DivFloor(n, d math.Uint) (math.Uint, bool) {
	y := toBig(d)
	if y.Sign() == 0 {
		return math.ZeroUint(), false
	}
	x := toBig(n)
	return fromBig(x.Quo(x, y))
}

// DivCeil returns ceil(n / d), or false if d is zero.
func DivCeil(n, d math.Uint) (math.Uint, bool) {
	y := toBig(d)
	if y.Sign() == 0 {
		return math.ZeroUint(), false
	}
	q, r := new(big.Int).QuoRem(toBig(n), y, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return fromBig(q)
}

// AddChecked returns a + b, or false if the sum exceeds 128 bits.
func AddChecked(a, b math.Uint) (math.Uint, bool) {
	x := toBig(a)
	return fromBig(x.Add(x, toBig(b)))
}

// SubChecked returns a - b, or false if b > a.
func SubChecked(a, b math.Uint) (math.Uint, bool) {
	x := toBig(a)
	return fromBig(x.Sub(x, toBig(b)))
}

// SaturatingAdd clamps a + b to types.MaxAmount.
func SaturatingAdd(a, b math.Uint) math.Uint {
	if sum, ok := AddChecked(a, b); ok {
		return sum
	}
	return types.MaxAmount
}

// SaturatingSub clamps a - b to zero.
func SaturatingSub(a, b math.Uint) math.Uint {
	if diff, ok := SubChecked(a, b); ok {
		return diff
	}
	return math.ZeroUint()
}

// SaturatingMul clamps a * b to types.MaxAmount.
func SaturatingMul(a, b math.Uint) math.Uint {
	if product, ok := MulWide(a, b); ok {
		return product
	}
	return types.MaxAmount
}

// Sqrt returns floor(sqrt(a)).
func Sqrt(a math.Uint) math.Uint {
	x := toBig(a)
	return math.NewUintFromBigInt(x.Sqrt(x))
}

// mulFull returns the exact product without the 128-bit bound. Two 128-bit
// operands never exceed 256 bits, so the result is always representable.
func mulFull(a, b math.Uint) *big.Int {
	x := toBig(a)
	return x.Mul(x, toBig(b))
}

func toBig(a math.Uint) *big.Int {
	if a.IsNil() {
		return new(big.Int)
	}
	return a.BigInt()
}

func fromBig(i *big.Int) (math.Uint, bool) {
	if i.Sign() < 0 || i.BitLen() > types.AmountBitLen {
		return math.ZeroUint(), false
	}
	return math.NewUintFromBigInt(i), true
}
