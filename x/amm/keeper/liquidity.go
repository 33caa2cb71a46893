package keeper

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// DepositShares calculates the shares minted for depositing (amountA, amountB).
//
// Bootstrap (totalShares == 0): sqrt(amountA * amountB), rounded down.
// Otherwise: min(amountA * totalShares / reserveA, amountB * totalShares / reserveB),
// so a depositor is credited only for the scarcer side and existing holders
// are never diluted.
func DepositShares(reserveA, reserveB, totalShares, amountA, amountB math.Uint) (math.Uint, error) {
	for _, a := range []struct {
		name string
		v    math.Uint
	}{
		{"reserveA", reserveA},
		{"reserveB", reserveB},
		{"totalShares", totalShares},
		{"amountA", amountA},
		{"amountB", amountB},
	} {
		if err := types.ValidateAmount(a.name, a.v); err != nil {
			return math.ZeroUint(), err
		}
	}

	if isZero(totalShares) {
		product, ok := MulWide(amountA, amountB)
		if !ok {
			return math.ZeroUint(), types.ErrOverflow.Wrapf("initial shares: amountA=%s * amountB=%s", amountA, amountB)
		}
		return Sqrt(product), nil
	}

	if isZero(reserveA) || isZero(reserveB) {
		return math.ZeroUint(), types.ErrZeroReserve.Wrapf("reserveA=%s reserveB=%s with %s shares outstanding",
			display(reserveA), display(reserveB), totalShares)
	}

	sharesA, err := mulDivFloor(amountA, totalShares, reserveA, "sharesA")
	if err != nil {
		return math.ZeroUint(), err
	}
	sharesB, err := mulDivFloor(amountB, totalShares, reserveB, "sharesB")
	if err != nil {
		return math.ZeroUint(), err
	}

	return math.MinUint(sharesA, sharesB), nil
}

// WithdrawAmounts calculates the token amounts returned for burning sharesBurned.
// Formula: amountA = sharesBurned * reserveA / totalShares, amountB likewise,
// both rounded down.
func WithdrawAmounts(reserveA, reserveB, totalShares, sharesBurned math.Uint) (math.Uint, math.Uint, error) {
	for _, a := range []struct {
		name string
		v    math.Uint
	}{
		{"reserveA", reserveA},
		{"reserveB", reserveB},
		{"totalShares", totalShares},
		{"sharesBurned", sharesBurned},
	} {
		if err := types.ValidateAmount(a.name, a.v); err != nil {
			return math.ZeroUint(), math.ZeroUint(), err
		}
	}

	if toBig(sharesBurned).Cmp(toBig(totalShares)) > 0 {
		return math.ZeroUint(), math.ZeroUint(), types.ErrInsufficientShares.Wrapf("burning %s of %s shares",
			sharesBurned, display(totalShares))
	}
	if isZero(totalShares) {
		return math.ZeroUint(), math.ZeroUint(), types.ErrDivisionByZero.Wrap("total shares is zero")
	}

	amountA, err := mulDivFloor(sharesBurned, reserveA, totalShares, "amountA")
	if err != nil {
		return math.ZeroUint(), math.ZeroUint(), err
	}
	amountB, err := mulDivFloor(sharesBurned, reserveB, totalShares, "amountB")
	if err != nil {
		return math.ZeroUint(), math.ZeroUint(), err
	}

	return amountA, amountB, nil
}

// ProportionalAmount returns the amount of token B that matches amountA at
// the current pool ratio, amountA * reserveB / reserveA rounded down.
func ProportionalAmount(amountA, reserveA, reserveB math.Uint) (math.Uint, error) {
	if err := validateReserves(reserveA, reserveB); err != nil {
		return math.ZeroUint(), err
	}
	if err := types.ValidateAmount("amountA", amountA); err != nil {
		return math.ZeroUint(), err
	}
	return mulDivFloor(amountA, reserveB, reserveA, "amountB")
}

// mulDivFloor performs floor(a * b / c) with overflow protection
func mulDivFloor(a, b, c math.Uint, what string) (math.Uint, error) {
	product, ok := MulWide(a, b)
	if !ok {
		return math.ZeroUint(), types.ErrOverflow.Wrapf("%s: %s * %s", what, display(a), display(b))
	}
	quotient, ok := DivFloor(product, c)
	if !ok {
		return math.ZeroUint(), types.ErrDivisionByZero.Wrapf("%s: divisor is zero", what)
	}
	return quotient, nil
}
