package keeper

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// ComputeInvariant returns k = reserveIn * reserveOut.
// Quoting must not proceed on an empty side or on a product wider than 128 bits.
func ComputeInvariant(reserveIn, reserveOut math.Uint) (math.Uint, error) {
	if err := validateReserves(reserveIn, reserveOut); err != nil {
		return math.ZeroUint(), err
	}

	k, ok := MulWide(reserveIn, reserveOut)
	if !ok {
		return math.ZeroUint(), types.ErrOverflow.Wrapf("invariant: reserveIn=%s * reserveOut=%s", reserveIn, reserveOut)
	}
	return k, nil
}

// ValidateInvariantGrowth checks that the constant product of the reserves
// after an operation is not smaller than before it. Products are compared
// exactly, so reserves near the 128-bit ceiling are handled too.
func ValidateInvariantGrowth(beforeIn, beforeOut, afterIn, afterOut math.Uint) error {
	for _, r := range []struct {
		name string
		v    math.Uint
	}{
		{"reserveIn before", beforeIn},
		{"reserveOut before", beforeOut},
		{"reserveIn after", afterIn},
		{"reserveOut after", afterOut},
	} {
		if err := types.ValidateAmount(r.name, r.v); err != nil {
			return err
		}
	}

	kBefore := mulFull(beforeIn, beforeOut)
	kAfter := mulFull(afterIn, afterOut)
	if kAfter.Cmp(kBefore) < 0 {
		return types.ErrInvariantViolation.Wrapf("k decreased from %s to %s", kBefore, kAfter)
	}
	return nil
}

// validateReserves rejects empty or out-of-range reserves, in that order.
func validateReserves(reserveIn, reserveOut math.Uint) error {
	if isZero(reserveIn) || isZero(reserveOut) {
		return types.ErrZeroReserve.Wrapf("reserveIn=%s reserveOut=%s", display(reserveIn), display(reserveOut))
	}
	if err := types.ValidateAmount("reserveIn", reserveIn); err != nil {
		return err
	}
	return types.ValidateAmount("reserveOut", reserveOut)
}

func isZero(a math.Uint) bool {
	return a.IsNil() || a.IsZero()
}

func display(a math.Uint) string {
	if a.IsNil() {
		return "0"
	}
	return a.String()
}
