package keeper

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// QuoteSwap calculates the output amount for a swap using the constant product formula
// Formula: amountOut = (amountInAfterFee * reserveOut) / (reserveIn + amountInAfterFee)
// where amountInAfterFee = floor(amountIn * (den - num) / den).
//
// Every division truncates, so rounding always favors the pool. A zero output
// for a positive input is a valid dust quote, not an error.
func QuoteSwap(reserveIn, reserveOut, amountIn math.Uint, fee types.FeeRate) (math.Uint, error) {
	terms, err := quoteSwap(reserveIn, reserveOut, amountIn, fee)
	if err != nil {
		return math.ZeroUint(), err
	}
	return terms.amountOut, nil
}

// QuoteSwapDetailed prices a swap like QuoteSwap and also reports the fee
// retained by the pool and the reserves implied by committing the trade.
func QuoteSwapDetailed(reserveIn, reserveOut, amountIn math.Uint, fee types.FeeRate) (types.SwapQuote, error) {
	terms, err := quoteSwap(reserveIn, reserveOut, amountIn, fee)
	if err != nil {
		return types.SwapQuote{}, err
	}

	feeAmount, ok := SubChecked(amountIn, terms.amountInAfterFee)
	if !ok {
		return types.SwapQuote{}, types.ErrOverflow.Wrapf("fee amount: amountIn=%s < amountInAfterFee=%s", amountIn, terms.amountInAfterFee)
	}

	reserveInAfter, ok := AddChecked(reserveIn, amountIn)
	if !ok {
		return types.SwapQuote{}, types.ErrOverflow.Wrapf("reserveIn=%s + amountIn=%s", reserveIn, amountIn)
	}

	reserveOutAfter, ok := SubChecked(reserveOut, terms.amountOut)
	if !ok {
		return types.SwapQuote{}, types.ErrInsufficientLiquidity.Wrapf("output %s exceeds reserve %s", terms.amountOut, reserveOut)
	}

	if err := ValidateInvariantGrowth(reserveIn, reserveOut, reserveInAfter, reserveOutAfter); err != nil {
		return types.SwapQuote{}, err
	}

	return types.SwapQuote{
		AmountIn:         normalize(amountIn),
		FeeAmount:        feeAmount,
		AmountInAfterFee: terms.amountInAfterFee,
		AmountOut:        terms.amountOut,
		ReserveInAfter:   reserveInAfter,
		ReserveOutAfter:  reserveOutAfter,
	}, nil
}

// QuoteSwapExactOut returns the smallest input that buys at least amountOut.
// Formula: net = ceil(reserveIn * amountOut / (reserveOut - amountOut)),
// amountIn = ceil(net * den / (den - num)).
//
// Both divisions round up so the pool is never short-changed.
func QuoteSwapExactOut(reserveIn, reserveOut, amountOut math.Uint, fee types.FeeRate) (math.Uint, error) {
	if err := validateReserves(reserveIn, reserveOut); err != nil {
		return math.ZeroUint(), err
	}
	if err := types.ValidateAmount("amountOut", amountOut); err != nil {
		return math.ZeroUint(), err
	}
	if err := fee.Validate(); err != nil {
		return math.ZeroUint(), err
	}

	if isZero(amountOut) {
		return math.ZeroUint(), nil
	}
	remaining, ok := SubChecked(reserveOut, amountOut)
	if !ok || remaining.IsZero() {
		return math.ZeroUint(), types.ErrInsufficientLiquidity.Wrapf("output %s >= reserve %s", amountOut, reserveOut)
	}

	numerator, ok := MulWide(reserveIn, amountOut)
	if !ok {
		return math.ZeroUint(), types.ErrOverflow.Wrapf("numerator: reserveIn=%s * amountOut=%s", reserveIn, amountOut)
	}
	net, ok := DivCeil(numerator, remaining)
	if !ok {
		return math.ZeroUint(), types.ErrDivisionByZero.Wrap("reserveOut - amountOut is zero")
	}

	complement := fee.Complement()
	if complement == 0 {
		return math.ZeroUint(), types.ErrDivisionByZero.Wrapf("fee %s consumes the whole input", fee)
	}
	gross, ok := MulWide(net, math.NewUint(fee.Denominator))
	if !ok {
		return math.ZeroUint(), types.ErrOverflow.Wrapf("fee gross-up: net=%s * %d", net, fee.Denominator)
	}
	amountIn, ok := DivCeil(gross, math.NewUint(complement))
	if !ok {
		return math.ZeroUint(), types.ErrDivisionByZero.Wrap("fee complement is zero")
	}
	return amountIn, nil
}

// SpotPrice returns the marginal price of the output token in units of the
// input token, reserveOut / reserveIn, before any fee.
func SpotPrice(reserveIn, reserveOut math.Uint) (math.LegacyDec, error) {
	// DIVISION BY ZERO PROTECTION: validate both reserves before division
	if err := validateReserves(reserveIn, reserveOut); err != nil {
		return math.LegacyZeroDec(), err
	}
	return math.LegacyNewDecFromBigInt(toBig(reserveOut)).Quo(math.LegacyNewDecFromBigInt(toBig(reserveIn))), nil
}

// PriceImpact returns 1 - executionPrice/spotPrice for a swap of amountIn,
// including the fee. A zero input has no impact.
func PriceImpact(reserveIn, reserveOut, amountIn math.Uint, fee types.FeeRate) (math.LegacyDec, error) {
	amountOut, err := QuoteSwap(reserveIn, reserveOut, amountIn, fee)
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	if isZero(amountIn) {
		return math.LegacyZeroDec(), nil
	}

	// executionPrice/spotPrice = (amountOut * reserveIn) / (amountIn * reserveOut)
	ratio := math.LegacyNewDecFromBigInt(mulFull(amountOut, reserveIn)).
		Quo(math.LegacyNewDecFromBigInt(mulFull(amountIn, reserveOut)))
	return math.LegacyOneDec().Sub(ratio), nil
}

type swapTerms struct {
	amountInAfterFee math.Uint
	amountOut        math.Uint
}

// quoteSwap runs the pricing steps in their fixed order; changing the order
// changes the rounding direction.
func quoteSwap(reserveIn, reserveOut, amountIn math.Uint, fee types.FeeRate) (swapTerms, error) {
	if err := validateReserves(reserveIn, reserveOut); err != nil {
		return swapTerms{}, err
	}
	if err := types.ValidateAmount("amountIn", amountIn); err != nil {
		return swapTerms{}, err
	}
	if err := fee.Validate(); err != nil {
		return swapTerms{}, err
	}

	scaled, ok := MulWide(amountIn, math.NewUint(fee.Complement()))
	if !ok {
		return swapTerms{}, types.ErrOverflow.Wrapf("fee discount: amountIn=%s * %d", amountIn, fee.Complement())
	}
	amountInAfterFee, ok := DivFloor(scaled, math.NewUint(fee.Denominator))
	if !ok {
		return swapTerms{}, types.ErrDivisionByZero.Wrap("fee denominator is zero")
	}

	numerator, ok := MulWide(amountInAfterFee, reserveOut)
	if !ok {
		return swapTerms{}, types.ErrOverflow.Wrapf("numerator: amountInAfterFee=%s * reserveOut=%s", amountInAfterFee, reserveOut)
	}

	denominator, ok := AddChecked(reserveIn, amountInAfterFee)
	if !ok {
		return swapTerms{}, types.ErrOverflow.Wrapf("denominator: reserveIn=%s + amountInAfterFee=%s", reserveIn, amountInAfterFee)
	}

	amountOut, ok := DivFloor(numerator, denominator)
	if !ok {
		return swapTerms{}, types.ErrDivisionByZero.Wrap("reserveIn + amountInAfterFee is zero")
	}

	return swapTerms{amountInAfterFee: amountInAfterFee, amountOut: amountOut}, nil
}

func normalize(a math.Uint) math.Uint {
	if a.IsNil() {
		return math.ZeroUint()
	}
	return a
}
