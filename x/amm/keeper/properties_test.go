package keeper_test

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"pgregory.net/rapid"

	"github.com/paw-chain/cpamm/x/amm/keeper"
	"github.com/paw-chain/cpamm/x/amm/types"
)

func drawUint(t *rapid.T, label string, lo, hi uint64) math.Uint {
	return math.NewUint(rapid.Uint64Range(lo, hi).Draw(t, label))
}

func drawFee(t *rapid.T) types.FeeRate {
	den := rapid.Uint64Range(1, 1_000_000).Draw(t, "feeDen")
	num := rapid.Uint64Range(0, den).Draw(t, "feeNum")
	return types.NewFeeRate(num, den)
}

// drawWide draws an amount of up to 128 bits, spread across bit lengths so
// small and near-maximal values are both common.
func drawWide(t *rapid.T, label string, floor uint64) math.Uint {
	bits := rapid.UintRange(0, types.AmountBitLen).Draw(t, label+"Bits")
	v := u128(rapid.Uint64().Draw(t, label+"Hi"), rapid.Uint64().Draw(t, label+"Lo")).BigInt()
	v.Rsh(v, types.AmountBitLen-bits)
	if v.Cmp(new(big.Int).SetUint64(floor)) < 0 {
		v.SetUint64(floor)
	}
	return math.NewUintFromBigInt(v)
}

// curveProductHolds checks (reserveIn + amountInAfterFee) * (reserveOut - amountOut)
// >= reserveIn * reserveOut, the bound the pricing curve guarantees before
// the fee is credited back to the pool.
func curveProductHolds(reserveIn, reserveOut math.Uint, q types.SwapQuote) (bool, *big.Int, *big.Int) {
	before := product(reserveIn, reserveOut)
	in := new(big.Int).Add(reserveIn.BigInt(), q.AmountInAfterFee.BigInt())
	out := new(big.Int).Sub(reserveOut.BigInt(), q.AmountOut.BigInt())
	after := in.Mul(in, out)
	return after.Cmp(before) >= 0, before, after
}

// TestInvariantMonotonicityProperty: the fee-adjusted curve product never
// shrinks, and committing the whole input never shrinks k either
func TestInvariantMonotonicityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveIn := drawWide(t, "reserveIn", 1)
		reserveOut := drawWide(t, "reserveOut", 1)
		amountIn := drawWide(t, "amountIn", 0)
		fee := drawFee(t)

		q, err := keeper.QuoteSwapDetailed(reserveIn, reserveOut, amountIn, fee)
		if err != nil {
			if !types.ErrOverflow.Is(err) {
				t.Fatalf("unexpected error: %v", err)
			}
			return
		}

		if ok, before, after := curveProductHolds(reserveIn, reserveOut, q); !ok {
			t.Fatalf("curve product decreased from %s to %s", before, after)
		}

		kBefore := product(reserveIn, reserveOut)
		kAfter := product(q.ReserveInAfter, q.ReserveOutAfter)
		if kAfter.Cmp(kBefore) < 0 {
			t.Fatalf("k decreased from %s to %s", kBefore, kAfter)
		}
	})
}

// TestZeroFeeIdentityProperty: with no fee the quote is the plain curve output
func TestZeroFeeIdentityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveIn := rapid.Uint64Range(1, 1<<62).Draw(t, "reserveIn")
		reserveOut := rapid.Uint64Range(1, 1<<62).Draw(t, "reserveOut")
		amountIn := rapid.Uint64Range(0, 1<<62).Draw(t, "amountIn")
		den := rapid.Uint64Range(1, 1<<32).Draw(t, "feeDen")

		out, err := keeper.QuoteSwap(math.NewUint(reserveIn), math.NewUint(reserveOut), math.NewUint(amountIn), types.NewFeeRate(0, den))
		if err != nil {
			t.Fatalf("quote failed: %v", err)
		}

		num := new(big.Int).Mul(new(big.Int).SetUint64(amountIn), new(big.Int).SetUint64(reserveOut))
		sum := new(big.Int).Add(new(big.Int).SetUint64(reserveIn), new(big.Int).SetUint64(amountIn))
		want := num.Quo(num, sum)
		if out.BigInt().Cmp(want) != 0 {
			t.Fatalf("zero-fee quote %s, want %s", out, want)
		}
	})
}

// TestQuoteMonotonicProperty: a larger input never buys less
func TestQuoteMonotonicProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveIn := drawUint(t, "reserveIn", 1, 1<<62)
		reserveOut := drawUint(t, "reserveOut", 1, 1<<62)
		small := rapid.Uint64Range(0, 1<<61).Draw(t, "small")
		extra := rapid.Uint64Range(0, 1<<61).Draw(t, "extra")
		fee := drawFee(t)

		outSmall, err := keeper.QuoteSwap(reserveIn, reserveOut, math.NewUint(small), fee)
		if err != nil {
			t.Fatalf("quote failed: %v", err)
		}
		outLarge, err := keeper.QuoteSwap(reserveIn, reserveOut, math.NewUint(small+extra), fee)
		if err != nil {
			t.Fatalf("quote failed: %v", err)
		}
		if outLarge.LT(outSmall) {
			t.Fatalf("input %d bought %s, input %d bought %s", small+extra, outLarge, small, outSmall)
		}
	})
}

// TestWithdrawalRoundTripProperty: depositing then burning the minted shares
// never returns more than was deposited
func TestWithdrawalRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveA := drawUint(t, "reserveA", 1, 1<<40)
		reserveB := drawUint(t, "reserveB", 1, 1<<40)
		total := drawUint(t, "totalShares", 1, 1<<40)
		amountA := drawUint(t, "amountA", 0, 1<<40)
		amountB := drawUint(t, "amountB", 0, 1<<40)

		shares, err := keeper.DepositShares(reserveA, reserveB, total, amountA, amountB)
		if err != nil {
			t.Fatalf("deposit failed: %v", err)
		}

		outA, outB, err := keeper.WithdrawAmounts(reserveA.Add(amountA), reserveB.Add(amountB), total.Add(shares), shares)
		if err != nil {
			t.Fatalf("withdraw failed: %v", err)
		}
		if outA.GT(amountA) || outB.GT(amountB) {
			t.Fatalf("round trip returned (%s, %s) for deposit (%s, %s)", outA, outB, amountA, amountB)
		}
	})
}

// TestExactOutInverseProperty: the exact-out input buys at least the requested output
func TestExactOutInverseProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveIn := drawUint(t, "reserveIn", 1, 1<<30)
		reserveOut := rapid.Uint64Range(2, 1<<30).Draw(t, "reserveOut")
		want := rapid.Uint64Range(0, reserveOut-1).Draw(t, "amountOut")
		den := rapid.Uint64Range(1, 10_000).Draw(t, "feeDen")
		num := rapid.Uint64Range(0, den-1).Draw(t, "feeNum")
		fee := types.NewFeeRate(num, den)

		in, err := keeper.QuoteSwapExactOut(reserveIn, math.NewUint(reserveOut), math.NewUint(want), fee)
		if err != nil {
			t.Fatalf("exact-out failed: %v", err)
		}
		got, err := keeper.QuoteSwap(reserveIn, math.NewUint(reserveOut), in, fee)
		if err != nil {
			t.Fatalf("quote failed: %v", err)
		}
		if got.LT(math.NewUint(want)) {
			t.Fatalf("input %s bought %s, wanted %d", in, got, want)
		}
	})
}
