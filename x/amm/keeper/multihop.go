package keeper

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// QuoteRoute prices amountIn through a chain of pools, feeding the output of
// each hop into the next one.
//
// ATOMICITY: the first failing hop aborts the whole route. No partial result.
func QuoteRoute(hops []types.Hop, amountIn math.Uint, maxHops uint32) (types.RouteQuote, error) {
	// Validate inputs
	if len(hops) == 0 {
		return types.RouteQuote{}, types.ErrInvalidRoute.Wrap("at least one hop required")
	}
	if uint64(len(hops)) > uint64(maxHops) {
		return types.RouteQuote{}, types.ErrInvalidRoute.Wrapf("%d hops exceeds maximum of %d", len(hops), maxHops)
	}
	if err := types.ValidateAmount("amountIn", amountIn); err != nil {
		return types.RouteQuote{}, err
	}

	// Validate hop chain continuity (DenomOut of hop N must equal DenomIn of hop N+1)
	for i := 0; i < len(hops)-1; i++ {
		out, in := hops[i].DenomOut, hops[i+1].DenomIn
		if out != "" && in != "" && out != in {
			return types.RouteQuote{}, types.ErrInvalidRoute.Wrapf("hop chain broken at hop %d: %s != %s", i, out, in)
		}
	}

	current := normalize(amountIn)
	hopAmounts := make([]math.Uint, 0, len(hops))
	for i, hop := range hops {
		out, err := QuoteSwap(hop.ReserveIn, hop.ReserveOut, current, hop.Fee)
		if err != nil {
			return types.RouteQuote{}, errorsmod.Wrapf(err, "hop %d", i)
		}
		hopAmounts = append(hopAmounts, out)
		current = out
	}

	return types.RouteQuote{
		AmountIn:   normalize(amountIn),
		AmountOut:  current,
		HopAmounts: hopAmounts,
	}, nil
}
