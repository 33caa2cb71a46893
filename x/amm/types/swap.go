package types

import (
	"cosmossdk.io/math"
)

// SwapQuote is the full result of pricing a swap against one pool. Post-trade
// reserves credit the whole AmountIn, so the fee stays in the pool.
type SwapQuote struct {
	AmountIn         math.Uint `json:"amount_in"`
	FeeAmount        math.Uint `json:"fee_amount"`
	AmountInAfterFee math.Uint `json:"amount_in_after_fee"`
	AmountOut        math.Uint `json:"amount_out"`
	ReserveInAfter   math.Uint `json:"reserve_in_after"`
	ReserveOutAfter  math.Uint `json:"reserve_out_after"`
}

// IsDust reports a quote where a positive input buys nothing.
func (q SwapQuote) IsDust() bool {
	return !isZeroAmount(q.AmountIn) && isZeroAmount(q.AmountOut)
}

// Hop is one pool in a routed swap. Denoms are optional; when both sides of
// adjacent hops carry one they must match.
type Hop struct {
	ReserveIn  math.Uint `json:"reserve_in"`
	ReserveOut math.Uint `json:"reserve_out"`
	Fee        FeeRate   `json:"fee"`
	DenomIn    string    `json:"denom_in,omitempty"`
	DenomOut   string    `json:"denom_out,omitempty"`
}

// RouteQuote contains the result of a multi-hop quote
type RouteQuote struct {
	AmountIn   math.Uint   `json:"amount_in"`
	AmountOut  math.Uint   `json:"amount_out"`
	HopAmounts []math.Uint `json:"hop_amounts"` // output of each hop
}
