package keeper

import (
	"context"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/paw-chain/cpamm/x/amm/types"
)

const tracerName = "github.com/paw-chain/cpamm/x/amm"

// Keeper exposes the pricing functions with the module defaults applied and
// with logging, metrics and tracing around every call. It holds no pool
// state; reserves and share totals are always supplied by the caller.
type Keeper struct {
	params  types.Params
	logger  log.Logger
	metrics *AMMMetrics
	tracer  trace.Tracer
}

// Option configures a Keeper.
type Option func(*Keeper)

// WithMetrics records operations on m instead of unregistered collectors.
func WithMetrics(m *AMMMetrics) Option {
	return func(k *Keeper) {
		if m != nil {
			k.metrics = m
		}
	}
}

// WithTracer starts spans on t instead of the global tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(k *Keeper) {
		if t != nil {
			k.tracer = t
		}
	}
}

// NewKeeper validates params and returns a Keeper.
func NewKeeper(logger log.Logger, params types.Params, opts ...Option) (Keeper, error) {
	if err := params.Validate(); err != nil {
		return Keeper{}, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	k := Keeper{
		params:  params,
		logger:  logger.With("module", "x/"+types.ModuleName),
		metrics: NewAMMMetrics(nil),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(&k)
	}
	return k, nil
}

// Params returns the defaults applied by this keeper.
func (k Keeper) Params() types.Params {
	return k.params
}

// Logger returns a module-specific logger.
func (k Keeper) Logger() log.Logger {
	return k.logger
}

// QuoteSwap quotes an exact-input swap at the keeper's fee.
func (k Keeper) QuoteSwap(ctx context.Context, reserveIn, reserveOut, amountIn math.Uint) (amountOut math.Uint, err error) {
	span, done := k.begin(ctx, "quote_swap",
		uintAttr("reserve_in", reserveIn), uintAttr("reserve_out", reserveOut), uintAttr("amount_in", amountIn))
	defer func() { done(err) }()

	amountOut, err = QuoteSwap(reserveIn, reserveOut, amountIn, k.params.Fee)
	if err != nil {
		return amountOut, err
	}
	if !isZero(amountIn) && amountOut.IsZero() {
		k.metrics.DustQuotes.Inc()
		k.logger.Debug("dust quote", "reserve_in", reserveIn, "reserve_out", reserveOut, "amount_in", amountIn)
	}
	span.SetAttributes(uintAttr("amount_out", amountOut))
	return amountOut, nil
}

// QuoteSwapDetailed quotes an exact-input swap and reports post-trade reserves.
func (k Keeper) QuoteSwapDetailed(ctx context.Context, reserveIn, reserveOut, amountIn math.Uint) (quote types.SwapQuote, err error) {
	span, done := k.begin(ctx, "quote_swap_detailed",
		uintAttr("reserve_in", reserveIn), uintAttr("reserve_out", reserveOut), uintAttr("amount_in", amountIn))
	defer func() { done(err) }()

	quote, err = QuoteSwapDetailed(reserveIn, reserveOut, amountIn, k.params.Fee)
	if err != nil {
		return quote, err
	}
	if quote.IsDust() {
		k.metrics.DustQuotes.Inc()
	}
	span.SetAttributes(uintAttr("amount_out", quote.AmountOut), uintAttr("fee_amount", quote.FeeAmount))
	return quote, nil
}

// QuoteSwapExactOut quotes the input required to buy amountOut at the keeper's fee.
func (k Keeper) QuoteSwapExactOut(ctx context.Context, reserveIn, reserveOut, amountOut math.Uint) (amountIn math.Uint, err error) {
	span, done := k.begin(ctx, "quote_swap_exact_out",
		uintAttr("reserve_in", reserveIn), uintAttr("reserve_out", reserveOut), uintAttr("amount_out", amountOut))
	defer func() { done(err) }()

	amountIn, err = QuoteSwapExactOut(reserveIn, reserveOut, amountOut, k.params.Fee)
	if err != nil {
		return amountIn, err
	}
	span.SetAttributes(uintAttr("amount_in", amountIn))
	return amountIn, nil
}

// ComputeInvariant returns reserveIn * reserveOut.
func (k Keeper) ComputeInvariant(ctx context.Context, reserveIn, reserveOut math.Uint) (inv math.Uint, err error) {
	_, done := k.begin(ctx, "compute_invariant", uintAttr("reserve_in", reserveIn), uintAttr("reserve_out", reserveOut))
	defer func() { done(err) }()

	return ComputeInvariant(reserveIn, reserveOut)
}

// DepositShares returns the shares minted for a deposit.
func (k Keeper) DepositShares(ctx context.Context, reserveA, reserveB, totalShares, amountA, amountB math.Uint) (shares math.Uint, err error) {
	span, done := k.begin(ctx, "deposit_shares",
		uintAttr("total_shares", totalShares), uintAttr("amount_a", amountA), uintAttr("amount_b", amountB))
	defer func() { done(err) }()

	shares, err = DepositShares(reserveA, reserveB, totalShares, amountA, amountB)
	if err != nil {
		return shares, err
	}
	if isZero(totalShares) {
		k.logger.Debug("bootstrapping pool shares", "amount_a", amountA, "amount_b", amountB, "shares", shares)
	}
	span.SetAttributes(uintAttr("shares", shares))
	return shares, nil
}

// WithdrawAmounts returns the amounts released by burning sharesBurned.
func (k Keeper) WithdrawAmounts(ctx context.Context, reserveA, reserveB, totalShares, sharesBurned math.Uint) (amountA, amountB math.Uint, err error) {
	span, done := k.begin(ctx, "withdraw_amounts",
		uintAttr("total_shares", totalShares), uintAttr("shares_burned", sharesBurned))
	defer func() { done(err) }()

	amountA, amountB, err = WithdrawAmounts(reserveA, reserveB, totalShares, sharesBurned)
	if err != nil {
		return amountA, amountB, err
	}
	span.SetAttributes(uintAttr("amount_a", amountA), uintAttr("amount_b", amountB))
	return amountA, amountB, nil
}

// QuoteRoute prices amountIn across hops, bounded by the keeper's max hops.
func (k Keeper) QuoteRoute(ctx context.Context, hops []types.Hop, amountIn math.Uint) (quote types.RouteQuote, err error) {
	span, done := k.begin(ctx, "quote_route", attribute.Int("hops", len(hops)), uintAttr("amount_in", amountIn))
	defer func() { done(err) }()

	quote, err = QuoteRoute(hops, amountIn, k.params.MaxHops)
	if err != nil {
		return quote, err
	}
	k.metrics.RouteHops.Observe(float64(len(hops)))
	span.SetAttributes(uintAttr("amount_out", quote.AmountOut))
	return quote, nil
}

// SpotPrice returns reserveOut / reserveIn.
func (k Keeper) SpotPrice(ctx context.Context, reserveIn, reserveOut math.Uint) (price math.LegacyDec, err error) {
	_, done := k.begin(ctx, "spot_price", uintAttr("reserve_in", reserveIn), uintAttr("reserve_out", reserveOut))
	defer func() { done(err) }()

	return SpotPrice(reserveIn, reserveOut)
}

// PriceImpact returns the relative price impact of a swap at the keeper's fee.
func (k Keeper) PriceImpact(ctx context.Context, reserveIn, reserveOut, amountIn math.Uint) (impact math.LegacyDec, err error) {
	_, done := k.begin(ctx, "price_impact",
		uintAttr("reserve_in", reserveIn), uintAttr("reserve_out", reserveOut), uintAttr("amount_in", amountIn))
	defer func() { done(err) }()

	return PriceImpact(reserveIn, reserveOut, amountIn, k.params.Fee)
}

// begin opens a span for op and returns a completion func that records the
// outcome on the span, the metrics and the log.
func (k Keeper) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (trace.Span, func(error)) {
	start := time.Now()
	_, span := k.tracer.Start(ctx, "amm."+op, trace.WithAttributes(attrs...))

	return span, func(err error) {
		defer span.End()
		k.metrics.OperationLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())

		if err != nil {
			code := types.ErrorName(err)
			k.metrics.OperationsTotal.WithLabelValues(op, "error").Inc()
			k.metrics.ErrorsTotal.WithLabelValues(op, code).Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, code)
			k.logger.Debug("pricing operation rejected", "operation", op, "code", code, "error", err)
			return
		}

		k.metrics.OperationsTotal.WithLabelValues(op, "success").Inc()
		span.SetStatus(codes.Ok, "")
		k.logger.Debug("pricing operation completed", "operation", op)
	}
}

func uintAttr(key string, v math.Uint) attribute.KeyValue {
	return attribute.String(key, display(v))
}
