package ammkeeper

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/paw-chain/cpamm/x/amm/keeper"
	"github.com/paw-chain/cpamm/x/amm/types"
)

// Fixture bundles a keeper with the collectors it reports to.
type Fixture struct {
	Keeper   keeper.Keeper
	Metrics  *keeper.AMMMetrics
	Registry *prometheus.Registry
	Spans    *tracetest.SpanRecorder
}

// AMMKeeper creates a keeper with default params, a private metrics registry
// and an in-memory span recorder.
func AMMKeeper(t testing.TB) (Fixture, context.Context) {
	return AMMKeeperWithParams(t, types.DefaultParams())
}

// AMMKeeperWithParams is AMMKeeper with explicit params.
func AMMKeeperWithParams(t testing.TB, params types.Params) (Fixture, context.Context) {
	t.Helper()

	reg := prometheus.NewRegistry()
	metrics := keeper.NewAMMMetrics(reg)

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	k, err := keeper.NewKeeper(
		log.NewTestLogger(t),
		params,
		keeper.WithMetrics(metrics),
		keeper.WithTracer(tp.Tracer("ammkeeper")),
	)
	require.NoError(t, err)

	return Fixture{
		Keeper:   k,
		Metrics:  metrics,
		Registry: reg,
		Spans:    spans,
	}, context.Background()
}
