package keeper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AMMMetrics holds all Prometheus metrics for the AMM pricing core
type AMMMetrics struct {
	OperationsTotal  *prometheus.CounterVec
	ErrorsTotal      *prometheus.CounterVec
	OperationLatency *prometheus.HistogramVec
	DustQuotes       prometheus.Counter
	RouteHops        prometheus.Histogram
}

// NewAMMMetrics creates the AMM collectors and registers them with reg.
// A nil reg yields working collectors that are not exported anywhere.
func NewAMMMetrics(reg prometheus.Registerer) *AMMMetrics {
	factory := promauto.With(reg)

	return &AMMMetrics{
		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cpamm",
				Subsystem: "amm",
				Name:      "operations_total",
				Help:      "Total number of pricing operations by outcome",
			},
			[]string{"operation", "result"},
		),
		ErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cpamm",
				Subsystem: "amm",
				Name:      "errors_total",
				Help:      "Rejected pricing operations by error code",
			},
			[]string{"operation", "code"},
		),
		OperationLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "cpamm",
				Subsystem: "amm",
				Name:      "operation_latency_seconds",
				Help:      "Pricing operation latency in seconds",
				Buckets:   []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3},
			},
			[]string{"operation"},
		),
		DustQuotes: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "cpamm",
				Subsystem: "amm",
				Name:      "dust_quotes_total",
				Help:      "Swap quotes where a positive input buys nothing",
			},
		),
		RouteHops: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "cpamm",
				Subsystem: "amm",
				Name:      "route_hops",
				Help:      "Number of hops in routed quotes",
				Buckets:   []float64{1, 2, 3, 4, 5},
			},
		),
	}
}
