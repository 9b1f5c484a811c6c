package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	Deposits        prometheus.Counter
	Withdrawals     prometheus.Counter
	Declined        *prometheus.CounterVec
	Statements      prometheus.Counter
	Balance         prometheus.Gauge
	OperationAmount *prometheus.HistogramVec

	// Idempotency metrics
	IdempotentReplays prometheus.Counter

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates all Prometheus metrics and registers them with reg.
// A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		// Ledger metrics
		Deposits: f.NewCounter(prometheus.CounterOpts{
			Name: "banking_deposits_total",
			Help: "Total number of accepted deposits",
		}),
		Withdrawals: f.NewCounter(prometheus.CounterOpts{
			Name: "banking_withdrawals_total",
			Help: "Total number of accepted withdrawals",
		}),
		Declined: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "banking_operations_declined_total",
				Help: "Total number of rejected operations by reason",
			},
			[]string{"operation", "reason"},
		),
		Statements: f.NewCounter(prometheus.CounterOpts{
			Name: "banking_statements_total",
			Help: "Total number of statements built",
		}),
		Balance: f.NewGauge(prometheus.GaugeOpts{
			Name: "banking_account_balance",
			Help: "Current account balance",
		}),
		OperationAmount: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "banking_operation_amount",
				Help:    "Accepted operation amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"operation"},
		),

		// Idempotency metrics
		IdempotentReplays: f.NewCounter(prometheus.CounterOpts{
			Name: "banking_idempotent_replays_total",
			Help: "Total number of responses served from the idempotency store",
		}),

		// Rate limiting metrics
		RateLimitHits: f.NewCounter(prometheus.CounterOpts{
			Name: "banking_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		}),
	}
}
