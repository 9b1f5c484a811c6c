package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.Deposits == nil || m.Declined == nil || m.Balance == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.Deposits.Inc()
	m.Declined.WithLabelValues("withdraw", "insufficient_balance").Inc()
	m.OperationAmount.WithLabelValues("deposit").Observe(100)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	if got := testutil.ToFloat64(m.Deposits); got != 1 {
		t.Fatalf("expected deposits counter 1, got %v", got)
	}
}

func TestNewTwiceOnSameRegistryPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	New(registry)

	defer func() {
		if recover() == nil {
			t.Fatal("expected duplicate registration to panic")
		}
	}()
	New(registry)
}

func TestRateLimitHitsHasNoLabels(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RateLimitHits.Inc()
	m.RateLimitHits.Inc()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	for _, mf := range families {
		if mf.GetName() != "banking_rate_limit_hits_total" {
			continue
		}
		if len(mf.GetMetric()) != 1 || len(mf.GetMetric()[0].GetLabel()) != 0 {
			t.Fatalf("expected a single unlabelled series, got %v", mf.GetMetric())
		}
		if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 2 {
			t.Fatalf("expected 2 hits, got %v", got)
		}
		return
	}
	t.Fatal("banking_rate_limit_hits_total not registered")
}
