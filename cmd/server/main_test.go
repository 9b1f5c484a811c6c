package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/banking/internal/adapter/http/middleware"
	"github.com/iho/banking/internal/infrastructure/config"
)

func testConfig() *config.Config {
	return &config.Config{
		RedisConnectTimeout: time.Second,
		IdempotencyTTL:      time.Minute,
	}
}

func TestNewApp_InMemory(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := newApp(context.Background(), testConfig(), zerolog.Nop(), reg, reg)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	defer a.close()

	if a.redis != nil || a.limiter != nil {
		t.Fatalf("expected no redis client and no limiter")
	}

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/account/deposits", strings.NewReader(`{"amount":"10"}`))
		req.Header.Set(middleware.IdempotencyKeyHeader, "k1")
		rec := httptest.NewRecorder()
		a.handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("deposit %d: expected 201, got %d", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	if !strings.Contains(body, "banking_deposits_total 1") {
		t.Fatalf("expected one deposit recorded, got:\n%s", body)
	}
	if !strings.Contains(body, "banking_idempotent_replays_total 1") {
		t.Fatalf("expected one replay recorded, got:\n%s", body)
	}
}

func TestNewApp_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig()
	cfg.RedisURL = "redis://" + mr.Addr()
	cfg.RateLimitRPS = 100
	cfg.RateLimitBurst = 10

	reg := prometheus.NewRegistry()
	a, err := newApp(context.Background(), cfg, zerolog.Nop(), reg, reg)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	defer a.close()

	if a.redis == nil || a.limiter == nil {
		t.Fatalf("expected redis client and limiter to be configured")
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"redis":"ok"`) {
		t.Fatalf("expected redis to be ready, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestNewApp_BadRedisURL(t *testing.T) {
	cfg := testConfig()
	cfg.RedisURL = "not-a-url"

	reg := prometheus.NewRegistry()
	if _, err := newApp(context.Background(), cfg, zerolog.Nop(), reg, reg); err == nil {
		t.Fatal("expected error for invalid redis URL")
	}
}

func TestCleanupLimitersStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		cleanupLimiters(ctx, middleware.NewRateLimiter(1, 1), time.Millisecond)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanupLimiters did not return after cancel")
	}
}
