package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/banking/internal/adapter/http/handler"
	"github.com/iho/banking/internal/adapter/http/middleware"
	"github.com/iho/banking/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler        *handler.AccountHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler

	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyTTL     time.Duration
	IdempotencyReplays prometheus.Counter

	RateLimiter *middleware.RateLimiter
	Logger      *zerolog.Logger
	// Gatherer backs /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(logger).Wrap)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	} else {
		r.Handle("/metrics", promhttp.Handler())
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.IdempotencyReplays).
				WithLogger(logger)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/account", func(r chi.Router) {
			r.Post("/deposits", cfg.AccountHandler.Deposit)
			r.Post("/withdrawals", cfg.AccountHandler.Withdraw)
			r.Get("/balance", cfg.AccountHandler.Balance)
			r.Get("/statement", cfg.AccountHandler.Statement)
			r.Get("/transactions", cfg.AccountHandler.ListTransactions)
			if cfg.ReconciliationHandler != nil {
				r.Get("/reconciliation", cfg.ReconciliationHandler.CheckConsistency)
			}
		})
	})

	return r
}
