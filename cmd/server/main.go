package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/banking/internal/adapter/http"
	"github.com/iho/banking/internal/adapter/http/handler"
	"github.com/iho/banking/internal/adapter/http/middleware"
	"github.com/iho/banking/internal/adapter/repository/memory"
	redisRepo "github.com/iho/banking/internal/adapter/repository/redis"
	"github.com/iho/banking/internal/domain"
	"github.com/iho/banking/internal/infrastructure/config"
	"github.com/iho/banking/internal/infrastructure/idgen"
	"github.com/iho/banking/internal/infrastructure/logger"
	"github.com/iho/banking/internal/infrastructure/metrics"
	"github.com/iho/banking/internal/infrastructure/redis"
	"github.com/iho/banking/internal/usecase"
)

const limiterCleanupInterval = 10 * time.Minute

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, appLogger, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize")
	}
	defer a.close()

	if a.limiter != nil {
		go cleanupLimiters(ctx, a.limiter, limiterCleanupInterval)
	}

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server stopped")
}

type app struct {
	handler http.Handler
	redis   *goredis.Client
	limiter *middleware.RateLimiter
}

// newApp wires the account, its use cases and the HTTP router.
func newApp(
	ctx context.Context,
	cfg *config.Config,
	appLogger zerolog.Logger,
	reg prometheus.Registerer,
	gatherer prometheus.Gatherer,
) (*app, error) {
	a := &app{}

	var store usecase.IdempotencyStore
	if cfg.RedisURL != "" {
		client, err := redis.Connect(ctx, cfg.RedisURL, cfg.RedisConnectTimeout)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		log.Info().Msg("connected to redis")
		a.redis = client
		store = redisRepo.NewIdempotencyStore(client)
	} else {
		log.Info().Msg("keeping idempotency keys in memory")
		store = memory.NewIdempotencyStore()
	}

	m := metrics.New(reg)
	ids := idgen.NewULIDGenerator()
	account := domain.NewAccount(domain.WithIDGenerator(ids.Generate))

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(account, m, appLogger)
	reconciliationUC := usecase.NewReconciliationUseCase(account)

	if cfg.RateLimitRPS > 0 {
		a.limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).WithHitCounter(m.RateLimitHits)
	}

	a.handler = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:        handler.NewAccountHandler(accountUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		HealthHandler:         handler.NewHealthHandler(a.redis),
		IdempotencyStore:      store,
		IdempotencyTTL:        cfg.IdempotencyTTL,
		IdempotencyReplays:    m.IdempotentReplays,
		RateLimiter:           a.limiter,
		Logger:                &appLogger,
		Gatherer:              gatherer,
	})

	return a, nil
}

func (a *app) close() {
	if a.redis != nil {
		a.redis.Close()
	}
}

func cleanupLimiters(ctx context.Context, rl *middleware.RateLimiter, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.CleanupLimiters()
		}
	}
}
