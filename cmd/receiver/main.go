package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/localize/datagen/internal/adapter/http"
	"github.com/localize/datagen/internal/adapter/http/handler"
	"github.com/localize/datagen/internal/adapter/http/middleware"
	"github.com/localize/datagen/internal/adapter/repository/memory"
	redisRepo "github.com/localize/datagen/internal/adapter/repository/redis"
	"github.com/localize/datagen/internal/infrastructure/config"
	"github.com/localize/datagen/internal/infrastructure/logger"
	"github.com/localize/datagen/internal/infrastructure/metrics"
	"github.com/localize/datagen/internal/infrastructure/redis"
	"github.com/localize/datagen/internal/usecase"
)

const (
	visitorIdleTimeout = 10 * time.Minute
	cleanupInterval    = time.Minute
)

func main() {
	// Load configuration
	cfg, log, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to Redis when configured
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")
	} else {
		log.Warn().Msg("REDIS_URL not set, using in-memory stats without idempotency")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	limiter := middleware.NewRateLimiter(cfg.ReceiverRateLimit, cfg.ReceiverRateBurst)
	go sweepVisitors(ctx, limiter, log)

	router := newRouter(cfg, redisClient, limiter, reg, log)

	// Create server
	server := &http.Server{
		Addr:         cfg.ReceiverAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReceiverReadTimeout,
		WriteTimeout: cfg.ReceiverWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", cfg.ReceiverAddr).Msg("starting receiver")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down receiver...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ReceiverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("receiver stopped")
}

// loadConfig reads the receiver configuration and builds its logger. On
// error the returned logger uses the default level and format.
func loadConfig(files ...string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadReceiver(files...)
	if err != nil {
		return nil, logger.New(logger.Config{}), err
	}

	return cfg, logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}), nil
}

// newRouter wires the receiver. Without a Redis client stats are kept in
// memory and idempotency keys are ignored.
func newRouter(cfg *config.Config, redisClient *goredis.Client, limiter *middleware.RateLimiter, reg *prometheus.Registry, log zerolog.Logger) http.Handler {
	m := metrics.New(reg)
	limiter.OnLimit(m.RateLimitHits.Inc)

	var (
		stats       usecase.StatsStore
		idempotency usecase.IdempotencyStore
	)
	if redisClient != nil {
		stats = redisRepo.NewStatsStore(redisClient)
		idempotency = redisRepo.NewIdempotencyStore(redisClient)
	} else {
		stats = memory.NewStatsStore()
	}

	receiveUC := usecase.NewReceiveUseCase(stats, log, m)

	return httpAdapter.NewRouter(httpAdapter.RouterConfig{
		MessageHandler:   handler.NewMessageHandler(receiveUC),
		HealthHandler:    handler.NewHealthHandler(redisClient),
		IdempotencyStore: idempotency,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      limiter,
		Logger:           log,
		Metrics:          m,
		MetricsHandler:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	})
}

func sweepVisitors(ctx context.Context, limiter *middleware.RateLimiter, log zerolog.Logger) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := limiter.Cleanup(visitorIdleTimeout); n > 0 {
				log.Debug().Int("removed", n).Msg("rate limiter visitors evicted")
			}
		}
	}
}
