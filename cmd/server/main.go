package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/fxwarehouse/internal/adapter/http"
	"github.com/iho/fxwarehouse/internal/adapter/http/handler"
	"github.com/iho/fxwarehouse/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/fxwarehouse/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/fxwarehouse/internal/adapter/repository/redis"
	"github.com/iho/fxwarehouse/internal/infrastructure/config"
	"github.com/iho/fxwarehouse/internal/infrastructure/logger"
	"github.com/iho/fxwarehouse/internal/infrastructure/metrics"
	"github.com/iho/fxwarehouse/internal/infrastructure/postgres"
	"github.com/iho/fxwarehouse/internal/infrastructure/redis"
	"github.com/iho/fxwarehouse/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseConnectTimeout,
	}, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if cfg.DatabaseRunMigrations {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.DatabaseMigrationsPath, log); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, redis.ClientConfig{URL: cfg.RedisURL})
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	dealRepo := postgresRepo.NewDealRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	persister := usecase.NewDealPersister(txManager, dealRepo, log).WithRecordTimeout(cfg.ImportRecordTimeout)
	importUC := usecase.NewImportUseCase(usecase.ImportConfig{
		Persister: persister,
		IDGen:     postgresRepo.NewULIDGenerator(),
		Recorder:  m,
		Logger:    log,
		Workers:   cfg.ImportWorkers,
	})
	dealUC := usecase.NewDealUseCase(persister, dealRepo, cache, cfg.DealCacheTTL, log)

	routerCfg := httpAdapter.RouterConfig{
		DealHandler:      handler.NewDealHandler(importUC, dealUC),
		HealthHandler:    handler.NewHealthHandler(pool, handler.RedisPinger(redisClient)),
		Logger:           log,
		Metrics:          m,
		MetricsHandler:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		MaxBodyBytes:     cfg.HTTPMaxBodyBytes,
	}
	if cfg.RateLimitRPS > 0 {
		rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m.RateLimitHits)
		go rl.RunCleanup(ctx, time.Minute, 10*time.Minute)
		routerCfg.RateLimiter = rl
	}

	server := newHTTPServer(cfg, httpAdapter.NewRouter(routerCfg))

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Int("import_workers", cfg.ImportWorkers).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}
}
