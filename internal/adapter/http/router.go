package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/fxwarehouse/internal/adapter/http/handler"
	"github.com/iho/fxwarehouse/internal/adapter/http/middleware"
	"github.com/iho/fxwarehouse/internal/infrastructure/metrics"
	"github.com/iho/fxwarehouse/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	DealHandler   *handler.DealHandler
	HealthHandler *handler.HealthHandler
	Logger        zerolog.Logger

	// Optional
	Metrics          *metrics.Metrics
	MetricsHandler   http.Handler
	RateLimiter      *middleware.RateLimiter
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	MaxBodyBytes     int64
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewRecovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.MaxBodyBytes > 0 {
			r.Use(chimiddleware.RequestSize(cfg.MaxBodyBytes))
		}

		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Post("/deals/import", cfg.DealHandler.Import)
		r.Post("/deals", cfg.DealHandler.Create)
		r.Get("/deals", cfg.DealHandler.List)
		r.Get("/deals/{dealID}", cfg.DealHandler.Get)
	})

	return r
}
