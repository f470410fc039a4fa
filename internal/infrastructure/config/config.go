package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Database
	DatabaseURL            string        `env:"DATABASE_URL"             envDefault:"postgres://fx:fx@localhost:5432/fxwarehouse?sslmode=disable"`
	DatabaseMaxConns       int           `env:"DATABASE_MAX_CONNS"       envDefault:"25"`
	DatabaseMinConns       int           `env:"DATABASE_MIN_CONNS"       envDefault:"5"`
	DatabaseConnectTimeout time.Duration `env:"DATABASE_CONNECT_TIMEOUT" envDefault:"30s"`
	DatabaseRunMigrations  bool          `env:"DATABASE_RUN_MIGRATIONS"  envDefault:"true"`
	DatabaseMigrationsPath string        `env:"DATABASE_MIGRATIONS_PATH" envDefault:"internal/infrastructure/postgres/migrations"`

	// Redis
	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"60s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	HTTPMaxBodyBytes    int64         `env:"HTTP_MAX_BODY_BYTES"   envDefault:"10485760"`

	// Rate limiting (0 disables)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Idempotency
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Deals
	DealCacheTTL        time.Duration `env:"DEAL_CACHE_TTL"        envDefault:"5m"`
	ImportWorkers       int           `env:"IMPORT_WORKERS"        envDefault:"1"`
	ImportRecordTimeout time.Duration `env:"IMPORT_RECORD_TIMEOUT" envDefault:"10s"`
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.ImportWorkers < 1 {
		return nil, errors.New("IMPORT_WORKERS must be at least 1")
	}

	return cfg, nil
}
