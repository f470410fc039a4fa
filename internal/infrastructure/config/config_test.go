package config_test

import (
	"testing"
	"time"

	"github.com/iho/fxwarehouse/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.ImportWorkers != 1 {
		t.Fatalf("expected sequential import by default, got %d workers", cfg.ImportWorkers)
	}

	if cfg.ImportRecordTimeout != 10*time.Second {
		t.Fatalf("expected 10s record timeout, got %s", cfg.ImportRecordTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_CONNECT_TIMEOUT", "45s")
	t.Setenv("IMPORT_WORKERS", "8")
	t.Setenv("DEAL_CACHE_TTL", "1m")
	t.Setenv("DATABASE_RUN_MIGRATIONS", "false")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseConnectTimeout != 45*time.Second {
		t.Fatalf("expected connect timeout override, got %s", cfg.DatabaseConnectTimeout)
	}

	if cfg.ImportWorkers != 8 || cfg.DealCacheTTL != time.Minute || cfg.DatabaseRunMigrations {
		t.Fatalf("expected deal settings to be set, got workers=%d ttl=%s migrate=%v", cfg.ImportWorkers, cfg.DealCacheTTL, cfg.DatabaseRunMigrations)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadRejectsZeroWorkers(t *testing.T) {
	t.Setenv("IMPORT_WORKERS", "0")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for zero import workers")
	}
}
