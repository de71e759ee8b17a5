package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/todo?sslmode=disable")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := cfg.Server.Address(); got != "127.0.0.1:8080" {
		t.Fatalf("expected default address 127.0.0.1:8080, got %s", got)
	}
	if cfg.Database.MaxOpenConns != 10 {
		t.Fatalf("expected default pool size 10, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.App.ReferenceTimezone != "Asia/Jakarta" {
		t.Fatalf("unexpected reference timezone %q", cfg.App.ReferenceTimezone)
	}
	if cfg.Security.RateLimitWindow != time.Minute {
		t.Fatalf("unexpected rate limit window %s", cfg.Security.RateLimitWindow)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/todo")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("MAX_CONNECTION", "4")
	t.Setenv("DB_MAX_IDLE_CONNS", "8")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := cfg.Server.Address(); got != "0.0.0.0:9000" {
		t.Fatalf("unexpected address %s", got)
	}
	if cfg.Database.MaxOpenConns != 4 {
		t.Fatalf("expected pool size 4, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns != 4 {
		t.Fatalf("idle conns should be capped at the pool size, got %d", cfg.Database.MaxIdleConns)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Fatalf("unexpected read timeout %s", cfg.Server.ReadTimeout)
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/todo")
	t.Setenv("SERVER_PORT", "70000")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for out of range port")
	}
}
