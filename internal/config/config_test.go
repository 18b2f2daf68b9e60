package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppliesEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := []byte("server:\n  port: \"9000\"\nredis:\n  addr: \"cache:6379\"\nlimits:\n  dsaSubmissionsPerMinute: 3\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Fatalf("expected yaml port, got %q", cfg.Server.Port)
	}
	if cfg.Postgres.URL != "postgres://env/db" {
		t.Fatalf("expected env postgres url, got %q", cfg.Postgres.URL)
	}
	if cfg.Redis.Addr != "cache:6379" {
		t.Fatalf("empty env must not override, got %q", cfg.Redis.Addr)
	}
	if cfg.Limits.DsaSubmissionsPerMinute != 3 {
		t.Fatalf("expected limit 3, got %d", cfg.Limits.DsaSubmissionsPerMinute)
	}
}

func TestShippedConfigLeavesThrottleOff(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Limits.DsaSubmissionsPerMinute != 0 {
		t.Fatalf("dsa throttle must be opt-in, got %d/min", cfg.Limits.DsaSubmissionsPerMinute)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.Auth.JWTSecret != "s3cret" {
		t.Fatalf("expected env secret, got %q", cfg.Auth.JWTSecret)
	}
}

func TestDuration(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"", time.Hour},
		{"1m", time.Minute},
		{"bogus", time.Hour},
	}
	for _, c := range cases {
		if got := Duration(c.raw, time.Hour); got != c.want {
			t.Fatalf("Duration(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}
