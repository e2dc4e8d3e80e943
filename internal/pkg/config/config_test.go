package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.StoreDriver != DriverMongo || cfg.JWTTTL != 24*time.Hour {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.JWTSecret != devJWTSecret {
		t.Errorf("expected development secret, got %q", cfg.JWTSecret)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("redis must be disabled by default, got %q", cfg.Redis.Addr)
	}
	if cfg.NREL.BaseURL != "https://developer.nrel.gov/api" {
		t.Errorf("unexpected NREL base url %q", cfg.NREL.BaseURL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_DRIVER":          "sqlite",
		"SQLITE_DSN":            ":memory:",
		"JWT_SECRET":            "s3cret",
		"JWT_TTL":               "2h",
		"STATS_CHANGE_CAPACITY": "12.5",
		"IDEMPOTENCY_TTL":       "30m",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreDriver != DriverSQLite || cfg.SQLite.DSN != ":memory:" {
		t.Errorf("store not overridden: %+v", cfg)
	}
	if cfg.JWTSecret != "s3cret" || cfg.JWTTTL != 2*time.Hour {
		t.Errorf("jwt not overridden: %q %v", cfg.JWTSecret, cfg.JWTTTL)
	}
	if cfg.Stats.CapacityChange != 12.5 || cfg.Idempotency.TTL != 30*time.Minute {
		t.Errorf("unexpected stats/idempotency: %+v %+v", cfg.Stats, cfg.Idempotency)
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":       {"STORE_DRIVER": "postgres"},
		"no secret in prod":    {"ENV": "production"},
		"non-positive jwt ttl": {"JWT_TTL": "0s"},
	}
	for name, env := range cases {
		_, err := load(context.Background(), envconfig.MapLookuper(env))
		if err == nil || !strings.HasPrefix(err.Error(), "config:") {
			t.Errorf("%s: expected config error, got %v", name, err)
		}
	}
}
