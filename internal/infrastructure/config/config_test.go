package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.JWTSecret != "dev-secret" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TokenTTL != 24*time.Hour || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected durations: ttl=%v shutdown=%v", cfg.TokenTTL, cfg.ShutdownTimeout)
	}
	if cfg.StoreBackend != BackendMemory || cfg.SessionBackend != BackendMemory {
		t.Fatalf("unexpected backends: %s/%s", cfg.StoreBackend, cfg.SessionBackend)
	}
	if cfg.Mongo.Database != "marketplace" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected nested defaults: %+v %+v", cfg.Mongo, cfg.Redis)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":            "9090",
		"TOKEN_TTL":       "2h",
		"STORE_BACKEND":   "mongo",
		"SESSION_BACKEND": "redis",
		"REDIS_DB":        "3",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.TokenTTL != 2*time.Hour || cfg.Redis.DB != 3 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.StoreBackend != BackendMongo || cfg.SessionBackend != BackendRedis {
		t.Fatalf("unexpected backends: %s/%s", cfg.StoreBackend, cfg.SessionBackend)
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown store":           {"STORE_BACKEND": "sqlite"},
		"unknown session backend": {"SESSION_BACKEND": "memcached"},
		"default secret in prod":  {"ENV": "production"},
		"bad duration":            {"TOKEN_TTL": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected error for %v", env)
			}
		})
	}
}
