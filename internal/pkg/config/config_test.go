package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestProcess_Defaults(t *testing.T) {
	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.Backend.URL != "https://api.gari-mobility.tech" {
		t.Fatalf("unexpected backend url %q", cfg.Backend.URL)
	}
	if cfg.Backend.Timeout != 15*time.Second {
		t.Fatalf("expected 15s backend timeout, got %s", cfg.Backend.Timeout)
	}
	if cfg.Session.TTL != 24*time.Hour || cfg.Session.RememberTTL != 30*24*time.Hour {
		t.Fatalf("unexpected session ttls: %s %s", cfg.Session.TTL, cfg.Session.RememberTTL)
	}
	if cfg.StoreDriver != StoreRedis {
		t.Fatalf("expected redis driver, got %q", cfg.StoreDriver)
	}
	if !cfg.DemoFallback {
		t.Fatalf("expected demo fallback enabled by default")
	}
}

func TestProcess_Overrides(t *testing.T) {
	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{
		"BACKEND_URL":  "http://localhost:9000/",
		"STORE_DRIVER": " Memory ",
		"SESSION_TTL":  "2h",
		"REDIS_DB":     "3",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend.URL != "http://localhost:9000" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Backend.URL)
	}
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("expected memory driver, got %q", cfg.StoreDriver)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Fatalf("expected 2h ttl, got %s", cfg.Session.TTL)
	}
	if cfg.Redis.DB != 3 {
		t.Fatalf("expected redis db 3, got %d", cfg.Redis.DB)
	}
}

func TestProcess_UnknownDriver(t *testing.T) {
	_, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{"STORE_DRIVER": "etcd"}))
	if err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestProcess_ProductionRequiresSecret(t *testing.T) {
	_, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{"ENV": "production"}))
	if err == nil {
		t.Fatalf("expected error without SESSION_SECRET in production")
	}
}
