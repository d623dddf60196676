package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if cfg.HTTP.Port != 8080 {
		t.Errorf("HTTP port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.GroupOrders.PollInterval != 30*time.Second {
		t.Errorf("poll interval = %v, want 30s", cfg.GroupOrders.PollInterval)
	}
	if cfg.GroupOrders.SweepInterval != time.Minute {
		t.Errorf("sweep interval = %v, want 1m", cfg.GroupOrders.SweepInterval)
	}
	if !cfg.GroupOrders.SweepEnabled {
		t.Error("sweep should default to enabled")
	}
	if cfg.Database.ReaderDSN != cfg.Database.WriterDSN {
		t.Error("reader DSN should fall back to writer DSN")
	}
	if cfg.Messaging.Kafka.Topic != "mandikart.events" {
		t.Errorf("topic = %q, want mandikart.events", cfg.Messaging.Kafka.Topic)
	}
}

func TestOverrides(t *testing.T) {
	t.Setenv("GROUP_ORDER_POLL_INTERVAL", "10s")
	t.Setenv("GROUP_ORDER_SWEEP_ENABLED", "false")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if cfg.GroupOrders.PollInterval != 10*time.Second {
		t.Errorf("poll interval = %v, want 10s", cfg.GroupOrders.PollInterval)
	}
	if cfg.GroupOrders.SweepEnabled {
		t.Error("sweep should be disabled via env")
	}
}

func TestInvalidDrivers(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "memcached")
	if _, err := New(); err == nil {
		t.Error("expected error for unsupported cache driver")
	}
}
