package config_test

import (
	"testing"

	"github.com/iho/txengine/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("METRICS_FILE", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.LogEnabled {
		t.Fatalf("expected logging disabled by default")
	}

	if cfg.LogFormat != "console" {
		t.Fatalf("expected default log format console, got %s", cfg.LogFormat)
	}

	if cfg.MetricsFile != "" {
		t.Fatalf("expected metrics file default to be empty, got %q", cfg.MetricsFile)
	}

	if cfg.PrintDB || cfg.Reconcile {
		t.Fatalf("expected diagnostics disabled by default, got %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOG_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("PRINT_DB", "true")
	t.Setenv("RECONCILE", "true")
	t.Setenv("METRICS_FILE", "/tmp/txengine.prom")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if !cfg.LogEnabled || cfg.LogLevel != "warn" || cfg.LogFormat != "json" {
		t.Fatalf("expected logging overrides, got %+v", cfg)
	}

	if !cfg.PrintDB || !cfg.Reconcile {
		t.Fatalf("expected diagnostics overrides, got %+v", cfg)
	}

	if cfg.MetricsFile != "/tmp/txengine.prom" {
		t.Fatalf("expected metrics file override, got %s", cfg.MetricsFile)
	}
}

func TestLoadInvalidBool(t *testing.T) {
	t.Setenv("LOG_ENABLED", "not-a-bool")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid bool")
	}
}
