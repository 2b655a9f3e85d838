package config

import "testing"

func TestNewTestConfig(t *testing.T) {
	cfg := NewTestConfig().Build()

	if cfg.Sync.InFlightLimit != DefaultInFlightLimit {
		t.Errorf("InFlightLimit = %d, want %d", cfg.Sync.InFlightLimit, DefaultInFlightLimit)
	}
	if cfg.Logging.Level != DefaultLoggingLevel {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, DefaultLoggingLevel)
	}
	if err := Validate(&cfg); err != nil {
		t.Errorf("default test config should be valid, got %v", err)
	}
}

func TestConfigBuilderChainedCalls(t *testing.T) {
	cfg := NewTestConfig().
		WithInFlightLimit(16).
		WithBatchSize(50).
		WithWatch("*/15 * * * *").
		Build()

	if cfg.Sync.InFlightLimit != 16 {
		t.Error("chained WithInFlightLimit failed")
	}
	if cfg.Sync.BatchSize != 50 {
		t.Error("chained WithBatchSize failed")
	}
	if !cfg.Watch.Enabled || cfg.Watch.Schedule != "*/15 * * * *" {
		t.Error("chained WithWatch failed")
	}
	if err := Validate(&cfg); err != nil {
		t.Errorf("chained config should remain valid, got %v", err)
	}
}
