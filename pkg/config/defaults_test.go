package config

import (
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name  string
		input Config
		check func(*testing.T, *Config)
	}{
		{
			name:  "empty config gets all defaults",
			input: Config{},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != DefaultLoggingLevel {
					t.Errorf("expected logging level %q, got %q", DefaultLoggingLevel, cfg.Logging.Level)
				}
				if cfg.Logging.Format != DefaultLoggingFormat {
					t.Errorf("expected logging format %q, got %q", DefaultLoggingFormat, cfg.Logging.Format)
				}
				if cfg.Validation.MaxDepth != DefaultValidationMaxDepth {
					t.Errorf("expected max depth %d, got %d", DefaultValidationMaxDepth, cfg.Validation.MaxDepth)
				}
				if cfg.Validation.FailOnWarnings {
					t.Error("expected fail on warnings to default to false")
				}
				if cfg.History.Enabled {
					t.Error("expected history to default to disabled")
				}
				if cfg.History.SQLite.Path != DefaultHistorySQLitePath {
					t.Errorf("expected SQLite path %q, got %q", DefaultHistorySQLitePath, cfg.History.SQLite.Path)
				}
				if cfg.History.SQLite.MaxOpenConns != DefaultHistorySQLiteMaxOpenConns {
					t.Errorf("expected max open conns %d, got %d", DefaultHistorySQLiteMaxOpenConns, cfg.History.SQLite.MaxOpenConns)
				}
				if !cfg.History.SQLite.WALMode {
					t.Error("expected WAL mode to default to true")
				}
				if cfg.History.SQLite.BusyTimeout != DefaultHistorySQLiteBusyTimeout {
					t.Errorf("expected busy timeout %v, got %v", DefaultHistorySQLiteBusyTimeout, cfg.History.SQLite.BusyTimeout)
				}
				if cfg.History.Recorder.AsyncBuffer != DefaultHistoryRecorderBuffer {
					t.Errorf("expected async buffer %d, got %d", DefaultHistoryRecorderBuffer, cfg.History.Recorder.AsyncBuffer)
				}
				if !cfg.History.Retention.Enabled {
					t.Error("expected retention to default to enabled")
				}
				if cfg.History.Retention.MaxAgeDays != DefaultHistoryRetentionMaxAge {
					t.Errorf("expected retention max age %d, got %d", DefaultHistoryRetentionMaxAge, cfg.History.Retention.MaxAgeDays)
				}
				if cfg.History.Retention.Schedule != DefaultHistoryRetentionSchedule {
					t.Errorf("expected retention schedule %q, got %q", DefaultHistoryRetentionSchedule, cfg.History.Retention.Schedule)
				}
				if cfg.Watch.DebounceInterval != DefaultWatchDebounceInterval {
					t.Errorf("expected debounce interval %v, got %v", DefaultWatchDebounceInterval, cfg.Watch.DebounceInterval)
				}
				if len(cfg.Watch.Extensions) != 1 || cfg.Watch.Extensions[0] != ".json" {
					t.Errorf("expected extensions [.json], got %v", cfg.Watch.Extensions)
				}
				if !cfg.Watch.SkipHidden {
					t.Error("expected skip hidden to default to true")
				}
				if cfg.Metrics.Enabled {
					t.Error("expected metrics to default to disabled")
				}
				if cfg.Metrics.Namespace != DefaultMetricsNamespace {
					t.Errorf("expected metrics namespace %q, got %q", DefaultMetricsNamespace, cfg.Metrics.Namespace)
				}
				if cfg.Metrics.Path != DefaultMetricsPath {
					t.Errorf("expected metrics path %q, got %q", DefaultMetricsPath, cfg.Metrics.Path)
				}
				if cfg.Metrics.Port != 0 {
					t.Errorf("expected metrics port 0, got %d", cfg.Metrics.Port)
				}
			},
		},
		{
			name: "existing values are preserved",
			input: Config{
				Logging:    LoggingConfig{Level: "debug", Format: "text"},
				Validation: ValidationConfig{MaxDepth: 8},
				History: HistoryConfig{
					SQLite:    SQLiteConfig{Path: "custom.db", MaxOpenConns: 2, BusyTimeout: time.Second},
					Recorder:  RecorderConfig{AsyncBuffer: 5},
					Retention: RetentionConfig{MaxAgeDays: 7, Schedule: "30 2 * * *"},
				},
				Watch:   WatchConfig{DebounceInterval: time.Second, Extensions: []string{".json", ".cdx"}},
				Metrics: MetricsConfig{Namespace: "sbom", Path: "/stats"},
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected logging level %q, got %q", "debug", cfg.Logging.Level)
				}
				if cfg.Logging.Format != "text" {
					t.Errorf("expected logging format %q, got %q", "text", cfg.Logging.Format)
				}
				if cfg.Validation.MaxDepth != 8 {
					t.Errorf("expected max depth 8, got %d", cfg.Validation.MaxDepth)
				}
				if cfg.History.SQLite.Path != "custom.db" {
					t.Errorf("expected SQLite path %q, got %q", "custom.db", cfg.History.SQLite.Path)
				}
				if cfg.History.SQLite.BusyTimeout != time.Second {
					t.Errorf("expected busy timeout %v, got %v", time.Second, cfg.History.SQLite.BusyTimeout)
				}
				if cfg.History.Retention.Schedule != "30 2 * * *" {
					t.Errorf("expected retention schedule %q, got %q", "30 2 * * *", cfg.History.Retention.Schedule)
				}
				if cfg.Watch.DebounceInterval != time.Second {
					t.Errorf("expected debounce interval %v, got %v", time.Second, cfg.Watch.DebounceInterval)
				}
				if len(cfg.Watch.Extensions) != 2 {
					t.Errorf("expected 2 extensions, got %v", cfg.Watch.Extensions)
				}
				if cfg.Metrics.Namespace != "sbom" {
					t.Errorf("expected metrics namespace %q, got %q", "sbom", cfg.Metrics.Namespace)
				}
				if cfg.Metrics.Path != "/stats" {
					t.Errorf("expected metrics path %q, got %q", "/stats", cfg.Metrics.Path)
				}
				// Partial sections still receive defaults for unset fields
				if cfg.History.SQLite.MaxIdleConns != DefaultHistorySQLiteMaxIdleConns {
					t.Errorf("expected max idle conns %d, got %d", DefaultHistorySQLiteMaxIdleConns, cfg.History.SQLite.MaxIdleConns)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.input
			ApplyDefaults(&cfg)
			tt.check(t, &cfg)
		})
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	cfg := Config{}
	ApplyDefaults(&cfg)
	first := cfg

	ApplyDefaults(&cfg)
	if cfg.Validation.MaxDepth != first.Validation.MaxDepth {
		t.Errorf("max depth changed on second apply: %d vs %d", cfg.Validation.MaxDepth, first.Validation.MaxDepth)
	}
	if cfg.History.SQLite.Path != first.History.SQLite.Path {
		t.Errorf("SQLite path changed on second apply: %q vs %q", cfg.History.SQLite.Path, first.History.SQLite.Path)
	}
	if cfg.Watch.DebounceInterval != first.Watch.DebounceInterval {
		t.Errorf("debounce interval changed on second apply: %v vs %v", cfg.Watch.DebounceInterval, first.Watch.DebounceInterval)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}
