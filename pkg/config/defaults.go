package config

import "time"

// Default configuration values.
const (
	// Logging defaults
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "json"

	// Validation defaults
	DefaultValidationMaxDepth = 64

	// History defaults
	DefaultHistorySQLitePath         = "data/history.db"
	DefaultHistorySQLiteMaxOpenConns = 10
	DefaultHistorySQLiteMaxIdleConns = 5
	DefaultHistorySQLiteWALMode      = true
	DefaultHistorySQLiteBusyTimeout  = 5 * time.Second
	DefaultHistoryRecorderBuffer     = 1000
	DefaultHistoryRetentionEnabled   = true
	DefaultHistoryRetentionMaxAge    = 90
	DefaultHistoryRetentionSchedule  = "0 3 * * *"

	// Watch defaults
	DefaultWatchDebounceInterval = 500 * time.Millisecond
	DefaultWatchSkipHidden       = true

	// Metrics defaults
	DefaultMetricsNamespace = "cyclonedx"
	DefaultMetricsPath      = "/metrics"
)

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	// Validation defaults
	if cfg.Validation.MaxDepth == 0 {
		cfg.Validation.MaxDepth = DefaultValidationMaxDepth
	}
	// FailOnWarnings defaults to false (zero value), which is correct

	// SQLite defaults
	if cfg.History.SQLite.Path == "" {
		cfg.History.SQLite.Path = DefaultHistorySQLitePath
	}
	if cfg.History.SQLite.MaxOpenConns == 0 {
		cfg.History.SQLite.MaxOpenConns = DefaultHistorySQLiteMaxOpenConns
	}
	if cfg.History.SQLite.MaxIdleConns == 0 {
		cfg.History.SQLite.MaxIdleConns = DefaultHistorySQLiteMaxIdleConns
	}
	// WAL mode defaults to true; zero value false cannot be told apart
	// from an explicit false, so disabling WAL is not supported via file
	if !cfg.History.SQLite.WALMode {
		cfg.History.SQLite.WALMode = DefaultHistorySQLiteWALMode
	}
	if cfg.History.SQLite.BusyTimeout == 0 {
		cfg.History.SQLite.BusyTimeout = DefaultHistorySQLiteBusyTimeout
	}

	// Recorder defaults
	if cfg.History.Recorder.AsyncBuffer == 0 {
		cfg.History.Recorder.AsyncBuffer = DefaultHistoryRecorderBuffer
	}

	// Retention defaults
	if !cfg.History.Retention.Enabled {
		cfg.History.Retention.Enabled = DefaultHistoryRetentionEnabled
	}
	if cfg.History.Retention.MaxAgeDays == 0 {
		cfg.History.Retention.MaxAgeDays = DefaultHistoryRetentionMaxAge
	}
	if cfg.History.Retention.Schedule == "" {
		cfg.History.Retention.Schedule = DefaultHistoryRetentionSchedule
	}

	// Watch defaults
	if cfg.Watch.DebounceInterval == 0 {
		cfg.Watch.DebounceInterval = DefaultWatchDebounceInterval
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = []string{".json"}
	}
	if !cfg.Watch.SkipHidden {
		cfg.Watch.SkipHidden = DefaultWatchSkipHidden
	}

	// Metrics defaults
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	// History.Enabled, Metrics.Enabled, and Metrics.Port default to zero values
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
