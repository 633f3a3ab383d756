package config

import "time"

// Config is the root configuration structure for the CycloneDX validator.
// It contains all configuration sections for validation behavior, logging,
// run history, watch mode, and metrics.
type Config struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Validation contains settings that shape a validation run, such as
	// the recursion budget and strictness.
	Validation ValidationConfig `yaml:"validation"`

	// History contains configuration for the validation run archive,
	// including the SQLite backend and retention settings.
	History HistoryConfig `yaml:"history"`

	// Watch contains configuration for watch mode, which re-validates
	// SBOM files when they change on disk.
	Watch WatchConfig `yaml:"watch"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Options: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format.
	// Options: "json", "text", "console".
	// Default: "json"
	Format string `yaml:"format"`
}

// ValidationConfig contains settings applied to every validation run.
type ValidationConfig struct {
	// MaxDepth bounds how deeply nested a document may be. Nesting past
	// the budget is reported as a validation error rather than descending
	// further. Document nesting is author-controlled, so the budget must
	// stay finite.
	// Default: 64
	MaxDepth int `yaml:"max_depth"`

	// FailOnWarnings treats a document with warnings as failed. Warnings
	// never affect the document's validity verdict; this only changes the
	// process exit status.
	// Default: false
	FailOnWarnings bool `yaml:"fail_on_warnings"`
}

// HistoryConfig contains configuration for the validation run archive.
type HistoryConfig struct {
	// Enabled controls whether validation runs are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// SQLite contains configuration for the SQLite storage backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Recorder contains configuration for asynchronous run recording.
	Recorder RecorderConfig `yaml:"recorder"`

	// Retention contains configuration for pruning old run records.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig tunes the SQLite database backing the run history.
type SQLiteConfig struct {
	// Path is the filesystem path to the SQLite database file.
	// The parent directory is created if it does not exist.
	// Default: "data/history.db"
	Path string `yaml:"path"`

	// MaxOpenConns caps concurrent database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns caps connections kept open between queries.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables SQLite write-ahead logging, which allows concurrent
	// reads while writing.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long SQLite waits for a locked database before
	// returning an error.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RecorderConfig contains configuration for asynchronous run recording.
type RecorderConfig struct {
	// AsyncBuffer is the size of the in-memory queue between validation
	// and the storage writer. When the queue is full, new records are
	// dropped rather than blocking validation.
	// Default: 1000
	AsyncBuffer int `yaml:"async_buffer"`
}

// RetentionConfig contains configuration for pruning old run records.
type RetentionConfig struct {
	// Enabled controls whether scheduled pruning runs.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// MaxAgeDays is the age in days past which run records are pruned.
	// Default: 90
	MaxAgeDays int `yaml:"max_age_days"`

	// Schedule is a standard 5-field cron expression controlling when
	// pruning runs.
	// Default: "0 3 * * *" (daily at 03:00)
	Schedule string `yaml:"schedule"`
}

// WatchConfig contains configuration for watch mode.
type WatchConfig struct {
	// DebounceInterval is how long to wait after the last filesystem
	// event before re-validating, so editors that write in bursts
	// trigger one run instead of many.
	// Default: 500ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// Extensions lists the file extensions watched for changes.
	// Default: [".json"]
	Extensions []string `yaml:"extensions"`

	// SkipHidden ignores dotfiles and files inside hidden directories.
	// Default: true
	SkipHidden bool `yaml:"skip_hidden"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether validation metrics are collected.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the prefix applied to every metric name.
	// Default: "cyclonedx"
	Namespace string `yaml:"namespace"`

	// Path is where the exposition endpoint is mounted in watch mode.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Port is the port for the metrics endpoint in watch mode
	// (0 = no endpoint).
	// Default: 0
	Port int `yaml:"port"`
}
