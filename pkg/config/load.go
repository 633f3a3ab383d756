package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads a YAML configuration file, fills in defaults for
// anything the file leaves unset, and validates the result. Environment
// variables are not consulted; LoadConfigWithEnvOverrides layers those
// on top.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads the file like LoadConfig, then lets
// CYCLONEDX_* environment variables override individual fields. Names
// follow CYCLONEDX_SECTION_FIELD, so CYCLONEDX_LOGGING_LEVEL overrides
// logging.level.
//
// A variable that is set but does not parse is an error rather than a
// silent fall back to the file value. The merged result is validated
// again, since an override can push a field out of range.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides copies set CYCLONEDX_* variables over cfg.
// Unparseable values are collected and reported together.
func applyEnvOverrides(cfg *Config) error {
	var errs []error

	str := func(name string, dst *string) {
		if val := os.Getenv(name); val != "" {
			*dst = val
		}
	}
	boolean := func(name string, dst *bool) {
		val := os.Getenv(name)
		if val == "" {
			return
		}
		b, err := strconv.ParseBool(val)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: not a boolean", name, val))
			return
		}
		*dst = b
	}
	integer := func(name string, dst *int) {
		val := os.Getenv(name)
		if val == "" {
			return
		}
		i, err := strconv.Atoi(val)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: not an integer", name, val))
			return
		}
		*dst = i
	}
	duration := func(name string, dst *time.Duration) {
		val := os.Getenv(name)
		if val == "" {
			return
		}
		d, err := time.ParseDuration(val)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: not a duration", name, val))
			return
		}
		*dst = d
	}

	str("CYCLONEDX_LOGGING_LEVEL", &cfg.Logging.Level)
	str("CYCLONEDX_LOGGING_FORMAT", &cfg.Logging.Format)

	integer("CYCLONEDX_VALIDATION_MAX_DEPTH", &cfg.Validation.MaxDepth)
	boolean("CYCLONEDX_VALIDATION_FAIL_ON_WARNINGS", &cfg.Validation.FailOnWarnings)

	boolean("CYCLONEDX_HISTORY_ENABLED", &cfg.History.Enabled)
	str("CYCLONEDX_HISTORY_SQLITE_PATH", &cfg.History.SQLite.Path)
	duration("CYCLONEDX_HISTORY_SQLITE_BUSY_TIMEOUT", &cfg.History.SQLite.BusyTimeout)
	integer("CYCLONEDX_HISTORY_RECORDER_ASYNC_BUFFER", &cfg.History.Recorder.AsyncBuffer)
	boolean("CYCLONEDX_HISTORY_RETENTION_ENABLED", &cfg.History.Retention.Enabled)
	integer("CYCLONEDX_HISTORY_RETENTION_MAX_AGE_DAYS", &cfg.History.Retention.MaxAgeDays)
	str("CYCLONEDX_HISTORY_RETENTION_SCHEDULE", &cfg.History.Retention.Schedule)

	duration("CYCLONEDX_WATCH_DEBOUNCE_INTERVAL", &cfg.Watch.DebounceInterval)
	if val := os.Getenv("CYCLONEDX_WATCH_EXTENSIONS"); val != "" {
		if exts := splitExtensions(val); len(exts) > 0 {
			cfg.Watch.Extensions = exts
		}
	}
	boolean("CYCLONEDX_WATCH_SKIP_HIDDEN", &cfg.Watch.SkipHidden)

	boolean("CYCLONEDX_METRICS_ENABLED", &cfg.Metrics.Enabled)
	str("CYCLONEDX_METRICS_NAMESPACE", &cfg.Metrics.Namespace)
	integer("CYCLONEDX_METRICS_PORT", &cfg.Metrics.Port)

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment override: %w", errors.Join(errs...))
	}
	return nil
}

// splitExtensions parses the comma separated form of
// CYCLONEDX_WATCH_EXTENSIONS, dropping empty entries.
func splitExtensions(val string) []string {
	var exts []string
	for _, ext := range strings.Split(val, ",") {
		if ext = strings.TrimSpace(ext); ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}
