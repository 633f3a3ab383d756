package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/robfig/cron/v3"
)

// metricsNamespacePattern matches valid Prometheus metric name prefixes.
var metricsNamespacePattern = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:]*$`)

// FieldError pins one validation problem to the configuration field
// that caused it.
type FieldError struct {
	// Field is the dotted path of the offending field, such as
	// "history.sqlite.path".
	Field string

	// Message says what is wrong with the value.
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError carries every FieldError found in one Validate pass,
// so a user sees the full list rather than fixing problems one at a
// time.
type ValidationError struct {
	Errors []FieldError
}

// Error renders one line for a single problem and an indented list for
// several.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate checks every section of the configuration and returns a
// ValidationError listing all problems, or nil when the configuration
// is usable.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateLogging(&cfg.Logging)...)
	errs = append(errs, validateValidation(&cfg.Validation)...)
	errs = append(errs, validateHistory(&cfg.History)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)
	errs = append(errs, validateMetrics(&cfg.Metrics)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateLogging validates logging configuration.
func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.Level == "" {
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: "logging level is required",
		})
	} else if !validLevels[cfg.Level] {
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if cfg.Format == "" {
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: "logging format is required",
		})
	} else if !validFormats[cfg.Format] {
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json' or 'text'", cfg.Format),
		})
	}

	return errs
}

// validateValidation validates document validation configuration.
func validateValidation(cfg *ValidationConfig) []FieldError {
	var errs []FieldError

	if cfg.MaxDepth <= 0 {
		errs = append(errs, FieldError{
			Field:   "validation.max_depth",
			Message: "max depth must be positive",
		})
	}
	if cfg.MaxDepth > 10000 {
		errs = append(errs, FieldError{
			Field:   "validation.max_depth",
			Message: "max depth exceeds reasonable limit (10,000)",
		})
	}

	return errs
}

// validateHistory validates history configuration.
func validateHistory(cfg *HistoryConfig) []FieldError {
	var errs []FieldError

	// If history is disabled, skip validation
	if !cfg.Enabled {
		return errs
	}

	if cfg.SQLite.Path == "" {
		errs = append(errs, FieldError{
			Field:   "history.sqlite.path",
			Message: "SQLite path is required when history is enabled",
		})
	}
	if cfg.SQLite.MaxOpenConns < 1 {
		errs = append(errs, FieldError{
			Field:   "history.sqlite.max_open_conns",
			Message: "max open connections must be positive",
		})
	}
	if cfg.SQLite.MaxIdleConns < 0 {
		errs = append(errs, FieldError{
			Field:   "history.sqlite.max_idle_conns",
			Message: "max idle connections must be non-negative",
		})
	}
	if cfg.SQLite.MaxIdleConns > cfg.SQLite.MaxOpenConns {
		errs = append(errs, FieldError{
			Field:   "history.sqlite.max_idle_conns",
			Message: "max idle connections cannot exceed max open connections",
		})
	}
	if cfg.SQLite.BusyTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "history.sqlite.busy_timeout",
			Message: "busy timeout must be positive",
		})
	}

	if cfg.Recorder.AsyncBuffer < 1 {
		errs = append(errs, FieldError{
			Field:   "history.recorder.async_buffer",
			Message: "async buffer size must be positive",
		})
	}

	if cfg.Retention.Enabled {
		if cfg.Retention.MaxAgeDays < 1 {
			errs = append(errs, FieldError{
				Field:   "history.retention.max_age_days",
				Message: "max age must be at least one day",
			})
		}
		if cfg.Retention.Schedule == "" {
			errs = append(errs, FieldError{
				Field:   "history.retention.schedule",
				Message: "schedule is required when retention is enabled",
			})
		} else if _, err := cron.ParseStandard(cfg.Retention.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "history.retention.schedule",
				Message: fmt.Sprintf("invalid cron schedule %q: %v", cfg.Retention.Schedule, err),
			})
		}
	}

	return errs
}

// validateWatch validates watch configuration.
func validateWatch(cfg *WatchConfig) []FieldError {
	var errs []FieldError

	if cfg.DebounceInterval < 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce_interval",
			Message: "debounce interval must be positive",
		})
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("watch.extensions.%d", i),
				Message: fmt.Sprintf("extension %q must start with '.'", ext),
			})
		}
	}

	return errs
}

// validateMetrics validates metrics configuration.
func validateMetrics(cfg *MetricsConfig) []FieldError {
	var errs []FieldError

	if !cfg.Enabled {
		return errs
	}

	if cfg.Namespace == "" {
		errs = append(errs, FieldError{
			Field:   "metrics.namespace",
			Message: "namespace is required when metrics are enabled",
		})
	} else if !metricsNamespacePattern.MatchString(cfg.Namespace) {
		errs = append(errs, FieldError{
			Field:   "metrics.namespace",
			Message: fmt.Sprintf("invalid namespace %q: must match %s", cfg.Namespace, metricsNamespacePattern.String()),
		})
	}

	if cfg.Path != "" && !strings.HasPrefix(cfg.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "metrics.path",
			Message: fmt.Sprintf("path %q must start with '/'", cfg.Path),
		})
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		errs = append(errs, FieldError{
			Field:   "metrics.port",
			Message: "port must be between 0 and 65535",
		})
	}

	return errs
}
