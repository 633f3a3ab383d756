// Package config loads and validates the toolchain configuration.
//
// # Overview
//
// Configuration lives in a YAML file with one section per subsystem
// (logging, validation, history, watch, metrics). Every field has a
// default, so a partial file or no file at all still yields a working
// configuration. Loading goes through four steps: read the file, apply
// defaults to unset fields, apply environment overrides, validate.
// A configuration that fails validation is never returned.
//
//	cfg, err := config.LoadConfig("config.yaml")
//	cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Overrides
//
// Variables named CYCLONEDX_SECTION_FIELD override the corresponding
// file values, for example:
//
//   - CYCLONEDX_LOGGING_LEVEL overrides logging.level
//   - CYCLONEDX_VALIDATION_MAX_DEPTH overrides validation.max_depth
//   - CYCLONEDX_HISTORY_SQLITE_PATH overrides history.sqlite.path
//
// An override that fails to parse is rejected; it does not fall back to
// the file value silently.
//
// # Process-wide Access
//
// Commands install the configuration once at startup and read it from
// anywhere afterwards:
//
//	if err := config.Initialize("config.yaml"); err != nil {
//	    return err
//	}
//	cfg := config.GetConfig()
//
// Tests inject fixtures with SetConfig instead of going through a file.
//
// # Validation
//
// Validate collects every problem instead of stopping at the first one,
// and each finding names the offending field:
//
//	configuration validation failed with 2 errors:
//	  - logging.level: invalid logging level "trace": must be 'debug', 'info', 'warn', or 'error'
//	  - history.retention.schedule: invalid cron schedule "every day": ...
//
// # Example
//
// A minimal configuration file:
//
//	logging:
//	  level: "info"
//	  format: "json"
//
//	validation:
//	  max_depth: 64
//
//	history:
//	  enabled: true
//	  sqlite:
//	    path: "data/history.db"
//
//	watch:
//	  debounce_interval: 500ms
//	  extensions: [".json"]
package config
