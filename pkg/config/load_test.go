package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfigFile(t, `
logging:
  level: "debug"
  format: "text"

validation:
  max_depth: 32
  fail_on_warnings: true

history:
  enabled: true
  sqlite:
    path: "./test-history.db"
    busy_timeout: "2s"
  retention:
    max_age_days: 30

watch:
  debounce_interval: "250ms"
  extensions: [".json", ".cdx.json"]
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level %q, got %q", "debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected logging format %q, got %q", "text", cfg.Logging.Format)
	}
	if cfg.Validation.MaxDepth != 32 {
		t.Errorf("expected max depth 32, got %d", cfg.Validation.MaxDepth)
	}
	if !cfg.Validation.FailOnWarnings {
		t.Error("expected fail on warnings to be true")
	}
	if !cfg.History.Enabled {
		t.Error("expected history to be enabled")
	}
	if cfg.History.SQLite.Path != "./test-history.db" {
		t.Errorf("expected SQLite path %q, got %q", "./test-history.db", cfg.History.SQLite.Path)
	}
	if cfg.History.SQLite.BusyTimeout != 2*time.Second {
		t.Errorf("expected busy timeout %v, got %v", 2*time.Second, cfg.History.SQLite.BusyTimeout)
	}
	if cfg.History.Retention.MaxAgeDays != 30 {
		t.Errorf("expected retention max age 30, got %d", cfg.History.Retention.MaxAgeDays)
	}
	if cfg.Watch.DebounceInterval != 250*time.Millisecond {
		t.Errorf("expected debounce interval %v, got %v", 250*time.Millisecond, cfg.Watch.DebounceInterval)
	}
	if len(cfg.Watch.Extensions) != 2 || cfg.Watch.Extensions[1] != ".cdx.json" {
		t.Errorf("expected extensions [.json .cdx.json], got %v", cfg.Watch.Extensions)
	}

	// Unset fields still receive defaults
	if cfg.History.SQLite.MaxOpenConns != DefaultHistorySQLiteMaxOpenConns {
		t.Errorf("expected max open conns %d, got %d", DefaultHistorySQLiteMaxOpenConns, cfg.History.SQLite.MaxOpenConns)
	}
	if cfg.History.Retention.Schedule != DefaultHistoryRetentionSchedule {
		t.Errorf("expected retention schedule %q, got %q", DefaultHistoryRetentionSchedule, cfg.History.Retention.Schedule)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
	if !strings.Contains(err.Error(), "failed to read configuration file") {
		t.Errorf("expected read error, got: %v", err)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfigFile(t, `
logging:
  level: "info"
  invalid yaml here: [
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfigFile(t, `
logging:
  level: "invalid"
  format: "json"
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("expected ValidationError in error chain, got %T: %v", err, err)
	}
}

func TestLoadConfigWithEnvOverrides_BasicOverrides(t *testing.T) {
	path := writeConfigFile(t, `
logging:
  level: "info"
  format: "json"

validation:
  max_depth: 64
`)

	os.Setenv("CYCLONEDX_LOGGING_LEVEL", "debug")
	os.Setenv("CYCLONEDX_VALIDATION_MAX_DEPTH", "16")
	os.Setenv("CYCLONEDX_HISTORY_SQLITE_PATH", "/tmp/env-history.db")
	defer func() {
		os.Unsetenv("CYCLONEDX_LOGGING_LEVEL")
		os.Unsetenv("CYCLONEDX_VALIDATION_MAX_DEPTH")
		os.Unsetenv("CYCLONEDX_HISTORY_SQLITE_PATH")
	}()

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level %q from env, got %q", "debug", cfg.Logging.Level)
	}
	if cfg.Validation.MaxDepth != 16 {
		t.Errorf("expected max depth 16 from env, got %d", cfg.Validation.MaxDepth)
	}
	if cfg.History.SQLite.Path != "/tmp/env-history.db" {
		t.Errorf("expected SQLite path from env, got %q", cfg.History.SQLite.Path)
	}
}

func TestLoadConfigWithEnvOverrides_Parsing(t *testing.T) {
	path := writeConfigFile(t, `
logging:
  level: "info"
`)

	os.Setenv("CYCLONEDX_WATCH_DEBOUNCE_INTERVAL", "750ms")
	os.Setenv("CYCLONEDX_WATCH_EXTENSIONS", ".json, .cdx.json")
	os.Setenv("CYCLONEDX_HISTORY_ENABLED", "true")
	os.Setenv("CYCLONEDX_METRICS_ENABLED", "true")
	os.Setenv("CYCLONEDX_METRICS_PORT", "9464")
	defer func() {
		os.Unsetenv("CYCLONEDX_WATCH_DEBOUNCE_INTERVAL")
		os.Unsetenv("CYCLONEDX_WATCH_EXTENSIONS")
		os.Unsetenv("CYCLONEDX_HISTORY_ENABLED")
		os.Unsetenv("CYCLONEDX_METRICS_ENABLED")
		os.Unsetenv("CYCLONEDX_METRICS_PORT")
	}()

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Watch.DebounceInterval != 750*time.Millisecond {
		t.Errorf("expected debounce interval %v, got %v", 750*time.Millisecond, cfg.Watch.DebounceInterval)
	}
	if len(cfg.Watch.Extensions) != 2 || cfg.Watch.Extensions[1] != ".cdx.json" {
		t.Errorf("expected extensions [.json .cdx.json], got %v", cfg.Watch.Extensions)
	}
	if !cfg.History.Enabled {
		t.Error("expected history enabled from env")
	}
	if !cfg.Metrics.Enabled {
		t.Error("expected metrics enabled from env")
	}
	if cfg.Metrics.Port != 9464 {
		t.Errorf("expected metrics port 9464 from env, got %d", cfg.Metrics.Port)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidEnvValues(t *testing.T) {
	path := writeConfigFile(t, `
validation:
  max_depth: 48
`)

	os.Setenv("CYCLONEDX_VALIDATION_MAX_DEPTH", "not-a-number")
	os.Setenv("CYCLONEDX_WATCH_DEBOUNCE_INTERVAL", "soon")
	defer func() {
		os.Unsetenv("CYCLONEDX_VALIDATION_MAX_DEPTH")
		os.Unsetenv("CYCLONEDX_WATCH_DEBOUNCE_INTERVAL")
	}()

	_, err := LoadConfigWithEnvOverrides(path)
	if err == nil {
		t.Fatal("expected error for unparseable override values")
	}

	// Both bad variables are reported, not just the first
	msg := err.Error()
	for _, want := range []string{"CYCLONEDX_VALIDATION_MAX_DEPTH", "CYCLONEDX_WATCH_DEBOUNCE_INTERVAL"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %s", msg, want)
		}
	}
}

func TestLoadConfigWithEnvOverrides_InvalidAfterOverride(t *testing.T) {
	path := writeConfigFile(t, `
logging:
  level: "info"
`)

	os.Setenv("CYCLONEDX_LOGGING_LEVEL", "trace")
	defer os.Unsetenv("CYCLONEDX_LOGGING_LEVEL")

	_, err := LoadConfigWithEnvOverrides(path)
	if err == nil {
		t.Fatal("expected validation error after override")
	}
	if !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("expected override validation error, got: %v", err)
	}
}
