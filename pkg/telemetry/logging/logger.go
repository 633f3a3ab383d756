package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogFormat selects the handler encoding.
type LogFormat string

const (
	// FormatJSON encodes one JSON object per record.
	FormatJSON LogFormat = "json"
	// FormatText encodes records as key=value text.
	FormatText LogFormat = "text"
)

// Config describes how log output is encoded and filtered.
type Config struct {
	// Level drops records below it: "debug", "info", "warn" or "error"
	Level string

	// Format is the output format ("json", "text")
	Format string

	// AddSource includes the file:line of the call site
	AddSource bool

	// Writer is the destination (defaults to os.Stderr)
	Writer io.Writer
}

// Logger owns a configured slog.Logger. Commands build one at startup
// and hand its Slog to slog.SetDefault so every component logs through
// the same handler.
type Logger struct {
	slog  *slog.Logger
	level slog.Leveler
}

// New builds a Logger from cfg. Unknown levels and formats are errors
// rather than silent fallbacks, so a config typo is caught at startup.
func New(cfg Config) (*Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	format, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("invalid log format: %w", err)
	}

	// Logs go to stderr; stdout belongs to command results
	writer := cfg.Writer
	if writer == nil {
		writer = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if format == FormatText {
		handler = slog.NewTextHandler(writer, opts)
	} else {
		handler = slog.NewJSONHandler(writer, opts)
	}

	return &Logger{slog: slog.New(handler), level: level}, nil
}

// Slog returns the underlying slog.Logger. Passing it to slog.SetDefault
// routes the component loggers through this configuration.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// With returns a Logger with args bound to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...), level: l.level}
}

// Enabled reports whether records at level would be emitted.
func (l *Logger) Enabled(level slog.Level) bool {
	return level >= l.level.Level()
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %q", s)
	}
}

func parseFormat(s string) (LogFormat, error) {
	switch strings.ToLower(s) {
	case "json", "":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	default:
		return FormatJSON, fmt.Errorf("unknown log format: %q", s)
	}
}
