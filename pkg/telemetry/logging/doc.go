// Package logging builds the process-wide structured logger.
//
// # Overview
//
// The package is a thin construction layer over log/slog: it parses the
// configured level and format, picks the matching slog handler, and
// returns a Logger whose Slog method feeds slog.SetDefault. Components
// then log through plain slog, typically with a bound component field.
//
// Logs always go to a configurable writer (stderr by default) so that
// validation output on stdout stays machine-readable.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger.Slog())
//
//	// Components pick up the configuration through the default logger
//	slog.Info("validation complete", "file", "sbom.json", "errors", 2)
//
//	// Or bind fields for a subsystem
//	watchLog := slog.Default().With("component", "watch")
//	watchLog.Debug("change detected", "path", "build/sbom.json")
package logging
