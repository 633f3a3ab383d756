package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ovid/cyclonedx-parser/pkg/bom"
	"github.com/Ovid/cyclonedx-parser/pkg/bom/diag"
	"github.com/Ovid/cyclonedx-parser/pkg/cli"
	"github.com/Ovid/cyclonedx-parser/pkg/config"
	"github.com/Ovid/cyclonedx-parser/pkg/history"
)

var validateFlags struct {
	file   string
	dir    string
	strict bool
	format string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate SBOM files",
	Long: `Validate CycloneDX 1.5 JSON documents.

The validate command decodes each file and checks it against the
CycloneDX 1.5 schema and document-wide rules:
  - Required fields, types, enums, and format patterns
  - bom-ref uniqueness across the whole document
  - Deprecated field warnings

When history is enabled in the configuration, every run is archived
to the SQLite database for later querying.

Examples:
  # Validate single file
  cyclonedx validate --file sbom.json

  # Validate directory
  cyclonedx validate --dir sboms/

  # Strict mode (warnings as errors)
  cyclonedx validate --file sbom.json --strict

  # JSON output for CI/CD
  cyclonedx validate --file sbom.json --format json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.file, "file", "f", "", "SBOM file to validate")
	validateCmd.Flags().StringVarP(&validateFlags.dir, "dir", "d", "", "directory of SBOM files")
	validateCmd.Flags().BoolVar(&validateFlags.strict, "strict", false, "treat warnings as errors")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
}

// FileResult is the validation outcome for a single file.
type FileResult struct {
	File     string   `json:"file"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`

	// diagnostics carries the structured findings for the history
	// archive; it is not part of the JSON output.
	diagnostics []diag.Diagnostic
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validateFlags.file == "" && validateFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	files, err := collectSBOMFiles(validateFlags.file, validateFlags.dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no SBOM files found")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	strict := validateFlags.strict || cfg.Validation.FailOnWarnings
	validator := bom.New(bom.WithMaxDepth(cfg.Validation.MaxDepth))

	recorder, store, err := newRecorder(cfg)
	if err != nil {
		// A broken archive must not block validation
		slog.Warn("history storage unavailable, continuing without archive", "error", err)
	}
	if recorder != nil {
		defer store.Close()
		defer recorder.Close()
	}

	// Progress goes to stderr so stdout stays clean for results
	var progress cli.ProgressReporter
	if len(files) > 1 && validateFlags.format != "json" {
		progress = cli.NewProgressReporter(nil)
		progress.Start(len(files))
	}

	ctx := context.Background()
	results := make([]FileResult, 0, len(files))

	for _, file := range files {
		start := time.Now()
		result := validateSBOMFile(validator, file)
		duration := time.Since(start)

		results = append(results, result)

		if recorder != nil {
			record := history.NewRecord(file, result.Valid, result.diagnostics, duration)
			if err := recorder.Record(ctx, record); err != nil {
				slog.Warn("failed to archive validation run", "file", file, "error", err)
			}
		}

		if progress != nil {
			progress.File(file)
		}
	}

	if progress != nil {
		progress.Finish()
	}

	// Output results
	if validateFlags.format == "json" {
		if err := outputValidateJSON(results); err != nil {
			return err
		}
		return validateExitStatus(results, strict)
	}
	return outputValidateText(results, strict)
}

// collectSBOMFiles gathers the explicit file plus every *.json under dir.
func collectSBOMFiles(file, dir string) ([]string, error) {
	var files []string

	if file != "" {
		files = append(files, file)
	}

	if dir != "" {
		matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
		if err != nil {
			return nil, fmt.Errorf("failed to list SBOM files: %w", err)
		}
		files = append(files, matches...)
	}

	return files, nil
}

// newRecorder opens the configured history storage and wraps it in an
// async recorder. Both are nil when history is disabled.
func newRecorder(cfg *config.Config) (*history.Recorder, history.Storage, error) {
	if !cfg.History.Enabled {
		return nil, nil, nil
	}

	store, err := openHistoryStorage(cfg)
	if err != nil {
		return nil, nil, err
	}

	recorderCfg := history.DefaultRecorderConfig()
	if cfg.History.Recorder.AsyncBuffer > 0 {
		recorderCfg.AsyncBuffer = cfg.History.Recorder.AsyncBuffer
	}

	return history.NewRecorder(store, recorderCfg), store, nil
}

func validateSBOMFile(v *bom.Validator, path string) FileResult {
	result := FileResult{File: path, Valid: true}

	res, err := v.ValidateFile(path)
	if err != nil {
		// Unreadable or undecodable files never reach validation
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Valid = res.Valid
	result.Errors = res.Errors
	result.Warnings = res.Warnings
	result.diagnostics = res.Diagnostics
	return result
}

func outputValidateText(results []FileResult, strict bool) error {
	totalErrors := 0
	totalWarnings := 0

	for _, result := range results {
		fmt.Printf("Validating %s...\n", result.File)

		if len(result.Errors) == 0 && len(result.Warnings) == 0 {
			fmt.Println("✓ Document is valid CycloneDX 1.5")
		}

		for _, msg := range result.Errors {
			fmt.Printf("✗ Error: %s\n", msg)
			totalErrors++
		}

		for _, msg := range result.Warnings {
			fmt.Printf("⚠  Warning: %s\n", msg)
			totalWarnings++
		}

		fmt.Println()
	}

	fmt.Println("Summary:")
	fmt.Printf("  %d file(s), %d error(s), %d warning(s)\n", len(results), totalErrors, totalWarnings)

	if strict && totalWarnings > 0 {
		fmt.Println("  Strict mode enabled: treating warnings as errors")
		return cli.NewCommandError("validate", cli.ErrValidationFailed)
	}

	if totalErrors > 0 {
		return cli.NewCommandError("validate", cli.ErrValidationFailed)
	}

	return nil
}

func outputValidateJSON(results []FileResult) error {
	formatter := cli.NewFormatter(cli.FormatJSON)
	return formatter.FormatTo(os.Stdout, results)
}

// validateExitStatus reports failure for CI consumers even when the
// output format is machine-readable.
func validateExitStatus(results []FileResult, strict bool) error {
	for _, result := range results {
		if len(result.Errors) > 0 {
			return cli.NewCommandError("validate", cli.ErrValidationFailed)
		}
		if strict && len(result.Warnings) > 0 {
			return cli.NewCommandError("validate", cli.ErrValidationFailed)
		}
	}
	return nil
}
