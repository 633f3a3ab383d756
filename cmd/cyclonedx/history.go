package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ovid/cyclonedx-parser/pkg/cli"
	"github.com/Ovid/cyclonedx-parser/pkg/config"
	"github.com/Ovid/cyclonedx-parser/pkg/history"
	"github.com/Ovid/cyclonedx-parser/pkg/history/retention"
	"github.com/Ovid/cyclonedx-parser/pkg/history/storage"
)

var historyFlags struct {
	timeRange  string
	file       string
	invalid    bool
	limit      int
	offset     int
	format     string
	output     string
	maxAgeDays int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query the validation archive",
	Long: `Query and prune archived validation runs.

The history command provides access to the SQLite archive written by
validate and watch runs when history is enabled in the configuration.

Subcommands:
  list   - List archived runs with filters
  prune  - Delete runs past the retention age

Examples:
  # List the most recent runs
  cyclonedx history list

  # List failed runs for one file
  cyclonedx history list --file sbom.json --invalid

  # Export to CSV
  cyclonedx history list --format csv --output runs.csv`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived validation runs",
	Long: `List archived validation runs with various filters.

Time Range Format:
  RFC3339 interval format: "start/end"
  Example: "2026-08-01T00:00:00Z/2026-08-25T00:00:00Z"

Examples:
  # List a specific time range
  cyclonedx history list --time-range "2026-08-01T00:00:00Z/2026-08-25T00:00:00Z"

  # Only failed runs
  cyclonedx history list --invalid

  # Export to JSON file
  cyclonedx history list --format json --output runs.json`,
	RunE: runHistoryList,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete runs past the retention age",
	Long: `Delete archived runs older than the retention age.

The age comes from history.retention.max_age_days in the configuration
unless --max-age-days is given. An age of 0 keeps records forever.`,
	RunE: runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyPruneCmd)

	// Flags for list command
	historyListCmd.Flags().StringVar(&historyFlags.timeRange, "time-range", "", "time range (RFC3339 interval: start/end)")
	historyListCmd.Flags().StringVar(&historyFlags.file, "file", "", "filter by validated file path")
	historyListCmd.Flags().BoolVar(&historyFlags.invalid, "invalid", false, "only failed runs")
	historyListCmd.Flags().IntVar(&historyFlags.limit, "limit", 100, "max results")
	historyListCmd.Flags().IntVar(&historyFlags.offset, "offset", 0, "pagination offset")
	historyListCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json, csv")
	historyListCmd.Flags().StringVarP(&historyFlags.output, "output", "o", "", "output file (default: stdout)")

	// Flags for prune command
	historyPruneCmd.Flags().IntVar(&historyFlags.maxAgeDays, "max-age-days", -1, "delete records older than this many days (default: from config)")
}

// openHistoryStorage opens the SQLite history backend from configuration.
func openHistoryStorage(cfg *config.Config) (history.Storage, error) {
	return storage.NewSQLiteStorage(&storage.SQLiteConfig{
		Path:         cfg.History.SQLite.Path,
		MaxOpenConns: cfg.History.SQLite.MaxOpenConns,
		MaxIdleConns: cfg.History.SQLite.MaxIdleConns,
		WALMode:      cfg.History.SQLite.WALMode,
		BusyTimeout:  cfg.History.SQLite.BusyTimeout,
	})
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	store, err := openHistoryStorage(cfg)
	if err != nil {
		return cli.NewCommandError("history", fmt.Errorf("failed to open history storage: %w", err))
	}
	defer store.Close()

	query, err := buildHistoryQuery()
	if err != nil {
		return err
	}

	records, err := store.Query(context.Background(), query)
	if err != nil {
		return cli.NewCommandError("history", fmt.Errorf("query failed: %w", err))
	}

	// Output results
	output := os.Stdout
	if historyFlags.output != "" {
		output, err = os.Create(historyFlags.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer output.Close()
	}

	switch historyFlags.format {
	case "json":
		return outputHistoryJSON(output, records)
	case "csv":
		return cli.NewFormatter(cli.FormatCSV).FormatTo(output, recordList(records))
	default:
		return outputHistoryText(output, records, query)
	}
}

// buildHistoryQuery translates the list flags into a storage query.
func buildHistoryQuery() (*history.Query, error) {
	query := &history.Query{
		File:        historyFlags.file,
		OnlyInvalid: historyFlags.invalid,
		Limit:       historyFlags.limit,
		Offset:      historyFlags.offset,
	}

	if historyFlags.timeRange != "" {
		parts := strings.Split(historyFlags.timeRange, "/")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid time range format (expected: start/end)")
		}

		since, err := time.Parse(time.RFC3339, parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid start time: %w", err)
		}
		query.Since = &since

		until, err := time.Parse(time.RFC3339, parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid end time: %w", err)
		}
		query.Until = &until
	}

	return query, nil
}

// recordList renders history records as CSV.
type recordList []*history.Record

func (l recordList) CSVHeader() []string {
	return []string{"id", "file", "valid", "errors", "warnings", "duration_ms", "created_at"}
}

func (l recordList) CSVRows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, r := range l {
		rows = append(rows, []string{
			r.ID,
			r.File,
			strconv.FormatBool(r.Valid),
			strconv.Itoa(r.ErrorCount),
			strconv.Itoa(r.WarningCount),
			strconv.FormatInt(r.Duration.Milliseconds(), 10),
			r.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows
}

func outputHistoryText(output *os.File, records []*history.Record, query *history.Query) error {
	if query.Since != nil && query.Until != nil {
		fmt.Fprintf(output, "Time range: %s to %s\n",
			query.Since.Format(time.RFC3339),
			query.Until.Format(time.RFC3339))
	}
	fmt.Fprintf(output, "Total records: %d\n", len(records))
	fmt.Fprintln(output)

	if len(records) == 0 {
		fmt.Fprintln(output, "No records found.")
		return nil
	}

	for i, record := range records {
		if i > 0 {
			fmt.Fprintln(output)
		}

		verdict := "✓ valid"
		if !record.Valid {
			verdict = "✗ invalid"
		}

		fmt.Fprintf(output, "Record ID: %s\n", record.ID)
		fmt.Fprintf(output, "Timestamp: %s\n", record.CreatedAt.Format(time.RFC3339))
		fmt.Fprintf(output, "File: %s\n", record.File)
		fmt.Fprintf(output, "Result: %s (%d error(s), %d warning(s))\n",
			verdict, record.ErrorCount, record.WarningCount)
		fmt.Fprintf(output, "Duration: %s\n", record.Duration)

		// Show limited output for large result sets
		if i >= 9 && len(records) > 10 {
			remaining := len(records) - 10
			fmt.Fprintln(output)
			fmt.Fprintf(output, "... and %d more records\n", remaining)
			fmt.Fprintf(output, "Use --limit and --offset for pagination.\n")
			break
		}
	}

	return nil
}

func outputHistoryJSON(output *os.File, records []*history.Record) error {
	result := map[string]interface{}{
		"total_records": len(records),
		"records":       records,
	}
	return cli.NewFormatter(cli.FormatJSON).FormatTo(output, result)
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	store, err := openHistoryStorage(cfg)
	if err != nil {
		return cli.NewCommandError("history", fmt.Errorf("failed to open history storage: %w", err))
	}
	defer store.Close()

	maxAge := cfg.History.Retention.MaxAgeDays
	if historyFlags.maxAgeDays >= 0 {
		maxAge = historyFlags.maxAgeDays
	}

	if maxAge == 0 {
		fmt.Println("Retention is unlimited (max age 0), nothing to prune.")
		return nil
	}

	pruner := retention.NewPruner(store, &retention.Config{
		MaxAgeDays: maxAge,
		Schedule:   cfg.History.Retention.Schedule,
	})

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		return cli.NewCommandError("history", fmt.Errorf("prune failed: %w", err))
	}

	fmt.Printf("Deleted %d record(s) older than %d day(s).\n", deleted, maxAge)
	return nil
}
