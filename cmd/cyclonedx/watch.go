package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ovid/cyclonedx-parser/pkg/bom"
	"github.com/Ovid/cyclonedx-parser/pkg/cli"
	"github.com/Ovid/cyclonedx-parser/pkg/config"
	"github.com/Ovid/cyclonedx-parser/pkg/history"
	"github.com/Ovid/cyclonedx-parser/pkg/history/retention"
	"github.com/Ovid/cyclonedx-parser/pkg/telemetry/metrics"
	"github.com/Ovid/cyclonedx-parser/pkg/watch"
)

var watchFlags struct {
	file string
	dir  string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate SBOM files on change",
	Long: `Watch a file or directory and re-validate on change.

Changes are debounced so editors that write in several steps trigger a
single validation pass. Results are printed as they happen; when history
is enabled each pass is archived, and when metrics are enabled with a
port the collector is exposed over HTTP for scraping.

Examples:
  # Watch a single file
  cyclonedx watch --file sbom.json

  # Watch a directory tree
  cyclonedx watch --dir sboms/

  # Watch with a custom debounce interval
  CYCLONEDX_WATCH_DEBOUNCE_INTERVAL=2s cyclonedx watch --dir sboms/`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.file, "file", "f", "", "SBOM file to watch")
	watchCmd.Flags().StringVarP(&watchFlags.dir, "dir", "d", "", "directory of SBOM files to watch")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchFlags.file == "" && watchFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}
	if watchFlags.file != "" && watchFlags.dir != "" {
		return fmt.Errorf("only one of --file or --dir may be specified")
	}

	path := watchFlags.file
	if path == "" {
		path = watchFlags.dir
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	fmt.Printf("cyclonedx v%s\n", Version)
	fmt.Println("✓ Configuration loaded")

	validator := bom.New(bom.WithMaxDepth(cfg.Validation.MaxDepth))

	// History archive (if enabled)
	recorder, store, err := newRecorder(cfg)
	if err != nil {
		slog.Warn("history storage unavailable, continuing without archive", "error", err)
	}
	if recorder != nil {
		defer store.Close()
		defer recorder.Close()
		fmt.Println("✓ History archive initialized")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Retention scheduler (if configured)
	if recorder != nil && cfg.History.Retention.Enabled && cfg.History.Retention.Schedule != "" {
		pruner := retention.NewPruner(store, &retention.Config{
			MaxAgeDays: cfg.History.Retention.MaxAgeDays,
			Schedule:   cfg.History.Retention.Schedule,
		})
		if err := pruner.Start(ctx); err != nil {
			slog.Warn("failed to start retention scheduler", "error", err)
		} else {
			defer pruner.Stop()
			if next := pruner.NextPruning(); next != nil {
				slog.Debug("retention scheduler started", "next_pruning", next)
			}
		}
	}

	// Metrics endpoint (if enabled with a port)
	collector := metrics.NewCollector(&cfg.Metrics, nil)
	stopMetrics := serveMetrics(cfg, collector)
	defer stopMetrics()
	if cfg.Metrics.Enabled && cfg.Metrics.Port > 0 {
		fmt.Printf("✓ Metrics endpoint: http://localhost:%d%s\n", cfg.Metrics.Port, cfg.Metrics.Path)
	}

	files, err := collectSBOMFiles(watchFlags.file, watchFlags.dir)
	if err != nil {
		return err
	}
	collector.SetWatchedFiles(len(files))

	watcher, err := watch.NewFileWatcher(&watch.Config{
		Path:             path,
		DebounceInterval: cfg.Watch.DebounceInterval,
		Extensions:       cfg.Watch.Extensions,
		SkipHidden:       cfg.Watch.SkipHidden,
	}, nil)
	if err != nil {
		return cli.NewCommandError("watch", fmt.Errorf("failed to create watcher: %w", err))
	}

	onChange := func(changed string) error {
		return revalidate(ctx, validator, recorder, collector, changed)
	}

	// Watch blocks, so run it in the background and hold here for a
	// signal or a watcher failure
	errChan := make(chan error, 1)
	go func() {
		if err := watcher.Watch(ctx, onChange); err != nil {
			errChan <- err
		}
	}()

	fmt.Printf("✓ Watching %s (%d file(s))\n", path, len(files))
	fmt.Println("\nPress Ctrl+C to stop")

	sigChan := cli.WaitForShutdown()

	select {
	case err := <-errChan:
		return cli.NewCommandError("watch", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal %s, shutting down gracefully...\n", sig)

		// Stop before cancel so the watcher drains through its own path
		if err := watcher.Stop(); err != nil {
			return cli.NewCommandError("watch", err)
		}

		fmt.Println("✓ Watcher stopped")
		return nil
	}
}

// revalidate runs one validation pass for a changed file and reports the
// outcome to stdout, the archive, and the metrics collector.
func revalidate(ctx context.Context, v *bom.Validator, recorder *history.Recorder, collector *metrics.Collector, path string) error {
	start := time.Now()
	result := validateSBOMFile(v, path)
	duration := time.Since(start)

	outcome := metrics.OutcomeValid
	if !result.Valid {
		outcome = metrics.OutcomeInvalid
		if len(result.diagnostics) == 0 {
			// Read and decode failures never reached validation
			outcome = metrics.OutcomeError
		}
	}
	collector.RecordRun(outcome, duration, len(result.Errors), len(result.Warnings))

	if recorder != nil {
		record := history.NewRecord(path, result.Valid, result.diagnostics, duration)
		if err := recorder.Record(ctx, record); err != nil {
			slog.Warn("failed to archive validation run", "file", path, "error", err)
		}
	}

	printWatchResult(result)
	return nil
}

func printWatchResult(result FileResult) {
	timestamp := time.Now().Format("15:04:05")

	if result.Valid && len(result.Warnings) == 0 {
		fmt.Printf("[%s] ✓ %s is valid\n", timestamp, result.File)
		return
	}

	if result.Valid {
		fmt.Printf("[%s] ⚠  %s is valid with %d warning(s)\n", timestamp, result.File, len(result.Warnings))
	} else {
		fmt.Printf("[%s] ✗ %s is invalid (%d error(s), %d warning(s))\n",
			timestamp, result.File, len(result.Errors), len(result.Warnings))
	}

	for _, msg := range result.Errors {
		fmt.Printf("    ✗ %s\n", msg)
	}
	for _, msg := range result.Warnings {
		fmt.Printf("    ⚠  %s\n", msg)
	}
}

// serveMetrics exposes the collector over HTTP when metrics are enabled
// with a port. The returned stop function is always safe to call.
func serveMetrics(cfg *config.Config, collector *metrics.Collector) func() {
	if !cfg.Metrics.Enabled || cfg.Metrics.Port == 0 {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, collector.Handler())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: mux,
	}

	go func() {
		slog.Info("serving metrics", "addr", server.Addr, "path", cfg.Metrics.Path)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", "error", err)
		}
	}
}
