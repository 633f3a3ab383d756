package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ovid/cyclonedx-parser/pkg/cli"
	"github.com/Ovid/cyclonedx-parser/pkg/config"
	"github.com/Ovid/cyclonedx-parser/pkg/telemetry/logging"
)

// defaultConfigFile is the config path used when --config is not given.
const defaultConfigFile = "config.yaml"

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cyclonedx",
	Short: "CycloneDX SBOM validator",
	Long: `Cyclonedx is a validator for CycloneDX 1.5 software bills of materials.

It decodes JSON documents and checks them against the CycloneDX 1.5
schema and document-wide rules:
  - Required fields, types, enums, and format patterns
  - bom-ref uniqueness across the whole document
  - Deprecated field warnings
  - Recursive component trees with bounded depth

Validation runs can be archived to SQLite and queried with the history
command, and watch mode re-validates files as they change.

For more information, visit: https://github.com/Ovid/cyclonedx-parser`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// The completion command in completion.go replaces cobra's default
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig initializes the global configuration from cfgFile. A missing
// file is only an error when the user asked for a specific path; the
// default path falls back to built-in defaults so the tool works without
// any configuration file.
func loadConfig() (*config.Config, error) {
	if err := config.Initialize(cfgFile); err != nil {
		if errors.Is(err, os.ErrNotExist) && cfgFile == defaultConfigFile {
			config.SetConfig(config.DefaultConfig())
		} else {
			return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
		}
	}
	return config.GetConfig(), nil
}

// setupLogging routes the component loggers through the configured level
// and format. --verbose forces debug regardless of configuration.
func setupLogging(cfg *config.Config) error {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:  level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return err
	}

	slog.SetDefault(logger.Slog())
	return nil
}
