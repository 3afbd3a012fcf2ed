package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"archmap/internal/config"
	"archmap/internal/logging"
	"archmap/internal/version"
)

var (
	configPath string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "archmap",
	Short: "archmap - static architecture reverse engineering",
	Long: `archmap reconstructs a layered architecture model from a project's
source files and dependency manifest: files, imports and exports,
logical components, component connections, external services, layers,
data flows, patterns and anti-patterns, and graph metrics.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("archmap version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text, json")
}

// loadConfig loads the configuration, applying CLI log overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	return cfg, nil
}

// newLogger builds the process logger from config. Diagnostics go to
// stderr so stdout stays clean for JSON results.
func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(logging.Format(cfg.Logging.Format), cfg.Logging.Level, os.Stderr)
}
