package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"archmap/internal/analyzer"
	"archmap/internal/export"
	"archmap/internal/manifest"
	"archmap/internal/output"
	"archmap/internal/project"
	"archmap/internal/store"
)

var (
	analyzeSave bool
	analyzeOut  string
	analyzeName string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [dir]",
	Short: "Analyze a project's architecture",
	Long: `Analyze a project directory and print the architecture model as JSON.

Examples:
  archmap analyze
  archmap analyze ./my-app
  archmap analyze ./my-app --save
  archmap analyze ./my-app --out snapshot.json.zst`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Save the run to the history store")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "Write the analysis to a file (.zst compresses)")
	analyzeCmd.Flags().StringVar(&analyzeName, "name", "", "Override the project name")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	files, m, name, err := project.Load(root, cfg, logger)
	if err != nil {
		return err
	}
	if analyzeName != "" {
		name = analyzeName
	}

	tables, err := manifest.LoadTables()
	if err != nil {
		return err
	}

	analysis, err := analyzer.New(cfg, tables, logger).Analyze(cmd.Context(), name, files, m)
	if err != nil {
		return err
	}

	encoded, err := output.EncodeIndented(analysis, "  ")
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(encoded))

	if analyzeOut != "" {
		flat, err := output.Encode(analysis)
		if err != nil {
			return err
		}
		if err := export.WriteSnapshot(analyzeOut, flat); err != nil {
			return err
		}
		logger.Info("snapshot written", "path", analyzeOut)
	}

	if analyzeSave {
		s, err := store.Open(cfg.Store.Path, logger)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		id, err := s.SaveRun(cmd.Context(), analysis)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved run %s\n", id)
	}

	return nil
}
