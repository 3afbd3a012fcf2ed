package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"archmap/internal/output"
	"archmap/internal/source"
)

var importsCmd = &cobra.Command{
	Use:   "imports <file>...",
	Short: "Extract imports from source files",
	Long: `Parse individual source files and print their import statements,
resolved where possible, without running the full pipeline.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImports,
}

func init() {
	rootCmd.AddCommand(importsCmd)
}

func runImports(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	parser := source.NewParser(cfg.Source.RootAlias, logger)

	results := make(map[string][]source.ImportInfo, len(args))
	for _, p := range args {
		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		results[p] = parser.ParseFile(cmd.Context(), p, string(content)).Imports
	}

	encoded, err := output.EncodeIndented(results, "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(encoded))
	return nil
}
