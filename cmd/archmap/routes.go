package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"archmap/internal/output"
	"archmap/internal/routes"
)

var routesCmd = &cobra.Command{
	Use:   "routes [dir]",
	Short: "List API endpoints from file paths alone",
	Long: `Scan a project directory for API route files and print their
endpoints. No file contents are parsed; detection uses paths only.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoutes,
}

func init() {
	rootCmd.AddCommand(routesCmd)
}

func runRoutes(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	paths, err := collectPaths(root, cfg.Source.IgnoreFragments)
	if err != nil {
		return err
	}

	encoded, err := output.EncodeIndented(routes.Scan(paths), "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(encoded))
	return nil
}
