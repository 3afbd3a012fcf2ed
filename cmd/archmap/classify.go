package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"archmap/internal/classify"
	"archmap/internal/output"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <path>...",
	Short: "Classify file paths into roles and layers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

type classification struct {
	Path  string         `json:"path"`
	Role  classify.Role  `json:"type"`
	Layer classify.Layer `json:"layer"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	results := make([]classification, 0, len(args))
	for _, p := range args {
		role, layer := classify.Classify(p, nil)
		results = append(results, classification{Path: p, Role: role, Layer: layer})
	}

	encoded, err := output.EncodeIndented(results, "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(encoded))
	return nil
}
