package main

import (
	"fmt"
	"os"
	"strings"

	"benchgate/internal/chartdata"
	"benchgate/internal/report"

	"github.com/spf13/cobra"
)

var chartRenames []string

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Maintain published benchmark chart data",
}

var chartFixCmd = &cobra.Command{
	Use:   "fix <input-data.js> <output-data.js>",
	Short: "Merge renamed chart sets in a gh-pages data.js file",
	Long: `When a chart set is renamed on gh-pages its history splits in two and
the old set stops receiving updates. This merges the old entries into the
new set, deduplicates by commit id, sorts by date and removes the old set.`,
	Args: cobra.ExactArgs(2),
	RunE: runChartFix,
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.AddCommand(chartFixCmd)
	chartFixCmd.Flags().StringArrayVar(&chartRenames, "rename", nil, "Chart set rename as 'Old Name=New Name' (repeatable)")
}

func runChartFix(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	renames := make(map[string]string, len(chartRenames))
	for _, r := range chartRenames {
		old, updated, ok := strings.Cut(r, "=")
		if !ok || old == "" || updated == "" {
			return fmt.Errorf("invalid --rename %q, expected 'Old Name=New Name'", r)
		}
		renames[old] = updated
	}

	content, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read chart data: %w", err)
	}

	fixed, err := chartdata.Fix(content, renames)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, fixed, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.PassLine("Fixed data written to "+outputPath))
	return nil
}
