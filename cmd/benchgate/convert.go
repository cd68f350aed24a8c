package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"benchgate/internal/decision"
	"benchgate/internal/report"
	"benchgate/internal/results"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	convertResultsDir string
	convertOutput     string
	convertFramework  string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert benchmark results to github-action-benchmark format",
	Long: `Converts framework benchmark result files into the customSmallerIsBetter
JSON format consumed by the benchmark-action/github-action-benchmark
action.`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convertResultsDir, "results-dir", "", "Directory containing benchmark result JSON files")
	convertCmd.Flags().StringVar(&convertOutput, "output", "", "Output JSON file path")
	convertCmd.Flags().StringVar(&convertFramework, "framework", "", "Framework name prefix of result files (default from config: abies)")
	convertCmd.MarkFlagRequired("results-dir")
	convertCmd.MarkFlagRequired("output")
}

func runConvert(cmd *cobra.Command, args []string) error {
	framework := convertFramework
	if framework == "" {
		framework = viper.GetString("framework")
	}

	records, skipped, err := results.LoadDir(convertResultsDir, framework)
	if err != nil {
		return err
	}
	if skipped > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: skipped %d unparsable result file(s)\n", skipped)
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), report.FailLine(fmt.Sprintf(
			"No result files found in %s for framework '%s'", convertResultsDir, framework)))
		exit(decision.NoResults().ExitCode())
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Parsed %d benchmark results\n", len(records))

	names := results.SortedNames(records)
	entries := make([]results.AllocationEntry, 0, len(records))
	for _, name := range names {
		rec := records[name]
		entries = append(entries, results.AllocationEntry{
			Name:  name,
			Unit:  string(rec.Unit),
			Value: rec.Median,
			Extra: fmt.Sprintf("mean: %.1fms, samples: %d", rec.Mean, len(rec.Values)),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if dir := filepath.Dir(convertOutput); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(convertOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), report.PassLine(fmt.Sprintf(
		"Wrote %d results to %s", len(entries), convertOutput)))

	var md strings.Builder
	md.WriteString("## E2E Benchmark Results\n\n")
	md.WriteString("| Benchmark | Median | Mean |\n")
	md.WriteString("|-----------|--------|------|\n")
	for _, name := range names {
		rec := records[name]
		fmt.Fprintf(&md, "| %s | %.1fms | %.1fms |\n", name, rec.Median, rec.Mean)
	}
	report.Render(cmd.OutOrStdout(), md.String())
	return nil
}
