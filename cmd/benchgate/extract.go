package main

import (
	"encoding/json"
	"fmt"
	"os"

	"benchgate/internal/report"
	"benchgate/internal/results"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <report.json> <output.json>",
	Short: "Extract allocation metrics from a BenchmarkDotNet report",
	Long: `Reads a full BenchmarkDotNet JSON report and writes its per-benchmark
allocation figures as customSmallerIsBetter entries. GC generation counts
are carried along as extra context.`,
	Args: cobra.ExactArgs(2),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}
	var rep results.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return fmt.Errorf("invalid benchmark report %s: %w", inputPath, err)
	}

	entries := results.ExtractAllocations(rep)
	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal allocations: %w", err)
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.PassLine(fmt.Sprintf(
		"Extracted %d allocation entries to %s", len(entries), outputPath)))
	return nil
}
