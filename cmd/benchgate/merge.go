package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"benchgate/internal/decision"
	"benchgate/internal/report"
	"benchgate/internal/results"

	"github.com/spf13/cobra"
)

var (
	mergeTitle     string
	mergeNamespace string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <benchmark-results-dir>",
	Short: "Merge per-suite benchmark reports into unified files",
	Long: `Reads BenchmarkDotNet JSON output from each suite below the given
directory (layout: <suite>/results/*-report-full-compressed.json) and
writes merged files under <dir>/merged/:

  throughput.json   - BenchmarkDotNet format for throughput metrics
  allocations.json  - customSmallerIsBetter format for memory allocations

Benchmark names are prefixed with their capitalized suite name.`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringVar(&mergeTitle, "title", "Merged Benchmarks", "Title of the merged report")
	mergeCmd.Flags().StringVar(&mergeNamespace, "namespace", "Abies.Benchmarks", "Namespace prefix for merged FullName fields")
}

func runMerge(cmd *cobra.Command, args []string) error {
	baseDir := args[0]

	suites, err := results.FindSuiteReports(baseDir)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", baseDir, err)
	}
	if len(suites) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), report.FailLine("No suite reports found in "+baseDir))
		exit(decision.NoResults().ExitCode())
		return nil
	}
	for _, s := range suites {
		fmt.Fprintf(cmd.OutOrStdout(), "Found suite: %s\n", s.Suite)
	}

	throughput, allocations, err := results.MergeSuites(mergeTitle, mergeNamespace, suites)
	if err != nil {
		return err
	}

	outDir := filepath.Join(baseDir, "merged")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	tpPath := filepath.Join(outDir, "throughput.json")
	if err := os.WriteFile(tpPath, throughput, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tpPath, err)
	}

	allocData, err := json.MarshalIndent(allocations, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal allocations: %w", err)
	}
	allocPath := filepath.Join(outDir, "allocations.json")
	if err := os.WriteFile(allocPath, allocData, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", allocPath, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.PassLine(fmt.Sprintf(
		"Merged %d suite(s): %s, %s", len(suites), tpPath, allocPath)))
	return nil
}
