package main

import (
	"fmt"
	"os"
	"path/filepath"

	"benchgate/internal/compare"
	"benchgate/internal/decision"
	"benchgate/internal/metric"
	"benchgate/internal/report"
	"benchgate/internal/results"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	gateThroughputThreshold float64
	gateAllocationThreshold float64
)

var gateCmd = &cobra.Command{
	Use:   "gate <baseline-dir> <pr-dir>",
	Short: "Same-job comparison of two merged benchmark result sets",
	Long: `Compares merged benchmark results from two directories produced in the
same CI job, which avoids runner variance between runs. Each directory is
expected to hold throughput.json (BenchmarkDotNet format) and
allocations.json (customSmallerIsBetter format). Fails when any benchmark
exceeds its ratio threshold.`,
	Args: cobra.ExactArgs(2),
	RunE: runGate,
}

func init() {
	rootCmd.AddCommand(gateCmd)
	gateCmd.Flags().Float64Var(&gateThroughputThreshold, "throughput-threshold", 0, "Fail if throughput ratio exceeds this percent (default from config: 110)")
	gateCmd.Flags().Float64Var(&gateAllocationThreshold, "allocation-threshold", 0, "Fail if allocation ratio exceeds this percent (default from config: 120)")
}

func runGate(cmd *cobra.Command, args []string) error {
	baselineDir, prDir := args[0], args[1]

	tpThreshold := gateThroughputThreshold
	if !cmd.Flags().Changed("throughput-threshold") {
		tpThreshold = viper.GetFloat64("throughput_threshold")
	}
	allocThreshold := gateAllocationThreshold
	if !cmd.Flags().Changed("allocation-threshold") {
		allocThreshold = viper.GetFloat64("allocation_threshold")
	}

	for _, dir := range []string{baselineDir, prDir} {
		if _, err := os.Stat(dir); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Error: directory not found: %s\n", dir)
			exit(decision.NoResults().ExitCode())
			return nil
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "SAME-JOB BENCHMARK COMPARISON")
	fmt.Fprintf(cmd.OutOrStdout(), "Baseline directory: %s\n", baselineDir)
	fmt.Fprintf(cmd.OutOrStdout(), "PR directory:       %s\n", prDir)
	fmt.Fprintf(cmd.OutOrStdout(), "Throughput threshold: %.1f%% (fail if slower)\n", tpThreshold)
	fmt.Fprintf(cmd.OutOrStdout(), "Allocation threshold: %.1f%% (fail if more)\n", allocThreshold)

	baseTP, err := results.LoadThroughput(filepath.Join(baselineDir, "throughput.json"))
	if err != nil {
		return err
	}
	prTP, err := results.LoadThroughput(filepath.Join(prDir, "throughput.json"))
	if err != nil {
		return err
	}
	baseAlloc, err := results.LoadAllocations(filepath.Join(baselineDir, "allocations.json"))
	if err != nil {
		return err
	}
	prAlloc, err := results.LoadAllocations(filepath.Join(prDir, "allocations.json"))
	if err != nil {
		return err
	}

	if len(baseTP) == 0 && len(baseAlloc) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Error: no baseline metrics found in %s\n", baselineDir)
		exit(decision.NoResults().ExitCode())
		return nil
	}
	if len(prTP) == 0 && len(prAlloc) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Error: no PR metrics found in %s\n", prDir)
		exit(decision.NoResults().ExitCode())
		return nil
	}

	tpComparisons := compare.Ratio(baseTP, prTP, tpThreshold, metric.Nanoseconds)
	allocComparisons := compare.Ratio(baseAlloc, prAlloc, allocThreshold, metric.Bytes)

	metrics := newGateMetrics()
	if metrics != nil {
		for _, c := range tpComparisons {
			metrics.RecordComparison("throughput", c.Passed)
		}
		for _, c := range allocComparisons {
			metrics.RecordComparison("allocation", c.Passed)
		}
	}

	tpPassed, tpFailed := report.WriteGateTable(cmd.OutOrStdout(),
		fmt.Sprintf("THROUGHPUT COMPARISON (threshold: %.1f%%)", tpThreshold), tpComparisons)
	allocPassed, allocFailed := report.WriteGateTable(cmd.OutOrStdout(),
		fmt.Sprintf("ALLOCATION COMPARISON (threshold: %.1f%%)", allocThreshold), allocComparisons)

	totalPassed := tpPassed + allocPassed
	totalFailed := tpFailed + allocFailed

	fmt.Fprintln(cmd.OutOrStdout(), "\nSUMMARY")
	fmt.Fprintf(cmd.OutOrStdout(), "Throughput:  %d passed, %d failed\n", tpPassed, tpFailed)
	fmt.Fprintf(cmd.OutOrStdout(), "Allocations: %d passed, %d failed\n", allocPassed, allocFailed)
	fmt.Fprintf(cmd.OutOrStdout(), "Total:       %d passed, %d failed\n", totalPassed, totalFailed)

	d := decision.FromComparisons(totalFailed)
	if metrics != nil {
		metrics.SetPassed(d.Pass)
		flushMetrics(metrics)
	}

	if !d.Pass {
		fmt.Fprintln(cmd.OutOrStdout(), report.FailLine(fmt.Sprintf(
			"BENCHMARK CHECK FAILED - %d regression(s) detected", totalFailed)))
		notifyGate(fmt.Sprintf("benchgate: same-job check failed with %d regression(s)", totalFailed))
		exit(d.ExitCode())
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.PassLine("BENCHMARK CHECK PASSED - No regressions detected"))
	return nil
}
