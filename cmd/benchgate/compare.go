package main

import (
	"context"
	"fmt"
	"time"

	"benchgate/internal/baseline"
	"benchgate/internal/compare"
	"benchgate/internal/decision"
	"benchgate/internal/notify"
	"benchgate/internal/report"
	"benchgate/internal/results"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	compareResultsDir     string
	compareBaselinePath   string
	compareThreshold      float64
	compareFramework      string
	compareUpdateBaseline bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare benchmark results against a stored baseline",
	Long: `Parses every result file for the configured framework, compares the
medians against the stored baseline and fails when any benchmark is more
than the threshold percentage slower. A missing baseline is treated as a
first run and passes.`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVar(&compareResultsDir, "results-dir", "webdriver-ts/results", "Directory containing benchmark result JSON files")
	compareCmd.Flags().StringVar(&compareBaselinePath, "baseline", "benchmark-results/baseline.json", "Path to baseline JSON file")
	compareCmd.Flags().Float64Var(&compareThreshold, "threshold", 0, "Regression threshold percentage (default from config: 5.0)")
	compareCmd.Flags().StringVar(&compareFramework, "framework", "", "Framework name prefix of result files (default from config: abies)")
	compareCmd.Flags().BoolVar(&compareUpdateBaseline, "update-baseline", false, "Update baseline with current results instead of comparing")
}

func runCompare(cmd *cobra.Command, args []string) error {
	threshold := compareThreshold
	if !cmd.Flags().Changed("threshold") {
		threshold = viper.GetFloat64("threshold")
	}
	framework := compareFramework
	if framework == "" {
		framework = viper.GetString("framework")
	}

	records, skipped, err := results.LoadDir(compareResultsDir, framework)
	if err != nil {
		return err
	}
	if skipped > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: skipped %d unparsable result file(s)\n", skipped)
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), report.FailLine(fmt.Sprintf(
			"No result files found in %s for framework '%s'", compareResultsDir, framework)))
		exit(decision.NoResults().ExitCode())
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Parsed %d benchmark results\n", len(records))

	store := baseline.NewFileStore(compareBaselinePath)

	if compareUpdateBaseline {
		if err := store.Save(viper.GetString("baseline_producer"), records); err != nil {
			return fmt.Errorf("failed to save baseline: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.PassLine("Baseline saved to "+store.Path()))
		return nil
	}

	base, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load baseline: %w", err)
	}

	if len(base) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), report.WarnLine("No baseline found at "+store.Path()))
		fmt.Fprintln(cmd.OutOrStdout(), "Current results (no comparison available):")
		for _, name := range results.SortedNames(records) {
			rec := records[name]
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: %.1fms (±%.1fms)\n", name, rec.Median, rec.StdDev)
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.PassLine("First run completed - results will seed the baseline"))
		return nil
	}

	comparisons := compare.Delta(records, base, threshold)
	if len(comparisons) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), report.WarnLine("No matching benchmarks to compare"))
		return nil
	}

	metrics := newGateMetrics()
	for _, c := range comparisons {
		if metrics != nil {
			metrics.RecordComparison("delta", c.Passed)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\n## Benchmark Comparison Results")
	report.Render(cmd.OutOrStdout(), report.MarkdownTable(comparisons))

	improvements := compare.Improvements(comparisons)
	if len(improvements) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "🎉 %d benchmark(s) improved!\n", len(improvements))
	}

	regressions := compare.Regressions(comparisons)
	d := decision.FromComparisons(len(regressions))
	if metrics != nil {
		metrics.SetPassed(d.Pass)
		flushMetrics(metrics)
	}

	if len(regressions) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), report.FailLine(fmt.Sprintf(
			"%d regression(s) detected (>%.1f%% slower):", len(regressions), threshold)))
		for _, r := range regressions {
			fmt.Fprintf(cmd.OutOrStdout(), "   - %s: %.1fms → %.1fms (%s)\n",
				r.Name, r.Baseline, r.Current, report.FormatPercent(r.DiffPercent))
		}
		notifyGate(fmt.Sprintf("benchgate: %d benchmark regression(s) detected above %.1f%% threshold", len(regressions), threshold))
		exit(d.ExitCode())
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.PassLine("No regressions detected"))
	return nil
}

// notifyGate delivers a failure message to the configured channel. Delivery
// problems are logged, never turned into gate failures.
func notifyGate(message string) {
	n := notify.FromConfig()
	if n == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := n.Notify(ctx, message); err != nil {
		fmt.Println(report.WarnLine("Notification failed: " + err.Error()))
	}
}
