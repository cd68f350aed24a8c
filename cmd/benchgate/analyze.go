package main

import (
	"fmt"
	"os"

	"benchgate/internal/decision"
	"benchgate/internal/report"
	"benchgate/internal/triage"

	"github.com/spf13/cobra"
)

var analyzeStrict bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <trx-file>",
	Short: "Analyze E2E test results from a TRX file and categorize failures",
	Long: `Parses a Visual Studio TRX report and classifies every failure as a
timeout (infrastructure issue), an assertion (genuine bug) or unknown.
Assertion and unknown failures always fail the gate; timeouts only fail
under --strict.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeStrict, "strict", false, "Fail on any error including timeouts")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	trxPath := args[0]

	data, err := os.ReadFile(trxPath)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), report.FailLine("Test results file not found: "+trxPath))
		exit(decision.NoResults().ExitCode())
		return nil
	}

	mode := "LENIENT (warn on timeouts)"
	if analyzeStrict {
		mode = "STRICT (fail on any error)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Analyzing test results from: %s\n", trxPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Mode: %s\n", mode)

	testResults, counts, err := triage.ParseTRX(data)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), report.FailLine("Error parsing TRX file: "+err.Error()))
		exit(decision.NoResults().ExitCode())
		return nil
	}
	if counts.Total == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), report.FailLine("No test results found"))
		exit(decision.NoResults().ExitCode())
		return nil
	}

	printTestSummary(cmd, counts)

	metrics := newGateMetrics()

	if counts.Failed > 0 {
		for _, category := range []triage.Category{triage.CategoryAssertion, triage.CategoryTimeout, triage.CategoryUnknown} {
			failures := triage.Failures(testResults, category)
			if len(failures) == 0 {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nFailed Tests (%s)\n", category)
			for _, f := range failures {
				fmt.Fprintln(cmd.OutOrStdout(), report.FailLine(f.Name))
				if f.Message != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "   Message: %s\n", report.Truncate(f.Message, 300))
				}
				if metrics != nil {
					metrics.RecordFailure(string(category))
				}
			}
		}
	}

	d := decision.FromTestCounts(counts.Failed, counts.Assertion, counts.Unknown, counts.Timeout, analyzeStrict)
	if metrics != nil {
		metrics.SetPassed(d.Pass)
		flushMetrics(metrics)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nDecision")
	switch {
	case counts.Failed == 0:
		fmt.Fprintln(cmd.OutOrStdout(), report.PassLine("All tests passed!"))
	case d.Reason == decision.ReasonAssertionFailures:
		fmt.Fprintln(cmd.OutOrStdout(), report.FailLine(fmt.Sprintf(
			"FAIL: Found %d assertion failure(s). These are genuine test failures that must be fixed.", counts.Assertion)))
	case d.Reason == decision.ReasonUnknownFailures:
		fmt.Fprintln(cmd.OutOrStdout(), report.FailLine(fmt.Sprintf(
			"FAIL: Found %d unclassified failure(s). Failing build to be safe, manual investigation needed.", counts.Unknown)))
	case d.Reason == decision.ReasonTimeoutStrict:
		fmt.Fprintln(cmd.OutOrStdout(), report.FailLine(fmt.Sprintf(
			"FAIL: Found %d timeout failure(s) (strict mode)", counts.Timeout)))
	default:
		fmt.Fprintln(cmd.OutOrStdout(), report.WarnLine(fmt.Sprintf(
			"WARN: Found %d timeout failure(s). Timeouts are often infrastructure issues; build passes in lenient mode.", counts.Timeout)))
		fmt.Fprintln(cmd.OutOrStdout(), "Tip: run with --strict to fail on timeouts.")
	}

	if !d.Pass {
		exit(d.ExitCode())
	}
	return nil
}

func printTestSummary(cmd *cobra.Command, counts triage.Counts) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nTest Results Summary")
	fmt.Fprintf(out, "Total Tests: %d\n", counts.Total)
	fmt.Fprintf(out, "Passed:      %d\n", counts.Passed)
	fmt.Fprintf(out, "Failed:      %d\n", counts.Failed)
	if counts.Failed > 0 {
		fmt.Fprintf(out, "  Timeouts:   %d\n", counts.Timeout)
		fmt.Fprintf(out, "  Assertions: %d\n", counts.Assertion)
		fmt.Fprintf(out, "  Unknown:    %d\n", counts.Unknown)
	}
}
