package main

import (
	"fmt"

	"benchgate/internal/baseline"
	"benchgate/internal/decision"
	"benchgate/internal/report"
	"benchgate/internal/results"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var askOne = survey.AskOne

var (
	baselinePath             string
	baselineUpdateResultsDir string
	baselineUpdateFramework  string
	baselineUpdateYes        bool
)

var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Inspect or update the stored benchmark baseline",
}

var baselineShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored baseline values",
	RunE:  runBaselineShow,
}

var baselineUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace the baseline with current results",
	Long: `Parses current benchmark results and writes their medians as the new
baseline. Overwriting an existing baseline asks for confirmation unless
--yes is given.`,
	RunE: runBaselineUpdate,
}

func init() {
	rootCmd.AddCommand(baselineCmd)
	baselineCmd.AddCommand(baselineShowCmd)
	baselineCmd.AddCommand(baselineUpdateCmd)

	baselineCmd.PersistentFlags().StringVar(&baselinePath, "baseline", "benchmark-results/baseline.json", "Path to baseline JSON file")
	baselineUpdateCmd.Flags().StringVar(&baselineUpdateResultsDir, "results-dir", "webdriver-ts/results", "Directory containing benchmark result JSON files")
	baselineUpdateCmd.Flags().StringVar(&baselineUpdateFramework, "framework", "", "Framework name prefix of result files (default from config: abies)")
	baselineUpdateCmd.Flags().BoolVar(&baselineUpdateYes, "yes", false, "Overwrite an existing baseline without asking")
}

func runBaselineShow(cmd *cobra.Command, args []string) error {
	store := baseline.NewFileStore(baselinePath)
	if !store.Exists() {
		fmt.Fprintln(cmd.OutOrStdout(), report.WarnLine("No baseline found at "+store.Path()))
		return nil
	}

	values, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load baseline: %w", err)
	}
	if len(values) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), report.WarnLine("Baseline at "+store.Path()+" holds no benchmarks"))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Baseline: %s (%d benchmarks)\n", store.Path(), len(values))
	for _, name := range baseline.SortedNames(values) {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %.1f\n", name, values[name])
	}
	return nil
}

func runBaselineUpdate(cmd *cobra.Command, args []string) error {
	framework := baselineUpdateFramework
	if framework == "" {
		framework = viper.GetString("framework")
	}

	records, _, err := results.LoadDir(baselineUpdateResultsDir, framework)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), report.FailLine(fmt.Sprintf(
			"No result files found in %s for framework '%s'", baselineUpdateResultsDir, framework)))
		exit(decision.NoResults().ExitCode())
		return nil
	}

	store := baseline.NewFileStore(baselinePath)
	if store.Exists() && !baselineUpdateYes {
		confirmed := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Overwrite existing baseline at %s?", store.Path()),
		}
		if err := askOne(prompt, &confirmed); err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := store.Save(viper.GetString("baseline_producer"), records); err != nil {
		return fmt.Errorf("failed to save baseline: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), report.PassLine(fmt.Sprintf(
		"Baseline saved to %s (%d benchmarks)", store.Path(), len(records))))
	return nil
}
