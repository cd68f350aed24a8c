package main

import (
	"fmt"
	"os"
	"strings"

	"benchgate/internal/telemetry"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "benchgate",
	Short: "CI quality gate for benchmark and test results",
	Long: `benchgate turns raw benchmark and test artifacts into a single
pass/fail verdict for CI. It normalizes result formats, compares runs
against baselines or sibling jobs, classifies test failures, and exits
with a code a pipeline can act on.`,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n", r)
			exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'benchgate --help' for usage.")
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Duplicate logs to this file")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus textfile metrics to this path")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("metrics_file", rootCmd.PersistentFlags().Lookup("metrics-file"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("BENCHGATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("threshold", 5.0)
	viper.SetDefault("throughput_threshold", 110.0)
	viper.SetDefault("allocation_threshold", 120.0)
	viper.SetDefault("framework", "abies")
	viper.SetDefault("baseline_producer", "abies")
	viper.SetDefault("verbose", false)

	slackEnabled := false
	if os.Getenv("SLACK_BOT_USER_TOKEN") != "" {
		slackEnabled = true
	}
	viper.SetDefault("notifications.slack.enabled", slackEnabled)
	viper.SetDefault("notifications.slack.channel", "#ci-benchmarks")
	viper.SetDefault("notifications.slack.webhook_url", "")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"))
}

// newGateMetrics returns a recorder when --metrics-file is set, nil otherwise.
func newGateMetrics() *telemetry.GateMetrics {
	if viper.GetString("metrics_file") == "" {
		return nil
	}
	return telemetry.NewGateMetrics()
}

// flushMetrics writes the textfile if metrics are enabled.
func flushMetrics(m *telemetry.GateMetrics) {
	if m == nil {
		return
	}
	path := viper.GetString("metrics_file")
	if err := m.WriteTextfile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to write metrics file: %v\n", err)
	}
}
