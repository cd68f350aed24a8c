package main

import (
	"context"
	"fmt"
	"time"

	"benchgate/internal/probe"
	"benchgate/internal/report"

	"github.com/spf13/cobra"
)

var (
	probeTarget string
	probeWait   time.Duration
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Smoke-test a results ingest endpoint",
	Long: `Sends a minimal protobuf payload to the ingest endpoint to verify that
routing, auth and CORS accept benchmark uploads before real data is sent.
Any HTTP response means the endpoint is reachable.

Exit codes:
  0 - Endpoint accepted the payload (2xx)
  1 - Endpoint answered with an HTTP error
  2 - Endpoint unreachable`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().StringVar(&probeTarget, "target", "http://localhost:5179/otlp/v1/traces", "Ingest endpoint URL")
	probeCmd.Flags().DurationVar(&probeWait, "wait", 8*time.Second, "How long to wait for the endpoint to come up")
}

func runProbe(cmd *cobra.Command, args []string) error {
	p := probe.New(probeTarget)

	waitCtx, cancel := context.WithTimeout(cmd.Context(), probeWait)
	defer cancel()
	if err := p.WaitReachable(waitCtx); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "target %s\n", probeTarget)
		fmt.Fprintln(cmd.OutOrStdout(), "status unreachable")
		fmt.Fprintln(cmd.OutOrStdout(), report.FailLine("The ingest endpoint is not reachable. Ensure the API is running."))
		exit(2)
		return nil
	}

	res, err := p.Send(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "target %s\n", probeTarget)
	fmt.Fprintf(cmd.OutOrStdout(), "status %d\n", res.StatusCode)
	fmt.Fprintf(cmd.OutOrStdout(), "content-type %s\n", res.ContentType)
	fmt.Fprintf(cmd.OutOrStdout(), "body_len %d\n", res.BodyBytes)

	if !res.OK() {
		fmt.Fprintln(cmd.OutOrStdout(), report.WarnLine(
			"Endpoint answered with an HTTP error; check auth headers and payload routing."))
		exit(1)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.PassLine("Endpoint accepted the payload"))
	return nil
}
