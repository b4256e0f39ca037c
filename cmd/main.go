package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rankdrift",
		Short: "Simulate how far a weekly committee ranking drifts from true strength",
		Long: `rankdrift plays many seeded college-football seasons and replays each one
through a committee points table. Every week the perceived ranking is
compared with the true strength ranking and the displacement is summarized
across trials.

Settings come from defaults, an optional YAML file, a .env file and
RANKDRIFT_* environment variables, in that order. Flags override them all.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.String(flagConfig, "", "YAML config file (overrides RANKDRIFT_CONFIG)")
	pf.Uint64(flagSeed, 0, "Run seed; drawn and logged when unset")
	pf.Int(flagTrials, 0, "Number of seasons to simulate")
	pf.Int(flagTeams, 0, "League size (even)")
	pf.Int(flagWeeks, 0, "Weeks per season")
	pf.Int(flagWorkers, 0, "Trial workers (0 = one per CPU)")
	pf.String(flagFormat, "", "Report format: table, csv or yaml")
	pf.StringP(flagOut, "o", "", "Report file (stdout when empty)")
	pf.String(flagMetricsOut, "", "Write run metrics in Prometheus text format to this file")
	pf.String(flagLogLevel, "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newRunCmd(),
		newCompareCmd(),
	)
	return rootCmd
}
