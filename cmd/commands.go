package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/rankdrift/internal/app"
	"github.com/okian/rankdrift/internal/config"
	"github.com/okian/rankdrift/internal/report"
	"github.com/okian/rankdrift/pkg/logger"
	"github.com/okian/rankdrift/pkg/metrics"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate every trial under one scoring policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			o, err := app.New(cfg)
			if err != nil {
				return err
			}
			sum, err := o.Run(cmd.Context(), cfg.ScoringPolicy)
			if err != nil {
				return err
			}
			return finish(cmd, cfg, sum)
		},
	}
	cmd.Flags().String(flagPolicy, "", "Scoring policy: standard or harsher")
	return cmd
}

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Replay the same seasons through the standard and harsher tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			o, err := app.New(cfg)
			if err != nil {
				return err
			}
			cmp, err := o.Compare(cmd.Context())
			if err != nil {
				return err
			}
			return finish(cmd, cfg, cmp)
		},
	}
}

// finish writes the report and, when configured, the metrics file.
func finish(cmd *cobra.Command, cfg *config.Config, result any) error {
	out, err := report.Render(cfg.ReportFormat, result)
	if err != nil {
		return err
	}
	if err := writeTo(cfg.ReportPath, cmd.OutOrStdout(), func(w io.Writer) error {
		_, err := io.WriteString(w, out)
		return err
	}); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.MetricsPath != "" {
		if err := writeTo(cfg.MetricsPath, nil, metrics.WriteText); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		logger.Get().Info(cmd.Context(), "metrics written", logger.String("path", cfg.MetricsPath))
	}
	return nil
}

// writeTo runs write against path, or against fallback when path is empty.
func writeTo(path string, fallback io.Writer, write func(io.Writer) error) (err error) {
	if path == "" {
		return write(fallback)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func lookupEnvConfigPath() string {
	return os.Getenv(config.EnvConfigPath)
}
