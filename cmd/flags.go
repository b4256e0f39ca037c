package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/rankdrift/internal/config"
	"github.com/okian/rankdrift/pkg/logger"
)

// Flag names.
const (
	flagConfig     = "config"
	flagSeed       = "seed"
	flagTrials     = "trials"
	flagTeams      = "teams"
	flagWeeks      = "weeks"
	flagWorkers    = "workers"
	flagFormat     = "format"
	flagOut        = "out"
	flagMetricsOut = "metrics-out"
	flagLogLevel   = "log-level"
	flagPolicy     = "policy"
)

// setup loads the layered config, applies the flags that were set and
// initializes logging on the command's error stream.
func setup(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString(flagConfig)
	if path == "" {
		path = lookupEnvConfigPath()
	}
	cfg, err := config.LoadFrom(cmd.Context(), path)
	if err != nil {
		return nil, err
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logger.InitWithOptions(logger.Options{
		Writer: cmd.ErrOrStderr(),
		Format: cfg.LogFormat,
		Level:  cfg.LogLevel,
	}); err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed(flagSeed) {
		seed, err := f.GetUint64(flagSeed)
		if err != nil {
			return err
		}
		cfg.RandomSeed = &seed
	}
	ints := map[string]*int{
		flagTrials:  &cfg.TrialCount,
		flagTeams:   &cfg.TeamCount,
		flagWeeks:   &cfg.WeekCount,
		flagWorkers: &cfg.WorkerCount,
	}
	for name, dst := range ints {
		if !f.Changed(name) {
			continue
		}
		v, err := f.GetInt(name)
		if err != nil {
			return err
		}
		*dst = v
	}
	strs := map[string]*string{
		flagFormat:     &cfg.ReportFormat,
		flagOut:        &cfg.ReportPath,
		flagMetricsOut: &cfg.MetricsPath,
		flagLogLevel:   &cfg.LogLevel,
		flagPolicy:     &cfg.ScoringPolicy,
	}
	for name, dst := range strs {
		if f.Lookup(name) == nil || !f.Changed(name) {
			continue
		}
		v, err := f.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}
	return nil
}
