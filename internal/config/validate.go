package config

import (
	"fmt"
	"strings"

	"github.com/okian/rankdrift/internal/domain/outcome"
	"github.com/okian/rankdrift/internal/domain/ranking"
	"github.com/okian/rankdrift/internal/domain/scoring"
	"github.com/okian/rankdrift/internal/domain/strength"
	"github.com/okian/rankdrift/internal/season"
)

// Validate checks every setting before any trial runs.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.TeamCount < 2 || c.TeamCount%2 != 0 {
		return fmt.Errorf("%w: team_count %d must be even and at least 2", ErrInvalidConfig, c.TeamCount)
	}
	if c.WeekCount < 1 {
		return fmt.Errorf("%w: week_count %d must be positive", ErrInvalidConfig, c.WeekCount)
	}
	if c.TrialCount < 1 {
		return fmt.Errorf("%w: trial_count %d must be positive", ErrInvalidConfig, c.TrialCount)
	}
	if c.WorkerCount < 0 {
		return fmt.Errorf("%w: worker_count %d must not be negative", ErrInvalidConfig, c.WorkerCount)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("%w: queue_size %d must be positive", ErrInvalidConfig, c.QueueSize)
	}
	if c.TopN < 1 {
		return fmt.Errorf("%w: top_n %d must be positive", ErrInvalidConfig, c.TopN)
	}
	if c.ScoringPolicy != scoring.PolicyStandard && c.ScoringPolicy != scoring.PolicyHarsher {
		return fmt.Errorf("%w: scoring_policy %q", ErrInvalidConfig, c.ScoringPolicy)
	}
	if _, err := ranking.ParseTieBreak(c.TieBreak); err != nil {
		return fmt.Errorf("%w: tie_break: %w", ErrInvalidConfig, err)
	}
	if err := scoring.ValidateBasis(c.OpponentBasis); err != nil {
		return fmt.Errorf("%w: opponent_basis: %w", ErrInvalidConfig, err)
	}
	if err := season.ValidatePreseason(c.Preseason); err != nil {
		return fmt.Errorf("%w: preseason: %w", ErrInvalidConfig, err)
	}

	sc := c.Season()
	if _, err := strength.NewDistribution(sc.Strength); err != nil {
		return fmt.Errorf("%w: strength: %w", ErrInvalidConfig, err)
	}
	switch sc.Outcome.Model {
	case "", outcome.ModelLogistic:
		if _, err := outcome.NewLogistic(outcome.WithScale(sc.Outcome.Scale), outcome.WithFloor(sc.Outcome.Floor)); err != nil {
			return fmt.Errorf("%w: outcome: %w", ErrInvalidConfig, err)
		}
	case outcome.ModelRankBins:
	default:
		return fmt.Errorf("%w: outcome: %w: %q", ErrInvalidConfig, outcome.ErrUnknownModel, sc.Outcome.Model)
	}

	if err := (scoring.Edges{Near: c.Scoring.NearEdge, Mid: c.Scoring.MidEdge}).Validate(); err != nil {
		return fmt.Errorf("%w: scoring: %w", ErrInvalidConfig, err)
	}
	if err := c.Tables().Validate(); err != nil {
		return fmt.Errorf("%w: scoring: %w", ErrInvalidConfig, err)
	}

	switch c.ReportFormat {
	case ReportTable, ReportCSV, ReportYAML:
	default:
		return fmt.Errorf("%w: report_format %q", ErrInvalidConfig, c.ReportFormat)
	}
	return nil
}
