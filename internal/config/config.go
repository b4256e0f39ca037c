// Package config defines run configuration structures and loading hooks.
//
// Conventions:
//   - New() returns a Config holding every default.
//   - Load layers a YAML file and the environment over the defaults.
//   - Validate reports the first problem wrapped in ErrInvalidConfig.
package config

import (
	"github.com/okian/rankdrift/internal/domain/discrepancy"
	"github.com/okian/rankdrift/internal/domain/outcome"
	"github.com/okian/rankdrift/internal/domain/ranking"
	"github.com/okian/rankdrift/internal/domain/scoring"
	"github.com/okian/rankdrift/internal/domain/strength"
	"github.com/okian/rankdrift/internal/season"
)

// Report formats.
const (
	ReportTable = "table"
	ReportCSV   = "csv"
	ReportYAML  = "yaml"
)

// Config contains run configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// TeamCount is the league size N. Must be even.
	TeamCount int `koanf:"team_count"`
	// WeekCount is the number of weeks W per season.
	WeekCount int `koanf:"week_count"`
	// TrialCount is the number of independent seasons S.
	TrialCount int `koanf:"trial_count"`

	// WorkerCount sets the number of trial workers; 0 means one per CPU.
	WorkerCount int `koanf:"worker_count"`
	// QueueSize bounds the trial job queue.
	QueueSize int `koanf:"queue_size"`

	// RandomSeed fixes the run seed. When unset a seed is drawn and logged.
	RandomSeed *uint64 `koanf:"random_seed"`

	// ScoringPolicy is standard or harsher.
	ScoringPolicy string `koanf:"scoring_policy"`
	// TopN sizes the headline group of the discrepancy metrics.
	TopN int `koanf:"top_n"`
	// TieBreak orders teams level on points: id or previous.
	TieBreak string `koanf:"tie_break"`
	// OpponentBasis classifies opponents on the perceived or true ranking.
	OpponentBasis string `koanf:"opponent_basis"`
	// Preseason selects the week-0 poll: none, inverted or tiered.
	Preseason string `koanf:"preseason"`
	// RematchRepair swaps partners to avoid repeated pairings.
	RematchRepair bool `koanf:"rematch_repair"`

	Strength StrengthConfig `koanf:"strength"`
	Outcome  OutcomeConfig  `koanf:"outcome"`
	Scoring  ScoringConfig  `koanf:"scoring"`

	// ReportFormat is table, csv or yaml.
	ReportFormat string `koanf:"report_format"`
	// ReportPath is the report destination; empty means stdout.
	ReportPath string `koanf:"report_path"`
	// MetricsPath, when set, receives the run's metrics in Prometheus text format.
	MetricsPath string `koanf:"metrics_path"`
}

// StrengthConfig selects the latent strength distribution.
type StrengthConfig struct {
	Distribution string  `koanf:"distribution"`
	Mean         float64 `koanf:"mean"`
	StdDev       float64 `koanf:"stddev"`
	Min          float64 `koanf:"min"`
	Max          float64 `koanf:"max"`
}

// OutcomeConfig selects the game outcome model.
type OutcomeConfig struct {
	Model string  `koanf:"model"`
	Scale float64 `koanf:"scale"`
	Floor float64 `koanf:"floor"`
}

// ScoringConfig holds band edges and both points tables.
type ScoringConfig struct {
	NearEdge int         `koanf:"near_edge"`
	MidEdge  int         `koanf:"mid_edge"`
	Standard TableConfig `koanf:"standard"`
	Harsher  TableConfig `koanf:"harsher"`
}

// TableConfig is a points table keyed by opponent band.
type TableConfig struct {
	Stronger PointsConfig `koanf:"stronger"`
	Near     PointsConfig `koanf:"near"`
	Mid      PointsConfig `koanf:"mid"`
	Far      PointsConfig `koanf:"far"`
}

// PointsConfig is the award for a win and for a loss.
type PointsConfig struct {
	Win  float64 `koanf:"win"`
	Loss float64 `koanf:"loss"`
}

func tableConfig(t scoring.Table) TableConfig {
	return TableConfig{
		Stronger: PointsConfig{Win: t.Stronger.Win, Loss: t.Stronger.Loss},
		Near:     PointsConfig{Win: t.Near.Win, Loss: t.Near.Loss},
		Mid:      PointsConfig{Win: t.Mid.Win, Loss: t.Mid.Loss},
		Far:      PointsConfig{Win: t.Far.Win, Loss: t.Far.Loss},
	}
}

// Table converts to the scoring representation.
func (t TableConfig) Table() scoring.Table {
	return scoring.Table{
		Stronger: scoring.Points{Win: t.Stronger.Win, Loss: t.Stronger.Loss},
		Near:     scoring.Points{Win: t.Near.Win, Loss: t.Near.Loss},
		Mid:      scoring.Points{Win: t.Mid.Win, Loss: t.Mid.Loss},
		Far:      scoring.Points{Win: t.Far.Win, Loss: t.Far.Loss},
	}
}

// New creates a Config holding the defaults.
func New() *Config {
	sp := strength.DefaultParams()
	op := outcome.DefaultParams()
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		TeamCount:     season.DefaultTeams,
		WeekCount:     season.DefaultWeeks,
		TrialCount:    100,
		WorkerCount:   0,
		QueueSize:     64,
		ScoringPolicy: scoring.PolicyStandard,
		TopN:          discrepancy.DefaultTopN,
		TieBreak:      string(ranking.TieBreakID),
		OpponentBasis: scoring.BasisPerceived,
		Preseason:     season.PreseasonNone,
		RematchRepair: true,
		Strength: StrengthConfig{
			Distribution: sp.Kind,
			Mean:         sp.Mean,
			StdDev:       sp.StdDev,
			Min:          sp.Min,
			Max:          sp.Max,
		},
		Outcome: OutcomeConfig{
			Model: op.Model,
			Scale: op.Scale,
			Floor: op.Floor,
		},
		Scoring: ScoringConfig{
			NearEdge: scoring.DefaultNearEdge,
			MidEdge:  scoring.DefaultMidEdge,
			Standard: tableConfig(scoring.StandardTable()),
			Harsher:  tableConfig(scoring.HarsherTable()),
		},
		ReportFormat: ReportTable,
	}
}

// Season returns the season generation settings.
func (c *Config) Season() season.Config {
	return season.Config{
		Teams: c.TeamCount,
		Weeks: c.WeekCount,
		Strength: strength.Params{
			Kind:   c.Strength.Distribution,
			Mean:   c.Strength.Mean,
			StdDev: c.Strength.StdDev,
			Min:    c.Strength.Min,
			Max:    c.Strength.Max,
		},
		Outcome: outcome.Params{
			Model: c.Outcome.Model,
			Scale: c.Outcome.Scale,
			Floor: c.Outcome.Floor,
		},
		Preseason:     c.Preseason,
		RematchRepair: c.RematchRepair,
	}
}

// Replay returns the per-policy replay settings.
func (c *Config) Replay() season.ReplayOptions {
	return season.ReplayOptions{
		TopN:     c.TopN,
		TieBreak: ranking.TieBreak(c.TieBreak),
		Basis:    c.OpponentBasis,
	}
}

// Tables returns both points tables.
func (c *Config) Tables() scoring.Tables {
	return scoring.Tables{
		Standard: c.Scoring.Standard.Table(),
		Harsher:  c.Scoring.Harsher.Table(),
	}
}

// Policy builds the named committee policy from the configured tables and edges.
func (c *Config) Policy(name string) (scoring.Policy, error) {
	p, err := scoring.New(name, c.Tables(), scoring.WithBandEdges(c.Scoring.NearEdge, c.Scoring.MidEdge))
	if err != nil {
		return nil, err
	}
	return p, nil
}
