// Package season generates one simulated season and replays it through a
// committee scoring policy.
package season

import (
	"fmt"

	"github.com/okian/rankdrift/internal/domain/model"
	"github.com/okian/rankdrift/internal/domain/outcome"
	"github.com/okian/rankdrift/internal/domain/schedule"
	"github.com/okian/rankdrift/internal/domain/strength"
)

// Default league shape.
const (
	DefaultTeams = 134
	DefaultWeeks = 12
)

// Config describes how a season is generated.
type Config struct {
	Teams         int
	Weeks         int
	Strength      strength.Params
	Outcome       outcome.Params
	Preseason     string
	RematchRepair bool
}

// DefaultConfig returns a 134-team, 12-week league with normal strengths and
// the logistic outcome model.
func DefaultConfig() Config {
	return Config{
		Teams:         DefaultTeams,
		Weeks:         DefaultWeeks,
		Strength:      strength.DefaultParams(),
		Outcome:       outcome.DefaultParams(),
		Preseason:     PreseasonNone,
		RematchRepair: true,
	}
}

// Validate checks the league shape and mode names.
func (c Config) Validate() error {
	if c.Teams < 2 || c.Teams%2 != 0 {
		return fmt.Errorf("%w: team count %d must be even and at least 2", ErrInvalidConfig, c.Teams)
	}
	if c.Weeks < 1 {
		return fmt.Errorf("%w: week count %d must be positive", ErrInvalidConfig, c.Weeks)
	}
	if err := ValidatePreseason(c.Preseason); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Season is everything about a trial that does not depend on committee scoring.
type Season struct {
	// Teams in ID order with fixed strengths and empty records.
	Teams    []model.Team
	Truth    model.Ranking
	Schedule schedule.Schedule
	// Results holds one slice per week, in schedule order.
	Results [][]model.GameResult
	// Preseason is the week-0 poll, nil when there is none.
	Preseason *model.Ranking
}

// IDs returns the team IDs in ID order.
func (s *Season) IDs() []string {
	ids := make([]string, len(s.Teams))
	for i, t := range s.Teams {
		ids[i] = t.ID
	}
	return ids
}

// Weeks returns the number of weeks played.
func (s *Season) Weeks() int { return len(s.Results) }

// Upsets counts results won by the weaker team.
func (s *Season) Upsets() int {
	n := 0
	for _, wk := range s.Results {
		for _, r := range wk {
			if r.Upset {
				n++
			}
		}
	}
	return n
}

// Games counts all results.
func (s *Season) Games() int {
	n := 0
	for _, wk := range s.Results {
		n += len(wk)
	}
	return n
}

type generator struct {
	engine    outcome.Engine
	strengths []float64
}

// Generate draws strengths, schedule, preseason poll and every game result.
// Draw order from rng is fixed, so a seed reproduces the season exactly.
func Generate(cfg Config, rng model.Source, opts ...Option) (*Season, error) {
	if rng == nil {
		return nil, fmt.Errorf("season: %w", model.ErrRandomSource)
	}
	g := &generator{}
	for _, opt := range opts {
		opt(g)
	}
	if g.strengths != nil {
		cfg.Teams = len(g.strengths)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		teams []model.Team
		truth model.Ranking
		err   error
	)
	if g.strengths != nil {
		teams, truth, err = strength.FromStrengths(g.strengths)
	} else {
		dist, derr := strength.NewDistribution(cfg.Strength)
		if derr != nil {
			return nil, derr
		}
		teams, truth, err = strength.Generate(cfg.Teams, dist, rng)
	}
	if err != nil {
		return nil, err
	}

	s := &Season{Teams: teams, Truth: truth}
	s.Schedule, err = schedule.NewGenerator(schedule.WithRematchRepair(cfg.RematchRepair)).Generate(s.IDs(), cfg.Weeks, rng)
	if err != nil {
		return nil, err
	}
	s.Preseason, err = Preseason(cfg.Preseason, truth, rng)
	if err != nil {
		return nil, err
	}

	engine := g.engine
	if engine == nil {
		engine, err = outcome.New(cfg.Outcome, &truth)
		if err != nil {
			return nil, err
		}
	}
	s.Results = Play(s.Schedule, teams, engine, rng)
	return s, nil
}

// Play resolves every scheduled matchup with engine, week by week.
func Play(sched schedule.Schedule, teams []model.Team, engine outcome.Engine, rng model.Source) [][]model.GameResult {
	byID := make(map[string]model.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	out := make([][]model.GameResult, sched.Weeks())
	for w := 1; w <= sched.Weeks(); w++ {
		wk := sched.Week(w)
		res := make([]model.GameResult, len(wk))
		for i, m := range wk {
			res[i] = engine.Play(m, byID[m.Home], byID[m.Away], rng)
		}
		out[w-1] = res
	}
	return out
}
