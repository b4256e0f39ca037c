// Package outcome decides single games from latent strengths plus noise.
// Engines never see committee points.
package outcome

import (
	"fmt"
	"math"

	"github.com/okian/rankdrift/internal/domain/model"
)

// Model names accepted by New.
const (
	ModelLogistic = "logistic"
	ModelRankBins = "rank_bins"
)

// Default logistic parameters.
const (
	DefaultScale = 8.0
	DefaultFloor = 0.01
)

// Engine resolves matchups.
type Engine interface {
	// WinProbability returns the chance that a beats b.
	WinProbability(a, b model.Team) float64
	// Play draws one uniform variate and returns the result.
	Play(m model.Matchup, a, b model.Team, rng model.Source) model.GameResult
}

// Params selects and tunes an engine.
type Params struct {
	Model string
	Scale float64
	Floor float64
}

// DefaultParams returns the logistic model with default tuning.
func DefaultParams() Params {
	return Params{Model: ModelLogistic, Scale: DefaultScale, Floor: DefaultFloor}
}

// New builds the engine named by p.Model. truth is required by rank_bins only.
func New(p Params, truth *model.Ranking) (Engine, error) {
	switch p.Model {
	case "", ModelLogistic:
		return NewLogistic(WithScale(p.Scale), WithFloor(p.Floor))
	case ModelRankBins:
		if truth == nil {
			return nil, ErrMissingTruth
		}
		return NewRankBins(*truth)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, p.Model)
	}
}

// Logistic maps the strength gap through a logistic curve squeezed into [floor, 1-floor].
type Logistic struct {
	scale float64
	floor float64
}

// NewLogistic creates a logistic engine with configuration options.
func NewLogistic(opts ...Option) (*Logistic, error) {
	l := &Logistic{scale: DefaultScale, floor: DefaultFloor}
	for _, opt := range opts {
		opt(l)
	}
	if !(l.scale > 0) || math.IsInf(l.scale, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScale, l.scale)
	}
	if !(l.floor >= 0 && l.floor < 0.5) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFloor, l.floor)
	}
	return l, nil
}

// WinProbability returns floor + (1-2*floor) / (1 + exp(-(sa-sb)/scale)).
func (l *Logistic) WinProbability(a, b model.Team) float64 {
	x := (a.Strength - b.Strength) / l.scale
	return l.floor + (1-2*l.floor)/(1+math.Exp(-x))
}

// Play decides the matchup; a is the home side.
func (l *Logistic) Play(m model.Matchup, a, b model.Team, rng model.Source) model.GameResult {
	return decide(m, a, b, l.WinProbability(a, b), rng)
}

// RankBins uses the true-rank gap between the teams and a fixed probability table.
type RankBins struct {
	truth model.Ranking
}

type bin struct {
	maxGap int
	p      float64
}

var rankBins = []bin{
	{5, 0.50},
	{10, 0.65},
	{15, 0.75},
	{25, 0.85},
	{50, 0.95},
	{100, 0.98},
}

const rankBinsTail = 0.99

// NewRankBins creates an engine bound to the season's true ranking.
func NewRankBins(truth model.Ranking) (*RankBins, error) {
	if truth.Len() == 0 {
		return nil, ErrMissingTruth
	}
	return &RankBins{truth: truth}, nil
}

// WinProbability favours the better ranked team by the bin of the rank gap.
// Unknown teams are treated as an even matchup.
func (r *RankBins) WinProbability(a, b model.Team) float64 {
	ra, okA := r.truth.RankOf(a.ID)
	rb, okB := r.truth.RankOf(b.ID)
	if !okA || !okB || ra == rb {
		return 0.5
	}
	gap := ra - rb
	if gap < 0 {
		gap = -gap
	}
	p := rankBinsTail
	for _, bn := range rankBins {
		if gap <= bn.maxGap {
			p = bn.p
			break
		}
	}
	if ra < rb {
		return p
	}
	return 1 - p
}

// Play decides the matchup; a is the home side.
func (r *RankBins) Play(m model.Matchup, a, b model.Team, rng model.Source) model.GameResult {
	return decide(m, a, b, r.WinProbability(a, b), rng)
}

func decide(m model.Matchup, a, b model.Team, pa float64, rng model.Source) model.GameResult {
	res := model.GameResult{Matchup: m}
	if rng.Float64() < pa {
		res.Winner, res.Loser = a.ID, b.ID
		res.Upset = a.Strength < b.Strength
	} else {
		res.Winner, res.Loser = b.ID, a.ID
		res.Upset = b.Strength < a.Strength
	}
	return res
}
