// Package strength assigns latent true strengths and derives the true ranking.
package strength

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/rankdrift/internal/domain/model"
)

// Generate draws n team strengths from dist and returns the teams in ID order
// together with the true ranking (strength DESC, ID ASC).
func Generate(n int, dist Distribution, rng model.Source) ([]model.Team, model.Ranking, error) {
	if n <= 0 {
		return nil, model.Ranking{}, fmt.Errorf("%w: got %d", ErrInvalidTeamCount, n)
	}
	if rng == nil {
		return nil, model.Ranking{}, fmt.Errorf("strength: %w", model.ErrRandomSource)
	}
	if dist == nil {
		return nil, model.Ranking{}, fmt.Errorf("%w: nil distribution", ErrInvalidDistribution)
	}

	teams := make([]model.Team, n)
	for i := range teams {
		s := dist.Draw(rng)
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, model.Ranking{}, fmt.Errorf("%w: team %s drew %v from %s", ErrNonFiniteStrength, model.TeamID(i), s, dist)
		}
		teams[i] = model.Team{ID: model.TeamID(i), Strength: s}
	}

	truth, err := TrueRanking(teams)
	if err != nil {
		return nil, model.Ranking{}, err
	}
	return teams, truth, nil
}

// TrueRanking orders teams by strength DESC with ID ASC as the tie-breaker.
func TrueRanking(teams []model.Team) (model.Ranking, error) {
	sorted := make([]model.Team, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Strength != sorted[j].Strength {
			return sorted[i].Strength > sorted[j].Strength
		}
		return sorted[i].ID < sorted[j].ID
	})

	order := make([]string, len(sorted))
	for i, t := range sorted {
		order[i] = t.ID
	}
	return model.NewRanking(order)
}

// FromStrengths builds teams with fixed strengths, in ID order. Used for
// hand-built leagues where the strengths are known up front.
func FromStrengths(strengths []float64) ([]model.Team, model.Ranking, error) {
	if len(strengths) == 0 {
		return nil, model.Ranking{}, fmt.Errorf("%w: got 0", ErrInvalidTeamCount)
	}
	teams := make([]model.Team, len(strengths))
	for i, s := range strengths {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, model.Ranking{}, fmt.Errorf("%w: team %s has %v", ErrNonFiniteStrength, model.TeamID(i), s)
		}
		teams[i] = model.Team{ID: model.TeamID(i), Strength: s}
	}
	truth, err := TrueRanking(teams)
	if err != nil {
		return nil, model.Ranking{}, err
	}
	return teams, truth, nil
}
