package model

import "fmt"

// Ranking is an ordinal ordering of teams: position i holds rank i+1.
// A Ranking is always a permutation of its team IDs with no ties.
type Ranking struct {
	order []string
	pos   map[string]int
}

// NewRanking builds a Ranking from team IDs listed best first.
// Returns ErrInvariantViolation on duplicate or empty IDs.
func NewRanking(order []string) (Ranking, error) {
	r := Ranking{
		order: make([]string, len(order)),
		pos:   make(map[string]int, len(order)),
	}
	copy(r.order, order)
	for i, id := range r.order {
		if id == "" {
			return Ranking{}, fmt.Errorf("%w: empty team id at rank %d", ErrInvariantViolation, i+1)
		}
		if prev, dup := r.pos[id]; dup {
			return Ranking{}, fmt.Errorf("%w: team %s ranked at %d and %d", ErrInvariantViolation, id, prev+1, i+1)
		}
		r.pos[id] = i
	}
	return r, nil
}

// Len returns the number of ranked teams.
func (r Ranking) Len() int { return len(r.order) }

// RankOf returns the 1-based rank of a team.
func (r Ranking) RankOf(id string) (int, bool) {
	i, ok := r.pos[id]
	if !ok {
		return 0, false
	}
	return i + 1, true
}

// At returns the team holding the 1-based rank.
func (r Ranking) At(rank int) string {
	if rank < 1 || rank > len(r.order) {
		return ""
	}
	return r.order[rank-1]
}

// Top returns up to n team IDs, best first.
func (r Ranking) Top(n int) []string {
	if n > len(r.order) {
		n = len(r.order)
	}
	if n < 0 {
		n = 0
	}
	out := make([]string, n)
	copy(out, r.order[:n])
	return out
}

// IDs returns a copy of the full ordering, best first.
func (r Ranking) IDs() []string {
	return r.Top(len(r.order))
}

// Validate checks that the ranking is a permutation of exactly the given team IDs.
func (r Ranking) Validate(ids []string) error {
	if len(r.order) != len(ids) || len(r.pos) != len(ids) {
		return fmt.Errorf("%w: ranking holds %d teams, league has %d", ErrInvariantViolation, len(r.order), len(ids))
	}
	for _, id := range ids {
		if _, ok := r.pos[id]; !ok {
			return fmt.Errorf("%w: team %s missing from ranking", ErrInvariantViolation, id)
		}
	}
	return nil
}

// WeekSnapshot captures the committee's published view after a week.
type WeekSnapshot struct {
	Week    int
	Points  map[string]float64
	Ranking Ranking
}
