// Package schedule produces weekly pairings for a league.
package schedule

import (
	"fmt"

	"github.com/okian/rankdrift/internal/domain/model"
)

// Schedule holds every matchup of a season grouped by week (index 0 is week 1).
type Schedule struct {
	weeks     [][]model.Matchup
	rematches int
}

// Weeks returns the number of scheduled weeks.
func (s Schedule) Weeks() int { return len(s.weeks) }

// Week returns the matchups for a 1-based week.
func (s Schedule) Week(w int) []model.Matchup {
	if w < 1 || w > len(s.weeks) {
		return nil
	}
	return s.weeks[w-1]
}

// Len returns the total number of matchups.
func (s Schedule) Len() int {
	n := 0
	for _, wk := range s.weeks {
		n += len(wk)
	}
	return n
}

// Rematches counts pairings that repeat an earlier week's pairing.
func (s Schedule) Rematches() int { return s.rematches }

// Validate checks that every team in ids plays exactly once per week, never against
// itself, and that no unknown team is scheduled.
func (s Schedule) Validate(ids []string) error {
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	for i, wk := range s.weeks {
		week := i + 1
		booked := make(map[string]struct{}, len(ids))
		for _, m := range wk {
			if m.Week != week {
				return fmt.Errorf("%w: matchup %s-%s tagged week %d in week %d", model.ErrInvariantViolation, m.Home, m.Away, m.Week, week)
			}
			if m.Home == m.Away {
				return fmt.Errorf("%w: team %s plays itself in week %d", model.ErrInvariantViolation, m.Home, week)
			}
			for _, id := range []string{m.Home, m.Away} {
				if _, ok := known[id]; !ok {
					return fmt.Errorf("%w: unknown team %s in week %d", model.ErrInvariantViolation, id, week)
				}
				if _, dup := booked[id]; dup {
					return fmt.Errorf("%w: team %s double-booked in week %d", model.ErrInvariantViolation, id, week)
				}
				booked[id] = struct{}{}
			}
		}
		if len(booked) != len(ids) {
			return fmt.Errorf("%w: %d of %d teams play in week %d", model.ErrInvariantViolation, len(booked), len(ids), week)
		}
	}
	return nil
}

// FromWeeks builds a schedule from explicit weekly matchups. Week numbers are
// taken from position; the result is validated against ids.
func FromWeeks(ids []string, weeks [][]model.Matchup) (Schedule, error) {
	ledger := NewLedger()
	s := Schedule{weeks: make([][]model.Matchup, len(weeks))}
	for i, wk := range weeks {
		s.weeks[i] = make([]model.Matchup, len(wk))
		for j, m := range wk {
			m.Week = i + 1
			s.weeks[i][j] = m
			if ledger.SeenAndRecord(m.Home, m.Away) {
				s.rematches++
			}
		}
	}
	if err := s.Validate(ids); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

// Generator draws random perfect matchings week by week.
type Generator struct {
	repair bool
}

// NewGenerator creates a schedule generator with configuration options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{repair: true}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate is a convenience wrapper around the default Generator.
func Generate(ids []string, weeks int, rng model.Source) (Schedule, error) {
	return NewGenerator().Generate(ids, weeks, rng)
}

// Generate produces weeks*(len(ids)/2) matchups. Each week shuffles the league
// and pairs neighbours; when repair is on, a pairing already played this season
// is swapped with a later pair if that removes the rematch.
func (g *Generator) Generate(ids []string, weeks int, rng model.Source) (Schedule, error) {
	n := len(ids)
	if n <= 0 || n%2 != 0 {
		return Schedule{}, fmt.Errorf("%w: got %d", ErrInvalidTeamCount, n)
	}
	if weeks <= 0 {
		return Schedule{}, fmt.Errorf("%w: got %d", ErrInvalidWeekCount, weeks)
	}
	if rng == nil {
		return Schedule{}, fmt.Errorf("schedule: %w", model.ErrRandomSource)
	}

	ledger := NewLedger()
	s := Schedule{weeks: make([][]model.Matchup, weeks)}
	order := make([]string, n)

	for w := 1; w <= weeks; w++ {
		copy(order, ids)
		rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
		if g.repair {
			repairRematches(order, ledger)
		}

		wk := make([]model.Matchup, 0, n/2)
		for p := 0; p < n; p += 2 {
			if ledger.SeenAndRecord(order[p], order[p+1]) {
				s.rematches++
			}
			wk = append(wk, model.Matchup{Week: w, Home: order[p], Away: order[p+1]})
		}
		s.weeks[w-1] = wk
	}

	if err := s.Validate(ids); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

// repairRematches swaps partners between pairs so that, where possible, no pair
// in order repeats a pairing already in the ledger.
func repairRematches(order []string, ledger *Ledger) {
	pairs := len(order) / 2
	for p := 0; p < pairs; p++ {
		a, b := order[2*p], order[2*p+1]
		if !ledger.Seen(a, b) {
			continue
		}
		for q := p + 1; q < pairs; q++ {
			c, d := order[2*q], order[2*q+1]
			if !ledger.Seen(a, c) && !ledger.Seen(b, d) {
				order[2*p+1], order[2*q] = c, b
				break
			}
			if !ledger.Seen(a, d) && !ledger.Seen(b, c) {
				order[2*p+1], order[2*q+1] = d, b
				break
			}
		}
	}
}
