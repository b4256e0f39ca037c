// Package model contains domain models passed between layers.
package model

import "fmt"

// Outcome is a single entry in a team's win/loss record.
type Outcome int8

// Outcome values.
const (
	Loss Outcome = iota
	Win
)

// String renders the outcome as W or L.
func (o Outcome) String() string {
	if o == Win {
		return "W"
	}
	return "L"
}

// Team is a league member with a hidden true strength.
// Strength is fixed for a season; Points and Record belong to the scoring policy replaying it.
type Team struct {
	ID       string    // stable identifier, e.g. "T001"
	Strength float64   // latent true strength, higher is better
	Points   float64   // cumulative committee points
	Record   []Outcome // append-only, one entry per week played
}

// Wins counts the wins in the team's record.
func (t *Team) Wins() int {
	n := 0
	for _, o := range t.Record {
		if o == Win {
			n++
		}
	}
	return n
}

// Losses counts the losses in the team's record.
func (t *Team) Losses() int {
	return len(t.Record) - t.Wins()
}

// TeamID formats the identifier for the team at zero-based index i.
// Identifiers are zero padded so lexical order matches index order.
func TeamID(i int) string {
	return fmt.Sprintf("T%03d", i+1)
}

// Matchup pairs two distinct teams in a given week. Immutable once scheduled.
type Matchup struct {
	Week int
	Home string
	Away string
}

// Involves reports whether the team plays in this matchup.
func (m Matchup) Involves(id string) bool {
	return m.Home == id || m.Away == id
}

// Opponent returns the other side of the matchup for id.
func (m Matchup) Opponent(id string) string {
	if m.Home == id {
		return m.Away
	}
	return m.Home
}

// GameResult is the single outcome of a matchup.
type GameResult struct {
	Matchup Matchup
	Winner  string
	Loser   string
	// Upset is true when the weaker team by true strength won.
	Upset bool
}
