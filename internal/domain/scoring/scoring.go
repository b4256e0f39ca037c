// Package scoring turns weekly game results into committee point deltas.
package scoring

import (
	"fmt"

	"github.com/okian/rankdrift/internal/domain/model"
)

// Policy names.
const (
	PolicyStandard = "standard"
	PolicyHarsher  = "harsher"
)

// Opponent bases.
const (
	BasisPerceived = "perceived"
	BasisTrue      = "true"
)

// Policies lists the supported policy names.
func Policies() []string {
	return []string{PolicyStandard, PolicyHarsher}
}

// ValidateBasis accepts "", perceived and true.
func ValidateBasis(basis string) error {
	switch basis {
	case "", BasisPerceived, BasisTrue:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBasis, basis)
	}
}

// OpponentView is the ranking information a committee may consult.
type OpponentView struct {
	Truth model.Ranking
	// Previous is last week's perceived ranking, nil before week 1.
	Previous *model.Ranking
	// Basis selects which ranking classifies opponents. Empty means perceived.
	Basis string
}

// Reference returns the ranking used to classify opponents. Without a
// previous ranking the true ranking is used.
func (v OpponentView) Reference() model.Ranking {
	if v.Previous != nil && v.Basis != BasisTrue {
		return *v.Previous
	}
	return v.Truth
}

// Policy computes point deltas for one week of results.
type Policy interface {
	// Name returns the policy name.
	Name() string
	// Score returns the points each team earned this week.
	Score(results []model.GameResult, view OpponentView) (map[string]float64, error)
}

// Committee is a table-driven Policy.
type Committee struct {
	name  string
	table Table
	edges Edges
}

// New returns the policy called name, using its table from tables.
func New(name string, tables Tables, opts ...Option) (*Committee, error) {
	var t Table
	switch name {
	case PolicyStandard:
		t = tables.Standard
	case PolicyHarsher:
		t = tables.Harsher
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
	return NewCommittee(name, t, opts...)
}

// NewCommittee builds a policy from an explicit table.
func NewCommittee(name string, t Table, opts ...Option) (*Committee, error) {
	c := &Committee{name: name, table: t, edges: DefaultEdges()}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.edges.Validate(); err != nil {
		return nil, err
	}
	if err := c.table.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Name returns the policy name.
func (c *Committee) Name() string { return c.name }

// Table returns the points table in use.
func (c *Committee) Table() Table { return c.table }

// Classify returns the band of opp as seen by team under ref.
func (c *Committee) Classify(team, opp string, ref model.Ranking) (Band, error) {
	tr, ok := ref.RankOf(team)
	if !ok {
		return 0, fmt.Errorf("%w: team %s not ranked", model.ErrInvariantViolation, team)
	}
	or, ok := ref.RankOf(opp)
	if !ok {
		return 0, fmt.Errorf("%w: team %s not ranked", model.ErrInvariantViolation, opp)
	}
	return c.edges.Classify(or - tr), nil
}

// Score awards the winner and the loser of every result by the band of their opponent.
// Every team that played appears in the result.
func (c *Committee) Score(results []model.GameResult, view OpponentView) (map[string]float64, error) {
	ref := view.Reference()
	deltas := make(map[string]float64, 2*len(results))
	for _, r := range results {
		wb, err := c.Classify(r.Winner, r.Loser, ref)
		if err != nil {
			return nil, err
		}
		lb, err := c.Classify(r.Loser, r.Winner, ref)
		if err != nil {
			return nil, err
		}
		deltas[r.Winner] += c.table.For(wb).Win
		deltas[r.Loser] += c.table.For(lb).Loss
	}
	return deltas, nil
}
