// Package ranking orders teams by committee points into a strict ranking.
package ranking

import (
	"fmt"
	"math"

	"github.com/okian/rankdrift/internal/domain/model"
)

// TieBreak selects the order of teams level on points.
type TieBreak string

// Supported tie-breaks.
const (
	// TieBreakID orders level teams by team ID ascending.
	TieBreakID TieBreak = "id"
	// TieBreakPrevious keeps last week's relative order, then team ID.
	TieBreakPrevious TieBreak = "previous"
)

// ParseTieBreak validates a configured tie-break. Empty means TieBreakID.
func ParseTieBreak(s string) (TieBreak, error) {
	switch TieBreak(s) {
	case "", TieBreakID:
		return TieBreakID, nil
	case TieBreakPrevious:
		return TieBreakPrevious, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTieBreak, s)
	}
}

// Board is an order-statistics leaderboard of team points.
type Board struct {
	root     *node
	byID     map[string]key
	tieBreak TieBreak
	prev     *model.Ranking
}

// NewBoard constructs an empty board with configuration options.
func NewBoard(opts ...Option) *Board {
	b := &Board{
		byID:     make(map[string]key),
		tieBreak: TieBreakID,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Board) tieKey(id string) int {
	if b.tieBreak != TieBreakPrevious || b.prev == nil {
		return 0
	}
	if r, ok := b.prev.RankOf(id); ok {
		return r
	}
	return math.MaxInt
}

// Set records the points for a team, replacing any earlier value.
func (b *Board) Set(id string, points float64) error {
	if math.IsNaN(points) || math.IsInf(points, 0) {
		return fmt.Errorf("%w: team %s has %v", ErrNonFinitePoints, id, points)
	}
	if old, ok := b.byID[id]; ok {
		b.root = deleteNode(b.root, old)
	}
	k := key{points: toFixedPoint(points), tie: b.tieKey(id), id: id}
	b.byID[id] = k
	b.root = insert(b.root, k)
	return nil
}

// Top returns up to n team IDs, best first.
func (b *Board) Top(n int) []string {
	if n < 1 {
		return nil
	}
	out := make([]string, 0, min(n, len(b.byID)))
	collectTopN(b.root, n, &out)
	return out
}

// Len returns the number of teams on the board.
func (b *Board) Len() int { return nsize(b.root) }

// Ranking returns the full ordering as a model.Ranking.
func (b *Board) Ranking() (model.Ranking, error) {
	return model.NewRanking(b.Top(len(b.byID)))
}

// Aggregate orders teams by points DESC with ties resolved by tb.
// The result is validated to be a permutation of the teams in points.
func Aggregate(points map[string]float64, prev *model.Ranking, tb TieBreak) (model.Ranking, error) {
	tb, err := ParseTieBreak(string(tb))
	if err != nil {
		return model.Ranking{}, err
	}
	b := NewBoard(WithTieBreak(tb), WithPrevious(prev))
	ids := make([]string, 0, len(points))
	for id, p := range points {
		if err := b.Set(id, p); err != nil {
			return model.Ranking{}, err
		}
		ids = append(ids, id)
	}
	r, err := b.Ranking()
	if err != nil {
		return model.Ranking{}, err
	}
	if err := r.Validate(ids); err != nil {
		return model.Ranking{}, err
	}
	return r, nil
}
