package ranking

import "github.com/okian/rankdrift/internal/domain/model"

// Option applies a configuration option to the Board.
type Option func(*Board)

// WithTieBreak sets how teams level on points are ordered.
func WithTieBreak(tb TieBreak) Option {
	return func(b *Board) {
		b.tieBreak = tb
	}
}

// WithPrevious sets last week's perceived ranking, consulted by TieBreakPrevious.
func WithPrevious(prev *model.Ranking) Option {
	return func(b *Board) {
		b.prev = prev
	}
}
