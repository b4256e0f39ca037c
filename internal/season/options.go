package season

import "github.com/okian/rankdrift/internal/domain/outcome"

// Option applies a configuration option to season generation.
type Option func(*generator)

// WithEngine replaces the configured outcome engine.
func WithEngine(e outcome.Engine) Option {
	return func(g *generator) {
		g.engine = e
	}
}

// WithStrengths fixes team strengths instead of drawing them.
// The team count becomes len(strengths).
func WithStrengths(strengths []float64) Option {
	return func(g *generator) {
		g.strengths = append([]float64(nil), strengths...)
	}
}
