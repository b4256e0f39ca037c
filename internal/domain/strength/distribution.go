package strength

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/rankdrift/internal/domain/model"
)

// Distribution kinds.
const (
	KindNormal  = "normal"
	KindUniform = "uniform"
)

// Default distribution parameters.
const (
	DefaultMean   = 0.0
	DefaultStdDev = 10.0
	DefaultMin    = 0.0
	DefaultMax    = 100.0
)

// Distribution draws latent team strengths.
type Distribution interface {
	Draw(rng model.Source) float64
	String() string
}

// Params selects and parameterizes a Distribution.
type Params struct {
	Kind   string
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// DefaultParams returns the normal(0, 10) distribution parameters.
func DefaultParams() Params {
	return Params{Kind: KindNormal, Mean: DefaultMean, StdDev: DefaultStdDev, Min: DefaultMin, Max: DefaultMax}
}

// Normal is a Gaussian strength distribution.
type Normal struct {
	Mean   float64
	StdDev float64
}

// Draw samples one strength.
func (n Normal) Draw(rng model.Source) float64 {
	return n.Mean + n.StdDev*rng.NormFloat64()
}

func (n Normal) String() string {
	return fmt.Sprintf("normal(mean=%g, stddev=%g)", n.Mean, n.StdDev)
}

// Uniform draws strengths from [Min, Max).
type Uniform struct {
	Min float64
	Max float64
}

// Draw samples one strength.
func (u Uniform) Draw(rng model.Source) float64 {
	return u.Min + (u.Max-u.Min)*rng.Float64()
}

func (u Uniform) String() string {
	return fmt.Sprintf("uniform(min=%g, max=%g)", u.Min, u.Max)
}

// NewDistribution validates params and builds the matching Distribution.
func NewDistribution(p Params) (Distribution, error) {
	switch strings.ToLower(strings.TrimSpace(p.Kind)) {
	case "", KindNormal:
		if !finite(p.Mean) || !finite(p.StdDev) || p.StdDev <= 0 {
			return nil, fmt.Errorf("%w: normal needs finite mean and stddev > 0, got mean=%g stddev=%g", ErrInvalidDistribution, p.Mean, p.StdDev)
		}
		return Normal{Mean: p.Mean, StdDev: p.StdDev}, nil
	case KindUniform:
		if !finite(p.Min) || !finite(p.Max) || p.Max <= p.Min {
			return nil, fmt.Errorf("%w: uniform needs finite min < max, got min=%g max=%g", ErrInvalidDistribution, p.Min, p.Max)
		}
		return Uniform{Min: p.Min, Max: p.Max}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidDistribution, p.Kind)
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
