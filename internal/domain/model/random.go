package model

import "math/rand/v2"

// Source is the injectable random capability used by generation and outcome code.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
	NormFloat64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewSource returns a PCG-backed source for the given seed and stream.
// Distinct streams under one seed give independent sequences.
func NewSource(seed, stream uint64) Source {
	return rand.New(rand.NewPCG(seed, stream)) //nolint:gosec // simulation, not crypto
}
