package strength

import "errors"

// Sentinel kinds for strength generation errors.
var (
	ErrInvalidTeamCount    = errors.New("team count must be positive")
	ErrInvalidDistribution = errors.New("invalid strength distribution")
	ErrNonFiniteStrength   = errors.New("strength draw is not finite")
)
