package scoring

import "errors"

// Scoring errors.
var (
	ErrUnknownPolicy = errors.New("unknown scoring policy")
	ErrUnknownBasis  = errors.New("unknown opponent basis")
	ErrInvalidTable  = errors.New("invalid points table")
	ErrInvalidBands  = errors.New("invalid band edges")
)
