package ranking

import "errors"

// Sentinel kinds for aggregation errors.
var (
	ErrInvalidTieBreak = errors.New("invalid tie-break")
	ErrNonFinitePoints = errors.New("non-finite points")
)
