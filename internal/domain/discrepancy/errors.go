package discrepancy

import "errors"

// Metric errors.
var (
	ErrNonFinite    = errors.New("non-finite metric value")
	ErrRaggedTrials = errors.New("trials cover different weeks")
	ErrNoTrials     = errors.New("no trials to summarize")
	ErrInvalidTopN  = errors.New("top-n must be positive")
)
