package outcome

import "errors"

// Configuration errors for outcome engines.
var (
	ErrInvalidScale = errors.New("logistic scale must be positive and finite")
	ErrInvalidFloor = errors.New("probability floor must be in [0, 0.5)")
	ErrUnknownModel = errors.New("unknown outcome model")
	ErrMissingTruth = errors.New("rank bins need a true ranking")
)
