package season

import "errors"

// Season errors.
var (
	ErrInvalidConfig    = errors.New("invalid season config")
	ErrUnknownPreseason = errors.New("unknown preseason mode")
	ErrMissingResults   = errors.New("team has no result for week")
)
