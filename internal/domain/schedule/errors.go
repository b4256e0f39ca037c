package schedule

import "errors"

// Sentinel kinds for schedule errors.
var (
	ErrInvalidTeamCount = errors.New("team count must be positive and even")
	ErrInvalidWeekCount = errors.New("week count must be positive")
)
