package config

import "errors"

var (
	// ErrInvalidConfig wraps every setting that Validate rejects, so a bad
	// league shape or table fails before any trial runs.
	ErrInvalidConfig = errors.New("invalid simulation settings")
	// ErrLoadConfig wraps failures reading the YAML file or decoding the
	// layered values into a Config.
	ErrLoadConfig = errors.New("cannot read simulation settings")
)
