package model

import "errors"

// Sentinel error kinds shared by the simulation packages.
var (
	ErrInvariantViolation = errors.New("invariant violation")
	ErrRandomSource       = errors.New("random source misconfigured")
)
