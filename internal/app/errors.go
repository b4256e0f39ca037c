package app

import "errors"

// Sentinel errors returned by the orchestrator.
var (
	ErrNoConfig   = errors.New("orchestrator needs a config")
	ErrRunAborted = errors.New("run aborted")
)
