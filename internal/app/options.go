package app

import (
	"github.com/okian/rankdrift/internal/season"
	"github.com/okian/rankdrift/pkg/logger"
)

// Option applies a configuration option to the Orchestrator.
type Option func(*Orchestrator)

// WithWorkerCount sets the number of trial workers.
func WithWorkerCount(count int) Option {
	return func(o *Orchestrator) {
		if count > 0 {
			o.workers = count
		}
	}
}

// WithQueueSize sets the capacity of the trial job queue.
func WithQueueSize(size int) Option {
	return func(o *Orchestrator) {
		if size > 0 {
			o.queueSize = size
		}
	}
}

// WithSeed fixes the run seed, overriding the configured one.
func WithSeed(seed uint64) Option {
	return func(o *Orchestrator) {
		o.seed = &seed
	}
}

// WithLogger sets a custom logger for the orchestrator.
func WithLogger(logger logger.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSeasonOptions passes options to every season the run generates.
func WithSeasonOptions(opts ...season.Option) Option {
	return func(o *Orchestrator) {
		o.seasonOpts = append(o.seasonOpts, opts...)
	}
}
