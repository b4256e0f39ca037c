// Package worker runs trial jobs from a queue on a bounded set of goroutines.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/rankdrift/internal/adapters/mq/queue"
	"github.com/okian/rankdrift/pkg/logger"
	"github.com/okian/rankdrift/pkg/metrics"
)

// Job is what workers read off the queue.
type Job = queue.Job

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// RunFunc executes one job. A returned error stops the whole pool.
type RunFunc func(ctx context.Context, job Job) error

// InMemoryWorker pulls jobs from a shared channel and runs them one at a time.
type InMemoryWorker struct {
	run    RunFunc
	logger logger.Logger
}

// Run processes jobs until the channel closes, ctx is done or a job fails.
func (w *InMemoryWorker) Run(ctx context.Context, jobs <-chan Job) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job, ok := <-jobs:
			if !ok {
				return nil
			}
			if err := w.process(ctx, job); err != nil {
				return err
			}
		}
	}
}

func (w *InMemoryWorker) process(ctx context.Context, job Job) error {
	start := time.Now()
	err := w.run(ctx, job)
	ms := float64(time.Since(start).Milliseconds())
	metrics.RecordTrialDuration(ms)

	if err != nil {
		metrics.RecordErrorByComponent("worker", "trial_failed")
		w.logger.Error(ctx, "trial failed",
			logger.String("run_id", job.RunID),
			logger.Int("trial", job.Index),
			logger.Error(err),
		)
		return fmt.Errorf("trial %d: %w", job.Index, err)
	}

	w.logger.Debug(ctx, "trial done",
		logger.Int("trial", job.Index),
		logger.Float64("duration_ms", ms),
	)
	return nil
}

// Pool manages a fixed number of workers sharing one queue.
type Pool struct {
	size   int
	queue  Queue
	run    RunFunc
	name   string
	logger logger.Logger
}

// NewPool creates a worker pool. A size below 1 means one worker per CPU.
func NewPool(size int, q Queue, run RunFunc, opts ...Option) *Pool {
	if size < 1 {
		size = runtime.NumCPU()
	}
	p := &Pool{
		size:   size,
		queue:  q,
		run:    run,
		name:   "worker-pool",
		logger: logger.Get(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named(p.name)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Run starts the workers and waits for them. It returns when the queue is
// closed and drained, or with the first job error, which cancels the rest.
func (p *Pool) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	jobs := p.queue.Dequeue(gctx)

	metrics.UpdateWorkerCount(p.size)
	defer metrics.UpdateWorkerCount(0)

	for i := 0; i < p.size; i++ {
		w := &InMemoryWorker{
			run:    p.run,
			logger: p.logger.Named("worker-" + strconv.Itoa(i)),
		}
		g.Go(func() error {
			return w.Run(gctx, jobs)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return nil
}
