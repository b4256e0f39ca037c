// Package app runs simulation batches. It fans trials out to the worker pool
// and reduces their discrepancy records into per-week summaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/rankdrift/internal/adapters/mq/queue"
	"github.com/okian/rankdrift/internal/adapters/mq/worker"
	"github.com/okian/rankdrift/internal/config"
	"github.com/okian/rankdrift/internal/domain/discrepancy"
	"github.com/okian/rankdrift/internal/domain/model"
	"github.com/okian/rankdrift/internal/domain/scoring"
	"github.com/okian/rankdrift/internal/season"
	"github.com/okian/rankdrift/pkg/logger"
	"github.com/okian/rankdrift/pkg/metrics"
)

// Run modes, used as metric labels.
const (
	ModeRun     = "run"
	ModeCompare = "compare"
)

// Orchestrator runs S independent trials on a worker pool.
type Orchestrator struct {
	cfg *config.Config

	workers    int
	queueSize  int
	seed       *uint64
	seasonOpts []season.Option

	logger logger.Logger
}

// New validates cfg and builds an Orchestrator for it.
func New(cfg *config.Config, opts ...Option) (*Orchestrator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, ErrNoConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &Orchestrator{
		cfg:       cfg,
		workers:   cfg.WorkerCount,
		queueSize: cfg.QueueSize,
		seed:      cfg.RandomSeed,
	}
	if o.workers < 1 {
		o.workers = runtime.NumCPU()
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.Get()
	}
	o.logger = o.logger.Named("orchestrator")
	return o, nil
}

// Workers returns the size of the trial pool.
func (o *Orchestrator) Workers() int { return o.workers }

// Run simulates every trial under the named policy and summarizes the
// discrepancy series. An empty name uses the configured policy.
func (o *Orchestrator) Run(ctx context.Context, policyName string) (*Summary, error) {
	if policyName == "" {
		policyName = o.cfg.ScoringPolicy
	}
	policy, err := o.cfg.Policy(policyName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	b := o.newBatch(ctx, ModeRun)
	records := make([][]model.DiscrepancyRecord, o.cfg.TrialCount)
	spreads := make([]float64, o.cfg.TrialCount)

	err = o.execute(ctx, b, func(ctx context.Context, job queue.Job) error {
		s, err := o.generate(job)
		if err != nil {
			return o.failed(policy.Name(), "generate", err)
		}
		tr, err := o.replay(ctx, s, policy)
		if err != nil {
			return err
		}
		records[job.Index] = tr.Records
		spreads[job.Index] = season.Spread(tr.FinalPoints())
		return nil
	})
	if err != nil {
		return nil, b.fail(err)
	}

	sum, err := o.summarize(b, policy.Name(), records, spreads)
	if err != nil {
		return nil, b.fail(err)
	}
	metrics.UpdateFinalAvgDiff(sum.Policy, sum.Final().AvgDiff.Mean)
	b.done()
	return sum, nil
}

// Compare generates each trial's season once and replays it through both
// policies, so the two summaries differ only by the points table.
func (o *Orchestrator) Compare(ctx context.Context) (*Comparison, error) {
	standard, err := o.cfg.Policy(scoring.PolicyStandard)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	harsher, err := o.cfg.Policy(scoring.PolicyHarsher)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	b := o.newBatch(ctx, ModeCompare)
	n := o.cfg.TrialCount
	stdRecords := make([][]model.DiscrepancyRecord, n)
	hrsRecords := make([][]model.DiscrepancyRecord, n)
	spreads := make([]TrialSpread, n)

	err = o.execute(ctx, b, func(ctx context.Context, job queue.Job) error {
		s, err := o.generate(job)
		if err != nil {
			return o.failed(ModeCompare, "generate", err)
		}
		st, err := o.replay(ctx, s, standard)
		if err != nil {
			return err
		}
		ht, err := o.replay(ctx, s, harsher)
		if err != nil {
			return err
		}
		stdRecords[job.Index] = st.Records
		hrsRecords[job.Index] = ht.Records
		spreads[job.Index] = TrialSpread{
			Trial:      job.Index,
			Standard:   season.Spread(st.FinalPoints()),
			Harsher:    season.Spread(ht.FinalPoints()),
			TopOverlap: season.TopOverlap(st.Final().Ranking, ht.Final().Ranking, o.cfg.TopN),
		}
		return nil
	})
	if err != nil {
		return nil, b.fail(err)
	}

	stdSpreads := make([]float64, n)
	hrsSpreads := make([]float64, n)
	for i, s := range spreads {
		stdSpreads[i] = s.Standard
		hrsSpreads[i] = s.Harsher
	}
	cmp := &Comparison{RunID: b.runID, Seed: b.seed, TopN: o.cfg.TopN, Spreads: spreads}
	if cmp.Standard, err = o.summarize(b, standard.Name(), stdRecords, stdSpreads); err != nil {
		return nil, b.fail(err)
	}
	if cmp.Harsher, err = o.summarize(b, harsher.Name(), hrsRecords, hrsSpreads); err != nil {
		return nil, b.fail(err)
	}
	metrics.UpdateFinalAvgDiff(cmp.Standard.Policy, cmp.Standard.Final().AvgDiff.Mean)
	metrics.UpdateFinalAvgDiff(cmp.Harsher.Policy, cmp.Harsher.Final().AvgDiff.Mean)

	b.done()
	o.logger.Info(ctx, "policies compared",
		logger.String("run_id", b.runID),
		logger.Int("harsher_wider", cmp.WiderSpread()),
		logger.Float64("top_overlap", cmp.MeanTopOverlap()),
		logger.Int("trials", n),
	)
	return cmp, nil
}

// batch carries the identity of one run.
type batch struct {
	ctx    context.Context
	runID  string
	seed   uint64
	mode   string
	start  time.Time
	logger logger.Logger
}

func (o *Orchestrator) newBatch(ctx context.Context, mode string) *batch {
	b := &batch{
		ctx:   ctx,
		runID: uuid.NewString(),
		mode:  mode,
		start: time.Now(),
	}
	if o.seed != nil {
		b.seed = *o.seed
	} else {
		b.seed = rand.Uint64() //nolint:gosec // seed for a simulation, logged for reruns
	}
	b.logger = o.logger.Named(mode)
	b.logger.Info(ctx, "run started",
		logger.String("run_id", b.runID),
		logger.String("seed", strconv.FormatUint(b.seed, 10)),
		logger.Int("trials", o.cfg.TrialCount),
		logger.Int("teams", o.cfg.TeamCount),
		logger.Int("weeks", o.cfg.WeekCount),
		logger.Int("workers", o.workers),
	)
	return b
}

// fail records a failed run and returns err unchanged.
func (b *batch) fail(err error) error {
	metrics.RecordRun(b.mode, "failed")
	b.logger.Error(b.ctx, "run failed",
		logger.String("run_id", b.runID),
		logger.Error(err),
	)
	return err
}

// done records a successful run.
func (b *batch) done() {
	metrics.RecordRun(b.mode, "ok")
	b.logger.Info(b.ctx, "run finished",
		logger.String("run_id", b.runID),
		logger.Float64("duration_ms", float64(time.Since(b.start).Milliseconds())),
	)
}

// execute feeds one job per trial through the queue while the pool drains
// it. The first failure cancels the producer and the remaining workers.
func (o *Orchestrator) execute(ctx context.Context, b *batch, run worker.RunFunc) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRunAborted, err)
	}

	q := queue.NewInMemoryQueue(queue.WithCapacity(o.queueSize))
	pool := worker.NewPool(o.workers, q, run,
		worker.WithName("trials"),
		worker.WithLogger(b.logger),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer func() { _ = q.Close() }()
		for i := 0; i < o.cfg.TrialCount; i++ {
			job := queue.Job{RunID: b.runID, Index: i, Seed: b.seed}
			if err := q.Put(gctx, job); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		return pool.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w", ErrRunAborted, err)
		}
		return err
	}
	return nil
}

// generate builds the season of one trial from its own random stream.
func (o *Orchestrator) generate(job queue.Job) (*season.Season, error) {
	rng := model.NewSource(job.Seed, uint64(job.Index)) //nolint:gosec // index is never negative
	s, err := season.Generate(o.cfg.Season(), rng, o.seasonOpts...)
	if err != nil {
		return nil, err
	}
	metrics.RecordGamesSimulated(s.Games())
	metrics.RecordUpsets(s.Upsets())
	metrics.RecordRematches(s.Schedule.Rematches())
	return s, nil
}

func (o *Orchestrator) replay(ctx context.Context, s *season.Season, policy scoring.Policy) (*season.Trial, error) {
	tr, err := season.Replay(ctx, s, policy, o.cfg.Replay())
	if err != nil {
		reason := "replay"
		if ctx.Err() != nil {
			reason = "cancelled"
		}
		return nil, o.failed(policy.Name(), reason, err)
	}
	metrics.RecordWeeksScored(policy.Name(), len(tr.Records))
	metrics.RecordTrialCompleted(policy.Name())
	return tr, nil
}

func (o *Orchestrator) failed(policy, reason string, err error) error {
	metrics.RecordTrialFailed(policy, reason)
	return err
}

func (o *Orchestrator) summarize(b *batch, policy string, records [][]model.DiscrepancyRecord, spreads []float64) (*Summary, error) {
	weeks, err := discrepancy.Summarize(records)
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", policy, err)
	}
	spread, err := discrepancy.Describe(spreads)
	if err != nil {
		return nil, fmt.Errorf("summarize %s spread: %w", policy, err)
	}
	return &Summary{
		RunID:  b.runID,
		Policy: policy,
		Seed:   b.seed,
		Teams:  o.cfg.TeamCount,
		Trials: len(records),
		Weeks:  weeks,
		Spread: spread,
	}, nil
}
