// Package metrics provides Prometheus metrics for simulation runs.
//
// A run is a batch job with no scrape endpoint, so the registry is written
// once as Prometheus text when the run ends.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Manager manages all Prometheus metrics of a simulation run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Simulation metrics
	trialsCompleted *prometheus.CounterVec
	trialsFailed    *prometheus.CounterVec
	trialDuration   prometheus.Histogram
	gamesSimulated  prometheus.Counter
	upsets          prometheus.Counter
	rematches       prometheus.Counter
	weeksScored     *prometheus.CounterVec
	finalAvgDiff    *prometheus.GaugeVec
	runs            *prometheus.CounterVec

	// Execution metrics
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	workerCount   prometheus.Gauge

	errorRateByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rankdrift",
		subsystem:        "simulation",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.trialsCompleted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "trials_completed_total",
		Help:        "Total number of trials replayed to the final week",
		ConstLabels: m.constLabels,
	}, []string{"policy"})

	m.trialsFailed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "trials_failed_total",
		Help:        "Total number of trials that aborted",
		ConstLabels: m.constLabels,
	}, []string{"policy", "reason"})

	m.trialDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "trial_duration_milliseconds",
		Help:        "Histogram of wall time per trial in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.gamesSimulated = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "games_simulated_total",
		Help:        "Total number of games decided by the outcome engine",
		ConstLabels: m.constLabels,
	})

	m.upsets = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "upsets_total",
		Help:        "Total number of games won by the weaker team",
		ConstLabels: m.constLabels,
	})

	m.rematches = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rematches_total",
		Help:        "Total number of scheduled games repeating an earlier pairing",
		ConstLabels: m.constLabels,
	})

	m.weeksScored = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "weeks_scored_total",
		Help:        "Total number of weeks scored by a committee policy",
		ConstLabels: m.constLabels,
	}, []string{"policy"})

	m.finalAvgDiff = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "final_avg_diff",
		Help:        "Mean final-week average rank discrepancy of the last run",
		ConstLabels: m.constLabels,
	}, []string{"policy"})

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_total",
		Help:        "Total number of runs by mode and result",
		ConstLabels: m.constLabels,
	}, []string{"mode", "result"})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queue_size",
		Help:        "Current number of trial jobs waiting",
		ConstLabels: m.constLabels,
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queue_capacity",
		Help:        "Maximum number of trial jobs waiting",
		ConstLabels: m.constLabels,
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "worker_count",
		Help:        "Current number of trial workers",
		ConstLabels: m.constLabels,
	})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_component_total",
		Help:        "Total number of errors by component",
		ConstLabels: m.constLabels,
	}, []string{"component", "error_type"})
}

// RecordTrialCompleted increments the completed trials counter.
func RecordTrialCompleted(policy string) {
	globalManager.trialsCompleted.WithLabelValues(policy).Inc()
}

// RecordTrialFailed increments the failed trials counter.
func RecordTrialFailed(policy, reason string) {
	globalManager.trialsFailed.WithLabelValues(policy, reason).Inc()
}

// RecordTrialDuration records trial wall time in milliseconds.
func RecordTrialDuration(ms float64) {
	globalManager.trialDuration.Observe(ms)
}

// RecordGamesSimulated adds n decided games.
func RecordGamesSimulated(n int) {
	globalManager.gamesSimulated.Add(float64(n))
}

// RecordUpsets adds n upsets.
func RecordUpsets(n int) {
	globalManager.upsets.Add(float64(n))
}

// RecordRematches adds n repeated pairings.
func RecordRematches(n int) {
	globalManager.rematches.Add(float64(n))
}

// RecordWeeksScored adds n scored weeks.
func RecordWeeksScored(policy string, n int) {
	globalManager.weeksScored.WithLabelValues(policy).Add(float64(n))
}

// UpdateFinalAvgDiff sets the final-week mean AvgDiff of a policy.
func UpdateFinalAvgDiff(policy string, v float64) {
	globalManager.finalAvgDiff.WithLabelValues(policy).Set(v)
}

// RecordRun increments the runs counter.
func RecordRun(mode, result string) {
	globalManager.runs.WithLabelValues(mode, result).Inc()
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteText writes every metric of the custom registry in the Prometheus
// text exposition format.
func WriteText(w io.Writer) error {
	return writeText(w, customRegistry)
}

func writeText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGatherFailed, err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteFailed, mf.GetName(), err)
		}
	}
	return nil
}
