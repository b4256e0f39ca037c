package discrepancy

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/rankdrift/internal/domain/model"
)

// Stat describes one metric across trials.
type Stat struct {
	Mean float64 `json:"mean" yaml:"mean"`
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	P10  float64 `json:"p10" yaml:"p10"`
	P50  float64 `json:"p50" yaml:"p50"`
	P90  float64 `json:"p90" yaml:"p90"`
}

// WeekSummary aggregates every metric of one week across trials.
type WeekSummary struct {
	Week         int  `json:"week" yaml:"week"`
	Trials       int  `json:"trials" yaml:"trials"`
	AvgDiff      Stat `json:"avg_diff" yaml:"avg_diff"`
	MaxDiff      Stat `json:"max_diff" yaml:"max_diff"`
	MaxRise      Stat `json:"max_rise" yaml:"max_rise"`
	MaxFall      Stat `json:"max_fall" yaml:"max_fall"`
	Top25AvgDiff Stat `json:"top25_avg_diff" yaml:"top25_avg_diff"`
	Top25MaxDiff Stat `json:"top25_max_diff" yaml:"top25_max_diff"`
}

// Metric names in report order.
var Metrics = []string{"avg_diff", "max_diff", "max_rise", "max_fall", "top25_avg_diff", "top25_max_diff"}

// Stat returns the named metric, or false for an unknown name.
func (w WeekSummary) Stat(metric string) (Stat, bool) {
	switch metric {
	case "avg_diff":
		return w.AvgDiff, true
	case "max_diff":
		return w.MaxDiff, true
	case "max_rise":
		return w.MaxRise, true
	case "max_fall":
		return w.MaxFall, true
	case "top25_avg_diff":
		return w.Top25AvgDiff, true
	case "top25_max_diff":
		return w.Top25MaxDiff, true
	default:
		return Stat{}, false
	}
}

func values(r model.DiscrepancyRecord) [6]float64 {
	return [6]float64{
		r.AvgDiff,
		float64(r.MaxDiff),
		float64(r.MaxRise),
		float64(r.MaxFall),
		r.Top25AvgDiff,
		float64(r.Top25MaxDiff),
	}
}

// Summarize reduces per-trial weekly records to one summary per week.
// Every trial must cover the same weeks in the same order.
func Summarize(trials [][]model.DiscrepancyRecord) ([]WeekSummary, error) {
	if len(trials) == 0 {
		return nil, ErrNoTrials
	}
	weeks := len(trials[0])
	for i, t := range trials {
		if len(t) != weeks {
			return nil, fmt.Errorf("%w: trial %d has %d weeks, trial 0 has %d", ErrRaggedTrials, i, len(t), weeks)
		}
	}

	out := make([]WeekSummary, weeks)
	cols := make([][]float64, len(Metrics))
	for w := 0; w < weeks; w++ {
		week := trials[0][w].Week
		for m := range cols {
			cols[m] = cols[m][:0]
		}
		for i, t := range trials {
			if t[w].Week != week {
				return nil, fmt.Errorf("%w: trial %d has week %d where trial 0 has week %d", ErrRaggedTrials, i, t[w].Week, week)
			}
			for m, v := range values(t[w]) {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return nil, fmt.Errorf("%w: trial %d week %d %s=%v", ErrNonFinite, i, week, Metrics[m], v)
				}
				cols[m] = append(cols[m], v)
			}
		}
		out[w] = WeekSummary{
			Week:         week,
			Trials:       len(trials),
			AvgDiff:      describe(cols[0]),
			MaxDiff:      describe(cols[1]),
			MaxRise:      describe(cols[2]),
			MaxFall:      describe(cols[3]),
			Top25AvgDiff: describe(cols[4]),
			Top25MaxDiff: describe(cols[5]),
		}
	}
	return out, nil
}

// describe sorts xs in place and returns its statistics.
func describe(xs []float64) Stat {
	sort.Float64s(xs)
	return Stat{
		Mean: mean(xs),
		Min:  xs[0],
		Max:  xs[len(xs)-1],
		P10:  percentile(xs, 0.10),
		P50:  percentile(xs, 0.50),
		P90:  percentile(xs, 0.90),
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// percentile uses linear interpolation between closest ranks of sorted.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	idx := p * float64(n-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// Describe returns the statistics of xs, leaving xs untouched.
func Describe(xs []float64) (Stat, error) {
	if len(xs) == 0 {
		return Stat{}, ErrNoTrials
	}
	sorted := make([]float64, len(xs))
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Stat{}, fmt.Errorf("%w: value %d is %v", ErrNonFinite, i, x)
		}
		sorted[i] = x
	}
	return describe(sorted), nil
}
