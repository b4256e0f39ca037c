package discrepancy_test

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/okian/rankdrift/internal/domain/discrepancy"
	"github.com/okian/rankdrift/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = model.TeamID(i)
	}
	return out
}

func mustRanking(order []string) model.Ranking {
	r, err := model.NewRanking(order)
	if err != nil {
		panic(err)
	}
	return r
}

func snapshot(week int, order []string) model.WeekSnapshot {
	return model.WeekSnapshot{Week: week, Ranking: mustRanking(order)}
}

func TestCollect(t *testing.T) {
	Convey("Given a perceived ranking equal to the truth", t, func() {
		truth := mustRanking(ids(4))
		rec, err := discrepancy.Collect(snapshot(1, ids(4)), nil, truth, 25)
		So(err, ShouldBeNil)

		Convey("Then every metric is zero", func() {
			So(rec, ShouldResemble, model.DiscrepancyRecord{Week: 1})
		})
	})

	Convey("Given a reversed four-team ranking", t, func() {
		truth := mustRanking(ids(4))
		cur := snapshot(2, []string{"T004", "T003", "T002", "T001"})
		prev := snapshot(1, ids(4))
		rec, err := discrepancy.Collect(cur, &prev, truth, 2)
		So(err, ShouldBeNil)

		Convey("Then diffs are 3,1,1,3", func() {
			So(rec.Week, ShouldEqual, 2)
			So(rec.AvgDiff, ShouldEqual, 2.0)
			So(rec.MaxDiff, ShouldEqual, 3)
		})

		Convey("Then rise and fall compare with last week", func() {
			So(rec.MaxRise, ShouldEqual, 3)
			So(rec.MaxFall, ShouldEqual, 3)
		})

		Convey("Then the top group is the perceived top two", func() {
			So(rec.Top25AvgDiff, ShouldEqual, 2.0)
			So(rec.Top25MaxDiff, ShouldEqual, 3)
		})
	})

	Convey("Given a top-n larger than the league", t, func() {
		truth := mustRanking(ids(4))
		rec, err := discrepancy.Collect(snapshot(1, []string{"T002", "T001", "T003", "T004"}), nil, truth, 25)
		So(err, ShouldBeNil)

		Convey("Then the top group is the whole league", func() {
			So(rec.Top25AvgDiff, ShouldEqual, rec.AvgDiff)
			So(rec.Top25MaxDiff, ShouldEqual, rec.MaxDiff)
		})
	})

	Convey("Given random perceived rankings", t, func() {
		rng := rand.New(rand.NewPCG(9, 9))
		truth := mustRanking(ids(134))
		var prev *model.WeekSnapshot

		Convey("Then the metric invariants hold every week", func() {
			for w := 1; w <= 12; w++ {
				order := ids(134)
				rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
				cur := snapshot(w, order)
				rec, err := discrepancy.Collect(cur, prev, truth, discrepancy.DefaultTopN)
				So(err, ShouldBeNil)
				So(rec.AvgDiff, ShouldBeGreaterThanOrEqualTo, 0)
				So(float64(rec.MaxDiff), ShouldBeGreaterThanOrEqualTo, rec.AvgDiff)
				So(rec.Top25AvgDiff, ShouldBeLessThanOrEqualTo, float64(rec.MaxDiff))
				So(rec.Top25MaxDiff, ShouldBeLessThanOrEqualTo, rec.MaxDiff)
				So(rec.MaxRise, ShouldBeGreaterThanOrEqualTo, 0)
				So(rec.MaxFall, ShouldBeGreaterThanOrEqualTo, 0)
				if w == 1 {
					So(rec.MaxRise, ShouldEqual, 0)
					So(rec.MaxFall, ShouldEqual, 0)
				}
				prev = &cur
			}
		})
	})

	Convey("Given invalid input", t, func() {
		truth := mustRanking(ids(4))

		Convey("Then a ranking that misses a team is rejected", func() {
			_, err := discrepancy.Collect(snapshot(1, ids(3)), nil, truth, 25)
			So(errors.Is(err, model.ErrInvariantViolation), ShouldBeTrue)
		})

		Convey("Then a non-positive top-n is rejected", func() {
			_, err := discrepancy.Collect(snapshot(1, ids(4)), nil, truth, 0)
			So(errors.Is(err, discrepancy.ErrInvalidTopN), ShouldBeTrue)
		})
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given five trials of two weeks", t, func() {
		var trials [][]model.DiscrepancyRecord
		for i := 1; i <= 5; i++ {
			trials = append(trials, []model.DiscrepancyRecord{
				{Week: 1, AvgDiff: float64(i), MaxDiff: 10 * i},
				{Week: 2, AvgDiff: float64(2 * i), MaxRise: i},
			})
		}
		sum, err := discrepancy.Summarize(trials)
		So(err, ShouldBeNil)

		Convey("Then there is one summary per week", func() {
			So(sum, ShouldHaveLength, 2)
			So(sum[0].Week, ShouldEqual, 1)
			So(sum[1].Trials, ShouldEqual, 5)
		})

		Convey("Then the mean and spread are computed", func() {
			So(sum[0].AvgDiff.Mean, ShouldEqual, 3.0)
			So(sum[0].AvgDiff.Min, ShouldEqual, 1.0)
			So(sum[0].AvgDiff.Max, ShouldEqual, 5.0)
			So(sum[0].AvgDiff.P50, ShouldEqual, 3.0)
			So(sum[0].AvgDiff.P10, ShouldAlmostEqual, 1.4, 1e-9)
			So(sum[0].AvgDiff.P90, ShouldAlmostEqual, 4.6, 1e-9)
			So(sum[0].MaxDiff.Mean, ShouldEqual, 30.0)
			So(sum[1].MaxRise.Max, ShouldEqual, 5.0)
		})

		Convey("Then stats are addressable by name", func() {
			s, ok := sum[1].Stat("avg_diff")
			So(ok, ShouldBeTrue)
			So(s.Mean, ShouldEqual, 6.0)
			_, ok = sum[1].Stat("nope")
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given trials of unequal length", t, func() {
		_, err := discrepancy.Summarize([][]model.DiscrepancyRecord{
			{{Week: 1}, {Week: 2}},
			{{Week: 1}},
		})
		So(errors.Is(err, discrepancy.ErrRaggedTrials), ShouldBeTrue)
	})

	Convey("Given a non-finite value", t, func() {
		_, err := discrepancy.Summarize([][]model.DiscrepancyRecord{
			{{Week: 1, AvgDiff: math.NaN()}},
		})
		So(errors.Is(err, discrepancy.ErrNonFinite), ShouldBeTrue)
	})

	Convey("Given no trials", t, func() {
		_, err := discrepancy.Summarize(nil)
		So(errors.Is(err, discrepancy.ErrNoTrials), ShouldBeTrue)
	})
}

func TestDescribe(t *testing.T) {
	Convey("Given five values out of order", t, func() {
		xs := []float64{5, 1, 4, 2, 3}
		s, err := discrepancy.Describe(xs)

		Convey("Then the stats match and the input is untouched", func() {
			So(err, ShouldBeNil)
			So(s.Mean, ShouldEqual, 3.0)
			So(s.Min, ShouldEqual, 1.0)
			So(s.Max, ShouldEqual, 5.0)
			So(s.P50, ShouldEqual, 3.0)
			So(xs, ShouldResemble, []float64{5, 1, 4, 2, 3})
		})
	})

	Convey("Given no values or an infinite one", t, func() {
		_, err := discrepancy.Describe(nil)
		So(errors.Is(err, discrepancy.ErrNoTrials), ShouldBeTrue)
		_, err = discrepancy.Describe([]float64{1, math.Inf(1)})
		So(errors.Is(err, discrepancy.ErrNonFinite), ShouldBeTrue)
	})
}
