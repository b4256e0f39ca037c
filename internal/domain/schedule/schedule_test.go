package schedule_test

import (
	"errors"
	"testing"

	"github.com/okian/rankdrift/internal/domain/model"
	"github.com/okian/rankdrift/internal/domain/schedule"
	. "github.com/smartystreets/goconvey/convey"
)

func leagueIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = model.TeamID(i)
	}
	return ids
}

func TestGenerate(t *testing.T) {
	Convey("Given a full league of 134 teams and 12 weeks", t, func() {
		ids := leagueIDs(134)
		s, err := schedule.Generate(ids, 12, model.NewSource(11, 0))
		So(err, ShouldBeNil)

		Convey("Then it holds W*(N/2) matchups", func() {
			So(s.Weeks(), ShouldEqual, 12)
			So(s.Len(), ShouldEqual, 12*67)
		})

		Convey("Then each team plays exactly once per week", func() {
			for w := 1; w <= 12; w++ {
				seen := map[string]int{}
				for _, m := range s.Week(w) {
					So(m.Week, ShouldEqual, w)
					So(m.Home, ShouldNotEqual, m.Away)
					seen[m.Home]++
					seen[m.Away]++
				}
				So(len(seen), ShouldEqual, 134)
				for _, c := range seen {
					So(c, ShouldEqual, 1)
				}
			}
			So(s.Validate(ids), ShouldBeNil)
		})

		Convey("Then pairings vary week to week", func() {
			So(s.Week(1), ShouldNotResemble, s.Week(2))
		})

		Convey("Then out of range weeks are empty", func() {
			So(s.Week(0), ShouldBeNil)
			So(s.Week(13), ShouldBeNil)
		})
	})

	Convey("Given the same seed twice", t, func() {
		ids := leagueIDs(20)
		a, _ := schedule.Generate(ids, 5, model.NewSource(5, 1))
		b, _ := schedule.Generate(ids, 5, model.NewSource(5, 1))

		Convey("Then the schedules are identical", func() {
			So(a, ShouldResemble, b)
		})
	})

	Convey("Given four teams over three weeks with rematch repair", t, func() {
		for seed := uint64(0); seed < 25; seed++ {
			s, err := schedule.Generate(leagueIDs(4), 3, model.NewSource(seed, 0))
			So(err, ShouldBeNil)

			Convey("Then the season is a full round robin without rematches", func() {
				So(s.Rematches(), ShouldEqual, 0)
			})
		}
	})

	Convey("Given four teams over twelve weeks", t, func() {
		gen := schedule.NewGenerator(schedule.WithRematchRepair(false))
		s, err := gen.Generate(leagueIDs(4), 12, model.NewSource(2, 0))
		So(err, ShouldBeNil)

		Convey("Then rematches are unavoidable but the schedule is well formed", func() {
			So(s.Rematches(), ShouldBeGreaterThanOrEqualTo, 18)
			So(s.Validate(leagueIDs(4)), ShouldBeNil)
		})
	})

	Convey("Given invalid inputs", t, func() {
		rng := model.NewSource(1, 0)

		Convey("Then an odd or empty league is rejected", func() {
			_, err := schedule.Generate(leagueIDs(5), 3, rng)
			So(errors.Is(err, schedule.ErrInvalidTeamCount), ShouldBeTrue)
			_, err = schedule.Generate(nil, 3, rng)
			So(errors.Is(err, schedule.ErrInvalidTeamCount), ShouldBeTrue)
		})

		Convey("Then a non-positive week count is rejected", func() {
			_, err := schedule.Generate(leagueIDs(4), 0, rng)
			So(errors.Is(err, schedule.ErrInvalidWeekCount), ShouldBeTrue)
		})

		Convey("Then a nil source is rejected", func() {
			_, err := schedule.Generate(leagueIDs(4), 1, nil)
			So(errors.Is(err, model.ErrRandomSource), ShouldBeTrue)
		})
	})
}

func TestFromWeeks(t *testing.T) {
	Convey("Given explicit weekly matchups", t, func() {
		ids := leagueIDs(4)

		Convey("When they are well formed", func() {
			s, err := schedule.FromWeeks(ids, [][]model.Matchup{
				{{Home: "T001", Away: "T004"}, {Home: "T002", Away: "T003"}},
				{{Home: "T001", Away: "T004"}, {Home: "T003", Away: "T002"}},
			})

			Convey("Then weeks are numbered and rematches counted", func() {
				So(err, ShouldBeNil)
				So(s.Week(2)[0].Week, ShouldEqual, 2)
				So(s.Rematches(), ShouldEqual, 2)
			})
		})

		Convey("When a team is double-booked", func() {
			_, err := schedule.FromWeeks(ids, [][]model.Matchup{
				{{Home: "T001", Away: "T002"}, {Home: "T001", Away: "T003"}},
			})
			So(errors.Is(err, model.ErrInvariantViolation), ShouldBeTrue)
		})

		Convey("When a team plays itself", func() {
			_, err := schedule.FromWeeks(ids, [][]model.Matchup{
				{{Home: "T001", Away: "T001"}, {Home: "T002", Away: "T003"}},
			})
			So(errors.Is(err, model.ErrInvariantViolation), ShouldBeTrue)
		})
	})
}

func TestLedger(t *testing.T) {
	Convey("Given an empty ledger", t, func() {
		l := schedule.NewLedger()

		Convey("Then pairings are order independent", func() {
			So(l.SeenAndRecord("T001", "T002"), ShouldBeFalse)
			So(l.SeenAndRecord("T002", "T001"), ShouldBeTrue)
			So(l.Seen("T001", "T002"), ShouldBeTrue)
			So(l.Size(), ShouldEqual, 1)
		})

		Convey("Then an unseen pairing is not recorded by Seen", func() {
			So(l.Seen("T001", "T003"), ShouldBeFalse)
			So(l.Size(), ShouldEqual, 0)
		})
	})
}
