package season

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/rankdrift/internal/domain/discrepancy"
	"github.com/okian/rankdrift/internal/domain/model"
	"github.com/okian/rankdrift/internal/domain/ranking"
	"github.com/okian/rankdrift/internal/domain/scoring"
)

// ReplayOptions control how a policy's rankings are built and measured.
type ReplayOptions struct {
	TopN     int
	TieBreak ranking.TieBreak
	Basis    string
}

// DefaultReplayOptions measures the top 25, breaks ties by ID and classifies
// opponents on last week's perceived ranking.
func DefaultReplayOptions() ReplayOptions {
	return ReplayOptions{
		TopN:     discrepancy.DefaultTopN,
		TieBreak: ranking.TieBreakID,
		Basis:    scoring.BasisPerceived,
	}
}

// Trial is the outcome of replaying one season through one policy.
type Trial struct {
	Policy    string
	Records   []model.DiscrepancyRecord
	Snapshots []model.WeekSnapshot
	// Teams carry their final points and full records, in ID order.
	Teams []model.Team
}

// FinalPoints maps team ID to its end-of-season points.
func (t *Trial) FinalPoints() map[string]float64 {
	out := make(map[string]float64, len(t.Teams))
	for _, tm := range t.Teams {
		out[tm.ID] = tm.Points
	}
	return out
}

// Final returns the last weekly snapshot.
func (t *Trial) Final() model.WeekSnapshot {
	if len(t.Snapshots) == 0 {
		return model.WeekSnapshot{}
	}
	return t.Snapshots[len(t.Snapshots)-1]
}

// Spread is the gap between the highest and lowest points total.
func Spread(points map[string]float64) float64 {
	if len(points) == 0 {
		return 0
	}
	hi, lo := math.Inf(-1), math.Inf(1)
	for _, p := range points {
		hi = max(hi, p)
		lo = min(lo, p)
	}
	return hi - lo
}

// Replay scores the season week by week with policy. Each week classifies
// opponents against the previous perceived ranking, applies the deltas,
// ranks the league and records the discrepancy against the truth.
// Cancellation is checked between weeks.
func Replay(ctx context.Context, s *Season, policy scoring.Policy, opts ReplayOptions) (*Trial, error) {
	if s == nil || policy == nil {
		return nil, fmt.Errorf("%w: replay needs a season and a policy", ErrInvalidConfig)
	}
	if err := scoring.ValidateBasis(opts.Basis); err != nil {
		return nil, err
	}

	teams := make([]model.Team, len(s.Teams))
	index := make(map[string]int, len(s.Teams))
	for i, t := range s.Teams {
		teams[i] = model.Team{ID: t.ID, Strength: t.Strength, Record: make([]model.Outcome, 0, s.Weeks())}
		index[t.ID] = i
	}

	trial := &Trial{
		Policy:    policy.Name(),
		Records:   make([]model.DiscrepancyRecord, 0, s.Weeks()),
		Snapshots: make([]model.WeekSnapshot, 0, s.Weeks()),
	}
	prevRanking := s.Preseason
	var prevSnap *model.WeekSnapshot

	for w := 1; w <= s.Weeks(); w++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("replay week %d: %w", w, err)
		}
		results := s.Results[w-1]
		view := scoring.OpponentView{Truth: s.Truth, Previous: prevRanking, Basis: opts.Basis}
		deltas, err := policy.Score(results, view)
		if err != nil {
			return nil, fmt.Errorf("score week %d: %w", w, err)
		}

		for _, r := range results {
			wi, wok := index[r.Winner]
			li, lok := index[r.Loser]
			if !wok || !lok {
				return nil, fmt.Errorf("%w: result %s over %s in week %d", model.ErrInvariantViolation, r.Winner, r.Loser, w)
			}
			teams[wi].Record = append(teams[wi].Record, model.Win)
			teams[li].Record = append(teams[li].Record, model.Loss)
		}

		points := make(map[string]float64, len(teams))
		for i := range teams {
			if len(teams[i].Record) != w {
				return nil, fmt.Errorf("%w: %s in week %d", ErrMissingResults, teams[i].ID, w)
			}
			teams[i].Points += deltas[teams[i].ID]
			points[teams[i].ID] = teams[i].Points
		}

		r, err := ranking.Aggregate(points, prevRanking, opts.TieBreak)
		if err != nil {
			return nil, fmt.Errorf("rank week %d: %w", w, err)
		}
		snap := model.WeekSnapshot{Week: w, Points: points, Ranking: r}
		rec, err := discrepancy.Collect(snap, prevSnap, s.Truth, opts.TopN)
		if err != nil {
			return nil, fmt.Errorf("measure week %d: %w", w, err)
		}

		trial.Snapshots = append(trial.Snapshots, snap)
		trial.Records = append(trial.Records, rec)
		prevSnap = &snap
		prevRanking = &snap.Ranking
	}

	trial.Teams = teams
	return trial, nil
}

// TopOverlap counts the teams found in the top n of both rankings.
func TopOverlap(a, b model.Ranking, n int) int {
	top := a.Top(n)
	in := make(map[string]struct{}, len(top))
	for _, id := range top {
		in[id] = struct{}{}
	}
	shared := 0
	for _, id := range b.Top(n) {
		if _, ok := in[id]; ok {
			shared++
		}
	}
	return shared
}
