// Package discrepancy measures how far a perceived ranking sits from the truth.
package discrepancy

import (
	"fmt"

	"github.com/okian/rankdrift/internal/domain/model"
)

// DefaultTopN is the size of the poll's headline group.
const DefaultTopN = 25

// Collect computes the discrepancy record for one week. prev is the previous
// week's snapshot; without it MaxRise and MaxFall are 0. The top group holds
// the teams with perceived rank <= min(topN, N).
func Collect(cur model.WeekSnapshot, prev *model.WeekSnapshot, truth model.Ranking, topN int) (model.DiscrepancyRecord, error) {
	if topN < 1 {
		return model.DiscrepancyRecord{}, fmt.Errorf("%w: got %d", ErrInvalidTopN, topN)
	}
	ids := truth.IDs()
	if err := cur.Ranking.Validate(ids); err != nil {
		return model.DiscrepancyRecord{}, fmt.Errorf("week %d: %w", cur.Week, err)
	}
	if prev != nil {
		if err := prev.Ranking.Validate(ids); err != nil {
			return model.DiscrepancyRecord{}, fmt.Errorf("week %d previous: %w", cur.Week, err)
		}
	}

	n := len(ids)
	cut := min(topN, n)
	rec := model.DiscrepancyRecord{Week: cur.Week}
	var sum, topSum int
	for _, id := range ids {
		tr, _ := truth.RankOf(id)
		pr, _ := cur.Ranking.RankOf(id)
		d := abs(pr - tr)
		sum += d
		rec.MaxDiff = max(rec.MaxDiff, d)
		if pr <= cut {
			topSum += d
			rec.Top25MaxDiff = max(rec.Top25MaxDiff, d)
		}
		if prev != nil {
			before, _ := prev.Ranking.RankOf(id)
			rec.MaxRise = max(rec.MaxRise, before-pr)
			rec.MaxFall = max(rec.MaxFall, pr-before)
		}
	}
	if n > 0 {
		rec.AvgDiff = float64(sum) / float64(n)
		rec.Top25AvgDiff = float64(topSum) / float64(cut)
	}
	return rec, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
