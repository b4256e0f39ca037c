package app

import (
	"github.com/okian/rankdrift/internal/domain/discrepancy"
)

// Summary is the result of one run under one policy.
type Summary struct {
	RunID  string `json:"run_id" yaml:"run_id"`
	Policy string `json:"policy" yaml:"policy"`
	Seed   uint64 `json:"seed" yaml:"seed"`
	Teams  int    `json:"teams" yaml:"teams"`
	Trials int    `json:"trials" yaml:"trials"`
	// Weeks holds one aggregate per week, in week order.
	Weeks []discrepancy.WeekSummary `json:"weeks" yaml:"weeks"`
	// Spread describes the final points spread across trials.
	Spread discrepancy.Stat `json:"spread" yaml:"spread"`
}

// Final returns the last week's aggregate.
func (s *Summary) Final() discrepancy.WeekSummary {
	if s == nil || len(s.Weeks) == 0 {
		return discrepancy.WeekSummary{}
	}
	return s.Weeks[len(s.Weeks)-1]
}

// TrialSpread is the final points spread of one trial under both policies,
// and how many teams the two final top-N rankings share.
type TrialSpread struct {
	Trial      int     `json:"trial" yaml:"trial"`
	Standard   float64 `json:"standard" yaml:"standard"`
	Harsher    float64 `json:"harsher" yaml:"harsher"`
	TopOverlap int     `json:"top_overlap" yaml:"top_overlap"`
}

// Comparison replays the same seasons through both policies.
type Comparison struct {
	RunID    string        `json:"run_id" yaml:"run_id"`
	Seed     uint64        `json:"seed" yaml:"seed"`
	TopN     int           `json:"top_n" yaml:"top_n"`
	Standard *Summary      `json:"standard" yaml:"standard"`
	Harsher  *Summary      `json:"harsher" yaml:"harsher"`
	Spreads  []TrialSpread `json:"spreads" yaml:"spreads"`
}

// WiderSpread counts the trials where the harsher table spread the league at
// least as far as the standard one.
func (c *Comparison) WiderSpread() int {
	n := 0
	for _, s := range c.Spreads {
		if s.Harsher >= s.Standard {
			n++
		}
	}
	return n
}

// MeanTopOverlap averages the shared final top-N teams over all trials.
func (c *Comparison) MeanTopOverlap() float64 {
	if len(c.Spreads) == 0 {
		return 0
	}
	sum := 0
	for _, s := range c.Spreads {
		sum += s.TopOverlap
	}
	return float64(sum) / float64(len(c.Spreads))
}
