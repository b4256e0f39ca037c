package report

import (
	"fmt"
	"strings"

	"github.com/okian/rankdrift/internal/app"
)

// RenderTable renders the per-week means of a summary as a Markdown table.
func RenderTable(s *app.Summary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Ranking discrepancy: %s\n\n", s.Policy))
	writeRunLine(&sb, s.RunID, s.Seed, s.Teams, s.Trials)
	writeWeeks(&sb, s)

	sb.WriteString(fmt.Sprintf("Final points spread: mean %.2f, p10 %.2f, p90 %.2f\n",
		s.Spread.Mean, s.Spread.P10, s.Spread.P90))
	return sb.String()
}

// RenderComparisonTable renders both policies and the week-by-week gap
// between their average displacement.
func RenderComparisonTable(c *app.Comparison) string {
	var sb strings.Builder

	sb.WriteString("# Ranking discrepancy: standard vs harsher\n\n")
	writeRunLine(&sb, c.RunID, c.Seed, c.Standard.Teams, c.Standard.Trials)

	sb.WriteString("## Average displacement\n\n")
	sb.WriteString("| Week | Standard | Harsher | Delta |\n")
	sb.WriteString("|------|----------|---------|-------|\n")
	for i, sw := range c.Standard.Weeks {
		if i >= len(c.Harsher.Weeks) {
			break
		}
		hw := c.Harsher.Weeks[i]
		sb.WriteString(fmt.Sprintf("| %d | %.3f | %.3f | %+.3f |\n",
			sw.Week, sw.AvgDiff.Mean, hw.AvgDiff.Mean, hw.AvgDiff.Mean-sw.AvgDiff.Mean))
	}
	sb.WriteString("\n")

	sb.WriteString("## Final points spread\n\n")
	sb.WriteString("| Policy | Mean | P10 | P50 | P90 |\n")
	sb.WriteString("|--------|------|-----|-----|-----|\n")
	for _, s := range []*app.Summary{c.Standard, c.Harsher} {
		sb.WriteString(fmt.Sprintf("| %s | %.2f | %.2f | %.2f | %.2f |\n",
			s.Policy, s.Spread.Mean, s.Spread.P10, s.Spread.P50, s.Spread.P90))
	}
	sb.WriteString(fmt.Sprintf("\nHarsher spread at least as wide in %d of %d trials.\n",
		c.WiderSpread(), len(c.Spreads)))
	sb.WriteString(fmt.Sprintf("Final top %d shared by both tables: %.2f teams on average.\n\n",
		c.TopN, c.MeanTopOverlap()))

	for _, s := range []*app.Summary{c.Standard, c.Harsher} {
		sb.WriteString(fmt.Sprintf("## %s\n\n", s.Policy))
		writeWeeks(&sb, s)
	}
	return sb.String()
}

func writeRunLine(sb *strings.Builder, runID string, seed uint64, teams, trials int) {
	sb.WriteString(fmt.Sprintf("Run: %s | Seed: %d | Teams: %d | Trials: %d\n\n", runID, seed, teams, trials))
}

func writeWeeks(sb *strings.Builder, s *app.Summary) {
	sb.WriteString("| Week | Avg Diff | Max Diff | Max Rise | Max Fall | Top Avg Diff | Top Max Diff |\n")
	sb.WriteString("|------|----------|----------|----------|----------|--------------|--------------|\n")
	for _, w := range s.Weeks {
		sb.WriteString(fmt.Sprintf("| %d | %.3f | %.2f | %.2f | %.2f | %.3f | %.2f |\n",
			w.Week,
			w.AvgDiff.Mean,
			w.MaxDiff.Mean,
			w.MaxRise.Mean,
			w.MaxFall.Mean,
			w.Top25AvgDiff.Mean,
			w.Top25MaxDiff.Mean,
		))
	}
	sb.WriteString("\n")
}
