package report

import (
	"fmt"
	"strings"

	"github.com/okian/rankdrift/internal/app"
	"github.com/okian/rankdrift/internal/domain/discrepancy"
)

const csvHeader = "policy,week,metric,mean,min,max,p10,p50,p90\n"

// RenderCSV renders one row per week and metric.
func RenderCSV(s *app.Summary) string {
	var sb strings.Builder
	sb.WriteString(csvHeader)
	writeRows(&sb, s)
	return sb.String()
}

// RenderComparisonCSV renders the standard rows followed by the harsher rows.
func RenderComparisonCSV(c *app.Comparison) string {
	var sb strings.Builder
	sb.WriteString(csvHeader)
	writeRows(&sb, c.Standard)
	writeRows(&sb, c.Harsher)
	return sb.String()
}

func writeRows(sb *strings.Builder, s *app.Summary) {
	for _, w := range s.Weeks {
		for _, m := range discrepancy.Metrics {
			st, _ := w.Stat(m)
			sb.WriteString(fmt.Sprintf("%s,%d,%s,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f\n",
				s.Policy, w.Week, m,
				st.Mean, st.Min, st.Max, st.P10, st.P50, st.P90,
			))
		}
	}
}
