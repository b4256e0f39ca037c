package model

// DiscrepancyRecord holds one week's perceived-vs-true rank metrics.
type DiscrepancyRecord struct {
	Week         int     `json:"week" yaml:"week"`
	AvgDiff      float64 `json:"avg_diff" yaml:"avg_diff"`
	MaxDiff      int     `json:"max_diff" yaml:"max_diff"`
	MaxRise      int     `json:"max_rise" yaml:"max_rise"`
	MaxFall      int     `json:"max_fall" yaml:"max_fall"`
	Top25AvgDiff float64 `json:"top25_avg_diff" yaml:"top25_avg_diff"`
	Top25MaxDiff int     `json:"top25_max_diff" yaml:"top25_max_diff"`
}
