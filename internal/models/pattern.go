package models

// PatternFinding is one discovered historical regularity, ranked by its
// estimated profitability.
type PatternFinding struct {
	Detector      string              `json:"detector"`
	Label         string              `json:"label"`
	Frequency     float64             `json:"frequency"`
	Profitability float64             `json:"profitability"`
	Confidence    float64             `json:"confidence"`
	Conditions    []string            `json:"conditions"`
	SampleMatches []*MatchRecord      `json:"sample_matches"`
	Suggested     *StrategyDefinition `json:"suggested_strategy,omitempty"`
}
