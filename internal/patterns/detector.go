// Package patterns scans the match corpus for recurring situations
// whose historical profitability can be measured and ranked.
package patterns

import (
	"math"
	"sort"

	"github.com/yourusername/footy-edge/internal/models"
)

const (
	// MinSampleSize is the smallest sample a detector may report on.
	// Below it the detector is skipped silently; thin data is an
	// expected outcome, not an error.
	MinSampleSize = 10

	// DriftThreshold is the minimum absolute opening-to-closing price
	// change the drift detector considers a real market move.
	DriftThreshold = 0.1

	maxConfidence = 0.95
	sampleLimit   = 5
	watchListSize = 5

	// earlyMatchdays bounds the "early season" segment of the
	// seasonal detector.
	earlyMatchdays = 10
)

// Metric selects the statistic findings are ranked by.
type Metric string

// MetricROI ranks findings by their flat-stake return on investment.
const MetricROI Metric = "roi"

// Detector finds one family of patterns in a corpus. Detectors are
// independent and composable; each either emits findings or stays
// silent when its sample is too small.
type Detector interface {
	Name() string
	Detect(c *corpus) []models.PatternFinding
}

// corpus is the filtered match set a discovery run operates on, with
// the base filter kept so suggested strategies can reproduce it.
type corpus struct {
	matches []*models.MatchRecord
	filter  models.MatchFilter
}

func (c *corpus) size() int { return len(c.matches) }

// frequency is the fraction of the corpus a pattern's condition hits.
func (c *corpus) frequency(n int) float64 {
	if len(c.matches) == 0 {
		return 0
	}
	return float64(n) / float64(len(c.matches))
}

// confidence grows monotonically with sample size and saturates at
// maxConfidence.
func confidence(n int) float64 {
	return math.Min(maxConfidence, float64(n)/(float64(n)+25.0))
}

// backing measures the flat-stake ROI of backing pick(match) across
// the given matches. pick returns false to leave a match unbacked.
func backing(matches []*models.MatchRecord, pick func(*models.MatchRecord) (models.Outcome, bool)) (roiPct float64, backed []*models.MatchRecord) {
	var staked, returned float64
	for _, m := range matches {
		outcome, ok := pick(m)
		if !ok {
			continue
		}
		odds, ok := m.OpeningOdds.Price(outcome)
		if !ok {
			continue
		}
		staked += flatStake
		if outcome.Hits(m) {
			returned += flatStake * odds
		}
		backed = append(backed, m)
	}
	if staked == 0 {
		return 0, backed
	}
	return (returned - staked) / staked * 100, backed
}

const flatStake = 100.0

// backingOutcome backs a single selection on every match that prices it.
func backingOutcome(matches []*models.MatchRecord, outcome models.Outcome) (float64, []*models.MatchRecord) {
	return backing(matches, func(*models.MatchRecord) (models.Outcome, bool) {
		return outcome, true
	})
}

func sampleOf(matches []*models.MatchRecord) []*models.MatchRecord {
	if len(matches) <= sampleLimit {
		return matches
	}
	return matches[:sampleLimit]
}

func sortByProfitability(findings []models.PatternFinding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Profitability > findings[j].Profitability
	})
}
