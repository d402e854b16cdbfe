package patterns

import (
	"fmt"
	"sort"

	"github.com/yourusername/footy-edge/internal/analysis"
	"github.com/yourusername/footy-edge/internal/models"
)

// venueDetector compares the moneyline ROI of blanket-backing the home
// side against blanket-backing the away side.
type venueDetector struct{}

func (venueDetector) Name() string { return "venue_effect" }

func (venueDetector) Detect(c *corpus) []models.PatternFinding {
	if c.size() < MinSampleSize {
		return nil
	}
	homeROI, homeBacked := backingOutcome(c.matches, models.OutcomeHome)
	awayROI, awayBacked := backingOutcome(c.matches, models.OutcomeAway)

	var findings []models.PatternFinding
	if len(homeBacked) >= MinSampleSize {
		findings = append(findings, models.PatternFinding{
			Detector:      "venue_effect",
			Label:         "Home venue advantage",
			Frequency:     c.frequency(len(homeBacked)),
			Profitability: homeROI,
			Confidence:    confidence(len(homeBacked)),
			Conditions: []string{
				"back the home side on the moneyline",
				fmt.Sprintf("away-side ROI over the same corpus: %.2f%%", awayROI),
			},
			SampleMatches: sampleOf(homeBacked),
			Suggested:     suggest("venue-home", models.OutcomeHome, c.filter, models.MovementAny),
		})
	}
	if len(awayBacked) >= MinSampleSize {
		findings = append(findings, models.PatternFinding{
			Detector:      "venue_effect",
			Label:         "Away venue value",
			Frequency:     c.frequency(len(awayBacked)),
			Profitability: awayROI,
			Confidence:    confidence(len(awayBacked)),
			Conditions: []string{
				"back the away side on the moneyline",
				fmt.Sprintf("home-side ROI over the same corpus: %.2f%%", homeROI),
			},
			SampleMatches: sampleOf(awayBacked),
			Suggested:     suggest("venue-away", models.OutcomeAway, c.filter, models.MovementAny),
		})
	}
	return findings
}

// driftDetector isolates matches whose closing price moved past the
// drift threshold and measures the ROI of following the steam, i.e.
// backing the selection whose price shortened.
type driftDetector struct{}

func (driftDetector) Name() string { return "odds_drift_effect" }

func (driftDetector) Detect(c *corpus) []models.PatternFinding {
	var findings []models.PatternFinding
	for _, outcome := range models.AllOutcomes {
		steamed := make([]*models.MatchRecord, 0)
		for _, m := range c.matches {
			drift, ok := m.Drift(outcome)
			if ok && drift < -DriftThreshold {
				steamed = append(steamed, m)
			}
		}
		if len(steamed) < MinSampleSize {
			continue
		}
		roiPct, backed := backingOutcome(steamed, outcome)
		if len(backed) < MinSampleSize {
			continue
		}
		findings = append(findings, models.PatternFinding{
			Detector:      "odds_drift_effect",
			Label:         fmt.Sprintf("Steam move on %s", outcome),
			Frequency:     c.frequency(len(backed)),
			Profitability: roiPct,
			Confidence:    confidence(len(backed)),
			Conditions: []string{
				fmt.Sprintf("closing odds on %s shortened by more than %.2f", outcome, DriftThreshold),
				"back the selection the market moved toward",
			},
			SampleMatches: sampleOf(backed),
			Suggested:     suggest(fmt.Sprintf("steam-%s", outcome), outcome, c.filter, models.MovementDown),
		})
	}
	return findings
}

// teamDetector measures the ROI of blanket-backing each watched team
// across all its matches. Without a caller-supplied list it watches the
// most active teams in the corpus.
type teamDetector struct {
	agg   *analysis.Aggregator
	watch []string
}

func (teamDetector) Name() string { return "team_effect" }

func (d teamDetector) Detect(c *corpus) []models.PatternFinding {
	watch := d.watch
	if len(watch) == 0 {
		watch = mostActiveTeams(c.matches, watchListSize)
	}

	var findings []models.PatternFinding
	for _, team := range watch {
		involved := make([]*models.MatchRecord, 0)
		for _, m := range c.matches {
			if m.Involves(team) {
				involved = append(involved, m)
			}
		}
		if len(involved) < MinSampleSize {
			continue
		}
		roiPct, backed := backing(involved, func(m *models.MatchRecord) (models.Outcome, bool) {
			if m.HomeTeam == team {
				return models.OutcomeHome, true
			}
			return models.OutcomeAway, true
		})
		if len(backed) < MinSampleSize {
			continue
		}

		conditions := []string{fmt.Sprintf("back %s in every match, home or away", team)}
		if report, err := d.agg.TeamReport(team, c.filter); err == nil {
			conditions = append(conditions,
				fmt.Sprintf("as host: %.2f%% ROI, as visitor: %.2f%% ROI", report.HomeROI, report.AwayROI),
				fmt.Sprintf("as favorite: %.2f%% ROI, as underdog: %.2f%% ROI", report.FavoriteROI, report.UnderdogROI),
			)
		}

		filter := c.filter
		filter.Team = team
		findings = append(findings, models.PatternFinding{
			Detector:      "team_effect",
			Label:         fmt.Sprintf("Backing %s", team),
			Frequency:     c.frequency(len(backed)),
			Profitability: roiPct,
			Confidence:    confidence(len(backed)),
			Conditions:    conditions,
			SampleMatches: sampleOf(backed),
			Suggested:     suggest(fmt.Sprintf("back-%s", team), models.OutcomeHome, filter, models.MovementAny),
		})
	}
	return findings
}

// seasonalDetector splits each season into its first matchdays and the
// remainder, then compares home-win ROI between the two segments.
type seasonalDetector struct{}

func (seasonalDetector) Name() string { return "seasonal_effect" }

func (seasonalDetector) Detect(c *corpus) []models.PatternFinding {
	early, late := splitBySeasonStage(c.matches)
	if len(early) < MinSampleSize || len(late) < MinSampleSize {
		return nil
	}
	earlyROI, earlyBacked := backingOutcome(early, models.OutcomeHome)
	lateROI, lateBacked := backingOutcome(late, models.OutcomeHome)
	if len(earlyBacked) < MinSampleSize || len(lateBacked) < MinSampleSize {
		return nil
	}

	return []models.PatternFinding{{
		Detector:      "seasonal_effect",
		Label:         fmt.Sprintf("Home wins in the first %d matchdays", earlyMatchdays),
		Frequency:     c.frequency(len(earlyBacked)),
		Profitability: earlyROI,
		Confidence:    confidence(len(earlyBacked)),
		Conditions: []string{
			fmt.Sprintf("match played within the season's first %d matchdays", earlyMatchdays),
			"back the home side on the moneyline",
			fmt.Sprintf("remainder-of-season home ROI: %.2f%%", lateROI),
		},
		SampleMatches: sampleOf(earlyBacked),
		Suggested:     suggest("early-season-home", models.OutcomeHome, c.filter, models.MovementAny),
	}}
}

// totalsDetector measures a uniform over-2.5-goals strategy across the
// corpus.
type totalsDetector struct{}

func (totalsDetector) Name() string { return "goal_total_effect" }

func (totalsDetector) Detect(c *corpus) []models.PatternFinding {
	overROI, overBacked := backingOutcome(c.matches, models.OutcomeOver25)
	if len(overBacked) < MinSampleSize {
		return nil
	}
	underROI, _ := backingOutcome(c.matches, models.OutcomeUnder25)

	totalGoals := 0
	for _, m := range overBacked {
		totalGoals += m.TotalGoals
	}

	return []models.PatternFinding{{
		Detector:      "goal_total_effect",
		Label:         "Backing over 2.5 goals",
		Frequency:     c.frequency(len(overBacked)),
		Profitability: overROI,
		Confidence:    confidence(len(overBacked)),
		Conditions: []string{
			"back over 2.5 goals on every match",
			fmt.Sprintf("mean total goals: %.2f", float64(totalGoals)/float64(len(overBacked))),
			fmt.Sprintf("under-2.5 ROI over the same corpus: %.2f%%", underROI),
		},
		SampleMatches: sampleOf(overBacked),
		Suggested:     suggest("blanket-overs", models.OutcomeOver25, c.filter, models.MovementAny),
	}}
}

func suggest(name string, market models.Outcome, filter models.MatchFilter, movement models.OddsMovement) *models.StrategyDefinition {
	return &models.StrategyDefinition{
		Name:     name,
		Market:   market,
		Filter:   filter,
		Stake:    models.FixedStake(flatStake),
		Movement: movement,
	}
}

func mostActiveTeams(matches []*models.MatchRecord, n int) []string {
	counts := make(map[string]int)
	for _, m := range matches {
		counts[m.HomeTeam]++
		counts[m.AwayTeam]++
	}
	teams := make([]string, 0, len(counts))
	for team := range counts {
		teams = append(teams, team)
	}
	sort.Slice(teams, func(i, j int) bool {
		if counts[teams[i]] != counts[teams[j]] {
			return counts[teams[i]] > counts[teams[j]]
		}
		return teams[i] < teams[j]
	})
	if len(teams) > n {
		teams = teams[:n]
	}
	return teams
}

// splitBySeasonStage partitions matches into early-season and
// remainder segments. A matchday is approximated from each season's
// team count: one round is teams/2 fixtures in dataset order.
func splitBySeasonStage(matches []*models.MatchRecord) (early, late []*models.MatchRecord) {
	teamsBySeason := make(map[string]map[string]struct{})
	for _, m := range matches {
		teams, ok := teamsBySeason[m.Season]
		if !ok {
			teams = make(map[string]struct{})
			teamsBySeason[m.Season] = teams
		}
		teams[m.HomeTeam] = struct{}{}
		teams[m.AwayTeam] = struct{}{}
	}

	seen := make(map[string]int)
	for _, m := range matches {
		roundSize := len(teamsBySeason[m.Season]) / 2
		if roundSize < 1 {
			roundSize = 1
		}
		if seen[m.Season] < earlyMatchdays*roundSize {
			early = append(early, m)
		} else {
			late = append(late, m)
		}
		seen[m.Season]++
	}
	return early, late
}
