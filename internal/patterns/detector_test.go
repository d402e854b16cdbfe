package patterns

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/footy-edge/internal/models"
)

type matchSpec struct {
	home, away           string
	homeGoals, awayGoals int
	homeOdds             float64
	homeClosing          float64
	overOdds             float64
}

func specMatch(day int, spec matchSpec) *models.MatchRecord {
	m := &models.MatchRecord{
		ID:         uuid.New(),
		Date:       time.Date(2023, 9, 1, 15, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		Season:     "2023-24",
		HomeTeam:   spec.home,
		AwayTeam:   spec.away,
		HomeGoals:  spec.homeGoals,
		AwayGoals:  spec.awayGoals,
		TotalGoals: spec.homeGoals + spec.awayGoals,
		Result:     models.ResultFromGoals(spec.homeGoals, spec.awayGoals),
		OpeningOdds: models.OddsLine{
			models.OutcomeHome: spec.homeOdds,
			models.OutcomeDraw: 3.40,
			models.OutcomeAway: 3.80,
		},
	}
	if spec.overOdds > 0 {
		m.OpeningOdds[models.OutcomeOver25] = spec.overOdds
		m.OpeningOdds[models.OutcomeUnder25] = 2.10
	}
	if spec.homeClosing > 0 {
		m.ClosingOdds = models.OddsLine{models.OutcomeHome: spec.homeClosing}
	}
	return m
}

// twelveHomeWins builds a corpus where the home side wins every match
// at even money, with the closing price steaming in.
func twelveHomeWins() []*models.MatchRecord {
	teams := []string{"Arsenal", "Chelsea", "Spurs", "Everton"}
	matches := make([]*models.MatchRecord, 0, 12)
	for i := 0; i < 12; i++ {
		matches = append(matches, specMatch(i, matchSpec{
			home:        teams[i%4],
			away:        teams[(i+1)%4],
			homeGoals:   2,
			awayGoals:   0,
			homeOdds:    2.00,
			homeClosing: 1.80,
			overOdds:    1.90,
		}))
	}
	return matches
}

func TestConfidence(t *testing.T) {
	assert.InDelta(t, 10.0/35.0, confidence(10), 1e-9)
	assert.Less(t, confidence(10), confidence(50))
	assert.InDelta(t, maxConfidence, confidence(475), 1e-9)
	assert.Equal(t, maxConfidence, confidence(1_000_000))
}

func TestCorpusFrequency(t *testing.T) {
	c := &corpus{matches: twelveHomeWins()}
	assert.InDelta(t, 0.5, c.frequency(6), 1e-9)
	assert.Zero(t, (&corpus{}).frequency(3))
}

func TestBackingOutcome(t *testing.T) {
	matches := twelveHomeWins()
	roiPct, backed := backingOutcome(matches, models.OutcomeHome)
	require.Len(t, backed, 12)
	// Every bet won at 2.00, doubling the stake.
	assert.InDelta(t, 100.0, roiPct, 1e-9)

	roiPct, backed = backingOutcome(matches, models.OutcomeAway)
	require.Len(t, backed, 12)
	assert.InDelta(t, -100.0, roiPct, 1e-9)
}

func TestDetectorsStaySilentBelowMinSample(t *testing.T) {
	matches := twelveHomeWins()[:5]
	c := &corpus{matches: matches}

	assert.Empty(t, venueDetector{}.Detect(c))
	assert.Empty(t, driftDetector{}.Detect(c))
	assert.Empty(t, seasonalDetector{}.Detect(c))
	assert.Empty(t, totalsDetector{}.Detect(c))
}

func TestVenueDetector(t *testing.T) {
	c := &corpus{matches: twelveHomeWins()}
	findings := venueDetector{}.Detect(c)
	require.Len(t, findings, 2)

	home := findings[0]
	assert.Equal(t, "venue_effect", home.Detector)
	assert.InDelta(t, 100.0, home.Profitability, 1e-9)
	assert.InDelta(t, 1.0, home.Frequency, 1e-9)
	assert.Len(t, home.SampleMatches, sampleLimit)
	require.NotNil(t, home.Suggested)
	assert.Equal(t, models.OutcomeHome, home.Suggested.Market)
	require.NoError(t, home.Suggested.Validate())

	away := findings[1]
	assert.InDelta(t, -100.0, away.Profitability, 1e-9)
	assert.Equal(t, models.OutcomeAway, away.Suggested.Market)
}

func TestDriftDetector(t *testing.T) {
	t.Run("steamed home price yields a finding", func(t *testing.T) {
		c := &corpus{matches: twelveHomeWins()}
		findings := driftDetector{}.Detect(c)
		require.Len(t, findings, 1)

		f := findings[0]
		assert.Equal(t, "odds_drift_effect", f.Detector)
		assert.InDelta(t, 100.0, f.Profitability, 1e-9)
		require.NotNil(t, f.Suggested)
		assert.Equal(t, models.MovementDown, f.Suggested.Movement)
		require.NoError(t, f.Suggested.Validate())
	})

	t.Run("moves within the threshold are ignored", func(t *testing.T) {
		matches := make([]*models.MatchRecord, 0, 12)
		for i := 0; i < 12; i++ {
			matches = append(matches, specMatch(i, matchSpec{
				home: "Arsenal", away: "Chelsea",
				homeGoals: 1, awayGoals: 0,
				homeOdds: 2.00, homeClosing: 1.95,
			}))
		}
		findings := driftDetector{}.Detect(&corpus{matches: matches})
		assert.Empty(t, findings)
	})
}

func TestTotalsDetector(t *testing.T) {
	c := &corpus{matches: twelveHomeWins()}
	findings := totalsDetector{}.Detect(c)
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, "goal_total_effect", f.Detector)
	// Every match finished 2-0, so over 2.5 always lost.
	assert.InDelta(t, -100.0, f.Profitability, 1e-9)
	assert.Equal(t, models.OutcomeOver25, f.Suggested.Market)
}

func TestSeasonalDetector(t *testing.T) {
	// Four teams gives a round size of two; the first twenty fixtures
	// are "early". Home sides win early and lose late.
	matches := make([]*models.MatchRecord, 0, 32)
	teams := []string{"Arsenal", "Chelsea", "Spurs", "Everton"}
	for i := 0; i < 32; i++ {
		goalsHome, goalsAway := 2, 0
		if i >= 20 {
			goalsHome, goalsAway = 0, 2
		}
		matches = append(matches, specMatch(i, matchSpec{
			home:      teams[i%4],
			away:      teams[(i+1)%4],
			homeGoals: goalsHome,
			awayGoals: goalsAway,
			homeOdds:  2.00,
		}))
	}

	findings := seasonalDetector{}.Detect(&corpus{matches: matches})
	require.Len(t, findings, 1)
	assert.Equal(t, "seasonal_effect", findings[0].Detector)
	assert.InDelta(t, 100.0, findings[0].Profitability, 1e-9)
}

func TestMostActiveTeams(t *testing.T) {
	matches := []*models.MatchRecord{
		specMatch(1, matchSpec{home: "Arsenal", away: "Chelsea", homeOdds: 2.0}),
		specMatch(2, matchSpec{home: "Arsenal", away: "Spurs", homeOdds: 2.0}),
		specMatch(3, matchSpec{home: "Chelsea", away: "Arsenal", homeOdds: 2.0}),
	}

	teams := mostActiveTeams(matches, 2)
	assert.Equal(t, []string{"Arsenal", "Chelsea"}, teams)

	all := mostActiveTeams(matches, 10)
	assert.Equal(t, []string{"Arsenal", "Chelsea", "Spurs"}, all)
}

func TestSplitBySeasonStage(t *testing.T) {
	matches := make([]*models.MatchRecord, 0, 30)
	for i := 0; i < 30; i++ {
		matches = append(matches, specMatch(i, matchSpec{
			home: "Arsenal", away: "Chelsea",
			homeGoals: 1, awayGoals: 0, homeOdds: 2.0,
		}))
	}
	// Two teams means one fixture per round, ten early rounds.
	early, late := splitBySeasonStage(matches)
	assert.Len(t, early, 10)
	assert.Len(t, late, 20)
}

func TestSortByProfitability(t *testing.T) {
	findings := []models.PatternFinding{
		{Label: "b", Profitability: -5},
		{Label: "a", Profitability: 40},
		{Label: "c", Profitability: 40},
		{Label: "d", Profitability: 12},
	}
	sortByProfitability(findings)
	assert.Equal(t, "a", findings[0].Label)
	assert.Equal(t, "c", findings[1].Label) // stable on ties
	assert.Equal(t, "d", findings[2].Label)
	assert.Equal(t, "b", findings[3].Label)
}
