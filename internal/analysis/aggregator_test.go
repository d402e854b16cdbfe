package analysis

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/footy-edge/internal/models"
	"github.com/yourusername/footy-edge/internal/repository"
)

func record(day int, home, away string, homeGoals, awayGoals int, homeOdds, awayOdds float64) *models.MatchRecord {
	return &models.MatchRecord{
		ID:         uuid.New(),
		Date:       time.Date(2023, 10, day, 15, 0, 0, 0, time.UTC),
		Season:     "2023-24",
		HomeTeam:   home,
		AwayTeam:   away,
		HomeGoals:  homeGoals,
		AwayGoals:  awayGoals,
		TotalGoals: homeGoals + awayGoals,
		Result:     models.ResultFromGoals(homeGoals, awayGoals),
		OpeningOdds: models.OddsLine{
			models.OutcomeHome: homeOdds,
			models.OutcomeDraw: 3.40,
			models.OutcomeAway: awayOdds,
		},
	}
}

func newTestAggregator(t *testing.T, records []*models.MatchRecord) *Aggregator {
	t.Helper()
	repo, err := repository.NewMatchRepository(records)
	require.NoError(t, err)
	agg, err := NewAggregator(repo, nil)
	require.NoError(t, err)
	return agg
}

func TestTeamReport(t *testing.T) {
	agg := newTestAggregator(t, []*models.MatchRecord{
		record(1, "Arsenal", "Chelsea", 2, 0, 1.60, 5.00),  // home win as favorite
		record(2, "Spurs", "Arsenal", 1, 1, 2.10, 3.20),    // away draw as underdog
		record(3, "Arsenal", "Everton", 0, 1, 1.40, 7.00),  // home loss as favorite
		record(4, "Everton", "Spurs", 2, 2, 2.80, 2.40),    // not Arsenal
	})

	report, err := agg.TeamReport("Arsenal", models.MatchFilter{})
	require.NoError(t, err)

	assert.Equal(t, "Arsenal", report.Team)
	assert.Equal(t, 3, report.MatchCount)

	assert.Equal(t, 2, report.Home.Played)
	assert.Equal(t, 1, report.Home.Wins)
	assert.Equal(t, 1, report.Home.Losses)
	assert.Equal(t, 2, report.Home.GoalsFor)
	assert.Equal(t, 1, report.Home.GoalsAgainst)

	assert.Equal(t, 1, report.Away.Played)
	assert.Equal(t, 1, report.Away.Draws)

	// As favorite: 100 on match 1 returned 160, 100 on match 3 lost.
	assert.InDelta(t, -20.0, report.FavoriteROI, 1e-9)
	// As underdog: 100 on the away draw lost.
	assert.InDelta(t, -100.0, report.UnderdogROI, 1e-9)
	// Hosting: won at 1.60, lost at 1.40.
	assert.InDelta(t, -20.0, report.HomeROI, 1e-9)
	assert.InDelta(t, -100.0, report.AwayROI, 1e-9)
}

func TestTeamReportUnknownTeam(t *testing.T) {
	agg := newTestAggregator(t, []*models.MatchRecord{
		record(1, "Arsenal", "Chelsea", 2, 0, 1.60, 5.00),
	})

	report, err := agg.TeamReport("Real Madrid", models.MatchFilter{})
	require.NoError(t, err)
	assert.Zero(t, report.MatchCount)
	assert.Zero(t, report.FavoriteROI)
}

func TestTeamReportScopesFilter(t *testing.T) {
	records := []*models.MatchRecord{
		record(1, "Arsenal", "Chelsea", 2, 0, 1.60, 5.00),
		record(2, "Arsenal", "Spurs", 1, 0, 1.70, 4.50),
	}
	records[1].Season = "2022-23"
	agg := newTestAggregator(t, records)

	report, err := agg.TeamReport("Arsenal", models.MatchFilter{Season: "2023-24"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.MatchCount)
}

func TestMarketReport(t *testing.T) {
	agg := newTestAggregator(t, []*models.MatchRecord{
		record(1, "Arsenal", "Chelsea", 2, 0, 1.50, 6.00), // home hits
		record(2, "Spurs", "Everton", 0, 0, 2.50, 2.80),   // home misses
		record(3, "Leeds", "Fulham", 3, 1, 2.00, 3.50),    // home hits
	})

	report, err := agg.MarketReport(models.OutcomeHome, models.MatchFilter{})
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeHome, report.Market)
	assert.Equal(t, 3, report.MatchCount)
	assert.Equal(t, 2, report.Hits)
	assert.InDelta(t, 66.6667, report.HitRate, 1e-3)
	assert.InDelta(t, 2.00, report.MeanOdds, 1e-9)
	assert.InDelta(t, 1.50, report.MinOdds, 1e-9)
	assert.InDelta(t, 2.50, report.MaxOdds, 1e-9)
	// Returned 150 + 200 on 300 staked.
	assert.InDelta(t, 16.6667, report.ROI, 1e-3)
}

func TestMarketReportTotals(t *testing.T) {
	records := []*models.MatchRecord{
		record(1, "Arsenal", "Chelsea", 2, 2, 1.90, 4.00),
		record(2, "Spurs", "Everton", 1, 0, 2.20, 3.10),
	}
	records[0].OpeningOdds[models.OutcomeOver25] = 1.80
	records[1].OpeningOdds[models.OutcomeOver25] = 2.10
	agg := newTestAggregator(t, records)

	report, err := agg.MarketReport(models.OutcomeOver25, models.MatchFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, report.MatchCount)
	assert.Equal(t, 1, report.Hits) // only the 4-goal match
}

func TestMarketReportUnknownMarket(t *testing.T) {
	agg := newTestAggregator(t, nil)
	_, err := agg.MarketReport("BTTS", models.MatchFilter{})
	assert.ErrorIs(t, err, models.ErrInvalidStrategy)
}

func TestMarketReportUnpricedMatchesIgnored(t *testing.T) {
	records := []*models.MatchRecord{
		record(1, "Arsenal", "Chelsea", 2, 0, 1.50, 6.00),
	}
	records = append(records, &models.MatchRecord{
		ID: uuid.New(), Date: time.Date(2023, 10, 2, 15, 0, 0, 0, time.UTC),
		Season: "2023-24", HomeTeam: "Spurs", AwayTeam: "Everton",
		HomeGoals: 1, AwayGoals: 0, TotalGoals: 1, Result: models.ResultHomeWin,
	})
	agg := newTestAggregator(t, records)

	report, err := agg.MarketReport(models.OutcomeHome, models.MatchFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.MatchCount)
}

func TestReportMemoization(t *testing.T) {
	agg := newTestAggregator(t, []*models.MatchRecord{
		record(1, "Arsenal", "Chelsea", 2, 0, 1.60, 5.00),
	})

	first, err := agg.TeamReport("Arsenal", models.MatchFilter{})
	require.NoError(t, err)
	second, err := agg.TeamReport("Arsenal", models.MatchFilter{})
	require.NoError(t, err)
	// Cached hit returns the same report instance.
	assert.Same(t, first, second)

	agg.InvalidateCache()
	third, err := agg.TeamReport("Arsenal", models.MatchFilter{})
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, first, third)
}

func TestReportCacheKeyDistinguishesFilters(t *testing.T) {
	records := []*models.MatchRecord{
		record(1, "Arsenal", "Chelsea", 2, 0, 1.60, 5.00),
		record(2, "Arsenal", "Spurs", 0, 1, 1.70, 4.50),
	}
	records[1].Season = "2022-23"
	agg := newTestAggregator(t, records)

	all, err := agg.TeamReport("Arsenal", models.MatchFilter{})
	require.NoError(t, err)
	scoped, err := agg.TeamReport("Arsenal", models.MatchFilter{Season: "2022-23"})
	require.NoError(t, err)
	assert.Equal(t, 2, all.MatchCount)
	assert.Equal(t, 1, scoped.MatchCount)
}
