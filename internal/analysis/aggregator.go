// Package analysis derives per-team and per-market statistics from the
// match repository. Reports are pure functions of the corpus; results
// are memoized per filter and key for repeated calls.
package analysis

import (
	"encoding/json"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/footy-edge/internal/metrics"
	"github.com/yourusername/footy-edge/internal/models"
	"github.com/yourusername/footy-edge/internal/repository"
)

// FlatStake is the uniform stake used for the ROI figures in reports.
const FlatStake = 100.0

const reportCacheTTL = 5 * time.Minute

// Aggregator computes team and market reports over the repository.
type Aggregator struct {
	repo   *repository.MatchRepository
	cache  *cache.Cache
	logger *logrus.Logger
}

// NewAggregator creates an aggregator bound to a repository.
func NewAggregator(repo *repository.MatchRepository, logger *logrus.Logger) (*Aggregator, error) {
	if repo == nil {
		return nil, fmt.Errorf("match repository is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Aggregator{
		repo:   repo,
		cache:  cache.New(reportCacheTTL, 2*reportCacheTTL),
		logger: logger,
	}, nil
}

// InvalidateCache drops all memoized reports. Called after a corpus
// swap so reports stay consistent with the underlying data.
func (a *Aggregator) InvalidateCache() {
	a.cache.Flush()
}

// TeamReport builds the team's home/away record, goal splits and the
// flat-stake ROI of backing it as favorite, underdog, host and visitor.
func (a *Aggregator) TeamReport(team string, filter models.MatchFilter) (*models.TeamReport, error) {
	key := cacheKey("team", team, filter)
	if cached, found := a.cache.Get(key); found {
		metrics.ReportCacheHitsTotal.Inc()
		return cached.(*models.TeamReport), nil
	}

	scoped := filter
	scoped.Team = team
	matches, err := a.repo.GetMatches(scoped)
	if err != nil {
		return nil, err
	}

	report := &models.TeamReport{Team: team, MatchCount: len(matches)}

	var favStaked, favReturned, dogStaked, dogReturned float64
	var homeStaked, homeReturned, awayStaked, awayReturned float64

	for _, m := range matches {
		home := m.HomeTeam == team
		tallyRecord(report, m, home)

		teamSide, oppSide := models.OutcomeHome, models.OutcomeAway
		if !home {
			teamSide, oppSide = models.OutcomeAway, models.OutcomeHome
		}
		teamOdds, ok := m.OpeningOdds.Price(teamSide)
		if !ok {
			continue
		}
		oppOdds, ok := m.OpeningOdds.Price(oppSide)
		if !ok {
			continue
		}

		ret := 0.0
		if teamSide.Hits(m) {
			ret = FlatStake * teamOdds
		}
		if teamOdds < oppOdds {
			favStaked += FlatStake
			favReturned += ret
		} else {
			dogStaked += FlatStake
			dogReturned += ret
		}
		if home {
			homeStaked += FlatStake
			homeReturned += ret
		} else {
			awayStaked += FlatStake
			awayReturned += ret
		}
	}

	report.FavoriteROI = roi(favStaked, favReturned)
	report.UnderdogROI = roi(dogStaked, dogReturned)
	report.HomeROI = roi(homeStaked, homeReturned)
	report.AwayROI = roi(awayStaked, awayReturned)

	a.cache.Set(key, report, cache.DefaultExpiration)
	return report, nil
}

// MarketReport measures one selection across every filtered match: hit
// rate, odds spread and the ROI of a uniform flat stake.
func (a *Aggregator) MarketReport(market models.Outcome, filter models.MatchFilter) (*models.MarketReport, error) {
	if !market.Valid() {
		return nil, fmt.Errorf("%w: unknown market %q", models.ErrInvalidStrategy, market)
	}
	key := cacheKey("market", string(market), filter)
	if cached, found := a.cache.Get(key); found {
		metrics.ReportCacheHitsTotal.Inc()
		return cached.(*models.MarketReport), nil
	}

	matches, err := a.repo.GetMatches(filter)
	if err != nil {
		return nil, err
	}

	report := &models.MarketReport{Market: market}
	var staked, returned, oddsSum float64

	for _, m := range matches {
		odds, ok := m.OpeningOdds.Price(market)
		if !ok {
			continue
		}
		report.MatchCount++
		oddsSum += odds
		if report.MinOdds == 0 || odds < report.MinOdds {
			report.MinOdds = odds
		}
		if odds > report.MaxOdds {
			report.MaxOdds = odds
		}

		staked += FlatStake
		if market.Hits(m) {
			report.Hits++
			returned += FlatStake * odds
		}
	}

	if report.MatchCount > 0 {
		report.HitRate = float64(report.Hits) / float64(report.MatchCount) * 100
		report.MeanOdds = oddsSum / float64(report.MatchCount)
	}
	report.ROI = roi(staked, returned)

	a.cache.Set(key, report, cache.DefaultExpiration)
	return report, nil
}

func tallyRecord(report *models.TeamReport, m *models.MatchRecord, home bool) {
	record := &report.Home
	goalsFor, goalsAgainst := m.HomeGoals, m.AwayGoals
	won, lost := models.ResultHomeWin, models.ResultAwayWin
	if !home {
		record = &report.Away
		goalsFor, goalsAgainst = m.AwayGoals, m.HomeGoals
		won, lost = models.ResultAwayWin, models.ResultHomeWin
	}

	record.Played++
	record.GoalsFor += goalsFor
	record.GoalsAgainst += goalsAgainst
	switch m.Result {
	case won:
		record.Wins++
	case lost:
		record.Losses++
	default:
		record.Draws++
	}
}

func roi(staked, returned float64) float64 {
	if staked == 0 {
		return 0
	}
	return (returned - staked) / staked * 100
}

func cacheKey(kind, subject string, filter models.MatchFilter) string {
	data, _ := json.Marshal(filter)
	return fmt.Sprintf("%s:%s:%s", kind, subject, data)
}
