// Package backtest replays betting strategies against the historical
// match corpus and produces bet-by-bet outcomes with aggregate
// statistics.
package backtest

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/footy-edge/internal/metrics"
	"github.com/yourusername/footy-edge/internal/models"
	"github.com/yourusername/footy-edge/internal/repository"
)

// InitialBankroll is the documented starting capital for every
// simulation. It is deliberately not configurable; callers needing a
// different scale should rescale the results.
const InitialBankroll = 1000.0

// Engine runs strategy simulations over the match repository.
type Engine struct {
	repo   *repository.MatchRepository
	logger *logrus.Logger
}

// NewEngine creates a simulation engine bound to a repository.
func NewEngine(repo *repository.MatchRepository, logger *logrus.Logger) (*Engine, error) {
	if repo == nil {
		return nil, fmt.Errorf("match repository is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{repo: repo, logger: logger}, nil
}

// Simulate replays the strategy match-by-match in corpus order. The
// corpus order is the time axis of the P&L curve; the engine does not
// re-sort, so callers wanting chronological replay must load a
// date-sorted dataset. A strategy that never fires yields a zeroed
// result, not an error.
func (e *Engine) Simulate(strategy models.StrategyDefinition) (*models.SimulationResult, error) {
	if err := strategy.Validate(); err != nil {
		return nil, err
	}

	timer := metrics.NewTimer(metrics.SimulationDuration)
	defer timer.ObserveDuration()

	matches, err := e.repo.GetMatches(strategy.Filter)
	if err != nil {
		return nil, err
	}

	state := newSimulationState(InitialBankroll)
	skipped := 0

	for _, match := range matches {
		odds, ok := match.OpeningOdds.Price(strategy.Market)
		if !ok {
			skipped++
			continue
		}
		if !qualifies(strategy, match, odds) {
			skipped++
			continue
		}
		// Stake is computed from the bankroll as it stands before
		// this bet settles.
		stake := strategy.Stake.Amount(state.bankroll)
		if stake <= 0 {
			skipped++
			continue
		}
		state.settle(match, strategy.Market, odds, stake, strategy.Market.Hits(match))
	}

	result := state.summarize(strategy.Name)

	metrics.SimulationsTotal.Inc()
	metrics.BetsSimulatedTotal.Add(float64(result.TotalBets))
	metrics.BetsSkippedTotal.Add(float64(skipped))

	e.logger.WithFields(logrus.Fields{
		"strategy":   strategy.Name,
		"market":     strategy.Market,
		"matches":    len(matches),
		"bets":       result.TotalBets,
		"skipped":    skipped,
		"net_profit": result.NetProfit,
		"roi":        result.ROI,
	}).Info("Simulation complete")

	return result, nil
}

// qualifies applies the strategy's extra conditions: odds bounds and
// the required opening-to-closing line movement. A match that fails a
// condition is skipped, not counted as a bet.
func qualifies(strategy models.StrategyDefinition, match *models.MatchRecord, odds float64) bool {
	if strategy.MinOdds > 0 && odds < strategy.MinOdds {
		return false
	}
	if strategy.MaxOdds > 0 && odds > strategy.MaxOdds {
		return false
	}

	switch strategy.Movement {
	case models.MovementUp:
		drift, ok := match.Drift(strategy.Market)
		if !ok || drift <= 0 {
			return false
		}
	case models.MovementDown:
		drift, ok := match.Drift(strategy.Market)
		if !ok || drift >= 0 {
			return false
		}
	}
	return true
}
