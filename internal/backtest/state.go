package backtest

import (
	"github.com/yourusername/footy-edge/internal/models"
)

// simulationState tracks the running bankroll, P&L curve and streak
// counters while a replay is in progress.
type simulationState struct {
	bankroll      float64
	cumulativePnL float64

	wins          int
	losses        int
	totalStaked   float64
	totalReturned float64
	lostStake     float64
	oddsSum       float64

	winStreak     int
	lossStreak    int
	maxWinStreak  int
	maxLossStreak int

	bets  []models.BetOutcome
	curve []models.PnLPoint
}

func newSimulationState(initialBankroll float64) *simulationState {
	return &simulationState{
		bankroll: initialBankroll,
		bets:     []models.BetOutcome{},
		curve:    []models.PnLPoint{},
	}
}

// settle records one wager: signed P&L, bankroll update, curve point
// and streak bookkeeping.
func (s *simulationState) settle(match *models.MatchRecord, market models.Outcome, odds, stake float64, won bool) {
	pnl := -stake
	if won {
		pnl = (odds - 1.0) * stake
	}

	s.bankroll += pnl
	s.cumulativePnL += pnl
	s.totalStaked += stake
	s.oddsSum += odds

	if won {
		s.wins++
		s.totalReturned += stake * odds
		s.winStreak++
		s.lossStreak = 0
		if s.winStreak > s.maxWinStreak {
			s.maxWinStreak = s.winStreak
		}
	} else {
		s.losses++
		s.lostStake += stake
		s.lossStreak++
		s.winStreak = 0
		if s.lossStreak > s.maxLossStreak {
			s.maxLossStreak = s.lossStreak
		}
	}

	s.bets = append(s.bets, models.BetOutcome{
		MatchID:       match.ID,
		Date:          match.Date,
		Fixture:       match.Fixture(),
		Market:        market,
		Odds:          odds,
		Stake:         stake,
		Won:           won,
		ProfitLoss:    pnl,
		CumulativePnL: s.cumulativePnL,
	})
	s.curve = append(s.curve, models.PnLPoint{
		CumulativePnL: s.cumulativePnL,
		Bankroll:      s.bankroll,
	})
}

// summarize computes the aggregate result from the settled sequence.
// Division guards: ROI is 0 with nothing staked, profit factor is 0
// with no losing stake.
func (s *simulationState) summarize(strategyName string) *models.SimulationResult {
	result := &models.SimulationResult{
		Strategy:      strategyName,
		TotalBets:     len(s.bets),
		WinningBets:   s.wins,
		LosingBets:    s.losses,
		TotalStaked:   s.totalStaked,
		TotalReturned: s.totalReturned,
		NetProfit:     s.totalReturned - s.totalStaked,
		MaxWinStreak:  s.maxWinStreak,
		MaxLossStreak: s.maxLossStreak,
		Bets:          s.bets,
		Curve:         s.curve,
	}

	if s.totalStaked > 0 {
		result.ROI = result.NetProfit / s.totalStaked * 100
	}
	if len(s.bets) > 0 {
		result.WinRate = float64(s.wins) / float64(len(s.bets)) * 100
		result.AverageOdds = s.oddsSum / float64(len(s.bets))
	}
	if s.lostStake > 0 && s.totalStaked > 0 {
		result.ProfitFactor = s.totalReturned / s.lostStake
	}
	return result
}
