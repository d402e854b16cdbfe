package models

import (
	"time"

	"github.com/google/uuid"
)

// BetOutcome records one simulated wager in replay order.
type BetOutcome struct {
	MatchID       uuid.UUID `json:"match_id"`
	Date          time.Time `json:"date"`
	Fixture       string    `json:"fixture"`
	Market        Outcome   `json:"market"`
	Odds          float64   `json:"odds"`
	Stake         float64   `json:"stake"`
	Won           bool      `json:"won"`
	ProfitLoss    float64   `json:"profit_loss"`
	CumulativePnL float64   `json:"cumulative_pnl"`
}

// Return is the amount paid back on the bet: stake times odds for a
// winner, zero for a loser.
func (b BetOutcome) Return() float64 {
	if !b.Won {
		return 0
	}
	return b.Stake * b.Odds
}

// ROI returns the bet's return on investment as a percentage.
func (b BetOutcome) ROI() float64 {
	if b.Stake == 0 {
		return 0
	}
	return b.ProfitLoss / b.Stake * 100
}

// PnLPoint is one point of the profit-and-loss curve, recorded after
// each settled bet.
type PnLPoint struct {
	CumulativePnL float64 `json:"cumulative_pnl"`
	Bankroll      float64 `json:"bankroll"`
}
