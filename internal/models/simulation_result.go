package models

import "encoding/json"

// SimulationResult aggregates a full strategy replay. A strategy that
// never fires yields a zeroed result, not an error.
type SimulationResult struct {
	Strategy      string       `json:"strategy"`
	TotalBets     int          `json:"total_bets"`
	WinningBets   int          `json:"winning_bets"`
	LosingBets    int          `json:"losing_bets"`
	TotalStaked   float64      `json:"total_staked"`
	TotalReturned float64      `json:"total_returned"`
	NetProfit     float64      `json:"net_profit"`
	ROI           float64      `json:"roi"`
	WinRate       float64      `json:"win_rate"`
	AverageOdds   float64      `json:"average_odds"`
	ProfitFactor  float64      `json:"profit_factor"`
	MaxWinStreak  int          `json:"max_win_streak"`
	MaxLossStreak int          `json:"max_loss_streak"`
	Bets          []BetOutcome `json:"bets"`
	Curve         []PnLPoint   `json:"curve"`
}

// ToJSON exports the result to JSON.
func (r SimulationResult) ToJSON() string {
	data, _ := json.Marshal(r)
	return string(data)
}
