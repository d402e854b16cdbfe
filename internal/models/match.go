package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OddsLine maps each market selection to a decimal price.
type OddsLine map[Outcome]float64

// Price returns the decimal odds quoted for a selection.
func (l OddsLine) Price(o Outcome) (float64, bool) {
	price, ok := l[o]
	return price, ok
}

// MatchRecord represents one finished historical fixture. Records are
// loaded once at startup and treated as immutable afterwards.
type MatchRecord struct {
	ID          uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	Date        time.Time `db:"date" json:"date" validate:"required"`
	Season      string    `db:"season" json:"season" validate:"required"`
	HomeTeam    string    `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam    string    `db:"away_team" json:"away_team" validate:"required"`
	HomeGoals   int       `db:"home_goals" json:"home_goals" validate:"gte=0"`
	AwayGoals   int       `db:"away_goals" json:"away_goals" validate:"gte=0"`
	TotalGoals  int       `db:"total_goals" json:"total_goals"`
	Result      Result    `db:"result" json:"result" validate:"required"`
	OpeningOdds OddsLine  `db:"opening_odds" json:"opening_odds"`
	ClosingOdds OddsLine  `db:"closing_odds" json:"closing_odds"`
}

// Fixture returns a human-readable label for the match.
func (m *MatchRecord) Fixture() string {
	return fmt.Sprintf("%s vs %s", m.HomeTeam, m.AwayTeam)
}

// Involves reports whether the team played in the match, home or away.
func (m *MatchRecord) Involves(team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

// ResultFromGoals derives the full-time result from a scoreline.
func ResultFromGoals(homeGoals, awayGoals int) Result {
	switch {
	case homeGoals > awayGoals:
		return ResultHomeWin
	case homeGoals < awayGoals:
		return ResultAwayWin
	default:
		return ResultDraw
	}
}

// Drift returns the closing-minus-opening price change for a selection.
// The boolean is false when either line is missing the selection.
func (m *MatchRecord) Drift(o Outcome) (float64, bool) {
	opening, ok := m.OpeningOdds.Price(o)
	if !ok {
		return 0, false
	}
	closing, ok := m.ClosingOdds.Price(o)
	if !ok {
		return 0, false
	}
	return closing - opening, true
}

// Validate checks the record's internal consistency: non-negative
// scores, derived total, result matching the goal difference and all
// quoted prices above 1.0.
func (m *MatchRecord) Validate() error {
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return fmt.Errorf("match %s: team names are required", m.ID)
	}
	if m.HomeGoals < 0 || m.AwayGoals < 0 {
		return fmt.Errorf("match %s: goals cannot be negative", m.ID)
	}
	if m.TotalGoals != m.HomeGoals+m.AwayGoals {
		return fmt.Errorf("match %s: total goals %d does not equal %d+%d", m.ID, m.TotalGoals, m.HomeGoals, m.AwayGoals)
	}
	if expected := ResultFromGoals(m.HomeGoals, m.AwayGoals); m.Result != expected {
		return fmt.Errorf("match %s: result %s inconsistent with score %d-%d", m.ID, m.Result, m.HomeGoals, m.AwayGoals)
	}
	for _, line := range []OddsLine{m.OpeningOdds, m.ClosingOdds} {
		for outcome, price := range line {
			if !outcome.Valid() {
				return fmt.Errorf("match %s: unknown market selection %q", m.ID, outcome)
			}
			if price <= 1.0 {
				return fmt.Errorf("match %s: odds %.2f for %s must exceed 1.0", m.ID, price, outcome)
			}
		}
	}
	return nil
}
