package models

import (
	"fmt"
	"time"
)

// MatchFilter narrows a match corpus before simulation or aggregation.
// Zero-valued fields are ignored; Team matches home or away.
type MatchFilter struct {
	Season   string     `json:"season,omitempty"`
	Team     string     `json:"team,omitempty"`
	HomeTeam string     `json:"home_team,omitempty"`
	AwayTeam string     `json:"away_team,omitempty"`
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`
	Result   Result     `json:"result,omitempty"`
}

// Validate checks the filter for contradictory constraints.
func (f MatchFilter) Validate() error {
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return fmt.Errorf("%w: date_from %s is after date_to %s", ErrInvalidFilter,
			f.DateFrom.Format("2006-01-02"), f.DateTo.Format("2006-01-02"))
	}
	if f.Result != "" && !f.Result.Valid() {
		return fmt.Errorf("%w: unknown result %q", ErrInvalidFilter, f.Result)
	}
	return nil
}

// Matches reports whether the record satisfies every set constraint.
func (f MatchFilter) Matches(m *MatchRecord) bool {
	if f.Season != "" && m.Season != f.Season {
		return false
	}
	if f.Team != "" && !m.Involves(f.Team) {
		return false
	}
	if f.HomeTeam != "" && m.HomeTeam != f.HomeTeam {
		return false
	}
	if f.AwayTeam != "" && m.AwayTeam != f.AwayTeam {
		return false
	}
	if f.DateFrom != nil && m.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && m.Date.After(*f.DateTo) {
		return false
	}
	if f.Result != "" && m.Result != f.Result {
		return false
	}
	return true
}
