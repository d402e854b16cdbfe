package datasource

import (
	"context"
	"time"
)

// FixtureSource fetches finished fixtures for a season from an
// external provider.
type FixtureSource interface {
	// FetchSeason retrieves every finished fixture of the season.
	FetchSeason(ctx context.Context, season string) ([]FixtureData, error)

	// Name returns the name of the data source.
	Name() string

	// IsEnabled reports whether this source is currently enabled.
	IsEnabled() bool
}

// FixtureData is a provider-agnostic finished fixture before odds are
// attached and the record is normalized.
type FixtureData struct {
	SourceID  string    `json:"source_id"`
	Season    string    `json:"season"`
	Date      time.Time `json:"date"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeGoals int       `json:"home_goals"`
	AwayGoals int       `json:"away_goals"`
}

// OddsData carries the opening and closing price strings quoted for a
// fixture, keyed by the provider's market labels.
type OddsData struct {
	Opening map[string]string `json:"opening"`
	Closing map[string]string `json:"closing"`
}
