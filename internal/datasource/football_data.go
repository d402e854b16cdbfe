package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// FootballDataClient implements FixtureSource for a football-data.org
// style competition API.
type FootballDataClient struct {
	httpClient    *ProviderClient
	baseURL       string
	apiKey        string
	competitionID string
	enabled       bool
	logger        *logrus.Logger
}

// NewFootballDataClient creates a fixtures client for one competition.
func NewFootballDataClient(httpClient *ProviderClient, baseURL, apiKey, competitionID string, enabled bool, logger *logrus.Logger) *FootballDataClient {
	if logger == nil {
		logger = logrus.New()
	}
	return &FootballDataClient{
		httpClient:    httpClient,
		baseURL:       baseURL,
		apiKey:        apiKey,
		competitionID: competitionID,
		enabled:       enabled,
		logger:        logger,
	}
}

// Name returns the source name.
func (c *FootballDataClient) Name() string { return "football_data" }

// IsEnabled reports whether the source is enabled.
func (c *FootballDataClient) IsEnabled() bool { return c.enabled }

// competitionMatch mirrors the provider's fixture payload.
type competitionMatch struct {
	ID       int64  `json:"id"`
	UTCDate  string `json:"utcDate"`
	Status   string `json:"status"`
	HomeTeam struct {
		Name string `json:"name"`
	} `json:"homeTeam"`
	AwayTeam struct {
		Name string `json:"name"`
	} `json:"awayTeam"`
	Score struct {
		FullTime struct {
			Home *int `json:"home"`
			Away *int `json:"away"`
		} `json:"fullTime"`
	} `json:"score"`
}

type competitionMatchesResponse struct {
	Matches []competitionMatch `json:"matches"`
}

// FetchSeason retrieves every finished fixture of the season.
func (c *FootballDataClient) FetchSeason(ctx context.Context, season string) ([]FixtureData, error) {
	url := fmt.Sprintf("%s/competitions/%s/matches?season=%s&status=FINISHED", c.baseURL, c.competitionID, season)
	headers := map[string]string{
		"X-Auth-Token": c.apiKey,
		"Content-Type": "application/json",
	}

	resp, err := c.httpClient.Get(ctx, url, headers)
	if err != nil {
		return nil, fmt.Errorf("fetch season %s: %w", season, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("fetch season %s: unexpected status %d: %s", season, resp.StatusCode, body)
	}

	var payload competitionMatchesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode season %s: %w", season, err)
	}

	fixtures := make([]FixtureData, 0, len(payload.Matches))
	for _, match := range payload.Matches {
		if match.Status != "FINISHED" {
			continue
		}
		if match.Score.FullTime.Home == nil || match.Score.FullTime.Away == nil {
			c.logger.WithField("fixture_id", match.ID).Warn("Skipping finished fixture without a full-time score")
			continue
		}
		date, err := time.Parse(time.RFC3339, match.UTCDate)
		if err != nil {
			c.logger.WithFields(logrus.Fields{"fixture_id": match.ID, "utc_date": match.UTCDate}).
				Warn("Skipping fixture with unparseable date")
			continue
		}
		fixtures = append(fixtures, FixtureData{
			SourceID:  fmt.Sprintf("%d", match.ID),
			Season:    season,
			Date:      date,
			HomeTeam:  match.HomeTeam.Name,
			AwayTeam:  match.AwayTeam.Name,
			HomeGoals: *match.Score.FullTime.Home,
			AwayGoals: *match.Score.FullTime.Away,
		})
	}

	c.logger.WithFields(logrus.Fields{
		"season":   season,
		"fixtures": len(fixtures),
	}).Info("Fetched season fixtures")

	return fixtures, nil
}
