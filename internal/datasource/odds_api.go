package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
)

// OddsClient fetches historical opening and closing prices for a
// fixture from an odds-history API.
type OddsClient struct {
	httpClient *ProviderClient
	baseURL    string
	apiKey     string
	enabled    bool
	logger     *logrus.Logger
}

// NewOddsClient creates an odds-history client.
func NewOddsClient(httpClient *ProviderClient, baseURL, apiKey string, enabled bool, logger *logrus.Logger) *OddsClient {
	if logger == nil {
		logger = logrus.New()
	}
	return &OddsClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		enabled:    enabled,
		logger:     logger,
	}
}

// IsEnabled reports whether the source is enabled.
func (c *OddsClient) IsEnabled() bool { return c.enabled }

// oddsResponse mirrors the provider's price payload: one set of quotes
// at market open and one at close, keyed by market label.
type oddsResponse struct {
	Opening map[string]string `json:"opening"`
	Closing map[string]string `json:"closing"`
}

// FetchOdds retrieves the price history for one fixture, identified by
// date and team names.
func (c *OddsClient) FetchOdds(ctx context.Context, fixture FixtureData) (*OddsData, error) {
	query := url.Values{}
	query.Set("date", fixture.Date.Format("2006-01-02"))
	query.Set("home", fixture.HomeTeam)
	query.Set("away", fixture.AwayTeam)

	endpoint := fmt.Sprintf("%s/historical-odds?%s", c.baseURL, query.Encode())
	headers := map[string]string{
		"X-API-Key":    c.apiKey,
		"Content-Type": "application/json",
	}

	resp, err := c.httpClient.Get(ctx, endpoint, headers)
	if err != nil {
		return nil, fmt.Errorf("fetch odds for %s vs %s: %w", fixture.HomeTeam, fixture.AwayTeam, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		// No prices recorded for this fixture. Common for older
		// seasons; the caller decides whether to keep the record.
		return nil, nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("fetch odds for %s vs %s: unexpected status %d: %s",
			fixture.HomeTeam, fixture.AwayTeam, resp.StatusCode, body)
	}

	var payload oddsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode odds payload: %w", err)
	}

	return &OddsData{Opening: payload.Opening, Closing: payload.Closing}, nil
}
