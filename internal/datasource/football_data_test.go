package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastClientConfig() HTTPClientConfig {
	cfg := DefaultHTTPClientConfig()
	cfg.RateLimit = 1000
	cfg.MaxRetries = 0
	cfg.Timeout = 2 * time.Second
	return cfg
}

func TestFetchSeason(t *testing.T) {
	var gotPath, gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		gotToken = r.Header.Get("X-Auth-Token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"matches":[
			{"id":1,"utcDate":"2023-08-12T14:00:00Z","status":"FINISHED",
			 "homeTeam":{"name":"Arsenal FC"},"awayTeam":{"name":"Chelsea FC"},
			 "score":{"fullTime":{"home":2,"away":1}}},
			{"id":2,"utcDate":"2023-08-13T14:00:00Z","status":"POSTPONED",
			 "homeTeam":{"name":"Spurs"},"awayTeam":{"name":"Everton"},
			 "score":{"fullTime":{"home":null,"away":null}}},
			{"id":3,"utcDate":"2023-08-14T14:00:00Z","status":"FINISHED",
			 "homeTeam":{"name":"Leeds"},"awayTeam":{"name":"Fulham"},
			 "score":{"fullTime":{"home":null,"away":null}}},
			{"id":4,"utcDate":"not-a-date","status":"FINISHED",
			 "homeTeam":{"name":"Brighton"},"awayTeam":{"name":"Wolves"},
			 "score":{"fullTime":{"home":0,"away":0}}}
		]}`))
	}))
	defer server.Close()

	client := NewFootballDataClient(NewProviderClient(fastClientConfig(), nil), server.URL, "secret-token", "PL", true, nil)

	fixtures, err := client.FetchSeason(context.Background(), "2023")
	require.NoError(t, err)

	// Only the fully finished, scored, dated fixture survives.
	require.Len(t, fixtures, 1)
	f := fixtures[0]
	assert.Equal(t, "1", f.SourceID)
	assert.Equal(t, "2023", f.Season)
	assert.Equal(t, "Arsenal FC", f.HomeTeam)
	assert.Equal(t, 2, f.HomeGoals)
	assert.Equal(t, 1, f.AwayGoals)
	assert.Equal(t, time.Date(2023, 8, 12, 14, 0, 0, 0, time.UTC), f.Date)

	assert.Equal(t, "/competitions/PL/matches?season=2023&status=FINISHED", gotPath)
	assert.Equal(t, "secret-token", gotToken)
}

func TestFetchSeasonErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewFootballDataClient(NewProviderClient(fastClientConfig(), nil), server.URL, "bad-token", "PL", true, nil)
	_, err := client.FetchSeason(context.Background(), "2023")
	assert.ErrorContains(t, err, "unexpected status 403")
}

func TestFetchOdds(t *testing.T) {
	t.Run("prices found", func(t *testing.T) {
		var gotQuery, gotKey string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			gotKey = r.Header.Get("X-API-Key")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"opening":{"home":"1.85","away":"4.20"},"closing":{"home":"1.80"}}`))
		}))
		defer server.Close()

		client := NewOddsClient(NewProviderClient(fastClientConfig(), nil), server.URL, "odds-key", true, nil)
		odds, err := client.FetchOdds(context.Background(), FixtureData{
			Date:     time.Date(2023, 8, 12, 14, 0, 0, 0, time.UTC),
			HomeTeam: "Arsenal",
			AwayTeam: "Chelsea",
		})
		require.NoError(t, err)
		require.NotNil(t, odds)
		assert.Equal(t, "1.85", odds.Opening["home"])
		assert.Equal(t, "1.80", odds.Closing["home"])
		assert.Equal(t, "odds-key", gotKey)
		assert.Contains(t, gotQuery, "date=2023-08-12")
		assert.Contains(t, gotQuery, "home=Arsenal")
	})

	t.Run("missing prices are nil, not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer server.Close()

		client := NewOddsClient(NewProviderClient(fastClientConfig(), nil), server.URL, "odds-key", true, nil)
		odds, err := client.FetchOdds(context.Background(), FixtureData{Date: time.Now()})
		require.NoError(t, err)
		assert.Nil(t, odds)
	})

	t.Run("server errors surface", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "oops", http.StatusBadRequest)
		}))
		defer server.Close()

		client := NewOddsClient(NewProviderClient(fastClientConfig(), nil), server.URL, "odds-key", true, nil)
		_, err := client.FetchOdds(context.Background(), FixtureData{Date: time.Now()})
		assert.ErrorContains(t, err, "unexpected status 400")
	})
}
