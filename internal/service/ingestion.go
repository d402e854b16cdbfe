// Package service orchestrates dataset ingestion: fetching fixtures
// and odds from providers, normalizing them and keeping the in-memory
// corpus in sync with the store.
package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/footy-edge/internal/analysis"
	"github.com/yourusername/footy-edge/internal/database"
	"github.com/yourusername/footy-edge/internal/datasource"
	"github.com/yourusername/footy-edge/internal/metrics"
	"github.com/yourusername/footy-edge/internal/models"
	"github.com/yourusername/footy-edge/internal/repository"
)

// IngestStats summarizes one season ingestion run.
type IngestStats struct {
	Season      string
	Fetched     int
	Persisted   int
	MissingOdds int
	Skipped     int
}

// String renders the stats for log lines.
func (s IngestStats) String() string {
	return fmt.Sprintf("season=%s fetched=%d persisted=%d missing_odds=%d skipped=%d",
		s.Season, s.Fetched, s.Persisted, s.MissingOdds, s.Skipped)
}

// IngestionService fetches, normalizes and persists match records.
type IngestionService struct {
	fixtures   datasource.FixtureSource
	odds       *datasource.OddsClient
	normalizer *datasource.Normalizer
	store      *database.MatchStore
	logger     *logrus.Logger
}

// NewIngestionService wires the ingestion pipeline together. The odds
// client is optional; without it records are persisted without prices.
func NewIngestionService(fixtures datasource.FixtureSource, odds *datasource.OddsClient, normalizer *datasource.Normalizer, store *database.MatchStore, logger *logrus.Logger) (*IngestionService, error) {
	if fixtures == nil {
		return nil, fmt.Errorf("fixture source is required")
	}
	if normalizer == nil {
		return nil, fmt.Errorf("normalizer is required")
	}
	if store == nil {
		return nil, fmt.Errorf("match store is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &IngestionService{
		fixtures:   fixtures,
		odds:       odds,
		normalizer: normalizer,
		store:      store,
		logger:     logger,
	}, nil
}

// IngestSeason fetches one season's finished fixtures, attaches odds
// where the odds provider has them, and persists the batch.
func (s *IngestionService) IngestSeason(ctx context.Context, season string) (IngestStats, error) {
	stats := IngestStats{Season: season}

	if !s.fixtures.IsEnabled() {
		return stats, fmt.Errorf("fixture source %s is disabled", s.fixtures.Name())
	}

	fixtures, err := s.fixtures.FetchSeason(ctx, season)
	if err != nil {
		metrics.IngestionFetchesTotal.WithLabelValues(s.fixtures.Name(), "error").Inc()
		return stats, fmt.Errorf("ingest season %s: %w", season, err)
	}
	metrics.IngestionFetchesTotal.WithLabelValues(s.fixtures.Name(), "ok").Inc()
	stats.Fetched = len(fixtures)

	records := make([]*models.MatchRecord, 0, len(fixtures))
	for _, fixture := range fixtures {
		odds, err := s.fetchOdds(ctx, fixture)
		if err != nil {
			s.logger.WithError(err).WithField("fixture", fixture.SourceID).
				Warn("Odds lookup failed, ingesting fixture without prices")
		}
		if odds == nil {
			stats.MissingOdds++
		}

		record, err := s.normalizer.Normalize(fixture, odds)
		if err != nil {
			s.logger.WithError(err).WithField("fixture", fixture.SourceID).
				Warn("Dropping fixture that failed normalization")
			stats.Skipped++
			continue
		}
		records = append(records, record)
	}

	if err := s.store.InsertBatch(ctx, records); err != nil {
		return stats, fmt.Errorf("persist season %s: %w", season, err)
	}
	stats.Persisted = len(records)
	metrics.IngestionRecordsTotal.Add(float64(len(records)))

	s.logger.WithFields(logrus.Fields{
		"season":       season,
		"fetched":      stats.Fetched,
		"persisted":    stats.Persisted,
		"missing_odds": stats.MissingOdds,
		"skipped":      stats.Skipped,
	}).Info("Season ingestion complete")

	return stats, nil
}

// IngestSeasons runs IngestSeason for each season in order.
func (s *IngestionService) IngestSeasons(ctx context.Context, seasons []string) error {
	for _, season := range seasons {
		if _, err := s.IngestSeason(ctx, season); err != nil {
			return err
		}
	}
	return nil
}

// HydrateRepository loads the persisted corpus into a fresh in-memory
// repository.
func (s *IngestionService) HydrateRepository(ctx context.Context) (*repository.MatchRepository, error) {
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	repo, err := repository.NewMatchRepository(records)
	if err != nil {
		return nil, err
	}
	metrics.RepositoryMatches.Set(float64(repo.Len()))
	return repo, nil
}

// RefreshRepository reloads the persisted corpus into an existing
// repository via copy-on-write swap, so in-flight simulations keep
// their snapshot, and drops memoized reports that may now be stale.
func (s *IngestionService) RefreshRepository(ctx context.Context, repo *repository.MatchRepository, agg *analysis.Aggregator) error {
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return err
	}
	if err := repo.Swap(records); err != nil {
		return err
	}
	if agg != nil {
		agg.InvalidateCache()
	}
	metrics.RepositoryMatches.Set(float64(repo.Len()))
	s.logger.WithField("records", len(records)).Info("Repository refreshed")
	return nil
}

func (s *IngestionService) fetchOdds(ctx context.Context, fixture datasource.FixtureData) (*datasource.OddsData, error) {
	if s.odds == nil || !s.odds.IsEnabled() {
		return nil, nil
	}
	return s.odds.FetchOdds(ctx, fixture)
}
