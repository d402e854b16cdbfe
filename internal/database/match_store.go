package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/footy-edge/internal/models"
)

// matchSchema keeps insertion order in seq so the repository replays
// the corpus in dataset order.
const matchSchema = `
CREATE TABLE IF NOT EXISTS matches (
    seq          BIGSERIAL PRIMARY KEY,
    id           UUID NOT NULL UNIQUE,
    date         TIMESTAMPTZ NOT NULL,
    season       TEXT NOT NULL,
    home_team    TEXT NOT NULL,
    away_team    TEXT NOT NULL,
    home_goals   INT NOT NULL,
    away_goals   INT NOT NULL,
    result       TEXT NOT NULL,
    opening_odds JSONB,
    closing_odds JSONB
);
CREATE INDEX IF NOT EXISTS idx_matches_season ON matches (season);
CREATE INDEX IF NOT EXISTS idx_matches_teams ON matches (home_team, away_team);
`

// MatchStore persists and loads match records.
type MatchStore struct {
	db     *DB
	logger *logrus.Logger
}

// NewMatchStore creates a store over an open database.
func NewMatchStore(db *DB, logger *logrus.Logger) (*MatchStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &MatchStore{db: db, logger: logger}, nil
}

// EnsureSchema creates the matches table if it does not exist.
func (s *MatchStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.pool.Exec(ctx, matchSchema); err != nil {
		return fmt.Errorf("failed to create matches schema: %w", err)
	}
	return nil
}

// InsertBatch upserts a batch of match records in one round trip.
// Records already present (by id) are replaced so re-ingesting a
// season refreshes its odds.
func (s *MatchStore) InsertBatch(ctx context.Context, records []*models.MatchRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, m := range records {
		opening, err := json.Marshal(m.OpeningOdds)
		if err != nil {
			return fmt.Errorf("marshal opening odds for %s: %w", m.ID, err)
		}
		closing, err := json.Marshal(m.ClosingOdds)
		if err != nil {
			return fmt.Errorf("marshal closing odds for %s: %w", m.ID, err)
		}
		batch.Queue(`
			INSERT INTO matches (id, date, season, home_team, away_team, home_goals, away_goals, result, opening_odds, closing_odds)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO UPDATE SET
				opening_odds = EXCLUDED.opening_odds,
				closing_odds = EXCLUDED.closing_odds`,
			m.ID, m.Date, m.Season, m.HomeTeam, m.AwayTeam, m.HomeGoals, m.AwayGoals, string(m.Result), opening, closing,
		)
	}

	results := s.db.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert match batch: %w", err)
		}
	}

	s.logger.WithField("records", len(records)).Info("Inserted match batch")
	return nil
}

// LoadAll returns every stored match in insertion order.
func (s *MatchStore) LoadAll(ctx context.Context) ([]*models.MatchRecord, error) {
	rows, err := s.db.pool.Query(ctx, `
		SELECT id, date, season, home_team, away_team, home_goals, away_goals, result, opening_odds, closing_odds
		FROM matches ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	defer rows.Close()

	var records []*models.MatchRecord
	for rows.Next() {
		m := &models.MatchRecord{}
		var result string
		var opening, closing []byte
		if err := rows.Scan(&m.ID, &m.Date, &m.Season, &m.HomeTeam, &m.AwayTeam,
			&m.HomeGoals, &m.AwayGoals, &result, &opening, &closing); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		m.Result = models.Result(result)
		m.TotalGoals = m.HomeGoals + m.AwayGoals
		if err := unmarshalLine(opening, &m.OpeningOdds); err != nil {
			return nil, fmt.Errorf("unmarshal opening odds for %s: %w", m.ID, err)
		}
		if err := unmarshalLine(closing, &m.ClosingOdds); err != nil {
			return nil, fmt.Errorf("unmarshal closing odds for %s: %w", m.ID, err)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read match rows: %w", err)
	}
	return records, nil
}

func unmarshalLine(data []byte, line *models.OddsLine) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, line)
}
