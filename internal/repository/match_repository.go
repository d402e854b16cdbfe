// Package repository holds the in-memory match corpus and its filtered
// read-only views.
package repository

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/yourusername/footy-edge/internal/models"
)

// snapshot is one immutable generation of the corpus. Readers resolve
// the snapshot once per call, so a concurrent Swap never affects an
// in-flight read.
type snapshot struct {
	ordered []*models.MatchRecord
	byID    map[uuid.UUID]*models.MatchRecord
}

// MatchRepository owns the canonical match records. All accessors are
// read-only and side-effect-free; corpus reloads replace the whole
// snapshot atomically rather than mutating it in place.
type MatchRepository struct {
	current atomic.Pointer[snapshot]
}

// NewMatchRepository builds a repository over the given records,
// preserving their order. Every record is validated on the way in.
func NewMatchRepository(records []*models.MatchRecord) (*MatchRepository, error) {
	snap, err := buildSnapshot(records)
	if err != nil {
		return nil, err
	}
	repo := &MatchRepository{}
	repo.current.Store(snap)
	return repo, nil
}

// Swap atomically replaces the corpus with a fresh set of records.
// In-flight reads continue against the previous snapshot.
func (r *MatchRepository) Swap(records []*models.MatchRecord) error {
	snap, err := buildSnapshot(records)
	if err != nil {
		return err
	}
	r.current.Store(snap)
	return nil
}

// GetMatches returns the records satisfying the filter, in dataset
// order. Repeated calls with the same filter return identical results.
func (r *MatchRepository) GetMatches(filter models.MatchFilter) ([]*models.MatchRecord, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	snap := r.current.Load()
	matches := make([]*models.MatchRecord, 0, len(snap.ordered))
	for _, m := range snap.ordered {
		if filter.Matches(m) {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// GetMatch looks up a single match by ID.
func (r *MatchRepository) GetMatch(id uuid.UUID) (*models.MatchRecord, error) {
	snap := r.current.Load()
	m, ok := snap.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrMatchNotFound, id)
	}
	return m, nil
}

// AllTeams returns the sorted union of home and away team names.
func (r *MatchRepository) AllTeams() []string {
	snap := r.current.Load()
	seen := make(map[string]struct{})
	for _, m := range snap.ordered {
		seen[m.HomeTeam] = struct{}{}
		seen[m.AwayTeam] = struct{}{}
	}
	teams := make([]string, 0, len(seen))
	for team := range seen {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

// Len returns the number of records in the current snapshot.
func (r *MatchRepository) Len() int {
	return len(r.current.Load().ordered)
}

func buildSnapshot(records []*models.MatchRecord) (*snapshot, error) {
	snap := &snapshot{
		ordered: make([]*models.MatchRecord, 0, len(records)),
		byID:    make(map[uuid.UUID]*models.MatchRecord, len(records)),
	}
	for _, m := range records {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, dup := snap.byID[m.ID]; dup {
			return nil, fmt.Errorf("duplicate match id %s", m.ID)
		}
		snap.ordered = append(snap.ordered, m)
		snap.byID[m.ID] = m
	}
	return snap, nil
}
