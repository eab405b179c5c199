// Package store provides match registry persistence. The in-memory variant is
// the primary substrate; the ledger snapshotter persists it across restarts.
package store

import (
	"context"
	"sort"
	"sync"

	"organledger/internal/match/models"
	"organledger/pkg/domain"
	"organledger/pkg/platform/sentinel"
)

// InMemory keeps matches in a mutex-guarded map and allocates sequential IDs.
// It intentionally favors clarity over performance.
type InMemory struct {
	mu      sync.RWMutex
	matches map[domain.MatchID]*models.Match
	nextID  domain.MatchID
}

func NewInMemory() *InMemory {
	return &InMemory{matches: make(map[domain.MatchID]*models.Match), nextID: 1}
}

// Create assigns the next sequential ID and stores the match. IDs are never
// reused, even if the caller restores an older snapshot first.
func (s *InMemory) Create(_ context.Context, m *models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.nextID
	s.nextID++
	cp := *m
	s.matches[cp.ID] = &cp
	return nil
}

// FindByID returns a copy of the match so callers cannot mutate stored state.
func (s *InMemory) FindByID(_ context.Context, id domain.MatchID) (*models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

// Execute runs validate then apply against the stored match while holding the
// write lock, so validation and mutation observe the same record state.
// Returns a copy of the updated match.
func (s *InMemory) Execute(_ context.Context, id domain.MatchID, validate func(*models.Match) error, apply func(*models.Match)) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(m); err != nil {
		return nil, err
	}
	apply(m)
	cp := *m
	return &cp, nil
}

// Snapshot returns all matches ordered by ID, for the ledger snapshotter.
func (s *InMemory) Snapshot(_ context.Context) ([]models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Match, 0, len(s.matches))
	for _, m := range s.matches {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Restore replaces the store contents with a snapshot and advances the ID
// counter past the highest restored ID so allocation never collides.
func (s *InMemory) Restore(_ context.Context, matches []models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = make(map[domain.MatchID]*models.Match, len(matches))
	s.nextID = 1
	for i := range matches {
		cp := matches[i]
		s.matches[cp.ID] = &cp
		if cp.ID >= s.nextID {
			s.nextID = cp.ID + 1
		}
	}
	return nil
}
