// Package store provides recipient and hospital registry persistence.
package store

import (
	"context"
	"sort"
	"sync"

	"organledger/internal/recipient/models"
	"organledger/pkg/domain"
	"organledger/pkg/platform/sentinel"
)

// InMemory keeps recipients and hospital directory entries in mutex-guarded
// maps. Recipient IDs are allocated sequentially; hospital IDs come from the
// caller and collide with ErrConflict.
type InMemory struct {
	mu         sync.RWMutex
	recipients map[domain.RecipientID]*models.Recipient
	hospitals  map[domain.HospitalID]*models.Hospital
	nextID     domain.RecipientID
}

func NewInMemory() *InMemory {
	return &InMemory{
		recipients: make(map[domain.RecipientID]*models.Recipient),
		hospitals:  make(map[domain.HospitalID]*models.Hospital),
		nextID:     1,
	}
}

// CreateRecipient assigns the next sequential ID and stores the recipient.
func (s *InMemory) CreateRecipient(_ context.Context, r *models.Recipient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextID
	s.nextID++
	cp := *r
	s.recipients[cp.ID] = &cp
	return nil
}

// FindRecipient returns a copy of the recipient.
func (s *InMemory) FindRecipient(_ context.Context, id domain.RecipientID) (*models.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipients[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

// ExecuteRecipient runs validate then apply under the write lock and returns
// a copy of the updated recipient.
func (s *InMemory) ExecuteRecipient(_ context.Context, id domain.RecipientID, validate func(*models.Recipient) error, apply func(*models.Recipient)) (*models.Recipient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recipients[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(r); err != nil {
		return nil, err
	}
	apply(r)
	cp := *r
	return &cp, nil
}

// CreateHospital stores a directory entry under its caller-supplied ID.
// Returns ErrConflict when the ID is already taken.
func (s *InMemory) CreateHospital(_ context.Context, h *models.Hospital) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.hospitals[h.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := *h
	s.hospitals[cp.ID] = &cp
	return nil
}

// FindHospital returns a copy of the hospital entry.
func (s *InMemory) FindHospital(_ context.Context, id domain.HospitalID) (*models.Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hospitals[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *h
	return &cp, nil
}

// Snapshot returns both record sets ordered by ID, for the ledger snapshotter.
func (s *InMemory) Snapshot(_ context.Context) ([]models.Recipient, []models.Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recipients := make([]models.Recipient, 0, len(s.recipients))
	for _, r := range s.recipients {
		recipients = append(recipients, *r)
	}
	sort.Slice(recipients, func(i, j int) bool { return recipients[i].ID < recipients[j].ID })
	hospitals := make([]models.Hospital, 0, len(s.hospitals))
	for _, h := range s.hospitals {
		hospitals = append(hospitals, *h)
	}
	sort.Slice(hospitals, func(i, j int) bool { return hospitals[i].ID < hospitals[j].ID })
	return recipients, hospitals, nil
}

// Restore replaces the store contents with a snapshot and advances the
// recipient ID counter past the highest restored ID.
func (s *InMemory) Restore(_ context.Context, recipients []models.Recipient, hospitals []models.Hospital) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipients = make(map[domain.RecipientID]*models.Recipient, len(recipients))
	s.nextID = 1
	for i := range recipients {
		cp := recipients[i]
		s.recipients[cp.ID] = &cp
		if cp.ID >= s.nextID {
			s.nextID = cp.ID + 1
		}
	}
	s.hospitals = make(map[domain.HospitalID]*models.Hospital, len(hospitals))
	for i := range hospitals {
		cp := hospitals[i]
		s.hospitals[cp.ID] = &cp
	}
	return nil
}
