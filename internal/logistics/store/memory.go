// Package store provides courier and transport registry persistence.
package store

import (
	"context"
	"sort"
	"sync"

	"organledger/internal/logistics/models"
	"organledger/pkg/domain"
	"organledger/pkg/platform/sentinel"
)

// InMemory keeps couriers and transports in mutex-guarded maps. Transport IDs
// are allocated sequentially; courier IDs come from the caller and collide
// with ErrConflict.
type InMemory struct {
	mu         sync.RWMutex
	couriers   map[domain.CourierID]*models.Courier
	transports map[domain.TransportID]*models.Transport
	nextID     domain.TransportID
}

func NewInMemory() *InMemory {
	return &InMemory{
		couriers:   make(map[domain.CourierID]*models.Courier),
		transports: make(map[domain.TransportID]*models.Transport),
		nextID:     1,
	}
}

// CreateCourier stores a courier under its caller-supplied ID.
// Returns ErrConflict when the ID is already taken.
func (s *InMemory) CreateCourier(_ context.Context, c *models.Courier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.couriers[c.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := *c
	s.couriers[cp.ID] = &cp
	return nil
}

// FindCourier returns a copy of the courier.
func (s *InMemory) FindCourier(_ context.Context, id domain.CourierID) (*models.Courier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.couriers[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// ExecuteCourier runs validate then apply under the write lock and returns a
// copy of the updated courier.
func (s *InMemory) ExecuteCourier(_ context.Context, id domain.CourierID, validate func(*models.Courier) error, apply func(*models.Courier)) (*models.Courier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.couriers[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(c); err != nil {
		return nil, err
	}
	apply(c)
	cp := *c
	return &cp, nil
}

// CreateTransport assigns the next sequential ID and stores the transport.
func (s *InMemory) CreateTransport(_ context.Context, t *models.Transport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	cp := *t
	s.transports[cp.ID] = &cp
	return nil
}

// FindTransport returns a copy of the transport.
func (s *InMemory) FindTransport(_ context.Context, id domain.TransportID) (*models.Transport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.transports[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

// ExecuteTransport runs validate then apply under the write lock and returns
// a copy of the updated transport.
func (s *InMemory) ExecuteTransport(_ context.Context, id domain.TransportID, validate func(*models.Transport) error, apply func(*models.Transport)) (*models.Transport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transports[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(t); err != nil {
		return nil, err
	}
	apply(t)
	cp := *t
	return &cp, nil
}

// Snapshot returns both record sets ordered by ID, for the ledger snapshotter.
func (s *InMemory) Snapshot(_ context.Context) ([]models.Courier, []models.Transport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	couriers := make([]models.Courier, 0, len(s.couriers))
	for _, c := range s.couriers {
		couriers = append(couriers, *c)
	}
	sort.Slice(couriers, func(i, j int) bool { return couriers[i].ID < couriers[j].ID })
	transports := make([]models.Transport, 0, len(s.transports))
	for _, t := range s.transports {
		transports = append(transports, *t)
	}
	sort.Slice(transports, func(i, j int) bool { return transports[i].ID < transports[j].ID })
	return couriers, transports, nil
}

// Restore replaces the store contents with a snapshot and advances the
// transport ID counter past the highest restored ID.
func (s *InMemory) Restore(_ context.Context, couriers []models.Courier, transports []models.Transport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.couriers = make(map[domain.CourierID]*models.Courier, len(couriers))
	for i := range couriers {
		cp := couriers[i]
		s.couriers[cp.ID] = &cp
	}
	s.transports = make(map[domain.TransportID]*models.Transport, len(transports))
	s.nextID = 1
	for i := range transports {
		cp := transports[i]
		s.transports[cp.ID] = &cp
		if cp.ID >= s.nextID {
			s.nextID = cp.ID + 1
		}
	}
	return nil
}
