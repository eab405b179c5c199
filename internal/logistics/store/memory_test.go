package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"organledger/internal/logistics/models"
	"organledger/pkg/platform/sentinel"
)

type LogisticsStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *LogisticsStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestLogisticsStoreSuite(t *testing.T) {
	suite.Run(t, new(LogisticsStoreSuite))
}

func (s *LogisticsStoreSuite) TestCouriers() {
	s.Run("stores under caller-supplied ID", func() {
		c, err := models.NewCourier(4, "Swift Logistics", "swift@example.com", time.Now())
		s.Require().NoError(err)
		s.Require().NoError(s.store.CreateCourier(s.ctx, c))

		found, err := s.store.FindCourier(s.ctx, 4)
		s.Require().NoError(err)
		s.True(found.IsActive)
	})

	s.Run("rejects duplicate ID with ErrConflict", func() {
		c1, err := models.NewCourier(8, "First", "a@example.com", time.Now())
		s.Require().NoError(err)
		c2, err := models.NewCourier(8, "Second", "b@example.com", time.Now())
		s.Require().NoError(err)

		s.Require().NoError(s.store.CreateCourier(s.ctx, c1))
		s.Require().ErrorIs(s.store.CreateCourier(s.ctx, c2), sentinel.ErrConflict)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindCourier(s.ctx, 999)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *LogisticsStoreSuite) TestTransports() {
	s.Run("assigns sequential IDs from 1", func() {
		t1, err := models.NewTransport(1, "kidney", 2, 3, 4, time.Now())
		s.Require().NoError(err)
		t2, err := models.NewTransport(1, "heart", 2, 3, 4, time.Now())
		s.Require().NoError(err)

		s.Require().NoError(s.store.CreateTransport(s.ctx, t1))
		s.Require().NoError(s.store.CreateTransport(s.ctx, t2))
		s.EqualValues(1, t1.ID)
		s.EqualValues(2, t2.ID)
	})

	s.Run("ExecuteTransport validates before mutating", func() {
		tr, err := models.NewTransport(1, "kidney", 2, 3, 4, time.Now())
		s.Require().NoError(err)
		s.Require().NoError(s.store.CreateTransport(s.ctx, tr))

		now := time.Now()
		updated, err := s.store.ExecuteTransport(s.ctx, tr.ID,
			func(t *models.Transport) error { return t.CanSetStatus() },
			func(t *models.Transport) { t.ApplySetStatus(models.TransportStatusInTransit, "picked up", now) },
		)
		s.Require().NoError(err)
		s.Equal(models.TransportStatusInTransit, updated.Status)
		s.Equal("picked up", updated.Notes)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindTransport(s.ctx, 42)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *LogisticsStoreSuite) TestSnapshotRestore() {
	c, err := models.NewCourier(4, "Swift Logistics", "swift@example.com", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.store.CreateCourier(s.ctx, c))
	tr, err := models.NewTransport(1, "kidney", 2, 3, 4, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.store.CreateTransport(s.ctx, tr))

	couriers, transports, err := s.store.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Len(couriers, 1)
	s.Len(transports, 1)

	fresh := NewInMemory()
	s.Require().NoError(fresh.Restore(s.ctx, couriers, transports))

	next, err := models.NewTransport(1, "liver", 2, 3, 4, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(fresh.CreateTransport(s.ctx, next))
	s.EqualValues(2, next.ID)
}
