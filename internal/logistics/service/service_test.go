package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"organledger/internal/logistics/models"
	"organledger/internal/logistics/store"
	dErrors "organledger/pkg/domain-errors"
	"organledger/pkg/requestcontext"
)

type LogisticsServiceSuite struct {
	suite.Suite
	svc *Service
	ctx context.Context
}

func (s *LogisticsServiceSuite) SetupTest() {
	s.svc = New(store.NewInMemory())
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
}

func (s *LogisticsServiceSuite) SetupSubTest() {
	s.SetupTest()
}

func TestLogisticsServiceSuite(t *testing.T) {
	suite.Run(t, new(LogisticsServiceSuite))
}

func (s *LogisticsServiceSuite) TestAddCourier() {
	s.Run("starts active under explicit ID", func() {
		c, err := s.svc.AddCourier(s.ctx, 4, "Swift Logistics", "swift@example.com")
		s.Require().NoError(err)
		s.EqualValues(4, c.ID)
		s.True(c.IsActive)
	})

	s.Run("duplicate ID conflicts", func() {
		_, err := s.svc.AddCourier(s.ctx, 6, "First", "a@example.com")
		s.Require().NoError(err)

		_, err = s.svc.AddCourier(s.ctx, 6, "Second", "b@example.com")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *LogisticsServiceSuite) TestDeactivateCourier() {
	s.Run("marks inactive, repeat is a no-op success", func() {
		_, err := s.svc.AddCourier(s.ctx, 4, "Swift Logistics", "swift@example.com")
		s.Require().NoError(err)

		c, err := s.svc.DeactivateCourier(s.ctx, 4)
		s.Require().NoError(err)
		s.False(c.IsActive)

		c, err = s.svc.DeactivateCourier(s.ctx, 4)
		s.Require().NoError(err)
		s.False(c.IsActive)
	})

	s.Run("unknown courier is not found", func() {
		_, err := s.svc.DeactivateCourier(s.ctx, 999)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *LogisticsServiceSuite) TestCreateTransport() {
	s.Run("succeeds against an active courier", func() {
		_, err := s.svc.AddCourier(s.ctx, 4, "Swift Logistics", "swift@example.com")
		s.Require().NoError(err)

		t, err := s.svc.CreateTransport(s.ctx, 1, "kidney", 2, 3, 4)
		s.Require().NoError(err)
		s.EqualValues(1, t.ID)
		s.Equal(models.TransportStatusPreparing, t.Status)
	})

	s.Run("nonexistent courier is not found", func() {
		_, err := s.svc.CreateTransport(s.ctx, 1, "kidney", 2, 3, 999)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("inactive courier is an invalid state, not a not-found", func() {
		_, err := s.svc.AddCourier(s.ctx, 4, "Swift Logistics", "swift@example.com")
		s.Require().NoError(err)
		_, err = s.svc.DeactivateCourier(s.ctx, 4)
		s.Require().NoError(err)

		_, err = s.svc.CreateTransport(s.ctx, 1, "kidney", 2, 3, 4)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
		s.False(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("courier check precedes organ type validation", func() {
		// Bad organ type AND unknown courier: the courier lookup wins.
		_, err := s.svc.CreateTransport(s.ctx, 1, "", 2, 3, 999)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *LogisticsServiceSuite) TestUpdateStatus() {
	s.Run("applies status and notes together", func() {
		_, err := s.svc.AddCourier(s.ctx, 4, "Swift Logistics", "swift@example.com")
		s.Require().NoError(err)
		tr, err := s.svc.CreateTransport(s.ctx, 1, "kidney", 2, 3, 4)
		s.Require().NoError(err)

		updated, err := s.svc.UpdateStatus(s.ctx, tr.ID, "in-transit", "Organ picked up")
		s.Require().NoError(err)
		s.Equal(models.TransportStatusInTransit, updated.Status)
		s.Equal("Organ picked up", updated.Notes)
	})

	s.Run("rejects the literal invalid-status", func() {
		_, err := s.svc.AddCourier(s.ctx, 4, "Swift Logistics", "swift@example.com")
		s.Require().NoError(err)
		tr, err := s.svc.CreateTransport(s.ctx, 1, "kidney", 2, 3, 4)
		s.Require().NoError(err)

		_, err = s.svc.UpdateStatus(s.ctx, tr.ID, "invalid-status", "notes")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		// Notes were not applied on the failed update.
		found, err := s.svc.GetTransport(s.ctx, tr.ID)
		s.Require().NoError(err)
		s.Empty(found.Notes)
	})

	s.Run("unknown transport is not found even with a bad literal", func() {
		_, err := s.svc.UpdateStatus(s.ctx, 999, "invalid-status", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("terminal transport rejects further updates", func() {
		_, err := s.svc.AddCourier(s.ctx, 4, "Swift Logistics", "swift@example.com")
		s.Require().NoError(err)
		tr, err := s.svc.CreateTransport(s.ctx, 1, "kidney", 2, 3, 4)
		s.Require().NoError(err)

		_, err = s.svc.UpdateStatus(s.ctx, tr.ID, "completed", "delivered")
		s.Require().NoError(err)

		_, err = s.svc.UpdateStatus(s.ctx, tr.ID, "in-transit", "again")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})
}

func (s *LogisticsServiceSuite) TestReads() {
	s.Run("absent courier and transport yield CodeNotFound", func() {
		_, err := s.svc.GetCourier(s.ctx, 1)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

		_, err = s.svc.GetTransport(s.ctx, 1)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
