package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"organledger/internal/match/models"
	"organledger/pkg/platform/sentinel"
)

type MatchStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *MatchStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestMatchStoreSuite(t *testing.T) {
	suite.Run(t, new(MatchStoreSuite))
}

func (s *MatchStoreSuite) newMatch() *models.Match {
	m, err := models.NewMatch(1, 2, "kidney", 85, time.Now())
	s.Require().NoError(err)
	return m
}

func (s *MatchStoreSuite) TestCreationAndLookups() {
	s.Run("assigns monotonically increasing IDs from 1", func() {
		first := s.newMatch()
		second := s.newMatch()
		s.Require().NoError(s.store.Create(s.ctx, first))
		s.Require().NoError(s.store.Create(s.ctx, second))

		s.EqualValues(1, first.ID)
		s.EqualValues(2, second.ID)
	})

	s.Run("finds stored match by ID", func() {
		m := s.newMatch()
		s.Require().NoError(s.store.Create(s.ctx, m))

		found, err := s.store.FindByID(s.ctx, m.ID)
		s.Require().NoError(err)
		s.Equal(m.OrganType, found.OrganType)
		s.Equal(models.MatchStatusPending, found.Status)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, 999)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("lookups return copies, not live references", func() {
		m := s.newMatch()
		s.Require().NoError(s.store.Create(s.ctx, m))

		found, err := s.store.FindByID(s.ctx, m.ID)
		s.Require().NoError(err)
		found.Status = models.MatchStatusCompleted

		again, err := s.store.FindByID(s.ctx, m.ID)
		s.Require().NoError(err)
		s.Equal(models.MatchStatusPending, again.Status)
	})
}

func (s *MatchStoreSuite) TestExecute() {
	s.Run("applies mutation when validation passes", func() {
		m := s.newMatch()
		s.Require().NoError(s.store.Create(s.ctx, m))

		now := time.Now()
		updated, err := s.store.Execute(s.ctx, m.ID,
			func(m *models.Match) error { return m.CanAccept() },
			func(m *models.Match) { m.ApplyAccept(now) },
		)
		s.Require().NoError(err)
		s.Equal(models.MatchStatusAccepted, updated.Status)
	})

	s.Run("leaves record untouched when validation fails", func() {
		m := s.newMatch()
		s.Require().NoError(s.store.Create(s.ctx, m))
		_, err := s.store.Execute(s.ctx, m.ID,
			func(m *models.Match) error { return m.CanAccept() },
			func(m *models.Match) { m.ApplyAccept(time.Now()) },
		)
		s.Require().NoError(err)

		_, err = s.store.Execute(s.ctx, m.ID,
			func(m *models.Match) error { return m.CanReject() },
			func(m *models.Match) { m.ApplyReject(time.Now()) },
		)
		s.Require().Error(err)

		found, err := s.store.FindByID(s.ctx, m.ID)
		s.Require().NoError(err)
		s.Equal(models.MatchStatusAccepted, found.Status)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.Execute(s.ctx, 404,
			func(m *models.Match) error { return nil },
			func(m *models.Match) {},
		)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MatchStoreSuite) TestSnapshotRestore() {
	m1 := s.newMatch()
	m2 := s.newMatch()
	s.Require().NoError(s.store.Create(s.ctx, m1))
	s.Require().NoError(s.store.Create(s.ctx, m2))

	snap, err := s.store.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(snap, 2)
	s.EqualValues(1, snap[0].ID)

	fresh := NewInMemory()
	s.Require().NoError(fresh.Restore(s.ctx, snap))

	found, err := fresh.FindByID(s.ctx, m2.ID)
	s.Require().NoError(err)
	s.Equal(m2.OrganType, found.OrganType)

	// Allocation resumes past the restored IDs.
	m3 := s.newMatch()
	s.Require().NoError(fresh.Create(s.ctx, m3))
	s.EqualValues(3, m3.ID)
}
