package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"organledger/internal/recipient/store"
	"organledger/pkg/domain"
	dErrors "organledger/pkg/domain-errors"
	"organledger/pkg/requestcontext"
)

const patient = domain.Principal("ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG")

type RecipientServiceSuite struct {
	suite.Suite
	svc *Service
	ctx context.Context
}

func (s *RecipientServiceSuite) SetupTest() {
	s.svc = New(store.NewInMemory())
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
}

func TestRecipientServiceSuite(t *testing.T) {
	suite.Run(t, new(RecipientServiceSuite))
}

func (s *RecipientServiceSuite) TestRegister() {
	s.Run("first registration gets ID 1", func() {
		r, err := s.svc.Register(s.ctx, patient, "Jane Doe", "B-", "heart", 8, 1)
		s.Require().NoError(err)
		s.EqualValues(1, r.ID)
		s.True(r.IsActive)
		s.Equal(patient, r.OwnerIdentity)
	})

	s.Run("empty name is invalid input", func() {
		_, err := s.svc.Register(s.ctx, patient, "", "B-", "heart", 8, 1)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("urgency outside 1..10 is invalid input", func() {
		for _, urgency := range []int{0, 11} {
			_, err := s.svc.Register(s.ctx, patient, "Jane Doe", "B-", "heart", urgency, 1)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})
}

func (s *RecipientServiceSuite) TestUpdateUrgency() {
	s.Run("updates within range", func() {
		r, err := s.svc.Register(s.ctx, patient, "Jane Doe", "B-", "heart", 8, 1)
		s.Require().NoError(err)

		updated, err := s.svc.UpdateUrgency(s.ctx, r.ID, 10)
		s.Require().NoError(err)
		s.Equal(10, updated.MedicalUrgency)
	})

	s.Run("rejects urgency 11", func() {
		r, err := s.svc.Register(s.ctx, patient, "Jane Doe", "B-", "heart", 8, 1)
		s.Require().NoError(err)

		_, err = s.svc.UpdateUrgency(s.ctx, r.ID, 11)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("unknown recipient is not found", func() {
		_, err := s.svc.UpdateUrgency(s.ctx, 999, 10)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *RecipientServiceSuite) TestDeactivate() {
	s.Run("marks inactive", func() {
		r, err := s.svc.Register(s.ctx, patient, "Jane Doe", "B-", "heart", 8, 1)
		s.Require().NoError(err)

		updated, err := s.svc.Deactivate(s.ctx, r.ID)
		s.Require().NoError(err)
		s.False(updated.IsActive)
	})

	s.Run("repeat deactivation is an idempotent success", func() {
		r, err := s.svc.Register(s.ctx, patient, "Jane Doe", "B-", "heart", 8, 1)
		s.Require().NoError(err)

		_, err = s.svc.Deactivate(s.ctx, r.ID)
		s.Require().NoError(err)
		again, err := s.svc.Deactivate(s.ctx, r.ID)
		s.Require().NoError(err)
		s.False(again.IsActive)
	})

	s.Run("unknown recipient is not found", func() {
		_, err := s.svc.Deactivate(s.ctx, 404)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *RecipientServiceSuite) TestHospitals() {
	s.Run("adds and fetches by explicit ID", func() {
		h, err := s.svc.AddHospital(s.ctx, 5, "General", "Springfield")
		s.Require().NoError(err)
		s.EqualValues(5, h.ID)

		found, err := s.svc.GetHospital(s.ctx, 5)
		s.Require().NoError(err)
		s.Equal("General", found.Name)
	})

	s.Run("duplicate ID conflicts", func() {
		_, err := s.svc.AddHospital(s.ctx, 9, "First", "North")
		s.Require().NoError(err)

		_, err = s.svc.AddHospital(s.ctx, 9, "Second", "South")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("absent hospital yields CodeNotFound", func() {
		_, err := s.svc.GetHospital(s.ctx, 123)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
