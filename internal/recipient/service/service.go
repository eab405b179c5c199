// Package service orchestrates the recipient and hospital registry.
package service

import (
	"context"
	"errors"
	"log/slog"

	"organledger/internal/platform/metrics"
	"organledger/internal/recipient/models"
	"organledger/pkg/domain"
	dErrors "organledger/pkg/domain-errors"
	"organledger/pkg/platform/sentinel"
	"organledger/pkg/requestcontext"
)

// Store is the recipient/hospital registry persistence contract.
type Store interface {
	CreateRecipient(ctx context.Context, r *models.Recipient) error
	FindRecipient(ctx context.Context, id domain.RecipientID) (*models.Recipient, error)
	ExecuteRecipient(ctx context.Context, id domain.RecipientID, validate func(*models.Recipient) error, apply func(*models.Recipient)) (*models.Recipient, error)
	CreateHospital(ctx context.Context, h *models.Hospital) error
	FindHospital(ctx context.Context, id domain.HospitalID) (*models.Hospital, error)
}

// Service manages recipient records and the hospital directory.
type Service struct {
	registry Store
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a Service.
func New(registry Store, opts ...Option) *Service {
	s := &Service{registry: registry}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates inputs and stores a new active recipient, returning it
// with its assigned ID. The hospital reference is recorded as given.
func (s *Service) Register(ctx context.Context, owner domain.Principal, name, bloodType, neededOrgan string, urgency int, hospitalID domain.HospitalID) (*models.Recipient, error) {
	r, err := models.NewRecipient(owner, name, bloodType, neededOrgan, urgency, hospitalID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.registry.CreateRecipient(ctx, r); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store recipient")
	}
	s.logAudit(ctx, "recipient.registered", "recipient_id", r.ID, "needed_organ", r.NeededOrgan)
	if s.metrics != nil {
		s.metrics.RecipientsRegistered.Inc()
	}
	return r, nil
}

// UpdateUrgency changes a recipient's medical urgency. The store resolves
// the record before the range check runs, so an unknown recipient reports
// not-found even when the urgency value is also out of range.
func (s *Service) UpdateUrgency(ctx context.Context, id domain.RecipientID, urgency int) (*models.Recipient, error) {
	now := requestcontext.Now(ctx)
	r, err := s.registry.ExecuteRecipient(ctx, id,
		func(*models.Recipient) error { return models.ValidateUrgency(urgency) },
		func(r *models.Recipient) { r.ApplyUrgency(urgency, now) },
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "recipient not found")
		}
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update urgency")
	}
	s.logAudit(ctx, "recipient.urgency_updated", "recipient_id", r.ID, "urgency", r.MedicalUrgency)
	return r, nil
}

// Deactivate marks a recipient inactive. Deactivation is terminal; repeating
// it on an already-inactive recipient succeeds as a no-op.
func (s *Service) Deactivate(ctx context.Context, id domain.RecipientID) (*models.Recipient, error) {
	now := requestcontext.Now(ctx)
	r, err := s.registry.ExecuteRecipient(ctx, id,
		func(*models.Recipient) error { return nil },
		func(r *models.Recipient) { r.ApplyDeactivation(now) },
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "recipient not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to deactivate recipient")
	}
	s.logAudit(ctx, "recipient.deactivated", "recipient_id", r.ID)
	return r, nil
}

// AddHospital stores a directory entry under its caller-supplied ID.
// A duplicate ID is rejected with CodeConflict.
func (s *Service) AddHospital(ctx context.Context, id domain.HospitalID, name, location string) (*models.Hospital, error) {
	h, err := models.NewHospital(id, name, location, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.registry.CreateHospital(ctx, h); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Newf(dErrors.CodeConflict, "hospital id %d is already taken", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store hospital")
	}
	s.logAudit(ctx, "hospital.added", "hospital_id", h.ID)
	if s.metrics != nil {
		s.metrics.HospitalsAdded.Inc()
	}
	return h, nil
}

// GetRecipient returns the recipient, or a CodeNotFound error if absent.
func (s *Service) GetRecipient(ctx context.Context, id domain.RecipientID) (*models.Recipient, error) {
	r, err := s.registry.FindRecipient(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "recipient not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load recipient")
	}
	return r, nil
}

// GetHospital returns the hospital entry, or a CodeNotFound error if absent.
func (s *Service) GetHospital(ctx context.Context, id domain.HospitalID) (*models.Hospital, error) {
	h, err := s.registry.FindHospital(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "hospital not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load hospital")
	}
	return h, nil
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if s.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
}
