// Package service orchestrates the match registry: validation, the match
// lifecycle state machine, audit logging and metrics. Authorization lives one
// level up in the coordinator, which gates every mutating call.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"organledger/internal/match/models"
	"organledger/internal/platform/metrics"
	"organledger/pkg/domain"
	dErrors "organledger/pkg/domain-errors"
	"organledger/pkg/platform/sentinel"
	"organledger/pkg/requestcontext"
)

// Store is the match registry persistence contract.
type Store interface {
	Create(ctx context.Context, m *models.Match) error
	FindByID(ctx context.Context, id domain.MatchID) (*models.Match, error)
	Execute(ctx context.Context, id domain.MatchID, validate func(*models.Match) error, apply func(*models.Match)) (*models.Match, error)
}

// Service manages match proposals.
type Service struct {
	matches Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a Service.
func New(matches Store, opts ...Option) *Service {
	s := &Service{matches: matches}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates inputs and stores a new pending match, returning it with
// its assigned ID.
func (s *Service) Create(ctx context.Context, donorID uint64, recipientID domain.RecipientID, organType string, score int) (*models.Match, error) {
	m, err := models.NewMatch(donorID, recipientID, organType, score, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.matches.Create(ctx, m); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store match")
	}
	s.logAudit(ctx, "match.created", "match_id", m.ID, "organ_type", m.OrganType)
	if s.metrics != nil {
		s.metrics.MatchesCreated.Inc()
	}
	return m, nil
}

// Accept moves a pending match to accepted.
func (s *Service) Accept(ctx context.Context, id domain.MatchID) (*models.Match, error) {
	return s.transition(ctx, id, "match.accepted",
		(*models.Match).CanAccept, (*models.Match).ApplyAccept)
}

// Reject moves a pending match to rejected. Rejected is terminal.
func (s *Service) Reject(ctx context.Context, id domain.MatchID) (*models.Match, error) {
	return s.transition(ctx, id, "match.rejected",
		(*models.Match).CanReject, (*models.Match).ApplyReject)
}

// Complete moves an accepted match to completed. Completed is terminal.
func (s *Service) Complete(ctx context.Context, id domain.MatchID) (*models.Match, error) {
	return s.transition(ctx, id, "match.completed",
		(*models.Match).CanComplete, (*models.Match).ApplyComplete)
}

// Get returns the match, or a CodeNotFound error if absent. Read paths that
// must treat absence as an empty result translate the code at their boundary.
func (s *Service) Get(ctx context.Context, id domain.MatchID) (*models.Match, error) {
	m, err := s.matches.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "match not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load match")
	}
	return m, nil
}

// transition runs a Can/Apply pair inside the store's Execute so the state
// check and the mutation see the same record.
func (s *Service) transition(ctx context.Context, id domain.MatchID, event string,
	can func(*models.Match) error, apply func(*models.Match, time.Time)) (*models.Match, error) {

	now := requestcontext.Now(ctx)
	m, err := s.matches.Execute(ctx, id,
		func(m *models.Match) error { return can(m) },
		func(m *models.Match) { apply(m, now) },
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "match not found")
		}
		if dErrors.HasCode(err, dErrors.CodeInvalidState) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update match")
	}
	s.logAudit(ctx, event, "match_id", m.ID, "status", m.Status)
	s.incTransition(string(m.Status))
	return m, nil
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

func (s *Service) incTransition(status string) {
	if s.metrics != nil {
		s.metrics.MatchTransitions.WithLabelValues(status).Inc()
	}
}
