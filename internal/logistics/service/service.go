// Package service orchestrates the courier and transport registry. The one
// enforced referential check in the system lives here: a transport can only
// be created against an existing, active courier, and existence is checked
// before activity so the two failures stay distinguishable.
package service

import (
	"context"
	"errors"
	"log/slog"

	"organledger/internal/logistics/models"
	"organledger/internal/platform/metrics"
	"organledger/pkg/domain"
	dErrors "organledger/pkg/domain-errors"
	"organledger/pkg/platform/sentinel"
	"organledger/pkg/requestcontext"
)

// Store is the courier/transport registry persistence contract.
type Store interface {
	CreateCourier(ctx context.Context, c *models.Courier) error
	FindCourier(ctx context.Context, id domain.CourierID) (*models.Courier, error)
	ExecuteCourier(ctx context.Context, id domain.CourierID, validate func(*models.Courier) error, apply func(*models.Courier)) (*models.Courier, error)
	CreateTransport(ctx context.Context, t *models.Transport) error
	FindTransport(ctx context.Context, id domain.TransportID) (*models.Transport, error)
	ExecuteTransport(ctx context.Context, id domain.TransportID, validate func(*models.Transport) error, apply func(*models.Transport)) (*models.Transport, error)
}

// Service manages couriers and transport assignments.
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

// AddCourier stores a courier under its caller-supplied ID, starting active.
// A duplicate ID is rejected with CodeConflict.
func (s *Service) AddCourier(ctx context.Context, id domain.CourierID, name, contact string) (*models.Courier, error) {
	c, err := models.NewCourier(id, name, contact, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.registry.CreateCourier(ctx, c); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Newf(dErrors.CodeConflict, "courier id %d is already taken", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store courier")
	}
	s.logAudit(ctx, "courier.added", "courier_id", c.ID)
	if s.metrics != nil {
		s.metrics.CouriersAdded.Inc()
	}
	return c, nil
}

// DeactivateCourier marks a courier inactive. Deactivation is terminal;
// repeating it is an idempotent success.
func (s *Service) DeactivateCourier(ctx context.Context, id domain.CourierID) (*models.Courier, error) {
	now := requestcontext.Now(ctx)
	c, err := s.registry.ExecuteCourier(ctx, id,
		func(*models.Courier) error { return nil },
		func(c *models.Courier) { c.ApplyDeactivation(now) },
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "courier not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to deactivate courier")
	}
	s.logAudit(ctx, "courier.deactivated", "courier_id", c.ID)
	return c, nil
}

// CreateTransport resolves the courier reference and stores a new transport
// in preparing status. Check order is fixed: courier existence (CodeNotFound)
// strictly before courier activity (CodeInvalidState), before any input
// validation of the transport itself.
func (s *Service) CreateTransport(ctx context.Context, matchID domain.MatchID, organType string, source, destination domain.HospitalID, courierID domain.CourierID) (*models.Transport, error) {
	courier, err := s.registry.FindCourier(ctx, courierID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "courier not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve courier")
	}
	if !courier.IsActive {
		return nil, dErrors.New(dErrors.CodeInvalidState, "courier is not active")
	}

	t, err := models.NewTransport(matchID, organType, source, destination, courierID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.registry.CreateTransport(ctx, t); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store transport")
	}
	s.logAudit(ctx, "transport.created", "transport_id", t.ID, "match_id", t.MatchID, "courier_id", t.CourierID)
	if s.metrics != nil {
		s.metrics.TransportsCreated.Inc()
	}
	return t, nil
}

// UpdateStatus moves a transport to an allow-listed status and overwrites the
// notes. Notes are only applied when the status change lands.
func (s *Service) UpdateStatus(ctx context.Context, id domain.TransportID, status, notes string) (*models.Transport, error) {
	next, err := models.ParseTransportStatus(status)
	if err != nil {
		// Resolve the record first so an unknown transport reports
		// not-found ahead of the literal check.
		if _, findErr := s.registry.FindTransport(ctx, id); errors.Is(findErr, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "transport not found")
		}
		return nil, err
	}

	now := requestcontext.Now(ctx)
	t, err := s.registry.ExecuteTransport(ctx, id,
		func(t *models.Transport) error { return t.CanSetStatus() },
		func(t *models.Transport) { t.ApplySetStatus(next, notes, now) },
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "transport not found")
		}
		if dErrors.HasCode(err, dErrors.CodeInvalidState) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update transport")
	}
	s.logAudit(ctx, "transport.status_updated", "transport_id", t.ID, "status", t.Status)
	if s.metrics != nil {
		s.metrics.TransportUpdates.Inc()
	}
	return t, nil
}

// GetCourier returns the courier, or a CodeNotFound error if absent.
func (s *Service) GetCourier(ctx context.Context, id domain.CourierID) (*models.Courier, error) {
	c, err := s.registry.FindCourier(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "courier not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load courier")
	}
	return c, nil
}

// GetTransport returns the transport, or a CodeNotFound error if absent.
func (s *Service) GetTransport(ctx context.Context, id domain.TransportID) (*models.Transport, error) {
	t, err := s.registry.FindTransport(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "transport not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load transport")
	}
	return t, nil
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
