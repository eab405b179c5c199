// Package coordinator exposes the public operation surface of the ledger.
// It is a thin dispatch layer: every mutating operation takes the caller
// principal explicitly, consults the access guard before any other check,
// serializes mutations behind a single lock, and hands the rest to the
// registry services. Reads bypass authorization entirely and translate
// absence into an empty result rather than a failure.
package coordinator

import (
	"context"
	"log/slog"
	"sync"

	"organledger/internal/access"
	logisticsmodels "organledger/internal/logistics/models"
	logistics "organledger/internal/logistics/service"
	matchmodels "organledger/internal/match/models"
	match "organledger/internal/match/service"
	"organledger/internal/platform/metrics"
	recipientmodels "organledger/internal/recipient/models"
	recipient "organledger/internal/recipient/service"
	"organledger/pkg/domain"
	dErrors "organledger/pkg/domain-errors"
)

// Committer persists the registries after a committed mutation. The ledger
// snapshotter implements it; a nil committer means memory-only operation.
type Committer interface {
	Commit(ctx context.Context) error
}

// Coordinator composes the three registries behind the access guard.
//
// The mutex supplies the total-order serialization the ledger substrate would
// otherwise provide: mutating operations run one at a time to completion,
// so no call ever observes another call's partial effect.
type Coordinator struct {
	mu         sync.Mutex
	guard      *access.Guard
	matches    *match.Service
	recipients *recipient.Service
	logistics  *logistics.Service
	committer  Committer
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(c *Coordinator)

// WithCommitter attaches a post-mutation persistence hook.
func WithCommitter(committer Committer) Option {
	return func(c *Coordinator) { c.committer = committer }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// New constructs a Coordinator.
func New(guard *access.Guard, matches *match.Service, recipients *recipient.Service, logisticsSvc *logistics.Service, opts ...Option) *Coordinator {
	c := &Coordinator{
		guard:      guard,
		matches:    matches,
		recipients: recipients,
		logistics:  logisticsSvc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// mutate wraps every mutating operation: serialize, authorize, run, commit.
// Authorization failure dominates all other checks, so an unauthorized call
// with an otherwise garbage payload still reports unauthorized.
func (c *Coordinator) mutate(ctx context.Context, caller domain.Principal, op func(ctx context.Context) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard.Require(caller); err != nil {
		return c.reject(err)
	}
	if err := op(ctx); err != nil {
		return c.reject(err)
	}
	if c.committer != nil {
		if err := c.committer.Commit(ctx); err != nil {
			return c.reject(dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist snapshot"))
		}
	}
	return nil
}

func (c *Coordinator) reject(err error) error {
	c.metrics.IncRejected(FailureCodeOf(err).String())
	return err
}

// Owner returns the current contract owner.
func (c *Coordinator) Owner() domain.Principal { return c.guard.Owner() }

// SetContractOwner transfers contract ownership to newOwner.
func (c *Coordinator) SetContractOwner(ctx context.Context, caller, newOwner domain.Principal) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Transfer carries its own owner check; the guard swap and the check
	// share one lock inside the guard.
	if err := c.guard.Transfer(caller, newOwner); err != nil {
		return c.reject(err)
	}
	if c.committer != nil {
		if err := c.committer.Commit(ctx); err != nil {
			return c.reject(dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist snapshot"))
		}
	}
	if c.logger != nil {
		c.logger.InfoContext(ctx, "ownership transferred",
			"event", "owner.transferred",
			"log_type", "audit",
			"previous_owner", string(caller),
			"new_owner", string(newOwner),
		)
	}
	if c.metrics != nil {
		c.metrics.OwnerTransfers.Inc()
	}
	return nil
}

// ---------------------------------------------------------------------------
// Match registry
// ---------------------------------------------------------------------------

// CreateMatch records a new pending donor-recipient match proposal.
func (c *Coordinator) CreateMatch(ctx context.Context, caller domain.Principal, donorID uint64, recipientID domain.RecipientID, organType string, score int) (domain.MatchID, error) {
	var id domain.MatchID
	err := c.mutate(ctx, caller, func(ctx context.Context) error {
		m, err := c.matches.Create(ctx, donorID, recipientID, organType, score)
		if err != nil {
			return err
		}
		id = m.ID
		return nil
	})
	return id, err
}

// AcceptMatch moves a pending match to accepted.
func (c *Coordinator) AcceptMatch(ctx context.Context, caller domain.Principal, id domain.MatchID) error {
	return c.mutate(ctx, caller, func(ctx context.Context) error {
		_, err := c.matches.Accept(ctx, id)
		return err
	})
}

// RejectMatch moves a pending match to rejected.
func (c *Coordinator) RejectMatch(ctx context.Context, caller domain.Principal, id domain.MatchID) error {
	return c.mutate(ctx, caller, func(ctx context.Context) error {
		_, err := c.matches.Reject(ctx, id)
		return err
	})
}

// CompleteMatch moves an accepted match to completed.
func (c *Coordinator) CompleteMatch(ctx context.Context, caller domain.Principal, id domain.MatchID) error {
	return c.mutate(ctx, caller, func(ctx context.Context) error {
		_, err := c.matches.Complete(ctx, id)
		return err
	})
}

// GetMatch returns the match, or nil when absent. Reads never fail on
// absence and never consult the guard.
func (c *Coordinator) GetMatch(ctx context.Context, id domain.MatchID) (*matchmodels.Match, error) {
	m, err := c.matches.Get(ctx, id)
	return absentAsNil(m, err)
}

// ---------------------------------------------------------------------------
// Recipient & hospital registry
// ---------------------------------------------------------------------------

// RegisterRecipient records a new active recipient.
func (c *Coordinator) RegisterRecipient(ctx context.Context, caller, ownerIdentity domain.Principal, name, bloodType, neededOrgan string, urgency int, hospitalID domain.HospitalID) (domain.RecipientID, error) {
	var id domain.RecipientID
	err := c.mutate(ctx, caller, func(ctx context.Context) error {
		r, err := c.recipients.Register(ctx, ownerIdentity, name, bloodType, neededOrgan, urgency, hospitalID)
		if err != nil {
			return err
		}
		id = r.ID
		return nil
	})
	return id, err
}

// UpdateUrgency changes a recipient's medical urgency.
func (c *Coordinator) UpdateUrgency(ctx context.Context, caller domain.Principal, id domain.RecipientID, urgency int) error {
	return c.mutate(ctx, caller, func(ctx context.Context) error {
		_, err := c.recipients.UpdateUrgency(ctx, id, urgency)
		return err
	})
}

// DeactivateRecipient marks a recipient inactive. Terminal.
func (c *Coordinator) DeactivateRecipient(ctx context.Context, caller domain.Principal, id domain.RecipientID) error {
	return c.mutate(ctx, caller, func(ctx context.Context) error {
		_, err := c.recipients.Deactivate(ctx, id)
		return err
	})
}

// AddHospital records a hospital directory entry under a caller-supplied ID.
func (c *Coordinator) AddHospital(ctx context.Context, caller domain.Principal, id domain.HospitalID, name, location string) error {
	return c.mutate(ctx, caller, func(ctx context.Context) error {
		_, err := c.recipients.AddHospital(ctx, id, name, location)
		return err
	})
}

// GetRecipient returns the recipient, or nil when absent.
func (c *Coordinator) GetRecipient(ctx context.Context, id domain.RecipientID) (*recipientmodels.Recipient, error) {
	r, err := c.recipients.GetRecipient(ctx, id)
	return absentAsNil(r, err)
}

// GetHospital returns the hospital entry, or nil when absent.
func (c *Coordinator) GetHospital(ctx context.Context, id domain.HospitalID) (*recipientmodels.Hospital, error) {
	h, err := c.recipients.GetHospital(ctx, id)
	return absentAsNil(h, err)
}

// ---------------------------------------------------------------------------
// Courier & transport registry
// ---------------------------------------------------------------------------

// AddCourier records an active courier under a caller-supplied ID.
func (c *Coordinator) AddCourier(ctx context.Context, caller domain.Principal, id domain.CourierID, name, contact string) error {
	return c.mutate(ctx, caller, func(ctx context.Context) error {
		_, err := c.logistics.AddCourier(ctx, id, name, contact)
		return err
	})
}

// DeactivateCourier marks a courier inactive. Terminal.
func (c *Coordinator) DeactivateCourier(ctx context.Context, caller domain.Principal, id domain.CourierID) error {
	return c.mutate(ctx, caller, func(ctx context.Context) error {
		_, err := c.logistics.DeactivateCourier(ctx, id)
		return err
	})
}

// CreateTransport records a new transport assignment. The courier reference
// must resolve to an existing, active courier.
func (c *Coordinator) CreateTransport(ctx context.Context, caller domain.Principal, matchID domain.MatchID, organType string, source, destination domain.HospitalID, courierID domain.CourierID) (domain.TransportID, error) {
	var id domain.TransportID
	err := c.mutate(ctx, caller, func(ctx context.Context) error {
		t, err := c.logistics.CreateTransport(ctx, matchID, organType, source, destination, courierID)
		if err != nil {
			return err
		}
		id = t.ID
		return nil
	})
	return id, err
}

// UpdateTransportStatus moves a transport to an allow-listed status and
// overwrites its notes.
func (c *Coordinator) UpdateTransportStatus(ctx context.Context, caller domain.Principal, id domain.TransportID, status, notes string) error {
	return c.mutate(ctx, caller, func(ctx context.Context) error {
		_, err := c.logistics.UpdateStatus(ctx, id, status, notes)
		return err
	})
}

// GetCourier returns the courier, or nil when absent.
func (c *Coordinator) GetCourier(ctx context.Context, id domain.CourierID) (*logisticsmodels.Courier, error) {
	courier, err := c.logistics.GetCourier(ctx, id)
	return absentAsNil(courier, err)
}

// GetTransport returns the transport, or nil when absent.
func (c *Coordinator) GetTransport(ctx context.Context, id domain.TransportID) (*logisticsmodels.Transport, error) {
	t, err := c.logistics.GetTransport(ctx, id)
	return absentAsNil(t, err)
}

// absentAsNil converts a CodeNotFound error into a nil record so read
// operations resolve absence as an empty result.
func absentAsNil[T any](v *T, err error) (*T, error) {
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}
