package models

import (
	"strings"
	"time"

	"organledger/pkg/domain"
	dErrors "organledger/pkg/domain-errors"
)

// TransportStatus is the lifecycle state of a transport assignment.
// Invariant: the value must be one of the allow-listed literals; arbitrary
// strings are rejected at the boundary, never stored.
type TransportStatus string

const (
	TransportStatusPreparing TransportStatus = "preparing"
	TransportStatusInTransit TransportStatus = "in-transit"
	TransportStatusCompleted TransportStatus = "completed"
	TransportStatusCancelled TransportStatus = "cancelled"
)

// validTransportStatuses is the single source of truth for the allow-list.
var validTransportStatuses = map[TransportStatus]bool{
	TransportStatusPreparing: true,
	TransportStatusInTransit: true,
	TransportStatusCompleted: true,
	TransportStatusCancelled: true,
}

// IsValid reports allow-list membership.
func (s TransportStatus) IsValid() bool { return validTransportStatuses[s] }

// Terminal reports whether no further transition leaves s. completed and
// cancelled end the transport's lifecycle.
func (s TransportStatus) Terminal() bool {
	return s == TransportStatusCompleted || s == TransportStatusCancelled
}

// ParseTransportStatus constructs a TransportStatus from external input.
// Returns CodeInvalidInput for empty or non-allow-listed values.
func ParseTransportStatus(s string) (TransportStatus, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "transport status cannot be empty")
	}
	status := TransportStatus(s)
	if !status.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown transport status %q", s)
	}
	return status, nil
}

// Transport is the logistics record moving an organ between hospitals.
//
// Invariants:
//   - CourierID referenced an existing, active courier at creation time
//   - Status is always an allow-listed literal
//   - Once Status is terminal it never changes again
//
// MatchID and the hospital IDs are recorded as given; they are logical
// references, not resolved against their registries.
type Transport struct {
	ID                    domain.TransportID `json:"id"`
	MatchID               domain.MatchID     `json:"match_id"`
	OrganType             string             `json:"organ_type"`
	SourceHospitalID      domain.HospitalID  `json:"source_hospital_id"`
	DestinationHospitalID domain.HospitalID  `json:"destination_hospital_id"`
	CourierID             domain.CourierID   `json:"courier_id"`
	Status                TransportStatus    `json:"status"`
	Notes                 string             `json:"notes"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
}

// NewTransport validates inputs and constructs a transport in preparing
// status. The courier referential check happens in the service, against the
// courier record, before this constructor runs. The ID is assigned by the
// store on creation.
func NewTransport(matchID domain.MatchID, organType string, source, destination domain.HospitalID, courierID domain.CourierID, now time.Time) (*Transport, error) {
	organType = strings.TrimSpace(organType)
	if organType == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "organ type cannot be empty")
	}
	return &Transport{
		MatchID:               matchID,
		OrganType:             organType,
		SourceHospitalID:      source,
		DestinationHospitalID: destination,
		CourierID:             courierID,
		Status:                TransportStatusPreparing,
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

// CanSetStatus checks that the current status still admits a change.
// Use with ApplySetStatus in Execute callbacks.
func (t *Transport) CanSetStatus() error {
	if t.Status.Terminal() {
		return dErrors.Newf(dErrors.CodeInvalidState, "transport is %s, no further transitions", t.Status)
	}
	return nil
}

// ApplySetStatus sets the status and overwrites the notes; the latest update
// wins. Call CanSetStatus first.
func (t *Transport) ApplySetStatus(next TransportStatus, notes string, now time.Time) {
	t.Status = next
	t.Notes = notes
	t.UpdatedAt = now
}
