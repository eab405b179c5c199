package models

import (
	"strings"
	"time"

	"organledger/pkg/domain"
	dErrors "organledger/pkg/domain-errors"
)

// MatchStatus is the lifecycle state of a donor-recipient match proposal.
// Invariant: the value must be one of the defined statuses.
type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusAccepted  MatchStatus = "accepted"
	MatchStatusRejected  MatchStatus = "rejected"
	MatchStatusCompleted MatchStatus = "completed"
)

// matchTransitions is the single source of truth for legal status edges.
// rejected and completed are terminal: they appear in no edge list.
var matchTransitions = map[MatchStatus][]MatchStatus{
	MatchStatusPending:  {MatchStatusAccepted, MatchStatusRejected},
	MatchStatusAccepted: {MatchStatusCompleted},
}

// CanTransitionTo reports whether the edge from s to next is legal.
func (s MatchStatus) CanTransitionTo(next MatchStatus) bool {
	for _, allowed := range matchTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition leaves s.
func (s MatchStatus) Terminal() bool {
	return len(matchTransitions[s]) == 0
}

// MaxCompatibilityScore bounds the donor-recipient compatibility score.
const MaxCompatibilityScore = 100

// Match is a proposed donor-recipient pairing.
//
// Invariants:
//   - OrganType is non-empty
//   - CompatibilityScore is in [0, MaxCompatibilityScore]
//   - Status transitions only via matchTransitions edges
//   - CreatedAt is immutable after construction
type Match struct {
	ID                 domain.MatchID     `json:"id"`
	DonorID            uint64             `json:"donor_id"`
	RecipientID        domain.RecipientID `json:"recipient_id"`
	OrganType          string             `json:"organ_type"`
	CompatibilityScore int                `json:"compatibility_score"`
	Status             MatchStatus        `json:"status"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// NewMatch validates inputs and constructs a pending match. The ID is
// assigned by the store on creation.
func NewMatch(donorID uint64, recipientID domain.RecipientID, organType string, score int, now time.Time) (*Match, error) {
	organType = strings.TrimSpace(organType)
	if organType == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "organ type cannot be empty")
	}
	if score < 0 || score > MaxCompatibilityScore {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "compatibility score must be between 0 and %d", MaxCompatibilityScore)
	}
	return &Match{
		DonorID:            donorID,
		RecipientID:        recipientID,
		OrganType:          organType,
		CompatibilityScore: score,
		Status:             MatchStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// CanAccept checks the pending → accepted transition.
// Use with ApplyAccept in Execute callbacks.
func (m *Match) CanAccept() error {
	return m.canTransition(MatchStatusAccepted)
}

// ApplyAccept transitions the match to accepted. Call CanAccept first.
func (m *Match) ApplyAccept(now time.Time) {
	m.Status = MatchStatusAccepted
	m.UpdatedAt = now
}

// CanReject checks the pending → rejected transition.
func (m *Match) CanReject() error {
	return m.canTransition(MatchStatusRejected)
}

// ApplyReject transitions the match to rejected. Call CanReject first.
func (m *Match) ApplyReject(now time.Time) {
	m.Status = MatchStatusRejected
	m.UpdatedAt = now
}

// CanComplete checks the accepted → completed transition.
func (m *Match) CanComplete() error {
	return m.canTransition(MatchStatusCompleted)
}

// ApplyComplete transitions the match to completed. Call CanComplete first.
func (m *Match) ApplyComplete(now time.Time) {
	m.Status = MatchStatusCompleted
	m.UpdatedAt = now
}

func (m *Match) canTransition(next MatchStatus) error {
	if !m.Status.CanTransitionTo(next) {
		return dErrors.Newf(dErrors.CodeInvalidState, "match is %s, cannot move to %s", m.Status, next)
	}
	return nil
}
