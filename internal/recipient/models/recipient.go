package models

import (
	"strings"
	"time"

	"organledger/pkg/domain"
	dErrors "organledger/pkg/domain-errors"
)

// Medical urgency bounds, inclusive.
const (
	MinUrgency = 1
	MaxUrgency = 10
)

// Recipient is a patient waiting for an organ.
//
// Invariants:
//   - Name is non-empty
//   - MedicalUrgency is in [MinUrgency, MaxUrgency]
//   - Deactivation is terminal: once IsActive is false it never flips back
//     (no reactivation operation exists)
//
// OwnerIdentity is the patient's own principal, distinct from the contract
// owner who performs the registration.
type Recipient struct {
	ID             domain.RecipientID `json:"id"`
	OwnerIdentity  domain.Principal   `json:"owner_identity"`
	Name           string             `json:"name"`
	BloodType      string             `json:"blood_type"`
	NeededOrgan    string             `json:"needed_organ"`
	MedicalUrgency int                `json:"medical_urgency"`
	HospitalID     domain.HospitalID  `json:"hospital_id"`
	IsActive       bool               `json:"is_active"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// NewRecipient validates inputs and constructs an active recipient. The ID is
// assigned by the store on creation. The hospital reference is recorded as
// given; it is not resolved against the hospital directory.
func NewRecipient(owner domain.Principal, name, bloodType, neededOrgan string, urgency int, hospitalID domain.HospitalID, now time.Time) (*Recipient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "recipient name cannot be empty")
	}
	if err := ValidateUrgency(urgency); err != nil {
		return nil, err
	}
	return &Recipient{
		OwnerIdentity:  owner,
		Name:           name,
		BloodType:      bloodType,
		NeededOrgan:    neededOrgan,
		MedicalUrgency: urgency,
		HospitalID:     hospitalID,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// ValidateUrgency enforces the urgency range shared by registration and
// urgency updates.
func ValidateUrgency(urgency int) error {
	if urgency < MinUrgency || urgency > MaxUrgency {
		return dErrors.Newf(dErrors.CodeInvalidInput, "medical urgency must be between %d and %d", MinUrgency, MaxUrgency)
	}
	return nil
}

// ApplyUrgency updates the urgency. Validate with ValidateUrgency first.
func (r *Recipient) ApplyUrgency(urgency int, now time.Time) {
	r.MedicalUrgency = urgency
	r.UpdatedAt = now
}

// ApplyDeactivation marks the recipient inactive. Deactivating an already
// inactive recipient is a no-op; the timestamp only moves on a real change.
func (r *Recipient) ApplyDeactivation(now time.Time) {
	if !r.IsActive {
		return
	}
	r.IsActive = false
	r.UpdatedAt = now
}
