package models

import (
	"strings"
	"time"

	"organledger/pkg/domain"
	dErrors "organledger/pkg/domain-errors"
)

// Hospital is a directory entry. Its ID is supplied by the caller at creation
// time, unlike the auto-incremented registries; the store rejects duplicates.
type Hospital struct {
	ID        domain.HospitalID `json:"id"`
	Name      string            `json:"name"`
	Location  string            `json:"location"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewHospital validates inputs and constructs a directory entry.
func NewHospital(id domain.HospitalID, name, location string, now time.Time) (*Hospital, error) {
	if id == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "hospital id must be positive")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "hospital name cannot be empty")
	}
	return &Hospital{
		ID:        id,
		Name:      name,
		Location:  location,
		CreatedAt: now,
	}, nil
}
