package models

import (
	"strings"
	"time"

	"organledger/pkg/domain"
	dErrors "organledger/pkg/domain-errors"
)

// Courier moves organs between hospitals. Its ID is supplied by the caller at
// creation time; deactivation is terminal.
type Courier struct {
	ID        domain.CourierID `json:"id"`
	Name      string           `json:"name"`
	Contact   string           `json:"contact"`
	IsActive  bool             `json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewCourier validates inputs and constructs an active courier.
func NewCourier(id domain.CourierID, name, contact string, now time.Time) (*Courier, error) {
	if id == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "courier id must be positive")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "courier name cannot be empty")
	}
	return &Courier{
		ID:        id,
		Name:      name,
		Contact:   contact,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ApplyDeactivation marks the courier inactive. Repeat deactivation is a
// no-op; the timestamp only moves on a real change.
func (c *Courier) ApplyDeactivation(now time.Time) {
	if !c.IsActive {
		return
	}
	c.IsActive = false
	c.UpdatedAt = now
}
