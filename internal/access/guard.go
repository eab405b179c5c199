// Package access holds the contract-owner guard. A single owner principal is
// the only actor allowed to mutate registry state; every mutating coordinator
// operation consults the guard before any other validation.
package access

import (
	"sync"

	"organledger/pkg/domain"
	dErrors "organledger/pkg/domain-errors"
)

// Guard tracks the current contract owner. It is safe for concurrent use:
// reads take the read lock so reads during an ownership transfer observe
// either the old or the new owner, never a torn value.
type Guard struct {
	mu    sync.RWMutex
	owner domain.Principal
}

// NewGuard constructs a guard with the initial owner set at deployment.
func NewGuard(owner domain.Principal) *Guard {
	return &Guard{owner: owner}
}

// Owner returns the current owner principal.
func (g *Guard) Owner() domain.Principal {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.owner
}

// IsOwner reports whether caller is the current contract owner.
func (g *Guard) IsOwner(caller domain.Principal) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return !caller.Zero() && caller == g.owner
}

// Require returns CodeUnauthorized unless caller is the current owner.
// Services call this first, before input validation and referential checks.
func (g *Guard) Require(caller domain.Principal) error {
	if !g.IsOwner(caller) {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not the contract owner")
	}
	return nil
}

// Transfer hands ownership to newOwner. Only the current owner may transfer;
// the check and the swap happen under one lock so two racing transfers cannot
// both succeed against the same prior owner.
func (g *Guard) Transfer(caller, newOwner domain.Principal) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if caller.Zero() || caller != g.owner {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not the contract owner")
	}
	if newOwner.Zero() {
		return dErrors.New(dErrors.CodeInvalidInput, "new owner principal cannot be empty")
	}
	g.owner = newOwner
	return nil
}
