// Package auth resolves whether an acting principal may operate on records
// belonging to a given owner. The principal is always passed explicitly; there
// is no ambient request context to consult.
package auth

import (
	"fintrack/internal/core"
)

// RoleAdmin grants access to every owner's records.
const RoleAdmin = "ADMIN"

// Principal identifies the acting user and the roles it holds.
type Principal struct {
	UserID string
	Roles  []string
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	for _, r := range p.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}

// Guard is the access check consumed by the core services.
type Guard struct{}

// NewGuard returns the owner-or-admin guard.
func NewGuard() Guard {
	return Guard{}
}

// Authorize passes when the principal is the owner of the addressed records
// or holds the admin role, and returns an AuthorizationError otherwise.
func (Guard) Authorize(p Principal, owner string) error {
	if p.UserID == owner || p.IsAdmin() {
		return nil
	}
	return &core.AuthorizationError{Principal: p.UserID, Owner: owner}
}
