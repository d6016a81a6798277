package domain

import (
	"slices"

	"github.com/google/uuid"
)

// Roles granted to accounts.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User is an account that can authenticate against the API.
// PasswordHash is a bcrypt hash and never leaves the service layer.
type User struct {
	ID           uuid.UUID
	Login        string
	PasswordHash string
	Roles        []string
}

// IsAdmin reports whether the user holds the administrative role.
func (u User) IsAdmin() bool {
	return slices.Contains(u.Roles, RoleAdmin)
}

// Identity is the authenticated caller of a request. It is resolved once at
// the HTTP boundary and passed explicitly to every operation that needs to
// know who is acting.
type Identity struct {
	UserID uuid.UUID
	Login  string
	Roles  []string
}

// IsAdmin reports whether the caller holds the administrative role.
func (i Identity) IsAdmin() bool {
	return slices.Contains(i.Roles, RoleAdmin)
}
