package model

import (
	"time"

	"github.com/google/uuid"
)

// Role determines what an authenticated user may do.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// User represents a registered account.
type User struct {
	ID           string
	Login        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// NewUser builds a user with a fresh identifier.
func NewUser(login, name, passwordHash string, role Role, now time.Time) *User {
	return &User{
		ID:           uuid.NewString(),
		Login:        login,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
	}
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsCustomer reports whether the actor holds the customer role.
func (a Actor) IsCustomer() bool {
	return a.Role == RoleCustomer
}
