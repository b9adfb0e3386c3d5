package domain

import (
	"fmt"
	"time"
)

// Role enumerates account roles. The set is closed: parsing an unknown code
// is an error, never a silent fallback.
type Role int

const (
	RoleAdmin      Role = 1
	RoleTechnician Role = 2
	RoleClient     Role = 3
)

// Name returns the canonical role label.
func (r Role) Name() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleTechnician:
		return "tecnico"
	case RoleClient:
		return "cliente"
	}
	return ""
}

// IsValid reports whether the code belongs to the closed role set.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTechnician, RoleClient:
		return true
	}
	return false
}

// ParseRole converts a stored role code into a Role.
func ParseRole(code int) (Role, error) {
	role := Role(code)
	if !role.IsValid() {
		return 0, fmt.Errorf("unknown role code %d", code)
	}
	return role, nil
}

// User is the domain model for anyone who can act on tickets: administrators,
// technicians and client contacts.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
	DeletedBy    *int64
}
