package domain

import "time"

// Role enumerates the privilege class granted to a user. Roles are flat:
// STAFF does not inherit CLIENT routes and vice versa.
type Role string

const (
	RoleClient Role = "CLIENT"
	RoleStaff  Role = "STAFF"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleStaff:
		return true
	}
	return false
}

// User is the domain model for every authenticated actor, clients and staff
// alike. Email doubles as the login identifier and token subject.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
