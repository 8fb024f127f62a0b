package domain

import "time"

// Role represents a user's role in the system.
type Role string

const (
	RoleBusiness Role = "business"
	RoleDriver   Role = "driver"
	RoleCustomer Role = "customer"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleBusiness, RoleDriver, RoleCustomer:
		return true
	}
	return false
}

// User represents an account in the identity directory.
type User struct {
	ID        string
	Username  string
	Email     string
	Password  string // bcrypt hash, never serialized
	Role      Role
	Contact   string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Principal is the authenticated caller resolved at the HTTP boundary.
// Core services trust it verbatim and never read ambient state.
type Principal struct {
	ID   string
	Role Role
}
