package repository

import (
	"context"

	"logitrack/internal/domain"
)

// UserRepository defines the persistence operations for the identity
// directory. The core reads only id and role; the rest serves the
// auth boundary and profile endpoints.
type UserRepository interface {
	// Create adds a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByRole retrieves all users with the given role.
	GetByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)

	// UpdateProfile updates the mutable profile fields.
	UpdateProfile(ctx context.Context, user *domain.User) error
}
