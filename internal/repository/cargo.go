package repository

import (
	"context"
	"time"

	"logitrack/internal/domain"
)

// CargoRepository defines the persistence operations for cargo shipments.
type CargoRepository interface {
	// Create persists a new cargo.
	Create(ctx context.Context, cargo *domain.Cargo) error

	// GetByID retrieves a cargo by ID.
	GetByID(ctx context.Context, id string) (*domain.Cargo, error)

	// GetByBusiness retrieves all cargos owned by a business.
	GetByBusiness(ctx context.Context, businessID string) ([]*domain.Cargo, error)

	// GetByDriver retrieves all cargos assigned to a driver.
	GetByDriver(ctx context.Context, driverID string) ([]*domain.Cargo, error)

	// GetByCustomer retrieves all cargos destined for a customer.
	GetByCustomer(ctx context.Context, customerID string) ([]*domain.Cargo, error)

	// GetUnassigned retrieves all cargos with no driver.
	GetUnassigned(ctx context.Context) ([]*domain.Cargo, error)

	// GetActiveByDriverID returns the driver's active (non-DELIVERED)
	// cargo, or nil if the driver has none.
	GetActiveByDriverID(ctx context.Context, driverID string) (*domain.Cargo, error)

	// Update replaces the mutable fields of an existing cargo.
	Update(ctx context.Context, cargo *domain.Cargo) error

	// Delete removes a cargo.
	Delete(ctx context.Context, id string) error

	// SetDriver assigns a driver and resets status to PENDING,
	// starting a fresh assignment cycle.
	SetDriver(ctx context.Context, id, driverID string) error

	// ClaimUnassigned assigns a driver only if the cargo currently has
	// none; returns ErrNotFound when no unassigned cargo matched.
	ClaimUnassigned(ctx context.Context, id, driverID string) error

	// SetStatus updates the status; deliveredAt is stamped as the
	// delivery date when status is DELIVERED.
	SetStatus(ctx context.Context, id string, status domain.CargoStatus, deliveredAt time.Time) error

	// SetLocation updates the free-text location string.
	SetLocation(ctx context.Context, id, location string) error
}
