package repository

import (
	"context"

	"logitrack/internal/domain"
)

// RequestRepository defines the persistence operations for cargo requests.
type RequestRepository interface {
	// Create persists a new request.
	Create(ctx context.Context, req *domain.CargoRequest) error

	// GetByID retrieves a request by ID.
	GetByID(ctx context.Context, id string) (*domain.CargoRequest, error)

	// GetPending retrieves all requests awaiting triage.
	GetPending(ctx context.Context) ([]*domain.CargoRequest, error)

	// GetByCustomer retrieves all requests owned by a customer,
	// regardless of status.
	GetByCustomer(ctx context.Context, customerID string) ([]*domain.CargoRequest, error)

	// Update replaces the mutable fields of an existing request.
	Update(ctx context.Context, req *domain.CargoRequest) error

	// Delete removes a request owned by the given customer; returns
	// ErrNotFound when no such request exists for that owner.
	Delete(ctx context.Context, id, customerID string) error

	// SetStatus updates the triage status.
	SetStatus(ctx context.Context, id string, status domain.RequestStatus) error
}
