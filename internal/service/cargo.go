package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"logitrack/internal/domain"
	"logitrack/internal/redis"
	"logitrack/internal/repository"
)

// CargoService handles cargo record operations: creation, role-scoped
// listings, owner-gated edits, status/location updates and tracking.
type CargoService struct {
	cargoRepo  repository.CargoRepository
	cacheStore redis.CacheStoreInterface

	// allowTrackDelivered keeps tracking open after delivery. The
	// stricter variant rejects trackers once the cargo is delivered.
	allowTrackDelivered bool
}

// NewCargoService creates a new CargoService.
func NewCargoService(cargoRepo repository.CargoRepository, cacheStore redis.CacheStoreInterface, allowTrackDelivered bool) *CargoService {
	return &CargoService{
		cargoRepo:           cargoRepo,
		cacheStore:          cacheStore,
		allowTrackDelivered: allowTrackDelivered,
	}
}

// CreateCargoRequest contains the parameters for creating a cargo.
type CreateCargoRequest struct {
	Name         string
	Type         string
	Size         domain.CargoSize
	Weight       float64
	Origin       string
	Destination  string
	CustomerID   string
	DeliveryDate time.Time
}

// CreateCargo registers a new shipment owned by the acting business.
func (s *CargoService) CreateCargo(ctx context.Context, req CreateCargoRequest, actor domain.Principal) (*domain.Cargo, error) {
	if actor.Role != domain.RoleBusiness {
		return nil, ErrRoleNotAllowed
	}
	if err := validateShipmentFields(req.Name, req.Type, req.Size, req.Weight, req.Origin, req.Destination); err != nil {
		return nil, err
	}
	if req.CustomerID == "" {
		return nil, ErrInvalidCustomerID
	}

	now := time.Now().UTC()
	cargo := &domain.Cargo{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Type:         req.Type,
		Size:         req.Size,
		Weight:       req.Weight,
		Origin:       req.Origin,
		Destination:  req.Destination,
		Status:       domain.CargoStatusPending,
		Location:     "",
		BusinessID:   actor.ID,
		CustomerID:   req.CustomerID,
		DeliveryDate: req.DeliveryDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.cargoRepo.Create(ctx, cargo); err != nil {
		return nil, err
	}
	return cargo, nil
}

// CargoPatch carries the fields a business may edit on its own cargo.
// Nil pointers leave the field untouched.
type CargoPatch struct {
	Name         *string
	Type         *string
	Size         *domain.CargoSize
	Weight       *float64
	Origin       *string
	Destination  *string
	DeliveryDate *time.Time
}

// UpdateCargo applies a patch to a cargo owned by the acting business.
func (s *CargoService) UpdateCargo(ctx context.Context, cargoID string, patch CargoPatch, actor domain.Principal) (*domain.Cargo, error) {
	if actor.Role != domain.RoleBusiness {
		return nil, ErrRoleNotAllowed
	}
	if cargoID == "" {
		return nil, ErrInvalidCargoID
	}

	cargo, err := s.cargoRepo.GetByID(ctx, cargoID)
	if err != nil {
		return nil, err
	}
	if cargo.BusinessID != actor.ID {
		return nil, ErrNotCargoOwner
	}

	if patch.Name != nil {
		cargo.Name = *patch.Name
	}
	if patch.Type != nil {
		cargo.Type = *patch.Type
	}
	if patch.Size != nil {
		cargo.Size = *patch.Size
	}
	if patch.Weight != nil {
		cargo.Weight = *patch.Weight
	}
	if patch.Origin != nil {
		cargo.Origin = *patch.Origin
	}
	if patch.Destination != nil {
		cargo.Destination = *patch.Destination
	}
	if patch.DeliveryDate != nil {
		cargo.DeliveryDate = *patch.DeliveryDate
	}

	if err := validateShipmentFields(cargo.Name, cargo.Type, cargo.Size, cargo.Weight, cargo.Origin, cargo.Destination); err != nil {
		return nil, err
	}

	if err := s.cargoRepo.Update(ctx, cargo); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cargoID)
	return cargo, nil
}

// DeleteCargo removes a cargo owned by the acting business.
func (s *CargoService) DeleteCargo(ctx context.Context, cargoID string, actor domain.Principal) error {
	if actor.Role != domain.RoleBusiness {
		return ErrRoleNotAllowed
	}
	if cargoID == "" {
		return ErrInvalidCargoID
	}

	cargo, err := s.cargoRepo.GetByID(ctx, cargoID)
	if err != nil {
		return err
	}
	if cargo.BusinessID != actor.ID {
		return ErrNotCargoOwner
	}

	if err := s.cargoRepo.Delete(ctx, cargoID); err != nil {
		return err
	}
	s.invalidate(ctx, cargoID)
	return nil
}

// ListForPrincipal returns the caller's cargos scoped by role: owned
// for businesses, assigned for drivers, destined for customers.
func (s *CargoService) ListForPrincipal(ctx context.Context, actor domain.Principal) ([]*domain.Cargo, error) {
	switch actor.Role {
	case domain.RoleBusiness:
		return s.cargoRepo.GetByBusiness(ctx, actor.ID)
	case domain.RoleDriver:
		return s.cargoRepo.GetByDriver(ctx, actor.ID)
	case domain.RoleCustomer:
		return s.cargoRepo.GetByCustomer(ctx, actor.ID)
	default:
		return nil, ErrRoleNotAllowed
	}
}

// ListUnassigned returns all cargos with no driver.
func (s *CargoService) ListUnassigned(ctx context.Context) ([]*domain.Cargo, error) {
	return s.cargoRepo.GetUnassigned(ctx)
}

// UpdateStatus sets the cargo status. DELIVERED stamps the delivery
// date and implicitly frees the driver for new assignments.
func (s *CargoService) UpdateStatus(ctx context.Context, cargoID string, status domain.CargoStatus, actor domain.Principal) (*domain.Cargo, error) {
	if actor.Role != domain.RoleBusiness && actor.Role != domain.RoleDriver {
		return nil, ErrRoleNotAllowed
	}
	if cargoID == "" {
		return nil, ErrInvalidCargoID
	}
	if !domain.ValidCargoStatus(status) {
		return nil, ErrInvalidStatus
	}

	cargo, err := s.cargoRepo.GetByID(ctx, cargoID)
	if err != nil {
		return nil, err
	}

	deliveredAt := time.Now().UTC()
	if err := s.cargoRepo.SetStatus(ctx, cargoID, status, deliveredAt); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cargoID)

	cargo.Status = status
	if status == domain.CargoStatusDelivered {
		cargo.DeliveryDate = deliveredAt
	}
	return cargo, nil
}

// UpdateLocation sets the free-text location string. The "lat,lng"
// shape is a caller convention, not enforced here.
func (s *CargoService) UpdateLocation(ctx context.Context, cargoID, location string, actor domain.Principal) (*domain.Cargo, error) {
	if actor.Role != domain.RoleBusiness && actor.Role != domain.RoleDriver {
		return nil, ErrRoleNotAllowed
	}
	if cargoID == "" {
		return nil, ErrInvalidCargoID
	}

	cargo, err := s.cargoRepo.GetByID(ctx, cargoID)
	if err != nil {
		return nil, err
	}

	if err := s.cargoRepo.SetLocation(ctx, cargoID, location); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cargoID)

	cargo.Location = location
	return cargo, nil
}

// Track returns a tracking snapshot for any caller, served from cache
// when fresh.
func (s *CargoService) Track(ctx context.Context, cargoID string) (*redis.CachedCargo, error) {
	if cargoID == "" {
		return nil, ErrInvalidCargoID
	}

	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetCargo(ctx, cargoID)
		if err == nil && cached != nil {
			if !s.allowTrackDelivered && cached.Status == string(domain.CargoStatusDelivered) {
				return nil, ErrCargoDelivered
			}
			return cached, nil
		}
	}

	cargo, err := s.cargoRepo.GetByID(ctx, cargoID)
	if err != nil {
		return nil, err
	}
	if !s.allowTrackDelivered && cargo.Status == domain.CargoStatusDelivered {
		return nil, ErrCargoDelivered
	}

	snapshot := &redis.CachedCargo{
		ID:          cargo.ID,
		Name:        cargo.Name,
		Status:      string(cargo.Status),
		Location:    cargo.Location,
		Origin:      cargo.Origin,
		Destination: cargo.Destination,
		DriverID:    cargo.DriverID,
	}
	if !cargo.DeliveryDate.IsZero() {
		snapshot.DeliveryDate = cargo.DeliveryDate.Format(time.RFC3339)
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetCargo(ctx, snapshot)
	}
	return snapshot, nil
}

func (s *CargoService) invalidate(ctx context.Context, cargoID string) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.InvalidateCargo(ctx, cargoID)
}

// validateShipmentFields checks the fields shared by cargos and
// requests: all present, positive weight, known size class.
func validateShipmentFields(name, typ string, size domain.CargoSize, weight float64, origin, destination string) error {
	if name == "" || typ == "" || size == "" || origin == "" || destination == "" {
		return ErrMissingRequiredFields
	}
	if weight <= 0 {
		return ErrInvalidWeight
	}
	if !domain.ValidCargoSize(size) {
		return ErrInvalidSize
	}
	return nil
}
