package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"logitrack/internal/domain"
	"logitrack/internal/redis"
	"logitrack/internal/repository"
)

// assignLockTTL bounds how long a crashed assignment attempt can keep a
// driver locked.
const assignLockTTL = 10 * time.Second

// AssignmentService is the sole authority for driver-assignment
// invariants and role-gated transitions. Both the business-assigns and
// driver-accepts paths go through it.
type AssignmentService struct {
	cargoRepo   repository.CargoRepository
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
	lockStore   redis.LockStoreInterface
	cacheStore  redis.CacheStoreInterface
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(
	cargoRepo repository.CargoRepository,
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
	lockStore redis.LockStoreInterface,
	cacheStore redis.CacheStoreInterface,
) *AssignmentService {
	return &AssignmentService{
		cargoRepo:   cargoRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		lockStore:   lockStore,
		cacheStore:  cacheStore,
	}
}

// AssignDriver assigns a driver to a cargo on behalf of a business.
// The per-driver lock serializes the active-cargo check with the write,
// so two concurrent assignments for the same driver cannot both pass.
func (s *AssignmentService) AssignDriver(ctx context.Context, cargoID, driverID string, actor domain.Principal) (*domain.Cargo, error) {
	if actor.Role != domain.RoleBusiness {
		return nil, ErrRoleNotAllowed
	}
	if cargoID == "" {
		return nil, ErrInvalidCargoID
	}
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	// The driver reference must resolve to a driver-role user.
	driver, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotADriver
		}
		return nil, err
	}
	if driver.Role != domain.RoleDriver {
		return nil, ErrNotADriver
	}

	cargo, err := s.cargoRepo.GetByID(ctx, cargoID)
	if err != nil {
		return nil, err
	}
	// A driver is set at most once per cycle. Only a DELIVERED cargo may
	// start a fresh cycle with a new driver.
	if cargo.Active() {
		return nil, ErrCargoAlreadyAssigned
	}

	locked, err := s.lockStore.AcquireDriverLock(ctx, driverID, assignLockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrAssignmentInProgress
	}
	defer func() {
		_ = s.lockStore.ReleaseDriverLock(ctx, driverID)
	}()

	active, err := s.cargoRepo.GetActiveByDriverID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrDriverHasActiveCargo
	}

	if err := s.cargoRepo.SetDriver(ctx, cargoID, driverID); err != nil {
		return nil, err
	}
	s.invalidateCargo(ctx, cargoID)

	cargo.DriverID = driverID
	cargo.Status = domain.CargoStatusPending
	return cargo, nil
}

// AcceptCargo lets a driver claim an unassigned cargo for themselves.
func (s *AssignmentService) AcceptCargo(ctx context.Context, cargoID string, actor domain.Principal) (*domain.Cargo, error) {
	if actor.Role != domain.RoleDriver {
		return nil, ErrRoleNotAllowed
	}
	if cargoID == "" {
		return nil, ErrInvalidCargoID
	}

	cargo, err := s.cargoRepo.GetByID(ctx, cargoID)
	if err != nil {
		return nil, err
	}
	if cargo.DriverID != "" {
		return nil, ErrCargoAlreadyAssigned
	}

	locked, err := s.lockStore.AcquireDriverLock(ctx, actor.ID, assignLockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrAssignmentInProgress
	}
	defer func() {
		_ = s.lockStore.ReleaseDriverLock(ctx, actor.ID)
	}()

	active, err := s.cargoRepo.GetActiveByDriverID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrDriverHasActiveCargo
	}

	// Conditional claim: another driver may have taken the cargo since
	// the read above. The lock covers our driver, not the cargo.
	if err := s.cargoRepo.ClaimUnassigned(ctx, cargoID, actor.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCargoAlreadyAssigned
		}
		return nil, err
	}
	s.invalidateCargo(ctx, cargoID)

	cargo.DriverID = actor.ID
	cargo.Status = domain.CargoStatusPending
	return cargo, nil
}

// ConvertRequest turns a PENDING cargo request into a cargo owned by the
// acting business. The request is retained with status ACCEPTED.
func (s *AssignmentService) ConvertRequest(ctx context.Context, requestID string, actor domain.Principal) (*domain.Cargo, error) {
	if actor.Role != domain.RoleBusiness {
		return nil, ErrRoleNotAllowed
	}
	if requestID == "" {
		return nil, ErrInvalidRequestID
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.RequestStatusPending {
		return nil, ErrRequestNotPending
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
		BusinessID:   actor.ID,
		CustomerID:   req.CustomerID,
		DeliveryDate: req.DeliveryDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.cargoRepo.Create(ctx, cargo); err != nil {
		return nil, err
	}

	if err := s.requestRepo.SetStatus(ctx, requestID, domain.RequestStatusAccepted); err != nil {
		return nil, err
	}

	return cargo, nil
}

// AvailableDrivers lists driver-role users with no active cargo.
func (s *AssignmentService) AvailableDrivers(ctx context.Context, actor domain.Principal) ([]*domain.User, error) {
	if actor.Role != domain.RoleBusiness {
		return nil, ErrRoleNotAllowed
	}

	drivers, err := s.userRepo.GetByRole(ctx, domain.RoleDriver)
	if err != nil {
		return nil, err
	}

	available := make([]*domain.User, 0, len(drivers))
	for _, d := range drivers {
		active, err := s.cargoRepo.GetActiveByDriverID(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		if active == nil {
			available = append(available, d)
		}
	}
	return available, nil
}

func (s *AssignmentService) invalidateCargo(ctx context.Context, cargoID string) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.InvalidateCargo(ctx, cargoID)
}
