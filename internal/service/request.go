package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"logitrack/internal/domain"
	"logitrack/internal/repository"
)

// RequestService handles customer cargo requests awaiting business triage.
type RequestService struct {
	requestRepo repository.RequestRepository
}

// NewRequestService creates a new RequestService.
func NewRequestService(requestRepo repository.RequestRepository) *RequestService {
	return &RequestService{requestRepo: requestRepo}
}

// CreateRequestParams contains the parameters for submitting a request.
type CreateRequestParams struct {
	Name         string
	Type         string
	Size         domain.CargoSize
	Weight       float64
	Origin       string
	Destination  string
	DeliveryDate time.Time
}

// CreateRequest submits a new cargo request for the acting customer.
func (s *RequestService) CreateRequest(ctx context.Context, params CreateRequestParams, actor domain.Principal) (*domain.CargoRequest, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, ErrRoleNotAllowed
	}
	if err := validateShipmentFields(params.Name, params.Type, params.Size, params.Weight, params.Origin, params.Destination); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	req := &domain.CargoRequest{
		ID:           uuid.New().String(),
		Name:         params.Name,
		Type:         params.Type,
		Size:         params.Size,
		Weight:       params.Weight,
		Origin:       params.Origin,
		Destination:  params.Destination,
		DeliveryDate: params.DeliveryDate,
		CustomerID:   actor.ID,
		Status:       domain.RequestStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ListPending returns all requests awaiting triage, for businesses.
func (s *RequestService) ListPending(ctx context.Context, actor domain.Principal) ([]*domain.CargoRequest, error) {
	if actor.Role != domain.RoleBusiness {
		return nil, ErrRoleNotAllowed
	}
	return s.requestRepo.GetPending(ctx)
}

// ListOwn returns the acting customer's requests, regardless of status.
func (s *RequestService) ListOwn(ctx context.Context, actor domain.Principal) ([]*domain.CargoRequest, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, ErrRoleNotAllowed
	}
	return s.requestRepo.GetByCustomer(ctx, actor.ID)
}

// UpdateRequest applies a patch to a PENDING request owned by the
// acting customer. A foreign request reads as absent, never forbidden.
func (s *RequestService) UpdateRequest(ctx context.Context, requestID string, patch domain.RequestPatch, actor domain.Principal) (*domain.CargoRequest, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, ErrRoleNotAllowed
	}

	req, err := s.getOwned(ctx, requestID, actor.ID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.RequestStatusPending {
		return nil, ErrRequestNotPending
	}

	if patch.Name != nil {
		req.Name = *patch.Name
	}
	if patch.Type != nil {
		req.Type = *patch.Type
	}
	if patch.Size != nil {
		req.Size = *patch.Size
	}
	if patch.Weight != nil {
		req.Weight = *patch.Weight
	}
	if patch.Origin != nil {
		req.Origin = *patch.Origin
	}
	if patch.Destination != nil {
		req.Destination = *patch.Destination
	}
	if patch.DeliveryDate != nil {
		req.DeliveryDate = *patch.DeliveryDate
	}

	if err := validateShipmentFields(req.Name, req.Type, req.Size, req.Weight, req.Origin, req.Destination); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// DeleteRequest removes a PENDING request owned by the acting customer.
func (s *RequestService) DeleteRequest(ctx context.Context, requestID string, actor domain.Principal) error {
	if actor.Role != domain.RoleCustomer {
		return ErrRoleNotAllowed
	}

	req, err := s.getOwned(ctx, requestID, actor.ID)
	if err != nil {
		return err
	}
	if req.Status != domain.RequestStatusPending {
		return ErrRequestNotPending
	}

	return s.requestRepo.Delete(ctx, requestID, actor.ID)
}

// RejectRequest marks a PENDING request REJECTED. Any business may
// reject; requests are triaged from a shared queue.
func (s *RequestService) RejectRequest(ctx context.Context, requestID string, actor domain.Principal) (*domain.CargoRequest, error) {
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

	if err := s.requestRepo.SetStatus(ctx, requestID, domain.RequestStatusRejected); err != nil {
		return nil, err
	}

	req.Status = domain.RequestStatusRejected
	return req, nil
}

func (s *RequestService) getOwned(ctx context.Context, requestID, customerID string) (*domain.CargoRequest, error) {
	if requestID == "" {
		return nil, ErrInvalidRequestID
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != customerID {
		return nil, repository.ErrNotFound
	}
	return req, nil
}
