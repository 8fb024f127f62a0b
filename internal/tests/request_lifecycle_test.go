package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"logitrack/internal/domain"
	"logitrack/internal/repository"
	"logitrack/internal/service"
)

var customerActor = domain.Principal{ID: "customer-1", Role: domain.RoleCustomer}

func newRequestService() (*service.RequestService, *MockRequestRepository) {
	requestRepo := NewMockRequestRepository()
	return service.NewRequestService(requestRepo), requestRepo
}

func pendingRequest(id, customerID string) *domain.CargoRequest {
	return &domain.CargoRequest{
		ID:           id,
		Name:         "furniture",
		Type:         "household",
		Size:         domain.CargoSizeMedium,
		Weight:       75,
		Origin:       "Utrecht",
		Destination:  "Ghent",
		DeliveryDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		CustomerID:   customerID,
		Status:       domain.RequestStatusPending,
	}
}

func TestCreateRequest_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, requestRepo := newRequestService()

	req, err := svc.CreateRequest(ctx, service.CreateRequestParams{
		Name:        "furniture",
		Type:        "household",
		Size:        domain.CargoSizeMedium,
		Weight:      75,
		Origin:      "Utrecht",
		Destination: "Ghent",
	}, customerActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Status != domain.RequestStatusPending {
		t.Errorf("expected initial status PENDING, got %s", req.Status)
	}
	if req.CustomerID != customerActor.ID {
		t.Errorf("expected owner %s, got %s", customerActor.ID, req.CustomerID)
	}
	if requestRepo.GetRequest(req.ID) == nil {
		t.Error("expected request to be persisted")
	}
}

func TestCreateRequest_RejectsNonCustomer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newRequestService()

	_, err := svc.CreateRequest(ctx, service.CreateRequestParams{}, businessActor)
	if !errors.Is(err, service.ErrRoleNotAllowed) {
		t.Errorf("expected ErrRoleNotAllowed, got %v", err)
	}
}

func TestCreateRequest_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newRequestService()

	_, err := svc.CreateRequest(ctx, service.CreateRequestParams{
		Name: "only a name",
	}, customerActor)
	if !errors.Is(err, service.ErrMissingRequiredFields) {
		t.Errorf("expected ErrMissingRequiredFields, got %v", err)
	}
}

func TestUpdateRequest_ForeignRequestReadsAsAbsent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, requestRepo := newRequestService()
	requestRepo.AddRequest(pendingRequest("req-1", "customer-2"))

	name := "renamed"
	_, err := svc.UpdateRequest(ctx, "req-1", domain.RequestPatch{Name: &name}, customerActor)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign request, got %v", err)
	}
}

func TestUpdateRequest_RejectsNonPending(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, requestRepo := newRequestService()
	req := pendingRequest("req-1", customerActor.ID)
	req.Status = domain.RequestStatusAccepted
	requestRepo.AddRequest(req)

	name := "renamed"
	_, err := svc.UpdateRequest(ctx, "req-1", domain.RequestPatch{Name: &name}, customerActor)
	if !errors.Is(err, service.ErrRequestNotPending) {
		t.Errorf("expected ErrRequestNotPending, got %v", err)
	}
}

func TestUpdateRequest_AppliesPatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, requestRepo := newRequestService()
	requestRepo.AddRequest(pendingRequest("req-1", customerActor.ID))

	weight := 120.0
	destination := "Lille"
	req, err := svc.UpdateRequest(ctx, "req-1", domain.RequestPatch{Weight: &weight, Destination: &destination}, customerActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Weight != 120.0 || req.Destination != "Lille" {
		t.Errorf("patch not applied: weight=%v destination=%q", req.Weight, req.Destination)
	}
	if req.Origin != "Utrecht" {
		t.Errorf("expected origin untouched, got %q", req.Origin)
	}
}

func TestDeleteRequest_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, requestRepo := newRequestService()
	requestRepo.AddRequest(pendingRequest("req-1", customerActor.ID))

	if err := svc.DeleteRequest(ctx, "req-1", customerActor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requestRepo.GetRequest("req-1") != nil {
		t.Error("expected request to be deleted")
	}
}

func TestDeleteRequest_RejectsNonPending(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, requestRepo := newRequestService()
	req := pendingRequest("req-1", customerActor.ID)
	req.Status = domain.RequestStatusRejected
	requestRepo.AddRequest(req)

	err := svc.DeleteRequest(ctx, "req-1", customerActor)
	if !errors.Is(err, service.ErrRequestNotPending) {
		t.Errorf("expected ErrRequestNotPending, got %v", err)
	}
}

func TestRejectRequest_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, requestRepo := newRequestService()
	requestRepo.AddRequest(pendingRequest("req-1", "customer-1"))

	req, err := svc.RejectRequest(ctx, "req-1", businessActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Status != domain.RequestStatusRejected {
		t.Errorf("expected REJECTED, got %s", req.Status)
	}
	if requestRepo.GetRequest("req-1").Status != domain.RequestStatusRejected {
		t.Error("expected persisted status REJECTED")
	}
}

func TestRejectRequest_RejectsNonPending(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, requestRepo := newRequestService()
	req := pendingRequest("req-1", "customer-1")
	req.Status = domain.RequestStatusAccepted
	requestRepo.AddRequest(req)

	_, err := svc.RejectRequest(ctx, "req-1", businessActor)
	if !errors.Is(err, service.ErrRequestNotPending) {
		t.Errorf("expected ErrRequestNotPending, got %v", err)
	}
}

func TestListPending_FiltersTerminalRequests(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, requestRepo := newRequestService()
	requestRepo.AddRequest(pendingRequest("req-1", "customer-1"))
	accepted := pendingRequest("req-2", "customer-2")
	accepted.Status = domain.RequestStatusAccepted
	requestRepo.AddRequest(accepted)

	reqs, err := svc.ListPending(ctx, businessActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 1 || reqs[0].ID != "req-1" {
		t.Errorf("expected only req-1 pending, got %d requests", len(reqs))
	}
}

func TestConvertRequest_CreatesCargoAndMarksAccepted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newAssignmentFixture()
	f.requestRepo.AddRequest(pendingRequest("req-1", "customer-1"))

	cargo, err := f.svc.ConvertRequest(ctx, "req-1", businessActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The cargo inherits the request's shipment fields.
	if cargo.Name != "furniture" || cargo.Type != "household" || cargo.Weight != 75 {
		t.Errorf("expected shipment fields copied, got %+v", cargo)
	}
	if cargo.Origin != "Utrecht" || cargo.Destination != "Ghent" {
		t.Errorf("expected route copied, got %s -> %s", cargo.Origin, cargo.Destination)
	}
	if cargo.CustomerID != "customer-1" {
		t.Errorf("expected customer link preserved, got %q", cargo.CustomerID)
	}
	if cargo.BusinessID != businessActor.ID {
		t.Errorf("expected accepting business as owner, got %q", cargo.BusinessID)
	}
	if cargo.Status != domain.CargoStatusPending {
		t.Errorf("expected cargo status PENDING, got %s", cargo.Status)
	}
	if cargo.DriverID != "" {
		t.Error("expected converted cargo to start unassigned")
	}

	// The request is retained, flipped to ACCEPTED.
	stored := f.requestRepo.GetRequest("req-1")
	if stored == nil {
		t.Fatal("expected request to be retained")
	}
	if stored.Status != domain.RequestStatusAccepted {
		t.Errorf("expected request ACCEPTED, got %s", stored.Status)
	}
}

func TestConvertRequest_RejectedRequestCannotConvert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newAssignmentFixture()
	req := pendingRequest("req-1", "customer-1")
	req.Status = domain.RequestStatusRejected
	f.requestRepo.AddRequest(req)

	_, err := f.svc.ConvertRequest(ctx, "req-1", businessActor)
	if !errors.Is(err, service.ErrRequestNotPending) {
		t.Errorf("expected ErrRequestNotPending, got %v", err)
	}
	if f.cargoRepo.CountCargos() != 0 {
		t.Error("expected no cargo created from rejected request")
	}
}

func TestConvertRequest_DoubleAcceptFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newAssignmentFixture()
	f.requestRepo.AddRequest(pendingRequest("req-1", "customer-1"))

	if _, err := f.svc.ConvertRequest(ctx, "req-1", businessActor); err != nil {
		t.Fatalf("unexpected error on first accept: %v", err)
	}

	_, err := f.svc.ConvertRequest(ctx, "req-1", businessActor)
	if !errors.Is(err, service.ErrRequestNotPending) {
		t.Errorf("expected ErrRequestNotPending on second accept, got %v", err)
	}
	if f.cargoRepo.CountCargos() != 1 {
		t.Errorf("expected exactly 1 cargo, got %d", f.cargoRepo.CountCargos())
	}
}
