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

func newCargoService(allowTrackDelivered bool) (*service.CargoService, *MockCargoRepository, *MockCacheStore) {
	cargoRepo := NewMockCargoRepository()
	cacheStore := NewMockCacheStore()
	return service.NewCargoService(cargoRepo, cacheStore, allowTrackDelivered), cargoRepo, cacheStore
}

func validCreateCargo() service.CreateCargoRequest {
	return service.CreateCargoRequest{
		Name:        "steel coils",
		Type:        "industrial",
		Size:        domain.CargoSizeLarge,
		Weight:      850,
		Origin:      "Antwerp",
		Destination: "Lyon",
		CustomerID:  "customer-1",
	}
}

func TestCreateCargo_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, cargoRepo, _ := newCargoService(true)

	cargo, err := svc.CreateCargo(ctx, validCreateCargo(), businessActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cargo.ID == "" {
		t.Error("expected generated cargo ID")
	}
	if cargo.Status != domain.CargoStatusPending {
		t.Errorf("expected initial status PENDING, got %s", cargo.Status)
	}
	if cargo.BusinessID != businessActor.ID {
		t.Errorf("expected business owner %s, got %s", businessActor.ID, cargo.BusinessID)
	}
	if cargo.DriverID != "" {
		t.Error("expected new cargo to be unassigned")
	}
	if cargoRepo.CountCargos() != 1 {
		t.Errorf("expected 1 persisted cargo, got %d", cargoRepo.CountCargos())
	}
}

func TestCreateCargo_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _, _ := newCargoService(true)

	cases := []struct {
		name    string
		mutate  func(*service.CreateCargoRequest)
		wantErr error
	}{
		{"missing name", func(r *service.CreateCargoRequest) { r.Name = "" }, service.ErrMissingRequiredFields},
		{"missing origin", func(r *service.CreateCargoRequest) { r.Origin = "" }, service.ErrMissingRequiredFields},
		{"zero weight", func(r *service.CreateCargoRequest) { r.Weight = 0 }, service.ErrInvalidWeight},
		{"negative weight", func(r *service.CreateCargoRequest) { r.Weight = -5 }, service.ErrInvalidWeight},
		{"unknown size", func(r *service.CreateCargoRequest) { r.Size = "HUGE" }, service.ErrInvalidSize},
		{"missing customer", func(r *service.CreateCargoRequest) { r.CustomerID = "" }, service.ErrInvalidCustomerID},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateCargo()
			tc.mutate(&req)
			_, err := svc.CreateCargo(ctx, req, businessActor)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateCargo_RejectsNonBusiness(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _, _ := newCargoService(true)

	customerActor := domain.Principal{ID: "customer-1", Role: domain.RoleCustomer}
	_, err := svc.CreateCargo(ctx, validCreateCargo(), customerActor)
	if !errors.Is(err, service.ErrRoleNotAllowed) {
		t.Errorf("expected ErrRoleNotAllowed, got %v", err)
	}
}

func TestUpdateCargo_RejectsForeignBusiness(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, cargoRepo, _ := newCargoService(true)
	cargoRepo.AddCargo(&domain.Cargo{ID: "cargo-1", BusinessID: "business-1", Name: "n", Type: "t", Size: domain.CargoSizeSmall, Weight: 1, Origin: "a", Destination: "b"})

	otherBusiness := domain.Principal{ID: "business-2", Role: domain.RoleBusiness}
	name := "renamed"
	_, err := svc.UpdateCargo(ctx, "cargo-1", service.CargoPatch{Name: &name}, otherBusiness)
	if !errors.Is(err, service.ErrNotCargoOwner) {
		t.Errorf("expected ErrNotCargoOwner, got %v", err)
	}
}

func TestUpdateCargo_AppliesPatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, cargoRepo, _ := newCargoService(true)
	cargoRepo.AddCargo(&domain.Cargo{ID: "cargo-1", BusinessID: "business-1", Name: "old", Type: "t", Size: domain.CargoSizeSmall, Weight: 1, Origin: "a", Destination: "b"})

	name := "new name"
	weight := 42.5
	cargo, err := svc.UpdateCargo(ctx, "cargo-1", service.CargoPatch{Name: &name, Weight: &weight}, businessActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cargo.Name != "new name" || cargo.Weight != 42.5 {
		t.Errorf("patch not applied: name=%q weight=%v", cargo.Name, cargo.Weight)
	}
	// Untouched fields survive.
	if cargo.Origin != "a" {
		t.Errorf("expected origin untouched, got %q", cargo.Origin)
	}
}

func TestDeleteCargo_MissingCargoIsNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _, _ := newCargoService(true)

	err := svc.DeleteCargo(ctx, "nope", businessActor)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateStatus_DeliveredStampsDeliveryDate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, cargoRepo, _ := newCargoService(true)
	requested := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	cargoRepo.AddCargo(&domain.Cargo{ID: "cargo-1", BusinessID: "business-1", DriverID: "driver-1", Status: domain.CargoStatusInTransit, DeliveryDate: requested})

	before := time.Now().UTC()
	cargo, err := svc.UpdateStatus(ctx, "cargo-1", domain.CargoStatusDelivered, businessActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cargo.Status != domain.CargoStatusDelivered {
		t.Errorf("expected DELIVERED, got %s", cargo.Status)
	}
	if cargo.DeliveryDate.Before(before) {
		t.Errorf("expected delivery date stamped at delivery time, got %v", cargo.DeliveryDate)
	}

	stored := cargoRepo.GetCargo("cargo-1")
	if stored.DeliveryDate.Equal(requested) {
		t.Error("expected persisted delivery date to be overwritten")
	}
}

func TestUpdateStatus_NonDeliveredKeepsDeliveryDate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, cargoRepo, _ := newCargoService(true)
	requested := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	cargoRepo.AddCargo(&domain.Cargo{ID: "cargo-1", BusinessID: "business-1", Status: domain.CargoStatusPending, DeliveryDate: requested})

	cargo, err := svc.UpdateStatus(ctx, "cargo-1", domain.CargoStatusInTransit, businessActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cargo.DeliveryDate.Equal(requested) {
		t.Errorf("expected requested delivery date kept, got %v", cargo.DeliveryDate)
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, cargoRepo, _ := newCargoService(true)
	cargoRepo.AddCargo(&domain.Cargo{ID: "cargo-1", BusinessID: "business-1"})

	_, err := svc.UpdateStatus(ctx, "cargo-1", "LOST", businessActor)
	if !errors.Is(err, service.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateStatus_RejectsCustomer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, cargoRepo, _ := newCargoService(true)
	cargoRepo.AddCargo(&domain.Cargo{ID: "cargo-1", BusinessID: "business-1"})

	customerActor := domain.Principal{ID: "customer-1", Role: domain.RoleCustomer}
	_, err := svc.UpdateStatus(ctx, "cargo-1", domain.CargoStatusInTransit, customerActor)
	if !errors.Is(err, service.ErrRoleNotAllowed) {
		t.Errorf("expected ErrRoleNotAllowed, got %v", err)
	}
}

func TestUpdateLocation_InvalidatesTrackingCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, cargoRepo, cacheStore := newCargoService(true)
	cargoRepo.AddCargo(&domain.Cargo{ID: "cargo-1", BusinessID: "business-1", DriverID: "driver-1", Status: domain.CargoStatusInTransit})

	// Prime the cache through tracking.
	if _, err := svc.Track(ctx, "cargo-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cacheStore.HasEntry("cargo-1") {
		t.Fatal("expected snapshot to be cached after tracking")
	}

	driverActor := domain.Principal{ID: "driver-1", Role: domain.RoleDriver}
	if _, err := svc.UpdateLocation(ctx, "cargo-1", "51.92,4.47", driverActor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cacheStore.HasEntry("cargo-1") {
		t.Error("expected cache entry to be invalidated after location update")
	}

	// Next track sees the fresh location.
	snapshot, err := svc.Track(ctx, "cargo-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.Location != "51.92,4.47" {
		t.Errorf("expected fresh location, got %q", snapshot.Location)
	}
}

func TestTrack_ServesFromCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, cargoRepo, cacheStore := newCargoService(true)
	cargoRepo.AddCargo(&domain.Cargo{ID: "cargo-1", BusinessID: "business-1", Status: domain.CargoStatusInTransit, Location: "52.37,4.89"})

	if _, err := svc.Track(ctx, "cargo-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Track(ctx, "cargo-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Second call hits the cache, not a second store write.
	if cacheStore.SetCallCount != 1 {
		t.Errorf("expected 1 cache write, got %d", cacheStore.SetCallCount)
	}
}

func TestTrack_DeliveredAllowedByDefault(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, cargoRepo, _ := newCargoService(true)
	cargoRepo.AddCargo(&domain.Cargo{ID: "cargo-1", BusinessID: "business-1", Status: domain.CargoStatusDelivered, DeliveryDate: time.Now().UTC()})

	snapshot, err := svc.Track(ctx, "cargo-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.Status != string(domain.CargoStatusDelivered) {
		t.Errorf("expected DELIVERED snapshot, got %s", snapshot.Status)
	}
	if snapshot.DeliveryDate == "" {
		t.Error("expected delivery date in snapshot")
	}
}

func TestTrack_DeliveredRejectedUnderStrictPolicy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, cargoRepo, _ := newCargoService(false)
	cargoRepo.AddCargo(&domain.Cargo{ID: "cargo-1", BusinessID: "business-1", Status: domain.CargoStatusDelivered})

	_, err := svc.Track(ctx, "cargo-1")
	if !errors.Is(err, service.ErrCargoDelivered) {
		t.Errorf("expected ErrCargoDelivered, got %v", err)
	}
}

func TestListForPrincipal_ScopesByRole(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, cargoRepo, _ := newCargoService(true)
	cargoRepo.AddCargo(&domain.Cargo{ID: "c1", BusinessID: "business-1", DriverID: "driver-1", CustomerID: "customer-1"})
	cargoRepo.AddCargo(&domain.Cargo{ID: "c2", BusinessID: "business-2", DriverID: "driver-1", CustomerID: "customer-2"})
	cargoRepo.AddCargo(&domain.Cargo{ID: "c3", BusinessID: "business-1", CustomerID: "customer-2"})

	cases := []struct {
		name  string
		actor domain.Principal
		want  int
	}{
		{"business sees owned", domain.Principal{ID: "business-1", Role: domain.RoleBusiness}, 2},
		{"driver sees assigned", domain.Principal{ID: "driver-1", Role: domain.RoleDriver}, 2},
		{"customer sees destined", domain.Principal{ID: "customer-2", Role: domain.RoleCustomer}, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cargos, err := svc.ListForPrincipal(ctx, tc.actor)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cargos) != tc.want {
				t.Errorf("expected %d cargos, got %d", tc.want, len(cargos))
			}
		})
	}
}

func TestListUnassigned_ReturnsOnlyDriverless(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, cargoRepo, _ := newCargoService(true)
	cargoRepo.AddCargo(&domain.Cargo{ID: "c1", BusinessID: "business-1"})
	cargoRepo.AddCargo(&domain.Cargo{ID: "c2", BusinessID: "business-1", DriverID: "driver-1"})

	cargos, err := svc.ListUnassigned(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cargos) != 1 || cargos[0].ID != "c1" {
		t.Errorf("expected only c1, got %d cargos", len(cargos))
	}
}
