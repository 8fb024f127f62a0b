package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"logitrack/internal/auth"
	"logitrack/internal/domain"
	"logitrack/internal/service"
)

var testJWTSecret = []byte("test-secret")

func newUserService() (*service.UserService, *MockUserRepository) {
	userRepo := NewMockUserRepository()
	return service.NewUserService(userRepo, testJWTSecret, time.Hour), userRepo
}

func TestRegister_HashesPassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, userRepo := newUserService()

	user, err := svc.Register(ctx, service.RegisterParams{
		Username: "acme",
		Password: "s3cret",
		Role:     domain.RoleBusiness,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Password == "s3cret" {
		t.Error("expected password to be hashed")
	}
	if !auth.CheckPasswordHash("s3cret", user.Password) {
		t.Error("expected hash to verify against the original password")
	}
	if userRepo.CreateCallCount != 1 {
		t.Errorf("expected 1 create call, got %d", userRepo.CreateCallCount)
	}
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newUserService()

	_, err := svc.Register(ctx, service.RegisterParams{
		Username: "acme",
		Password: "s3cret",
		Role:     "admin",
	})
	if !errors.Is(err, service.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRegister_RejectsDuplicateUsername(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, userRepo := newUserService()
	userRepo.AddUser(&domain.User{ID: "u1", Username: "acme", Role: domain.RoleBusiness})

	_, err := svc.Register(ctx, service.RegisterParams{
		Username: "acme",
		Password: "s3cret",
		Role:     domain.RoleDriver,
	})
	if !errors.Is(err, service.ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newUserService()

	registered, err := svc.Register(ctx, service.RegisterParams{
		Username: "hauler",
		Password: "road-trip",
		Role:     domain.RoleDriver,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, user, err := svc.Login(ctx, "hauler", "road-trip")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %s, got %s", registered.ID, user.ID)
	}

	claims, err := auth.ParseJWT(testJWTSecret, token)
	if err != nil {
		t.Fatalf("expected token to parse: %v", err)
	}
	if claims.UserID != registered.ID {
		t.Errorf("expected claim user %s, got %s", registered.ID, claims.UserID)
	}
	if claims.Role != string(domain.RoleDriver) {
		t.Errorf("expected claim role driver, got %s", claims.Role)
	}
}

func TestLogin_RejectsWrongPassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newUserService()

	if _, err := svc.Register(ctx, service.RegisterParams{
		Username: "hauler",
		Password: "road-trip",
		Role:     domain.RoleDriver,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err := svc.Login(ctx, "hauler", "wrong")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUserLooksLikeBadCredentials(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newUserService()

	_, _, err := svc.Login(ctx, "ghost", "whatever")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUpdateProfile_AppliesPatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, userRepo := newUserService()
	userRepo.AddUser(&domain.User{ID: "u1", Username: "acme", Email: "old@acme.test", Role: domain.RoleBusiness})

	email := "new@acme.test"
	contact := "+31 6 1234 5678"
	actor := domain.Principal{ID: "u1", Role: domain.RoleBusiness}
	user, err := svc.UpdateProfile(ctx, service.ProfilePatch{Email: &email, Contact: &contact}, actor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "new@acme.test" || user.Contact != "+31 6 1234 5678" {
		t.Errorf("patch not applied: email=%q contact=%q", user.Email, user.Contact)
	}
	if user.Username != "acme" {
		t.Errorf("expected username untouched, got %q", user.Username)
	}
}

func TestParseJWT_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := auth.GenerateJWT(testJWTSecret, "u1", "driver", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := auth.ParseJWT([]byte("other-secret"), token); err == nil {
		t.Error("expected token signed with another secret to fail")
	}
}

func TestParseJWT_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	token, err := auth.GenerateJWT(testJWTSecret, "u1", "driver", -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := auth.ParseJWT(testJWTSecret, token); err == nil {
		t.Error("expected expired token to fail")
	}
}
