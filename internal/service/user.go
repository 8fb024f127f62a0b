package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"logitrack/internal/auth"
	"logitrack/internal/domain"
	"logitrack/internal/repository"
)

// UserService handles registration, login and profile management.
type UserService struct {
	userRepo      repository.UserRepository
	jwtSecret     []byte
	jwtExpiration time.Duration
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, jwtSecret []byte, jwtExpiration time.Duration) *UserService {
	return &UserService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// RegisterParams contains the parameters for creating an account.
type RegisterParams struct {
	Username string
	Password string
	Email    string
	Role     domain.Role
	Contact  string
	Address  string
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	if params.Username == "" || params.Password == "" {
		return nil, ErrMissingCredentials
	}
	if !domain.ValidRole(params.Role) {
		return nil, ErrInvalidRole
	}

	// The unique index on username backs this check under races.
	if _, err := s.userRepo.GetByUsername(ctx, params.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.New().String(),
		Username:  params.Username,
		Email:     params.Email,
		Password:  hash,
		Role:      params.Role,
		Contact:   params.Contact,
		Address:   params.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a signed token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, ErrMissingCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !auth.CheckPasswordHash(password, user.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(s.jwtSecret, user.ID, string(user.Role), s.jwtExpiration)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Profile returns the caller's own account.
func (s *UserService) Profile(ctx context.Context, actor domain.Principal) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, actor.ID)
}

// ProfilePatch carries the fields a user may edit on their own account.
// Nil pointers leave the field untouched.
type ProfilePatch struct {
	Email   *string
	Contact *string
	Address *string
}

// UpdateProfile applies a patch to the caller's own account.
func (s *UserService) UpdateProfile(ctx context.Context, patch ProfilePatch, actor domain.Principal) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Contact != nil {
		user.Contact = *patch.Contact
	}
	if patch.Address != nil {
		user.Address = *patch.Address
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
