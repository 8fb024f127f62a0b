package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"logitrack/internal/domain"
	"logitrack/internal/service"
)

// UserHandler handles HTTP requests for accounts and profiles.
type UserHandler struct {
	userService       *service.UserService
	cargoService      *service.CargoService
	assignmentService *service.AssignmentService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, cargoService *service.CargoService, assignmentService *service.AssignmentService) *UserHandler {
	return &UserHandler{
		userService:       userService,
		cargoService:      cargoService,
		assignmentService: assignmentService,
	}
}

// RegisterRequest is the HTTP request body for creating an account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"` // business, driver, customer
	Contact  string `json:"contact,omitempty"`
	Address  string `json:"address,omitempty"`
}

// LoginRequest is the HTTP request body for logging in.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the HTTP response for a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateProfileRequest is the HTTP request body for editing a profile.
// Absent fields are left untouched.
type UpdateProfileRequest struct {
	Email   *string `json:"email,omitempty"`
	Contact *string `json:"contact,omitempty"`
	Address *string `json:"address,omitempty"`
}

// ProfileResponse is the HTTP response for the caller's own profile,
// including the cargos visible to their role.
type ProfileResponse struct {
	User   UserResponse    `json:"user"`
	Cargos []CargoResponse `json:"cargos"`
}

// UserResponse is the HTTP response for an account. The password hash
// never leaves the service.
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	Contact   string `json:"contact,omitempty"`
	Address   string `json:"address,omitempty"`
	CreatedAt string `json:"created_at"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		Contact:   user.Contact,
		Address:   user.Address,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// Register handles POST /v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), service.RegisterParams{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     domain.Role(req.Role),
		Contact:  req.Contact,
		Address:  req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toUserResponse(user))
}

// Login handles POST /v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, user, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// Me handles GET /v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	user, err := h.userService.Profile(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	cargos, err := h.cargoService.ListForPrincipal(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ProfileResponse{
		User:   toUserResponse(user),
		Cargos: toCargoResponses(cargos),
	})
}

// UpdateMe handles PUT /v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), service.ProfilePatch{
		Email:   req.Email,
		Contact: req.Contact,
		Address: req.Address,
	}, principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toUserResponse(user))
}

// AvailableDrivers handles GET /v1/drivers/available
func (h *UserHandler) AvailableDrivers(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	drivers, err := h.assignmentService.AvailableDrivers(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]UserResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, toUserResponse(d))
	}

	respondJSON(c, http.StatusOK, response)
}
