package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"logitrack/internal/domain"
	"logitrack/internal/repository"
	"logitrack/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidCargoID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidRequestID),
		errors.Is(err, service.ErrMissingRequiredFields),
		errors.Is(err, service.ErrInvalidWeight),
		errors.Is(err, service.ErrInvalidSize),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidCustomerID),
		errors.Is(err, service.ErrNotADriver),
		errors.Is(err, service.ErrCargoDelivered),
		errors.Is(err, service.ErrMissingCredentials),
		errors.Is(err, service.ErrInvalidRole):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Conflict errors
	case errors.Is(err, service.ErrDriverHasActiveCargo),
		errors.Is(err, service.ErrCargoAlreadyAssigned),
		errors.Is(err, service.ErrAssignmentInProgress),
		errors.Is(err, service.ErrRequestNotPending),
		errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict

	// Forbidden/Business rule errors
	case errors.Is(err, service.ErrRoleNotAllowed),
		errors.Is(err, service.ErrNotCargoOwner):
		return http.StatusForbidden

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}

// principalFromContext reads the authenticated caller the auth middleware
// placed in the gin context.
func principalFromContext(c *gin.Context) (domain.Principal, bool) {
	userID, ok := c.Get("user_id")
	if !ok {
		return domain.Principal{}, false
	}
	userRole, ok := c.Get("user_role")
	if !ok {
		return domain.Principal{}, false
	}

	id, ok := userID.(string)
	if !ok {
		return domain.Principal{}, false
	}
	role, ok := userRole.(string)
	if !ok {
		return domain.Principal{}, false
	}

	return domain.Principal{ID: id, Role: domain.Role(role)}, true
}

// mustPrincipal resolves the caller or aborts with 401. Routes behind the
// auth middleware always have a principal; the guard covers miswiring.
func mustPrincipal(c *gin.Context) (domain.Principal, bool) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return domain.Principal{}, false
	}
	return principal, true
}
