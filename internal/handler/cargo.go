package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"logitrack/internal/domain"
	"logitrack/internal/service"
)

// CargoHandler handles HTTP requests for cargos.
type CargoHandler struct {
	cargoService      *service.CargoService
	assignmentService *service.AssignmentService
}

// NewCargoHandler creates a new CargoHandler.
func NewCargoHandler(cargoService *service.CargoService, assignmentService *service.AssignmentService) *CargoHandler {
	return &CargoHandler{
		cargoService:      cargoService,
		assignmentService: assignmentService,
	}
}

// CreateCargoRequest is the HTTP request body for creating a cargo.
type CreateCargoRequest struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Size         string  `json:"size"` // SMALL, MEDIUM, LARGE
	Weight       float64 `json:"weight"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	CustomerID   string  `json:"customer_id"`
	DeliveryDate string  `json:"delivery_date,omitempty"` // RFC3339
}

// UpdateCargoRequest is the HTTP request body for editing a cargo.
// Absent fields are left untouched.
type UpdateCargoRequest struct {
	Name         *string  `json:"name,omitempty"`
	Type         *string  `json:"type,omitempty"`
	Size         *string  `json:"size,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	Origin       *string  `json:"origin,omitempty"`
	Destination  *string  `json:"destination,omitempty"`
	DeliveryDate *string  `json:"delivery_date,omitempty"`
}

// AssignDriverRequest is the HTTP request body for assigning a driver.
type AssignDriverRequest struct {
	DriverID string `json:"driver_id"`
}

// UpdateStatusRequest is the HTTP request body for a status update.
type UpdateStatusRequest struct {
	Status string `json:"status"` // PENDING, IN_TRANSIT, DELIVERED
}

// UpdateLocationRequest is the HTTP request body for a location update.
type UpdateLocationRequest struct {
	Location string `json:"location"`
}

// CargoResponse is the HTTP response for a cargo.
type CargoResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Size         string  `json:"size"`
	Weight       float64 `json:"weight"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	Status       string  `json:"status"`
	Location     string  `json:"location,omitempty"`
	BusinessID   string  `json:"business_id"`
	DriverID     string  `json:"driver_id,omitempty"`
	CustomerID   string  `json:"customer_id"`
	DeliveryDate string  `json:"delivery_date,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// TrackCargoResponse is the HTTP response for tracking a cargo.
type TrackCargoResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	Location     string `json:"location,omitempty"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	DriverID     string `json:"driver_id,omitempty"`
	DeliveryDate string `json:"delivery_date,omitempty"`
}

func toCargoResponse(cargo *domain.Cargo) CargoResponse {
	resp := CargoResponse{
		ID:          cargo.ID,
		Name:        cargo.Name,
		Type:        cargo.Type,
		Size:        string(cargo.Size),
		Weight:      cargo.Weight,
		Origin:      cargo.Origin,
		Destination: cargo.Destination,
		Status:      string(cargo.Status),
		Location:    cargo.Location,
		BusinessID:  cargo.BusinessID,
		DriverID:    cargo.DriverID,
		CustomerID:  cargo.CustomerID,
		CreatedAt:   cargo.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   cargo.UpdatedAt.Format(time.RFC3339),
	}
	if !cargo.DeliveryDate.IsZero() {
		resp.DeliveryDate = cargo.DeliveryDate.Format(time.RFC3339)
	}
	return resp
}

func toCargoResponses(cargos []*domain.Cargo) []CargoResponse {
	response := make([]CargoResponse, 0, len(cargos))
	for _, cargo := range cargos {
		response = append(response, toCargoResponse(cargo))
	}
	return response
}

// parseDeliveryDate accepts an RFC3339 timestamp or an empty string.
func parseDeliveryDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Create handles POST /v1/cargos
func (h *CargoHandler) Create(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req CreateCargoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	deliveryDate, ok := parseDeliveryDate(req.DeliveryDate)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "delivery_date must be RFC3339"})
		return
	}

	cargo, err := h.cargoService.CreateCargo(c.Request.Context(), service.CreateCargoRequest{
		Name:         req.Name,
		Type:         req.Type,
		Size:         domain.CargoSize(req.Size),
		Weight:       req.Weight,
		Origin:       req.Origin,
		Destination:  req.Destination,
		CustomerID:   req.CustomerID,
		DeliveryDate: deliveryDate,
	}, principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toCargoResponse(cargo))
}

// Update handles PUT /v1/cargos/:id
func (h *CargoHandler) Update(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req UpdateCargoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	patch := service.CargoPatch{
		Name:        req.Name,
		Type:        req.Type,
		Weight:      req.Weight,
		Origin:      req.Origin,
		Destination: req.Destination,
	}
	if req.Size != nil {
		size := domain.CargoSize(*req.Size)
		patch.Size = &size
	}
	if req.DeliveryDate != nil {
		deliveryDate, ok := parseDeliveryDate(*req.DeliveryDate)
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "delivery_date must be RFC3339"})
			return
		}
		patch.DeliveryDate = &deliveryDate
	}

	cargo, err := h.cargoService.UpdateCargo(c.Request.Context(), c.Param("id"), patch, principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCargoResponse(cargo))
}

// Delete handles DELETE /v1/cargos/:id
func (h *CargoHandler) Delete(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	if err := h.cargoService.DeleteCargo(c.Request.Context(), c.Param("id"), principal); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// List handles GET /v1/cargos
func (h *CargoHandler) List(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	cargos, err := h.cargoService.ListForPrincipal(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCargoResponses(cargos))
}

// ListAvailable handles GET /v1/cargos/available
func (h *CargoHandler) ListAvailable(c *gin.Context) {
	cargos, err := h.cargoService.ListUnassigned(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCargoResponses(cargos))
}

// Assign handles POST /v1/cargos/:id/assign
func (h *CargoHandler) Assign(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	cargo, err := h.assignmentService.AssignDriver(c.Request.Context(), c.Param("id"), req.DriverID, principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCargoResponse(cargo))
}

// Accept handles POST /v1/cargos/:id/accept
func (h *CargoHandler) Accept(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	cargo, err := h.assignmentService.AcceptCargo(c.Request.Context(), c.Param("id"), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCargoResponse(cargo))
}

// UpdateStatus handles PATCH /v1/cargos/:id/status
func (h *CargoHandler) UpdateStatus(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	cargo, err := h.cargoService.UpdateStatus(c.Request.Context(), c.Param("id"), domain.CargoStatus(req.Status), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCargoResponse(cargo))
}

// UpdateLocation handles PATCH /v1/cargos/:id/location
func (h *CargoHandler) UpdateLocation(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	cargo, err := h.cargoService.UpdateLocation(c.Request.Context(), c.Param("id"), req.Location, principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCargoResponse(cargo))
}

// Track handles GET /v1/cargos/:id/track
func (h *CargoHandler) Track(c *gin.Context) {
	snapshot, err := h.cargoService.Track(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, TrackCargoResponse{
		ID:           snapshot.ID,
		Name:         snapshot.Name,
		Status:       snapshot.Status,
		Location:     snapshot.Location,
		Origin:       snapshot.Origin,
		Destination:  snapshot.Destination,
		DriverID:     snapshot.DriverID,
		DeliveryDate: snapshot.DeliveryDate,
	})
}
