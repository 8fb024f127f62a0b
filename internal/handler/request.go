package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"logitrack/internal/domain"
	"logitrack/internal/service"
)

// RequestHandler handles HTTP requests for cargo requests.
type RequestHandler struct {
	requestService    *service.RequestService
	assignmentService *service.AssignmentService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(requestService *service.RequestService, assignmentService *service.AssignmentService) *RequestHandler {
	return &RequestHandler{
		requestService:    requestService,
		assignmentService: assignmentService,
	}
}

// CreateRequestRequest is the HTTP request body for submitting a cargo request.
type CreateRequestRequest struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Size         string  `json:"size"` // SMALL, MEDIUM, LARGE
	Weight       float64 `json:"weight"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	DeliveryDate string  `json:"delivery_date,omitempty"` // RFC3339
}

// UpdateRequestRequest is the HTTP request body for editing a cargo request.
// Absent fields are left untouched.
type UpdateRequestRequest struct {
	Name         *string  `json:"name,omitempty"`
	Type         *string  `json:"type,omitempty"`
	Size         *string  `json:"size,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	Origin       *string  `json:"origin,omitempty"`
	Destination  *string  `json:"destination,omitempty"`
	DeliveryDate *string  `json:"delivery_date,omitempty"`
}

// RequestResponse is the HTTP response for a cargo request.
type RequestResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Size         string  `json:"size"`
	Weight       float64 `json:"weight"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	Status       string  `json:"status"`
	CustomerID   string  `json:"customer_id"`
	DeliveryDate string  `json:"delivery_date,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func toRequestResponse(req *domain.CargoRequest) RequestResponse {
	resp := RequestResponse{
		ID:          req.ID,
		Name:        req.Name,
		Type:        req.Type,
		Size:        string(req.Size),
		Weight:      req.Weight,
		Origin:      req.Origin,
		Destination: req.Destination,
		Status:      string(req.Status),
		CustomerID:  req.CustomerID,
		CreatedAt:   req.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   req.UpdatedAt.Format(time.RFC3339),
	}
	if !req.DeliveryDate.IsZero() {
		resp.DeliveryDate = req.DeliveryDate.Format(time.RFC3339)
	}
	return resp
}

func toRequestResponses(reqs []*domain.CargoRequest) []RequestResponse {
	response := make([]RequestResponse, 0, len(reqs))
	for _, req := range reqs {
		response = append(response, toRequestResponse(req))
	}
	return response
}

// Create handles POST /v1/requests
func (h *RequestHandler) Create(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	deliveryDate, ok := parseDeliveryDate(req.DeliveryDate)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "delivery_date must be RFC3339"})
		return
	}

	created, err := h.requestService.CreateRequest(c.Request.Context(), service.CreateRequestParams{
		Name:         req.Name,
		Type:         req.Type,
		Size:         domain.CargoSize(req.Size),
		Weight:       req.Weight,
		Origin:       req.Origin,
		Destination:  req.Destination,
		DeliveryDate: deliveryDate,
	}, principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRequestResponse(created))
}

// ListPending handles GET /v1/requests/pending
func (h *RequestHandler) ListPending(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	reqs, err := h.requestService.ListPending(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRequestResponses(reqs))
}

// ListOwn handles GET /v1/requests
func (h *RequestHandler) ListOwn(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	reqs, err := h.requestService.ListOwn(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRequestResponses(reqs))
}

// Update handles PUT /v1/requests/:id
func (h *RequestHandler) Update(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	patch := domain.RequestPatch{
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

	updated, err := h.requestService.UpdateRequest(c.Request.Context(), c.Param("id"), patch, principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRequestResponse(updated))
}

// Delete handles DELETE /v1/requests/:id
func (h *RequestHandler) Delete(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	if err := h.requestService.DeleteRequest(c.Request.Context(), c.Param("id"), principal); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Accept handles POST /v1/requests/:id/accept
func (h *RequestHandler) Accept(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	cargo, err := h.assignmentService.ConvertRequest(c.Request.Context(), c.Param("id"), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toCargoResponse(cargo))
}

// Reject handles PATCH /v1/requests/:id/reject
func (h *RequestHandler) Reject(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	rejected, err := h.requestService.RejectRequest(c.Request.Context(), c.Param("id"), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRequestResponse(rejected))
}
