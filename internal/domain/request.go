package domain

import "time"

// RequestStatus represents the triage state of a cargo request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusAccepted RequestStatus = "ACCEPTED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// CargoRequest is a customer-submitted proposal for a shipment,
// awaiting business triage. ACCEPTED and REJECTED are terminal.
type CargoRequest struct {
	ID           string
	Name         string
	Type         string
	Size         CargoSize
	Weight       float64
	Origin       string
	Destination  string
	DeliveryDate time.Time // desired date, optional
	CustomerID   string
	Status       RequestStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RequestPatch carries the fields a customer may change while the
// request is still PENDING. Nil pointers leave the field untouched.
type RequestPatch struct {
	Name         *string
	Type         *string
	Size         *CargoSize
	Weight       *float64
	Origin       *string
	Destination  *string
	DeliveryDate *time.Time
}
