package domain

import "time"

// CargoStatus represents the current status of a cargo shipment.
type CargoStatus string

const (
	CargoStatusPending   CargoStatus = "PENDING"
	CargoStatusInTransit CargoStatus = "IN_TRANSIT"
	CargoStatusDelivered CargoStatus = "DELIVERED"
)

// ValidCargoStatus reports whether s is one of the known cargo statuses.
func ValidCargoStatus(s CargoStatus) bool {
	switch s {
	case CargoStatusPending, CargoStatusInTransit, CargoStatusDelivered:
		return true
	}
	return false
}

// CargoSize represents the size class of a cargo shipment.
type CargoSize string

const (
	CargoSizeSmall  CargoSize = "SMALL"
	CargoSizeMedium CargoSize = "MEDIUM"
	CargoSizeLarge  CargoSize = "LARGE"
)

// ValidCargoSize reports whether s is one of the known size classes.
func ValidCargoSize(s CargoSize) bool {
	switch s {
	case CargoSizeSmall, CargoSizeMedium, CargoSizeLarge:
		return true
	}
	return false
}

// Cargo represents a trackable shipment owned by a business, optionally
// assigned to a driver, destined for a customer.
type Cargo struct {
	ID          string
	Name        string
	Type        string
	Size        CargoSize
	Weight      float64
	Origin      string
	Destination string
	Status      CargoStatus
	Location    string // free-text "lat,lng" reported by the driver
	BusinessID  string
	DriverID    string // empty = unassigned
	CustomerID  string
	// DeliveryDate is the requested date at creation and is overwritten
	// with the actual time when the cargo reaches DELIVERED.
	DeliveryDate time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active reports whether the cargo counts against its driver's
// one-active-cargo limit: assigned and not yet delivered.
func (c *Cargo) Active() bool {
	return c.DriverID != "" && c.Status != CargoStatusDelivered
}
