package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RideActive    = "active"
	RideCompleted = "completed"
)

// CarpoolRide is offered by a driver. SeatsTaken is not checked against
// SeatsAvailable anywhere in the store.
type CarpoolRide struct {
	Base
	DriverID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"driver_id"`
	FromLocation   string     `gorm:"not null" json:"from_location"`
	ToLocation     string     `gorm:"not null" json:"to_location"`
	DepartureDate  string     `gorm:"not null" json:"departure_date"`
	DepartureTime  string     `gorm:"not null" json:"departure_time"`
	SeatsAvailable int        `gorm:"not null" json:"seats_available"`
	SeatsTaken     int        `gorm:"not null;default:0" json:"seats_taken"`
	PricePerSeat   string     `json:"price_per_seat"`
	Notes          string     `json:"notes"`
	Status         string     `gorm:"not null;default:active;index" json:"status"`
	CompletedAt    *time.Time `json:"completed_at"`

	// WKB-encoded route, optional. Exposed as GeoJSON by the API.
	RouteGeometry []byte `gorm:"type:bytea" json:"-"`
}

func (r CarpoolRide) Owner() uuid.UUID { return r.DriverID }
