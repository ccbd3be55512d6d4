package models

import "github.com/google/uuid"

const (
	ModeBus  = "bus"
	ModeBike = "bike"
	ModeWalk = "walk"
	ModeCar  = "car"

	TravelActive = "active"
)

// TravelPost announces that a student is going somewhere at a given time.
type TravelPost struct {
	Base
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	FromLocation string    `gorm:"not null" json:"from_location"`
	ToLocation   string    `gorm:"not null" json:"to_location"`
	TravelDate   string    `gorm:"not null" json:"travel_date"` // YYYY-MM-DD
	TravelTime   string    `gorm:"not null" json:"travel_time"` // HH:MM
	Mode         string    `gorm:"not null" json:"mode"`
	Status       string    `gorm:"not null;default:active" json:"status"`
}

func ValidTravelMode(mode string) bool {
	switch mode {
	case ModeBus, ModeBike, ModeWalk, ModeCar:
		return true
	}
	return false
}

func (p TravelPost) Owner() uuid.UUID { return p.UserID }
