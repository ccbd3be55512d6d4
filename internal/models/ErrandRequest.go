package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ErrandOpen      = "open"
	ErrandCompleted = "completed"
)

// ErrandRequest asks someone to fetch or deliver something. Reward is free
// text ("a coffee", "50").
type ErrandRequest struct {
	Base
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Title            string     `gorm:"not null" json:"title"`
	Description      string     `json:"description"`
	PickupLocation   string     `json:"pickup_location"`
	DeliveryLocation string     `json:"delivery_location"`
	Reward           string     `json:"reward"`
	Status           string     `gorm:"not null;default:open;index" json:"status"`
	CompletedAt      *time.Time `json:"completed_at"`
	CompletedBy      *uuid.UUID `gorm:"type:uuid" json:"completed_by"`
}

func (e ErrandRequest) Owner() uuid.UUID { return e.UserID }
