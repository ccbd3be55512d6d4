package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReasonMedical = "medical"
	ReasonSafety  = "safety"
	ReasonOther   = "other"

	EmergencyOpen     = "open"
	EmergencyResolved = "resolved"
)

// EmergencyRequest is raised by a student and resolved by an admin.
// open -> resolved is the only transition.
type EmergencyRequest struct {
	Base
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Reason     string     `gorm:"not null" json:"reason"`
	Location   string     `gorm:"not null" json:"location"`
	Details    string     `json:"details"`
	Status     string     `gorm:"not null;default:open;index" json:"status"`
	ResolvedAt *time.Time `json:"resolved_at"`
	ResolvedBy *uuid.UUID `gorm:"type:uuid" json:"resolved_by"`
}

func ValidEmergencyReason(reason string) bool {
	switch reason {
	case ReasonMedical, ReasonSafety, ReasonOther:
		return true
	}
	return false
}

func (e EmergencyRequest) Owner() uuid.UUID { return e.UserID }
