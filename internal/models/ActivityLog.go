package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionResolve  = "resolve"
	ActionComplete = "complete"
	ActionSignUp   = "sign_up"
	ActionSignIn   = "sign_in"
	ActionSignOut  = "sign_out"

	EntityProfile   = "profile"
	EntityTravel    = "travel_post"
	EntityEmergency = "emergency_request"
	EntityErrand    = "errand_request"
	EntityCarpool   = "carpool_ride"
	EntityAccount   = "account"
)

// ActivityLog is an append-only audit entry. UserID is nil for anonymous
// service writes and after the actor's account is deleted.
type ActivityLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"`
	ActionType string         `gorm:"not null" json:"action_type"`
	EntityType string         `gorm:"not null" json:"entity_type"`
	EntityID   *uuid.UUID     `gorm:"type:uuid" json:"entity_id"`
	Details    datatypes.JSON `json:"details"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
