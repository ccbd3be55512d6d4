package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the public face of an account. One per account, created at
// signup, never carries privilege.
type Profile struct {
	Base
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Name      string    `gorm:"not null;default:''" json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url"`
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserRole grants one role to one user. Kept out of Profile so a profile
// self-update can never touch privilege.
type UserRole struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_role" json:"user_id"`
	Role      string    `gorm:"not null;uniqueIndex:idx_user_role" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ValidRole reports whether role is one the system knows about.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

func (p Profile) Owner() uuid.UUID { return p.UserID }
