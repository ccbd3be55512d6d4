package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base replaces gorm.Model for tables keyed by UUID. Rows are hard-deleted,
// so there is no DeletedAt column.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a random ID when the caller did not set one.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// All lists every model in migration order. Account must come first since
// every other table references it.
func All() []interface{} {
	return []interface{}{
		&Account{},
		&Session{},
		&Profile{},
		&UserRole{},
		&TravelPost{},
		&EmergencyRequest{},
		&ErrandRequest{},
		&CarpoolRide{},
		&ActivityLog{},
	}
}
