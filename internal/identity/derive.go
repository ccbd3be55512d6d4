package identity

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"campus_hub/internal/models"
)

// deriveProfileAndRole runs inside the signup transaction. It writes with
// the transaction's privileges; the profile and role tables accept no
// inserts from callers.
func deriveProfileAndRole(tx *gorm.DB, acct *models.Account, meta SignupMetadata) error {
	profile := models.Profile{
		UserID:    acct.ID,
		Name:      strings.TrimSpace(meta.Name),
		Email:     acct.Email,
		AvatarURL: meta.AvatarURL,
	}
	if err := tx.Create(&profile).Error; err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	if err := tx.Create(&models.UserRole{UserID: acct.ID, Role: models.RoleUser}).Error; err != nil {
		return fmt.Errorf("create default role: %w", err)
	}
	acct.Profile = &profile
	return nil
}
