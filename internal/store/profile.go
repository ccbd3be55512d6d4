package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campus_hub/internal/models"
	"campus_hub/internal/policy"
)

// ProfilePatch covers what a user may change about themselves. Email is a
// copy of the account email and is not editable here.
type ProfilePatch struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
}

func (s *Store) GetProfile(ctx context.Context, caller uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).First(&p, "user_id = ?", caller).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.authz.Authorize(ctx, caller, policy.Profiles, policy.Select, p.UserID); err != nil {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *Store) UpdateProfile(ctx context.Context, caller uuid.UUID, patch ProfilePatch) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).First(&p, "user_id = ?", caller).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.authz.Authorize(ctx, caller, policy.Profiles, policy.Update, p.UserID); err != nil {
		return nil, err
	}
	u := map[string]interface{}{}
	setString(u, "name", patch.Name)
	setString(u, "avatar_url", patch.AvatarURL)
	if err := s.update(ctx, &p, p.ID, u); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListRoles returns the caller's own role assignments.
func (s *Store) ListRoles(ctx context.Context, caller uuid.UUID) ([]models.UserRole, error) {
	roles := []models.UserRole{}
	scope, err := s.authz.SelectScope(ctx, caller, policy.Roles)
	if err != nil || scope == policy.ScopeNone {
		return roles, err
	}
	err = s.db.WithContext(ctx).Where("user_id = ?", caller).Order("role").Find(&roles).Error
	return roles, translate(err)
}

// RoleNames is the privileged lookup used when a session is established.
func (s *Store) RoleNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&models.UserRole{}).
		Where("user_id = ?", userID).Order("role").Pluck("role", &names).Error
	return names, err
}

// GrantRole is privileged: no HTTP route reaches it. Granting a role the
// user already holds is a no-op.
func (s *Store) GrantRole(ctx context.Context, userID uuid.UUID, role string) error {
	if !models.ValidRole(role) {
		return invalid("role", "unknown role %q", role)
	}
	has, err := s.HasRole(ctx, userID, role)
	if err != nil || has {
		return err
	}
	err = s.db.WithContext(ctx).Create(&models.UserRole{UserID: userID, Role: role}).Error
	if IsUniqueViolation(err) {
		return nil
	}
	return translate(err)
}

// RevokeRole is privileged.
func (s *Store) RevokeRole(ctx context.Context, userID uuid.UUID, role string) error {
	res := s.db.WithContext(ctx).Where("user_id = ? AND role = ?", userID, role).Delete(&models.UserRole{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	err := s.db.WithContext(ctx).First(&a, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAccount is privileged. Foreign keys cascade to the profile, roles,
// sessions and everything the account owns; activity rows keep a NULL actor.
func (s *Store) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Account{}, "id = ?", userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
