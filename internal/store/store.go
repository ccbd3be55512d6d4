// Package store is the relational store with row-level authorization. Every
// exported method that takes a caller runs the policy layer before reading
// or writing; methods without a caller are privileged and are only used by
// signup derivation and the operator CLI.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campus_hub/internal/models"
	"campus_hub/internal/policy"
)

type Store struct {
	db    *gorm.DB
	authz *policy.Authorizer
	now   func() time.Time
}

func New(db *gorm.DB, rules policy.Rules) *Store {
	s := &Store{db: db, now: time.Now}
	s.authz = policy.New(s, rules)
	return s
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Authorizer() *policy.Authorizer {
	return s.authz
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type owned interface {
	Owner() uuid.UUID
}

func loadRow[T owned](ctx context.Context, db *gorm.DB, id uuid.UUID) (*T, error) {
	var row T
	if err := db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

// getVisible loads a row for reading. A row the select rule hides is
// reported as missing.
func getVisible[T owned](ctx context.Context, s *Store, caller uuid.UUID, res policy.Resource, id uuid.UUID) (*T, error) {
	row, err := loadRow[T](ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(ctx, caller, res, policy.Select, (*row).Owner()); err != nil {
		if errors.Is(err, policy.ErrDenied) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row, nil
}

// loadForWrite loads a row and checks op against its current owner.
func loadForWrite[T owned](ctx context.Context, s *Store, caller uuid.UUID, res policy.Resource, op policy.Operation, id uuid.UUID) (*T, error) {
	row, err := loadRow[T](ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(ctx, caller, res, op, (*row).Owner()); err != nil {
		return nil, err
	}
	return row, nil
}

// update writes the changed columns of row and reloads it.
func (s *Store) update(ctx context.Context, row interface{}, id uuid.UUID, updates map[string]interface{}) error {
	db := s.db.WithContext(ctx)
	if len(updates) > 0 {
		if err := db.Model(row).Where("id = ?", id).Updates(updates).Error; err != nil {
			return translate(err)
		}
	}
	return translate(db.First(row, "id = ?", id).Error)
}

func (s *Store) insert(ctx context.Context, caller uuid.UUID, res policy.Resource, row owned) error {
	if err := s.authz.Authorize(ctx, caller, res, policy.Insert, row.Owner()); err != nil {
		return err
	}
	return translate(s.db.WithContext(ctx).Create(row).Error)
}

func (s *Store) remove(ctx context.Context, row interface{}, id uuid.UUID) error {
	return translate(s.db.WithContext(ctx).Delete(row, "id = ?", id).Error)
}

// HasRole reads user_roles directly and is the RoleChecker behind every
// admin rule. It must not go through the policy layer.
func (s *Store) HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
