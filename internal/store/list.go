package store

import (
	"context"

	"github.com/google/uuid"

	"campus_hub/internal/policy"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// ListOptions narrows a listing. Results are always newest first.
type ListOptions struct {
	Limit   int
	Offset  int
	Status  string
	OwnerID uuid.UUID
}

func (o ListOptions) normalized() ListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

// listScoped applies the resource's select rule as a row filter.
func listScoped[T any](ctx context.Context, s *Store, caller uuid.UUID, res policy.Resource, ownerColumn string, opts ListOptions) ([]T, error) {
	out := []T{}
	scope, err := s.authz.SelectScope(ctx, caller, res)
	if err != nil || scope == policy.ScopeNone {
		return out, err
	}
	q := s.db.WithContext(ctx).Model(new(T))
	if scope == policy.ScopeOwn {
		q = q.Where(ownerColumn+" = ?", caller)
	}
	if opts.OwnerID != uuid.Nil {
		q = q.Where(ownerColumn+" = ?", opts.OwnerID)
	}
	if opts.Status != "" {
		q = q.Where("status = ?", opts.Status)
	}
	o := opts.normalized()
	err = q.Order("created_at DESC").Limit(o.Limit).Offset(o.Offset).Find(&out).Error
	return out, translate(err)
}

func countScoped[T any](ctx context.Context, s *Store, caller uuid.UUID, res policy.Resource, ownerColumn string, opts ListOptions) (int64, error) {
	scope, err := s.authz.SelectScope(ctx, caller, res)
	if err != nil || scope == policy.ScopeNone {
		return 0, err
	}
	q := s.db.WithContext(ctx).Model(new(T))
	if scope == policy.ScopeOwn {
		q = q.Where(ownerColumn+" = ?", caller)
	}
	if opts.OwnerID != uuid.Nil {
		q = q.Where(ownerColumn+" = ?", opts.OwnerID)
	}
	if opts.Status != "" {
		q = q.Where("status = ?", opts.Status)
	}
	var n int64
	err = q.Count(&n).Error
	return n, translate(err)
}
