package store

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"campus_hub/internal/models"
	"campus_hub/internal/policy"
)

type ActivityEntry struct {
	Action     string
	EntityType string
	EntityID   uuid.UUID
	Details    map[string]interface{}
}

type ActivityFilter struct {
	EntityType string
	ActionType string
	Limit      int
	Offset     int
}

// LogActivity appends an audit entry. actor may be uuid.Nil for anonymous
// service writes. Entries are never updated or deleted.
func (s *Store) LogActivity(ctx context.Context, actor uuid.UUID, e ActivityEntry) (*models.ActivityLog, error) {
	if e.Action == "" {
		return nil, invalid("action_type", "is required")
	}
	if e.EntityType == "" {
		return nil, invalid("entity_type", "is required")
	}
	if err := s.authz.Authorize(ctx, actor, policy.ActivityLogs, policy.Insert, actor); err != nil {
		return nil, err
	}
	entry := &models.ActivityLog{
		ActionType: e.Action,
		EntityType: e.EntityType,
	}
	if actor != uuid.Nil {
		entry.UserID = &actor
	}
	if e.EntityID != uuid.Nil {
		id := e.EntityID
		entry.EntityID = &id
	}
	if e.Details != nil {
		raw, err := json.Marshal(e.Details)
		if err != nil {
			return nil, invalid("details", "not serialisable: %v", err)
		}
		entry.Details = datatypes.JSON(raw)
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, translate(err)
	}
	return entry, nil
}

// ListActivity returns the caller's own entries, or all entries for an admin.
func (s *Store) ListActivity(ctx context.Context, caller uuid.UUID, f ActivityFilter) ([]models.ActivityLog, error) {
	out := []models.ActivityLog{}
	scope, err := s.authz.SelectScope(ctx, caller, policy.ActivityLogs)
	if err != nil || scope == policy.ScopeNone {
		return out, err
	}
	q := s.db.WithContext(ctx).Model(&models.ActivityLog{})
	if scope == policy.ScopeOwn {
		q = q.Where("user_id = ?", caller)
	}
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.ActionType != "" {
		q = q.Where("action_type = ?", f.ActionType)
	}
	o := ListOptions{Limit: f.Limit, Offset: f.Offset}.normalized()
	err = q.Order("created_at DESC").Limit(o.Limit).Offset(o.Offset).Find(&out).Error
	return out, translate(err)
}
