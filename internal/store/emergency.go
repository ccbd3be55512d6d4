package store

import (
	"context"

	"github.com/google/uuid"

	"campus_hub/internal/models"
	"campus_hub/internal/policy"
)

// CreateEmergency always opens the request, whatever status the caller sent.
func (s *Store) CreateEmergency(ctx context.Context, caller uuid.UUID, req *models.EmergencyRequest) error {
	if !models.ValidEmergencyReason(req.Reason) {
		return invalid("reason", "must be one of medical, safety, other")
	}
	req.Status = models.EmergencyOpen
	req.ResolvedAt = nil
	req.ResolvedBy = nil
	return s.insert(ctx, caller, policy.Emergencies, req)
}

func (s *Store) GetEmergency(ctx context.Context, caller, id uuid.UUID) (*models.EmergencyRequest, error) {
	return getVisible[models.EmergencyRequest](ctx, s, caller, policy.Emergencies, id)
}

// ListEmergencies returns the caller's own requests, or every request for
// an admin.
func (s *Store) ListEmergencies(ctx context.Context, caller uuid.UUID, opts ListOptions) ([]models.EmergencyRequest, error) {
	return listScoped[models.EmergencyRequest](ctx, s, caller, policy.Emergencies, "user_id", opts)
}

func (s *Store) CountEmergencies(ctx context.Context, caller uuid.UUID, opts ListOptions) (int64, error) {
	return countScoped[models.EmergencyRequest](ctx, s, caller, policy.Emergencies, "user_id", opts)
}

// ResolveEmergency moves a request to resolved. Resolving twice overwrites
// resolved_at and resolved_by; there is no version check, so the last
// writer wins.
func (s *Store) ResolveEmergency(ctx context.Context, caller, id uuid.UUID) (*models.EmergencyRequest, error) {
	req, err := loadForWrite[models.EmergencyRequest](ctx, s, caller, policy.Emergencies, policy.Update, id)
	if err != nil {
		return nil, err
	}
	err = s.update(ctx, req, id, map[string]interface{}{
		"status":      models.EmergencyResolved,
		"resolved_at": s.now(),
		"resolved_by": caller,
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Store) DeleteEmergency(ctx context.Context, caller, id uuid.UUID) error {
	req, err := loadForWrite[models.EmergencyRequest](ctx, s, caller, policy.Emergencies, policy.Delete, id)
	if err != nil {
		return err
	}
	return s.remove(ctx, req, id)
}
