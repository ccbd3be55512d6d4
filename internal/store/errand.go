package store

import (
	"context"

	"github.com/google/uuid"

	"campus_hub/internal/models"
	"campus_hub/internal/policy"
)

// ErrandPatch edits an errand's description. Status only changes through
// CompleteErrand.
type ErrandPatch struct {
	Title            *string `json:"title" binding:"omitempty,min=1"`
	Description      *string `json:"description"`
	PickupLocation   *string `json:"pickup_location"`
	DeliveryLocation *string `json:"delivery_location"`
	Reward           *string `json:"reward"`
}

func (p ErrandPatch) updates() map[string]interface{} {
	u := map[string]interface{}{}
	setString(u, "title", p.Title)
	setString(u, "description", p.Description)
	setString(u, "pickup_location", p.PickupLocation)
	setString(u, "delivery_location", p.DeliveryLocation)
	setString(u, "reward", p.Reward)
	return u
}

func (s *Store) CreateErrand(ctx context.Context, caller uuid.UUID, errand *models.ErrandRequest) error {
	if errand.Title == "" {
		return invalid("title", "is required")
	}
	errand.Status = models.ErrandOpen
	errand.CompletedAt = nil
	errand.CompletedBy = nil
	return s.insert(ctx, caller, policy.Errands, errand)
}

func (s *Store) GetErrand(ctx context.Context, caller, id uuid.UUID) (*models.ErrandRequest, error) {
	return getVisible[models.ErrandRequest](ctx, s, caller, policy.Errands, id)
}

func (s *Store) ListErrands(ctx context.Context, caller uuid.UUID, opts ListOptions) ([]models.ErrandRequest, error) {
	return listScoped[models.ErrandRequest](ctx, s, caller, policy.Errands, "user_id", opts)
}

func (s *Store) CountErrands(ctx context.Context, caller uuid.UUID, opts ListOptions) (int64, error) {
	return countScoped[models.ErrandRequest](ctx, s, caller, policy.Errands, "user_id", opts)
}

func (s *Store) UpdateErrand(ctx context.Context, caller, id uuid.UUID, patch ErrandPatch) (*models.ErrandRequest, error) {
	errand, err := loadForWrite[models.ErrandRequest](ctx, s, caller, policy.Errands, policy.Update, id)
	if err != nil {
		return nil, err
	}
	if err := s.update(ctx, errand, id, patch.updates()); err != nil {
		return nil, err
	}
	return errand, nil
}

// CompleteErrand records caller as the one who ran the errand. Under the
// default rules only the owner passes. A helper can only complete an open
// errand, so the first helper's credit is never overwritten.
func (s *Store) CompleteErrand(ctx context.Context, caller, id uuid.UUID) (*models.ErrandRequest, error) {
	errand, err := loadRow[models.ErrandRequest](ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.AuthorizeCompletion(ctx, caller, policy.Errands, errand.UserID, errand.Status == models.ErrandOpen); err != nil {
		return nil, err
	}
	err = s.update(ctx, errand, id, map[string]interface{}{
		"status":       models.ErrandCompleted,
		"completed_at": s.now(),
		"completed_by": caller,
	})
	if err != nil {
		return nil, err
	}
	return errand, nil
}

func (s *Store) DeleteErrand(ctx context.Context, caller, id uuid.UUID) error {
	errand, err := loadForWrite[models.ErrandRequest](ctx, s, caller, policy.Errands, policy.Delete, id)
	if err != nil {
		return err
	}
	return s.remove(ctx, errand, id)
}
