package store

import (
	"context"

	"github.com/google/uuid"

	"campus_hub/internal/models"
	"campus_hub/internal/policy"
)

type TravelPostPatch struct {
	FromLocation *string `json:"from_location" binding:"omitempty,min=1"`
	ToLocation   *string `json:"to_location" binding:"omitempty,min=1"`
	TravelDate   *string `json:"travel_date" binding:"omitempty,isodate"`
	TravelTime   *string `json:"travel_time" binding:"omitempty,clock"`
	Mode         *string `json:"mode" binding:"omitempty,oneof=bus bike walk car"`
	Status       *string `json:"status" binding:"omitempty,min=1"`
}

func (p TravelPostPatch) updates() (map[string]interface{}, error) {
	u := map[string]interface{}{}
	if p.Mode != nil {
		if !models.ValidTravelMode(*p.Mode) {
			return nil, invalid("mode", "unknown travel mode %q", *p.Mode)
		}
		u["mode"] = *p.Mode
	}
	setString(u, "from_location", p.FromLocation)
	setString(u, "to_location", p.ToLocation)
	setString(u, "travel_date", p.TravelDate)
	setString(u, "travel_time", p.TravelTime)
	setString(u, "status", p.Status)
	return u, nil
}

func setString(u map[string]interface{}, column string, v *string) {
	if v != nil {
		u[column] = *v
	}
}

func (s *Store) CreateTravelPost(ctx context.Context, caller uuid.UUID, post *models.TravelPost) error {
	if !models.ValidTravelMode(post.Mode) {
		return invalid("mode", "unknown travel mode %q", post.Mode)
	}
	if post.Status == "" {
		post.Status = models.TravelActive
	}
	return s.insert(ctx, caller, policy.TravelPosts, post)
}

func (s *Store) GetTravelPost(ctx context.Context, caller, id uuid.UUID) (*models.TravelPost, error) {
	return getVisible[models.TravelPost](ctx, s, caller, policy.TravelPosts, id)
}

func (s *Store) ListTravelPosts(ctx context.Context, caller uuid.UUID, opts ListOptions) ([]models.TravelPost, error) {
	return listScoped[models.TravelPost](ctx, s, caller, policy.TravelPosts, "user_id", opts)
}

func (s *Store) UpdateTravelPost(ctx context.Context, caller, id uuid.UUID, patch TravelPostPatch) (*models.TravelPost, error) {
	updates, err := patch.updates()
	if err != nil {
		return nil, err
	}
	post, err := loadForWrite[models.TravelPost](ctx, s, caller, policy.TravelPosts, policy.Update, id)
	if err != nil {
		return nil, err
	}
	if err := s.update(ctx, post, id, updates); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Store) DeleteTravelPost(ctx context.Context, caller, id uuid.UUID) error {
	post, err := loadForWrite[models.TravelPost](ctx, s, caller, policy.TravelPosts, policy.Delete, id)
	if err != nil {
		return err
	}
	return s.remove(ctx, post, id)
}
