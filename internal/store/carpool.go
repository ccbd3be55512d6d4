package store

import (
	"context"

	"github.com/google/uuid"

	"campus_hub/internal/models"
	"campus_hub/internal/policy"
)

// CarpoolPatch edits a ride. SeatsTaken is deliberately not compared with
// SeatsAvailable.
type CarpoolPatch struct {
	FromLocation   *string `json:"from_location" binding:"omitempty,min=1"`
	ToLocation     *string `json:"to_location" binding:"omitempty,min=1"`
	DepartureDate  *string `json:"departure_date" binding:"omitempty,isodate"`
	DepartureTime  *string `json:"departure_time" binding:"omitempty,clock"`
	SeatsAvailable *int    `json:"seats_available"`
	SeatsTaken     *int    `json:"seats_taken"`
	PricePerSeat   *string `json:"price_per_seat"`
	Notes          *string `json:"notes"`

	// RouteGeometry is WKB; a non-nil empty slice clears the route.
	RouteGeometry *[]byte `json:"-"`
}

func (p CarpoolPatch) updates() (map[string]interface{}, error) {
	u := map[string]interface{}{}
	if p.SeatsAvailable != nil {
		if *p.SeatsAvailable < 0 {
			return nil, invalid("seats_available", "must not be negative")
		}
		u["seats_available"] = *p.SeatsAvailable
	}
	if p.SeatsTaken != nil {
		if *p.SeatsTaken < 0 {
			return nil, invalid("seats_taken", "must not be negative")
		}
		u["seats_taken"] = *p.SeatsTaken
	}
	if p.RouteGeometry != nil {
		if len(*p.RouteGeometry) == 0 {
			u["route_geometry"] = nil
		} else {
			u["route_geometry"] = *p.RouteGeometry
		}
	}
	setString(u, "from_location", p.FromLocation)
	setString(u, "to_location", p.ToLocation)
	setString(u, "departure_date", p.DepartureDate)
	setString(u, "departure_time", p.DepartureTime)
	setString(u, "price_per_seat", p.PricePerSeat)
	setString(u, "notes", p.Notes)
	return u, nil
}

func (s *Store) CreateCarpoolRide(ctx context.Context, caller uuid.UUID, ride *models.CarpoolRide) error {
	if ride.SeatsAvailable < 0 {
		return invalid("seats_available", "must not be negative")
	}
	if ride.SeatsTaken < 0 {
		return invalid("seats_taken", "must not be negative")
	}
	ride.Status = models.RideActive
	ride.CompletedAt = nil
	return s.insert(ctx, caller, policy.CarpoolRides, ride)
}

func (s *Store) GetCarpoolRide(ctx context.Context, caller, id uuid.UUID) (*models.CarpoolRide, error) {
	return getVisible[models.CarpoolRide](ctx, s, caller, policy.CarpoolRides, id)
}

func (s *Store) ListCarpoolRides(ctx context.Context, caller uuid.UUID, opts ListOptions) ([]models.CarpoolRide, error) {
	return listScoped[models.CarpoolRide](ctx, s, caller, policy.CarpoolRides, "driver_id", opts)
}

func (s *Store) CountCarpoolRides(ctx context.Context, caller uuid.UUID, opts ListOptions) (int64, error) {
	return countScoped[models.CarpoolRide](ctx, s, caller, policy.CarpoolRides, "driver_id", opts)
}

func (s *Store) UpdateCarpoolRide(ctx context.Context, caller, id uuid.UUID, patch CarpoolPatch) (*models.CarpoolRide, error) {
	updates, err := patch.updates()
	if err != nil {
		return nil, err
	}
	ride, err := loadForWrite[models.CarpoolRide](ctx, s, caller, policy.CarpoolRides, policy.Update, id)
	if err != nil {
		return nil, err
	}
	if err := s.update(ctx, ride, id, updates); err != nil {
		return nil, err
	}
	return ride, nil
}

func (s *Store) CompleteCarpoolRide(ctx context.Context, caller, id uuid.UUID) (*models.CarpoolRide, error) {
	ride, err := loadRow[models.CarpoolRide](ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.AuthorizeCompletion(ctx, caller, policy.CarpoolRides, ride.DriverID, ride.Status == models.RideActive); err != nil {
		return nil, err
	}
	err = s.update(ctx, ride, id, map[string]interface{}{
		"status":       models.RideCompleted,
		"completed_at": s.now(),
	})
	if err != nil {
		return nil, err
	}
	return ride, nil
}

func (s *Store) DeleteCarpoolRide(ctx context.Context, caller, id uuid.UUID) error {
	ride, err := loadForWrite[models.CarpoolRide](ctx, s, caller, policy.CarpoolRides, policy.Delete, id)
	if err != nil {
		return err
	}
	return s.remove(ctx, ride, id)
}
