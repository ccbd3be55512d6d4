package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campus_hub/internal/geo"
	"campus_hub/internal/models"
	"campus_hub/internal/store"
)

type carpoolInput struct {
	FromLocation   string          `json:"from_location" binding:"required"`
	ToLocation     string          `json:"to_location" binding:"required"`
	DepartureDate  string          `json:"departure_date" binding:"required,isodate"`
	DepartureTime  string          `json:"departure_time" binding:"required,clock"`
	SeatsAvailable *int            `json:"seats_available" binding:"required,min=0"`
	SeatsTaken     *int            `json:"seats_taken" binding:"omitempty,min=0"`
	PricePerSeat   string          `json:"price_per_seat"`
	Notes          string          `json:"notes"`
	RouteGeometry  json.RawMessage `json:"route_geometry"`
}

type carpoolPatchInput struct {
	store.CarpoolPatch
	// Absent leaves the route alone, null clears it.
	RouteGeometry json.RawMessage `json:"route_geometry"`
}

// carpoolResponse exposes the stored WKB route as GeoJSON.
type carpoolResponse struct {
	models.CarpoolRide
	RouteGeometry json.RawMessage `json:"route_geometry"`
}

func toCarpoolResponse(ride models.CarpoolRide) carpoolResponse {
	out := carpoolResponse{CarpoolRide: ride, RouteGeometry: json.RawMessage("null")}
	if len(ride.RouteGeometry) == 0 {
		return out
	}
	gj, err := geo.ToGeoJSON(ride.RouteGeometry)
	if err != nil {
		logrus.WithError(err).WithField("ride_id", ride.ID).Warn("stored route geometry is unreadable")
		return out
	}
	out.RouteGeometry = json.RawMessage(gj)
	return out
}

func routeWKB(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	b, err := geo.ToWKB(string(raw))
	if err != nil {
		return nil, &store.ValidationError{Field: "route_geometry", Message: err.Error()}
	}
	return b, nil
}

func (h *Handler) CreateCarpoolRide(c *gin.Context) {
	var input carpoolInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	route, err := routeWKB(input.RouteGeometry)
	if err != nil {
		respondError(c, err)
		return
	}

	ride := models.CarpoolRide{
		DriverID:       caller(c),
		FromLocation:   input.FromLocation,
		ToLocation:     input.ToLocation,
		DepartureDate:  input.DepartureDate,
		DepartureTime:  input.DepartureTime,
		SeatsAvailable: *input.SeatsAvailable,
		PricePerSeat:   input.PricePerSeat,
		Notes:          input.Notes,
		RouteGeometry:  route,
	}
	if input.SeatsTaken != nil {
		ride.SeatsTaken = *input.SeatsTaken
	}
	if err := h.store.CreateCarpoolRide(c.Request.Context(), caller(c), &ride); err != nil {
		respondError(c, err)
		return
	}
	h.logActivity(c, models.ActionCreate, models.EntityCarpool, ride.ID, map[string]interface{}{
		"from": ride.FromLocation, "to": ride.ToLocation,
	})
	c.JSON(http.StatusCreated, gin.H{"data": toCarpoolResponse(ride)})
}

func (h *Handler) ListCarpoolRides(c *gin.Context) {
	opts, ok := listOptions(c)
	if !ok {
		return
	}
	rides, err := h.store.ListCarpoolRides(c.Request.Context(), caller(c), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]carpoolResponse, 0, len(rides))
	for _, r := range rides {
		out = append(out, toCarpoolResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (h *Handler) GetCarpoolRide(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ride, err := h.store.GetCarpoolRide(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toCarpoolResponse(*ride)})
}

func (h *Handler) UpdateCarpoolRide(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input carpoolPatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	patch := input.CarpoolPatch
	if len(input.RouteGeometry) > 0 {
		route, err := routeWKB(input.RouteGeometry)
		if err != nil {
			respondError(c, err)
			return
		}
		if route == nil {
			route = []byte{}
		}
		patch.RouteGeometry = &route
	}

	ride, err := h.store.UpdateCarpoolRide(c.Request.Context(), caller(c), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	h.logActivity(c, models.ActionUpdate, models.EntityCarpool, ride.ID, nil)
	c.JSON(http.StatusOK, gin.H{"data": toCarpoolResponse(*ride)})
}

func (h *Handler) CompleteCarpoolRide(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ride, err := h.store.CompleteCarpoolRide(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.logActivity(c, models.ActionComplete, models.EntityCarpool, ride.ID, nil)
	c.JSON(http.StatusOK, gin.H{"data": toCarpoolResponse(*ride)})
}

func (h *Handler) DeleteCarpoolRide(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteCarpoolRide(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	h.logActivity(c, models.ActionDelete, models.EntityCarpool, id, nil)
	c.Status(http.StatusNoContent)
}
