package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus_hub/internal/models"
	"campus_hub/internal/store"
)

const dashboardLimit = 10

type dashboard struct {
	TravelPosts        []models.TravelPost       `json:"travel_posts"`
	OpenErrands        []models.ErrandRequest    `json:"open_errands"`
	ActiveRides        []carpoolResponse         `json:"active_rides"`
	MyOpenEmergencies  []models.EmergencyRequest `json:"my_open_emergencies"`
	OpenEmergencyCount *int64                    `json:"open_emergency_count,omitempty"`
}

// GetDashboard gathers the landing page: the newest travel posts, open
// errands, active rides, the caller's own open emergencies and, for admins,
// the number of open emergencies campus wide.
func (h *Handler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	me := caller(c)
	var out dashboard
	var err error

	if out.TravelPosts, err = h.store.ListTravelPosts(ctx, me, store.ListOptions{Limit: dashboardLimit}); err != nil {
		respondError(c, err)
		return
	}
	if out.OpenErrands, err = h.store.ListErrands(ctx, me, store.ListOptions{Limit: dashboardLimit, Status: models.ErrandOpen}); err != nil {
		respondError(c, err)
		return
	}
	rides, err := h.store.ListCarpoolRides(ctx, me, store.ListOptions{Limit: dashboardLimit, Status: models.RideActive})
	if err != nil {
		respondError(c, err)
		return
	}
	out.ActiveRides = make([]carpoolResponse, 0, len(rides))
	for _, r := range rides {
		out.ActiveRides = append(out.ActiveRides, toCarpoolResponse(r))
	}
	if out.MyOpenEmergencies, err = h.store.ListEmergencies(ctx, me, store.ListOptions{
		Limit: dashboardLimit, Status: models.EmergencyOpen, OwnerID: me,
	}); err != nil {
		respondError(c, err)
		return
	}

	isAdmin, err := h.store.Authorizer().IsAdmin(ctx, me)
	if err != nil {
		respondError(c, err)
		return
	}
	if isAdmin {
		n, err := h.store.CountEmergencies(ctx, me, store.ListOptions{Status: models.EmergencyOpen})
		if err != nil {
			respondError(c, err)
			return
		}
		out.OpenEmergencyCount = &n
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}
