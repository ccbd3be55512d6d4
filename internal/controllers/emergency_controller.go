package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus_hub/internal/models"
	"campus_hub/internal/realtime"
)

type emergencyInput struct {
	Reason   string `json:"reason" binding:"required,oneof=medical safety other"`
	Location string `json:"location" binding:"required"`
	Details  string `json:"details"`
}

// CreateEmergency raises a request and pushes it to connected admins.
func (h *Handler) CreateEmergency(c *gin.Context) {
	var input emergencyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	req := models.EmergencyRequest{
		UserID:   caller(c),
		Reason:   input.Reason,
		Location: input.Location,
		Details:  input.Details,
	}
	if err := h.store.CreateEmergency(c.Request.Context(), caller(c), &req); err != nil {
		respondError(c, err)
		return
	}
	h.hub.Publish(realtime.EventEmergencyCreated, req)
	h.logActivity(c, models.ActionCreate, models.EntityEmergency, req.ID, map[string]interface{}{
		"reason": req.Reason,
	})
	c.JSON(http.StatusCreated, gin.H{"data": req})
}

func (h *Handler) ListEmergencies(c *gin.Context) {
	opts, ok := listOptions(c)
	if !ok {
		return
	}
	reqs, err := h.store.ListEmergencies(c.Request.Context(), caller(c), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reqs})
}

func (h *Handler) GetEmergency(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, err := h.store.GetEmergency(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": req})
}

// ResolveEmergency is admin only; the store enforces that.
func (h *Handler) ResolveEmergency(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, err := h.store.ResolveEmergency(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.hub.Publish(realtime.EventEmergencyResolved, *req)
	h.logActivity(c, models.ActionResolve, models.EntityEmergency, req.ID, nil)
	c.JSON(http.StatusOK, gin.H{"data": req})
}

func (h *Handler) DeleteEmergency(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteEmergency(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	gone := models.EmergencyRequest{}
	gone.ID = id
	h.hub.Publish(realtime.EventEmergencyDeleted, gone)
	h.logActivity(c, models.ActionDelete, models.EntityEmergency, id, nil)
	c.Status(http.StatusNoContent)
}
