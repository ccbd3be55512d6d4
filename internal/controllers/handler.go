// Package controllers holds the JSON views. Each view reads the caller
// from the session context and lets the store enforce row policy.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"campus_hub/internal/identity"
	"campus_hub/internal/realtime"
	"campus_hub/internal/session"
	"campus_hub/internal/store"
)

type Handler struct {
	store    *store.Store
	identity *identity.Service
	hub      *realtime.EmergencyHub
}

func New(st *store.Store, id *identity.Service, hub *realtime.EmergencyHub) *Handler {
	RegisterValidators()
	return &Handler{store: st, identity: id, hub: hub}
}

// caller is the authenticated user, or uuid.Nil for anonymous requests.
func caller(c *gin.Context) uuid.UUID {
	return session.From(c).UserID
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// listOptions reads limit, offset, status and mine from the query string.
func listOptions(c *gin.Context) (store.ListOptions, bool) {
	var opts store.ListOptions
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return opts, false
		}
		opts.Limit = n
	}
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
			return opts, false
		}
		opts.Offset = n
	}
	opts.Status = c.Query("status")
	if c.Query("mine") == "true" {
		opts.OwnerID = caller(c)
	}
	return opts, true
}

// logActivity records an audit entry for a mutation that already succeeded.
// A failure here never fails the request.
func (h *Handler) logActivity(c *gin.Context, action, entity string, id uuid.UUID, details map[string]interface{}) {
	actor := caller(c)
	_, err := h.store.LogActivity(c.Request.Context(), actor, store.ActivityEntry{
		Action:     action,
		EntityType: entity,
		EntityID:   id,
		Details:    details,
	})
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"action":    action,
			"entity":    entity,
			"entity_id": id,
		}).Warn("could not record activity")
	}
}
