package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campus_hub/internal/store"
)

type activityInput struct {
	ActionType string                 `json:"action_type" binding:"required"`
	EntityType string                 `json:"entity_type" binding:"required"`
	EntityID   string                 `json:"entity_id" binding:"omitempty,uuid"`
	Details    map[string]interface{} `json:"details"`
}

// CreateActivity lets clients append their own audit entries. The actor is
// always the session user, or none for anonymous callers.
func (h *Handler) CreateActivity(c *gin.Context) {
	var input activityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	var entityID uuid.UUID
	if input.EntityID != "" {
		id, err := uuid.Parse(input.EntityID)
		if err != nil {
			bindError(c, err)
			return
		}
		entityID = id
	}

	entry, err := h.store.LogActivity(c.Request.Context(), caller(c), store.ActivityEntry{
		Action:     input.ActionType,
		EntityType: input.EntityType,
		EntityID:   entityID,
		Details:    input.Details,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": entry})
}

// ListActivity returns the caller's entries; admins see everyone's.
func (h *Handler) ListActivity(c *gin.Context) {
	f := store.ActivityFilter{
		EntityType: c.Query("entity_type"),
		ActionType: c.Query("action_type"),
	}
	opts, ok := listOptions(c)
	if !ok {
		return
	}
	f.Limit, f.Offset = opts.Limit, opts.Offset

	entries, err := h.store.ListActivity(c.Request.Context(), caller(c), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}
