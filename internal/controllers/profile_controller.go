package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus_hub/internal/models"
	"campus_hub/internal/store"
)

func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.store.GetProfile(c.Request.Context(), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var patch store.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.store.UpdateProfile(c.Request.Context(), caller(c), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	h.logActivity(c, models.ActionUpdate, models.EntityProfile, p.ID, nil)
	c.JSON(http.StatusOK, gin.H{"data": p})
}

// GetMyRoles lists the caller's role assignments. Roles are read-only here.
func (h *Handler) GetMyRoles(c *gin.Context) {
	roles, err := h.store.ListRoles(c.Request.Context(), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": roles})
}
