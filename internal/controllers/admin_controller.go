package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus_hub/internal/models"
	"campus_hub/internal/store"
)

// AdminEmergencies is the triage queue. It shows open requests unless a
// status is given; status=all lists everything.
func (h *Handler) AdminEmergencies(c *gin.Context) {
	opts, ok := listOptions(c)
	if !ok {
		return
	}
	switch opts.Status {
	case "":
		opts.Status = models.EmergencyOpen
	case "all":
		opts.Status = ""
	}

	ctx := c.Request.Context()
	reqs, err := h.store.ListEmergencies(ctx, caller(c), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	open, err := h.store.CountEmergencies(ctx, caller(c), store.ListOptions{Status: models.EmergencyOpen})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reqs, "open_count": open})
}
