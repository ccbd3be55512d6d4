package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus_hub/internal/models"
	"campus_hub/internal/store"
)

type errandInput struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	PickupLocation   string `json:"pickup_location"`
	DeliveryLocation string `json:"delivery_location"`
	Reward           string `json:"reward"`
}

func (h *Handler) CreateErrand(c *gin.Context) {
	var input errandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	errand := models.ErrandRequest{
		UserID:           caller(c),
		Title:            input.Title,
		Description:      input.Description,
		PickupLocation:   input.PickupLocation,
		DeliveryLocation: input.DeliveryLocation,
		Reward:           input.Reward,
	}
	if err := h.store.CreateErrand(c.Request.Context(), caller(c), &errand); err != nil {
		respondError(c, err)
		return
	}
	h.logActivity(c, models.ActionCreate, models.EntityErrand, errand.ID, map[string]interface{}{
		"title": errand.Title,
	})
	c.JSON(http.StatusCreated, gin.H{"data": errand})
}

func (h *Handler) ListErrands(c *gin.Context) {
	opts, ok := listOptions(c)
	if !ok {
		return
	}
	errands, err := h.store.ListErrands(c.Request.Context(), caller(c), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": errands})
}

func (h *Handler) GetErrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	errand, err := h.store.GetErrand(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": errand})
}

func (h *Handler) UpdateErrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch store.ErrandPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	errand, err := h.store.UpdateErrand(c.Request.Context(), caller(c), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	h.logActivity(c, models.ActionUpdate, models.EntityErrand, errand.ID, nil)
	c.JSON(http.StatusOK, gin.H{"data": errand})
}

func (h *Handler) CompleteErrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	errand, err := h.store.CompleteErrand(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.logActivity(c, models.ActionComplete, models.EntityErrand, errand.ID, nil)
	c.JSON(http.StatusOK, gin.H{"data": errand})
}

func (h *Handler) DeleteErrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteErrand(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	h.logActivity(c, models.ActionDelete, models.EntityErrand, id, nil)
	c.Status(http.StatusNoContent)
}
