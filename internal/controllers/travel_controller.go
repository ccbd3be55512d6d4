package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus_hub/internal/models"
	"campus_hub/internal/store"
)

type travelPostInput struct {
	FromLocation string `json:"from_location" binding:"required"`
	ToLocation   string `json:"to_location" binding:"required"`
	TravelDate   string `json:"travel_date" binding:"required,isodate"`
	TravelTime   string `json:"travel_time" binding:"required,clock"`
	Mode         string `json:"mode" binding:"required,oneof=bus bike walk car"`
}

func (h *Handler) CreateTravelPost(c *gin.Context) {
	var input travelPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	post := models.TravelPost{
		UserID:       caller(c),
		FromLocation: input.FromLocation,
		ToLocation:   input.ToLocation,
		TravelDate:   input.TravelDate,
		TravelTime:   input.TravelTime,
		Mode:         input.Mode,
	}
	if err := h.store.CreateTravelPost(c.Request.Context(), caller(c), &post); err != nil {
		respondError(c, err)
		return
	}
	h.logActivity(c, models.ActionCreate, models.EntityTravel, post.ID, map[string]interface{}{
		"from": post.FromLocation, "to": post.ToLocation,
	})
	c.JSON(http.StatusCreated, gin.H{"data": post})
}

func (h *Handler) ListTravelPosts(c *gin.Context) {
	opts, ok := listOptions(c)
	if !ok {
		return
	}
	posts, err := h.store.ListTravelPosts(c.Request.Context(), caller(c), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": posts})
}

func (h *Handler) GetTravelPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	post, err := h.store.GetTravelPost(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (h *Handler) UpdateTravelPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch store.TravelPostPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	post, err := h.store.UpdateTravelPost(c.Request.Context(), caller(c), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	h.logActivity(c, models.ActionUpdate, models.EntityTravel, post.ID, nil)
	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (h *Handler) DeleteTravelPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteTravelPost(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	h.logActivity(c, models.ActionDelete, models.EntityTravel, id, nil)
	c.Status(http.StatusNoContent)
}
