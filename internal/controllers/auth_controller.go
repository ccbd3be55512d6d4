package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus_hub/internal/identity"
	"campus_hub/internal/models"
	"campus_hub/internal/session"
)

type signupInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignupUser creates an account; its profile and default role are derived
// in the same transaction.
func (h *Handler) SignupUser(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.identity.SignUp(c.Request.Context(), input.Email, input.Password,
		identity.SignupMetadata{Name: input.Name, AvatarURL: input.AvatarURL},
		c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}

	session.Set(c, res.Session)
	h.logActivity(c, models.ActionSignUp, models.EntityAccount, res.Session.UserID, nil)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) LoginUser(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.identity.SignIn(c.Request.Context(), input.Email, input.Password, c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}

	session.Set(c, res.Session)
	h.logActivity(c, models.ActionSignIn, models.EntityAccount, res.Session.UserID, nil)
	c.JSON(http.StatusOK, res)
}

// LogoutUser revokes the session behind the presented token.
func (h *Handler) LogoutUser(c *gin.Context) {
	s, err := session.Require(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.identity.SignOut(c.Request.Context(), s.ID); err != nil {
		respondError(c, err)
		return
	}
	h.logActivity(c, models.ActionSignOut, models.EntityAccount, s.UserID, nil)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

func (h *Handler) CurrentSession(c *gin.Context) {
	s, err := session.Require(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s})
}
