package routes

import (
	"github.com/gin-gonic/gin"

	"campus_hub/internal/controllers"
	"campus_hub/internal/middleware"
)

func AuthRoutes(r *gin.RouterGroup, h *controllers.Handler, auth middleware.Authenticator) {
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/signup", h.SignupUser)
		authRoutes.POST("/login", h.LoginUser)
		authRoutes.POST("/logout", middleware.RequireAuth(auth), h.LogoutUser)
		authRoutes.GET("/session", middleware.RequireAuth(auth), h.CurrentSession)
	}
}

func ProfileRoutes(r *gin.RouterGroup, h *controllers.Handler, auth middleware.Authenticator) {
	profile := r.Group("/profile")
	profile.Use(middleware.RequireAuth(auth))
	{
		profile.GET("", h.GetProfile)
		profile.PATCH("", h.UpdateProfile)
		profile.GET("/roles", h.GetMyRoles)
	}
}
