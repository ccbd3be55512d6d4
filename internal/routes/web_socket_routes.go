package routes

import (
	"github.com/gin-gonic/gin"

	"campus_hub/internal/controllers"
	"campus_hub/internal/middleware"
	"campus_hub/internal/models"
)

func WebSocketRoutes(r *gin.RouterGroup, h *controllers.Handler, auth middleware.Authenticator) {
	wsRoutes := r.Group("/ws")
	wsRoutes.Use(middleware.QueryTokenAuth(auth), middleware.RequireRole(models.RoleAdmin))
	{
		wsRoutes.GET("/emergencies", h.HandleEmergencyWebSocket)
	}
}
