package routes

import (
	"github.com/gin-gonic/gin"

	"campus_hub/internal/controllers"
	"campus_hub/internal/middleware"
	"campus_hub/internal/models"
)

// AdminRoutes sets up routes accessible only by admins. The role guard only
// hides the page; the store still checks every row.
func AdminRoutes(r *gin.RouterGroup, h *controllers.Handler, auth middleware.Authenticator) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuth(auth), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/emergencies", h.AdminEmergencies)
	}
}
