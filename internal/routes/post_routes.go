package routes

import (
	"github.com/gin-gonic/gin"

	"campus_hub/internal/controllers"
	"campus_hub/internal/middleware"
)

func TravelRoutes(r *gin.RouterGroup, h *controllers.Handler, auth middleware.Authenticator) {
	travel := r.Group("/travel-posts")
	travel.Use(middleware.RequireAuth(auth))
	{
		travel.GET("", h.ListTravelPosts)
		travel.POST("", h.CreateTravelPost)
		travel.GET("/:id", h.GetTravelPost)
		travel.PATCH("/:id", h.UpdateTravelPost)
		travel.DELETE("/:id", h.DeleteTravelPost)
	}
}

func EmergencyRoutes(r *gin.RouterGroup, h *controllers.Handler, auth middleware.Authenticator) {
	emergencies := r.Group("/emergencies")
	emergencies.Use(middleware.RequireAuth(auth))
	{
		emergencies.GET("", h.ListEmergencies)
		emergencies.POST("", h.CreateEmergency)
		emergencies.GET("/:id", h.GetEmergency)
		emergencies.DELETE("/:id", h.DeleteEmergency)
		emergencies.POST("/:id/resolve", h.ResolveEmergency)
	}
}

// ErrandRoutes and CarpoolRoutes serve reads to anonymous callers too;
// writes need a session.
func ErrandRoutes(r *gin.RouterGroup, h *controllers.Handler, auth middleware.Authenticator) {
	errands := r.Group("/errands")
	{
		errands.GET("", middleware.OptionalAuth(auth), h.ListErrands)
		errands.GET("/:id", middleware.OptionalAuth(auth), h.GetErrand)
	}
	writes := errands.Group("")
	writes.Use(middleware.RequireAuth(auth))
	{
		writes.POST("", h.CreateErrand)
		writes.PATCH("/:id", h.UpdateErrand)
		writes.DELETE("/:id", h.DeleteErrand)
		writes.POST("/:id/complete", h.CompleteErrand)
	}
}

func CarpoolRoutes(r *gin.RouterGroup, h *controllers.Handler, auth middleware.Authenticator) {
	carpools := r.Group("/carpools")
	{
		carpools.GET("", middleware.OptionalAuth(auth), h.ListCarpoolRides)
		carpools.GET("/:id", middleware.OptionalAuth(auth), h.GetCarpoolRide)
	}
	writes := carpools.Group("")
	writes.Use(middleware.RequireAuth(auth))
	{
		writes.POST("", h.CreateCarpoolRide)
		writes.PATCH("/:id", h.UpdateCarpoolRide)
		writes.DELETE("/:id", h.DeleteCarpoolRide)
		writes.POST("/:id/complete", h.CompleteCarpoolRide)
	}
}

// ActivityRoutes accept anonymous callers; the store decides what they see.
func ActivityRoutes(r *gin.RouterGroup, h *controllers.Handler, auth middleware.Authenticator) {
	activity := r.Group("/activity")
	activity.Use(middleware.OptionalAuth(auth))
	{
		activity.GET("", h.ListActivity)
		activity.POST("", h.CreateActivity)
	}
}

func DashboardRoutes(r *gin.RouterGroup, h *controllers.Handler, auth middleware.Authenticator) {
	r.GET("/dashboard", middleware.RequireAuth(auth), h.GetDashboard)
}
