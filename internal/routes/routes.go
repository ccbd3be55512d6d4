package routes

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campus_hub/internal/config"
	"campus_hub/internal/controllers"
	"campus_hub/internal/middleware"
)

// SetupRouter builds the engine. It does not start listening.
func SetupRouter(cfg *config.Config, h *controllers.Handler, auth middleware.Authenticator, logOut io.Writer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logOut))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.APIKey(cfg.APIKey))

	AuthRoutes(api, h, auth)
	ProfileRoutes(api, h, auth)
	TravelRoutes(api, h, auth)
	EmergencyRoutes(api, h, auth)
	ErrandRoutes(api, h, auth)
	CarpoolRoutes(api, h, auth)
	ActivityRoutes(api, h, auth)
	DashboardRoutes(api, h, auth)
	AdminRoutes(api, h, auth)
	WebSocketRoutes(api, h, auth)

	return r
}
