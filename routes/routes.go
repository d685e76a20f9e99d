package routes

import (
	"net/http"
	"time"

	"meetbook/handlers"
	"meetbook/middleware"
	"meetbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers template browsing and host management
// endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		// Public: guests browse every host's offerable slots.
		api.GET("", hb.ListAvailabilityHandler)

		// Hosts manage their own templates.
		protected := api.Group("")
		protected.Use(middleware.PrincipalAuthMiddleware(), middleware.RequireRole(middleware.RoleHost, middleware.RoleAdmin))
		protected.GET("/mine", hb.GetMyAvailabilityHandler)
		protected.POST("", hb.CreateAvailabilityHandler)
		protected.PUT("/:id", hb.UpdateAvailabilityHandler)
		protected.DELETE("/:id", hb.DeleteAvailabilityHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.PrincipalAuthMiddleware())
		api.POST("", hb.CreateBookingHandler)
		api.GET("/:id", hb.GetBookingHandler)
		// Ownership is enforced by the state machine, not the route.
		api.PATCH("/:id/status", hb.SetBookingStatusHandler)
	}
}

// RegisterHostRoutes registers host dashboard endpoints.
func RegisterHostRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/host")
	{
		api.Use(middleware.PrincipalAuthMiddleware(), middleware.RequireRole(middleware.RoleHost, middleware.RoleAdmin))
		api.GET("/dashboard", hb.HostDashboardHandler)
		api.GET("/bookings", hb.HostBookingsHandler)
	}
}

// RegisterUserRoutes registers guest-facing endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/user")
	{
		api.Use(middleware.PrincipalAuthMiddleware())
		api.GET("/bookings", hb.MyBookingsHandler)
	}
}

// RegisterAdminRoutes registers platform-wide stats endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.PrincipalAuthMiddleware(), middleware.RequireRole(middleware.RoleAdmin))
		api.GET("/stats", hb.AdminStatsHandler)
	}
}

// RegisterMeetingRoutes registers meeting access and signaling endpoints.
// The signaling socket itself is unauthenticated: the access gate decides who
// gets in, and guests joining by link may not hold an account token.
func RegisterMeetingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/meetings")
	{
		api.GET("/:roomID/access", hb.MeetingAccessHandler)
	}
	r.GET("/ws/meetings", hb.MeetingSocketHandler)
}

// RegisterDashboardSocketRoutes registers the live dashboard channels.
func RegisterDashboardSocketRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	ws := r.Group("/ws/dashboard")
	{
		ws.Use(middleware.PrincipalAuthMiddleware())
		ws.GET("/host/:hostID", hb.HostDashboardWSHandler)
		ws.GET("/admin", middleware.RequireRole(middleware.RoleAdmin), hb.AdminDashboardWSHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHostRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterMeetingRoutes(r, hb)
	RegisterDashboardSocketRoutes(r, hb)
}
