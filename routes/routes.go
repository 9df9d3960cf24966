package routes

import (
	"net/http"
	"time"

	"roombook/handlers"
	"roombook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes registers room inventory and availability endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/buildings", hb.Booking.ListBuildingsHandler)
		api.GET("/buildings/:building/rooms", hb.Booking.ListRoomsHandler)
		api.GET("/rooms/:room/slots", hb.Booking.DaySlotsHandler)
		api.GET("/rooms/:room/durations", hb.Booking.ListDurationsHandler)
	}
}

// RegisterBookingRoutes registers commit and cancellation endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/bookings", hb.Booking.CreateBookingHandler)

	users := r.Group("/api/users/:userID")
	{
		users.GET("/bookings", hb.Booking.ListUserBookingsHandler)
		users.DELETE("/bookings", hb.Booking.CancelBookingHandler)
	}
}

// RegisterChatRoutes registers the conversational booking flow.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	chat := r.Group("/api/chat/:userID")
	{
		chat.POST("/start", hb.Session.StartSessionHandler)
		chat.POST("/select", hb.Session.SelectHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for operator actions.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/reset", hb.Admin.ResetHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Admin.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCatalogRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r, hb)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
}
