package routes

import (
	"net/http"
	"time"

	"fixpoint/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes registers read-only catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, ch *handlers.CatalogHandler) {
	api := r.Group("/api/catalog")
	{
		api.GET("/devices", ch.ListDevices)
		api.GET("/devices/:id", ch.GetDevice)
		api.GET("/devices/:id/services", ch.CompatibleServices)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.POST("/session", bh.StartSession)
		bookingGroup.GET("/session/:sessionID", bh.GetSession)
		bookingGroup.POST("/session/:sessionID/device", bh.SelectDevice)
		bookingGroup.POST("/session/:sessionID/services", bh.SelectServices)
		bookingGroup.POST("/session/:sessionID/appointment", bh.BookAppointment)
		bookingGroup.POST("/session/:sessionID/customer", bh.AddCustomerInfo)
		bookingGroup.POST("/session/:sessionID/promo", bh.ApplyPromoCode)
		bookingGroup.POST("/session/:sessionID/complete", bh.CompleteBooking)
		bookingGroup.DELETE("/session/:sessionID", bh.CancelSession)
		bookingGroup.GET("/slots", bh.AvailableSlots)
		bookingGroup.POST("/quote", bh.Quote)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Fixpoint"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, ch *handlers.CatalogHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterCatalogRoutes(r, ch)
	RegisterBookingRoutes(r, bh)
}
