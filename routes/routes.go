package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"atstay/handlers"
	"atstay/middleware"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.Register)
		api.POST("/login", hb.Users.Login)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, true))
		api.GET("/me", hb.Users.Me)
		api.PUT("/fcm-token", hb.Users.UpdateFCMToken)
	}
}

// RegisterHotelRoutes registers hotel owner endpoints.
func RegisterHotelRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/hotels")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, true))
		api.POST("", hb.Hotels.RegisterHotel)
	}
}

// RegisterRoomRoutes registers the room catalog endpoints.
func RegisterRoomRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/rooms")
	{
		api.GET("", hb.Rooms.GetRooms)
		api.GET("/:id", hb.Rooms.GetRoomByID)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo, true))
		protected.POST("", hb.Rooms.CreateRoom)
		protected.GET("/owner/list", hb.Rooms.GetOwnerRooms)
		protected.POST("/toggle-availability", hb.Rooms.ToggleRoomAvailability)
	}
}

// RegisterBookingRoutes sets up the endpoints for booking and availability.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("/check-availability", hb.Bookings.CheckAvailability)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo, true))
		protected.POST("/book", hb.Bookings.CreateBooking)
		protected.GET("/user", hb.Bookings.GetUserBookings)
		protected.GET("/hotel", hb.Bookings.GetHotelBookings)
	}
}

// RegisterPaymentRoutes sets up payment order, verification and webhook
// endpoints. The webhook takes no auth; the gateway calls it directly.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("/webhook", hb.Payments.Webhook)
		api.GET("/verify/:orderId", middleware.JWTAuthMiddleware(hb.UserRepo, false), hb.Payments.VerifyPayment)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo, true))
		protected.POST("/create-order", hb.Payments.CreateOrder)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm AtStay"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterHotelRoutes(r, hb)
	RegisterRoomRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterHealthRoute(r)
}
