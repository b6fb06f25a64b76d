package routes

import (
	"net/http"
	"time"

	"panditseva/handlers"
	"panditseva/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers registration, auth and profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.Register)
		api.POST("/verify-otp", hb.User.VerifyOTP)
		api.POST("/login", hb.User.Login)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("/logout", hb.User.Logout)
		api.GET("/me", hb.User.Me)
		api.GET("/id/:id", hb.User.GetUser)
		api.GET("/pandits", hb.User.ListPandits)
	}
}

// RegisterBookingRoutes registers the booking workflow endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("/mine", hb.Booking.Mine)
		api.GET("/assigned", hb.Booking.Assigned)
		api.POST("/select-pandit", hb.Booking.SelectPandit)
		api.POST("/reject-pandit", hb.Booking.RejectPandit)
		api.GET("/:id/accepted", hb.Booking.AcceptedPandits)
		api.PUT("/:id/complete", hb.Booking.Complete)
		api.PUT("/:id/cancel", hb.Booking.Cancel)
		api.POST("/:pujaId", hb.Booking.Create)
	}
}

// RegisterNotificationRoutes registers the notification inbox endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("", hb.Notification.List)
		api.PUT("/read-all", hb.Notification.MarkAllRead)
		api.PUT("/accept/:id", hb.Notification.Accept)
		api.PUT("/reject/:id", hb.Notification.Reject)
	}
}

// RegisterReviewRoutes registers rating endpoints. Reads are public.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.GET("/pandit/:panditId", hb.Review.ByPandit)
		api.GET("/pandit/:panditId/average", hb.Review.Average)
		api.GET("/top", hb.Review.TopPandits)
		api.POST("", middleware.JWTAuthUserMiddleware(), hb.Review.Create)
	}
}

// RegisterKYPRoutes registers credential document endpoints.
func RegisterKYPRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/kyp")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("", hb.KYP.Upload)
		api.GET("/mine", hb.KYP.Mine)
	}
}

// RegisterPujaRoutes registers the catalog: public reads, admin writes.
func RegisterPujaRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/pujas")
	{
		api.GET("", hb.Puja.List)
		api.GET("/:id", hb.Puja.Get)
	}

	admin := r.Group("/api/admin/pujas")
	{
		admin.Use(middleware.AdminAuthMiddleware())
		admin.POST("", hb.Puja.Create)
		admin.PUT("/:id", hb.Puja.Update)
		admin.DELETE("/:id", hb.Puja.Delete)
	}
}

// RegisterRealtimeRoute registers the WebSocket endpoint. Authentication
// happens during the handshake, not via middleware, so failures can use
// WebSocket close codes.
func RegisterRealtimeRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/ws", hb.WebSocket.Connect)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm PanditSeva"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterKYPRoutes(r, hb)
	RegisterPujaRoutes(r, hb)
	RegisterRealtimeRoute(r, hb)
	RegisterHealthRoute(r)
}
