package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"panditseva/config"
	"panditseva/database"
	bookingRepoPkg "panditseva/database/repository/booking"
	kypRepoPkg "panditseva/database/repository/kyp"
	notificationRepoPkg "panditseva/database/repository/notification"
	pujaRepoPkg "panditseva/database/repository/puja"
	reviewRepoPkg "panditseva/database/repository/review"
	userRepoPkg "panditseva/database/repository/user"
	"panditseva/handlers"
	"panditseva/middleware"
	"panditseva/routes"
	"panditseva/services/booking"
	"panditseva/services/notification"
	"panditseva/services/realtime"
	"panditseva/services/review"
	"panditseva/services/user"
	"panditseva/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.InitOTPCache()

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	pujaRepo := pujaRepoPkg.NewMongoPujaRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	kypRepo := kypRepoPkg.NewMongoKYPRepo()

	// services.
	registry := realtime.NewRegistry(logger)

	notificationService := &notification.DefaultNotificationService{
		Repo:        notificationRepo,
		BookingRepo: bookingRepo,
		ReviewRepo:  reviewRepo,
		UserRepo:    userRepo,
		PujaRepo:    pujaRepo,
		Registry:    registry,
		Logger:      logger,
	}

	workflowService := &booking.DefaultWorkflowService{
		BookingRepo:  bookingRepo,
		UserRepo:     userRepo,
		PujaRepo:     pujaRepo,
		KYPRepo:      kypRepo,
		Notification: notificationService,
		Policy: booking.Policy{
			NotifyOnDecline:       config.AppConfig.NotifyOnDecline,
			RetractOnCancel:       config.AppConfig.RetractOnCancel,
			DuplicateBookingGuard: config.AppConfig.DuplicateBookingGuard,
		},
		Logger: logger,
	}

	reviewService := &review.DefaultReviewService{
		Repo:         reviewRepo,
		BookingRepo:  bookingRepo,
		UserRepo:     userRepo,
		Notification: notificationService,
		Logger:       logger,
	}

	userService := &user.DefaultUserService{
		Repo:   userRepo,
		Logger: logger,
	}

	// handlers.
	handlerBundle := &handlers.HandlerBundle{
		User:         &handlers.UserHandler{Service: userService},
		Booking:      &handlers.BookingHandler{Service: workflowService},
		Notification: &handlers.NotificationHandler{Service: notificationService, Workflow: workflowService},
		Review:       &handlers.ReviewHandler{Service: reviewService},
		Puja:         &handlers.PujaHandler{Repo: pujaRepo},
		KYP:          &handlers.KYPHandler{Storage: storageService, Repo: kypRepo, Users: userRepo},
		WebSocket:    &handlers.WebSocketHandler{Registry: registry, Users: userRepo, Logger: logger},
	}

	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for an interrupt, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
