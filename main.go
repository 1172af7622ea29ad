package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atstay/config"
	"atstay/cron"
	"atstay/database"
	bookingRepoPkg "atstay/database/repository/booking"
	hotelRepoPkg "atstay/database/repository/hotel"
	roomRepoPkg "atstay/database/repository/room"
	userRepoPkg "atstay/database/repository/user"
	"atstay/handlers"
	"atstay/middleware"
	"atstay/routes"
	"atstay/services/booking"
	"atstay/services/hotel"
	"atstay/services/notification"
	"atstay/services/payment"
	"atstay/services/user"
	"atstay/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.FirebaseInit()

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	roomRepo := roomRepoPkg.NewMongoRoomRepo()
	hotelRepo := hotelRepoPkg.NewMongoHotelRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// notification queue and worker.
	queueClient := cron.NewQueueClient()
	defer queueClient.Close()
	dispatcher := notification.NewAsynqDispatcher(queueClient)

	notificationService, err := notification.NewDefaultNotificationService(userRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	cron.InitNotificationWorker(notificationService)

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}

	hotelService := &hotel.DefaultHotelService{
		Hotels:  hotelRepo,
		Rooms:   roomRepo,
		Storage: storageService,
	}

	bookingService := &booking.DefaultBookingService{
		Bookings: bookingRepo,
		Rooms:    roomRepo,
		Hotels:   hotelRepo,
		Notifier: dispatcher,
		Currency: config.AppConfig.Currency,
	}

	gateway := payment.NewCashfreeClient(
		config.AppConfig.CashfreeAppID,
		config.AppConfig.CashfreeSecretKey,
		config.AppConfig.CashfreeEnvironment,
		&http.Client{Timeout: 15 * time.Second},
	)
	paymentService := payment.NewDefaultPaymentService(
		bookingRepo,
		userRepo,
		gateway,
		config.AppConfig.Currency,
		config.AppConfig.FrontendURL,
		config.AppConfig.BackendURL,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,
		Users:    handlers.NewUserHandler(userService, logger),
		Hotels:   handlers.NewHotelHandler(hotelService, logger),
		Rooms:    handlers.NewRoomHandler(hotelService, logger),
		Bookings: handlers.NewBookingHandler(bookingService, logger),
		Payments: handlers.NewPaymentHandler(paymentService, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
