// File: fixpoint/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fixpoint/config"
	"fixpoint/cron"
	"fixpoint/database"
	sessionsRepo "fixpoint/database/repository/sessions"
	slotsRepo "fixpoint/database/repository/slots"
	"fixpoint/handlers"
	"fixpoint/middleware"
	"fixpoint/routes"
	"fixpoint/services/booking"
	"fixpoint/services/catalog"
	"fixpoint/services/notification"
	"fixpoint/services/scheduling"
	"fixpoint/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Stores. Defaults are in-process; Mongo/Redis backings are switched on
	// by configuration for multi-instance deployments.
	var slotStore scheduling.Store
	if config.AppConfig.MongoURI != "" {
		database.InitDB()
		db := database.MongoClient.Database(config.AppConfig.MongoDatabase)
		slotStore = slotsRepo.NewMongoSlotStore(db)
	} else {
		slotStore = slotsRepo.NewMemorySlotStore()
	}

	var sessionStore sessionsRepo.Store
	if config.AppConfig.RedisAddr != "" && config.IsProduction() {
		sessionStore = sessionsRepo.NewRedisSessionStore(utils.GetSessionCacheClient())
	} else {
		sessionStore = sessionsRepo.NewMemorySessionStore()
	}

	// Slot calendar.
	allocator := scheduling.NewEngine(slotStore, scheduling.Config{
		HorizonDays: config.AppConfig.SlotHorizonDays,
		WindowDays:  config.AppConfig.SlotWindowDays,
		Capacity:    config.AppConfig.SlotCapacity,
		OpenHour:    config.AppConfig.SlotOpenHour,
		CloseHour:   config.AppConfig.SlotCloseHour,
		DurationMin: config.AppConfig.SlotDurationMinutes,
	}, logger)
	if err := allocator.GenerateHorizon(); err != nil {
		logger.Sugar().Fatalf("main: failed to generate slot horizon: %v", err)
	}

	// Services.
	catalogService := catalog.NewDefault()

	var dispatcher booking.Dispatcher
	if config.IsProduction() {
		dispatcher = cron.NewAsynqDispatcher()
		notifSvc := &notification.LogNotificationService{Logger: logger}
		repairQueue := &cron.LoggingRepairQueue{Logger: logger}
		cron.InitDispatchWorker(notifSvc, repairQueue)
	}

	bookingService := booking.NewSessionService(
		catalogService,
		allocator,
		sessionStore,
		dispatcher,
		logger,
	)
	bookingService.Pricing.TaxRate = config.AppConfig.TaxRate
	bookingService.Pricing.MultiServiceDiscount = config.AppConfig.MultiServiceDiscount
	bookingService.SessionTTL = time.Duration(config.AppConfig.SessionTTLHours) * time.Hour

	// Periodic reclaim of expired sessions and their slot holds.
	sweepInterval := time.Duration(config.AppConfig.SweepIntervalSeconds) * time.Second
	stopSweep := cron.StartExpirySweep(bookingService, sweepInterval, logger)
	defer stopSweep()

	bookingHandler := handlers.NewBookingHandler(bookingService, allocator, logger)
	bookingHandler.Dynamic.MaxAdjustment = config.AppConfig.MaxDynamicAdjustment
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler, catalogHandler)

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
