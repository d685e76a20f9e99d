package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meetbook/config"
	"meetbook/cron"
	"meetbook/database"
	availabilityRepoPkg "meetbook/database/repository/availability"
	bookingRepoPkg "meetbook/database/repository/booking"
	hostRepoPkg "meetbook/database/repository/host"
	"meetbook/handlers"
	"meetbook/routes"
	"meetbook/services/availability"
	"meetbook/services/booking"
	"meetbook/services/dashboard"
	"meetbook/services/notification"
	"meetbook/services/signaling"
	"meetbook/services/tasks"
	"meetbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	cacheClient := utils.GetCacheClient()
	utils.StartHealthMonitor(cacheClient, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Repositories.
	availRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	hostRepo := hostRepoPkg.NewMongoHostRepo()

	if err := availRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure availability indexes: %v", err)
	}
	if err := bookingRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}

	// Live dashboard fan-out.
	bus := dashboard.NewEventBus()
	notifier := &dashboard.Notifier{Bus: bus, Bookings: bookingRepo, Templates: availRepo}

	// Reminder queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()

	reminderScheduler := &tasks.AsynqReminderScheduler{
		Client: asynqClient,
		Lead:   time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute,
		HostEmailFn: func(hostID string) (string, error) {
			h, err := hostRepo.GetByID(hostID)
			if err != nil {
				return "", err
			}
			return h.Email, nil
		},
	}

	// Services.
	availabilityService := &availability.DefaultAvailabilityService{
		Repo:     availRepo,
		Bookings: bookingRepo,
	}
	conflictChecker := &booking.DefaultConflictChecker{Repo: bookingRepo}
	scheduler := &booking.DefaultScheduler{
		Repo:         bookingRepo,
		Availability: availabilityService,
		Templates:    availRepo,
		Conflicts:    conflictChecker,
		Events:       notifier,
	}
	stateMachine := &booking.DefaultStateMachine{
		Repo:      bookingRepo,
		Events:    notifier,
		Reminders: reminderScheduler,
	}
	accessGate := &booking.DefaultAccessGate{
		Repo:  bookingRepo,
		Grace: time.Duration(config.AppConfig.AccessGraceSeconds) * time.Second,
	}

	// Signaling.
	presence := &signaling.RedisPresence{Client: cacheClient}
	hub := signaling.NewHub(presence)

	// Reminder delivery worker.
	mailer := notification.LogMailer{}
	cron.InitReminderWorker(mailer, bookingRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		CreateAvailabilityHandler: handlers.CreateAvailability(availabilityService, notifier),
		GetMyAvailabilityHandler:  handlers.GetMyAvailability(availabilityService),
		ListAvailabilityHandler:   handlers.ListAvailability(availabilityService),
		UpdateAvailabilityHandler: handlers.UpdateAvailability(availabilityService, notifier),
		DeleteAvailabilityHandler: handlers.DeleteAvailability(availabilityService, notifier),

		CreateBookingHandler:    handlers.CreateBooking(scheduler),
		GetBookingHandler:       handlers.GetBooking(bookingRepo),
		SetBookingStatusHandler: handlers.SetBookingStatus(stateMachine),

		MeetingAccessHandler: handlers.MeetingAccess(accessGate, presence),
		MeetingSocketHandler: handlers.MeetingSocket(accessGate, hub),

		HostDashboardHandler:    handlers.HostDashboard(notifier),
		HostBookingsHandler:     handlers.HostBookings(bookingRepo),
		HostDashboardWSHandler:  handlers.HostDashboardSocket(bus, notifier),
		AdminStatsHandler:       handlers.AdminStats(notifier),
		AdminDashboardWSHandler: handlers.AdminDashboardSocket(bus, notifier),

		MyBookingsHandler: handlers.MyBookings(bookingRepo),
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
