package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dias221467/streamify/internal/config"
	"github.com/Dias221467/streamify/internal/database"
	"github.com/Dias221467/streamify/internal/handlers"
	"github.com/Dias221467/streamify/internal/jobs"
	"github.com/Dias221467/streamify/internal/repository"
	cron "github.com/Dias221467/streamify/internal/scheduler"
	"github.com/Dias221467/streamify/internal/services"
	"github.com/Dias221467/streamify/pkg/logger"
	"github.com/Dias221467/streamify/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file and the environment
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	if cfg.JWTSecret == "" {
		logger.Log.Fatal("JWT_SECRET must be set")
	}

	db, err := database.ConnectDB(context.Background(), cfg)
	if err != nil {
		logger.Log.Fatalf("Database connection error: %v", err)
	}
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		logger.Log.Fatalf("Index bootstrap error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	followRepo := repository.NewFollowRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	likeRepo := repository.NewTweetLikeRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	entityRepo := repository.NewEntityRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	watchLaterRepo := repository.NewWatchLaterRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	// --- Services ---
	notificationService := services.NewNotificationService(notificationRepo)
	outbox := services.NewOutbox(notificationService, cfg.NotificationQueueSize, cfg.NotificationWorkers)
	outbox.Start()

	activityService := services.NewActivityService(activityRepo, entityRepo)
	followService := services.NewFollowService(followRepo, userRepo, outbox, activityService)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, userRepo, outbox, activityService)
	likeService := services.NewLikeService(likeRepo, tweetRepo, userRepo, outbox, activityService)
	historyService := services.NewHistoryService(historyRepo, videoRepo, activityService)
	watchLaterService := services.NewWatchLaterService(watchLaterRepo, videoRepo, outbox, activityService)
	profileService := services.NewProfileService(profileRepo)

	// --- Handlers ---
	h := &handlers.Handlers{
		Follow:       handlers.NewFollowHandler(followService),
		Subscription: handlers.NewSubscriptionHandler(subscriptionService),
		Activity:     handlers.NewActivityHandler(activityService),
		Notification: handlers.NewNotificationHandler(notificationService),
		History:      handlers.NewHistoryHandler(historyService),
		WatchLater:   handlers.NewWatchLaterHandler(watchLaterService),
		Like:         handlers.NewLikeHandler(likeService),
		Profile:      handlers.NewProfileHandler(profileService),
	}

	// --- Background jobs ---
	reminderCron, err := cron.StartReminderCron(cfg.ReminderSchedule, jobs.NewReminderDispatcher(watchLaterService))
	if err != nil {
		logger.Log.Fatalf("Invalid REMINDER_SCHEDULE %q: %v", cfg.ReminderSchedule, err)
	}

	router := mux.NewRouter()

	// Unauthenticated endpoints
	router.HandleFunc("/healthz", handlers.HealthHandler).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Everything else requires a valid access token
	handlers.RegisterRoutes(router, h, middleware.AuthMiddleware(cfg.JWTSecret))

	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.SessionMiddleware)
	router.Use(middleware.TimeoutMiddleware(cfg.RequestTimeout))

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.SessionHeader, middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.SessionHeader, middleware.RequestIDHeader},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Log.Infof("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if reminderCron != nil {
		<-reminderCron.Stop().Done()
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("HTTP server shutdown failed")
	}
	// Drain queued notifications after the last request has been served.
	if err := outbox.Stop(ctx); err != nil {
		logger.Log.WithError(err).Warn("Notification outbox did not drain in time")
	}
	if err := db.Client().Disconnect(ctx); err != nil {
		logger.Log.WithError(err).Error("MongoDB disconnect failed")
	}
	logger.Log.Info("Server stopped")
}
