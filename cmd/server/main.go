package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daybook-api/internal/config"
	"github.com/yukikurage/daybook-api/internal/constants"
	"github.com/yukikurage/daybook-api/internal/database"
	"github.com/yukikurage/daybook-api/internal/handlers"
	"github.com/yukikurage/daybook-api/internal/push"
	"github.com/yukikurage/daybook-api/internal/repository"
	"github.com/yukikurage/daybook-api/internal/scheduler"
	"github.com/yukikurage/daybook-api/internal/services"
	"github.com/yukikurage/daybook-api/internal/streaming"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	tagRepo := repository.NewTagRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	songRepo := repository.NewSongRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Initialize AI service (nil when OPENAI_API_KEY is unset)
	aiService := services.NewAIService(cfg.OpenAIAPIKey)
	if aiService == nil {
		log.Println("OPENAI_API_KEY not set, tag suggestions use the tag vocabulary only")
	}

	svc := handlers.Services{
		Tokens:        services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL),
		Auth:          services.NewAuthService(userRepo),
		Todos:         services.NewTodoService(todoRepo, tagRepo),
		Tags:          services.NewTagService(tagRepo, aiService),
		Students:      services.NewStudentService(studentRepo),
		Fees:          services.NewFeeService(feeRepo, studentRepo),
		Songs:         services.NewSongService(songRepo, favoriteRepo),
		Playlists:     services.NewPlaylistService(playlistRepo, songRepo),
		Notifications: services.NewNotificationService(userRepo, notificationRepo),
		Library:       streaming.NewLibrary(cfg.MediaDir),
	}

	// Reminder sweep
	notifier := push.New(ctx, cfg.FirebaseCredentialsFile)
	reminders := services.NewReminderService(todoRepo, notificationRepo, notifier, cfg.ReminderWindow)
	sched, err := scheduler.New(cfg.ReminderCron, reminders)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	sched.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(svc, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown: %v", err)
	}
	sched.Stop(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server stopped")
}
