package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/mamalink/mamalink-backend/internal/config"
	"github.com/mamalink/mamalink-backend/internal/database"
	"github.com/mamalink/mamalink-backend/internal/handlers"
	"github.com/mamalink/mamalink-backend/internal/logging"
	"github.com/mamalink/mamalink-backend/internal/middleware"
	"github.com/mamalink/mamalink-backend/internal/realtime"
	"github.com/mamalink/mamalink-backend/internal/repository"
	"github.com/mamalink/mamalink-backend/internal/routes"
	"github.com/mamalink/mamalink-backend/internal/services"
	"github.com/mamalink/mamalink-backend/internal/storage"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Uploaded images
	uploads, err := storage.NewLocalStorage(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		slog.Error("upload storage init failed", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	// Realtime fan-out
	hub := realtime.NewHub()

	// Repositories
	postRepo := repository.NewPostRepository(database.DB)
	matchRepo := repository.NewMatchRepository(database.DB)
	reviewRepo := repository.NewReviewRepository(database.DB)
	profileRepo := repository.NewProfileRepository(database.DB)
	chatRepo := repository.NewChatRepository(database.DB)
	notificationRepo := repository.NewNotificationRepository(database.DB)

	// Services
	notificationService := services.NewNotificationService(notificationRepo, hub)
	moderationService := services.NewModerationService(database.DB)
	matchingService := services.NewMatchingService(postRepo, matchRepo, reviewRepo,
		notificationService, cfg.AcceptRetryAttempts, cfg.AcceptRetryBaseDelay)
	authService := services.NewAuthService(database.DB, cfg, profileRepo)
	postService := services.NewPostService(postRepo, matchingService, moderationService)
	profileService := services.NewProfileService(profileRepo, moderationService)
	chatService := services.NewChatService(postRepo, matchRepo, chatRepo,
		moderationService, notificationService, hub)

	// Handlers
	h := routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		Health:       handlers.NewHealthHandler(),
		Post:         handlers.NewPostHandler(postService),
		Match:        handlers.NewMatchHandler(matchingService, moderationService),
		Profile:      handlers.NewProfileHandler(profileService, uploads),
		Chat:         handlers.NewChatHandler(chatService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Moderation:   handlers.NewModerationHandler(moderationService),
		AppConfig:    handlers.NewAppConfigHandler(database.DB),
	}

	slog.Info("seeding app config defaults")
	if err := h.AppConfig.SeedDefaults(); err != nil {
		slog.Error("config seed failed", "error", err)
	}

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    12 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Uploaded files are served as-is
	app.Static("/uploads", uploads.Dir())

	// Routes
	routes.Setup(app, cfg, database.DB, hub, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	hub.Close()
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
