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
	"github.com/redis/go-redis/v9"

	"github.com/unyieldapp/unyield-server/internal/config"
	"github.com/unyieldapp/unyield-server/internal/database"
	"github.com/unyieldapp/unyield-server/internal/handlers"
	"github.com/unyieldapp/unyield-server/internal/leaderboard"
	"github.com/unyieldapp/unyield-server/internal/logging"
	"github.com/unyieldapp/unyield-server/internal/middleware"
	"github.com/unyieldapp/unyield-server/internal/notify"
	"github.com/unyieldapp/unyield-server/internal/repository"
	"github.com/unyieldapp/unyield-server/internal/routes"
	"github.com/unyieldapp/unyield-server/internal/services"
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
		logging.StdoutHandler(),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Redis (optional: leaderboard cache + notification queue)
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		slog.Info("redis enabled", "addr", cfg.RedisAddr)
	} else {
		slog.Info("redis disabled, leaderboard cache and notifications are no-ops")
	}
	dispatcher := notify.NewDispatcher(redisClient)
	board := leaderboard.NewCache(redisClient)

	// Repositories
	policy := repository.RetryPolicy{Timeout: cfg.StorageTimeout, MaxRetries: cfg.StorageMaxRetries}
	videoRepo := repository.NewVideoSubmissionRepository(database.DB, policy)
	entryRepo := repository.NewChallengeSubmissionRepository(database.DB, policy)
	challengeRepo := repository.NewChallengeRepository(database.DB, policy)
	userRepo := repository.NewUserRepository(database.DB, policy)
	appealRepo := repository.NewAppealRepository(database.DB, policy)
	reportRepo := repository.NewReportRepository(database.DB, policy)
	auditRepo := repository.NewAuditRepository(database.DB, policy)

	// Services
	auditService := services.NewAuditService(auditRepo)
	completionService := services.NewCompletionService(entryRepo, challengeRepo)
	verificationService := services.NewVerificationService(
		videoRepo, entryRepo, challengeRepo, userRepo,
		auditService, completionService, dispatcher, board,
	)
	submissionService := services.NewSubmissionService(videoRepo, entryRepo, challengeRepo, userRepo)
	queueService := services.NewQueueService(videoRepo, entryRepo)
	appealService := services.NewAppealService(appealRepo, videoRepo, verificationService, auditService)
	reportService := services.NewReportService(reportRepo, videoRepo, auditService)

	// Handlers
	healthHandler := handlers.NewHealthHandler(redisClient)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	moderationHandler := handlers.NewModerationHandler(queueService, verificationService, auditService)
	appealHandler := handlers.NewAppealHandler(appealService)
	reportHandler := handlers.NewReportHandler(reportService)
	challengeHandler := handlers.NewChallengeHandler(challengeRepo, completionService, auditService, board)

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
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

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
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, healthHandler, submissionHandler, moderationHandler, appealHandler, reportHandler, challengeHandler)

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
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
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
