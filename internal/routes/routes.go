package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/unyieldapp/unyield-server/internal/config"
	"github.com/unyieldapp/unyield-server/internal/handlers"
	"github.com/unyieldapp/unyield-server/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	healthHandler *handlers.HealthHandler,
	submissionHandler *handlers.SubmissionHandler,
	moderationHandler *handlers.ModerationHandler,
	appealHandler *handlers.AppealHandler,
	reportHandler *handlers.ReportHandler,
	challengeHandler *handlers.ChallengeHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health and metrics (no auth)
	api.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Athlete endpoints (JWT required)
	api.Post("/submissions/videos", middleware.JWTProtected(cfg), submissionHandler.SubmitVideo)
	api.Post("/submissions/challenges", middleware.JWTProtected(cfg), submissionHandler.SubmitChallengeEntry)
	api.Post("/appeals", middleware.JWTProtected(cfg), appealHandler.Create)
	api.Post("/reports", middleware.JWTProtected(cfg), reportHandler.Create)
	api.Get("/challenges", middleware.JWTProtected(cfg), challengeHandler.ListActive)
	api.Get("/challenges/:id/progress", middleware.JWTProtected(cfg), challengeHandler.Progress)
	api.Get("/challenges/:id/winner", middleware.JWTProtected(cfg), challengeHandler.Winner)
	api.Get("/leaderboard/:class", middleware.JWTProtected(cfg), challengeHandler.Leaderboard)

	// Moderation panel (JWT + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))

	admin.Get("/moderation/queue", moderationHandler.ListQueue)
	admin.Get("/moderation/queue/counts", moderationHandler.QueueCounts)
	admin.Post("/moderation/videos/:id/approve", moderationHandler.ApproveVideo)
	admin.Post("/moderation/videos/:id/reject", moderationHandler.RejectVideo)
	admin.Delete("/moderation/videos/:id", moderationHandler.RemoveVideo)
	admin.Post("/moderation/entries/:id/approve", moderationHandler.ApproveChallengeEntry)
	admin.Post("/moderation/entries/:id/reject", moderationHandler.RejectChallengeEntry)

	admin.Get("/appeals", appealHandler.List)
	admin.Put("/appeals/:id", appealHandler.Review)
	admin.Get("/reports", reportHandler.List)
	admin.Put("/reports/:id", reportHandler.Review)

	admin.Post("/challenges", challengeHandler.Create)
	admin.Get("/audit", moderationHandler.AuditHistory)
}
