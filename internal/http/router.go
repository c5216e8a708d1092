package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/freelance-market/backend/internal/config"
	"github.com/freelance-market/backend/internal/http/handlers"
	"github.com/freelance-market/backend/internal/metrics"
	"github.com/freelance-market/backend/internal/middleware"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	walletHandler *handlers.WalletHandler,
	jobHandler *handlers.JobHandler,
	applicationHandler *handlers.ApplicationHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/challenge", authHandler.Challenge)
	api.Post("/auth/verify", authHandler.Verify)

	// Rate-limited endpoints
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Meta (public, no auth required)
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/roles", metaHandler.GetRoles)
	api.Get("/meta/limits", metaHandler.GetLimits)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Identity
	protected.Post("/register", userHandler.Register)
	protected.Get("/me", userHandler.GetMe)

	// Wallet
	protected.Get("/me/wallet", walletHandler.GetWallet)
	protected.Post("/me/wallet/deposit", walletHandler.Deposit)

	// Jobs
	protected.Post("/jobs", jobHandler.PostJob)
	protected.Get("/jobs", jobHandler.ListJobs)
	protected.Get("/jobs/:id", jobHandler.GetJob)
	protected.Get("/jobs/:id/escrow", jobHandler.EscrowInfo)

	// Applications
	protected.Post("/jobs/:id/applications", applicationHandler.Apply)
	protected.Get("/jobs/:id/applications", applicationHandler.ListForJob)
	protected.Post("/jobs/:id/applications/:appId/approve", jobHandler.ApproveApplication)
	protected.Post("/jobs/:id/applications/:appId/approve-submission", jobHandler.ApproveSubmission)
	protected.Get("/applications/my", applicationHandler.ListMine)
	protected.Get("/applications/:id", applicationHandler.Get)
	protected.Post("/applications/:id/submit", applicationHandler.SubmitWork)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
