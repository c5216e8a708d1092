package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/freelance-market/backend/internal/config"
	"github.com/freelance-market/backend/internal/db"
	"github.com/freelance-market/backend/internal/escrow"
	"github.com/freelance-market/backend/internal/events"
	apphttp "github.com/freelance-market/backend/internal/http"
	"github.com/freelance-market/backend/internal/http/handlers"
	"github.com/freelance-market/backend/internal/repositories"
	"github.com/freelance-market/backend/internal/services"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	jobRepo := repositories.NewJobRepo(pool)
	applicationRepo := repositories.NewApplicationRepo(pool)
	escrowRepo := repositories.NewEscrowRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)
	challengeRepo := repositories.NewChallengeRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Escrow custodian
	custodian := escrow.NewCustodian(cfg.EscrowSecret)

	// Services
	registryService := services.NewRegistryService(userRepo, auditRepo, publisher, log)
	walletService := services.NewWalletService(userRepo, auditRepo, log)
	jobService := services.NewJobService(jobRepo, userRepo, applicationRepo, escrowRepo, auditRepo, custodian, publisher, log)
	applicationService := services.NewApplicationService(applicationRepo, jobRepo, userRepo, auditRepo, publisher, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(challengeRepo, cfg, log)
	userHandler := handlers.NewUserHandler(registryService, log)
	walletHandler := handlers.NewWalletHandler(walletService, log)
	jobHandler := handlers.NewJobHandler(jobService, log)
	applicationHandler := handlers.NewApplicationHandler(applicationService, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, authHandler, userHandler, walletHandler, jobHandler, applicationHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
