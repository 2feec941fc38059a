package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/campmatch/backend/internal/config"
	"github.com/campmatch/backend/internal/db"
	"github.com/campmatch/backend/internal/events"
	apphttp "github.com/campmatch/backend/internal/http"
	"github.com/campmatch/backend/internal/http/handlers"
	"github.com/campmatch/backend/internal/repositories"
	"github.com/campmatch/backend/internal/services"
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
	profileRepo := repositories.NewProfileRepo(pool)
	advertiserRepo := repositories.NewAdvertiserRepo(pool)
	influencerRepo := repositories.NewInfluencerRepo(pool)
	campaignRepo := repositories.NewCampaignRepo(pool)
	applicationRepo := repositories.NewApplicationRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	clock := clockwork.NewRealClock()

	// Services
	authService := services.NewAuthService(profileRepo, auditRepo, cfg.JWTSecret, cfg.JWTExpiration, clock, log)
	advertiserService := services.NewAdvertiserService(advertiserRepo, auditRepo, publisher, log)
	influencerService := services.NewInfluencerService(influencerRepo, auditRepo, publisher, clock, log)
	campaignService := services.NewCampaignService(campaignRepo, advertiserRepo, influencerRepo, applicationRepo, auditRepo, publisher, clock, log)
	applicationService := services.NewApplicationService(applicationRepo, campaignRepo, influencerRepo, auditRepo, publisher, clock, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, log)
	advertiserHandler := handlers.NewAdvertiserHandler(advertiserService, log)
	influencerHandler := handlers.NewInfluencerHandler(influencerService, log)
	campaignHandler := handlers.NewCampaignHandler(campaignService, log)
	applicationHandler := handlers.NewApplicationHandler(applicationService, log)
	adminHandler := handlers.NewAdminHandler(advertiserService, influencerService, log)
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

	apphttp.SetupRouter(app, cfg, log, rdb, authHandler, advertiserHandler, influencerHandler, campaignHandler, applicationHandler, adminHandler, wsHub)

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
