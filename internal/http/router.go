package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campmatch/backend/internal/config"
	"github.com/campmatch/backend/internal/http/handlers"
	"github.com/campmatch/backend/internal/middleware"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	advertiserHandler *handlers.AdvertiserHandler,
	influencerHandler *handlers.InfluencerHandler,
	campaignHandler *handlers.CampaignHandler,
	applicationHandler *handlers.ApplicationHandler,
	adminHandler *handlers.AdminHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID, X-Admin-Key",
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/signup", authHandler.Signup)
	api.Post("/auth/login", authHandler.Login)

	// Rate-limited endpoints
	api.Use(middleware.RateLimit(rdb, cfg.RateLimitRequests, cfg.RateLimitWindow))

	// Meta (public, no auth required)
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/platforms", metaHandler.Platforms)
	api.Get("/meta/categories", metaHandler.Categories)

	// Public catalog. Detail renders viewer fields when a token is present.
	api.Get("/campaigns", campaignHandler.ListCampaigns)

	// Protected endpoints
	protected := api.Group("", middleware.RequireAuth(cfg.JWTSecret))

	protected.Get("/me", authHandler.Me)

	// Advertiser profile
	protected.Post("/advertiser/profile", advertiserHandler.SubmitProfile)
	protected.Get("/advertiser/profile", advertiserHandler.GetProfile)

	// Influencer profile & channels
	protected.Post("/influencer/profile", influencerHandler.SubmitProfile)
	protected.Get("/influencer/profile", influencerHandler.GetProfile)
	protected.Put("/influencer/channels/:id", influencerHandler.UpdateChannel)
	protected.Delete("/influencer/channels/:id", influencerHandler.DeleteChannel)

	// Campaigns
	protected.Post("/campaigns", campaignHandler.CreateCampaign)
	protected.Get("/campaigns/my", campaignHandler.MyCampaigns)
	api.Get("/campaigns/:id", middleware.OptionalAuth(cfg.JWTSecret), campaignHandler.GetCampaign)
	protected.Get("/campaigns/:id/manage", campaignHandler.ManageCampaign)
	protected.Patch("/campaigns/:id", campaignHandler.UpdateCampaign)
	protected.Patch("/campaigns/:id/status", campaignHandler.UpdateStatus)
	protected.Get("/campaigns/:id/applicants", campaignHandler.ListApplicants)
	protected.Post("/campaigns/:id/select", campaignHandler.SelectApplicants)

	// Applications
	protected.Post("/applications", applicationHandler.CreateApplication)
	protected.Get("/applications", applicationHandler.MyApplications)

	// Verification administration
	admin := api.Group("/admin", middleware.RequireAdminKey(cfg.AdminAPIKey))
	admin.Patch("/advertisers/:userId/verification", adminHandler.UpdateAdvertiserVerification)
	admin.Patch("/channels/:id/verification", adminHandler.UpdateChannelVerification)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
