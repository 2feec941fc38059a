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

	"github.com/campmatch/backend/internal/chanscan"
	"github.com/campmatch/backend/internal/config"
	"github.com/campmatch/backend/internal/db"
	"github.com/campmatch/backend/internal/events"
	"github.com/campmatch/backend/internal/repositories"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	influencerRepo := repositories.NewInfluencerRepo(pool)
	scanRepo := repositories.NewScanRepo(pool)
	subscriber := events.NewRedisSubscriber(rdb, log)
	clock := clockwork.NewRealClock()

	scanner := chanscan.NewScanner(cfg.ScanFetchTimeoutMS, cfg.ScanFetchRetries, log)
	runner := chanscan.NewRunner(scanner, influencerRepo, scanRepo, subscriber, clock, cfg.ScanSweepInterval, log)

	if err := runner.Start(ctx); err != nil {
		log.Fatal("failed to start scan runner", zap.Error(err))
	}

	// One pass at boot so pending channels are not stuck until the first tick.
	go runner.Sweep(ctx)

	// Health endpoint for orchestration probes.
	app := fiber.New()
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.WorkerPort)
	log.Info("starting scan worker", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
