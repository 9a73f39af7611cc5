package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aetherium-server/internal/character"
	"aetherium-server/internal/energy"
	"aetherium-server/internal/entity"
	"aetherium-server/internal/event"
	"aetherium-server/internal/metaphysics"
	"aetherium-server/internal/middleware"
	"aetherium-server/internal/physics"
	"aetherium-server/internal/region"
	"aetherium-server/internal/scheduler"
	"aetherium-server/internal/server"
	"aetherium-server/internal/shared/config"
	"aetherium-server/internal/shared/database"
	"aetherium-server/internal/shared/logger"
	"aetherium-server/internal/shared/redis"
	"aetherium-server/internal/world"
)

const physicsTickSeconds = 5.0

func main() {
	if err := config.Init(); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init()
	slog.Info("Starting Aetherium server",
		"environment", config.GlobalConfig.Server.Environment,
		"port", config.GlobalConfig.Server.Port)

	db, err := database.Connect()
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := redis.Connect()
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	worldRepo := world.NewRepository(db, slog.Default())
	regionRepo := region.NewRepository(db, slog.Default())
	entityRepo := entity.NewRepository(db, slog.Default())
	characterRepo := character.NewRepository(db, slog.Default())
	metaphysicsRepo := metaphysics.NewRepository(db, slog.Default())
	energyRepo := energy.NewRepository(db, slog.Default())
	eventRepo := event.NewRepository(db, slog.Default())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seeder := world.NewSeeder(regionRepo, entityRepo, slog.Default())
	if err := seeder.Run(ctx); err != nil {
		slog.Error("Failed to seed world data", "error", err)
		os.Exit(1)
	}

	eventHub := event.NewHub(slog.Default())
	eventService := event.NewService(eventRepo, eventHub, slog.Default())

	regionService := region.NewService(regionRepo, redisClient, slog.Default())
	characterService := character.NewService(characterRepo, regionRepo, eventService, slog.Default())
	metaphysicsService := metaphysics.NewService(metaphysicsRepo, eventService, slog.Default())
	energyService := energy.NewService(energyRepo, characterRepo, slog.Default())

	simCfg := config.GlobalConfig.Simulation
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	physicsEngine := physics.NewEngine(worldRepo, entityRepo, eventService, simCfg.TimeSpeed, physicsTickSeconds, rng, slog.Default())
	metaphysicsEngine := metaphysics.NewEngine(metaphysicsRepo, characterRepo, worldRepo, slog.Default())

	physicsLoop := scheduler.NewLoop("physics", simCfg.PhysicsTickInterval, physicsEngine.Tick, slog.Default())
	metaphysicsLoop := scheduler.NewLoop("metaphysics", simCfg.MetaphysicsTickInterval, metaphysicsEngine.Tick, slog.Default())
	go physicsLoop.Run(ctx)
	go metaphysicsLoop.Run(ctx)

	routes := server.NewRoutes(
		db,
		redisClient,
		worldRepo,
		regionService,
		entityRepo,
		characterService,
		metaphysicsService,
		energyService,
		eventService,
		eventHub,
		physicsLoop,
		metaphysicsLoop,
		slog.Default(),
	)
	mux := routes.Setup()

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Enabled:           config.GlobalConfig.RateLimit.Enabled,
		RequestsPerSecond: config.GlobalConfig.RateLimit.RequestsPerSecond,
		BurstSize:         config.GlobalConfig.RateLimit.BurstSize,
	})
	cors := middleware.NewCORS()

	handler := cors.Middleware(rateLimiter.Middleware(middleware.Identity(mux)))

	srv := &http.Server{
		Addr:         ":" + config.GlobalConfig.Server.Port,
		Handler:      handler,
		ReadTimeout:  config.GlobalConfig.Server.ReadTimeout,
		WriteTimeout: config.GlobalConfig.Server.WriteTimeout,
		IdleTimeout:  config.GlobalConfig.Server.IdleTimeout,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}

	slog.Info("Server stopped")
}
