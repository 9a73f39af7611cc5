package server

import (
	"log/slog"
	"net/http"

	"aetherium-server/internal/character"
	characterHandlers "aetherium-server/internal/character/handlers"
	"aetherium-server/internal/energy"
	energyHandlers "aetherium-server/internal/energy/handlers"
	"aetherium-server/internal/entity"
	"aetherium-server/internal/event"
	eventHandlers "aetherium-server/internal/event/handlers"
	"aetherium-server/internal/metaphysics"
	metaphysicsHandlers "aetherium-server/internal/metaphysics/handlers"
	physicsHandlers "aetherium-server/internal/physics/handlers"
	"aetherium-server/internal/region"
	"aetherium-server/internal/scheduler"
	serverHandlers "aetherium-server/internal/server/handlers"
	"aetherium-server/internal/shared/database"
	sharedredis "aetherium-server/internal/shared/redis"
	"aetherium-server/internal/world"
	worldHandlers "aetherium-server/internal/world/handlers"
)

type Routes struct {
	db                 *database.DB
	redis              *sharedredis.Client
	worldRepo          *world.Repository
	regionService      *region.Service
	entityRepo         *entity.Repository
	characterService   *character.Service
	metaphysicsService *metaphysics.Service
	energyService      *energy.Service
	eventService       *event.Service
	eventHub           *event.Hub
	physicsLoop        *scheduler.Loop
	metaphysicsLoop    *scheduler.Loop
	logger             *slog.Logger
}

func NewRoutes(
	db *database.DB,
	redis *sharedredis.Client,
	worldRepo *world.Repository,
	regionService *region.Service,
	entityRepo *entity.Repository,
	characterService *character.Service,
	metaphysicsService *metaphysics.Service,
	energyService *energy.Service,
	eventService *event.Service,
	eventHub *event.Hub,
	physicsLoop *scheduler.Loop,
	metaphysicsLoop *scheduler.Loop,
	logger *slog.Logger,
) *Routes {
	return &Routes{
		db:                 db,
		redis:              redis,
		worldRepo:          worldRepo,
		regionService:      regionService,
		entityRepo:         entityRepo,
		characterService:   characterService,
		metaphysicsService: metaphysicsService,
		energyService:      energyService,
		eventService:       eventService,
		eventHub:           eventHub,
		physicsLoop:        physicsLoop,
		metaphysicsLoop:    metaphysicsLoop,
		logger:             logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db, r.redis)
	worldHandler := worldHandlers.NewWorldHandler(r.worldRepo, r.regionService, r.entityRepo)
	physicsHandler := physicsHandlers.NewPhysicsHandler(r.physicsLoop, r.worldRepo, r.entityRepo)
	metaphysicsHandler := metaphysicsHandlers.NewMetaphysicsHandler(r.metaphysicsService, r.metaphysicsLoop)
	characterHandler := characterHandlers.NewCharacterHandler(r.characterService)
	energyHandler := energyHandlers.NewEnergyHandler(r.energyService)
	eventHandler := eventHandlers.NewEventHandler(r.eventService, r.eventHub)

	mux.Handle("/api/server/health", healthHandler)

	mux.HandleFunc("/api/world/state", worldHandler.GetState)
	mux.HandleFunc("/api/world/regions", worldHandler.GetRegions)
	mux.HandleFunc("/api/world/entities", worldHandler.GetEntities)
	mux.HandleFunc("/api/world/travel", characterHandler.Travel)

	mux.HandleFunc("/api/physics/tick", physicsHandler.Tick)
	mux.HandleFunc("/api/physics/move", physicsHandler.Move)

	mux.HandleFunc("/api/metaphysics/state", metaphysicsHandler.State)
	mux.HandleFunc("/api/metaphysics/tick", metaphysicsHandler.Tick)
	mux.HandleFunc("/api/metaphysics/energize", metaphysicsHandler.Energize)
	mux.HandleFunc("/api/metaphysics/karma", metaphysicsHandler.Karma)
	mux.HandleFunc("/api/metaphysics/evolve", metaphysicsHandler.Evolve)
	mux.HandleFunc("/api/metaphysics/effects", metaphysicsHandler.Effects)

	mux.HandleFunc("/api/characters/me", characterHandler.Me)
	mux.HandleFunc("/api/characters", characterHandler.Create)
	mux.HandleFunc("/api/characters/{id}", characterHandler.Update)

	mux.HandleFunc("/api/energy/absorb", energyHandler.Absorb)
	mux.HandleFunc("/api/energy/status", energyHandler.Status)

	mux.HandleFunc("/api/events", eventHandler.List)
	mux.HandleFunc("/api/events/ws", eventHandler.Stream)

	logger.Info("Routes configured successfully",
		"world_endpoints", []string{"/api/world/state", "/api/world/regions", "/api/world/entities", "/api/world/travel"},
		"simulation_endpoints", []string{"/api/physics/tick", "/api/physics/move", "/api/metaphysics/state", "/api/metaphysics/tick", "/api/metaphysics/energize", "/api/metaphysics/karma", "/api/metaphysics/evolve", "/api/metaphysics/effects"},
		"character_endpoints", []string{"/api/characters", "/api/characters/me", "/api/energy/absorb", "/api/energy/status"},
		"event_endpoints", []string{"/api/events", "/api/events/ws"},
	)

	return mux
}
