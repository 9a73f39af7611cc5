package physics

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"aetherium-server/internal/entity"
	"aetherium-server/internal/event"
	"aetherium-server/internal/world"
)

// DefaultTimeSpeed is how far the 24-hour clock advances per tick.
const DefaultTimeSpeed = 0.01

// SeasonLengthDays is how many day increments separate season rotations.
const SeasonLengthDays = 30

type WorldStore interface {
	GetOrCreate(ctx context.Context) (*world.WorldState, error)
	Update(ctx context.Context, state *world.WorldState) error
}

type EntityStore interface {
	List(ctx context.Context) ([]entity.Entity, error)
	UpdateMotion(ctx context.Context, id int, posX, posY, velocityX, velocityY float64) error
}

type EventSink interface {
	Emit(ctx context.Context, evt event.WorldEvent)
}

// Engine advances the world singleton and all entities by one fixed time
// step per tick. A tick that fails partway leaves earlier writes in place;
// the next scheduled tick continues from whatever state persisted.
type Engine struct {
	worlds    WorldStore
	entities  EntityStore
	events    EventSink
	timeSpeed float64
	dt        float64
	rng       *rand.Rand
	logger    *slog.Logger
}

func NewEngine(worlds WorldStore, entities EntityStore, events EventSink, timeSpeed, dt float64, rng *rand.Rand, logger *slog.Logger) *Engine {
	return &Engine{
		worlds:    worlds,
		entities:  entities,
		events:    events,
		timeSpeed: timeSpeed,
		dt:        dt,
		rng:       rng,
		logger:    logger.With("component", "physics_engine"),
	}
}

// Tick runs one physics step: clock advance, weather mutation, season
// rotation, entity motion integration and collision detection.
func (e *Engine) Tick(ctx context.Context) error {
	state, err := e.worlds.GetOrCreate(ctx)
	if err != nil {
		return fmt.Errorf("failed to load world state: %w", err)
	}

	oldDay := state.DayNumber

	state.TimeOfDay += e.timeSpeed
	if state.TimeOfDay >= 24 {
		state.TimeOfDay -= 24
		state.DayNumber++
	}

	state.Weather = NextWeather(state.Weather, state.TimeOfDay, e.rng)

	// Same-day guard: rotate once on the wrap that lands on a season
	// boundary, not on every tick of that day.
	if state.DayNumber%SeasonLengthDays == 0 && state.DayNumber != oldDay {
		state.Season = state.Season.Next()
		e.logger.Info("Season rotated", "season", state.Season, "day", state.DayNumber)
	}

	if err := e.worlds.Update(ctx, state); err != nil {
		return fmt.Errorf("failed to persist world state: %w", err)
	}

	entities, err := e.entities.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list entities: %w", err)
	}

	updated := make([]entity.Entity, 0, len(entities))
	for _, ent := range entities {
		next := Integrate(ent, e.dt)
		if err := e.entities.UpdateMotion(ctx, next.ID, next.PosX, next.PosY, next.VelocityX, next.VelocityY); err != nil {
			return fmt.Errorf("failed to update entity %d: %w", next.ID, err)
		}
		updated = append(updated, next)
	}

	for _, collision := range DetectCollisions(updated) {
		e.events.Emit(ctx, event.WorldEvent{
			Type:   event.TypeCollision,
			Source: event.SourcePhysics,
			Payload: map[string]interface{}{
				"entity_a": collision.A,
				"entity_b": collision.B,
			},
		})
	}

	return nil
}
