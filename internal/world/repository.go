package world

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"aetherium-server/internal/shared/database"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing world repository")
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// GetOrCreate returns the world singleton, inserting the default state on
// first access. The insert is idempotent so concurrent first reads cannot
// create duplicate rows.
func (r *Repository) GetOrCreate(ctx context.Context) (*WorldState, error) {
	defaults := DefaultWorldState()
	weatherJSON, err := json.Marshal(defaults.Weather)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal default weather: %w", err)
	}

	query := `
		INSERT INTO world_state (id, time_of_day, day_number, season, global_gravity, weather)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`

	_, err = r.db.ExecContext(ctx, query,
		defaults.TimeOfDay,
		defaults.DayNumber,
		defaults.Season,
		defaults.GlobalGravity,
		weatherJSON,
	)
	if err != nil {
		r.logger.Error("Failed to insert default world state", "error", err)
		return nil, fmt.Errorf("failed to insert default world state: %w", err)
	}

	return r.Get(ctx)
}

// Get returns the world singleton, or (nil, nil) when it has not been
// created yet.
func (r *Repository) Get(ctx context.Context) (*WorldState, error) {
	query := `
		SELECT id, time_of_day, day_number, season, global_gravity, weather, last_tick_at
		FROM world_state
		WHERE id = 1`

	state := &WorldState{}
	var weatherJSON []byte

	err := r.db.QueryRowContext(ctx, query).Scan(
		&state.ID,
		&state.TimeOfDay,
		&state.DayNumber,
		&state.Season,
		&state.GlobalGravity,
		&weatherJSON,
		&state.LastTickAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get world state", "error", err)
		return nil, fmt.Errorf("failed to get world state: %w", err)
	}

	if err := json.Unmarshal(weatherJSON, &state.Weather); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weather: %w", err)
	}

	return state, nil
}

func (r *Repository) Update(ctx context.Context, state *WorldState) error {
	weatherJSON, err := json.Marshal(state.Weather)
	if err != nil {
		return fmt.Errorf("failed to marshal weather: %w", err)
	}

	query := `
		UPDATE world_state
		SET time_of_day = $2, day_number = $3, season = $4, weather = $5, last_tick_at = NOW()
		WHERE id = $1`

	_, err = r.db.ExecContext(ctx, query,
		state.ID,
		state.TimeOfDay,
		state.DayNumber,
		state.Season,
		weatherJSON,
	)
	if err != nil {
		r.logger.Error("Failed to update world state", "error", err)
		return fmt.Errorf("failed to update world state: %w", err)
	}

	return nil
}
