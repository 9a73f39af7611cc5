package metaphysics

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
	logger.Debug("Initializing metaphysics repository")
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const stateColumns = `id, character_id, entity_id, karma, spiritual_level, chakra_flux, active_effects, evolution_progress`

func (r *Repository) List(ctx context.Context) ([]State, error) {
	query := `SELECT ` + stateColumns + ` FROM metaphysics_state ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list metaphysics states", "error", err)
		return nil, fmt.Errorf("failed to list metaphysics states: %w", err)
	}
	defer rows.Close()

	var states []State
	for rows.Next() {
		state, err := scanState(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan metaphysics state: %w", err)
		}
		states = append(states, *state)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating metaphysics states: %w", err)
	}

	return states, nil
}

func (r *Repository) GetByCharacter(ctx context.Context, characterID int) (*State, error) {
	query := `SELECT ` + stateColumns + ` FROM metaphysics_state WHERE character_id = $1`

	state, err := scanState(r.db.QueryRowContext(ctx, query, characterID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get metaphysics state", "character_id", characterID, "error", err)
		return nil, fmt.Errorf("failed to get metaphysics state for character %d: %w", characterID, err)
	}

	return state, nil
}

func (r *Repository) Create(ctx context.Context, state *State) error {
	fluxJSON, err := json.Marshal(state.ChakraFlux)
	if err != nil {
		return fmt.Errorf("failed to marshal chakra flux: %w", err)
	}
	effectsJSON, err := json.Marshal(state.ActiveEffects)
	if err != nil {
		return fmt.Errorf("failed to marshal active effects: %w", err)
	}

	query := `
		INSERT INTO metaphysics_state (character_id, entity_id, karma, spiritual_level, chakra_flux, active_effects, evolution_progress)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err = r.db.QueryRowContext(ctx, query,
		state.CharacterID,
		state.EntityID,
		state.Karma,
		state.SpiritualLevel,
		fluxJSON,
		effectsJSON,
		state.EvolutionProgress,
	).Scan(&state.ID)
	if err != nil {
		r.logger.Error("Failed to create metaphysics state", "error", err)
		return fmt.Errorf("failed to create metaphysics state: %w", err)
	}

	return nil
}

func (r *Repository) Update(ctx context.Context, state *State) error {
	fluxJSON, err := json.Marshal(state.ChakraFlux)
	if err != nil {
		return fmt.Errorf("failed to marshal chakra flux: %w", err)
	}
	effectsJSON, err := json.Marshal(state.ActiveEffects)
	if err != nil {
		return fmt.Errorf("failed to marshal active effects: %w", err)
	}

	query := `
		UPDATE metaphysics_state
		SET karma = $2, spiritual_level = $3, chakra_flux = $4, active_effects = $5, evolution_progress = $6
		WHERE id = $1`

	_, err = r.db.ExecContext(ctx, query,
		state.ID,
		state.Karma,
		state.SpiritualLevel,
		fluxJSON,
		effectsJSON,
		state.EvolutionProgress,
	)
	if err != nil {
		r.logger.Error("Failed to update metaphysics state", "id", state.ID, "error", err)
		return fmt.Errorf("failed to update metaphysics state %d: %w", state.ID, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanState(row rowScanner) (*State, error) {
	state := &State{}
	var fluxJSON, effectsJSON []byte

	err := row.Scan(
		&state.ID,
		&state.CharacterID,
		&state.EntityID,
		&state.Karma,
		&state.SpiritualLevel,
		&fluxJSON,
		&effectsJSON,
		&state.EvolutionProgress,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(fluxJSON, &state.ChakraFlux); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chakra flux: %w", err)
	}
	if err := json.Unmarshal(effectsJSON, &state.ActiveEffects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal active effects: %w", err)
	}

	return state, nil
}
