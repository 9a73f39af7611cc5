package energy

import (
	"context"
	"fmt"
	"log/slog"

	"aetherium-server/internal/shared/database"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing energy repository")
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Create(ctx context.Context, absorption *ActiveAbsorption) error {
	query := `
		INSERT INTO active_absorptions (character_id, region_id, energy_color, duration_minutes, completed)
		VALUES ($1, $2, $3, $4, false)
		RETURNING id, started_at`

	err := r.db.QueryRowContext(ctx, query,
		absorption.CharacterID,
		absorption.RegionID,
		absorption.EnergyColor,
		absorption.DurationMinutes,
	).Scan(&absorption.ID, &absorption.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to create absorption: %w", err)
	}

	return nil
}

// ListActiveByCharacter returns all non-completed absorptions for a
// character.
func (r *Repository) ListActiveByCharacter(ctx context.Context, characterID int) ([]ActiveAbsorption, error) {
	query := `
		SELECT id, character_id, region_id, energy_color, started_at, duration_minutes, completed
		FROM active_absorptions
		WHERE character_id = $1 AND NOT completed
		ORDER BY started_at`

	rows, err := r.db.QueryContext(ctx, query, characterID)
	if err != nil {
		r.logger.Error("Failed to list active absorptions", "character_id", characterID, "error", err)
		return nil, fmt.Errorf("failed to list active absorptions: %w", err)
	}
	defer rows.Close()

	var absorptions []ActiveAbsorption
	for rows.Next() {
		var a ActiveAbsorption
		err := rows.Scan(&a.ID, &a.CharacterID, &a.RegionID, &a.EnergyColor, &a.StartedAt, &a.DurationMinutes, &a.Completed)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absorption: %w", err)
		}
		absorptions = append(absorptions, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating absorptions: %w", err)
	}

	return absorptions, nil
}

// CompleteExpired marks every absorption whose duration has elapsed as
// completed and returns how many rows were swept.
func (r *Repository) CompleteExpired(ctx context.Context, characterID int) (int64, error) {
	query := `
		UPDATE active_absorptions
		SET completed = true
		WHERE character_id = $1
		  AND NOT completed
		  AND started_at + duration_minutes * interval '1 minute' <= NOW()`

	result, err := r.db.ExecContext(ctx, query, characterID)
	if err != nil {
		r.logger.Error("Failed to sweep expired absorptions", "character_id", characterID, "error", err)
		return 0, fmt.Errorf("failed to sweep expired absorptions: %w", err)
	}

	swept, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count swept absorptions: %w", err)
	}

	return swept, nil
}
