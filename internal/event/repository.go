package event

import (
	"context"
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
	logger.Debug("Initializing event repository")
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Append(ctx context.Context, evt *WorldEvent) error {
	payloadJSON, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	query := `
		INSERT INTO world_events (type, source, region_id, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query,
		evt.Type,
		evt.Source,
		evt.RegionID,
		payloadJSON,
	).Scan(&evt.ID, &evt.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to append world event", "type", evt.Type, "error", err)
		return fmt.Errorf("failed to append world event: %w", err)
	}

	return nil
}

func (r *Repository) ListRecent(ctx context.Context, limit int) ([]WorldEvent, error) {
	query := `
		SELECT id, type, source, region_id, payload, created_at
		FROM world_events
		ORDER BY created_at DESC, id DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list world events", "error", err)
		return nil, fmt.Errorf("failed to list world events: %w", err)
	}
	defer rows.Close()

	var events []WorldEvent
	for rows.Next() {
		var evt WorldEvent
		var payloadJSON []byte

		err := rows.Scan(&evt.ID, &evt.Type, &evt.Source, &evt.RegionID, &payloadJSON, &evt.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan world event: %w", err)
		}

		if err := json.Unmarshal(payloadJSON, &evt.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event payload: %w", err)
		}

		events = append(events, evt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating world events: %w", err)
	}

	return events, nil
}
