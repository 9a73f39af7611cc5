package entity

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
	logger.Debug("Initializing entity repository")
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const entityColumns = `id, name, type, region_id, pos_x, pos_y, velocity_x, velocity_y, mass, health, state, properties`

func (r *Repository) List(ctx context.Context) ([]Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list entities", "error", err)
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer rows.Close()

	return collectEntities(rows)
}

func (r *Repository) ListByRegion(ctx context.Context, regionID string) ([]Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE region_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, regionID)
	if err != nil {
		r.logger.Error("Failed to list entities by region", "region_id", regionID, "error", err)
		return nil, fmt.Errorf("failed to list entities in region %s: %w", regionID, err)
	}
	defer rows.Close()

	return collectEntities(rows)
}

func (r *Repository) Get(ctx context.Context, id int) (*Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE id = $1`

	e, err := scanEntity(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get entity", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get entity %d: %w", id, err)
	}

	return e, nil
}

func (r *Repository) Create(ctx context.Context, e *Entity) error {
	propsJSON, err := json.Marshal(e.Properties)
	if err != nil {
		return fmt.Errorf("failed to marshal entity properties: %w", err)
	}

	query := `
		INSERT INTO entities (name, type, region_id, pos_x, pos_y, velocity_x, velocity_y, mass, health, state, properties)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	err = r.db.QueryRowContext(ctx, query,
		e.Name,
		e.Type,
		e.RegionID,
		e.PosX,
		e.PosY,
		e.VelocityX,
		e.VelocityY,
		e.Mass,
		e.Health,
		e.State,
		propsJSON,
	).Scan(&e.ID)
	if err != nil {
		r.logger.Error("Failed to create entity", "name", e.Name, "error", err)
		return fmt.Errorf("failed to create entity: %w", err)
	}

	return nil
}

// UpdateMotion persists the position and velocity produced by a physics step.
func (r *Repository) UpdateMotion(ctx context.Context, id int, posX, posY, velocityX, velocityY float64) error {
	query := `
		UPDATE entities
		SET pos_x = $2, pos_y = $3, velocity_x = $4, velocity_y = $5
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, posX, posY, velocityX, velocityY)
	if err != nil {
		r.logger.Error("Failed to update entity motion", "id", id, "error", err)
		return fmt.Errorf("failed to update entity %d motion: %w", id, err)
	}

	return nil
}

// SetVelocity overrides an entity's velocity and returns the updated row.
func (r *Repository) SetVelocity(ctx context.Context, id int, velocityX, velocityY float64) (*Entity, error) {
	query := `
		UPDATE entities
		SET velocity_x = $2, velocity_y = $3
		WHERE id = $1
		RETURNING ` + entityColumns

	e, err := scanEntity(r.db.QueryRowContext(ctx, query, id, velocityX, velocityY))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to set entity velocity", "id", id, "error", err)
		return nil, fmt.Errorf("failed to set entity %d velocity: %w", id, err)
	}

	return e, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntity(row rowScanner) (*Entity, error) {
	e := &Entity{}
	var propsJSON []byte

	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Type,
		&e.RegionID,
		&e.PosX,
		&e.PosY,
		&e.VelocityX,
		&e.VelocityY,
		&e.Mass,
		&e.Health,
		&e.State,
		&propsJSON,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(propsJSON, &e.Properties); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entity properties: %w", err)
	}

	return e, nil
}

func collectEntities(rows *sql.Rows) ([]Entity, error) {
	var entities []Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entities = append(entities, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entities: %w", err)
	}

	return entities, nil
}
