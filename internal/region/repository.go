package region

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
	logger.Debug("Initializing region repository")
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) ListRegions(ctx context.Context) ([]Region, error) {
	query := `
		SELECT id, name, name_ru, biome, description, description_ru,
		       map_x, map_y, width, height, color, connected_regions, hazard_level, energy_type
		FROM regions
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list regions", "error", err)
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	defer rows.Close()

	var regions []Region
	for rows.Next() {
		reg, err := scanRegion(rows)
		if err != nil {
			r.logger.Error("Failed to scan region", "error", err)
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		regions = append(regions, *reg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating regions: %w", err)
	}

	return regions, nil
}

func (r *Repository) GetRegion(ctx context.Context, id string) (*Region, error) {
	query := `
		SELECT id, name, name_ru, biome, description, description_ru,
		       map_x, map_y, width, height, color, connected_regions, hazard_level, energy_type
		FROM regions
		WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	reg, err := scanRegion(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get region", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get region %s: %w", id, err)
	}

	return reg, nil
}

func (r *Repository) CountRegions(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM regions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count regions: %w", err)
	}
	return count, nil
}

func (r *Repository) CreateRegion(ctx context.Context, reg *Region) error {
	connectedJSON, err := json.Marshal(reg.ConnectedRegions)
	if err != nil {
		return fmt.Errorf("failed to marshal connected regions: %w", err)
	}

	query := `
		INSERT INTO regions (id, name, name_ru, biome, description, description_ru,
		                     map_x, map_y, width, height, color, connected_regions, hazard_level, energy_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = r.db.ExecContext(ctx, query,
		reg.ID,
		reg.Name,
		reg.NameRu,
		reg.Biome,
		reg.Description,
		reg.DescriptionRu,
		reg.MapX,
		reg.MapY,
		reg.Width,
		reg.Height,
		reg.Color,
		connectedJSON,
		reg.HazardLevel,
		reg.EnergyType,
	)
	if err != nil {
		r.logger.Error("Failed to create region", "id", reg.ID, "error", err)
		return fmt.Errorf("failed to create region %s: %w", reg.ID, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRegion(row rowScanner) (*Region, error) {
	reg := &Region{}
	var connectedJSON []byte

	err := row.Scan(
		&reg.ID,
		&reg.Name,
		&reg.NameRu,
		&reg.Biome,
		&reg.Description,
		&reg.DescriptionRu,
		&reg.MapX,
		&reg.MapY,
		&reg.Width,
		&reg.Height,
		&reg.Color,
		&connectedJSON,
		&reg.HazardLevel,
		&reg.EnergyType,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(connectedJSON, &reg.ConnectedRegions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connected regions: %w", err)
	}

	return reg, nil
}
