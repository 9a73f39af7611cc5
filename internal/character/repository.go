package character

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"aetherium-server/internal/chakra"
	"aetherium-server/internal/shared/database"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code for unique constraint breaches.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing character repository")
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const characterColumns = `id, user_id, name, self_title, genome, attributes, skills, chakras, energy, region_id, pos_x, pos_y, created_at`

func (r *Repository) Get(ctx context.Context, id int) (*Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters WHERE id = $1`

	char, err := scanCharacter(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get character", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get character %d: %w", id, err)
	}

	return char, nil
}

func (r *Repository) GetByUserID(ctx context.Context, userID string) (*Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters WHERE user_id = $1`

	char, err := scanCharacter(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get character by user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get character for user %s: %w", userID, err)
	}

	return char, nil
}

func (r *Repository) Create(ctx context.Context, char *Character) error {
	attrsJSON, err := json.Marshal(char.Attributes)
	if err != nil {
		return fmt.Errorf("failed to marshal attributes: %w", err)
	}
	skillsJSON, err := json.Marshal(char.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	chakrasJSON, err := json.Marshal(char.Chakras)
	if err != nil {
		return fmt.Errorf("failed to marshal chakras: %w", err)
	}

	query := `
		INSERT INTO characters (user_id, name, self_title, genome, attributes, skills, chakras, energy, region_id, pos_x, pos_y)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query,
		char.UserID,
		char.Name,
		char.SelfTitle,
		char.Genome,
		attrsJSON,
		skillsJSON,
		chakrasJSON,
		char.Energy,
		char.RegionID,
		char.PosX,
		char.PosY,
	).Scan(&char.ID, &char.CreatedAt)
	if err != nil {
		if !IsUniqueViolation(err) {
			r.logger.Error("Failed to create character", "user_id", char.UserID, "error", err)
		}
		return fmt.Errorf("failed to create character: %w", err)
	}

	return nil
}

// Update applies a partial patch, building the SET clause from non-nil
// fields only.
func (r *Repository) Update(ctx context.Context, id int, updates UpdateRequest) (*Character, error) {
	var sets []string
	var args []interface{}
	args = append(args, id)

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if updates.Name != nil {
		addSet("name", *updates.Name)
	}
	if updates.SelfTitle != nil {
		addSet("self_title", *updates.SelfTitle)
	}
	if updates.Genome != nil {
		addSet("genome", *updates.Genome)
	}
	if updates.Attributes != nil {
		attrsJSON, err := json.Marshal(*updates.Attributes)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal attributes: %w", err)
		}
		addSet("attributes", attrsJSON)
	}
	if updates.Skills != nil {
		skillsJSON, err := json.Marshal(*updates.Skills)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal skills: %w", err)
		}
		addSet("skills", skillsJSON)
	}
	if updates.Chakras != nil {
		chakrasJSON, err := json.Marshal(*updates.Chakras)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal chakras: %w", err)
		}
		addSet("chakras", chakrasJSON)
	}
	if updates.Energy != nil {
		addSet("energy", *updates.Energy)
	}

	if len(sets) == 0 {
		return r.Get(ctx, id)
	}

	query := `UPDATE characters SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + characterColumns

	char, err := scanCharacter(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to update character", "id", id, "error", err)
		return nil, fmt.Errorf("failed to update character %d: %w", id, err)
	}

	return char, nil
}

// UpdateChakras overwrites the display chakra values. Shared write with the
// metaphysics tick sync; last writer wins.
func (r *Repository) UpdateChakras(ctx context.Context, id int, chakras chakra.Set) error {
	chakrasJSON, err := json.Marshal(chakras)
	if err != nil {
		return fmt.Errorf("failed to marshal chakras: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `UPDATE characters SET chakras = $2 WHERE id = $1`, id, chakrasJSON)
	if err != nil {
		r.logger.Error("Failed to update character chakras", "id", id, "error", err)
		return fmt.Errorf("failed to update character %d chakras: %w", id, err)
	}

	return nil
}

// UpdatePosition relocates a character to a region and position.
func (r *Repository) UpdatePosition(ctx context.Context, id int, regionID string, posX, posY float64) (*Character, error) {
	query := `
		UPDATE characters
		SET region_id = $2, pos_x = $3, pos_y = $4
		WHERE id = $1
		RETURNING ` + characterColumns

	char, err := scanCharacter(r.db.QueryRowContext(ctx, query, id, regionID, posX, posY))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to update character position", "id", id, "error", err)
		return nil, fmt.Errorf("failed to update character %d position: %w", id, err)
	}

	return char, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCharacter(row rowScanner) (*Character, error) {
	char := &Character{}
	var attrsJSON, skillsJSON, chakrasJSON []byte

	err := row.Scan(
		&char.ID,
		&char.UserID,
		&char.Name,
		&char.SelfTitle,
		&char.Genome,
		&attrsJSON,
		&skillsJSON,
		&chakrasJSON,
		&char.Energy,
		&char.RegionID,
		&char.PosX,
		&char.PosY,
		&char.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(attrsJSON, &char.Attributes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attributes: %w", err)
	}
	if err := json.Unmarshal(skillsJSON, &char.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	if err := json.Unmarshal(chakrasJSON, &char.Chakras); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chakras: %w", err)
	}

	return char, nil
}
