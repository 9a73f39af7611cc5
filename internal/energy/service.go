package energy

import (
	"context"
	"log/slog"

	"aetherium-server/internal/character"
	"aetherium-server/internal/shared/errors"
)

type Store interface {
	Create(ctx context.Context, absorption *ActiveAbsorption) error
	ListActiveByCharacter(ctx context.Context, characterID int) ([]ActiveAbsorption, error)
	CompleteExpired(ctx context.Context, characterID int) (int64, error)
}

type CharacterStore interface {
	GetByUserID(ctx context.Context, userID string) (*character.Character, error)
}

// Service manages timed absorption sessions. Expiry is swept lazily on
// every read and start, and a partial unique index keeps at most one
// active absorption per character.
type Service struct {
	store      Store
	characters CharacterStore
	logger     *slog.Logger
}

func NewService(store Store, characters CharacterStore, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		characters: characters,
		logger:     logger,
	}
}

// Start begins a new absorption for the caller's character.
func (s *Service) Start(ctx context.Context, userID string, req StartRequest) (*ActiveAbsorption, error) {
	if req.RegionID == "" {
		return nil, errors.Validation("region id is required")
	}
	if req.EnergyColor == "" {
		return nil, errors.Validation("energy color is required")
	}

	char, err := s.characters.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if char == nil {
		return nil, errors.NotFoundf("character not found")
	}

	// Sweep first so a finished session never blocks a new one.
	if swept, err := s.store.CompleteExpired(ctx, char.ID); err != nil {
		return nil, err
	} else if swept > 0 {
		s.logger.Debug("Swept expired absorptions", "character_id", char.ID, "count", swept)
	}

	absorption := &ActiveAbsorption{
		CharacterID:     char.ID,
		RegionID:        req.RegionID,
		EnergyColor:     req.EnergyColor,
		DurationMinutes: DefaultDurationMinutes,
	}

	if err := s.store.Create(ctx, absorption); err != nil {
		if character.IsUniqueViolation(err) {
			return nil, errors.Conflictf("an absorption is already active")
		}
		return nil, err
	}

	s.logger.Info("Absorption started",
		"character_id", char.ID,
		"region_id", req.RegionID,
		"energy_color", req.EnergyColor,
	)

	return absorption, nil
}

// Status returns the caller's active absorptions after sweeping expired
// ones. A caller without a character sees an empty list.
func (s *Service) Status(ctx context.Context, userID string) ([]ActiveAbsorption, error) {
	char, err := s.characters.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if char == nil {
		return []ActiveAbsorption{}, nil
	}

	if _, err := s.store.CompleteExpired(ctx, char.ID); err != nil {
		return nil, err
	}

	absorptions, err := s.store.ListActiveByCharacter(ctx, char.ID)
	if err != nil {
		return nil, err
	}
	if absorptions == nil {
		absorptions = []ActiveAbsorption{}
	}

	return absorptions, nil
}
