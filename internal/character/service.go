package character

import (
	"context"
	"log/slog"

	"aetherium-server/internal/chakra"
	"aetherium-server/internal/event"
	"aetherium-server/internal/region"
	"aetherium-server/internal/shared/errors"
)

type Store interface {
	Get(ctx context.Context, id int) (*Character, error)
	GetByUserID(ctx context.Context, userID string) (*Character, error)
	Create(ctx context.Context, char *Character) error
	Update(ctx context.Context, id int, updates UpdateRequest) (*Character, error)
	UpdatePosition(ctx context.Context, id int, regionID string, posX, posY float64) (*Character, error)
}

type RegionStore interface {
	GetRegion(ctx context.Context, id string) (*region.Region, error)
}

type EventSink interface {
	Emit(ctx context.Context, evt event.WorldEvent)
}

// Service owns character lifecycle and travel. Operations validate eagerly
// and fail before mutating.
type Service struct {
	store   Store
	regions RegionStore
	events  EventSink
	logger  *slog.Logger
}

func NewService(store Store, regions RegionStore, events EventSink, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		regions: regions,
		events:  events,
		logger:  logger,
	}
}

// GetByUser returns the caller's character.
func (s *Service) GetByUser(ctx context.Context, userID string) (*Character, error) {
	char, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if char == nil {
		return nil, errors.NotFoundf("character not found")
	}
	return char, nil
}

// Create makes the user's character. Each user may have at most one.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Character, error) {
	if req.Name == "" {
		return nil, errors.Validation("character name is required")
	}
	if req.Genome == "" {
		return nil, errors.Validation("character genome is required")
	}

	existing, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflictf("character already exists for user")
	}

	chakras := req.Chakras
	if chakras == nil {
		chakras = chakra.DefaultSeed()
	}
	skills := req.Skills
	if skills == nil {
		skills = []string{}
	}

	char := &Character{
		UserID:     userID,
		Name:       req.Name,
		SelfTitle:  req.SelfTitle,
		Genome:     req.Genome,
		Attributes: req.Attributes,
		Skills:     skills,
		Chakras:    chakras,
		Energy:     req.Energy,
		RegionID:   DefaultRegionID,
	}

	if err := s.store.Create(ctx, char); err != nil {
		if IsUniqueViolation(err) {
			return nil, errors.Conflictf("character already exists for user")
		}
		return nil, err
	}

	s.logger.Info("Character created", "character_id", char.ID, "user_id", userID)
	return char, nil
}

// Update applies a partial patch after verifying ownership.
func (s *Service) Update(ctx context.Context, userID string, characterID int, updates UpdateRequest) (*Character, error) {
	char, err := s.store.Get(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if char == nil || char.UserID != userID {
		return nil, errors.NotFoundf("character not found or access denied")
	}

	updated, err := s.store.Update(ctx, characterID, updates)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.NotFoundf("character not found")
	}

	return updated, nil
}

// Travel relocates a character along the region adjacency graph. Characters
// without a current region may travel anywhere; otherwise the target must
// be listed in the current region's connections. On success the character
// is placed at the target region's center.
func (s *Service) Travel(ctx context.Context, characterID int, targetRegionID string) (*Character, error) {
	target, err := s.regions.GetRegion(ctx, targetRegionID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, errors.NotFoundf("region %s not found", targetRegionID)
	}

	char, err := s.store.Get(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if char == nil {
		return nil, errors.NotFoundf("character %d not found", characterID)
	}

	if char.RegionID != "" {
		current, err := s.regions.GetRegion(ctx, char.RegionID)
		if err != nil {
			return nil, err
		}
		if current != nil && !current.IsConnectedTo(targetRegionID) {
			return nil, errors.Validationf("region %s is not connected to %s", targetRegionID, char.RegionID)
		}
	}

	updated, err := s.store.UpdatePosition(ctx, characterID, targetRegionID, target.CenterX(), target.CenterY())
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.NotFoundf("character %d not found", characterID)
	}

	s.events.Emit(ctx, event.WorldEvent{
		Type:     event.TypeTravel,
		Source:   event.SourcePhysics,
		RegionID: &targetRegionID,
		Payload: map[string]interface{}{
			"character_id": characterID,
			"from":         char.RegionID,
			"to":           targetRegionID,
		},
	})

	return updated, nil
}
