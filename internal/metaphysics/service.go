package metaphysics

import (
	"context"
	"log/slog"

	"aetherium-server/internal/chakra"
	"aetherium-server/internal/event"
	"aetherium-server/internal/shared/errors"

	"github.com/google/uuid"
)

const (
	// Energize amount bounds.
	MinEnergizeAmount = 1
	MaxEnergizeAmount = 50

	// Applied-effect bounds.
	MaxEffectPower    = 100
	MaxEffectDuration = 1000
)

type Store interface {
	List(ctx context.Context) ([]State, error)
	GetByCharacter(ctx context.Context, characterID int) (*State, error)
	Create(ctx context.Context, state *State) error
	Update(ctx context.Context, state *State) error
}

type EventSink interface {
	Emit(ctx context.Context, evt event.WorldEvent)
}

// Service exposes the character-facing metaphysics operations: energize,
// karma adjustment, evolution checks and effect application. All operations
// validate eagerly and fail before mutating.
type Service struct {
	store  Store
	events EventSink
	logger *slog.Logger
}

func NewService(store Store, events EventSink, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		events: events,
		logger: logger,
	}
}

// GetOrCreateForCharacter returns the character's metaphysics state,
// creating it with the canonical default seed when absent.
func (s *Service) GetOrCreateForCharacter(ctx context.Context, characterID int) (*State, error) {
	state, err := s.store.GetByCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if state != nil {
		return state, nil
	}

	created := NewDefaultState(characterID)
	if err := s.store.Create(ctx, &created); err != nil {
		return nil, err
	}

	s.logger.Info("Created metaphysics state", "character_id", characterID)
	return &created, nil
}

// ListAll returns every metaphysics state row.
func (s *Service) ListAll(ctx context.Context) ([]State, error) {
	return s.store.List(ctx)
}

// Energize boosts one named chakra's flux by amount, clamped at 100.
func (s *Service) Energize(ctx context.Context, characterID int, chakraName string, amount float64) (*State, error) {
	if !chakra.IsValid(chakraName) {
		return nil, errors.Validationf("unknown chakra %q", chakraName)
	}
	if amount < MinEnergizeAmount || amount > MaxEnergizeAmount {
		return nil, errors.Validationf("energize amount must be between %d and %d", MinEnergizeAmount, MaxEnergizeAmount)
	}

	state, err := s.GetOrCreateForCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}

	flux := state.ChakraFlux.Clone()
	if flux == nil {
		flux = chakra.Set{}
	}
	next := flux[chakraName] + amount
	if next > 100 {
		next = 100
	}
	flux[chakraName] = next
	state.ChakraFlux = flux

	if err := s.store.Update(ctx, state); err != nil {
		return nil, err
	}

	s.events.Emit(ctx, event.WorldEvent{
		Type:   event.TypeEnergize,
		Source: event.SourceMetaphysics,
		Payload: map[string]interface{}{
			"character_id": characterID,
			"chakra":       chakraName,
			"amount":       amount,
		},
	})

	return state, nil
}

// AdjustKarma shifts karma by amount, clamped to [-100,100].
func (s *Service) AdjustKarma(ctx context.Context, characterID int, action string, amount float64) (*State, error) {
	state, err := s.GetOrCreateForCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}

	state.Karma = ClampKarma(state.Karma + amount)

	if err := s.store.Update(ctx, state); err != nil {
		return nil, err
	}

	s.events.Emit(ctx, event.WorldEvent{
		Type:   event.TypeKarmaChange,
		Source: event.SourceMetaphysics,
		Payload: map[string]interface{}{
			"character_id": characterID,
			"action":       action,
			"amount":       amount,
			"new_karma":    state.Karma,
		},
	})

	return state, nil
}

// EvolveResult is the outcome of an on-demand evolution check.
type EvolveResult struct {
	Evolved       bool     `json:"evolved"`
	State         *State   `json:"state"`
	NextThreshold *float64 `json:"next_threshold,omitempty"`
}

// CheckEvolution recomputes level and progress with the same formula as the
// tick engine. State is mutated only when a level is gained.
func (s *Service) CheckEvolution(ctx context.Context, characterID int) (*EvolveResult, error) {
	state, err := s.store.GetByCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, errors.NotFoundf("no metaphysics state for character %d", characterID)
	}

	level, progress := ComputeEvolution(*state)

	if level > state.SpiritualLevel {
		state.SpiritualLevel = level
		state.EvolutionProgress = progress

		if err := s.store.Update(ctx, state); err != nil {
			return nil, err
		}

		s.events.Emit(ctx, event.WorldEvent{
			Type:   event.TypeEvolution,
			Source: event.SourceMetaphysics,
			Payload: map[string]interface{}{
				"character_id": characterID,
				"new_level":    level,
				"progress":     progress,
			},
		})

		return &EvolveResult{Evolved: true, State: state}, nil
	}

	return &EvolveResult{
		Evolved:       false,
		State:         state,
		NextThreshold: NextThreshold(level),
	}, nil
}

// GetEffects returns a character's active effects, empty when no state
// exists yet.
func (s *Service) GetEffects(ctx context.Context, characterID int) ([]Effect, error) {
	state, err := s.store.GetByCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return []Effect{}, nil
	}
	return state.ActiveEffects, nil
}

// ApplyEffectRequest describes a new temporary effect.
type ApplyEffectRequest struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Power    float64 `json:"power"`
	Duration int     `json:"duration"`
}

// ApplyEffect attaches a temporary effect to a character's state. The tick
// engine decays it from there.
func (s *Service) ApplyEffect(ctx context.Context, characterID int, req ApplyEffectRequest) (*State, error) {
	if req.Name == "" {
		return nil, errors.Validation("effect name is required")
	}
	if req.Power <= 0 || req.Power > MaxEffectPower {
		return nil, errors.Validationf("effect power must be in (0,%d]", MaxEffectPower)
	}
	if req.Duration < 1 || req.Duration > MaxEffectDuration {
		return nil, errors.Validationf("effect duration must be between 1 and %d ticks", MaxEffectDuration)
	}

	state, err := s.GetOrCreateForCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}

	effect := Effect{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Type:           req.Type,
		Power:          req.Power,
		Duration:       req.Duration,
		RemainingTicks: req.Duration,
	}
	state.ActiveEffects = append(state.ActiveEffects, effect)

	if err := s.store.Update(ctx, state); err != nil {
		return nil, err
	}

	s.events.Emit(ctx, event.WorldEvent{
		Type:   event.TypeEffect,
		Source: event.SourceMetaphysics,
		Payload: map[string]interface{}{
			"character_id": characterID,
			"effect_id":    effect.ID,
			"name":         effect.Name,
			"power":        effect.Power,
			"duration":     effect.Duration,
		},
	})

	return state, nil
}
