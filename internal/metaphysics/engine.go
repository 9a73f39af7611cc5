package metaphysics

import (
	"context"
	"fmt"
	"log/slog"

	"aetherium-server/internal/chakra"
	"aetherium-server/internal/character"
	"aetherium-server/internal/world"
)

// fluxSyncRate is the fraction of raw flux folded into the character's
// display chakra values each tick.
const fluxSyncRate = 0.01

type StateStore interface {
	List(ctx context.Context) ([]State, error)
	Update(ctx context.Context, state *State) error
}

type CharacterStore interface {
	Get(ctx context.Context, id int) (*character.Character, error)
	UpdateChakras(ctx context.Context, id int, chakras chakra.Set) error
}

type WorldClock interface {
	Get(ctx context.Context) (*world.WorldState, error)
}

// Engine advances every metaphysics state by one fixed step: chakra flux
// against the shared 24-hour clock, effect decay, and spiritual evolution.
// A row that fails aborts the remaining rows of that cycle; the next
// scheduled tick picks the work back up.
type Engine struct {
	states     StateStore
	characters CharacterStore
	clock      WorldClock
	logger     *slog.Logger
}

func NewEngine(states StateStore, characters CharacterStore, clock WorldClock, logger *slog.Logger) *Engine {
	return &Engine{
		states:     states,
		characters: characters,
		clock:      clock,
		logger:     logger.With("component", "metaphysics_engine"),
	}
}

// Tick runs one metaphysics step over all state rows.
func (e *Engine) Tick(ctx context.Context) error {
	currentTime := 12.0
	if ws, err := e.clock.Get(ctx); err != nil {
		return fmt.Errorf("failed to read world clock: %w", err)
	} else if ws != nil {
		currentTime = ws.TimeOfDay
	}

	states, err := e.states.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list metaphysics states: %w", err)
	}

	for i := range states {
		state := states[i]

		state.ChakraFlux = AdvanceFlux(state.ChakraFlux, currentTime)
		state.ActiveEffects = AdvanceEffects(state.ActiveEffects)
		state.SpiritualLevel, state.EvolutionProgress = ComputeEvolution(state)

		if err := e.states.Update(ctx, &state); err != nil {
			return fmt.Errorf("failed to update metaphysics state %d: %w", state.ID, err)
		}

		if state.CharacterID != nil && state.ChakraFlux != nil {
			if err := e.syncCharacterChakras(ctx, *state.CharacterID, state.ChakraFlux); err != nil {
				return err
			}
		}
	}

	return nil
}

// syncCharacterChakras nudges the character's display chakra values toward
// the raw flux. This write intentionally races manager-side character
// updates; both sides are last-writer-wins on the whole chakra column.
func (e *Engine) syncCharacterChakras(ctx context.Context, characterID int, flux chakra.Set) error {
	char, err := e.characters.Get(ctx, characterID)
	if err != nil {
		return fmt.Errorf("failed to load character %d for chakra sync: %w", characterID, err)
	}
	if char == nil {
		return nil
	}

	synced := char.Chakras.Clone()
	if synced == nil {
		synced = chakra.Set{}
	}
	for _, key := range chakra.Keys {
		synced[key] = chakra.Clamp(synced[key] + flux[key]*fluxSyncRate)
	}

	if err := e.characters.UpdateChakras(ctx, characterID, synced); err != nil {
		return fmt.Errorf("failed to sync character %d chakras: %w", characterID, err)
	}

	return nil
}
