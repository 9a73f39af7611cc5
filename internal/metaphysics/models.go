package metaphysics

import "aetherium-server/internal/chakra"

// Effect is a temporary modifier on a metaphysics state. RemainingTicks is
// decremented every tick; effects at zero or below are dropped.
type Effect struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Power          float64 `json:"power"`
	Duration       int     `json:"duration"`
	RemainingTicks int     `json:"remaining_ticks"`
}

// State is the metaphysical layer for one character or one entity; at most
// one row exists per owner. Created lazily with the canonical chakra seed.
type State struct {
	ID                int        `json:"id"`
	CharacterID       *int       `json:"character_id,omitempty"`
	EntityID          *int       `json:"entity_id,omitempty"`
	Karma             float64    `json:"karma"`
	SpiritualLevel    int        `json:"spiritual_level"`
	ChakraFlux        chakra.Set `json:"chakra_flux"`
	ActiveEffects     []Effect   `json:"active_effects"`
	EvolutionProgress float64    `json:"evolution_progress"`
}

// NewDefaultState returns the lazily created state for a character.
func NewDefaultState(characterID int) State {
	id := characterID
	return State{
		CharacterID:    &id,
		Karma:          0,
		SpiritualLevel: 1,
		ChakraFlux:     chakra.DefaultSeed(),
		ActiveEffects:  []Effect{},
	}
}

// ClampKarma bounds karma to the valid [-100,100] range.
func ClampKarma(karma float64) float64 {
	if karma < -100 {
		return -100
	}
	if karma > 100 {
		return 100
	}
	return karma
}
