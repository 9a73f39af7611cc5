package metaphysics

import (
	"context"
	"log/slog"
	"math"
	"testing"

	"aetherium-server/internal/chakra"
	"aetherium-server/internal/character"
	"aetherium-server/internal/world"
)

type fakeCharacterStore struct {
	chars  map[int]*character.Character
	synced map[int]chakra.Set
}

func (f *fakeCharacterStore) Get(ctx context.Context, id int) (*character.Character, error) {
	c, ok := f.chars[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCharacterStore) UpdateChakras(ctx context.Context, id int, chakras chakra.Set) error {
	if f.synced == nil {
		f.synced = map[int]chakra.Set{}
	}
	f.synced[id] = chakras
	return nil
}

type fakeClock struct {
	state *world.WorldState
}

func (f *fakeClock) Get(ctx context.Context) (*world.WorldState, error) {
	return f.state, nil
}

func TestEngineTickAdvancesEveryState(t *testing.T) {
	store := newFakeStore()
	charID := 1
	store.states[1] = &State{
		ID:             1,
		CharacterID:    &charID,
		SpiritualLevel: 1,
		ChakraFlux:     chakra.Set{chakra.Manipura: 10, chakra.Muladhara: 10},
		ActiveEffects:  []Effect{{ID: "a", RemainingTicks: 2}, {ID: "b", RemainingTicks: 1}},
	}
	store.nextID = 2

	chars := &fakeCharacterStore{chars: map[int]*character.Character{
		1: {ID: 1, Chakras: chakra.Set{chakra.Manipura: 50}},
	}}
	ws := world.DefaultWorldState()
	ws.TimeOfDay = 12 // manipura peak
	engine := NewEngine(store, chars, &fakeClock{state: &ws}, slog.Default())

	if err := engine.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	got := store.states[1]
	if math.Abs(got.ChakraFlux[chakra.Manipura]-10.5) > 1e-9 {
		t.Errorf("manipura flux = %v, want 10.5", got.ChakraFlux[chakra.Manipura])
	}
	if math.Abs(got.ChakraFlux[chakra.Muladhara]-9.9) > 1e-9 {
		t.Errorf("muladhara flux = %v, want 9.9", got.ChakraFlux[chakra.Muladhara])
	}
	if len(got.ActiveEffects) != 1 || got.ActiveEffects[0].ID != "a" {
		t.Errorf("effects = %+v, want only effect a surviving", got.ActiveEffects)
	}
	if got.EvolutionProgress <= 0 {
		t.Errorf("evolution progress = %v, want positive", got.EvolutionProgress)
	}
}

func TestEngineTickSyncsCharacterChakras(t *testing.T) {
	store := newFakeStore()
	charID := 5
	store.states[1] = &State{
		ID:          1,
		CharacterID: &charID,
		ChakraFlux:  chakra.Set{chakra.Manipura: 100},
	}
	store.nextID = 2

	chars := &fakeCharacterStore{chars: map[int]*character.Character{
		5: {ID: 5, Chakras: chakra.Set{chakra.Manipura: 50}},
	}}
	ws := world.DefaultWorldState()
	ws.TimeOfDay = 12
	engine := NewEngine(store, chars, &fakeClock{state: &ws}, slog.Default())

	if err := engine.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	synced, ok := chars.synced[5]
	if !ok {
		t.Fatal("character chakras were not synced")
	}
	// Flux stays clamped at 100 in its peak window; display gains 100*0.01.
	if math.Abs(synced[chakra.Manipura]-51) > 1e-9 {
		t.Errorf("manipura display = %v, want 51", synced[chakra.Manipura])
	}
}

func TestEngineTickSkipsEntityStatesForChakraSync(t *testing.T) {
	store := newFakeStore()
	entityID := 9
	store.states[1] = &State{
		ID:         1,
		EntityID:   &entityID,
		ChakraFlux: chakra.Set{chakra.Manipura: 10},
	}
	store.nextID = 2

	chars := &fakeCharacterStore{chars: map[int]*character.Character{}}
	ws := world.DefaultWorldState()
	engine := NewEngine(store, chars, &fakeClock{state: &ws}, slog.Default())

	if err := engine.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if len(chars.synced) != 0 {
		t.Errorf("entity-owned state must not sync character chakras: %v", chars.synced)
	}
}

func TestEngineTickDefaultsClockWhenWorldAbsent(t *testing.T) {
	store := newFakeStore()
	charID := 1
	store.states[1] = &State{
		ID:          1,
		CharacterID: &charID,
		ChakraFlux:  chakra.Set{chakra.Manipura: 10},
	}
	store.nextID = 2

	chars := &fakeCharacterStore{chars: map[int]*character.Character{}}
	engine := NewEngine(store, chars, &fakeClock{state: nil}, slog.Default())

	if err := engine.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	// Noon default puts manipura in its peak window.
	if math.Abs(store.states[1].ChakraFlux[chakra.Manipura]-10.5) > 1e-9 {
		t.Errorf("manipura flux = %v, want 10.5 with noon default", store.states[1].ChakraFlux[chakra.Manipura])
	}
}
