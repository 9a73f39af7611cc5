package metaphysics

import (
	"context"
	"log/slog"
	"testing"

	"aetherium-server/internal/chakra"
	"aetherium-server/internal/event"
	"aetherium-server/internal/shared/errors"
)

type fakeStore struct {
	states map[int]*State
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{states: map[int]*State{}, nextID: 1}
}

func (f *fakeStore) List(ctx context.Context) ([]State, error) {
	var out []State
	for _, s := range f.states {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStore) GetByCharacter(ctx context.Context, characterID int) (*State, error) {
	for _, s := range f.states {
		if s.CharacterID != nil && *s.CharacterID == characterID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Create(ctx context.Context, state *State) error {
	state.ID = f.nextID
	f.nextID++
	copied := *state
	f.states[state.ID] = &copied
	return nil
}

func (f *fakeStore) Update(ctx context.Context, state *State) error {
	copied := *state
	f.states[state.ID] = &copied
	return nil
}

type recordingSink struct {
	events []event.WorldEvent
}

func (r *recordingSink) Emit(ctx context.Context, evt event.WorldEvent) {
	r.events = append(r.events, evt)
}

func newTestService() (*Service, *fakeStore, *recordingSink) {
	store := newFakeStore()
	sink := &recordingSink{}
	return NewService(store, sink, slog.Default()), store, sink
}

func TestGetOrCreateForCharacterSeedsDefaults(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	state, err := svc.GetOrCreateForCharacter(ctx, 7)
	if err != nil {
		t.Fatalf("GetOrCreateForCharacter: %v", err)
	}

	if state.CharacterID == nil || *state.CharacterID != 7 {
		t.Errorf("CharacterID = %v, want 7", state.CharacterID)
	}
	if state.SpiritualLevel != 1 {
		t.Errorf("SpiritualLevel = %d, want 1", state.SpiritualLevel)
	}
	if state.ChakraFlux[chakra.Muladhara] != 10 || state.ChakraFlux[chakra.Sahasrara] != 1 {
		t.Errorf("unexpected seed flux: %v", state.ChakraFlux)
	}

	again, err := svc.GetOrCreateForCharacter(ctx, 7)
	if err != nil {
		t.Fatalf("second GetOrCreateForCharacter: %v", err)
	}
	if again.ID != state.ID {
		t.Errorf("second call created a new row: %d vs %d", again.ID, state.ID)
	}
}

func TestEnergizeAccumulatesAndClamps(t *testing.T) {
	svc, _, sink := newTestService()
	ctx := context.Background()

	if _, err := svc.Energize(ctx, 1, chakra.Anahata, 5); err != nil {
		t.Fatalf("first energize: %v", err)
	}
	state, err := svc.Energize(ctx, 1, chakra.Anahata, 10)
	if err != nil {
		t.Fatalf("second energize: %v", err)
	}

	// Seed 5 + 5 + 10.
	if state.ChakraFlux[chakra.Anahata] != 20 {
		t.Errorf("anahata flux = %v, want 20", state.ChakraFlux[chakra.Anahata])
	}

	for i := 0; i < 3; i++ {
		if state, err = svc.Energize(ctx, 1, chakra.Anahata, 50); err != nil {
			t.Fatalf("energize %d: %v", i, err)
		}
	}
	if state.ChakraFlux[chakra.Anahata] != 100 {
		t.Errorf("anahata flux = %v, want clamped at 100", state.ChakraFlux[chakra.Anahata])
	}

	if len(sink.events) != 5 {
		t.Errorf("got %d events, want 5", len(sink.events))
	}
	if sink.events[0].Type != event.TypeEnergize {
		t.Errorf("event type = %q, want energize", sink.events[0].Type)
	}
}

func TestEnergizeRejectsInvalidInput(t *testing.T) {
	svc, store, sink := newTestService()
	ctx := context.Background()

	tests := []struct {
		name   string
		chakra string
		amount float64
	}{
		{"unknown chakra", "spleen", 10},
		{"amount below minimum", chakra.Anahata, 0},
		{"amount above maximum", chakra.Anahata, 51},
		{"negative amount", chakra.Anahata, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Energize(ctx, 1, tt.chakra, tt.amount)
			if errors.GetType(err) != errors.ErrorTypeValidation {
				t.Errorf("error type = %v, want validation", errors.GetType(err))
			}
		})
	}

	if len(store.states) != 0 {
		t.Errorf("validation failures must not create state, got %d rows", len(store.states))
	}
	if len(sink.events) != 0 {
		t.Errorf("validation failures must not emit events, got %d", len(sink.events))
	}
}

func TestAdjustKarmaClampsToRange(t *testing.T) {
	svc, _, sink := newTestService()
	ctx := context.Background()

	state, err := svc.AdjustKarma(ctx, 1, "helped_stranger", 90)
	if err != nil {
		t.Fatalf("AdjustKarma: %v", err)
	}
	if state.Karma != 90 {
		t.Errorf("karma = %v, want 90", state.Karma)
	}

	state, err = svc.AdjustKarma(ctx, 1, "saved_village", 150)
	if err != nil {
		t.Fatalf("AdjustKarma: %v", err)
	}
	if state.Karma != 100 {
		t.Errorf("karma = %v, want clamped at 100", state.Karma)
	}

	state, err = svc.AdjustKarma(ctx, 1, "betrayal", -500)
	if err != nil {
		t.Fatalf("AdjustKarma: %v", err)
	}
	if state.Karma != -100 {
		t.Errorf("karma = %v, want clamped at -100", state.Karma)
	}

	last := sink.events[len(sink.events)-1]
	if last.Type != event.TypeKarmaChange || last.Payload["new_karma"] != -100.0 {
		t.Errorf("last event = %+v, want karma_change with new_karma -100", last)
	}
}

func TestCheckEvolutionPromotesAndEmits(t *testing.T) {
	svc, store, sink := newTestService()
	ctx := context.Background()

	id := 3
	seed := &State{ID: 1, CharacterID: &id, SpiritualLevel: 1, EvolutionProgress: 100}
	store.states[1] = seed
	store.nextID = 2

	result, err := svc.CheckEvolution(ctx, 3)
	if err != nil {
		t.Fatalf("CheckEvolution: %v", err)
	}

	if !result.Evolved {
		t.Fatal("expected evolution at threshold")
	}
	if result.State.SpiritualLevel != 2 {
		t.Errorf("level = %d, want 2", result.State.SpiritualLevel)
	}
	if len(sink.events) != 1 || sink.events[0].Type != event.TypeEvolution {
		t.Errorf("events = %+v, want one evolution event", sink.events)
	}
}

func TestCheckEvolutionBelowThresholdReportsNext(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	id := 3
	store.states[1] = &State{ID: 1, CharacterID: &id, SpiritualLevel: 2, EvolutionProgress: 50}
	store.nextID = 2

	result, err := svc.CheckEvolution(ctx, 3)
	if err != nil {
		t.Fatalf("CheckEvolution: %v", err)
	}

	if result.Evolved {
		t.Fatal("must not evolve below threshold")
	}
	if result.NextThreshold == nil || *result.NextThreshold != 300 {
		t.Errorf("NextThreshold = %v, want 300", result.NextThreshold)
	}
}

func TestCheckEvolutionWithoutStateIsNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CheckEvolution(context.Background(), 99)
	if errors.GetType(err) != errors.ErrorTypeNotFound {
		t.Errorf("error type = %v, want not_found", errors.GetType(err))
	}
}

func TestApplyEffectValidatesAndAppends(t *testing.T) {
	svc, _, sink := newTestService()
	ctx := context.Background()

	_, err := svc.ApplyEffect(ctx, 1, ApplyEffectRequest{Name: "", Power: 10, Duration: 5})
	if errors.GetType(err) != errors.ErrorTypeValidation {
		t.Errorf("missing name: error type = %v, want validation", errors.GetType(err))
	}
	_, err = svc.ApplyEffect(ctx, 1, ApplyEffectRequest{Name: "blessing", Power: 0, Duration: 5})
	if errors.GetType(err) != errors.ErrorTypeValidation {
		t.Errorf("zero power: error type = %v, want validation", errors.GetType(err))
	}
	_, err = svc.ApplyEffect(ctx, 1, ApplyEffectRequest{Name: "blessing", Power: 10, Duration: 0})
	if errors.GetType(err) != errors.ErrorTypeValidation {
		t.Errorf("zero duration: error type = %v, want validation", errors.GetType(err))
	}

	state, err := svc.ApplyEffect(ctx, 1, ApplyEffectRequest{Name: "blessing", Type: "buff", Power: 10, Duration: 5})
	if err != nil {
		t.Fatalf("ApplyEffect: %v", err)
	}

	if len(state.ActiveEffects) != 1 {
		t.Fatalf("got %d effects, want 1", len(state.ActiveEffects))
	}
	eff := state.ActiveEffects[0]
	if eff.ID == "" {
		t.Error("effect ID must be assigned")
	}
	if eff.RemainingTicks != 5 {
		t.Errorf("RemainingTicks = %d, want 5", eff.RemainingTicks)
	}
	if len(sink.events) != 1 || sink.events[0].Type != event.TypeEffect {
		t.Errorf("events = %+v, want one effect_applied event", sink.events)
	}
}

func TestGetEffectsWithoutStateIsEmpty(t *testing.T) {
	svc, _, _ := newTestService()

	effects, err := svc.GetEffects(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetEffects: %v", err)
	}
	if effects == nil || len(effects) != 0 {
		t.Errorf("effects = %v, want empty non-nil slice", effects)
	}
}
