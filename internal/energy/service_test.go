package energy

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/lib/pq"

	"aetherium-server/internal/character"
	"aetherium-server/internal/shared/errors"
)

type fakeStore struct {
	absorptions []ActiveAbsorption
	nextID      int
	now         time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, now: time.Now()}
}

func (f *fakeStore) hasActive(characterID int) bool {
	for _, a := range f.absorptions {
		if a.CharacterID == characterID && !a.Completed {
			return true
		}
	}
	return false
}

func (f *fakeStore) Create(ctx context.Context, absorption *ActiveAbsorption) error {
	if f.hasActive(absorption.CharacterID) {
		return &pq.Error{Code: "23505", Constraint: "idx_active_absorptions_running"}
	}
	absorption.ID = f.nextID
	f.nextID++
	absorption.StartedAt = f.now
	f.absorptions = append(f.absorptions, *absorption)
	return nil
}

func (f *fakeStore) ListActiveByCharacter(ctx context.Context, characterID int) ([]ActiveAbsorption, error) {
	var out []ActiveAbsorption
	for _, a := range f.absorptions {
		if a.CharacterID == characterID && !a.Completed {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) CompleteExpired(ctx context.Context, characterID int) (int64, error) {
	var swept int64
	for i := range f.absorptions {
		a := &f.absorptions[i]
		if a.CharacterID == characterID && !a.Completed && !f.now.Before(a.ExpiresAt()) {
			a.Completed = true
			swept++
		}
	}
	return swept, nil
}

type fakeCharacters struct {
	byUser map[string]*character.Character
}

func (f *fakeCharacters) GetByUserID(ctx context.Context, userID string) (*character.Character, error) {
	c, ok := f.byUser[userID]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	chars := &fakeCharacters{byUser: map[string]*character.Character{
		"user-1": {ID: 1, UserID: "user-1", Name: "Ryoko"},
	}}
	return NewService(store, chars, slog.Default()), store
}

func TestStartCreatesAbsorptionWithDefaults(t *testing.T) {
	svc, _ := newTestService()

	absorption, err := svc.Start(context.Background(), "user-1", StartRequest{
		RegionID:    "crystal_cave",
		EnergyColor: "violet",
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if absorption.CharacterID != 1 {
		t.Errorf("CharacterID = %d, want 1", absorption.CharacterID)
	}
	if absorption.DurationMinutes != DefaultDurationMinutes {
		t.Errorf("DurationMinutes = %d, want %d", absorption.DurationMinutes, DefaultDurationMinutes)
	}
	if absorption.Completed {
		t.Error("new absorption must not be completed")
	}
}

func TestStartValidatesInput(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Start(ctx, "user-1", StartRequest{EnergyColor: "violet"}); errors.GetType(err) != errors.ErrorTypeValidation {
		t.Errorf("missing region: error type = %v, want validation", errors.GetType(err))
	}
	if _, err := svc.Start(ctx, "user-1", StartRequest{RegionID: "crystal_cave"}); errors.GetType(err) != errors.ErrorTypeValidation {
		t.Errorf("missing color: error type = %v, want validation", errors.GetType(err))
	}
}

func TestStartWithoutCharacterIsNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Start(context.Background(), "stranger", StartRequest{
		RegionID:    "crystal_cave",
		EnergyColor: "violet",
	})
	if errors.GetType(err) != errors.ErrorTypeNotFound {
		t.Errorf("error type = %v, want not_found", errors.GetType(err))
	}
}

func TestStartSecondActiveAbsorptionConflicts(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Start(ctx, "user-1", StartRequest{RegionID: "crystal_cave", EnergyColor: "violet"}); err != nil {
		t.Fatalf("first start: %v", err)
	}

	_, err := svc.Start(ctx, "user-1", StartRequest{RegionID: "lake_mirror", EnergyColor: "blue"})
	if errors.GetType(err) != errors.ErrorTypeConflict {
		t.Errorf("error type = %v, want conflict", errors.GetType(err))
	}
}

func TestStartAfterExpirySucceeds(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	if _, err := svc.Start(ctx, "user-1", StartRequest{RegionID: "crystal_cave", EnergyColor: "violet"}); err != nil {
		t.Fatalf("first start: %v", err)
	}

	// Move the clock past the session's end; the pre-start sweep should
	// complete it and allow a new one.
	store.now = store.now.Add(time.Duration(DefaultDurationMinutes)*time.Minute + time.Second)

	absorption, err := svc.Start(ctx, "user-1", StartRequest{RegionID: "lake_mirror", EnergyColor: "blue"})
	if err != nil {
		t.Fatalf("second start after expiry: %v", err)
	}
	if absorption.RegionID != "lake_mirror" {
		t.Errorf("RegionID = %q, want lake_mirror", absorption.RegionID)
	}
}

func TestStatusSweepsExpiredAbsorptions(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	if _, err := svc.Start(ctx, "user-1", StartRequest{RegionID: "crystal_cave", EnergyColor: "violet"}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	active, err := svc.Status(ctx, "user-1")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("got %d active absorptions, want 1", len(active))
	}

	store.now = store.now.Add(time.Duration(DefaultDurationMinutes)*time.Minute + time.Second)

	active, err = svc.Status(ctx, "user-1")
	if err != nil {
		t.Fatalf("Status after expiry: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("got %d active absorptions after expiry, want 0", len(active))
	}
	if !store.absorptions[0].Completed {
		t.Error("expired absorption must be marked completed")
	}
}

func TestStatusWithoutCharacterIsEmpty(t *testing.T) {
	svc, _ := newTestService()

	active, err := svc.Status(context.Background(), "stranger")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if active == nil || len(active) != 0 {
		t.Errorf("active = %v, want empty non-nil slice", active)
	}
}
