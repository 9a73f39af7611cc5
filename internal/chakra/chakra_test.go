package chakra

import "testing"

func TestIsValid(t *testing.T) {
	for _, k := range Keys {
		if !IsValid(k) {
			t.Errorf("IsValid(%q) = false, want true", k)
		}
	}
	if IsValid("") || IsValid("Muladhara") || IsValid("heart") {
		t.Error("IsValid accepted an unknown name")
	}
}

func TestDefaultSeedCoversAllChakras(t *testing.T) {
	seed := DefaultSeed()

	if len(seed) != len(Keys) {
		t.Fatalf("seed has %d entries, want %d", len(seed), len(Keys))
	}
	if seed[Muladhara] != 10 {
		t.Errorf("muladhara seed = %v, want 10", seed[Muladhara])
	}
	if got := seed.Sum(); got != 33 {
		t.Errorf("seed sum = %v, want 33", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	original := Set{Muladhara: 10}
	clone := original.Clone()
	clone[Muladhara] = 99

	if original[Muladhara] != 10 {
		t.Errorf("mutating the clone changed the original: %v", original[Muladhara])
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{50, 50},
		{100, 100},
		{150, 100},
	}

	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
