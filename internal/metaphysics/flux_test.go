package metaphysics

import (
	"math"
	"testing"

	"aetherium-server/internal/chakra"
)

func TestInPeakWindow(t *testing.T) {
	tests := []struct {
		name   string
		chakra string
		hour   float64
		want   bool
	}{
		{"muladhara at window start", chakra.Muladhara, 4, true},
		{"muladhara at window end is exclusive", chakra.Muladhara, 8, false},
		{"muladhara before dawn", chakra.Muladhara, 3.99, false},
		{"manipura midday", chakra.Manipura, 12, true},
		{"ajna late evening", chakra.Ajna, 22, true},
		{"ajna at midnight boundary", chakra.Ajna, 0, false},
		{"sahasrara just after midnight", chakra.Sahasrara, 0.5, true},
		{"sahasrara at four", chakra.Sahasrara, 4, false},
		{"unknown chakra never peaks", "tenth_gate", 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InPeakWindow(tt.chakra, tt.hour); got != tt.want {
				t.Errorf("InPeakWindow(%q, %v) = %v, want %v", tt.chakra, tt.hour, got, tt.want)
			}
		})
	}
}

func TestAdvanceFluxGainsInsideWindowDecaysOutside(t *testing.T) {
	flux := chakra.Set{
		chakra.Muladhara: 10,
		chakra.Manipura:  10,
		chakra.Sahasrara: 10,
	}

	got := AdvanceFlux(flux, 12)

	if math.Abs(got[chakra.Manipura]-10.5) > 1e-9 {
		t.Errorf("manipura = %v, want 10.5 (inside peak)", got[chakra.Manipura])
	}
	if math.Abs(got[chakra.Muladhara]-9.9) > 1e-9 {
		t.Errorf("muladhara = %v, want 9.9 (outside peak)", got[chakra.Muladhara])
	}
	if math.Abs(got[chakra.Sahasrara]-9.9) > 1e-9 {
		t.Errorf("sahasrara = %v, want 9.9 (outside peak)", got[chakra.Sahasrara])
	}
}

func TestAdvanceFluxClampsAtBounds(t *testing.T) {
	flux := chakra.Set{
		chakra.Manipura:  100,
		chakra.Muladhara: 0.05,
	}

	got := AdvanceFlux(flux, 12)

	if got[chakra.Manipura] != 100 {
		t.Errorf("manipura = %v, want clamped at 100", got[chakra.Manipura])
	}
	if got[chakra.Muladhara] != 0 {
		t.Errorf("muladhara = %v, want clamped at 0", got[chakra.Muladhara])
	}
}

func TestAdvanceFluxNormalizesOverflowedClock(t *testing.T) {
	flux := chakra.Set{chakra.Manipura: 10}

	// 36h is 12h after wrap, inside manipura's window.
	got := AdvanceFlux(flux, 36)

	if math.Abs(got[chakra.Manipura]-10.5) > 1e-9 {
		t.Errorf("manipura = %v, want 10.5 after clock normalization", got[chakra.Manipura])
	}
}

func TestAdvanceFluxDoesNotMutateInput(t *testing.T) {
	flux := chakra.Set{chakra.Manipura: 10}
	AdvanceFlux(flux, 12)

	if flux[chakra.Manipura] != 10 {
		t.Errorf("input mutated: %v", flux[chakra.Manipura])
	}
}

func TestAdvanceFluxNilStaysNil(t *testing.T) {
	if got := AdvanceFlux(nil, 12); got != nil {
		t.Errorf("AdvanceFlux(nil) = %v, want nil", got)
	}
}
