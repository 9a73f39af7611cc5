package metaphysics

import (
	"math"
	"testing"

	"aetherium-server/internal/chakra"
)

func TestComputeEvolutionProgressFormula(t *testing.T) {
	s := State{
		SpiritualLevel:    1,
		EvolutionProgress: 50,
		Karma:             40,
		ChakraFlux:        chakra.Set{chakra.Muladhara: 70, chakra.Manipura: 70},
	}

	_, progress := ComputeEvolution(s)

	// 50 + (140/700)*0.5 + (40*0.1)*0.01 = 50.14
	if math.Abs(progress-50.14) > 1e-9 {
		t.Errorf("progress = %v, want 50.14", progress)
	}
}

func TestComputeEvolutionNegativeKarmaGivesNoBonus(t *testing.T) {
	s := State{
		SpiritualLevel: 1,
		Karma:          -80,
		ChakraFlux:     chakra.Set{chakra.Muladhara: 700},
	}

	_, progress := ComputeEvolution(s)

	if math.Abs(progress-0.5) > 1e-9 {
		t.Errorf("progress = %v, want 0.5 (flux only)", progress)
	}
}

func TestComputeEvolutionGainsAtMostOneLevel(t *testing.T) {
	s := State{
		SpiritualLevel:    1,
		EvolutionProgress: 2000, // far past several thresholds
	}

	level, _ := ComputeEvolution(s)

	if level != 2 {
		t.Errorf("level = %d, want 2 (one step per tick)", level)
	}
}

func TestComputeEvolutionBelowThresholdHoldsLevel(t *testing.T) {
	s := State{
		SpiritualLevel:    2,
		EvolutionProgress: 299, // threshold for level 2 is 300
	}

	level, _ := ComputeEvolution(s)

	if level != 2 {
		t.Errorf("level = %d, want 2", level)
	}
}

func TestComputeEvolutionCapsAtLadderTop(t *testing.T) {
	s := State{
		SpiritualLevel:    len(EvolutionThresholds) - 1,
		EvolutionProgress: 1e9,
	}

	level, _ := ComputeEvolution(s)

	if level != len(EvolutionThresholds)-1 {
		t.Errorf("level = %d, want capped at %d", level, len(EvolutionThresholds)-1)
	}
}

func TestNextThreshold(t *testing.T) {
	if got := NextThreshold(2); got == nil || *got != 300 {
		t.Errorf("NextThreshold(2) = %v, want 300", got)
	}
	if got := NextThreshold(len(EvolutionThresholds)); got != nil {
		t.Errorf("NextThreshold past ladder = %v, want nil", got)
	}
	if got := NextThreshold(-1); got != nil {
		t.Errorf("NextThreshold(-1) = %v, want nil", got)
	}
}

func TestAdvanceEffectsDecrementsAndDropsExpired(t *testing.T) {
	effects := []Effect{
		{ID: "a", RemainingTicks: 3},
		{ID: "b", RemainingTicks: 1},
		{ID: "c", RemainingTicks: 2},
	}

	got := AdvanceEffects(effects)

	if len(got) != 2 {
		t.Fatalf("got %d effects, want 2", len(got))
	}
	if got[0].ID != "a" || got[0].RemainingTicks != 2 {
		t.Errorf("effect a = %+v, want remaining 2", got[0])
	}
	if got[1].ID != "c" || got[1].RemainingTicks != 1 {
		t.Errorf("effect c = %+v, want remaining 1", got[1])
	}
}

func TestAdvanceEffectsEmptyStaysEmpty(t *testing.T) {
	if got := AdvanceEffects(nil); len(got) != 0 {
		t.Errorf("got %d effects, want 0", len(got))
	}
}
