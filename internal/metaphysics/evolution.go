package metaphysics

// EvolutionThresholds is the cumulative-progress ladder for spiritual
// levels. A level-N state evolves when progress reaches thresholds[N].
var EvolutionThresholds = []float64{0, 100, 300, 600, 1000, 1500, 2100, 2800}

// ComputeEvolution advances evolution progress by one step and returns the
// resulting level and progress. The level rises by at most one regardless
// of how far progress overshoots the next threshold.
func ComputeEvolution(s State) (level int, progress float64) {
	fluxSum := 0.0
	if s.ChakraFlux != nil {
		fluxSum = s.ChakraFlux.Sum()
	}

	karmaBonus := 0.0
	if s.Karma > 0 {
		karmaBonus = s.Karma * 0.1
	}

	progress = s.EvolutionProgress + (fluxSum/700)*0.5 + karmaBonus*0.01

	level = s.SpiritualLevel
	if level < len(EvolutionThresholds)-1 && progress >= EvolutionThresholds[level] {
		level++
	}

	return level, progress
}

// NextThreshold returns the progress required for the next level, or nil
// when the ladder is exhausted.
func NextThreshold(level int) *float64 {
	if level < 0 || level >= len(EvolutionThresholds) {
		return nil
	}
	t := EvolutionThresholds[level]
	return &t
}
