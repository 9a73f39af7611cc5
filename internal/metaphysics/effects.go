package metaphysics

// AdvanceEffects decrements every effect's remaining ticks and drops those
// that have expired.
func AdvanceEffects(effects []Effect) []Effect {
	next := make([]Effect, 0, len(effects))
	for _, e := range effects {
		e.RemainingTicks--
		if e.RemainingTicks > 0 {
			next = append(next, e)
		}
	}
	return next
}
