package metaphysics

import "aetherium-server/internal/chakra"

const (
	peakGain    = 0.5
	offPeakLoss = 0.1
)

// peakWindow is a [start,end) interval on the 24-hour clock. Windows may
// wrap past midnight (start > end).
type peakWindow struct {
	start float64
	end   float64
}

// PeakWindows maps each chakra to its daily high-activity interval.
var PeakWindows = map[string]peakWindow{
	chakra.Muladhara:    {4, 8},
	chakra.Svadhisthana: {6, 10},
	chakra.Manipura:     {10, 14},
	chakra.Anahata:      {12, 16},
	chakra.Vishuddha:    {14, 18},
	chakra.Ajna:         {20, 24},
	chakra.Sahasrara:    {0, 4},
}

// InPeakWindow reports whether the given chakra is inside its peak interval
// at the given hour.
func InPeakWindow(name string, hour float64) bool {
	w, ok := PeakWindows[name]
	if !ok {
		return false
	}
	if w.start < w.end {
		return hour >= w.start && hour < w.end
	}
	return hour >= w.start || hour < w.end
}

// AdvanceFlux applies one tick of chakra flux evolution: +0.5 inside the
// peak window, -0.1 outside, clamped to [0,100].
func AdvanceFlux(flux chakra.Set, worldTime float64) chakra.Set {
	if flux == nil {
		return nil
	}

	hour := worldTime
	for hour >= 24 {
		hour -= 24
	}

	next := flux.Clone()
	for _, key := range chakra.Keys {
		modifier := -offPeakLoss
		if InPeakWindow(key, hour) {
			modifier = peakGain
		}
		next[key] = chakra.Clamp(next[key] + modifier)
	}

	return next
}
