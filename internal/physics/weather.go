package physics

import (
	"math"
	"math/rand"

	"aetherium-server/internal/world"
)

// NextWeather advances the stochastic weather state by one tick. Temperature
// follows a sine curve during daytime (6-18h) and sits near 10C with jitter
// at night; wind random-walks; the weather type is evaluated top-to-bottom
// against a single uniform draw, so rain onset takes precedence over storm
// escalation, which takes precedence over clearing.
func NextWeather(w world.Weather, hour float64, rng *rand.Rand) world.Weather {
	if hour > 6 && hour < 18 {
		w.Temperature = 18 + math.Sin((hour-6)/12*math.Pi)*12
	} else {
		w.Temperature = 10 + rng.Float64()*5
	}

	w.WindSpeed = math.Max(0, w.WindSpeed+(rng.Float64()-0.5)*1.5)
	w.WindDirection = math.Mod(w.WindDirection+(rng.Float64()-0.5)*30+360, 360)

	r := rng.Float64()
	switch {
	case r < 0.01:
		w.Type = world.WeatherRain
		w.Intensity = 0.3 + rng.Float64()*0.7
	case r < 0.015:
		w.Type = world.WeatherStorm
		w.Intensity = 0.6 + rng.Float64()*0.4
	case r < 0.05 && w.Type != world.WeatherClear:
		w.Type = world.WeatherClear
		w.Intensity = 0
	}

	return w
}
