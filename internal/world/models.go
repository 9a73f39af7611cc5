package world

import "time"

type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// Seasons in rotation order; the world advances one step every 30 days.
var Seasons = []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}

// Next returns the season following s in the rotation.
func (s Season) Next() Season {
	for i, season := range Seasons {
		if season == s {
			return Seasons[(i+1)%len(Seasons)]
		}
	}
	return SeasonSpring
}

type WeatherType string

const (
	WeatherClear  WeatherType = "clear"
	WeatherRain   WeatherType = "rain"
	WeatherStorm  WeatherType = "storm"
	WeatherCloudy WeatherType = "cloudy"
	WeatherFog    WeatherType = "fog"
	WeatherSnow   WeatherType = "snow"
)

// Weather is the stochastic atmospheric state attached to the world singleton.
type Weather struct {
	Type          WeatherType `json:"type"`
	Intensity     float64     `json:"intensity"`
	WindDirection float64     `json:"wind_direction"`
	WindSpeed     float64     `json:"wind_speed"`
	Temperature   float64     `json:"temperature"`
}

// WorldState is the singleton record of global simulated time. Exactly one
// row exists; it is created lazily on first access and mutated only by the
// physics tick engine.
type WorldState struct {
	ID            int        `json:"id"`
	TimeOfDay     float64    `json:"time_of_day"`
	DayNumber     int        `json:"day_number"`
	Season        Season     `json:"season"`
	GlobalGravity float64    `json:"global_gravity"`
	Weather       Weather    `json:"weather"`
	LastTickAt    *time.Time `json:"last_tick_at"`
}

// DefaultWorldState returns the fixed initial state used on lazy creation.
func DefaultWorldState() WorldState {
	return WorldState{
		ID:            1,
		TimeOfDay:     12.0,
		DayNumber:     1,
		Season:        SeasonSpring,
		GlobalGravity: 9.81,
		Weather: Weather{
			Type:          WeatherClear,
			Intensity:     0,
			WindDirection: 0,
			WindSpeed:     2.5,
			Temperature:   22,
		},
	}
}
