package energy

import "time"

// DefaultDurationMinutes is the fixed length of an absorption session.
const DefaultDurationMinutes = 15

// ActiveAbsorption is a timed action through which a character passively
// gathers energy in a region.
type ActiveAbsorption struct {
	ID              int       `json:"id"`
	CharacterID     int       `json:"character_id"`
	RegionID        string    `json:"region_id"`
	EnergyColor     string    `json:"energy_color"`
	StartedAt       time.Time `json:"started_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Completed       bool      `json:"completed"`
}

// ExpiresAt returns the moment the absorption finishes.
func (a *ActiveAbsorption) ExpiresAt() time.Time {
	return a.StartedAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// StartRequest carries the caller-supplied absorption parameters.
type StartRequest struct {
	RegionID    string `json:"region_id"`
	EnergyColor string `json:"energy_color"`
}
