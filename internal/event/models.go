package event

import "time"

// Source identifies which simulation layer emitted an event.
type Source string

const (
	SourcePhysics     Source = "physics"
	SourceMetaphysics Source = "metaphysics"
)

// Event types emitted by the simulation and manager operations.
const (
	TypeCollision   = "collision"
	TypeTravel      = "travel"
	TypeEnergize    = "energize"
	TypeKarmaChange = "karma_change"
	TypeEvolution   = "evolution"
	TypeEffect      = "effect_applied"
)

// WorldEvent is an append-only log entry. Events are never updated or
// deleted.
type WorldEvent struct {
	ID        int                    `json:"id"`
	Type      string                 `json:"type"`
	Source    Source                 `json:"source"`
	RegionID  *string                `json:"region_id,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt time.Time              `json:"created_at"`
}
