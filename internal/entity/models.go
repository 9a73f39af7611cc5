package entity

type EntityType string

const (
	EntityTypeCreature EntityType = "creature"
	EntityTypeObject   EntityType = "object"
	EntityTypeHazard   EntityType = "hazard"
)

// Entity is a simulated object or creature. Each entity belongs to exactly
// one region; position and velocity are advanced every physics tick.
type Entity struct {
	ID         int                    `json:"id"`
	Name       string                 `json:"name"`
	Type       EntityType             `json:"type"`
	RegionID   string                 `json:"region_id"`
	PosX       float64                `json:"pos_x"`
	PosY       float64                `json:"pos_y"`
	VelocityX  float64                `json:"velocity_x"`
	VelocityY  float64                `json:"velocity_y"`
	Mass       float64                `json:"mass"`
	Health     int                    `json:"health"`
	State      string                 `json:"state"`
	Properties map[string]interface{} `json:"properties"`
}
