package character

import (
	"time"

	"aetherium-server/internal/chakra"
)

// Attributes are the six named integer stats rolled at creation.
type Attributes struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// DefaultRegionID is where newly created characters start.
const DefaultRegionID = "forest_ancient"

// Character is a player's avatar. At most one exists per user.
type Character struct {
	ID         int        `json:"id"`
	UserID     string     `json:"user_id"`
	Name       string     `json:"name"`
	SelfTitle  *string    `json:"self_title,omitempty"`
	Genome     string     `json:"genome"`
	Attributes Attributes `json:"attributes"`
	Skills     []string   `json:"skills"`
	Chakras    chakra.Set `json:"chakras"`
	Energy     int        `json:"energy"`
	RegionID   string     `json:"region_id"`
	PosX       float64    `json:"pos_x"`
	PosY       float64    `json:"pos_y"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateRequest carries the caller-supplied fields for character creation.
type CreateRequest struct {
	Name       string     `json:"name"`
	SelfTitle  *string    `json:"self_title"`
	Genome     string     `json:"genome"`
	Attributes Attributes `json:"attributes"`
	Skills     []string   `json:"skills"`
	Chakras    chakra.Set `json:"chakras"`
	Energy     int        `json:"energy"`
}

// UpdateRequest is a partial patch; nil fields are left untouched.
type UpdateRequest struct {
	Name       *string     `json:"name"`
	SelfTitle  *string     `json:"self_title"`
	Genome     *string     `json:"genome"`
	Attributes *Attributes `json:"attributes"`
	Skills     *[]string   `json:"skills"`
	Chakras    *chakra.Set `json:"chakras"`
	Energy     *int        `json:"energy"`
}
