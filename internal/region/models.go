package region

type EnergyType string

const (
	EnergyTypeLife    EnergyType = "life"
	EnergyTypeFire    EnergyType = "fire"
	EnergyTypePsychic EnergyType = "psychic"
	EnergyTypeAether  EnergyType = "aether"
	EnergyTypeDeath   EnergyType = "death"
	EnergyTypeSolar   EnergyType = "solar"
	EnergyTypeVoid    EnergyType = "void"
	EnergyTypeNeutral EnergyType = "neutral"
)

// Region is a node in the world's adjacency graph. Regions are created once
// at world-seed time and never mutated at runtime.
type Region struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	NameRu           string     `json:"name_ru"`
	Biome            string     `json:"biome"`
	Description      string     `json:"description"`
	DescriptionRu    string     `json:"description_ru"`
	MapX             float64    `json:"map_x"`
	MapY             float64    `json:"map_y"`
	Width            float64    `json:"width"`
	Height           float64    `json:"height"`
	Color            string     `json:"color"`
	ConnectedRegions []string   `json:"connected_regions"`
	HazardLevel      int        `json:"hazard_level"`
	EnergyType       EnergyType `json:"energy_type"`
}

// IsConnectedTo reports whether travel from this region to the target is
// permitted along the adjacency graph.
func (r *Region) IsConnectedTo(targetID string) bool {
	for _, id := range r.ConnectedRegions {
		if id == targetID {
			return true
		}
	}
	return false
}

// CenterX returns the x coordinate of the region's map center.
func (r *Region) CenterX() float64 {
	return r.MapX + r.Width/2
}

// CenterY returns the y coordinate of the region's map center.
func (r *Region) CenterY() float64 {
	return r.MapY + r.Height/2
}
