package physics

import (
	"math"

	"aetherium-server/internal/entity"
)

// Collision records a pair of entity ids whose bounds overlap.
type Collision struct {
	A int `json:"entity_a"`
	B int `json:"entity_b"`
}

// DetectCollisions finds all pairs of entities in the same region whose
// distance is below the combined mass radius (mass sum times two).
func DetectCollisions(entities []entity.Entity) []Collision {
	var collisions []Collision

	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			if entities[i].RegionID != entities[j].RegionID {
				continue
			}

			dx := entities[i].PosX - entities[j].PosX
			dy := entities[i].PosY - entities[j].PosY
			dist := math.Sqrt(dx*dx + dy*dy)

			minDist := (entities[i].Mass + entities[j].Mass) * 2
			if dist < minDist {
				collisions = append(collisions, Collision{A: entities[i].ID, B: entities[j].ID})
			}
		}
	}

	return collisions
}
