package physics

import (
	"math"

	"aetherium-server/internal/entity"
)

const (
	// Friction is the isotropic velocity damping applied each tick.
	Friction = 0.95
	// PositionLimit clamps world coordinates to [-PositionLimit, PositionLimit].
	PositionLimit = 500.0
	// VelocityEpsilon is the threshold below which a velocity component
	// snaps to exactly zero.
	VelocityEpsilon = 0.01
)

// Integrate advances an entity's motion by one time step: damping, position
// integration, boundary clamping and near-zero velocity snapping.
func Integrate(e entity.Entity, dt float64) entity.Entity {
	e.VelocityX *= Friction
	e.VelocityY *= Friction

	e.PosX = clamp(e.PosX+e.VelocityX*dt, -PositionLimit, PositionLimit)
	e.PosY = clamp(e.PosY+e.VelocityY*dt, -PositionLimit, PositionLimit)

	if math.Abs(e.VelocityX) < VelocityEpsilon {
		e.VelocityX = 0
	}
	if math.Abs(e.VelocityY) < VelocityEpsilon {
		e.VelocityY = 0
	}

	return e
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
