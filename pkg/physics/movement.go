// pkg/physics/movement.go
package physics

// MovementState tracks ship physics
type MovementState struct {
	Position Vector3
	Velocity Vector3
	Heading  float64 // radians, about the vertical axis
	Thrust   float64
	MaxSpeed float64
	Damping  float64 // per-second velocity decay factor
}

// UpdateMovement advances a ship body by one frame. Thrust acts along the
// heading on the horizontal plane; liftInput drives the vertical axis
// directly. Velocity is damped before the speed clamp so a ship with no
// input coasts to a stop.
func UpdateMovement(state *MovementState, deltaTime float64, thrustInput, liftInput, turnInput float64) {
	// Apply rotation
	state.Heading += turnInput * deltaTime

	// Calculate thrust vector
	thrustVector := FromAngleXZ(state.Heading, thrustInput*state.Thrust)
	thrustVector.Y = liftInput * state.Thrust

	// Update velocity
	state.Velocity = state.Velocity.Add(thrustVector.Scale(deltaTime))

	// Damp
	decay := 1.0 - state.Damping*deltaTime
	if decay < 0 {
		decay = 0
	}
	state.Velocity = state.Velocity.Scale(decay)

	// Limit speed
	if state.Velocity.Length() > state.MaxSpeed {
		state.Velocity = state.Velocity.Normalize().Scale(state.MaxSpeed)
	}

	// Update position
	state.Position = state.Position.Add(state.Velocity.Scale(deltaTime))
}
