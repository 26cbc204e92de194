// pkg/entity/body.go
package entity

import (
	"sync/atomic"

	"github.com/JTStephens18/galaxyGPU/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

var lastID uint64

// GenerateID returns a process-unique entity ID
func GenerateID() ID {
	return ID(atomic.AddUint64(&lastID, 1))
}

// Body is the read/impulse surface the tether needs from a rigid body.
// Positions and velocities are read each frame; forces enter only as
// impulses (force x dt) accumulated into velocity.
type Body interface {
	GetID() ID
	GetPosition() physics.Vector3
	GetVelocity() physics.Vector3
	ApplyImpulse(impulse physics.Vector3)
}

// RigidBody is a point mass with semi-implicit Euler integration.
type RigidBody struct {
	ID       ID
	Position physics.Vector3
	Velocity physics.Vector3
	Mass     float64
	Radius   float64
}

// NewRigidBody creates a rigid body at the given position. Mass values at or
// below zero are clamped to 1 so impulses stay finite.
func NewRigidBody(id ID, position physics.Vector3, mass, radius float64) *RigidBody {
	if mass <= 0 {
		mass = 1
	}
	return &RigidBody{
		ID:       id,
		Position: position,
		Mass:     mass,
		Radius:   radius,
	}
}

// GetID returns the body's unique identifier
func (b *RigidBody) GetID() ID {
	return b.ID
}

// GetPosition returns the body's position
func (b *RigidBody) GetPosition() physics.Vector3 {
	return b.Position
}

// GetVelocity returns the body's velocity
func (b *RigidBody) GetVelocity() physics.Vector3 {
	return b.Velocity
}

// ApplyImpulse adds an impulse to the body's momentum immediately.
func (b *RigidBody) ApplyImpulse(impulse physics.Vector3) {
	b.Velocity = b.Velocity.Add(impulse.Scale(1 / b.Mass))
}

// Update advances the body's position by its velocity
func (b *RigidBody) Update(deltaTime float64) {
	b.Position = b.Position.Add(b.Velocity.Scale(deltaTime))
}
