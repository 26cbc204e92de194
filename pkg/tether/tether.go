// Package tether implements the wrecking-ball constraint: a spring-damper
// that pulls the anchor back once it strays past the chain length, constant
// synthetic gravity, optional homing assist toward nearby targets, and a
// short position trail for render-side ghosts. The tether never owns the
// bodies; it reads their state and writes impulses through entity.Body.
package tether

import (
	"math"

	"github.com/JTStephens18/galaxyGPU/pkg/entity"
	"github.com/JTStephens18/galaxyGPU/pkg/physics"
)

// Params are the tether tunables.
type Params struct {
	ChainRestLength   float64
	ChainMinLength    float64
	ReelSpeed         float64
	ExtendSpeed       float64
	Stiffness         float64
	Damping           float64
	GravityStrength   float64
	TrailLength       int
	TrailFalloff      float64
	AimAssistStrength float64
	AimAssistRange    float64
	SteerStrength     float64
	SteerRange        float64
}

// Tether couples a ship body and an anchor body.
type Tether struct {
	params Params
	ship   entity.Body
	anchor entity.Body

	chainLength float64
	trail       []physics.Vector3
}

// New creates a tether between ship and anchor with the chain at rest length.
func New(params Params, ship, anchor entity.Body) *Tether {
	return &Tether{
		params:      params,
		ship:        ship,
		anchor:      anchor,
		chainLength: params.ChainRestLength,
		trail:       make([]physics.Vector3, 0, params.TrailLength),
	}
}

// ChainLength returns the current chain length.
func (t *Tether) ChainLength() float64 {
	return t.chainLength
}

// Trail returns the recent anchor positions, newest first.
func (t *Tether) Trail() []physics.Vector3 {
	return t.trail
}

// GhostOpacity returns the render opacity for trail slot i.
func (t *Tether) GhostOpacity(slot int) float64 {
	return math.Pow(t.params.TrailFalloff, float64(slot+1))
}

// Update runs one frame of tether physics. reel shortens the chain while
// held; targets are the live homing candidates; steer is an optional
// cursor-derived point that nudges the anchor horizontally.
func (t *Tether) Update(dt float64, reel bool, targets []physics.Vector3, steer *physics.Vector3) {
	t.updateChainLength(dt, reel)

	anchorPos := t.anchor.GetPosition()
	var impulse physics.Vector3

	offset := anchorPos.Sub(t.ship.GetPosition())
	distance := offset.Length()

	// Spring-damper engages only past the chain length. A zero-length
	// offset has no direction, so the spring term is skipped for the frame
	// rather than dividing by zero.
	if distance > t.chainLength && distance > 1e-9 {
		dir := offset.Scale(1 / distance)
		stretch := distance - t.chainLength
		springForce := -t.params.Stiffness * stretch
		dampForce := -t.params.Damping * t.anchor.GetVelocity().Dot(dir)
		impulse = impulse.Add(dir.Scale((springForce + dampForce) * dt))
	}

	// The anchor's own gravity is disabled in the host engine; the tether
	// supplies its weight itself.
	impulse.Y -= t.params.GravityStrength * dt

	if assist, ok := t.homingImpulse(anchorPos, targets, t.params.AimAssistStrength, t.params.AimAssistRange, dt); ok {
		impulse = impulse.Add(assist)
	}
	if steer != nil {
		if nudge, ok := t.steerImpulse(anchorPos, *steer, dt); ok {
			impulse = impulse.Add(nudge)
		}
	}

	t.anchor.ApplyImpulse(impulse)
	t.pushTrail(anchorPos)
}

// updateChainLength shortens the chain under reel input and otherwise
// relaxes it toward rest length, clamped so it never overshoots either end.
func (t *Tether) updateChainLength(dt float64, reel bool) {
	if reel {
		t.chainLength -= t.params.ReelSpeed * dt
		if t.chainLength < t.params.ChainMinLength {
			t.chainLength = t.params.ChainMinLength
		}
		return
	}
	rest := t.params.ChainRestLength
	step := t.params.ExtendSpeed * dt
	switch {
	case t.chainLength < rest:
		t.chainLength = math.Min(t.chainLength+step, rest)
	case t.chainLength > rest:
		t.chainLength = math.Max(t.chainLength-step, rest)
	}
}

// homingImpulse picks the nearest target on the horizontal plane and, when
// it lies inside range, returns an impulse toward it whose strength falls
// off linearly to zero at the range boundary. No target in range is a
// normal branch, not an error.
func (t *Tether) homingImpulse(anchorPos physics.Vector3, targets []physics.Vector3, strength, rng, dt float64) (physics.Vector3, bool) {
	if rng <= 0 || len(targets) == 0 {
		return physics.Vector3{}, false
	}

	nearest := -1
	nearestDist := rng
	for i := range targets {
		if d := anchorPos.DistanceXZ(targets[i]); d < nearestDist {
			nearest = i
			nearestDist = d
		}
	}
	if nearest < 0 {
		return physics.Vector3{}, false
	}

	dir := physics.Vector3{
		X: targets[nearest].X - anchorPos.X,
		Z: targets[nearest].Z - anchorPos.Z,
	}
	if dir.LengthSquared() < 1e-18 {
		// Anchor already on top of the target; no defined direction.
		return physics.Vector3{}, false
	}
	falloff := 1 - nearestDist/rng
	return dir.Normalize().Scale(falloff * strength * dt), true
}

// steerImpulse applies the homing falloff law toward a cursor-guided point.
func (t *Tether) steerImpulse(anchorPos, point physics.Vector3, dt float64) (physics.Vector3, bool) {
	return t.homingImpulse(anchorPos, []physics.Vector3{point}, t.params.SteerStrength, t.params.SteerRange, dt)
}

// pushTrail records the current anchor position at the front of the trail
// and evicts the oldest entry past the configured length.
func (t *Tether) pushTrail(pos physics.Vector3) {
	if t.params.TrailLength <= 0 {
		return
	}
	if len(t.trail) < t.params.TrailLength {
		t.trail = append(t.trail, physics.Vector3{})
	}
	copy(t.trail[1:], t.trail)
	t.trail[0] = pos
}
