// Package galaxy owns the particle field: a one-time placement pass that
// arranges N particles into a spiral distribution and a per-frame pass that
// rotates the field with radius-dependent shear. Both passes run as
// data-parallel kernels through the compute dispatcher; each particle is
// read and written only at its own index.
package galaxy

import (
	"context"
	"math"

	"github.com/JTStephens18/galaxyGPU/pkg/compute"
	"github.com/JTStephens18/galaxyGPU/pkg/physics"
	"github.com/JTStephens18/galaxyGPU/pkg/procgen"
	"github.com/JTStephens18/galaxyGPU/pkg/render"
)

// Params are the placement and rotation tunables for the particle field.
type Params struct {
	Count         int
	Radius        float64
	ArmCount      int
	Tightness     float64 // spiral turns from core to rim, in revolutions
	ArmWidth      float64 // max radial jitter off the arm centerline
	Thickness     float64 // vertical extent at the core, tapering to the rim
	Randomness    float64 // max angular jitter, radians
	RotationScale float64
	OrbitSpeed    float64
	InsideColor   render.Color
	OutsideColor  render.Color
}

// State is the simulator lifecycle. Advance refuses to run while
// Uninitialized; the placement pass must complete first because it writes
// the velocities Advance rotates.
type State int

const (
	Uninitialized State = iota
	Ready
)

// Simulator holds the particle buffers and runs the placement and rotation
// passes. Buffers are structure-of-arrays and fixed-size for the simulator's
// lifetime; rendering reads them only between passes.
type Simulator struct {
	params     Params
	dispatcher *compute.Dispatcher
	state      State

	positions  []physics.Vector3
	velocities []physics.Vector3
	original   []physics.Vector3
	density    []float64
	colors     []render.Color
}

// NewSimulator allocates the particle buffers. No particle state is valid
// until Initialize succeeds.
func NewSimulator(params Params, dispatcher *compute.Dispatcher) *Simulator {
	n := params.Count
	if n < 0 {
		n = 0
	}
	return &Simulator{
		params:     params,
		dispatcher: dispatcher,
		positions:  make([]physics.Vector3, n),
		velocities: make([]physics.Vector3, n),
		original:   make([]physics.Vector3, n),
		density:    make([]float64, n),
		colors:     make([]render.Color, n),
	}
}

// State returns the simulator lifecycle state.
func (s *Simulator) State() State {
	return s.state
}

// Count returns the particle count.
func (s *Simulator) Count() int {
	return len(s.positions)
}

// Positions returns the position buffer. Valid only while no pass is in
// flight and only after a successful Initialize.
func (s *Simulator) Positions() []physics.Vector3 {
	return s.positions
}

// Velocities returns the velocity buffer under the same rules as Positions.
func (s *Simulator) Velocities() []physics.Vector3 {
	return s.velocities
}

// OriginalPositions returns the placement-time positions kept for resets.
func (s *Simulator) OriginalPositions() []physics.Vector3 {
	return s.original
}

// DensityFactors returns the per-particle density buffer, each value in [0,1].
func (s *Simulator) DensityFactors() []float64 {
	return s.density
}

// Colors returns the per-particle color buffer.
func (s *Simulator) Colors() []render.Color {
	return s.colors
}

// Initialize runs the placement pass and blocks until it completes. On
// success the simulator becomes Ready; on failure it stays Uninitialized and
// holds no valid particle state. Placement is a pure function of the
// particle index, so two runs with identical params produce identical
// buffers.
func (s *Simulator) Initialize(ctx context.Context) error {
	s.state = Uninitialized
	err := s.dispatcher.RunAndWait(ctx, "galaxy-init", len(s.positions), s.placeParticle)
	if err != nil {
		return err
	}
	s.state = Ready
	return nil
}

// Advance rotates every particle about the vertical axis by a
// radius-dependent angle and blocks until the pass completes. It fails fast
// with ErrNotInitialized before a successful Initialize. dt of zero is a
// no-op. The pass overwrites positions and velocities in place; a failed
// pass leaves the previous (still rotation-consistent) buffers for the
// renderer to hold.
func (s *Simulator) Advance(ctx context.Context, dt float64) error {
	if s.state != Ready {
		return compute.ErrNotInitialized
	}
	if dt == 0 {
		return nil
	}
	return s.dispatcher.RunAndWait(ctx, "galaxy-advance", len(s.positions), func(i int) {
		s.rotateParticle(i, dt)
	})
}

// placeParticle is the per-element placement kernel. Hash draws at seed+1..5
// behave as five independent uniforms for particle i.
func (s *Simulator) placeParticle(i int) {
	p := &s.params
	seed := float64(i)
	h1 := procgen.Hash11(seed + 1)
	h2 := procgen.Hash11(seed + 2)
	h3 := procgen.Hash11(seed + 3)
	h4 := procgen.Hash11(seed + 4)
	h5 := procgen.Hash11(seed + 5)

	// sqrt mapping gives uniform areal density: core-dense, thin rim
	radius := math.Sqrt(h1) * p.Radius

	arms := p.ArmCount
	if arms < 1 {
		arms = 1
	}
	arm := math.Floor(h2 * float64(arms))
	baseAngle := arm / float64(arms) * 2 * math.Pi

	norm := 0.0
	if p.Radius > 0 {
		norm = radius / p.Radius
	}
	spiralAngle := norm * p.Tightness * 2 * math.Pi

	angleJitter := (h3 - 0.5) * 2 * p.Randomness
	radialJitter := (h4 - 0.5) * 2 * p.ArmWidth
	vertical := (h5 - 0.5) * 2 * p.Thickness * (1 - norm)

	angle := baseAngle + spiralAngle + angleJitter
	dist := radius + radialJitter

	pos := physics.Vector3{
		X: math.Cos(angle) * dist,
		Y: vertical,
		Z: math.Sin(angle) * dist,
	}
	s.positions[i] = pos
	s.original[i] = pos

	// Tangential start velocity, magnitude falling off with radius like a
	// constant-angular-momentum orbit. Direction matches the rotation sense
	// of rotateParticle.
	speed := p.OrbitSpeed / (dist + 1)
	s.velocities[i] = physics.Vector3{
		X: math.Sin(angle) * speed,
		Z: -math.Cos(angle) * speed,
	}

	// How far the jitter pushed this particle off the arm centerline,
	// normalized against the largest possible displacement.
	arcOffset := math.Abs(angleJitter) * radius
	maxOffset := p.Randomness*p.Radius + p.ArmWidth
	density := 0.0
	if maxOffset > 0 {
		density = math.Hypot(arcOffset, radialJitter) / maxOffset
	}
	if density > 1 {
		density = 1
	}
	s.density[i] = density

	// Core-to-rim palette mix, dimmed for sparse outliers.
	s.colors[i] = p.InsideColor.Lerp(p.OutsideColor, norm).Scale(1 - 0.4*density)
}

// rotateParticle applies the differential rotation: inner particles sweep
// faster than outer ones, shearing the arms over time. A pure rotation in
// the XZ plane, so each particle's distance from the axis is preserved and
// repeated passes stay stable indefinitely.
func (s *Simulator) rotateParticle(i int, dt float64) {
	dist := s.positions[i].LengthXZ()
	rate := 1 / (0.1*dist + 1)
	theta := rate * dt * s.params.RotationScale
	s.positions[i] = s.positions[i].RotateY(theta)
	s.velocities[i] = s.velocities[i].RotateY(theta)
}
