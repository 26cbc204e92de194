// pkg/galaxy/simulator_test.go
package galaxy

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/JTStephens18/galaxyGPU/pkg/compute"
	"github.com/JTStephens18/galaxyGPU/pkg/render"
)

func testParams(count int) Params {
	return Params{
		Count:         count,
		Radius:        60,
		ArmCount:      4,
		Tightness:     1.2,
		ArmWidth:      3,
		Thickness:     4,
		Randomness:    0.35,
		RotationScale: 0.6,
		OrbitSpeed:    8,
		InsideColor:   render.Color{R: 1, G: 0.5, B: 0.2},
		OutsideColor:  render.Color{R: 0.2, G: 0.4, B: 1},
	}
}

func initialized(t *testing.T, count int) *Simulator {
	t.Helper()
	s := NewSimulator(testParams(count), compute.NewDispatcher(4))
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	return s
}

func TestAdvance_BeforeInitializeFailsFast(t *testing.T) {
	s := NewSimulator(testParams(10), compute.NewDispatcher(1))
	err := s.Advance(context.Background(), 0.016)
	if !errors.Is(err, compute.ErrNotInitialized) {
		t.Fatalf("Advance() before Initialize = %v, expected ErrNotInitialized", err)
	}
	if s.State() != Uninitialized {
		t.Errorf("State() = %v, expected Uninitialized", s.State())
	}
}

func TestInitialize_DensityAndBoundsInvariants(t *testing.T) {
	s := initialized(t, 5000)
	p := testParams(5000)

	maxDist := p.Radius + p.ArmWidth
	for i, pos := range s.Positions() {
		if d := s.DensityFactors()[i]; d < 0 || d > 1 {
			t.Fatalf("densityFactor[%d] = %v, outside [0,1]", i, d)
		}
		if r := pos.LengthXZ(); r > maxDist+1e-9 {
			t.Fatalf("particle %d at horizontal radius %v, beyond %v", i, r, maxDist)
		}
		if y := math.Abs(pos.Y); y > p.Thickness {
			t.Fatalf("particle %d at height %v, beyond thickness %v", i, y, p.Thickness)
		}
	}
}

func TestInitialize_CopiesOriginalPositions(t *testing.T) {
	s := initialized(t, 200)
	for i := range s.Positions() {
		if s.Positions()[i] != s.OriginalPositions()[i] {
			t.Fatalf("original[%d] differs from position at init", i)
		}
	}
}

func TestInitialize_Deterministic(t *testing.T) {
	a := initialized(t, 100)
	b := initialized(t, 100)
	for i := range a.Positions() {
		if a.Positions()[i] != b.Positions()[i] {
			t.Fatalf("position[%d] differs between identical runs: %v vs %v",
				i, a.Positions()[i], b.Positions()[i])
		}
		if a.Velocities()[i] != b.Velocities()[i] {
			t.Fatalf("velocity[%d] differs between identical runs", i)
		}
		if a.DensityFactors()[i] != b.DensityFactors()[i] {
			t.Fatalf("density[%d] differs between identical runs", i)
		}
	}
}

func TestAdvance_ZeroDtIsNoOp(t *testing.T) {
	s := initialized(t, 500)
	before := make([]struct{ p, v [3]float64 }, s.Count())
	for i := range before {
		pos, vel := s.Positions()[i], s.Velocities()[i]
		before[i].p = [3]float64{pos.X, pos.Y, pos.Z}
		before[i].v = [3]float64{vel.X, vel.Y, vel.Z}
	}

	if err := s.Advance(context.Background(), 0); err != nil {
		t.Fatalf("Advance(0) error: %v", err)
	}
	for i := range before {
		pos, vel := s.Positions()[i], s.Velocities()[i]
		if before[i].p != [3]float64{pos.X, pos.Y, pos.Z} {
			t.Fatalf("position[%d] changed by zero-dt advance", i)
		}
		if before[i].v != [3]float64{vel.X, vel.Y, vel.Z} {
			t.Fatalf("velocity[%d] changed by zero-dt advance", i)
		}
	}
}

func TestAdvance_PreservesRadius(t *testing.T) {
	s := initialized(t, 1000)

	radii := make([]float64, s.Count())
	heights := make([]float64, s.Count())
	for i, pos := range s.Positions() {
		radii[i] = pos.LengthXZ()
		heights[i] = pos.Y
	}

	for frame := 0; frame < 50; frame++ {
		if err := s.Advance(context.Background(), 1.0/60.0); err != nil {
			t.Fatalf("Advance() error on frame %d: %v", frame, err)
		}
	}

	for i, pos := range s.Positions() {
		if math.Abs(pos.LengthXZ()-radii[i]) > 1e-6 {
			t.Fatalf("particle %d radius drifted from %v to %v", i, radii[i], pos.LengthXZ())
		}
		if pos.Y != heights[i] {
			t.Fatalf("particle %d height changed under rotation", i)
		}
	}
}

func TestAdvance_InnerParticlesRotateFaster(t *testing.T) {
	s := initialized(t, 2000)

	// Pick an inner and an outer particle and compare swept angles.
	inner, outer := -1, -1
	for i, pos := range s.Positions() {
		r := pos.LengthXZ()
		if inner == -1 && r > 0.1 && r < 10 {
			inner = i
		}
		if outer == -1 && r > 50 {
			outer = i
		}
	}
	if inner == -1 || outer == -1 {
		t.Skip("distribution did not produce inner/outer samples")
	}

	angle := func(i int) float64 {
		return math.Atan2(s.Positions()[i].Z, s.Positions()[i].X)
	}
	innerBefore, outerBefore := angle(inner), angle(outer)

	if err := s.Advance(context.Background(), 0.1); err != nil {
		t.Fatalf("Advance() error: %v", err)
	}

	sweep := func(before, after float64) float64 {
		d := after - before
		for d > math.Pi {
			d -= 2 * math.Pi
		}
		for d < -math.Pi {
			d += 2 * math.Pi
		}
		return math.Abs(d)
	}
	innerSweep := sweep(innerBefore, angle(inner))
	outerSweep := sweep(outerBefore, angle(outer))
	if innerSweep <= outerSweep {
		t.Errorf("inner sweep %v not greater than outer sweep %v", innerSweep, outerSweep)
	}
}
