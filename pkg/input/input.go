// Package input defines the per-frame input snapshot the scene consumes
// and the cursor ray used for mouse-guided anchor steering. Key mapping
// itself lives with the windowing layer; the simulation only sees booleans.
package input

import "github.com/JTStephens18/galaxyGPU/pkg/physics"

// State is a discrete snapshot of the player's controls for one frame.
type State struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Sprint   bool
	Reel     bool
	Ascend   bool
	Descend  bool
}

// Axis returns the forward/backward input collapsed to -1, 0 or 1.
func (s State) Axis() float64 {
	switch {
	case s.Forward && !s.Backward:
		return 1
	case s.Backward && !s.Forward:
		return -1
	}
	return 0
}

// Turn returns the left/right input collapsed to -1, 0 or 1.
func (s State) Turn() float64 {
	switch {
	case s.Right && !s.Left:
		return 1
	case s.Left && !s.Right:
		return -1
	}
	return 0
}

// Lift returns the ascend/descend input collapsed to -1, 0 or 1.
func (s State) Lift() float64 {
	switch {
	case s.Ascend && !s.Descend:
		return 1
	case s.Descend && !s.Ascend:
		return -1
	}
	return 0
}

// Ray is a cursor ray in world space.
type Ray struct {
	Origin    physics.Vector3
	Direction physics.Vector3
}

// IntersectHorizontalPlane returns where the ray crosses the plane y =
// height. The second result is false when the ray is parallel to the plane
// or points away from it.
func (r Ray) IntersectHorizontalPlane(height float64) (physics.Vector3, bool) {
	if r.Direction.Y == 0 {
		return physics.Vector3{}, false
	}
	t := (height - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return physics.Vector3{}, false
	}
	return r.Origin.Add(r.Direction.Scale(t)), true
}
