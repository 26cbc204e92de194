// Package camera smooths the render camera toward a moving subject and
// layers combat feedback on top: hitstop, screen shake and slow motion.
// The juice state is an explicit object owned by the scene, passed where
// needed, never a package-level singleton.
package camera

import (
	"math"

	"github.com/JTStephens18/galaxyGPU/pkg/physics"
)

// Follow exponentially smooths a camera position and look-at target toward
// their goals. The smoothing step uses value += (goal-value)*(1-exp(-k*dt)),
// which converges identically regardless of frame rate; a fixed-factor lerp
// would tighten or loosen with the frame time.
type Follow struct {
	Offset       physics.Vector3 // camera position goal = subject + Offset
	PositionRate float64
	LookRate     float64

	position    physics.Vector3
	look        physics.Vector3
	initialized bool
}

// NewFollow creates a follow rig with the given offset and smoothing rates.
// Higher rates mean tighter tracking.
func NewFollow(offset physics.Vector3, positionRate, lookRate float64) *Follow {
	return &Follow{
		Offset:       offset,
		PositionRate: positionRate,
		LookRate:     lookRate,
	}
}

// Position returns the current smoothed camera position.
func (f *Follow) Position() physics.Vector3 {
	return f.position
}

// LookTarget returns the current smoothed look-at point.
func (f *Follow) LookTarget() physics.Vector3 {
	return f.look
}

// Snap moves the camera immediately, bypassing smoothing. Used on the first
// frame so the camera does not sweep in from the origin.
func (f *Follow) Snap(subject, look physics.Vector3) {
	f.position = subject.Add(f.Offset)
	f.look = look
	f.initialized = true
}

// Update advances both smoothed values toward the subject for one frame.
func (f *Follow) Update(dt float64, subject, look physics.Vector3) {
	if !f.initialized {
		f.Snap(subject, look)
		return
	}
	goal := subject.Add(f.Offset)
	f.position = f.position.Lerp(goal, smoothingAlpha(f.PositionRate, dt))
	f.look = f.look.Lerp(look, smoothingAlpha(f.LookRate, dt))
}

// smoothingAlpha converts a rate constant and frame time into the
// frame-rate independent interpolation factor.
func smoothingAlpha(rate, dt float64) float64 {
	return 1 - math.Exp(-rate*dt)
}
