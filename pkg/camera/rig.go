// pkg/camera/rig.go
package camera

import "github.com/JTStephens18/galaxyGPU/pkg/physics"

// Rig composes follow smoothing with juice shake. While a shake runs, the
// camera holds at the origin saved when the shake began, perturbed each
// frame; when the shake expires the position is restored to that origin
// exactly before normal following resumes.
type Rig struct {
	follow *Follow
	juice  *Juice

	shaking     bool
	shakeOrigin physics.Vector3
	position    physics.Vector3
}

// NewRig creates a camera rig over a follow smoother and a juice state.
func NewRig(follow *Follow, juice *Juice) *Rig {
	return &Rig{follow: follow, juice: juice}
}

// Position returns the final camera position for the frame, including any
// shake perturbation.
func (r *Rig) Position() physics.Vector3 {
	return r.position
}

// LookTarget returns the smoothed look-at point.
func (r *Rig) LookTarget() physics.Vector3 {
	return r.follow.LookTarget()
}

// Update produces the camera transform for this frame. Smoothing runs on
// real frame time; a frozen simulation still gets a live camera.
func (r *Rig) Update(dt float64, subject, look physics.Vector3) {
	active := r.juice.ShakeActive()

	if active && !r.shaking {
		// Ensure a valid origin even if the shake starts on frame one.
		if !r.follow.initialized {
			r.follow.Snap(subject, look)
		}
		r.shaking = true
		r.shakeOrigin = r.follow.Position()
	}

	if r.shaking && !active {
		r.follow.position = r.shakeOrigin
		r.shaking = false
	}

	if r.shaking {
		r.position = r.shakeOrigin.Add(r.juice.ShakeOffset())
		return
	}

	r.follow.Update(dt, subject, look)
	r.position = r.follow.Position()
}
