// pkg/camera/juice.go
package camera

import (
	"math/rand"

	"github.com/JTStephens18/galaxyGPU/pkg/physics"
)

// Juice holds the transient combat-feedback state: hitstop freezes
// simulated time, shake perturbs the camera, slow motion scales time down.
// All three decay toward idle on their own; triggers follow latest-wins-if-
// longer semantics rather than stacking.
type Juice struct {
	hitstopRemaining float64

	shakeIntensity float64
	shakeDuration  float64
	shakeDecay     float64

	slowMoFactor    float64
	slowMoRemaining float64

	rng *rand.Rand
}

// NewJuice creates an idle juice state. The seed drives only the shake
// jitter, so tests can make it reproducible.
func NewJuice(seed int64) *Juice {
	return &Juice{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// TriggerHitstop freezes simulated time for the given duration. If a longer
// hitstop is already running it wins; durations do not add.
func (j *Juice) TriggerHitstop(duration float64) {
	if duration > j.hitstopRemaining {
		j.hitstopRemaining = duration
	}
}

// TriggerShake starts or extends a camera shake. Intensity and duration
// each take the max of current and requested values.
func (j *Juice) TriggerShake(intensity, duration, decay float64) {
	if intensity > j.shakeIntensity {
		j.shakeIntensity = intensity
	}
	if duration > j.shakeDuration {
		j.shakeDuration = duration
	}
	j.shakeDecay = decay
}

// TriggerSlowMo sets the slow-motion factor and duration explicitly.
func (j *Juice) TriggerSlowMo(factor, duration float64) {
	j.slowMoFactor = factor
	j.slowMoRemaining = duration
}

// TimeScale returns the multiplier any time-dependent system should apply
// to its frame delta. Hitstop is a full freeze and takes precedence over
// slow motion. Expired slow motion snaps straight back to 1.
func (j *Juice) TimeScale() float64 {
	if j.hitstopRemaining > 0 {
		return 0
	}
	if j.slowMoRemaining > 0 {
		return j.slowMoFactor
	}
	return 1
}

// ShakeActive reports whether a shake is currently perturbing the camera.
func (j *Juice) ShakeActive() bool {
	return j.shakeDuration > 0
}

// ShakeOffset returns this frame's random camera perturbation, uniform in
// [-intensity, intensity] on each axis. Zero while no shake is active.
func (j *Juice) ShakeOffset() physics.Vector3 {
	if !j.ShakeActive() {
		return physics.Vector3{}
	}
	i := j.shakeIntensity
	return physics.Vector3{
		X: (j.rng.Float64()*2 - 1) * i,
		Y: (j.rng.Float64()*2 - 1) * i,
		Z: (j.rng.Float64()*2 - 1) * i,
	}
}

// Update decays all effects by real (unscaled) frame time. Shake intensity
// decays geometrically per frame while its duration runs down.
func (j *Juice) Update(dt float64) {
	if j.hitstopRemaining > 0 {
		j.hitstopRemaining -= dt
		if j.hitstopRemaining < 0 {
			j.hitstopRemaining = 0
		}
	}

	if j.shakeDuration > 0 {
		j.shakeIntensity *= j.shakeDecay
		j.shakeDuration -= dt
		if j.shakeDuration <= 0 {
			j.shakeDuration = 0
			j.shakeIntensity = 0
		}
	}

	if j.slowMoRemaining > 0 {
		j.slowMoRemaining -= dt
		if j.slowMoRemaining < 0 {
			j.slowMoRemaining = 0
		}
	}
}
