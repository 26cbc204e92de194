// pkg/procgen/hash.go

// Package procgen provides the deterministic building blocks for procedural
// placement: a cheap scalar hash and gradient noise with fractal summation.
package procgen

import "math"

// Hash11 maps any finite scalar seed to a pseudo-random value in [0, 1).
// It is a pure function of its input; integer-adjacent seeds produce
// uncorrelated outputs, so seed, seed+1, seed+2, ... can be treated as
// independent draws for one particle.
func Hash11(seed float64) float64 {
	h := fract(seed * 0.1031)
	return fract(h * (h + 33.33) * 2 * h)
}

// fract returns the fractional part of x, always in [0, 1) for finite x.
func fract(x float64) float64 {
	return x - math.Floor(x)
}
