// pkg/procgen/noise.go
package procgen

import (
	"math"
	"math/rand"
)

// Noise generates smooth gradient noise in 2D and 3D with a seed-shuffled
// permutation table. Output depends only on the sampled coordinate, never on
// time, so repeated samples at one point are stable across frames.
type Noise struct {
	perm [512]int
}

// NewNoise creates a new noise generator with the given seed.
func NewNoise(seed int64) *Noise {
	n := &Noise{}
	r := rand.New(rand.NewSource(seed))

	// Initialize and shuffle permutation table
	p := make([]int, 256)
	for i := range p {
		p[i] = i
	}
	r.Shuffle(256, func(i, j int) { p[i], p[j] = p[j], p[i] })

	for i := 0; i < 512; i++ {
		n.perm[i] = p[i&255]
	}
	return n
}

// fade is the quintic smoothing curve 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// grad2 computes the dot product of a gradient vector and (x, y).
func grad2(hash int, x, y float64) float64 {
	h := hash & 7
	u, v := x, y
	if h >= 4 {
		u, v = y, x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// grad3 computes the dot product of a gradient vector and (x, y, z).
func grad3(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// Sample2 returns 2D gradient noise at (x, y), approximately in [-1, 1].
func (n *Noise) Sample2(x, y float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	xf := x - math.Floor(x)
	yf := y - math.Floor(y)

	u := fade(xf)
	v := fade(yf)

	aa := n.perm[n.perm[xi]+yi]
	ab := n.perm[n.perm[xi]+yi+1]
	ba := n.perm[n.perm[xi+1]+yi]
	bb := n.perm[n.perm[xi+1]+yi+1]

	x1 := lerp(grad2(aa, xf, yf), grad2(ba, xf-1, yf), u)
	x2 := lerp(grad2(ab, xf, yf-1), grad2(bb, xf-1, yf-1), u)

	// Scale so extremes reach roughly [-1, 1]
	return lerp(x1, x2, v) * 0.7071067811865476
}

// Sample3 returns 3D gradient noise at (x, y, z), approximately in [-1, 1].
func (n *Noise) Sample3(x, y, z float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	zi := int(math.Floor(z)) & 255
	xf := x - math.Floor(x)
	yf := y - math.Floor(y)
	zf := z - math.Floor(z)

	u := fade(xf)
	v := fade(yf)
	w := fade(zf)

	a := n.perm[xi] + yi
	aa := n.perm[a] + zi
	ab := n.perm[a+1] + zi
	b := n.perm[xi+1] + yi
	ba := n.perm[b] + zi
	bb := n.perm[b+1] + zi

	x1 := lerp(grad3(n.perm[aa], xf, yf, zf), grad3(n.perm[ba], xf-1, yf, zf), u)
	x2 := lerp(grad3(n.perm[ab], xf, yf-1, zf), grad3(n.perm[bb], xf-1, yf-1, zf), u)
	y1 := lerp(x1, x2, v)

	x3 := lerp(grad3(n.perm[aa+1], xf, yf, zf-1), grad3(n.perm[ba+1], xf-1, yf, zf-1), u)
	x4 := lerp(grad3(n.perm[ab+1], xf, yf-1, zf-1), grad3(n.perm[bb+1], xf-1, yf-1, zf-1), u)
	y2 := lerp(x3, x4, v)

	return lerp(y1, y2, w)
}

// FBMParams are the fractal-sum controls. Frequency multiplies the input
// coordinate and Amplitude the octave contribution; after each octave
// frequency scales by Lacunarity and amplitude by Persistence.
type FBMParams struct {
	Octaves     int
	Frequency   float64
	Amplitude   float64
	Lacunarity  float64
	Persistence float64
}

// FBM2 sums Octaves calls to Sample2 at increasing frequency and decreasing
// amplitude. Zero octaves yields 0.
func (n *Noise) FBM2(x, y float64, p FBMParams) float64 {
	total := 0.0
	freq := p.Frequency
	amp := p.Amplitude
	for i := 0; i < p.Octaves; i++ {
		total += n.Sample2(x*freq, y*freq) * amp
		freq *= p.Lacunarity
		amp *= p.Persistence
	}
	return total
}

// FBM3 is the 3D analogue of FBM2.
func (n *Noise) FBM3(x, y, z float64, p FBMParams) float64 {
	total := 0.0
	freq := p.Frequency
	amp := p.Amplitude
	for i := 0; i < p.Octaves; i++ {
		total += n.Sample3(x*freq, y*freq, z*freq) * amp
		freq *= p.Lacunarity
		amp *= p.Persistence
	}
	return total
}
