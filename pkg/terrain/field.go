// Package terrain generates the camera-following height field: a fixed
// grid of vertices whose world positions are recomputed every frame from a
// snapped follow offset and fractal noise. The grid never changes topology;
// only world positions and colors move.
package terrain

import (
	"context"
	"math"

	"github.com/JTStephens18/galaxyGPU/pkg/compute"
	"github.com/JTStephens18/galaxyGPU/pkg/physics"
	"github.com/JTStephens18/galaxyGPU/pkg/procgen"
	"github.com/JTStephens18/galaxyGPU/pkg/render"
)

// BiomeParams are the ordered color bands keyed on height. The six
// thresholds form three smoothstep transitions (water to sand, sand to
// grass, grass to rock), applied in that fixed order; a later band
// overrides earlier ones wherever its transition is non-zero. Thresholds
// are expected ascending but never validated here.
type BiomeParams struct {
	WaterEnd   float64
	SandStart  float64
	SandEnd    float64
	GrassStart float64
	GrassEnd   float64
	RockStart  float64
	Water      render.Color
	Sand       render.Color
	Grass      render.Color
	Rock       render.Color
}

// Params are the height-field tunables.
type Params struct {
	Width        float64
	Depth        float64
	SegmentsX    int
	SegmentsZ    int
	Seed         int64
	Noise        procgen.FBMParams
	HeightScale  float64
	HeightOffset float64
	Biomes       BiomeParams
}

// Field is the terrain simulator. Base vertices are set once from a regular
// grid; world vertices and colors are rewritten by every Update pass.
type Field struct {
	params     Params
	noise      *procgen.Noise
	dispatcher *compute.Dispatcher

	base    []physics.Vector3
	world   []physics.Vector3
	colors  []render.Color
	cellX   float64
	cellZ   float64
	snapped physics.Vector3
	ready   bool
}

// NewField builds the base grid centered on the origin. World positions are
// not valid until the first successful Update.
func NewField(params Params, dispatcher *compute.Dispatcher) *Field {
	sx := params.SegmentsX
	sz := params.SegmentsZ
	if sx < 1 {
		sx = 1
	}
	if sz < 1 {
		sz = 1
	}
	params.SegmentsX = sx
	params.SegmentsZ = sz

	f := &Field{
		params:     params,
		noise:      procgen.NewNoise(params.Seed),
		dispatcher: dispatcher,
		cellX:      params.Width / float64(sx),
		cellZ:      params.Depth / float64(sz),
	}

	count := (sx + 1) * (sz + 1)
	f.base = make([]physics.Vector3, count)
	f.world = make([]physics.Vector3, count)
	f.colors = make([]render.Color, count)

	for zi := 0; zi <= sz; zi++ {
		for xi := 0; xi <= sx; xi++ {
			f.base[zi*(sx+1)+xi] = physics.Vector3{
				X: -params.Width/2 + float64(xi)*f.cellX,
				Z: -params.Depth/2 + float64(zi)*f.cellZ,
			}
		}
	}
	return f
}

// Ready reports whether the field holds a valid frame of world positions.
func (f *Field) Ready() bool {
	return f.ready
}

// VertexCount returns the number of grid vertices.
func (f *Field) VertexCount() int {
	return len(f.base)
}

// WorldPositions returns the per-vertex world positions of the last
// completed Update pass.
func (f *Field) WorldPositions() []physics.Vector3 {
	return f.world
}

// Colors returns the per-vertex biome colors of the last completed pass.
func (f *Field) Colors() []render.Color {
	return f.colors
}

// CellSize returns the grid cell extents on each horizontal axis.
func (f *Field) CellSize() (float64, float64) {
	return f.cellX, f.cellZ
}

// SnapOffset quantizes a follow position to whole grid cells. Two follow
// positions inside the same cell produce the identical offset, so the field
// only ever moves in whole-cell steps under camera motion.
func (f *Field) SnapOffset(follow physics.Vector3) physics.Vector3 {
	return physics.Vector3{
		X: math.Floor(follow.X/f.cellX) * f.cellX,
		Z: math.Floor(follow.Z/f.cellZ) * f.cellZ,
	}
}

// Update recomputes every vertex from the snapped follow offset and the
// noise field, blocking until the pass completes. Heights depend only on
// world coordinates, so a stationary follow position yields an identical
// field every frame. On dispatch failure the previous frame's buffers are
// left intact.
func (f *Field) Update(ctx context.Context, follow physics.Vector3) error {
	snapped := f.SnapOffset(follow)
	err := f.dispatcher.RunAndWait(ctx, "terrain-update", len(f.base), func(i int) {
		wx := f.base[i].X + snapped.X
		wz := f.base[i].Z + snapped.Z
		h := (f.noise.FBM2(wx, wz, f.params.Noise) + f.params.HeightOffset) * f.params.HeightScale
		f.world[i] = physics.Vector3{X: wx, Y: h, Z: wz}
		f.colors[i] = f.biomeColor(h)
	})
	if err != nil {
		return err
	}
	f.snapped = snapped
	f.ready = true
	return nil
}

// HeightAt samples the terrain height at an arbitrary world coordinate.
// Uses the same formula as the vertex pass, so it agrees with the mesh.
func (f *Field) HeightAt(x, z float64) float64 {
	return (f.noise.FBM2(x, z, f.params.Noise) + f.params.HeightOffset) * f.params.HeightScale
}

// biomeColor blends the four bands bottom-up. Order matters: each band's
// mix overwrites the result of the bands below it.
func (f *Field) biomeColor(height float64) render.Color {
	b := &f.params.Biomes
	c := b.Water
	c = c.Lerp(b.Sand, smoothstep(b.WaterEnd, b.SandStart, height))
	c = c.Lerp(b.Grass, smoothstep(b.SandEnd, b.GrassStart, height))
	c = c.Lerp(b.Rock, smoothstep(b.GrassEnd, b.RockStart, height))
	return c
}

// smoothstep is the standard Hermite step between edge0 and edge1.
// Coincident edges degrade to a hard step instead of dividing by zero.
func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
