// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/JTStephens18/galaxyGPU/pkg/physics"
	"github.com/JTStephens18/galaxyGPU/pkg/render"
)

// pixelsPerUnit scales simulation units to screen pixels in the top-down
// projection. The view looks straight down the Y axis: world X maps to
// screen X, world Z to screen Y.
const pixelsPerUnit = 4

// particleStride thins the particle field for sprite rendering. The
// simulation buffers stay full resolution; only every Nth particle gets a
// sprite, since one entity per particle would swamp the render system.
const particleStride = 64

// terrainStride thins the terrain grid the same way.
const terrainStride = 4

// sprite bundles the components of one pooled render entity.
type sprite struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

// SceneRenderer draws the simulation buffers as a top-down 2D projection
// through Engo's render system. Sprites are pooled and reused across
// frames; Clear hides the pool and each Render call unhides what it fills.
type SceneRenderer struct {
	world        *ecs.World
	renderSystem *common.RenderSystem
	camera       *CameraSystem

	particles []*sprite
	terrain   []*sprite
	ghosts    []*sprite
}

// NewSceneRenderer creates a renderer over an ECS world and camera system.
func NewSceneRenderer(world *ecs.World, camera *CameraSystem) *SceneRenderer {
	return &SceneRenderer{
		world:  world,
		camera: camera,
	}
}

// Initialize registers the render system with the world.
func (r *SceneRenderer) Initialize() {
	r.renderSystem = &common.RenderSystem{}
	r.world.AddSystem(r.renderSystem)
}

// Clear hides every pooled sprite. Sprites filled this frame are unhidden
// by the Render calls that follow.
func (r *SceneRenderer) Clear() {
	for _, pool := range [][]*sprite{r.particles, r.terrain, r.ghosts} {
		for _, s := range pool {
			s.render.Hidden = true
		}
	}
}

// SetCamera points the top-down view at the look target. Camera height and
// the smoothed position are handled by the simulation; the projection only
// needs the horizontal focus point.
func (r *SceneRenderer) SetCamera(position, lookTarget physics.Vector3) {
	r.camera.SetTarget(lookTarget.X, lookTarget.Z)
}

// RenderParticles places one sprite per particleStride particles.
func (r *SceneRenderer) RenderParticles(positions []physics.Vector3, colors []render.Color) {
	needed := (len(positions) + particleStride - 1) / particleStride
	r.particles = r.ensurePool(r.particles, needed, 2)

	slot := 0
	for i := 0; i < len(positions); i += particleStride {
		s := r.particles[slot]
		s.space.Position = project(positions[i].X, positions[i].Z)
		s.render.Color = toRGBA(colors[i], 1)
		s.render.Hidden = false
		slot++
	}
}

// RenderTerrain places one tile per terrainStride vertices, colored by biome.
func (r *SceneRenderer) RenderTerrain(vertices []physics.Vector3, colors []render.Color) {
	needed := (len(vertices) + terrainStride - 1) / terrainStride
	r.terrain = r.ensurePool(r.terrain, needed, float32(terrainStride)*pixelsPerUnit)

	slot := 0
	for i := 0; i < len(vertices); i += terrainStride {
		s := r.terrain[slot]
		s.space.Position = project(vertices[i].X, vertices[i].Z)
		s.render.Color = toRGBA(colors[i], 1)
		s.render.Hidden = false
		slot++
	}
}

// RenderGhosts draws the anchor trail, fading with the supplied opacities.
func (r *SceneRenderer) RenderGhosts(positions []physics.Vector3, opacities []float64) {
	r.ghosts = r.ensurePool(r.ghosts, len(positions), 6)

	for i := range positions {
		s := r.ghosts[i]
		s.space.Position = project(positions[i].X, positions[i].Z)
		s.render.Color = toRGBA(render.Color{R: 1, G: 1, B: 1}, opacities[i])
		s.render.Hidden = false
	}
}

// Present is a no-op: Engo presents through its own render loop.
func (r *SceneRenderer) Present() {}

// ensurePool grows a sprite pool to at least n entries, registering new
// sprites with the render system as they are created.
func (r *SceneRenderer) ensurePool(pool []*sprite, n int, size float32) []*sprite {
	for len(pool) < n {
		s := &sprite{
			basic: ecs.NewBasic(),
			render: common.RenderComponent{
				Drawable: common.Rectangle{},
				Hidden:   true,
			},
			space: common.SpaceComponent{
				Width:  size,
				Height: size,
			},
		}
		r.renderSystem.Add(&s.basic, &s.render, &s.space)
		pool = append(pool, s)
	}
	return pool
}

// project maps a world XZ coordinate onto the screen plane.
func project(x, z float64) engo.Point {
	return engo.Point{
		X: float32(x * pixelsPerUnit),
		Y: float32(z * pixelsPerUnit),
	}
}

// toRGBA converts a normalized color and opacity to 8-bit RGBA, clamping
// out-of-range channels.
func toRGBA(c render.Color, alpha float64) color.RGBA {
	return color.RGBA{
		R: clampByte(c.R),
		G: clampByte(c.G),
		B: clampByte(c.B),
		A: clampByte(alpha),
	}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
