// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/JTStephens18/galaxyGPU/pkg/logging"
	"github.com/JTStephens18/galaxyGPU/pkg/physics"
)

// Renderer consumes the simulation's output buffers read-only, once per
// frame, strictly after the passes that write them have completed.
type Renderer interface {
	Clear()
	SetCamera(position, lookTarget physics.Vector3)
	RenderParticles(positions []physics.Vector3, colors []Color)
	RenderTerrain(vertices []physics.Vector3, colors []Color)
	RenderGhosts(positions []physics.Vector3, opacities []float64)
	Present()
}

// NullRenderer is a simple implementation of Renderer for headless runs.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{
		logger: logging.NewLogger(),
	}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// SetCamera implements Renderer.
func (d *NullRenderer) SetCamera(position, lookTarget physics.Vector3) {
	d.logger.Debug(context.Background(), "SetCamera called",
		"position_x", position.X,
		"position_y", position.Y,
		"position_z", position.Z,
	)
}

// RenderParticles implements Renderer.
func (d *NullRenderer) RenderParticles(positions []physics.Vector3, colors []Color) {
	d.logger.Debug(context.Background(), "RenderParticles called",
		"count", len(positions),
	)
}

// RenderTerrain implements Renderer.
func (d *NullRenderer) RenderTerrain(vertices []physics.Vector3, colors []Color) {
	d.logger.Debug(context.Background(), "RenderTerrain called",
		"count", len(vertices),
	)
}

// RenderGhosts implements Renderer.
func (d *NullRenderer) RenderGhosts(positions []physics.Vector3, opacities []float64) {
	d.logger.Debug(context.Background(), "RenderGhosts called",
		"count", len(positions),
	)
}

// Present implements Renderer.
func (d *NullRenderer) Present() {
	d.logger.Debug(context.Background(), "Present called")
}
