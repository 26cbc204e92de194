// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
)

// CameraSystem drives Engo's built-in camera toward the simulation's look
// target. Smoothing already happened in the simulation's own camera rig, so
// the screen camera just snaps to wherever the rig says to look.
type CameraSystem struct {
	targetX   float32
	targetY   float32
	targetSet bool

	zoom    float32
	minZoom float32
	maxZoom float32
}

// NewCameraSystem creates a camera system at default zoom.
func NewCameraSystem() *CameraSystem {
	return &CameraSystem{
		zoom:    1.0,
		minZoom: 0.25,
		maxZoom: 4.0,
	}
}

// Add satisfies the ecs.System interface
func (cs *CameraSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for camera system
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {
	// Not used for camera system
}

// Update applies the current target and any zoom input to the engine camera.
func (cs *CameraSystem) Update(dt float32) {
	cs.handleZoomInput()

	if cs.targetSet {
		engo.Mailbox.Dispatch(common.CameraMessage{
			Axis:        common.XAxis,
			Value:       cs.targetX,
			Incremental: false,
		})
		engo.Mailbox.Dispatch(common.CameraMessage{
			Axis:        common.YAxis,
			Value:       cs.targetY,
			Incremental: false,
		})
	}

	engo.Mailbox.Dispatch(common.CameraMessage{
		Axis:        common.ZAxis,
		Value:       cs.zoom,
		Incremental: false,
	})
}

// handleZoomInput processes mouse-wheel zoom.
func (cs *CameraSystem) handleZoomInput() {
	scrollY := engo.Input.Mouse.ScrollY
	if scrollY != 0 {
		cs.SetZoom(cs.zoom * (1.0 + scrollY*0.1))
	}
	if engo.Input.Button("resetZoom").JustPressed() {
		cs.SetZoom(1.0)
	}
}

// SetTarget sets the world-space point the camera centers on.
func (cs *CameraSystem) SetTarget(worldX, worldZ float64) {
	p := project(worldX, worldZ)
	cs.targetX = p.X
	cs.targetY = p.Y
	cs.targetSet = true
}

// SetZoom sets the camera zoom level, clamped to the configured bounds.
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// GetZoom returns the current zoom level.
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

// clampZoom ensures zoom is within valid bounds.
func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// ScreenToWorld converts a screen coordinate back to a world XZ coordinate,
// given the camera center in screen space.
func (cs *CameraSystem) ScreenToWorld(screenX, screenY float32, width, height float32) (float64, float64) {
	return unproject(screenX, screenY, cs.targetX, cs.targetY, cs.zoom, width, height)
}

// unproject is the pure inverse of the projection plus camera transform.
func unproject(screenX, screenY, camX, camY, zoom, width, height float32) (float64, float64) {
	relX := (screenX - width/2) / zoom
	relY := (screenY - height/2) / zoom
	worldX := float64(relX+camX) / pixelsPerUnit
	worldZ := float64(relY+camY) / pixelsPerUnit
	return worldX, worldZ
}
