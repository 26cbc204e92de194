// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/JTStephens18/galaxyGPU/pkg/input"
	"github.com/JTStephens18/galaxyGPU/pkg/physics"
)

// cursorRayHeight is where the synthetic cursor ray starts above the
// terrain. In the top-down view every cursor ray points straight down.
const cursorRayHeight = 100

// InputSystem samples Engo's input each frame into the discrete snapshot
// the simulation consumes. It never talks to the scene directly; the sim
// system reads the snapshot after this system has run.
type InputSystem struct {
	camera *CameraSystem

	state  input.State
	cursor *input.Ray
}

// NewInputSystem creates an input system that unprojects the cursor
// through the given camera.
func NewInputSystem(camera *CameraSystem) *InputSystem {
	return &InputSystem{camera: camera}
}

// Add satisfies the ecs.System interface
func (is *InputSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for input system
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {
	// Not used for input system
}

// Update samples the keyboard and mouse state for this frame.
func (is *InputSystem) Update(dt float32) {
	is.state = input.State{
		Forward:  engo.Input.Button("forward").Down(),
		Backward: engo.Input.Button("backward").Down(),
		Left:     engo.Input.Button("left").Down(),
		Right:    engo.Input.Button("right").Down(),
		Sprint:   engo.Input.Button("sprint").Down(),
		Reel:     engo.Input.Button("reel").Down(),
		Ascend:   engo.Input.Button("ascend").Down(),
		Descend:  engo.Input.Button("descend").Down(),
	}

	is.cursor = nil
	if engo.Input.Mouse.Action == engo.Press || engo.Input.Mouse.Action == engo.Move {
		wx, wz := is.camera.ScreenToWorld(
			engo.Input.Mouse.X, engo.Input.Mouse.Y,
			engo.GameWidth(), engo.GameHeight(),
		)
		is.cursor = &input.Ray{
			Origin:    physics.Vector3{X: wx, Y: cursorRayHeight, Z: wz},
			Direction: physics.Vector3{Y: -1},
		}
	}
}

// State returns this frame's input snapshot.
func (is *InputSystem) State() input.State {
	return is.state
}

// Cursor returns this frame's cursor ray, or nil when the mouse is idle.
func (is *InputSystem) Cursor() *input.Ray {
	return is.cursor
}

// SetupInputBindings registers the key bindings for the simulation.
func SetupInputBindings() {
	engo.Input.RegisterButton("forward", engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton("backward", engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton("left", engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton("right", engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton("sprint", engo.KeyLeftShift)
	engo.Input.RegisterButton("reel", engo.KeySpace)
	engo.Input.RegisterButton("ascend", engo.KeyE)
	engo.Input.RegisterButton("descend", engo.KeyQ)
	engo.Input.RegisterButton("resetZoom", engo.KeyR)
}
