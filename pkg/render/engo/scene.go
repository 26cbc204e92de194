// pkg/render/engo/scene.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/JTStephens18/galaxyGPU/pkg/config"
	"github.com/JTStephens18/galaxyGPU/pkg/engine"
	"github.com/JTStephens18/galaxyGPU/pkg/input"
	"github.com/JTStephens18/galaxyGPU/pkg/logging"
)

// SimScene hosts the simulation inside an Engo window: input sampling,
// simulation update and sprite projection run as ECS systems each frame.
type SimScene struct {
	config *config.SceneConfig

	world    *ecs.World
	scene    *engine.Scene
	renderer *SceneRenderer
	camera   *CameraSystem
	input    *InputSystem
}

// NewSimScene creates the Engo scene wrapper around a scene configuration.
func NewSimScene(cfg *config.SceneConfig) *SimScene {
	return &SimScene{config: cfg}
}

// Type returns the scene type (required by Engo)
func (s *SimScene) Type() string {
	return "SimScene"
}

// Preload is called before the scene starts (required by Engo)
func (s *SimScene) Preload() {
	// Everything is generated procedurally; no assets to load.
}

// Setup builds the simulation and registers the frame systems. System order
// matters: input samples first, then the simulation consumes the snapshot,
// then the camera applies the resulting look target.
func (s *SimScene) Setup(u engo.Updater) {
	logger := logging.NewLogger()
	ctx := context.Background()

	s.world = &ecs.World{}

	scene, err := engine.NewScene(s.config)
	if err != nil {
		panic("failed to build scene: " + err.Error())
	}
	if err := scene.Start(ctx); err != nil {
		panic("failed to start scene: " + err.Error())
	}
	s.scene = scene

	s.camera = NewCameraSystem()
	s.renderer = NewSceneRenderer(s.world, s.camera)
	s.renderer.Initialize()
	s.world.AddSystem(&common.MouseSystem{})

	s.input = NewInputSystem(s.camera)
	s.world.AddSystem(s.input)
	s.world.AddSystem(&simSystem{scene: scene, renderer: s.renderer, input: s.input})
	s.world.AddSystem(s.camera)

	logger.Info(ctx, "engo scene ready",
		"particles", scene.Galaxy.Count(),
		"terrain_vertices", scene.Terrain.VertexCount(),
	)
}

// Exit is called when the scene is exiting (required by Engo)
func (s *SimScene) Exit() {
	if s.scene != nil {
		s.scene.Stop()
	}
}

// simSystem steps the simulation once per frame and hands the buffers to
// the sprite renderer.
type simSystem struct {
	scene    *engine.Scene
	renderer *SceneRenderer
	input    *InputSystem
}

// Add satisfies the ecs.System interface
func (ss *simSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for sim system
}

// Remove satisfies the ecs.System interface
func (ss *simSystem) Remove(basic ecs.BasicEntity) {
	// Not used for sim system
}

// Update advances the simulation by the frame delta and redraws.
func (ss *simSystem) Update(dt float32) {
	var st input.State
	var cursor *input.Ray
	if ss.input != nil {
		st = ss.input.State()
		cursor = ss.input.Cursor()
	}
	ss.scene.Update(context.Background(), float64(dt), st, cursor)
	ss.scene.Render(ss.renderer)
}

// Run opens the window and starts the frame loop. Blocks until the window
// closes.
func Run(cfg *config.SceneConfig, width, height int, fullscreen bool) {
	SetupInputBindings()
	engo.Run(engo.RunOptions{
		Title:      "galaxyGPU",
		Width:      width,
		Height:     height,
		Fullscreen: fullscreen,
		VSync:      true,
	}, NewSimScene(cfg))
}
