// pkg/engine/scene.go
package engine

import (
	"context"
	"fmt"

	"github.com/JTStephens18/galaxyGPU/pkg/camera"
	"github.com/JTStephens18/galaxyGPU/pkg/compute"
	"github.com/JTStephens18/galaxyGPU/pkg/config"
	"github.com/JTStephens18/galaxyGPU/pkg/entity"
	"github.com/JTStephens18/galaxyGPU/pkg/event"
	"github.com/JTStephens18/galaxyGPU/pkg/galaxy"
	"github.com/JTStephens18/galaxyGPU/pkg/input"
	"github.com/JTStephens18/galaxyGPU/pkg/logging"
	"github.com/JTStephens18/galaxyGPU/pkg/physics"
	"github.com/JTStephens18/galaxyGPU/pkg/procgen"
	"github.com/JTStephens18/galaxyGPU/pkg/render"
	"github.com/JTStephens18/galaxyGPU/pkg/terrain"
	"github.com/JTStephens18/galaxyGPU/pkg/tether"
)

// SceneStatus tracks the scene lifecycle
type SceneStatus int

const (
	SceneStatusWaiting SceneStatus = iota
	SceneStatusActive
	SceneStatusEnded
)

// hitCooldown is the minimum interval between combat hits on one target,
// so a lingering anchor does not re-trigger every frame.
const hitCooldown = 0.25

// Stats are the per-run counters the host reports on shutdown.
type Stats struct {
	Tick             uint64
	Elapsed          float64
	DispatchFailures uint64
	TargetsDestroyed uint64
}

// Scene owns every simulation component and advances them in a fixed order
// each frame: juice and time scale first, then the bulk passes (terrain,
// galaxy), then tether physics, then the camera rig. Rendering reads the
// resulting buffers afterwards, never concurrently.
type Scene struct {
	Config *config.SceneConfig

	Galaxy  *galaxy.Simulator
	Terrain *terrain.Field
	Tether  *tether.Tether
	Targets *entity.Registry
	Juice   *camera.Juice
	Rig     *camera.Rig

	EventBus   *event.Bus
	Status     SceneStatus
	dispatcher *compute.Dispatcher
	logger     *logging.Logger

	ship      physics.MovementState
	shipID    entity.ID
	anchor    *entity.RigidBody
	targetBuf []physics.Vector3
	cooldowns map[entity.ID]float64

	stats Stats
}

// shipBody exposes the ship's movement state through the rigid-body
// read/impulse surface the tether expects.
type shipBody struct {
	id    entity.ID
	state *physics.MovementState
}

func (b *shipBody) GetID() entity.ID             { return b.id }
func (b *shipBody) GetPosition() physics.Vector3 { return b.state.Position }
func (b *shipBody) GetVelocity() physics.Vector3 { return b.state.Velocity }

func (b *shipBody) ApplyImpulse(imp physics.Vector3) {
	b.state.Velocity = b.state.Velocity.Add(imp)
}

// NewScene wires a scene from configuration. Particle and terrain state is
// not valid until Start succeeds.
func NewScene(cfg *config.SceneConfig) (*Scene, error) {
	galaxyParams, err := galaxyParamsFromConfig(cfg.Galaxy)
	if err != nil {
		return nil, fmt.Errorf("galaxy config: %w", err)
	}
	terrainParams, err := terrainParamsFromConfig(cfg.Terrain)
	if err != nil {
		return nil, fmt.Errorf("terrain config: %w", err)
	}

	dispatcher := compute.NewDispatcher(cfg.Compute.Workers)

	s := &Scene{
		Config:     cfg,
		Galaxy:     galaxy.NewSimulator(galaxyParams, dispatcher),
		Terrain:    terrain.NewField(terrainParams, dispatcher),
		Targets:    entity.NewRegistry(),
		Juice:      camera.NewJuice(1),
		EventBus:   event.NewEventBus(),
		dispatcher: dispatcher,
		logger:     logging.NewLogger(),
		cooldowns:  make(map[entity.ID]float64),
	}

	s.ship = physics.MovementState{
		Position: physics.Vector3{Y: cfg.Ship.StartHeight},
		Thrust:   cfg.Ship.Thrust,
		MaxSpeed: cfg.Ship.MaxSpeed,
		Damping:  cfg.Ship.Damping,
	}
	s.shipID = entity.GenerateID()

	anchorStart := s.ship.Position.Add(physics.Vector3{Y: -cfg.Tether.ChainRestLength})
	s.anchor = entity.NewRigidBody(entity.GenerateID(), anchorStart, cfg.Tether.AnchorMass, cfg.Tether.AnchorRadius)

	s.Tether = tether.New(tetherParamsFromConfig(cfg.Tether), &shipBody{id: s.shipID, state: &s.ship}, s.anchor)

	follow := camera.NewFollow(
		physics.Vector3{X: cfg.Camera.OffsetX, Y: cfg.Camera.OffsetY, Z: cfg.Camera.OffsetZ},
		cfg.Camera.PositionRate,
		cfg.Camera.LookRate,
	)
	s.Rig = camera.NewRig(follow, s.Juice)

	for _, target := range cfg.Targets {
		s.Targets.Add(physics.Vector3{X: target.X, Y: target.Y, Z: target.Z}, target.Health)
	}

	s.registerEventHandlers()
	return s, nil
}

// registerEventHandlers feeds combat events into the juice state.
func (s *Scene) registerEventHandlers() {
	j := s.Config.Juice
	s.EventBus.Subscribe(event.CombatHit, func(event.Event) {
		s.Juice.TriggerHitstop(j.HitstopDuration)
		s.Juice.TriggerShake(j.ShakeIntensity, j.ShakeDuration, j.ShakeDecay)
	})
	s.EventBus.Subscribe(event.TargetDestroyed, func(event.Event) {
		s.Juice.TriggerSlowMo(j.SlowMoFactor, j.SlowMoDuration)
	})
}

// Start runs the one-time placement pass and the first terrain pass. The
// scene refuses to update or render before both succeed.
func (s *Scene) Start(ctx context.Context) error {
	for _, warning := range config.Validate(s.Config) {
		s.logger.Warn(ctx, "configuration oddity", "detail", warning)
	}

	if err := s.Galaxy.Initialize(ctx); err != nil {
		return fmt.Errorf("galaxy initialization: %w", err)
	}
	if err := s.Terrain.Update(ctx, s.ship.Position); err != nil {
		return fmt.Errorf("initial terrain pass: %w", err)
	}

	s.Status = SceneStatusActive
	s.EventBus.Publish(&event.BaseEvent{EventType: event.SceneStarted, Source: s})
	s.logger.Info(ctx, "scene started",
		"particles", s.Galaxy.Count(),
		"terrain_vertices", s.Terrain.VertexCount(),
		"targets", s.Targets.Len(),
		"workers", s.dispatcher.Workers(),
	)
	return nil
}

// Stop ends the scene.
func (s *Scene) Stop() {
	s.Status = SceneStatusEnded
	s.EventBus.Publish(&event.BaseEvent{EventType: event.SceneEnded, Source: s})
}

// Update advances one frame of real time dt. Juice runs on real time and
// supplies the scale applied to every simulated subsystem; the camera also
// runs on real time so a frozen simulation keeps a live camera.
func (s *Scene) Update(ctx context.Context, dt float64, in input.State, cursor *input.Ray) {
	if s.Status != SceneStatusActive {
		return
	}

	s.Juice.Update(dt)
	simDt := dt * s.Juice.TimeScale()

	s.updateShip(simDt, in)

	if err := s.Terrain.Update(ctx, s.ship.Position); err != nil {
		s.holdLastGood(ctx, err)
	}
	if err := s.Galaxy.Advance(ctx, simDt); err != nil {
		s.holdLastGood(ctx, err)
	}

	s.updateTether(simDt, in, cursor)
	s.resolveCombat(dt)

	s.Rig.Update(dt, s.ship.Position, s.anchor.Position)

	s.stats.Tick++
	s.stats.Elapsed += dt
}

// Render hands the frame's buffers to a renderer. Nothing is drawn until
// both bulk simulators hold valid state.
func (s *Scene) Render(r render.Renderer) {
	if s.Galaxy.State() != galaxy.Ready || !s.Terrain.Ready() {
		return
	}
	r.Clear()
	r.SetCamera(s.Rig.Position(), s.Rig.LookTarget())
	r.RenderTerrain(s.Terrain.WorldPositions(), s.Terrain.Colors())
	r.RenderParticles(s.Galaxy.Positions(), s.Galaxy.Colors())

	trail := s.Tether.Trail()
	opacities := make([]float64, len(trail))
	for i := range trail {
		opacities[i] = s.Tether.GhostOpacity(i)
	}
	r.RenderGhosts(trail, opacities)
	r.Present()
}

// Stats returns the run counters.
func (s *Scene) Stats() Stats {
	return s.stats
}

// ShipPosition returns the ship's current position.
func (s *Scene) ShipPosition() physics.Vector3 {
	return s.ship.Position
}

// AnchorPosition returns the anchor's current position.
func (s *Scene) AnchorPosition() physics.Vector3 {
	return s.anchor.Position
}

// updateShip applies the input snapshot to the ship drive.
func (s *Scene) updateShip(dt float64, in input.State) {
	thrustInput := in.Axis()
	if in.Sprint {
		thrustInput *= s.Config.Ship.SprintMultiplier
	}
	physics.UpdateMovement(&s.ship, dt, thrustInput, in.Lift(), in.Turn()*2)
}

// updateTether runs tether physics and integrates the anchor.
func (s *Scene) updateTether(dt float64, in input.State, cursor *input.Ray) {
	s.targetBuf = s.Targets.Positions(s.targetBuf[:0])

	var steer *physics.Vector3
	if cursor != nil {
		if point, ok := cursor.IntersectHorizontalPlane(s.anchor.Position.Y); ok {
			steer = &point
		}
	}

	s.Tether.Update(dt, in.Reel, s.targetBuf, steer)
	s.anchor.Update(dt)
}

// resolveCombat tests the anchor against live targets and publishes hit
// and destroyed events. A short per-target cooldown keeps a resting anchor
// from re-triggering every frame. Cooldowns tick on real time so hitstop
// does not extend them.
func (s *Scene) resolveCombat(dt float64) {
	for id, remaining := range s.cooldowns {
		remaining -= dt
		if remaining <= 0 {
			delete(s.cooldowns, id)
		} else {
			s.cooldowns[id] = remaining
		}
	}

	var hits []entity.Target
	s.Targets.Each(func(target entity.Target) {
		if _, coolingDown := s.cooldowns[target.ID]; coolingDown {
			return
		}
		if s.anchor.Position.Distance(target.Position) < s.anchor.Radius+1 {
			hits = append(hits, target)
		}
	})

	for _, target := range hits {
		s.cooldowns[target.ID] = hitCooldown
		speed := s.anchor.Velocity.Length()
		s.EventBus.Publish(event.NewHitEvent(s, uint64(target.ID), target.Position, speed))

		if destroyed := s.Targets.Damage(target.ID, 1); destroyed {
			s.stats.TargetsDestroyed++
			s.EventBus.Publish(event.NewDestroyedEvent(s, uint64(target.ID), target.Position))
		}
	}
}

// holdLastGood logs a failed bulk pass and leaves the previous buffers in
// place. The frame loop keeps running; retry happens naturally next frame
// unless the breaker is open.
func (s *Scene) holdLastGood(ctx context.Context, err error) {
	s.stats.DispatchFailures++
	s.logger.Warn(ctx, "bulk pass failed, holding last good state", "error", err.Error())
	s.EventBus.Publish(&event.BaseEvent{EventType: event.DispatchDropped, Source: s})
}

// galaxyParamsFromConfig converts the serialized tunables, parsing colors.
func galaxyParamsFromConfig(cfg config.GalaxyConfig) (galaxy.Params, error) {
	inside, err := render.ParseHexColor(cfg.InsideColor)
	if err != nil {
		return galaxy.Params{}, err
	}
	outside, err := render.ParseHexColor(cfg.OutsideColor)
	if err != nil {
		return galaxy.Params{}, err
	}
	return galaxy.Params{
		Count:         cfg.ParticleCount,
		Radius:        cfg.Radius,
		ArmCount:      cfg.ArmCount,
		Tightness:     cfg.Tightness,
		ArmWidth:      cfg.ArmWidth,
		Thickness:     cfg.Thickness,
		Randomness:    cfg.Randomness,
		RotationScale: cfg.RotationScale,
		OrbitSpeed:    cfg.OrbitSpeed,
		InsideColor:   inside,
		OutsideColor:  outside,
	}, nil
}

// terrainParamsFromConfig converts the serialized tunables, parsing colors.
func terrainParamsFromConfig(cfg config.TerrainConfig) (terrain.Params, error) {
	biomes := terrain.BiomeParams{
		WaterEnd:   cfg.Biomes.WaterEnd,
		SandStart:  cfg.Biomes.SandStart,
		SandEnd:    cfg.Biomes.SandEnd,
		GrassStart: cfg.Biomes.GrassStart,
		GrassEnd:   cfg.Biomes.GrassEnd,
		RockStart:  cfg.Biomes.RockStart,
	}
	var err error
	if biomes.Water, err = render.ParseHexColor(cfg.Biomes.WaterColor); err != nil {
		return terrain.Params{}, err
	}
	if biomes.Sand, err = render.ParseHexColor(cfg.Biomes.SandColor); err != nil {
		return terrain.Params{}, err
	}
	if biomes.Grass, err = render.ParseHexColor(cfg.Biomes.GrassColor); err != nil {
		return terrain.Params{}, err
	}
	if biomes.Rock, err = render.ParseHexColor(cfg.Biomes.RockColor); err != nil {
		return terrain.Params{}, err
	}

	return terrain.Params{
		Width:     cfg.Width,
		Depth:     cfg.Depth,
		SegmentsX: cfg.SegmentsX,
		SegmentsZ: cfg.SegmentsZ,
		Seed:      cfg.NoiseSeed,
		Noise: procgen.FBMParams{
			Octaves:     cfg.Octaves,
			Frequency:   cfg.Frequency,
			Amplitude:   cfg.Amplitude,
			Lacunarity:  cfg.Lacunarity,
			Persistence: cfg.Persistence,
		},
		HeightScale:  cfg.HeightScale,
		HeightOffset: cfg.HeightOffset,
		Biomes:       biomes,
	}, nil
}

func tetherParamsFromConfig(cfg config.TetherConfig) tether.Params {
	return tether.Params{
		ChainRestLength:   cfg.ChainRestLength,
		ChainMinLength:    cfg.ChainMinLength,
		ReelSpeed:         cfg.ReelSpeed,
		ExtendSpeed:       cfg.ExtendSpeed,
		Stiffness:         cfg.Stiffness,
		Damping:           cfg.Damping,
		GravityStrength:   cfg.GravityStrength,
		TrailLength:       cfg.TrailLength,
		TrailFalloff:      cfg.TrailFalloff,
		AimAssistStrength: cfg.AimAssistStrength,
		AimAssistRange:    cfg.AimAssistRange,
		SteerStrength:     cfg.SteerStrength,
		SteerRange:        cfg.SteerRange,
	}
}
