// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// SceneConfig contains configuration for a simulation scene
type SceneConfig struct {
	FrameRate int            `json:"frameRate"`
	Galaxy    GalaxyConfig   `json:"galaxy"`
	Terrain   TerrainConfig  `json:"terrain"`
	Ship      ShipConfig     `json:"ship"`
	Tether    TetherConfig   `json:"tether"`
	Camera    CameraConfig   `json:"camera"`
	Juice     JuiceConfig    `json:"juice"`
	Compute   ComputeConfig  `json:"compute"`
	Targets   []TargetConfig `json:"targets"`
}

// GalaxyConfig contains the particle field tunables
type GalaxyConfig struct {
	ParticleCount int     `json:"particleCount"`
	Radius        float64 `json:"radius"`
	ArmCount      int     `json:"armCount"`
	Tightness     float64 `json:"tightness"`
	ArmWidth      float64 `json:"armWidth"`
	Thickness     float64 `json:"thickness"`
	Randomness    float64 `json:"randomness"`
	RotationScale float64 `json:"rotationScale"`
	OrbitSpeed    float64 `json:"orbitSpeed"`
	InsideColor   string  `json:"insideColor"`
	OutsideColor  string  `json:"outsideColor"`
}

// TerrainConfig contains the height-field tunables
type TerrainConfig struct {
	Width        float64     `json:"width"`
	Depth        float64     `json:"depth"`
	SegmentsX    int         `json:"segmentsX"`
	SegmentsZ    int         `json:"segmentsZ"`
	NoiseSeed    int64       `json:"noiseSeed"`
	Octaves      int         `json:"octaves"`
	Frequency    float64     `json:"frequency"`
	Amplitude    float64     `json:"amplitude"`
	Lacunarity   float64     `json:"lacunarity"`
	Persistence  float64     `json:"persistence"`
	HeightScale  float64     `json:"heightScale"`
	HeightOffset float64     `json:"heightOffset"`
	Biomes       BiomeConfig `json:"biomes"`
}

// BiomeConfig holds the six blend thresholds, expected in ascending order,
// and the band colors. Out-of-order thresholds are not rejected; blending
// runs in fixed band order regardless (see Validate).
type BiomeConfig struct {
	WaterEnd   float64 `json:"waterEnd"`
	SandStart  float64 `json:"sandStart"`
	SandEnd    float64 `json:"sandEnd"`
	GrassStart float64 `json:"grassStart"`
	GrassEnd   float64 `json:"grassEnd"`
	RockStart  float64 `json:"rockStart"`
	WaterColor string  `json:"waterColor"`
	SandColor  string  `json:"sandColor"`
	GrassColor string  `json:"grassColor"`
	RockColor  string  `json:"rockColor"`
}

// ShipConfig contains the player drive tunables
type ShipConfig struct {
	Thrust           float64 `json:"thrust"`
	SprintMultiplier float64 `json:"sprintMultiplier"`
	MaxSpeed         float64 `json:"maxSpeed"`
	Damping          float64 `json:"damping"`
	StartHeight      float64 `json:"startHeight"`
}

// TetherConfig contains the wrecking-ball tunables
type TetherConfig struct {
	ChainRestLength   float64 `json:"chainRestLength"`
	ChainMinLength    float64 `json:"chainMinLength"`
	ReelSpeed         float64 `json:"reelSpeed"`
	ExtendSpeed       float64 `json:"extendSpeed"`
	AnchorMass        float64 `json:"anchorMass"`
	AnchorRadius      float64 `json:"anchorRadius"`
	Stiffness         float64 `json:"stiffness"`
	Damping           float64 `json:"damping"`
	GravityStrength   float64 `json:"gravityStrength"`
	TrailLength       int     `json:"trailLength"`
	TrailFalloff      float64 `json:"trailFalloff"`
	AimAssistStrength float64 `json:"aimAssistStrength"`
	AimAssistRange    float64 `json:"aimAssistRange"`
	SteerStrength     float64 `json:"steerStrength"`
	SteerRange        float64 `json:"steerRange"`
}

// CameraConfig contains the follow rig tunables
type CameraConfig struct {
	OffsetX      float64 `json:"offsetX"`
	OffsetY      float64 `json:"offsetY"`
	OffsetZ      float64 `json:"offsetZ"`
	PositionRate float64 `json:"positionRate"`
	LookRate     float64 `json:"lookRate"`
}

// JuiceConfig contains the combat feedback tunables
type JuiceConfig struct {
	HitstopDuration float64 `json:"hitstopDuration"`
	ShakeIntensity  float64 `json:"shakeIntensity"`
	ShakeDuration   float64 `json:"shakeDuration"`
	ShakeDecay      float64 `json:"shakeDecay"`
	SlowMoFactor    float64 `json:"slowMoFactor"`
	SlowMoDuration  float64 `json:"slowMoDuration"`
}

// ComputeConfig contains the dispatch backend tunables
type ComputeConfig struct {
	Workers int `json:"workers"`
}

// TargetConfig places one destructible target in the scene
type TargetConfig struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Health int     `json:"health"`
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SceneConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *SceneConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default scene configuration
func DefaultConfig() *SceneConfig {
	return &SceneConfig{
		FrameRate: 60,
		Galaxy: GalaxyConfig{
			ParticleCount: 200000,
			Radius:        60,
			ArmCount:      4,
			Tightness:     1.2,
			ArmWidth:      3,
			Thickness:     4,
			Randomness:    0.35,
			RotationScale: 0.6,
			OrbitSpeed:    8,
			InsideColor:   "#ff8030",
			OutsideColor:  "#3060ff",
		},
		Terrain: TerrainConfig{
			Width:        400,
			Depth:        400,
			SegmentsX:    100,
			SegmentsZ:    100,
			NoiseSeed:    1337,
			Octaves:      5,
			Frequency:    0.012,
			Amplitude:    1,
			Lacunarity:   2,
			Persistence:  0.5,
			HeightScale:  18,
			HeightOffset: -0.2,
			Biomes: BiomeConfig{
				WaterEnd:   -4,
				SandStart:  -3,
				SandEnd:    -1,
				GrassStart: 0,
				GrassEnd:   6,
				RockStart:  9,
				WaterColor: "#1a4a80",
				SandColor:  "#c9b578",
				GrassColor: "#3f7a2f",
				RockColor:  "#6b6560",
			},
		},
		Ship: ShipConfig{
			Thrust:           40,
			SprintMultiplier: 2.2,
			MaxSpeed:         35,
			Damping:          1.8,
			StartHeight:      12,
		},
		Tether: TetherConfig{
			ChainRestLength:   9,
			ChainMinLength:    2.5,
			ReelSpeed:         10,
			ExtendSpeed:       6,
			AnchorMass:        4,
			AnchorRadius:      1.2,
			Stiffness:         55,
			Damping:           6,
			GravityStrength:   30,
			TrailLength:       8,
			TrailFalloff:      0.65,
			AimAssistStrength: 24,
			AimAssistRange:    14,
			SteerStrength:     10,
			SteerRange:        20,
		},
		Camera: CameraConfig{
			OffsetX:      0,
			OffsetY:      10,
			OffsetZ:      -16,
			PositionRate: 4,
			LookRate:     7,
		},
		Juice: JuiceConfig{
			HitstopDuration: 0.08,
			ShakeIntensity:  0.3,
			ShakeDuration:   0.35,
			ShakeDecay:      0.88,
			SlowMoFactor:    0.25,
			SlowMoDuration:  0.9,
		},
		Compute: ComputeConfig{
			Workers: 0, // 0 selects GOMAXPROCS
		},
		Targets: []TargetConfig{
			{X: 25, Y: 2, Z: 10, Health: 3},
			{X: -18, Y: 2, Z: 30, Health: 3},
			{X: 5, Y: 2, Z: -40, Health: 5},
		},
	}
}

// ApplyEnvironmentOverrides replaces selected fields from environment
// variables, mirroring how deployments tune the scene without editing the
// config file. Unset or malformed values leave the field untouched.
func ApplyEnvironmentOverrides(config *SceneConfig) {
	if v, ok := intFromEnv("GALAXYGPU_COMPUTE_WORKERS"); ok {
		config.Compute.Workers = v
	}
	if v, ok := intFromEnv("GALAXYGPU_FRAME_RATE"); ok && v > 0 {
		config.FrameRate = v
	}
	if v, ok := intFromEnv("GALAXYGPU_PARTICLE_COUNT"); ok && v > 0 {
		config.Galaxy.ParticleCount = v
	}
}

func intFromEnv(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Validate reports configuration oddities as warnings without rejecting the
// config. The simulation runs whatever the formulas produce for misordered
// biome bands or degenerate counts; tunables are art parameters, not a
// contract.
func Validate(config *SceneConfig) []string {
	var warnings []string

	b := config.Terrain.Biomes
	thresholds := []float64{b.WaterEnd, b.SandStart, b.SandEnd, b.GrassStart, b.GrassEnd, b.RockStart}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] < thresholds[i-1] {
			warnings = append(warnings, fmt.Sprintf(
				"biome thresholds not ascending at index %d (%.3f < %.3f); blend order stays water,sand,grass,rock",
				i, thresholds[i], thresholds[i-1]))
			break
		}
	}
	if config.Terrain.Octaves <= 0 {
		warnings = append(warnings, "terrain octaves <= 0: height field will be flat")
	}
	if config.Galaxy.ParticleCount <= 0 {
		warnings = append(warnings, "galaxy particleCount <= 0: particle field will be empty")
	}
	if config.Tether.ChainMinLength > config.Tether.ChainRestLength {
		warnings = append(warnings, "tether chainMinLength exceeds chainRestLength: reel input will lengthen the chain")
	}
	return warnings
}
