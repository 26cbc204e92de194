// pkg/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndLoadConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")

	original := DefaultConfig()
	original.Galaxy.ParticleCount = 12345
	original.Terrain.Biomes.GrassColor = "#00ff00"

	if err := SaveConfig(original, path); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.Galaxy.ParticleCount != 12345 {
		t.Errorf("particleCount = %d, expected 12345", loaded.Galaxy.ParticleCount)
	}
	if loaded.Terrain.Biomes.GrassColor != "#00ff00" {
		t.Errorf("grassColor = %q, expected #00ff00", loaded.Terrain.Biomes.GrassColor)
	}
	if loaded.Tether.Stiffness != original.Tether.Stiffness {
		t.Errorf("stiffness = %v, expected %v", loaded.Tether.Stiffness, original.Tether.Stiffness)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestApplyEnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(*SceneConfig) bool
	}{
		{
			name:  "workers_override",
			key:   "GALAXYGPU_COMPUTE_WORKERS",
			value: "8",
			check: func(c *SceneConfig) bool { return c.Compute.Workers == 8 },
		},
		{
			name:  "frame_rate_override",
			key:   "GALAXYGPU_FRAME_RATE",
			value: "120",
			check: func(c *SceneConfig) bool { return c.FrameRate == 120 },
		},
		{
			name:  "malformed_ignored",
			key:   "GALAXYGPU_PARTICLE_COUNT",
			value: "lots",
			check: func(c *SceneConfig) bool { return c.Galaxy.ParticleCount == DefaultConfig().Galaxy.ParticleCount },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg := DefaultConfig()
			ApplyEnvironmentOverrides(cfg)
			if !tt.check(cfg) {
				t.Errorf("override for %s=%s not applied as expected", tt.key, tt.value)
			}
		})
	}
}

func TestValidate_DefaultConfigClean(t *testing.T) {
	if warnings := Validate(DefaultConfig()); len(warnings) != 0 {
		t.Errorf("default config produced warnings: %v", warnings)
	}
}

func TestValidate_Warnings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SceneConfig)
		want   string
	}{
		{
			name: "descending_biome_thresholds",
			mutate: func(c *SceneConfig) {
				c.Terrain.Biomes.SandStart = c.Terrain.Biomes.WaterEnd - 5
			},
			want: "biome thresholds not ascending",
		},
		{
			name:   "zero_octaves",
			mutate: func(c *SceneConfig) { c.Terrain.Octaves = 0 },
			want:   "octaves",
		},
		{
			name:   "inverted_chain_limits",
			mutate: func(c *SceneConfig) { c.Tether.ChainMinLength = c.Tether.ChainRestLength + 1 },
			want:   "chainMinLength",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			warnings := Validate(cfg)
			found := false
			for _, w := range warnings {
				if strings.Contains(w, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected warning containing %q, got %v", tt.want, warnings)
			}
		})
	}
}
