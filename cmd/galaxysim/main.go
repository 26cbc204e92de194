// cmd/galaxysim/main.go
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JTStephens18/galaxyGPU/pkg/config"
	"github.com/JTStephens18/galaxyGPU/pkg/engine"
	"github.com/JTStephens18/galaxyGPU/pkg/input"
	"github.com/JTStephens18/galaxyGPU/pkg/logging"
	"github.com/JTStephens18/galaxyGPU/pkg/render"
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	frames := flag.Int("frames", 0, "Stop after this many frames (0 runs until interrupted)")
	flag.Parse()

	// Create default configuration file if requested
	if *createDefault {
		defaultConfig := config.DefaultConfig()
		if err := config.SaveConfig(defaultConfig, *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	// Load configuration
	var sceneConfig *config.SceneConfig

	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", *configPath,
		)
		sceneConfig = config.DefaultConfig()
	} else {
		sceneConfig, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
	}

	// Apply environment variable overrides
	config.ApplyEnvironmentOverrides(sceneConfig)

	scene, err := engine.NewScene(sceneConfig)
	if err != nil {
		logger.Error(ctx, "Failed to build scene", err)
		os.Exit(1)
	}

	if err := scene.Start(ctx); err != nil {
		logger.Error(ctx, "Failed to start scene", err)
		os.Exit(1)
	}

	renderer := render.NewNullRenderer()

	frameRate := sceneConfig.FrameRate
	if frameRate <= 0 {
		frameRate = 60
	}
	frameDuration := time.Second / time.Duration(frameRate)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info(ctx, "Starting frame loop",
		"frame_rate", frameRate,
		"frame_limit", *frames,
	)

	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	last := time.Now()
loop:
	for {
		select {
		case <-sigChan:
			logger.Info(ctx, "Interrupt received, shutting down")
			break loop
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			scene.Update(ctx, dt, input.State{}, nil)
			scene.Render(renderer)

			if *frames > 0 && scene.Stats().Tick >= uint64(*frames) {
				break loop
			}
		}
	}

	scene.Stop()

	stats := scene.Stats()
	logger.Info(ctx, "Scene finished",
		"ticks", stats.Tick,
		"elapsed_seconds", stats.Elapsed,
		"dispatch_failures", stats.DispatchFailures,
		"targets_destroyed", stats.TargetsDestroyed,
	)
}
