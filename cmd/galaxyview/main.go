// cmd/galaxyview/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/JTStephens18/galaxyGPU/pkg/config"
	"github.com/JTStephens18/galaxyGPU/pkg/logging"
	engorender "github.com/JTStephens18/galaxyGPU/pkg/render/engo"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flag.Parse()

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

	config.ApplyEnvironmentOverrides(sceneConfig)

	// Blocks until the window closes.
	engorender.Run(sceneConfig, *width, *height, *fullscreen)
}
