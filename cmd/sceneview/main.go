// Package main is the entry point for the SceneView viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/batch"
	"github.com/Faultbox/sceneview/internal/config"
	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/controls"
	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/scene"
	"github.com/Faultbox/sceneview/internal/logger"
	"github.com/Faultbox/sceneview/internal/sceneio"
	"github.com/Faultbox/sceneview/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== SceneView ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("sceneview failed", zap.Error(err))
		stop()
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("sceneview closed normally")
}

func run(ctx context.Context, cfg *config.Config) error {
	sc, cam, err := loadScene(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.Headless.Enabled {
		opts, err := viewer.RendererOptions(cfg.Renderer, cfg.Window.Width, cfg.Window.Height)
		if err != nil {
			return err
		}
		_, err = batch.Run(ctx, gpu.NewRecorder(), sc, cam, batch.Options{
			Frames:        cfg.Headless.Frames,
			Deadline:      cfg.Headless.Deadline,
			Orbit:         cfg.Headless.Orbit,
			ScreenshotDir: cfg.Headless.ScreenshotDir,
			Renderer:      opts,
		})
		return err
	}

	app, err := viewer.New(cfg, sc, cam)
	if err != nil {
		return err
	}
	defer app.Close()

	fmt.Println(controls.Help)
	return app.Run(ctx)
}

// loadScene returns the configured scene, or the demo scene, and a camera
// set up for it.
func loadScene(ctx context.Context, cfg *config.Config) (*scene.Scene, *camera.Camera, error) {
	cam := viewer.NewCamera(cfg.Camera)
	if cfg.Scene.Path == "" {
		return sceneio.Demo(), cam, nil
	}

	sc, desc, err := sceneio.Load(ctx, cfg.Scene.Path)
	if err != nil {
		return nil, nil, err
	}
	sceneio.ApplyCamera(desc.Camera, cam, sc.Bounds())
	return sc, cam, nil
}
