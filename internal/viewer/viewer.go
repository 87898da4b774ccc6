// Package viewer runs the interactive window loop: poll input, apply the
// controls, render, present.
package viewer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/config"
	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/controls"
	"github.com/Faultbox/sceneview/internal/engine/debug"
	"github.com/Faultbox/sceneview/internal/engine/gldevice"
	"github.com/Faultbox/sceneview/internal/engine/input"
	"github.com/Faultbox/sceneview/internal/engine/renderer"
	"github.com/Faultbox/sceneview/internal/engine/scene"
	"github.com/Faultbox/sceneview/internal/engine/shader"
	"github.com/Faultbox/sceneview/internal/engine/window"
	"github.com/Faultbox/sceneview/internal/logger"
	"github.com/Faultbox/sceneview/pkg/math"
)

// App is the interactive viewer.
type App struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	device   *gldevice.Device
	renderer *renderer.Renderer
	controls *controls.Controller
	input    *input.Input
	shots    *debug.ScreenshotCapture
	log      *zap.Logger
}

// NewCamera returns a camera configured from cfg, looking at the origin
// down -Z.
func NewCamera(cfg config.CameraConfig) *camera.Camera {
	cam := camera.New()
	cam.SetViewAngle(cfg.ViewAngle)
	cam.SetClippingPlanes(cfg.Near, cfg.Far)
	cam.SetPosition(math.Vec3{Z: cfg.Distance})
	cam.SetDistance(cfg.Distance)
	if cfg.Projection == "orthographic" {
		cam.SetProjectionType(camera.Orthographic)
	}
	return cam
}

// RendererOptions converts cfg into renderer options, reading shader
// overrides from disk.
func RendererOptions(cfg config.RendererConfig, width, height int) (renderer.Options, error) {
	mode, err := renderer.ParseMode(cfg.Mode)
	if err != nil {
		return renderer.Options{}, err
	}
	vs, fs, err := shader.Sources(cfg.VertexShader, cfg.FragmentShader)
	if err != nil {
		return renderer.Options{}, err
	}

	var flags renderer.Flags
	if cfg.UseLights {
		flags |= renderer.UseLights
	}
	if cfg.DrawBounds {
		flags |= renderer.DrawSceneBounds | renderer.DrawActorBounds
	}
	if cfg.DrawNormals {
		flags |= renderer.DrawNormals
	}
	if cfg.DrawAxes {
		flags |= renderer.DrawAxes
	}

	return renderer.Options{
		VertexShader:   vs,
		FragmentShader: fs,
		Mode:           mode,
		Flags:          flags,
		ExplicitFlags:  true,
		Width:          width,
		Height:         height,
	}, nil
}

// New opens the window and creates the renderer for sc seen through cam.
func New(cfg *config.Config, sc *scene.Scene, cam *camera.Camera) (*App, error) {
	a := &App{
		cfg:   cfg,
		log:   logger.Named("viewer"),
		input: input.New(),
		shots: debug.NewScreenshotCapture(cfg.Headless.ScreenshotDir, "sceneview"),
	}
	a.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// the GL context must exist before the device
	a.device, err = gldevice.New()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	width, height := a.window.Size()
	opts, err := RendererOptions(cfg.Renderer, width, height)
	if err != nil {
		a.Close()
		return nil, err
	}
	cam.SetAspectRatio(float32(width) / float32(height))

	a.renderer, err = renderer.New(a.device, sc, cam, opts)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.controls = controls.New(a.renderer, controls.Options{
		MoveResolution:  cfg.Camera.MoveResolution,
		ZoomStep:        cfg.Camera.ZoomStep,
		AnimateInterval: cfg.Camera.AnimateInterval,
		Animate:         cfg.Camera.Animate,
	})

	a.log.Info("viewer initialized")
	return a, nil
}

// Run runs the loop until the window closes, Esc is pressed or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting render loop")

	for a.running {
		if ctx.Err() != nil {
			break
		}
		now := time.Now()

		state := a.input.Update()
		act := a.controls.Apply(state, now)
		if act.Quit {
			a.running = false
			break
		}
		if act.Screenshot {
			a.screenshot()
		}

		if err := a.renderer.Render(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("render error: %w", err)
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Object("frame", a.renderer.FrameStats()),
				zap.Object("device", a.device.Stats()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
		a.device.ResetStats()
	}
	return nil
}

// screenshot saves the last presented frame.
func (a *App) screenshot() {
	w, h := a.renderer.ImageSize()
	px, err := a.device.ReadPixels(int32(w), int32(h))
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	path, err := a.shots.Capture(px, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the renderer, the device and the window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.device != nil {
		a.device.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
