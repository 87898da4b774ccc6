// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Renderer RendererConfig `yaml:"renderer"`
	Scene    SceneConfig    `yaml:"scene"`
	Headless HeadlessConfig `yaml:"headless"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the initial camera and navigation settings.
type CameraConfig struct {
	ViewAngle       float32       `yaml:"view_angle"`
	Near            float32       `yaml:"near"`
	Far             float32       `yaml:"far"`
	Distance        float32       `yaml:"distance"`
	Projection      string        `yaml:"projection"` // perspective or orthographic
	MoveResolution  float32       `yaml:"move_resolution"`
	ZoomStep        float32       `yaml:"zoom_step"`
	AnimateInterval time.Duration `yaml:"animate_interval"`
	Animate         bool          `yaml:"animate"`
}

// RendererConfig holds rendering mode, debug overlays and shader overrides.
type RendererConfig struct {
	Mode           string `yaml:"mode"` // smooth or wireframe
	UseLights      bool   `yaml:"use_lights"`
	DrawBounds     bool   `yaml:"draw_bounds"`
	DrawNormals    bool   `yaml:"draw_normals"`
	DrawAxes       bool   `yaml:"draw_axes"`
	VertexShader   string `yaml:"vertex_shader"`   // file path, empty for built-in
	FragmentShader string `yaml:"fragment_shader"` // file path, empty for built-in
}

// SceneConfig selects the scene to show.
type SceneConfig struct {
	Path string `yaml:"path"` // YAML scene description, empty for the demo
}

// HeadlessConfig holds settings for rendering without a window.
type HeadlessConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Frames        int           `yaml:"frames"`
	Deadline      time.Duration `yaml:"deadline"`
	Orbit         float32       `yaml:"orbit"`
	ScreenshotDir string        `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "SceneView",
			Width:      1024,
			Height:     768,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			ViewAngle:       60,
			Near:            0.01,
			Far:             1000,
			Distance:        10,
			Projection:      "perspective",
			MoveResolution:  0.01,
			ZoomStep:        1.01,
			AnimateInterval: 40 * time.Millisecond,
		},
		Renderer: RendererConfig{
			Mode:      "smooth",
			UseLights: true,
		},
		Headless: HeadlessConfig{
			Frames:   1,
			Deadline: time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: invalid size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Camera.ViewAngle <= 0 || c.Camera.ViewAngle >= 180 {
		errs = append(errs, fmt.Errorf("camera: view_angle %g outside (0, 180)", c.Camera.ViewAngle))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: invalid clipping planes near=%g far=%g", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Distance <= 0 {
		errs = append(errs, fmt.Errorf("camera: distance %g must be positive", c.Camera.Distance))
	}
	switch c.Camera.Projection {
	case "perspective", "orthographic":
	default:
		errs = append(errs, fmt.Errorf("camera: unknown projection %q", c.Camera.Projection))
	}
	if c.Camera.MoveResolution <= 0 {
		errs = append(errs, fmt.Errorf("camera: move_resolution %g must be positive", c.Camera.MoveResolution))
	}
	if c.Camera.ZoomStep <= 1 {
		errs = append(errs, fmt.Errorf("camera: zoom_step %g must be greater than 1", c.Camera.ZoomStep))
	}
	if c.Camera.AnimateInterval <= 0 {
		errs = append(errs, fmt.Errorf("camera: animate_interval %v must be positive", c.Camera.AnimateInterval))
	}
	switch c.Renderer.Mode {
	case "smooth", "wireframe":
	default:
		errs = append(errs, fmt.Errorf("renderer: unknown mode %q", c.Renderer.Mode))
	}
	if c.Headless.Frames < 0 {
		errs = append(errs, fmt.Errorf("headless: negative frame count %d", c.Headless.Frames))
	}
	if c.Headless.Deadline < 0 {
		errs = append(errs, fmt.Errorf("headless: negative deadline %v", c.Headless.Deadline))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error", "":
	default:
		errs = append(errs, fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}
	return errors.Join(errs...)
}
