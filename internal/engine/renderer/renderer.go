// Package renderer draws a scene through a gpu.Device: one lit shading
// program, a smooth/wireframe mode switch and a set of debug overlays.
package renderer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/mesh"
	"github.com/Faultbox/sceneview/internal/engine/scene"
	"github.com/Faultbox/sceneview/internal/engine/shader"
	"github.com/Faultbox/sceneview/internal/engine/vertexarray"
	"github.com/Faultbox/sceneview/internal/logger"
	"github.com/Faultbox/sceneview/pkg/math"
)

// ErrReentrant is returned by Render when called while a frame is in progress.
var ErrReentrant = errors.New("render already in progress")

// Mode is the rasterization mode.
type Mode int

const (
	Smooth Mode = iota
	Wireframe
)

func (m Mode) String() string {
	switch m {
	case Smooth:
		return "smooth"
	case Wireframe:
		return "wireframe"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "smooth" or "wireframe" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "smooth", "":
		return Smooth, nil
	case "wireframe":
		return Wireframe, nil
	default:
		return Smooth, fmt.Errorf("unknown render mode %q", s)
	}
}

// Flags is a set of independent rendering toggles.
type Flags uint32

const (
	// UseLights enables the diffuse term; without it only ambient light shades.
	UseLights Flags = 1 << iota
	DrawActorBounds
	DrawSceneBounds
	DrawNormals
	DrawAxes
)

// DefaultFlags is the flag set of a new renderer when Options.Flags is zero
// and Options.ExplicitFlags is unset.
const DefaultFlags = UseLights

// Options configures a Renderer.
type Options struct {
	// Shader sources; empty selects the built-in lit program.
	VertexShader   string
	FragmentShader string

	Mode          Mode
	Flags         Flags
	// ExplicitFlags makes a zero Flags mean no flags rather than DefaultFlags.
	ExplicitFlags bool

	// Output size in pixels.
	Width, Height int

	// GlyphSegments is the resolution of the cone used for vector glyphs.
	GlyphSegments int

	Logger *zap.Logger
}

// FrameStats describes the last frame.
type FrameStats struct {
	ActorsDrawn   int
	ActorsSkipped int // visible but without drawable geometry
	ActorsHidden  int
	Aborted       bool
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (f FrameStats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("drawn", f.ActorsDrawn)
	enc.AddInt("skipped", f.ActorsSkipped)
	enc.AddInt("hidden", f.ActorsHidden)
	enc.AddBool("aborted", f.Aborted)
	return nil
}

type uniforms struct {
	viewProjection     gpu.Uniform
	modelMatrix        gpu.Uniform
	ambientReflectance gpu.Uniform
	diffuseReflectance gpu.Uniform
	ambientLight       gpu.Uniform
	lightPosition      gpu.Uniform
	lightColor         gpu.Uniform
}

// Renderer draws one scene from one camera.
type Renderer struct {
	dev    gpu.Device
	scene  *scene.Scene
	camera *camera.Camera
	cache  *vertexarray.Cache
	log    *zap.Logger

	program gpu.Program
	loc     uniforms

	// cone is the glyph drawn at the tip of normals and axes.
	cone *mesh.TriangleMesh

	mode          Mode
	flags         Flags
	width, height int32

	vp        math.Mat4
	rendering bool
	frame     FrameStats
	points    []math.Vec4
}

// New compiles the shading program and prepares the glyph geometry.
// A nil scene or camera is replaced by an empty scene or a default camera.
// On error every resource created so far has been released.
func New(dev gpu.Device, sc *scene.Scene, cam *camera.Camera, opts Options) (*Renderer, error) {
	if dev == nil {
		return nil, errors.New("renderer: nil device")
	}
	if sc == nil {
		sc = scene.New("")
	}
	if cam == nil {
		cam = camera.New()
	}
	if opts.Flags == 0 && !opts.ExplicitFlags {
		opts.Flags = DefaultFlags
	}
	if opts.GlyphSegments <= 0 {
		opts.GlyphSegments = 16
	}
	vs, fs := opts.VertexShader, opts.FragmentShader
	if vs == "" {
		vs = shader.LitVertexSource
	}
	if fs == "" {
		fs = shader.LitFragmentSource
	}
	log := opts.Logger
	if log == nil {
		log = logger.Named("renderer")
	}

	r := &Renderer{
		dev:    dev,
		scene:  sc,
		camera: cam,
		cache:  vertexarray.New(dev),
		log:    log,
		cone:   mesh.Cone(opts.GlyphSegments),
		flags:  opts.Flags,
		width:  int32(opts.Width),
		height: int32(opts.Height),
	}
	r.SetMode(opts.Mode)

	program, err := dev.CreateProgram(vs, fs)
	if err != nil {
		return nil, fmt.Errorf("renderer: create program: %w", err)
	}
	r.program = program
	r.loc = uniforms{
		viewProjection:     r.uniform(shader.ViewProjection),
		modelMatrix:        r.uniform(shader.ModelMatrix),
		ambientReflectance: r.uniform(shader.AmbientReflectance),
		diffuseReflectance: r.uniform(shader.DiffuseReflectance),
		ambientLight:       r.uniform(shader.AmbientLight),
		lightPosition:      r.uniform(shader.LightPosition),
		lightColor:         r.uniform(shader.LightColor),
	}

	if _, err := r.cache.Acquire(r.cone); err != nil {
		r.Close()
		return nil, fmt.Errorf("renderer: glyph mesh: %w", err)
	}

	r.log.Info("renderer created",
		zap.Stringer("mode", r.mode),
		zap.Uint32("flags", uint32(r.flags)),
		zap.Int32("width", r.width),
		zap.Int32("height", r.height),
	)
	return r, nil
}

func (r *Renderer) uniform(name string) gpu.Uniform {
	u := r.dev.UniformLocation(r.program, name)
	if u == gpu.NoUniform {
		r.log.Warn("shader uniform not found", zap.String("name", name))
	}
	return u
}

// Close releases the cached meshes and the program. The renderer must not
// be used afterwards.
func (r *Renderer) Close() {
	r.cache.ReleaseAll()
	if r.program != 0 {
		r.dev.DeleteProgram(r.program)
		r.program = 0
	}
}

// Device returns the device the renderer draws with.
func (r *Renderer) Device() gpu.Device { return r.dev }

// Camera returns the camera.
func (r *Renderer) Camera() *camera.Camera { return r.camera }

// Scene returns the scene.
func (r *Renderer) Scene() *scene.Scene { return r.scene }

// SetScene replaces the scene and drops every cached mesh.
func (r *Renderer) SetScene(sc *scene.Scene) {
	if sc == nil || sc == r.scene {
		return
	}
	r.cache.ReleaseAll()
	r.scene = sc
}

// ReleaseMesh frees the device buffers of m. Call it before discarding a
// mesh that stays out of the scene.
func (r *Renderer) ReleaseMesh(m *mesh.TriangleMesh) bool {
	return r.cache.Release(m)
}

// CachedMeshes returns the number of meshes with uploaded buffers.
func (r *Renderer) CachedMeshes() int { return r.cache.Len() }

// MeshBuilds returns how many mesh uploads the renderer has performed.
func (r *Renderer) MeshBuilds() int { return r.cache.Builds() }

// Mode returns the rasterization mode.
func (r *Renderer) Mode() Mode { return r.mode }

// SetMode switches the rasterization mode. Unknown modes are ignored.
func (r *Renderer) SetMode(m Mode) {
	if m != Smooth && m != Wireframe {
		return
	}
	r.mode = m
}

// Flags returns the current flag set.
func (r *Renderer) Flags() Flags { return r.flags }

// IsFlagSet reports whether every flag in f is set.
func (r *Renderer) IsFlagSet(f Flags) bool { return r.flags&f == f }

// EnableFlag sets or clears f.
func (r *Renderer) EnableFlag(f Flags, on bool) {
	if on {
		r.flags |= f
	} else {
		r.flags &^= f
	}
}

// ToggleFlag flips f.
func (r *Renderer) ToggleFlag(f Flags) { r.flags ^= f }

// SetImageSize sets the output size in pixels. Non-positive sizes are ignored.
func (r *Renderer) SetImageSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width = int32(width)
	r.height = int32(height)
}

// ImageSize returns the output size in pixels.
func (r *Renderer) ImageSize() (width, height int) {
	return int(r.width), int(r.height)
}

// FrameStats returns the statistics of the last frame.
func (r *Renderer) FrameStats() FrameStats { return r.frame }
