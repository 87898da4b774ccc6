package sceneio

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/internal/engine/material"
	"github.com/Faultbox/sceneview/internal/engine/mesh"
	"github.com/Faultbox/sceneview/internal/engine/meshio"
	"github.com/Faultbox/sceneview/internal/engine/scene"
	"github.com/Faultbox/sceneview/internal/logger"
	"github.com/Faultbox/sceneview/pkg/math"
)

// DefaultSegments is the sweep resolution of shapes that do not set one.
const DefaultSegments = 32

// defaultLightDistance places angle-specified lights without a distance.
const defaultLightDistance = 20

// LoadFunc reads a mesh file.
type LoadFunc func(path string) (*mesh.TriangleMesh, error)

// Builder turns descriptions into scenes.
type Builder struct {
	// BaseDir resolves relative mesh file paths.
	BaseDir string
	// Load reads mesh files; nil selects meshio.Load.
	Load LoadFunc
	// Workers bounds concurrent file loads; zero means GOMAXPROCS.
	Workers int
}

// Load reads the description at path and builds it with mesh files
// resolved relative to the description.
func Load(ctx context.Context, path string) (*scene.Scene, *Description, error) {
	d, err := ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	b := Builder{BaseDir: filepath.Dir(path)}
	sc, err := b.Build(ctx, d)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, d, nil
}

// Build creates the scene for d. Every mesh file is loaded completely,
// concurrently, before any actor is created; the first failure cancels
// the remaining loads.
func (b Builder) Build(ctx context.Context, d *Description) (*scene.Scene, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	log := logger.Named("sceneio")

	meshes, err := b.loadMeshes(ctx, d.Meshes)
	if err != nil {
		return nil, err
	}

	materials := make(map[string]*material.Material, len(d.Materials))
	for _, m := range d.Materials {
		materials[m.Name] = material.New(m.Name, color(m.Color, math.White))
	}

	sc := scene.New(d.Name)
	sc.BackgroundColor = color(d.Background, sc.BackgroundColor)
	sc.AmbientLight = color(d.Ambient, sc.AmbientLight)

	for _, l := range d.Lights {
		sc.AddLight(light(l))
	}

	for _, a := range d.Actors {
		mat := materials[a.Material] // nil selects the default material
		actor := sc.Add(meshes[a.Mesh], mat)
		actor.Model().SetMatrix(
			vec3(a.Position, math.Vec3Zero),
			rotation(a.Rotation),
			vec3(a.Scale, math.Vec3One),
		)
		actor.SetVisible(!a.Hidden)
	}

	log.Info("scene built",
		zap.String("name", d.Name),
		zap.Int("meshes", len(meshes)),
		zap.Int("actors", sc.NumActors()),
		zap.Int("lights", sc.NumLights()),
	)
	return sc, nil
}

func (b Builder) loadMeshes(ctx context.Context, descs []MeshDesc) (map[string]*mesh.TriangleMesh, error) {
	load := b.Load
	if load == nil {
		load = meshio.Load
	}
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	loaded := make([]*mesh.TriangleMesh, len(descs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, md := range descs {
		if md.File == "" {
			loaded[i] = shape(md)
			continue
		}
		path := md.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(b.BaseDir, path)
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := load(path)
			if err != nil {
				return fmt.Errorf("mesh %q: %w", md.Name, err)
			}
			loaded[i] = m
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	meshes := make(map[string]*mesh.TriangleMesh, len(descs))
	for i, md := range descs {
		meshes[md.Name] = loaded[i]
	}
	return meshes, nil
}

func shape(md MeshDesc) *mesh.TriangleMesh {
	n := md.Segments
	if n <= 0 {
		n = DefaultSegments
	}
	switch md.Shape {
	case "sphere":
		return mesh.Sphere(n)
	case "cone":
		return mesh.Cone(n)
	case "cylinder":
		return mesh.Cylinder(n)
	default:
		return mesh.Cube()
	}
}

func light(l LightDesc) *lighting.Light {
	c := color(l.Color, math.White)
	if len(l.Position) == 3 {
		return &lighting.Light{Name: l.Name, Position: vec3(l.Position, math.Vec3Zero), Color: c}
	}
	dist := l.Distance
	if dist <= 0 {
		dist = defaultLightDistance
	}
	return lighting.FromAngles(l.Name, l.Azimuth, l.Elevation, dist, c)
}

// ApplyCamera configures cam from c. bounds is framed when c.Fit is set.
func ApplyCamera(c *CameraDesc, cam *camera.Camera, bounds math.Bounds3) {
	if c == nil {
		return
	}
	if c.ViewAngle > 0 {
		cam.SetViewAngle(c.ViewAngle)
	}
	if len(c.Position) == 3 {
		cam.SetPosition(vec3(c.Position, math.Vec3Zero))
	}
	if len(c.FocalPoint) == 3 {
		cam.SetFocalPoint(vec3(c.FocalPoint, math.Vec3Zero))
	}
	if len(c.ViewUp) == 3 {
		cam.SetViewUp(vec3(c.ViewUp, math.Vec3Up))
	}
	if c.Fit {
		cam.FitBounds(bounds)
	}
	if c.Projection == "orthographic" {
		cam.SetProjectionType(camera.Orthographic)
	}
}

func vec3(v []float32, def math.Vec3) math.Vec3 {
	if len(v) != 3 {
		return def
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func color(v []float32, def math.Color) math.Color {
	switch len(v) {
	case 3:
		return math.RGB(v[0], v[1], v[2])
	case 4:
		return math.Color{R: v[0], G: v[1], B: v[2], A: v[3]}
	default:
		return def
	}
}

func rotation(r *RotationDesc) math.Quat {
	if r == nil || len(r.Axis) != 3 || r.Angle == 0 {
		return math.QuatIdentity()
	}
	return math.QuatFromAxisDegrees(vec3(r.Axis, math.Vec3Up), r.Angle)
}
