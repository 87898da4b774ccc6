package sceneio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/material"
	"github.com/Faultbox/sceneview/internal/engine/mesh"
	"github.com/Faultbox/sceneview/pkg/math"
)

const exampleScene = `
name: example
background: [0.1, 0.2, 0.3]
materials:
  - {name: red, color: [1, 0, 0]}
meshes:
  - {name: ball, shape: sphere, segments: 8}
  - {name: box, shape: cube}
lights:
  - {name: key, position: [0, 10, 0], color: [1, 1, 1]}
  - {name: sun, azimuth: 90, elevation: 0, distance: 5}
actors:
  - {mesh: ball, material: red, position: [3, 3, 0], scale: [1, 2, 1]}
  - {mesh: ball, position: [-3, 0, 0]}
  - mesh: box
    rotation: {axis: [0, 1, 0], angle: 90}
    hidden: true
camera:
  fit: true
`

func TestBuild(t *testing.T) {
	d, err := Parse([]byte(exampleScene))
	require.NoError(t, err)

	sc, err := Builder{}.Build(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, "example", sc.Name)
	assert.Equal(t, math.RGB(0.1, 0.2, 0.3), sc.BackgroundColor)
	require.Equal(t, 3, sc.NumActors())
	require.Equal(t, 2, sc.NumLights())

	actors := sc.Actors()
	red := actors[0].Model()
	assert.Equal(t, "red", red.Material().Name)
	assert.Equal(t, math.TRS(math.Vec3{X: 3, Y: 3}, math.QuatIdentity(), math.Vec3{X: 1, Y: 2, Z: 1}), red.Matrix())
	assert.Same(t, red.Mesh(), actors[1].Model().Mesh(), "actors share a declared mesh")
	assert.Same(t, material.Default(), actors[1].Model().Material())
	assert.False(t, actors[2].Visible())

	assert.Equal(t, math.Vec3{Y: 10}, sc.Lights()[0].Position)
	assert.True(t, sc.Lights()[1].Position.ApproxEqual(math.Vec3{X: 5}, 1e-5))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		target error
	}{
		{"unknown mesh", "actors: [{mesh: nope}]", ErrUnknownMesh},
		{"unknown material", "meshes: [{name: m, shape: cube}]\nactors: [{mesh: m, material: nope}]", ErrUnknownMaterial},
		{"shape and file", "meshes: [{name: m, shape: cube, file: a.obj}]", nil},
		{"unknown shape", "meshes: [{name: m, shape: torus}]", nil},
		{"duplicate mesh", "meshes: [{name: m, shape: cube}, {name: m, shape: cone}]", nil},
		{"short position", "meshes: [{name: m, shape: cube}]\nactors: [{mesh: m, position: [1, 2]}]", nil},
		{"bad projection", "camera: {projection: fisheye}", nil},
		{"bad yaml", "actors: [", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestLoadMeshFilesConcurrently(t *testing.T) {
	d := &Description{
		Meshes: []MeshDesc{
			{Name: "a", File: "a.obj"},
			{Name: "b", File: "/abs/b.obj"},
			{Name: "c", Shape: "cone"},
		},
		Actors: []ActorDesc{{Mesh: "a"}, {Mesh: "b"}, {Mesh: "c"}},
	}
	var calls atomic.Int32
	var paths [2]string
	b := Builder{
		BaseDir: "/scenes",
		Workers: 2,
		Load: func(path string) (*mesh.TriangleMesh, error) {
			calls.Add(1)
			if filepath.Base(path) == "a.obj" {
				paths[0] = path
			} else {
				paths[1] = path
			}
			return mesh.Cube(), nil
		},
	}

	sc, err := b.Build(context.Background(), d)
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, filepath.Join("/scenes", "a.obj"), paths[0])
	assert.Equal(t, "/abs/b.obj", paths[1])
	assert.Equal(t, 3, sc.NumActors())
}

func TestLoadFailureCancelsBuild(t *testing.T) {
	boom := errors.New("boom")
	d := &Description{
		Meshes: []MeshDesc{{Name: "a", File: "a.obj"}},
		Actors: []ActorDesc{{Mesh: "a"}},
	}
	b := Builder{Load: func(string) (*mesh.TriangleMesh, error) { return nil, boom }}

	sc, err := b.Build(context.Background(), d)
	assert.Nil(t, sc)
	assert.ErrorIs(t, err, boom)
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	obj := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri.obj"), []byte(obj), 0o644))
	desc := "name: disk\nmeshes: [{name: tri, file: tri.obj}]\nactors: [{mesh: tri}]\n"
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(desc), 0o644))

	sc, d, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "disk", d.Name)
	require.Equal(t, 1, sc.NumActors())
	assert.Equal(t, 1, sc.Actors()[0].Model().Mesh().NumTriangles())

	_, _, err = Load(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	d, err := Parse([]byte(exampleScene))
	require.NoError(t, err)
	data, err := d.Marshal()
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, d, again)
}

func TestApplyCamera(t *testing.T) {
	cam := camera.New()
	ApplyCamera(&CameraDesc{
		Position:   []float32{0, 0, 20},
		FocalPoint: []float32{0, 0, 0},
		ViewAngle:  45,
		Projection: "orthographic",
	}, cam, math.EmptyBounds())

	assert.Equal(t, math.Vec3{Z: 20}, cam.Position())
	assert.InDelta(t, 20, cam.Distance(), 1e-5)
	assert.Equal(t, float32(45), cam.ViewAngle())
	assert.Equal(t, camera.Orthographic, cam.ProjectionType())

	fit := camera.New()
	b := math.NewBounds(math.Vec3{X: 9, Y: 9, Z: 9}, math.Vec3{X: 11, Y: 11, Z: 11})
	ApplyCamera(&CameraDesc{Fit: true}, fit, b)
	assert.True(t, fit.FocalPoint().ApproxEqual(math.Vec3{X: 10, Y: 10, Z: 10}, 1e-4))

	ApplyCamera(nil, fit, b)
}

func TestDemo(t *testing.T) {
	sc := Demo()
	require.Equal(t, 5, sc.NumActors())
	assert.Zero(t, sc.NumLights())

	actors := sc.Actors()
	sphere := actors[0].Model().Mesh()
	for _, a := range actors[:4] {
		assert.Same(t, sphere, a.Model().Mesh())
	}
	assert.NotSame(t, sphere, actors[4].Model().Mesh())

	colors := []math.Color{math.Yellow, math.Green, math.Red, math.Blue, math.White}
	for i, a := range actors {
		assert.Equal(t, material.New("", colors[i]).Diffuse, a.Model().Material().Diffuse)
	}
	assert.Equal(t, math.Vec3{X: 2, Y: -4, Z: -10}, actors[4].Model().Matrix().Translation())
	assert.Equal(t, math.Vec3{X: 3, Y: -3}, actors[1].Model().Matrix().Translation())
}
