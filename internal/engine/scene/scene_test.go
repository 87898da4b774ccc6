package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/internal/engine/material"
	"github.com/Faultbox/sceneview/internal/engine/mesh"
	"github.com/Faultbox/sceneview/pkg/math"
)

func TestEmptySceneBounds(t *testing.T) {
	s := New("empty")
	assert.True(t, s.Bounds().IsEmpty())
	assert.Zero(t, s.NumActors())
	assert.Zero(t, s.NumLights())
}

func TestBoundsFollowMutations(t *testing.T) {
	s := New("test")
	cube := mesh.Cube()

	a := s.Add(cube, nil)
	assert.Equal(t, cube.Bounds(), s.Bounds())

	b := s.Add(cube, nil)
	b.Model().SetMatrix(math.Vec3{X: 10}, math.QuatIdentity(), math.Vec3One)
	want := math.NewBounds(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 11, Y: 1, Z: 1})
	assert.Equal(t, want, s.Bounds())

	require.True(t, s.RemoveActor(a))
	want = math.NewBounds(math.Vec3{X: 9, Y: -1, Z: -1}, math.Vec3{X: 11, Y: 1, Z: 1})
	assert.Equal(t, want, s.Bounds())

	b.Model().SetMesh(nil)
	assert.True(t, s.Bounds().IsEmpty())
}

func TestBoundsIncludeInvisibleActors(t *testing.T) {
	s := New("test")
	a := s.Add(mesh.Cube(), nil)
	a.SetVisible(false)
	assert.False(t, s.Bounds().IsEmpty())
}

func TestAddActorIgnoresDuplicates(t *testing.T) {
	s := New("test")
	a := NewActor(NewPrimitive(mesh.Cube(), nil))
	s.AddActor(a)
	s.AddActor(a)
	s.AddActor(nil)
	assert.Equal(t, 1, s.NumActors())

	assert.True(t, s.RemoveActor(a))
	assert.False(t, s.RemoveActor(a))
}

func TestActorOrderIsInsertionOrder(t *testing.T) {
	s := New("test")
	var want []*Actor
	for i := 0; i < 4; i++ {
		want = append(want, s.Add(mesh.Cube(), nil))
	}
	assert.Equal(t, want, s.Actors())
}

func TestLights(t *testing.T) {
	s := New("test")
	l1 := lighting.Default()
	l2 := lighting.Default()
	s.AddLight(l1)
	s.AddLight(l2)
	s.AddLight(nil)
	require.Equal(t, 2, s.NumLights())

	assert.True(t, s.RemoveLight(l2))
	assert.False(t, s.RemoveLight(l2))
	assert.Equal(t, []*lighting.Light{l1}, s.Lights())
}

func TestClear(t *testing.T) {
	s := New("test")
	s.Add(mesh.Cube(), nil)
	s.AddLight(lighting.Default())
	s.Clear()
	assert.Zero(t, s.NumActors())
	assert.Zero(t, s.NumLights())
	assert.True(t, s.Bounds().IsEmpty())
}

func TestPrimitiveMaterialNeverNil(t *testing.T) {
	p := NewPrimitive(nil, nil)
	assert.Same(t, material.Default(), p.Material())

	red := material.New("red", math.Red)
	p.SetMaterial(red)
	assert.Same(t, red, p.Material())

	p.SetMaterial(nil)
	assert.Same(t, material.Default(), p.Material())
}

func TestPrimitiveBoundsWithoutMesh(t *testing.T) {
	p := NewPrimitive(nil, nil)
	assert.True(t, p.Bounds().IsEmpty())
	assert.Equal(t, math.Identity(), p.Matrix())
}

func TestSharedMaterial(t *testing.T) {
	s := New("test")
	m := material.New("shared", math.Green)
	a := s.Add(mesh.Cube(), m)
	b := s.Add(mesh.Sphere(8), m)
	assert.Same(t, a.Model().Material(), b.Model().Material())
}
