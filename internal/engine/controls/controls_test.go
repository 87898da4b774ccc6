package controls

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/mesh"
	"github.com/Faultbox/sceneview/internal/engine/renderer"
	"github.com/Faultbox/sceneview/internal/engine/scene"
	"github.com/Faultbox/sceneview/pkg/math"
)

func newController(t *testing.T, opts Options) (*Controller, *renderer.Renderer) {
	t.Helper()
	r, err := renderer.New(gpu.NewRecorder(), scene.New("test"), camera.New(), renderer.Options{Width: 640, Height: 480})
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return New(r, opts), r
}

func press(c *Controller, keys ...Key) Actions {
	return c.Apply(&State{Keys: keys}, time.Time{})
}

func TestMoveKeys(t *testing.T) {
	tests := []struct {
		key  Key
		want math.Vec3
	}{
		{'w', math.Vec3{Z: 9.9}},
		{'s', math.Vec3{Z: 10.1}},
		{'q', math.Vec3{Y: 0.1, Z: 10}},
		{'z', math.Vec3{Y: -0.1, Z: 10}},
		{'a', math.Vec3{X: -0.1, Z: 10}},
		{'d', math.Vec3{X: 0.1, Z: 10}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			c, r := newController(t, Options{})
			c.Apply(&State{Down: []Key{tt.key}}, time.Time{})
			got := r.Camera().Position()
			assert.True(t, got.ApproxEqual(tt.want, 1e-5), "got %v", got)
		})
	}
}

func TestHeldKeyMovesEveryFrame(t *testing.T) {
	c, r := newController(t, Options{})
	cam := r.Camera()

	s := &State{}
	s.Press('w')
	s.Keys = append(s.Keys, 'w')
	c.Apply(s, time.Time{})
	assert.InDelta(t, 9.9, cam.Position().Z, 1e-4, "the press event does not add a second step")

	// no further key events while the key stays down
	for range 4 {
		s.Reset()
		c.Apply(s, time.Time{})
	}
	assert.InDelta(t, 9.5, cam.Position().Z, 1e-4)

	s.Reset()
	s.Release('w')
	z := cam.Position().Z
	c.Apply(s, time.Time{})
	assert.Equal(t, z, cam.Position().Z)
}

func TestPressRelease(t *testing.T) {
	var s State
	assert.True(t, s.Press('a'))
	assert.False(t, s.Press('a'))
	assert.True(t, s.Press('d'))
	s.Release('a')
	assert.Equal(t, []Key{'d'}, s.Down)
	s.Release('x')
	assert.Equal(t, []Key{'d'}, s.Down)
}

func TestZoomKeys(t *testing.T) {
	c, r := newController(t, Options{})
	cam := r.Camera()
	angle := cam.ViewAngle()

	press(c, '+')
	assert.InDelta(t, angle/1.01, cam.ViewAngle(), 1e-4)
	press(c, '-')
	assert.InDelta(t, angle, cam.ViewAngle(), 1e-4)
}

func TestToggles(t *testing.T) {
	c, r := newController(t, Options{})

	press(c, 'b')
	assert.True(t, r.IsFlagSet(renderer.DrawSceneBounds|renderer.DrawActorBounds))
	press(c, 'b')
	assert.False(t, r.IsFlagSet(renderer.DrawSceneBounds))
	assert.False(t, r.IsFlagSet(renderer.DrawActorBounds))

	press(c, 'n', 'x')
	assert.True(t, r.IsFlagSet(renderer.DrawNormals|renderer.DrawAxes))

	press(c, ',')
	assert.Equal(t, renderer.Wireframe, r.Mode())
	press(c, '/')
	assert.Equal(t, renderer.Smooth, r.Mode())

	press(c, 'p')
	assert.Equal(t, camera.Orthographic, r.Camera().ProjectionType())

	press(c, 'o')
	assert.True(t, c.Animating())
}

func TestActions(t *testing.T) {
	c, _ := newController(t, Options{})

	assert.Equal(t, Actions{Quit: true}, press(c, KeyEscape))
	assert.Equal(t, Actions{Screenshot: true}, press(c, KeyF12))
	assert.Equal(t, Actions{Quit: true}, c.Apply(&State{Quit: true}, time.Time{}))
	assert.Equal(t, Actions{}, press(c, 'k'))
}

func TestResize(t *testing.T) {
	c, r := newController(t, Options{})
	c.Apply(&State{Width: 800, Height: 400}, time.Time{})

	w, h := r.ImageSize()
	assert.Equal(t, 800, w)
	assert.Equal(t, 400, h)
	assert.InDelta(t, 2, r.Camera().AspectRatio(), 1e-6)
}

func TestDragOrbitsAroundFocalPoint(t *testing.T) {
	c, r := newController(t, Options{})
	cam := r.Camera()
	focal := cam.FocalPoint()

	c.Apply(&State{Pressed: true, Held: true, MouseX: 100, MouseY: 100}, time.Time{})
	assert.Equal(t, math.Vec3{Z: 10}, cam.Position(), "press alone does not rotate")

	c.Apply(&State{Held: true, MouseX: 90, MouseY: 100}, time.Time{})
	assert.True(t, cam.FocalPoint().ApproxEqual(focal, 1e-4))
	assert.Greater(t, cam.Position().X, float32(0), "dragging left orbits to the right")

	// released: no more rotation
	pos := cam.Position()
	c.Apply(&State{MouseX: 50, MouseY: 50}, time.Time{})
	assert.Equal(t, pos, cam.Position())
}

func TestWheel(t *testing.T) {
	c, r := newController(t, Options{})
	cam := r.Camera()
	angle := cam.ViewAngle()

	c.Apply(&State{Wheel: 2}, time.Time{})
	assert.InDelta(t, angle/(1.01*1.01), cam.ViewAngle(), 1e-4)
	c.Apply(&State{Wheel: -2}, time.Time{})
	assert.InDelta(t, angle, cam.ViewAngle(), 1e-4)
}

func TestIdleAnimation(t *testing.T) {
	c, r := newController(t, Options{Animate: true})
	cam := r.Camera()
	start := time.Unix(0, 0)

	c.Apply(&State{}, start)
	assert.Equal(t, math.Vec3{Z: 10}, cam.Position())

	c.Apply(&State{}, start.Add(10*time.Millisecond))
	assert.Equal(t, math.Vec3{Z: 10}, cam.Position(), "before the interval elapses")

	c.Apply(&State{}, start.Add(40*time.Millisecond))
	assert.NotEqual(t, math.Vec3{Z: 10}, cam.Position())
	assert.InDelta(t, 10, cam.Position().Length(), 1e-4)
}

func TestStateReset(t *testing.T) {
	s := State{Keys: []Key{'a'}, Down: []Key{'w'}, Held: true, Pressed: true, Wheel: 3, MouseX: 4, MouseY: 5, Quit: true}
	s.Reset()
	assert.Empty(t, s.Keys)
	assert.Equal(t, []Key{'w'}, s.Down)
	assert.True(t, s.Held)
	assert.False(t, s.Pressed)
	assert.Zero(t, s.Wheel)
	assert.Equal(t, 4, s.MouseX)
	assert.False(t, s.Quit)
}

func TestPickHidesActorUnderCursor(t *testing.T) {
	c, r := newController(t, Options{})
	cube := mesh.Cube()
	front := r.Scene().Add(cube, nil)
	back := r.Scene().Add(cube, nil)
	back.Model().SetMatrix(math.Vec3{Z: -5}, math.QuatIdentity(), math.Vec3One)

	c.Apply(&State{Pick: true, MouseX: 320, MouseY: 240}, time.Time{})
	assert.False(t, front.Visible())
	assert.True(t, back.Visible())

	c.Apply(&State{Pick: true, MouseX: 320, MouseY: 240}, time.Time{})
	assert.False(t, back.Visible())

	// nothing left under the cursor
	c.Apply(&State{Pick: true, MouseX: 320, MouseY: 240}, time.Time{})

	press(c, 'u')
	assert.True(t, front.Visible())
	assert.True(t, back.Visible())
}

func TestPickMissesEmptyPixels(t *testing.T) {
	c, r := newController(t, Options{})
	a := r.Scene().Add(mesh.Cube(), nil)

	c.Apply(&State{Pick: true, MouseX: 0, MouseY: 0}, time.Time{})
	assert.True(t, a.Visible())
}
