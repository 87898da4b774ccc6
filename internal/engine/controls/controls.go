// Package controls maps user input onto camera movement and renderer
// toggles. It knows nothing about the windowing system: the input package
// fills a State each frame and the Controller applies it.
package controls

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/picking"
	"github.com/Faultbox/sceneview/internal/engine/renderer"
	"github.com/Faultbox/sceneview/internal/logger"
)

// Key is a pressed key: its character for printable keys, or one of the
// special key constants.
type Key rune

const (
	KeyEscape Key = 0x1b
	KeyF12    Key = 0xf00c
)

// Help lists the key bindings.
const Help = `Controls:
  w/s      move forward/backward
  q/z      move up/down
  a/d      move left/right
  +/-      zoom in/out
  drag     orbit around the focal point
  wheel    zoom
  rclick   hide the actor under the cursor
  u        show all actors
  p        toggle perspective/orthographic projection
  b        toggle bounding boxes
  n        toggle normals
  x        toggle actor axes
  ,        wireframe mode
  /        smooth mode
  o        toggle animation
  F12      screenshot
  Esc      quit`

// State is the input gathered during one frame.
type State struct {
	// Keys are the key presses of this frame, auto-repeats included.
	Keys []Key
	// Down are the keys held at the end of the frame. Movement keys act
	// once per frame while held.
	Down []Key

	MouseX, MouseY int
	// Pressed is set when the left button went down this frame.
	Pressed bool
	// Held is set while the left button is down.
	Held bool
	// Pick is set when the right button went down this frame.
	Pick bool
	// Wheel is the sum of wheel steps; positive is away from the user.
	Wheel int

	// Width and Height are the new window size after a resize, zero otherwise.
	Width, Height int

	Quit bool
}

// Reset clears the per-frame fields. Held, Down and the mouse position
// are kept.
func (s *State) Reset() {
	*s = State{Keys: s.Keys[:0], Down: s.Down, Held: s.Held, MouseX: s.MouseX, MouseY: s.MouseY}
}

// Press marks k as held. It reports false when k already was.
func (s *State) Press(k Key) bool {
	for _, d := range s.Down {
		if d == k {
			return false
		}
	}
	s.Down = append(s.Down, k)
	return true
}

// Release marks k as no longer held.
func (s *State) Release(k Key) {
	for i, d := range s.Down {
		if d == k {
			s.Down = append(s.Down[:i], s.Down[i+1:]...)
			return
		}
	}
}

// Actions reports what the caller must do after Apply.
type Actions struct {
	Quit       bool
	Screenshot bool
}

// Options tunes the controller.
type Options struct {
	// MoveResolution scales key moves by the camera distance.
	MoveResolution float32
	// RotateResolution scales drag rotation by the view angle.
	RotateResolution float32
	// ZoomStep is the factor applied per zoom key or wheel step.
	ZoomStep float32
	// AnimateInterval is the period of the idle azimuth animation.
	AnimateInterval time.Duration
	Animate         bool
}

// DefaultOptions returns the stock bindings.
func DefaultOptions() Options {
	return Options{
		MoveResolution:   0.01,
		RotateResolution: 0.01,
		ZoomStep:         1.01,
		AnimateInterval:  40 * time.Millisecond,
	}
}

// Controller drives a renderer and its camera.
type Controller struct {
	r    *renderer.Renderer
	opts Options
	log  *zap.Logger

	x0, y0      int
	animating   bool
	lastAnimate time.Time
}

// New returns a controller for r. Zero option fields take their defaults.
func New(r *renderer.Renderer, opts Options) *Controller {
	def := DefaultOptions()
	if opts.MoveResolution <= 0 {
		opts.MoveResolution = def.MoveResolution
	}
	if opts.RotateResolution <= 0 {
		opts.RotateResolution = def.RotateResolution
	}
	if opts.ZoomStep <= 1 {
		opts.ZoomStep = def.ZoomStep
	}
	if opts.AnimateInterval <= 0 {
		opts.AnimateInterval = def.AnimateInterval
	}
	return &Controller{
		r:         r,
		opts:      opts,
		log:       logger.Named("controls"),
		animating: opts.Animate,
	}
}

// Animating reports whether the idle animation runs.
func (c *Controller) Animating() bool { return c.animating }

func (c *Controller) camera() *camera.Camera { return c.r.Camera() }

// Apply applies one frame of input at time now.
func (c *Controller) Apply(s *State, now time.Time) Actions {
	var act Actions
	if s.Quit {
		act.Quit = true
	}
	if s.Width > 0 && s.Height > 0 {
		c.resize(s.Width, s.Height)
	}
	for _, k := range s.Down {
		c.move(k)
	}
	for _, k := range s.Keys {
		switch k {
		case KeyEscape:
			act.Quit = true
		case KeyF12:
			act.Screenshot = true
		default:
			c.key(k)
		}
	}
	c.mouse(s)
	if s.Pick {
		c.hideAt(s.MouseX, s.MouseY)
	}
	c.wheel(s.Wheel)
	c.idle(now)
	return act
}

func (c *Controller) resize(width, height int) {
	c.r.SetImageSize(width, height)
	c.camera().SetAspectRatio(float32(width) / float32(height))
	c.log.Debug("resize", zap.Int("width", width), zap.Int("height", height))
}

// move steps the camera for a held movement key.
func (c *Controller) move(k Key) {
	cam := c.camera()
	step := cam.Distance() * c.opts.MoveResolution

	switch k {
	case 'w':
		cam.Move(0, 0, -step)
	case 's':
		cam.Move(0, 0, step)
	case 'q':
		cam.Move(0, step, 0)
	case 'z':
		cam.Move(0, -step, 0)
	case 'a':
		cam.Move(-step, 0, 0)
	case 'd':
		cam.Move(step, 0, 0)
	}
}

func (c *Controller) key(k Key) {
	cam := c.camera()

	switch k {
	case '+', '=':
		cam.Zoom(c.opts.ZoomStep)
	case '-':
		cam.Zoom(1 / c.opts.ZoomStep)
	case 'p':
		cam.ChangeProjectionType()
		c.log.Debug("projection", zap.Stringer("type", cam.ProjectionType()))
	case 'b':
		on := !c.r.IsFlagSet(renderer.DrawSceneBounds)
		c.r.EnableFlag(renderer.DrawSceneBounds|renderer.DrawActorBounds, on)
	case 'n':
		c.r.ToggleFlag(renderer.DrawNormals)
	case 'x':
		c.r.ToggleFlag(renderer.DrawAxes)
	case ',':
		c.r.SetMode(renderer.Wireframe)
	case '/':
		c.r.SetMode(renderer.Smooth)
	case 'o':
		c.animating = !c.animating
	case 'u':
		for _, a := range c.r.Scene().Actors() {
			a.SetVisible(true)
		}
	}
}

// hideAt hides the nearest visible actor under pixel (x, y).
func (c *Controller) hideAt(x, y int) {
	w, h := c.r.ImageSize()
	ray := picking.ScreenToRay(float32(x)+0.5, float32(y)+0.5, w, h, c.camera().ViewProjectionMatrix())
	a := picking.Pick(c.r.Scene(), ray)
	if a == nil {
		return
	}
	a.SetVisible(false)
	c.log.Debug("actor hidden", zap.Int("x", x), zap.Int("y", y))
}

// mouse orbits the camera while the left button is dragged.
func (c *Controller) mouse(s *State) {
	if s.Pressed {
		c.x0, c.y0 = s.MouseX, s.MouseY
		return
	}
	if !s.Held || (s.MouseX == c.x0 && s.MouseY == c.y0) {
		return
	}
	cam := c.camera()
	da := cam.ViewAngle() * c.opts.RotateResolution
	cam.RotateYX(float32(c.x0-s.MouseX)*da, float32(c.y0-s.MouseY)*da)
	c.x0, c.y0 = s.MouseX, s.MouseY
}

func (c *Controller) wheel(steps int) {
	cam := c.camera()
	for ; steps > 0; steps-- {
		cam.Zoom(c.opts.ZoomStep)
	}
	for ; steps < 0; steps++ {
		cam.Zoom(1 / c.opts.ZoomStep)
	}
}

// idle advances the animation by one step per elapsed interval.
func (c *Controller) idle(now time.Time) {
	if !c.animating {
		return
	}
	if c.lastAnimate.IsZero() {
		c.lastAnimate = now
		return
	}
	if now.Sub(c.lastAnimate) < c.opts.AnimateInterval {
		return
	}
	cam := c.camera()
	cam.Azimuth(cam.WindowHeight() * 0.01)
	c.lastAnimate = now
}
