// Package camera provides the viewer camera: a position and orientation
// looking at a focal point, with perspective or orthographic projection.
//
// Every mutator clamps or ignores degenerate input, so the matrices a Camera
// returns are always finite.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sceneview/pkg/math"
)

// ProjectionType selects the projection model.
type ProjectionType int

const (
	Perspective ProjectionType = iota
	Orthographic
)

func (p ProjectionType) String() string {
	if p == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// Limits applied by the mutators.
const (
	MinViewAngle float32 = 0.01
	MaxViewAngle float32 = 180 - MinViewAngle
	MinDistance  float32 = 1e-4
	MinHeight    float32 = 1e-4
	MaxHeight    float32 = 1e6
	MinNear      float32 = 1e-4
)

// Default state.
const (
	DefaultViewAngle float32 = 60
	DefaultDistance  float32 = 10
	DefaultNear      float32 = 0.01
	DefaultFar       float32 = 1000
)

// Camera is a look-at camera orbiting its focal point.
type Camera struct {
	position  math.Vec3
	direction math.Vec3 // unit direction of projection
	viewUp    math.Vec3 // unit, orthogonal to direction

	distance   float32
	viewAngle  float32 // degrees, perspective
	height     float32 // window height, orthographic
	aspect     float32
	near, far  float32
	projection ProjectionType
}

// New returns a perspective camera at (0, 0, 10) looking at the origin.
func New() *Camera {
	c := &Camera{
		position:   math.Vec3{Z: DefaultDistance},
		direction:  math.Vec3{Z: -1},
		viewUp:     math.Vec3Up,
		distance:   DefaultDistance,
		viewAngle:  DefaultViewAngle,
		aspect:     1,
		near:       DefaultNear,
		far:        DefaultFar,
		projection: Perspective,
	}
	c.height = c.framingHeight()
	return c
}

// Position returns the camera position.
func (c *Camera) Position() math.Vec3 { return c.position }

// DirectionOfProjection returns the unit viewing direction.
func (c *Camera) DirectionOfProjection() math.Vec3 { return c.direction }

// ViewUp returns the unit up vector.
func (c *Camera) ViewUp() math.Vec3 { return c.viewUp }

// FocalPoint returns the point the camera looks at.
func (c *Camera) FocalPoint() math.Vec3 {
	return c.position.Add(c.direction.Scale(c.distance))
}

// Distance returns the distance from the position to the focal point.
func (c *Camera) Distance() float32 { return c.distance }

// ViewAngle returns the vertical field of view in degrees.
func (c *Camera) ViewAngle() float32 { return c.viewAngle }

// AspectRatio returns width/height.
func (c *Camera) AspectRatio() float32 { return c.aspect }

// ClippingPlanes returns the near and far distances.
func (c *Camera) ClippingPlanes() (near, far float32) { return c.near, c.far }

// ProjectionType returns the current projection model.
func (c *Camera) ProjectionType() ProjectionType { return c.projection }

// WindowHeight returns the height of the view window at the focal point.
// In orthographic mode this is the configured height; in perspective mode
// it is the height the view angle spans at the focal distance.
func (c *Camera) WindowHeight() float32 {
	if c.projection == Orthographic {
		return c.height
	}
	return c.framingHeight()
}

func (c *Camera) framingHeight() float32 {
	return 2 * c.distance * math32.Tan(math.Radians(c.viewAngle)/2)
}

// right returns the unit camera-space X axis.
func (c *Camera) right() math.Vec3 {
	return c.direction.Cross(c.viewUp).Normalize()
}

// Move translates the camera by (dx, dy, dz) along its right, up and back
// axes. The focal point moves with it.
func (c *Camera) Move(dx, dy, dz float32) {
	if !math.IsFinite(dx) || !math.IsFinite(dy) || !math.IsFinite(dz) {
		return
	}
	offset := c.right().Scale(dx).
		Add(c.viewUp.Scale(dy)).
		Add(c.direction.Scale(-dz))
	c.position = c.position.Add(offset)
}

// Zoom divides the view angle (perspective) or the window height
// (orthographic) by f. f > 1 zooms in. Non-positive or non-finite f is ignored.
func (c *Camera) Zoom(f float32) {
	if f <= 0 || !math.IsFinite(f) {
		return
	}
	if c.projection == Orthographic {
		c.SetHeight(c.height / f)
		return
	}
	c.SetViewAngle(c.viewAngle / f)
}

// RotateYX orbits the camera around the focal point: yaw degrees about
// the view-up axis, then pitch degrees about the right axis.
func (c *Camera) RotateYX(yaw, pitch float32) {
	c.Azimuth(yaw)
	c.Elevation(pitch)
}

// Azimuth orbits the camera about the view-up axis through the focal point.
func (c *Camera) Azimuth(angle float32) {
	if !math.IsFinite(angle) || angle == 0 {
		return
	}
	c.orbit(math.QuatFromAxisDegrees(c.viewUp, angle), false)
}

// Elevation orbits the camera about the right axis through the focal point.
// Positive angles move the camera up. The view-up vector turns with it.
func (c *Camera) Elevation(angle float32) {
	if !math.IsFinite(angle) || angle == 0 {
		return
	}
	c.orbit(math.QuatFromAxisDegrees(c.right().Neg(), angle), true)
}

func (c *Camera) orbit(q math.Quat, turnUp bool) {
	focal := c.FocalPoint()
	c.direction = q.Rotate(c.direction).Normalize()
	if turnUp {
		c.viewUp = q.Rotate(c.viewUp).Normalize()
	}
	c.orthogonalize()
	c.position = focal.Sub(c.direction.Scale(c.distance))
}

// orthogonalize removes the direction component from viewUp.
func (c *Camera) orthogonalize() {
	up := c.viewUp.Sub(c.direction.Scale(c.viewUp.Dot(c.direction)))
	if up.Length() < 1e-4 {
		up = anyPerpendicular(c.direction)
	}
	c.viewUp = up.Normalize()
}

func anyPerpendicular(d math.Vec3) math.Vec3 {
	axis := math.Vec3{X: 1}
	if math32.Abs(d.X) > 0.9 {
		axis = math.Vec3{Y: 1}
	}
	return axis.Sub(d.Scale(axis.Dot(d)))
}

// ChangeProjectionType toggles between perspective and orthographic,
// keeping the window height at the focal point unchanged.
func (c *Camera) ChangeProjectionType() {
	if c.projection == Perspective {
		c.SetProjectionType(Orthographic)
	} else {
		c.SetProjectionType(Perspective)
	}
}

// SetProjectionType switches the projection model, preserving framing.
func (c *Camera) SetProjectionType(p ProjectionType) {
	if p == c.projection {
		return
	}
	switch p {
	case Orthographic:
		c.SetHeight(c.framingHeight())
	case Perspective:
		c.SetViewAngle(math.Degrees(2 * math32.Atan(c.height/(2*c.distance))))
	default:
		return
	}
	c.projection = p
}

// SetAspectRatio sets width/height. Non-positive or non-finite values are ignored.
func (c *Camera) SetAspectRatio(a float32) {
	if a <= 0 || !math.IsFinite(a) {
		return
	}
	c.aspect = a
}

// SetPosition moves the camera, keeping its orientation and distance.
func (c *Camera) SetPosition(p math.Vec3) {
	if !p.IsFinite() {
		return
	}
	c.position = p
}

// SetFocalPoint turns the camera to look at p from its current position.
// A point at the camera position is ignored.
func (c *Camera) SetFocalPoint(p math.Vec3) {
	d := p.Sub(c.position)
	l := d.Length()
	if !p.IsFinite() || l < MinDistance {
		return
	}
	c.distance = l
	c.direction = d.Scale(1 / l)
	c.orthogonalize()
}

// SetDirectionOfProjection sets the viewing direction, keeping the position.
// Zero or non-finite directions are ignored.
func (c *Camera) SetDirectionOfProjection(d math.Vec3) {
	if !d.IsFinite() || d.Length() < math.Epsilon {
		return
	}
	c.direction = d.Normalize()
	c.orthogonalize()
}

// SetViewUp sets the up vector. Vectors parallel to the viewing direction
// are ignored.
func (c *Camera) SetViewUp(up math.Vec3) {
	if !up.IsFinite() || up.Normalize().Cross(c.direction).Length() < 1e-4 {
		return
	}
	c.viewUp = up
	c.orthogonalize()
}

// SetDistance moves the focal point along the viewing direction.
func (c *Camera) SetDistance(d float32) {
	if !math.IsFinite(d) {
		return
	}
	c.distance = math32.Max(d, MinDistance)
}

// SetViewAngle sets the vertical field of view, clamped to (0, 180) degrees.
func (c *Camera) SetViewAngle(deg float32) {
	if !math.IsFinite(deg) {
		return
	}
	c.viewAngle = math.Clamp(deg, MinViewAngle, MaxViewAngle)
}

// SetHeight sets the orthographic window height.
func (c *Camera) SetHeight(h float32) {
	if !math.IsFinite(h) {
		return
	}
	c.height = math.Clamp(h, MinHeight, MaxHeight)
}

// SetClippingPlanes sets the near and far distances. far is pushed beyond
// near when needed.
func (c *Camera) SetClippingPlanes(near, far float32) {
	if !math.IsFinite(near) || !math.IsFinite(far) {
		return
	}
	c.near = math32.Max(near, MinNear)
	c.far = math32.Max(far, c.near*2)
}

// FitBounds points the camera at the center of b and backs off until the
// bounding sphere fills the view. Empty boxes are ignored.
func (c *Camera) FitBounds(b math.Bounds3) {
	if b.IsEmpty() {
		return
	}
	radius := b.Size().Length() / 2
	if radius < MinDistance {
		radius = 1
	}
	d := radius / math32.Sin(math.Radians(c.viewAngle)/2)
	c.distance = math32.Max(d, MinDistance)
	c.position = b.Center().Sub(c.direction.Scale(c.distance))
	c.SetHeight(2 * radius)
}

// ProjectionMatrix returns the camera-to-clip transform.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	if c.projection == Orthographic {
		w := c.height * c.aspect / 2
		h := c.height / 2
		return math.Ortho(-w, w, -h, h, c.near, c.far)
	}
	return math.Perspective(math.Radians(c.viewAngle), c.aspect, c.near, c.far)
}

// WorldToCameraMatrix returns the view transform.
func (c *Camera) WorldToCameraMatrix() math.Mat4 {
	return math.LookAt(c.position, c.FocalPoint(), c.viewUp)
}

// ViewProjectionMatrix returns ProjectionMatrix * WorldToCameraMatrix.
func (c *Camera) ViewProjectionMatrix() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.WorldToCameraMatrix())
}
