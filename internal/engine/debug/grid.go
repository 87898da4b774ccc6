package debug

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sceneview/pkg/math"
)

// GroundDivisions is the number of grid lines on each side of an axis.
const GroundDivisions = 20

// Ground holds the lines of the ground-plane grid on y = 0.
type Ground struct {
	Lines []Segment // grid lines parallel to X and Z
	XAxis Segment
	ZAxis Segment
}

// GroundSize returns the half-extent of the ground grid for a view window
// of height h and the given aspect ratio: min(h, h*aspect).
func GroundSize(h, aspect float32) float32 {
	return math32.Min(h, h*aspect)
}

// GroundGrid returns the grid spanning [-size, size] on X and Z with lines
// every step units. Non-positive or non-finite inputs yield the axes only.
func GroundGrid(size, step float32) Ground {
	g := Ground{
		XAxis: Segment{math.Vec3{X: -size}, math.Vec3{X: size}},
		ZAxis: Segment{math.Vec3{Z: -size}, math.Vec3{Z: size}},
	}
	if size <= 0 || step <= 0 || !math.IsFinite(size) || !math.IsFinite(step) {
		return g
	}

	// Count lines with integer arithmetic so that size/step lands on the
	// outer edge despite rounding.
	n := int(size/step + 1e-3)
	if n > 10*GroundDivisions {
		n = 10 * GroundDivisions
	}
	g.Lines = make([]Segment, 0, 4*n)
	for i := 1; i <= n; i++ {
		s := float32(i) * step
		g.Lines = append(g.Lines,
			Segment{math.Vec3{X: -size, Z: s}, math.Vec3{X: size, Z: s}},
			Segment{math.Vec3{X: -size, Z: -s}, math.Vec3{X: size, Z: -s}},
			Segment{math.Vec3{X: s, Z: -size}, math.Vec3{X: s, Z: size}},
			Segment{math.Vec3{X: -s, Z: -size}, math.Vec3{X: -s, Z: size}},
		)
	}
	return g
}
