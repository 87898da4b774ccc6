// Package debug builds the geometry of the renderer's debug overlays and
// writes screenshots.
package debug

import (
	"github.com/Faultbox/sceneview/pkg/math"
)

// Segment is a line from A to B.
type Segment struct {
	A, B math.Vec3
}

// BoxEdgeCount is the number of segments in a box wireframe.
const BoxEdgeCount = 12

// BoxEdges returns the 12 edges of b. The topology does not depend on the
// box extent: a degenerate box yields 12 coincident or zero-length segments.
func BoxEdges(b math.Bounds3) [BoxEdgeCount]Segment {
	p1 := b.Min
	p7 := b.Max
	p2 := math.Vec3{X: p7.X, Y: p1.Y, Z: p1.Z}
	p3 := math.Vec3{X: p7.X, Y: p7.Y, Z: p1.Z}
	p4 := math.Vec3{X: p1.X, Y: p7.Y, Z: p1.Z}
	p5 := math.Vec3{X: p1.X, Y: p1.Y, Z: p7.Z}
	p6 := math.Vec3{X: p7.X, Y: p1.Y, Z: p7.Z}
	p8 := math.Vec3{X: p1.X, Y: p7.Y, Z: p7.Z}

	return [BoxEdgeCount]Segment{
		// near face
		{p1, p2}, {p2, p3}, {p3, p4}, {p1, p4},
		// far face
		{p5, p6}, {p6, p7}, {p7, p8}, {p5, p8},
		// connecting edges
		{p3, p7}, {p2, p6}, {p4, p8}, {p1, p5},
	}
}
