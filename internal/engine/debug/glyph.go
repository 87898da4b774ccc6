package debug

import (
	"github.com/Faultbox/sceneview/pkg/math"
)

// GlyphScale is the scale applied to the unit cone at the tip of a vector.
var GlyphScale = math.Vec3{X: 0.1, Y: 0.4, Z: 0.1}

// Arrow returns the shaft end of a vector glyph drawn from p along d with
// length s, and the model matrix that places the unit cone (apex +Y) at
// that end pointing along d.
//
// The cone is turned half a revolution about the bisector of +Y and d,
// which maps +Y onto d. When d is parallel to Y the bisector degenerates
// and a fixed axis is used instead.
func Arrow(p, d math.Vec3, s float32) (end math.Vec3, cone math.Mat4) {
	var axis math.Vec3
	if math.IsZero(d.X) && math.IsZero(d.Z) {
		if d.Y < 0 {
			axis = math.Vec3{Z: 1}
		} else {
			axis = math.Vec3Up
		}
	} else {
		axis = math.Vec3{X: d.X, Y: d.Y + 1, Z: d.Z}
	}

	end = p.Add(d.Scale(s))
	cone = math.TRS(end, math.QuatFromAxisDegrees(axis, 180), GlyphScale)
	return end, cone
}
