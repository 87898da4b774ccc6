// Package picking casts rays from the screen into the scene.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sceneview/internal/engine/scene"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Ray is a half-line; Direction is unit length.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay unprojects pixel (x, y) of a width x height image through the
// inverse of viewProj. Pixel rows grow downwards.
func ScreenToRay(x, y float32, width, height int, viewProj math.Mat4) Ray {
	inv := viewProj.Inverse()
	ndcX := 2*x/float32(width) - 1
	ndcY := 1 - 2*y/float32(height)

	near := unproject(inv, math.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(inv, math.Vec4{ndcX, ndcY, 1, 1})
	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

func unproject(inv math.Mat4, p math.Vec4) math.Vec3 {
	w := inv.MulVec4(p)
	if w[3] != 0 {
		return math.Vec3{X: w[0] / w[3], Y: w[1] / w[3], Z: w[2] / w[3]}
	}
	return w.XYZ()
}

// IntersectBounds returns the distance to the first crossing of b. A ray
// starting inside b hits at its exit distance.
func (r Ray) IntersectBounds(b math.Bounds3) (t float32, hit bool) {
	if b.IsEmpty() {
		return 0, false
	}
	tmin, tmax := math32.Inf(-1), math32.Inf(1)

	slab := func(o, d, lo, hi float32) bool {
		if d == 0 {
			return o >= lo && o <= hi
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		return true
	}
	if !slab(r.Origin.X, r.Direction.X, b.Min.X, b.Max.X) ||
		!slab(r.Origin.Y, r.Direction.Y, b.Min.Y, b.Max.Y) ||
		!slab(r.Origin.Z, r.Direction.Z, b.Min.Z, b.Max.Z) {
		return 0, false
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Pick returns the visible actor of sc whose bounds r hits first, or nil.
func Pick(sc *scene.Scene, r Ray) *scene.Actor {
	var (
		best  *scene.Actor
		bestT = math32.Inf(1)
	)
	for _, a := range sc.Actors() {
		if !a.Visible() {
			continue
		}
		if t, ok := r.IntersectBounds(a.Model().Bounds()); ok && t < bestT {
			best, bestT = a, t
		}
	}
	return best
}
