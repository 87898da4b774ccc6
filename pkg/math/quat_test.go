package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()

	length := math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W))
	if math.Abs(length-1.0) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatRotateMatchesMatrix(t *testing.T) {
	q := QuatFromAxisDegrees(Vec3{0.3, 1, -0.2}, 73)
	v := Vec3{1, 2, 3}

	byQuat := q.Rotate(v)
	byMat := q.ToMat4().TransformPoint(v)
	if !byQuat.ApproxEqual(byMat, 1e-5) {
		t.Errorf("Rotate = %v, ToMat4 = %v", byQuat, byMat)
	}
}

func TestQuatHalfTurnMapsUpOntoDirection(t *testing.T) {
	// A 180 degree turn around the half vector of Y and d maps Y onto d.
	d := Vec3{1, 0, 0}
	axis := Vec3{d.X, d.Y + 1, d.Z}
	got := QuatFromAxisDegrees(axis, 180).Rotate(Vec3Up)
	if !got.ApproxEqual(d, 1e-5) {
		t.Errorf("half turn: got %v, want %v", got, d)
	}
}

func TestQuatMulComposes(t *testing.T) {
	a := QuatFromAxisDegrees(Vec3{0, 1, 0}, 90)
	b := QuatFromAxisDegrees(Vec3{1, 0, 0}, 90)
	v := Vec3{0, 0, 1}

	got := a.Mul(b).Rotate(v)
	want := a.Rotate(b.Rotate(v))
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("composition: got %v, want %v", got, want)
	}
}
