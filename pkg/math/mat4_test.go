package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)
	if got := m.Translation(); got != (Vec3{5, 10, 15}) {
		t.Errorf("Translation() = %v, want (5, 10, 15)", got)
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformPoint(Vec3{1, 2, 3})
	if want := (Vec3{11, 22, 33}); got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestTransformVectorIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30).Mul(Scale(2, 2, 2))
	got := m.TransformVector(Vec3{1, 0, 0})
	if want := (Vec3{2, 0, 0}); got != want {
		t.Errorf("TransformVector: got %v, want %v", got, want)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	got := m.TransformPoint(Vec3{1, 0, 0})
	if !got.ApproxEqual(Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", got)
	}
}

func TestTRS(t *testing.T) {
	q := QuatFromAxisDegrees(Vec3{0, 0, 1}, 90)
	m := TRS(Vec3{1, 2, 3}, q, Vec3{2, 2, 2})

	// scale, then rotate x onto y, then translate
	got := m.TransformPoint(Vec3{1, 0, 0})
	if !got.ApproxEqual(Vec3{1, 4, 3}, 1e-5) {
		t.Errorf("TRS point: got %v, want (1, 4, 3)", got)
	}

	axes := m.Mat3().NormalizeColumns()
	if !axes.Column(0).ApproxEqual(Vec3{0, 1, 0}, 1e-5) {
		t.Errorf("local x axis: got %v, want (0, 1, 0)", axes.Column(0))
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	if got := m.TransformPoint(eye); !got.ApproxEqual(Vec3{}, 1e-5) {
		t.Errorf("eye in view space: got %v, want origin", got)
	}
	if got := m.TransformPoint(Vec3{}); !got.ApproxEqual(Vec3{0, 0, -5}, 1e-5) {
		t.Errorf("center in view space: got %v, want (0, 0, -5)", got)
	}
}

func TestInverse(t *testing.T) {
	m := TRS(Vec3{3, -1, 2}, QuatFromAxisDegrees(Vec3{1, 1, 0}, 30), Vec3{1, 2, 3})
	p := Vec3{0.5, 4, -2}
	got := m.Inverse().TransformPoint(m.TransformPoint(p))
	if !got.ApproxEqual(p, 1e-4) {
		t.Errorf("inverse round trip: got %v, want %v", got, p)
	}
}

func TestIsFinite(t *testing.T) {
	if !Identity().IsFinite() {
		t.Error("identity should be finite")
	}
	m := Identity()
	m[3] = float32(math.Inf(1))
	if m.IsFinite() {
		t.Error("matrix with +Inf should not be finite")
	}
}
