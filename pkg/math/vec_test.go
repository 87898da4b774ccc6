package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	if want := (Vec3{0, 0, 1}); got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	l := Vec3{3, 4, 12}.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero vector Normalize() = %v, want zero", got)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, -1, 0}
	if got, want := a.Min(b), (Vec3{1, -1, -2}); got != want {
		t.Errorf("Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec3{3, 5, 0}); got != want {
		t.Errorf("Max() = %v, want %v", got, want)
	}
}

func TestBoundsInflateAndUnion(t *testing.T) {
	b := EmptyBounds()
	if !b.IsEmpty() {
		t.Fatal("EmptyBounds() should be empty")
	}

	b = b.Inflate(Vec3{1, 2, 3})
	if b.IsEmpty() || b.Min != b.Max {
		t.Errorf("single point box: got %+v", b)
	}

	u := b.Union(NewBounds(Vec3{-1, -1, -1}, Vec3{0, 0, 0}))
	want := Bounds3{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 2, 3}}
	if u != want {
		t.Errorf("Union() = %+v, want %+v", u, want)
	}
	if !u.Contains(b) {
		t.Error("union should contain its operands")
	}
	if got := u.Union(EmptyBounds()); got != u {
		t.Errorf("union with empty changed the box: %+v", got)
	}
}

func TestBoundsTransform(t *testing.T) {
	b := NewBounds(Vec3{-1, -1, -1}, Vec3{1, 1, 1})
	got := b.Transform(Translate(5, 0, 0).Mul(Scale(2, 1, 1)))
	want := Bounds3{Min: Vec3{3, -1, -1}, Max: Vec3{7, 1, 1}}
	if got != want {
		t.Errorf("Transform() = %+v, want %+v", got, want)
	}
}

func TestBoundsCorners(t *testing.T) {
	c := NewBounds(Vec3{0, 0, 0}, Vec3{1, 2, 3}).Corners()
	if c[0] != (Vec3{0, 0, 0}) || c[7] != (Vec3{1, 2, 3}) {
		t.Errorf("corner 0/7: got %v/%v", c[0], c[7])
	}
	if c[5] != (Vec3{1, 0, 3}) {
		t.Errorf("corner 5: got %v, want (1, 0, 3)", c[5])
	}
}

func TestColorScale(t *testing.T) {
	got := White.Scale(0.2)
	if got.R != 0.2 || got.G != 0.2 || got.B != 0.2 {
		t.Errorf("White.Scale(0.2) = %+v", got)
	}
	if RoyalBlue.B != 1 {
		t.Errorf("RoyalBlue.B = %v, want 1", RoyalBlue.B)
	}
}
