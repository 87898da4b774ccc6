package lighting

import (
	"testing"

	"github.com/Faultbox/sceneview/internal/engine/material"
	"github.com/Faultbox/sceneview/pkg/math"
)

func near(a, b float32) bool {
	d := a - b
	return d > -1e-4 && d < 1e-4
}

func TestShadeFacingLight(t *testing.T) {
	// Red material, ambient light 0.1, white light straight above a +Y normal.
	m := material.New("red", math.Red)
	light := &Light{Position: math.Vec3{Y: 10}, Color: math.White}

	got := Shade(math.Vec3{}, math.Vec3Up, math.Identity(), m, math.RGB(0.1, 0.1, 0.1), light)
	if !near(got.R, 0.82) || got.G != 0 || got.B != 0 {
		t.Errorf("Shade() = %+v, want (0.82, 0, 0)", got)
	}
}

func TestShadeFacingAway(t *testing.T) {
	m := material.New("red", math.Red)
	light := &Light{Position: math.Vec3{Y: -10}, Color: math.White}

	got := Shade(math.Vec3{}, math.Vec3Up, math.Identity(), m, math.RGB(0.1, 0.1, 0.1), light)
	if !near(got.R, 0.02) {
		t.Errorf("Shade().R = %v, want ambient only (0.02)", got.R)
	}
}

func TestShadeUsesModelMatrix(t *testing.T) {
	// Rotating the normal from +X to +Y puts it under the light.
	m := material.New("white", math.White)
	light := &Light{Position: math.Vec3{Y: 10}, Color: math.White}
	rot := math.QuatFromAxisDegrees(math.Vec3{Z: 1}, 90).ToMat4()

	got := Shade(math.Vec3{}, math.Vec3{X: 1}, rot, m, math.Black, light)
	if !near(got.G, 0.8) {
		t.Errorf("Shade().G = %v, want 0.8", got.G)
	}
}

func TestShadeNilMaterial(t *testing.T) {
	got := Shade(math.Vec3{}, math.Vec3Up, math.Identity(), nil, math.White, nil)
	if !near(got.R, 0.2) {
		t.Errorf("nil material ambient = %v, want default 0.2", got.R)
	}
}

func TestDefaultLightsAreDistinct(t *testing.T) {
	a, b := Default(), Default()
	if a == b {
		t.Error("Default() should allocate a new light per call")
	}
	if a.Position != DefaultPosition || a.Color != math.White {
		t.Errorf("Default() = %+v", a)
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		az, el float32
		want   math.Vec3
	}{
		{0, 0, math.Vec3{Z: 1}},
		{90, 0, math.Vec3{X: 1}},
		{0, 90, math.Vec3{Y: 1}},
	}
	for _, tt := range tests {
		got := Direction(tt.az, tt.el)
		if !got.ApproxEqual(tt.want, 1e-5) {
			t.Errorf("Direction(%v, %v) = %v, want %v", tt.az, tt.el, got, tt.want)
		}
	}
}
