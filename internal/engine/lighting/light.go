// Package lighting provides scene lights and the per-vertex lighting model
// evaluated by the default shader.
package lighting

import (
	"github.com/Faultbox/sceneview/internal/engine/material"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Light is a positional light.
type Light struct {
	Name     string
	Position math.Vec3
	Color    math.Color
}

// DefaultPosition is where the default light sits in world space.
var DefaultPosition = math.Vec3{X: -5, Y: 5, Z: 10}

// Default returns a new white light at DefaultPosition. Each call returns a
// distinct light so it can be added to and removed from a scene by identity.
func Default() *Light {
	return &Light{
		Name:     "default",
		Position: DefaultPosition,
		Color:    math.White,
	}
}

// Shade evaluates the lighting model for a vertex p with normal n under
// the model matrix:
//
//	color = Oa*ambient
//	cos = -dot(N, normalize(P - lightPos))
//	if cos > 0: color += Od*lightColor*cos
//
// A nil light contributes the ambient term only.
func Shade(p, n math.Vec3, model math.Mat4, m *material.Material, ambient math.Color, light *Light) math.Color {
	m = material.Resolve(m)

	c := m.Ambient.Mul(ambient)
	c.A = 1
	if light == nil {
		return c
	}

	worldP := model.TransformPoint(p)
	worldN := model.Mat3().MulVec3(n).Normalize()
	cos := -worldN.Dot(worldP.Sub(light.Position).Normalize())
	if cos > 0 {
		d := m.Diffuse.Mul(light.Color).Scale(cos)
		c.R += d.R
		c.G += d.G
		c.B += d.B
	}
	return c
}
