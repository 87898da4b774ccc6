// Package material holds surface reflectance shared between scene models.
package material

import (
	"sync"

	"github.com/Faultbox/sceneview/pkg/math"
)

// Material describes how a surface reflects ambient and diffuse light.
// Materials are shared by pointer; any number of models may reference one.
type Material struct {
	Name    string
	Ambient math.Color
	Diffuse math.Color
}

// New returns a material with ambient 0.2*color and diffuse 0.8*color.
func New(name string, color math.Color) *Material {
	ambient := color.Scale(0.2)
	diffuse := color.Scale(0.8)
	ambient.A = color.A
	diffuse.A = color.A
	return &Material{
		Name:    name,
		Ambient: ambient,
		Diffuse: diffuse,
	}
}

var (
	defaultOnce     sync.Once
	defaultMaterial *Material
)

// Default returns the process-wide white material.
func Default() *Material {
	defaultOnce.Do(func() {
		defaultMaterial = New("default", math.White)
	})
	return defaultMaterial
}

// Resolve returns m, or the default material when m is nil.
func Resolve(m *Material) *Material {
	if m == nil {
		return Default()
	}
	return m
}
