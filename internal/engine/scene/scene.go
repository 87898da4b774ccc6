// Package scene provides the scene graph: an ordered set of actors, the
// lights and the global colors the renderer reads each frame.
package scene

import (
	"slices"

	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/internal/engine/material"
	"github.com/Faultbox/sceneview/internal/engine/mesh"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Scene owns its actors. Lights are referenced, not owned.
type Scene struct {
	Name            string
	BackgroundColor math.Color
	AmbientLight    math.Color

	actors []*Actor
	lights []*lighting.Light

	bounds        math.Bounds3
	boundsDirty   bool
	boundsVersion uint64
}

// New returns an empty scene with a black background and white ambient light.
func New(name string) *Scene {
	return &Scene{
		Name:            name,
		BackgroundColor: math.Black,
		AmbientLight:    math.White,
		bounds:          math.EmptyBounds(),
	}
}

// Add creates a visible actor for (m, mat) and appends it.
func (s *Scene) Add(m *mesh.TriangleMesh, mat *material.Material) *Actor {
	a := NewActor(NewPrimitive(m, mat))
	s.AddActor(a)
	return a
}

// AddActor appends a. Actors already in the scene and nil are ignored.
func (s *Scene) AddActor(a *Actor) {
	if a == nil || a.model == nil || slices.Contains(s.actors, a) {
		return
	}
	s.actors = append(s.actors, a)
	s.boundsDirty = true
}

// RemoveActor removes a and reports whether it was present.
func (s *Scene) RemoveActor(a *Actor) bool {
	i := slices.Index(s.actors, a)
	if i < 0 {
		return false
	}
	s.actors = slices.Delete(s.actors, i, i+1)
	s.boundsDirty = true
	return true
}

// Actors returns the actors in draw order. The slice must not be modified.
func (s *Scene) Actors() []*Actor { return s.actors }

// NumActors returns the actor count.
func (s *Scene) NumActors() int { return len(s.actors) }

// AddLight appends l. nil is ignored.
func (s *Scene) AddLight(l *lighting.Light) {
	if l == nil {
		return
	}
	s.lights = append(s.lights, l)
}

// RemoveLight removes the last occurrence of l and reports whether it was present.
func (s *Scene) RemoveLight(l *lighting.Light) bool {
	for i := len(s.lights) - 1; i >= 0; i-- {
		if s.lights[i] == l {
			s.lights = slices.Delete(s.lights, i, i+1)
			return true
		}
	}
	return false
}

// Lights returns the lights. The slice must not be modified.
func (s *Scene) Lights() []*lighting.Light { return s.lights }

// NumLights returns the light count.
func (s *Scene) NumLights() int { return len(s.lights) }

// Clear removes every actor and light.
func (s *Scene) Clear() {
	s.actors = nil
	s.lights = nil
	s.boundsDirty = true
}

// Bounds returns the union of every actor's world bounds, visible or not.
// It is recomputed only after actors were added, removed or changed.
func (s *Scene) Bounds() math.Bounds3 {
	v := s.version()
	if !s.boundsDirty && v == s.boundsVersion {
		return s.bounds
	}
	b := math.EmptyBounds()
	for _, a := range s.actors {
		b = b.Union(a.model.Bounds())
	}
	s.bounds = b
	s.boundsVersion = v
	s.boundsDirty = false
	return b
}

// version sums the primitive versions; it grows whenever any actor changes.
func (s *Scene) version() uint64 {
	var v uint64
	for _, a := range s.actors {
		v += a.model.version
	}
	return v
}
