package sceneio

import (
	"github.com/Faultbox/sceneview/internal/engine/material"
	"github.com/Faultbox/sceneview/internal/engine/mesh"
	"github.com/Faultbox/sceneview/internal/engine/scene"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Demo returns the built-in scene: four colored spheres sharing one mesh,
// stretched along different axes, and a white cylinder further back.
func Demo() *scene.Scene {
	sc := scene.New("demo")
	s := mesh.Sphere(DefaultSegments)

	add := func(m *mesh.TriangleMesh, p, size math.Vec3, c math.Color, name string) {
		a := sc.Add(m, material.New(name, c))
		a.Model().SetMatrix(p, math.QuatIdentity(), size)
	}
	add(s, math.Vec3{X: -3, Y: -3}, math.Vec3{X: 1, Y: 1, Z: 1}, math.Yellow, "yellow")
	add(s, math.Vec3{X: 3, Y: -3}, math.Vec3{X: 2, Y: 1, Z: 1}, math.Green, "green")
	add(s, math.Vec3{X: 3, Y: 3}, math.Vec3{X: 1, Y: 2, Z: 1}, math.Red, "red")
	add(s, math.Vec3{X: -3, Y: 3}, math.Vec3{X: 1, Y: 1, Z: 2}, math.Blue, "blue")
	add(mesh.Cylinder(DefaultSegments), math.Vec3{X: 2, Y: -4, Z: -10}, math.Vec3One, math.White, "white")
	return sc
}
