package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sceneview/pkg/math"
)

// DefaultSegments is the angular resolution of the default sweeps.
const DefaultSegments = 32

// Sphere returns a unit-radius UV sphere centered at the origin.
func Sphere(segments int) *TriangleMesh {
	if segments < 3 {
		segments = 3
	}
	rings := segments / 2
	if rings < 2 {
		rings = 2
	}

	var vertices, normals []math.Vec3
	var triangles []Triangle

	for ring := 0; ring <= rings; ring++ {
		phi := float32(ring) * math32.Pi / float32(rings)
		sinPhi, cosPhi := sincos(phi)

		for seg := 0; seg <= segments; seg++ {
			theta := float32(seg) * 2 * math32.Pi / float32(segments)
			sinTheta, cosTheta := sincos(theta)

			n := math.Vec3{X: sinPhi * cosTheta, Y: cosPhi, Z: sinPhi * sinTheta}
			vertices = append(vertices, n)
			normals = append(normals, n)
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)

			triangles = append(triangles,
				Triangle{current, current + 1, next},
				Triangle{current + 1, next + 1, next},
			)
		}
	}

	return MustNew("sphere", vertices, normals, triangles)
}

// Cone returns a cone of unit base radius and height 2 along Y, apex at +1.
func Cone(segments int) *TriangleMesh {
	if segments < 3 {
		segments = 3
	}

	var vertices, normals []math.Vec3
	var triangles []Triangle

	// slope normal for radius 1, height 2
	ny := float32(1) / math32.Sqrt(5)
	nr := float32(2) / math32.Sqrt(5)

	// Lateral surface: one apex vertex per segment so each face gets its own
	// normal at the tip.
	for i := 0; i < segments; i++ {
		a0 := float32(i) * 2 * math32.Pi / float32(segments)
		a1 := float32(i+1) * 2 * math32.Pi / float32(segments)
		am := (a0 + a1) / 2
		s0, c0 := sincos(a0)
		s1, c1 := sincos(a1)
		sm, cm := sincos(am)

		base := uint32(len(vertices))
		vertices = append(vertices,
			math.Vec3{X: 0, Y: 1, Z: 0},
			math.Vec3{X: c0, Y: -1, Z: s0},
			math.Vec3{X: c1, Y: -1, Z: s1},
		)
		normals = append(normals,
			math.Vec3{X: cm * nr, Y: ny, Z: sm * nr},
			math.Vec3{X: c0 * nr, Y: ny, Z: s0 * nr},
			math.Vec3{X: c1 * nr, Y: ny, Z: s1 * nr},
		)
		triangles = append(triangles, Triangle{base, base + 2, base + 1})
	}

	appendDisk(&vertices, &normals, &triangles, segments, -1)
	return MustNew("cone", vertices, normals, triangles)
}

// Cylinder returns a cylinder of unit radius and height 2 along Y.
func Cylinder(segments int) *TriangleMesh {
	if segments < 3 {
		segments = 3
	}

	var vertices, normals []math.Vec3
	var triangles []Triangle

	for i := 0; i <= segments; i++ {
		a := float32(i) * 2 * math32.Pi / float32(segments)
		s, c := sincos(a)
		n := math.Vec3{X: c, Y: 0, Z: s}
		vertices = append(vertices, math.Vec3{X: c, Y: -1, Z: s}, math.Vec3{X: c, Y: 1, Z: s})
		normals = append(normals, n, n)
	}
	for i := 0; i < segments; i++ {
		b := uint32(2 * i)
		triangles = append(triangles,
			Triangle{b, b + 1, b + 2},
			Triangle{b + 1, b + 3, b + 2},
		)
	}

	appendDisk(&vertices, &normals, &triangles, segments, -1)
	appendDisk(&vertices, &normals, &triangles, segments, 1)
	return MustNew("cylinder", vertices, normals, triangles)
}

// appendDisk adds a unit disk cap at height y facing away from the origin.
func appendDisk(vertices, normals *[]math.Vec3, triangles *[]Triangle, segments int, y float32) {
	n := math.Vec3{Y: y}
	center := uint32(len(*vertices))
	*vertices = append(*vertices, math.Vec3{Y: y})
	*normals = append(*normals, n)

	for i := 0; i <= segments; i++ {
		a := float32(i) * 2 * math32.Pi / float32(segments)
		s, c := sincos(a)
		*vertices = append(*vertices, math.Vec3{X: c, Y: y, Z: s})
		*normals = append(*normals, n)
	}
	for i := 0; i < segments; i++ {
		a := center + 1 + uint32(i)
		if y > 0 {
			*triangles = append(*triangles, Triangle{center, a + 1, a})
		} else {
			*triangles = append(*triangles, Triangle{center, a, a + 1})
		}
	}
}

// Cube returns an axis-aligned cube spanning [-1, 1] with flat face normals.
func Cube() *TriangleMesh {
	faces := []struct {
		n, u, v math.Vec3
	}{
		{math.Vec3{X: 1}, math.Vec3{Z: -1}, math.Vec3{Y: 1}},
		{math.Vec3{X: -1}, math.Vec3{Z: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Y: 1}, math.Vec3{X: 1}, math.Vec3{Z: -1}},
		{math.Vec3{Y: -1}, math.Vec3{X: 1}, math.Vec3{Z: 1}},
		{math.Vec3{Z: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Z: -1}, math.Vec3{X: -1}, math.Vec3{Y: 1}},
	}

	var vertices, normals []math.Vec3
	var triangles []Triangle
	for _, f := range faces {
		base := uint32(len(vertices))
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			vertices = append(vertices, f.n.Add(f.u.Scale(c[0])).Add(f.v.Scale(c[1])))
			normals = append(normals, f.n)
		}
		triangles = append(triangles, Triangle{base, base + 1, base + 2}, Triangle{base, base + 2, base + 3})
	}
	return MustNew("cube", vertices, normals, triangles)
}

func sincos(a float32) (float32, float32) {
	return math32.Sin(a), math32.Cos(a)
}
