// Package mesh provides immutable triangle meshes and the procedural sweeps
// used for scene geometry and debug glyphs.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/sceneview/pkg/math"
)

var (
	// ErrNormalCount is returned when normals are present but do not match the vertices.
	ErrNormalCount = errors.New("normal count does not match vertex count")
	// ErrIndexOutOfRange is returned when a triangle references a missing vertex.
	ErrIndexOutOfRange = errors.New("triangle index out of range")
)

// Triangle holds three vertex indices.
type Triangle [3]uint32

// TriangleMesh is an immutable triangle soup.
//
// The slices returned by the accessors are the mesh's own storage and must
// not be modified. Derived GPU resources are not stored here: renderers keep
// them in their own side-table keyed by *TriangleMesh.
type TriangleMesh struct {
	name      string
	vertices  []math.Vec3
	normals   []math.Vec3
	triangles []Triangle
	bounds    math.Bounds3
}

// New copies the arrays into a new mesh after validating them.
// normals may be nil.
func New(name string, vertices, normals []math.Vec3, triangles []Triangle) (*TriangleMesh, error) {
	if len(normals) != 0 && len(normals) != len(vertices) {
		return nil, fmt.Errorf("mesh %q: %w (%d normals, %d vertices)", name, ErrNormalCount, len(normals), len(vertices))
	}
	n := uint32(len(vertices))
	for i, tri := range triangles {
		for _, idx := range tri {
			if idx >= n {
				return nil, fmt.Errorf("mesh %q: triangle %d: %w (%d >= %d)", name, i, ErrIndexOutOfRange, idx, n)
			}
		}
	}

	m := &TriangleMesh{
		name:      name,
		vertices:  append([]math.Vec3(nil), vertices...),
		triangles: append([]Triangle(nil), triangles...),
		bounds:    math.EmptyBounds(),
	}
	if len(normals) != 0 {
		m.normals = append([]math.Vec3(nil), normals...)
	}
	for _, v := range m.vertices {
		m.bounds = m.bounds.Inflate(v)
	}
	return m, nil
}

// MustNew is New for meshes built from constant data; it panics on error.
func MustNew(name string, vertices, normals []math.Vec3, triangles []Triangle) *TriangleMesh {
	m, err := New(name, vertices, normals, triangles)
	if err != nil {
		panic(err)
	}
	return m
}

// Name returns the mesh name.
func (m *TriangleMesh) Name() string { return m.name }

// Vertices returns the vertex positions.
func (m *TriangleMesh) Vertices() []math.Vec3 { return m.vertices }

// Normals returns the per-vertex normals, or nil.
func (m *TriangleMesh) Normals() []math.Vec3 { return m.normals }

// Triangles returns the index triples.
func (m *TriangleMesh) Triangles() []Triangle { return m.triangles }

// NumVertices returns the vertex count.
func (m *TriangleMesh) NumVertices() int { return len(m.vertices) }

// NumTriangles returns the triangle count.
func (m *TriangleMesh) NumTriangles() int { return len(m.triangles) }

// HasNormals reports whether the mesh carries per-vertex normals.
func (m *TriangleMesh) HasNormals() bool { return len(m.normals) != 0 }

// IsEmpty reports whether the mesh has nothing to draw.
func (m *TriangleMesh) IsEmpty() bool { return len(m.triangles) == 0 }

// Bounds returns the object-space bounding box.
func (m *TriangleMesh) Bounds() math.Bounds3 { return m.bounds }

// Indices flattens the triangles into a GPU index array.
func (m *TriangleMesh) Indices() []uint32 {
	out := make([]uint32, 0, 3*len(m.triangles))
	for _, t := range m.triangles {
		out = append(out, t[0], t[1], t[2])
	}
	return out
}
