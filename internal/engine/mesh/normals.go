package mesh

import (
	"github.com/Faultbox/sceneview/pkg/math"
)

// ComputeNormals returns smooth per-vertex normals: area-weighted face normals
// accumulated per vertex, then averaged across vertices sharing a position.
func ComputeNormals(vertices []math.Vec3, triangles []Triangle) []math.Vec3 {
	normals := make([]math.Vec3, len(vertices))
	for _, t := range triangles {
		v0, v1, v2 := vertices[t[0]], vertices[t[1]], vertices[t[2]]
		// Cross product length is twice the area, which weights the sum.
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		for _, idx := range t {
			normals[idx] = normals[idx].Add(n)
		}
	}
	smoothSeams(vertices, normals)
	for i, n := range normals {
		if n.Length() < 0.0001 {
			normals[i] = math.Vec3Up
			continue
		}
		normals[i] = n.Normalize()
	}
	return normals
}

// smoothSeams sums the normals of vertices at the same quantized position so
// that split vertices along UV seams shade continuously.
func smoothSeams(vertices, normals []math.Vec3) {
	const epsilon float32 = 0.001

	posMap := make(map[[3]int32][]int)
	for i, v := range vertices {
		key := [3]int32{
			int32(v.X / epsilon),
			int32(v.Y / epsilon),
			int32(v.Z / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}
		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(normals[idx])
		}
		for _, idx := range idxs {
			normals[idx] = sum
		}
	}
}

// WithNormals returns m if it already has normals, otherwise a copy with
// generated smooth normals.
func (m *TriangleMesh) WithNormals() *TriangleMesh {
	if m.HasNormals() {
		return m
	}
	return &TriangleMesh{
		name:      m.name,
		vertices:  m.vertices,
		normals:   ComputeNormals(m.vertices, m.triangles),
		triangles: m.triangles,
		bounds:    m.bounds,
	}
}
