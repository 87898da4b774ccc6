// Package vertexarray caches the device buffers derived from triangle
// meshes. A Cache is a side-table owned by one renderer and keyed by mesh
// identity; meshes themselves never hold device handles.
package vertexarray

import (
	"errors"
	"fmt"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/mesh"
)

// ErrNoGeometry is returned for nil meshes and meshes without triangles.
var ErrNoGeometry = errors.New("mesh has no geometry")

// Entry holds the device buffers of one mesh.
type Entry struct {
	VAO           gpu.VertexArray
	Position      gpu.Buffer
	Normal        gpu.Buffer // zero when the mesh has no normals
	Index         gpu.Buffer
	VertexCount   int
	TriangleCount int
}

// IndexCount returns the number of indices a full draw issues.
func (e *Entry) IndexCount() int32 { return int32(3 * e.TriangleCount) }

// Cache maps meshes to their uploaded buffers. At most one entry exists
// per mesh.
type Cache struct {
	dev     gpu.Device
	entries map[*mesh.TriangleMesh]*Entry
	builds  int
}

// New returns an empty cache uploading through dev.
func New(dev gpu.Device) *Cache {
	return &Cache{
		dev:     dev,
		entries: make(map[*mesh.TriangleMesh]*Entry),
	}
}

// Acquire returns the entry for m, building it on first use.
// A failed build leaves nothing behind and is retried on the next call.
func (c *Cache) Acquire(m *mesh.TriangleMesh) (*Entry, error) {
	if m == nil || m.IsEmpty() {
		return nil, ErrNoGeometry
	}
	if e, ok := c.entries[m]; ok {
		return e, nil
	}

	e, err := c.build(m)
	if err != nil {
		return nil, fmt.Errorf("upload mesh %q: %w", m.Name(), err)
	}
	c.entries[m] = e
	c.builds++
	return e, nil
}

func (c *Cache) build(m *mesh.TriangleMesh) (_ *Entry, err error) {
	vao, err := c.dev.CreateVertexArray()
	if err != nil {
		return nil, err
	}
	e := &Entry{
		VAO:           vao,
		VertexCount:   m.NumVertices(),
		TriangleCount: m.NumTriangles(),
	}
	defer func() {
		if err != nil {
			c.destroy(e)
		}
	}()

	if e.Position, err = c.dev.CreateVertexBuffer(vao, gpu.PositionAttrib, m.Vertices()); err != nil {
		return nil, err
	}
	if m.HasNormals() {
		if e.Normal, err = c.dev.CreateVertexBuffer(vao, gpu.NormalAttrib, m.Normals()); err != nil {
			return nil, err
		}
	}
	if e.Index, err = c.dev.CreateIndexBuffer(vao, m.Indices()); err != nil {
		return nil, err
	}
	return e, nil
}

func (c *Cache) destroy(e *Entry) {
	var bufs []gpu.Buffer
	for _, b := range []gpu.Buffer{e.Position, e.Normal, e.Index} {
		if b != 0 {
			bufs = append(bufs, b)
		}
	}
	c.dev.DeleteBuffers(bufs...)
	c.dev.DeleteVertexArray(e.VAO)
}

// Render draws every triangle of e with the bound program.
func (c *Cache) Render(e *Entry) {
	c.dev.DrawTriangles(e.VAO, e.IndexCount())
}

// Release frees the buffers of m and reports whether it was cached.
func (c *Cache) Release(m *mesh.TriangleMesh) bool {
	e, ok := c.entries[m]
	if !ok {
		return false
	}
	c.destroy(e)
	delete(c.entries, m)
	return true
}

// ReleaseAll frees every entry.
func (c *Cache) ReleaseAll() {
	for m, e := range c.entries {
		c.destroy(e)
		delete(c.entries, m)
	}
}

// Contains reports whether m has an entry.
func (c *Cache) Contains(m *mesh.TriangleMesh) bool {
	_, ok := c.entries[m]
	return ok
}

// Len returns the number of cached meshes.
func (c *Cache) Len() int { return len(c.entries) }

// Builds returns how many entries have been built over the cache lifetime.
func (c *Cache) Builds() int { return c.builds }
