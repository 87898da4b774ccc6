package vertexarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/mesh"
	"github.com/Faultbox/sceneview/pkg/math"
)

func TestAcquireBuildsOnce(t *testing.T) {
	dev := gpu.NewRecorder()
	c := New(dev)
	m := mesh.Cube()

	e1, err := c.Acquire(m)
	require.NoError(t, err)
	e2, err := c.Acquire(m)
	require.NoError(t, err)

	assert.Same(t, e1, e2)
	assert.Equal(t, 1, c.Builds())
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 3, dev.Stats().Buffers)
}

func TestRenderIssuesThreeIndicesPerTriangle(t *testing.T) {
	for _, m := range []*mesh.TriangleMesh{mesh.Cube(), mesh.Sphere(12), mesh.Cone(7)} {
		dev := gpu.NewRecorder()
		c := New(dev)

		e, err := c.Acquire(m)
		require.NoError(t, err)
		c.Render(e)

		assert.Equal(t, 3*m.NumTriangles(), dev.Stats().Indices, m.Name())
		assert.Equal(t, 1, dev.Stats().DrawCalls, m.Name())
	}
}

func TestAcquireWithoutNormals(t *testing.T) {
	dev := gpu.NewRecorder()
	c := New(dev)
	m := mesh.MustNew("tri", []math.Vec3{{}, {X: 1}, {Y: 1}}, nil, []mesh.Triangle{{0, 1, 2}})

	e, err := c.Acquire(m)
	require.NoError(t, err)
	assert.Zero(t, e.Normal)
	assert.Equal(t, 2, dev.Stats().Buffers)
}

func TestAcquireNoGeometry(t *testing.T) {
	c := New(gpu.NewRecorder())

	_, err := c.Acquire(nil)
	assert.ErrorIs(t, err, ErrNoGeometry)

	_, err = c.Acquire(mesh.MustNew("empty", nil, nil, nil))
	assert.ErrorIs(t, err, ErrNoGeometry)
	assert.Zero(t, c.Len())
}

func TestFailedBuildIsCleanedUp(t *testing.T) {
	dev := gpu.NewRecorder()
	dev.FailBufferAt = 2
	c := New(dev)
	m := mesh.Cube()

	_, err := c.Acquire(m)
	require.ErrorIs(t, err, gpu.ErrInjected)
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Builds())
	assert.Zero(t, dev.Stats().Buffers)
	assert.Zero(t, dev.Stats().VertexArrays)

	// The failure is not cached; the next acquire succeeds.
	_, err = c.Acquire(m)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Builds())
}

func TestRelease(t *testing.T) {
	dev := gpu.NewRecorder()
	c := New(dev)
	a, b := mesh.Cube(), mesh.Sphere(8)

	_, err := c.Acquire(a)
	require.NoError(t, err)
	_, err = c.Acquire(b)
	require.NoError(t, err)

	assert.True(t, c.Release(a))
	assert.False(t, c.Release(a))
	assert.False(t, c.Contains(a))
	assert.True(t, c.Contains(b))

	c.ReleaseAll()
	assert.Zero(t, c.Len())
	assert.Zero(t, dev.Stats().Buffers)
	assert.Zero(t, dev.Stats().VertexArrays)
}

func TestCachesAreIndependent(t *testing.T) {
	m := mesh.Cube()
	c1 := New(gpu.NewRecorder())
	c2 := New(gpu.NewRecorder())

	e1, err := c1.Acquire(m)
	require.NoError(t, err)
	e2, err := c2.Acquire(m)
	require.NoError(t, err)

	assert.NotSame(t, e1, e2)
	assert.Equal(t, 1, c1.Builds())
	assert.Equal(t, 1, c2.Builds())
}
