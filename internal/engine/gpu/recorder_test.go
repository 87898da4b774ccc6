package gpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sceneview/pkg/math"
)

func TestRecorderUniforms(t *testing.T) {
	r := NewRecorder()
	p, err := r.CreateProgram("uniform mat4 modelMatrix;", "void main() {}")
	require.NoError(t, err)

	u := r.UniformLocation(p, "modelMatrix")
	require.NotEqual(t, NoUniform, u)
	assert.Equal(t, u, r.UniformLocation(p, "modelMatrix"))
	assert.Equal(t, NoUniform, r.UniformLocation(p, "missing"))

	r.SetUniformMat4(u, math.Translate(1, 2, 3))
	r.SetUniformMat4(NoUniform, math.Identity())
	v, ok := r.UniformValue("modelMatrix")
	require.True(t, ok)
	assert.Equal(t, math.Translate(1, 2, 3), v)
	assert.Equal(t, 1, r.Stats().UniformUploads)
}

func TestRecorderBufferAccounting(t *testing.T) {
	r := NewRecorder()
	vao, err := r.CreateVertexArray()
	require.NoError(t, err)

	b1, err := r.CreateVertexBuffer(vao, PositionAttrib, make([]math.Vec3, 4))
	require.NoError(t, err)
	b2, err := r.CreateIndexBuffer(vao, make([]uint32, 6))
	require.NoError(t, err)

	s := r.Stats()
	assert.Equal(t, 2, s.Buffers)
	assert.Equal(t, 4*12+6*4, s.BufferBytes)
	assert.Equal(t, 1, s.VertexArrays)

	r.DeleteBuffers(b1, b2, b2)
	r.DeleteVertexArray(vao)
	s = r.Stats()
	assert.Zero(t, s.Buffers)
	assert.Zero(t, s.BufferBytes)
	assert.Zero(t, s.VertexArrays)
}

func TestRecorderInjectedFailures(t *testing.T) {
	r := NewRecorder()
	r.FailPrograms = true
	_, err := r.CreateProgram("", "")
	assert.True(t, errors.Is(err, ErrInjected))

	r.FailBufferAt = 2
	vao, err := r.CreateVertexArray()
	require.NoError(t, err)
	_, err = r.CreateVertexBuffer(vao, PositionAttrib, nil)
	assert.NoError(t, err)
	_, err = r.CreateVertexBuffer(vao, NormalAttrib, nil)
	assert.ErrorIs(t, err, ErrInjected)
}

func TestRecorderDrawCounters(t *testing.T) {
	r := NewRecorder()
	r.Clear(math.Black)
	r.DrawTriangles(1, 36)
	r.DrawLines(make([]math.Vec4, 24), math.DimGray)
	r.DrawLines(nil, math.DimGray)

	s := r.Stats()
	assert.Equal(t, 1, s.Clears)
	assert.Equal(t, 12, s.Triangles())
	assert.Equal(t, 12, s.LineSegments)
	assert.Equal(t, 1, s.LineDraws)
	assert.Equal(t, 1, r.Count(OpLines))

	r.ResetStats()
	assert.Zero(t, r.Stats().DrawCalls)
	assert.Empty(t, r.Events)
}

func TestRecorderReadPixels(t *testing.T) {
	r := NewRecorder()
	r.Clear(math.Red)
	px, err := r.ReadPixels(2, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 0, 255, 255, 0, 0, 255}, px)

	_, err = r.ReadPixels(0, 1)
	assert.Error(t, err)
}
