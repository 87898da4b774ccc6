// Package gpu defines the boundary between the renderer and a graphics
// backend. The OpenGL backend lives in package gldevice; Recorder is an
// in-memory backend for tests and headless rendering.
package gpu

import (
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/sceneview/pkg/math"
)

// ErrInjected is returned by a Recorder told to fail.
var ErrInjected = errors.New("injected device failure")

// Handles to device objects. Zero is never a valid handle.
type (
	Program     uint32
	VertexArray uint32
	Buffer      uint32
)

// Uniform is a uniform location; NoUniform marks a name the program lacks.
// Setting NoUniform is a no-op.
type Uniform int32

const NoUniform Uniform = -1

// Vertex attribute slots shared by every program.
const (
	PositionAttrib uint32 = 0
	NormalAttrib   uint32 = 1
)

// PolygonMode selects how triangles are rasterized.
type PolygonMode int

const (
	Fill PolygonMode = iota
	Line
)

func (m PolygonMode) String() string {
	if m == Line {
		return "line"
	}
	return "fill"
}

// Device is a stateful graphics pipeline. All calls happen on the render
// thread.
type Device interface {
	Viewport(x, y, width, height int32)
	Clear(c math.Color)
	SetPolygonMode(mode PolygonMode)
	PolygonMode() PolygonMode
	SetDepthTest(enabled bool)
	DepthTest() bool

	CreateProgram(vertexSource, fragmentSource string) (Program, error)
	DeleteProgram(p Program)
	// UseProgram binds p; zero unbinds.
	UseProgram(p Program)
	CurrentProgram() Program
	UniformLocation(p Program, name string) Uniform
	SetUniformMat4(u Uniform, m math.Mat4)
	SetUniformColor(u Uniform, c math.Color)
	SetUniformVec3(u Uniform, v math.Vec3)

	CreateVertexArray() (VertexArray, error)
	CreateVertexBuffer(vao VertexArray, attrib uint32, data []math.Vec3) (Buffer, error)
	CreateIndexBuffer(vao VertexArray, indices []uint32) (Buffer, error)
	DeleteBuffers(buffers ...Buffer)
	DeleteVertexArray(vao VertexArray)
	// DrawTriangles draws indexCount indices from vao with the bound program.
	DrawTriangles(vao VertexArray, indexCount int32)

	// DrawLines draws segments between consecutive pairs of clip-space
	// points in a flat color. It does not disturb the bound program.
	DrawLines(points []math.Vec4, color math.Color)

	Flush()
	// ReadPixels returns the RGBA framebuffer contents, bottom row first.
	ReadPixels(width, height int32) ([]byte, error)

	Stats() Stats
	ResetStats()
}

// Stats counts device work. Draw counters are reset by ResetStats; the
// live object counters are not.
type Stats struct {
	Clears         int
	DrawCalls      int
	Indices        int
	LineDraws      int
	LineSegments   int
	UniformUploads int

	Programs     int
	VertexArrays int
	Buffers      int
	BufferBytes  int
}

// Triangles returns the number of triangles drawn.
func (s Stats) Triangles() int { return s.Indices / 3 }

// ResetFrame zeroes the per-frame draw counters.
func (s *Stats) ResetFrame() {
	s.Clears = 0
	s.DrawCalls = 0
	s.Indices = 0
	s.LineDraws = 0
	s.LineSegments = 0
	s.UniformUploads = 0
}

func (s Stats) String() string {
	return fmt.Sprintf("%d buffers (%.2f MB), %d draw calls: %d tris, %d line segments",
		s.Buffers, float32(s.BufferBytes)/(1024*1024), s.DrawCalls, s.Triangles(), s.LineSegments)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("draw_calls", s.DrawCalls)
	enc.AddInt("tris", s.Triangles())
	enc.AddInt("line_draws", s.LineDraws)
	enc.AddInt("line_segments", s.LineSegments)
	enc.AddInt("uniform_uploads", s.UniformUploads)
	enc.AddInt("buffers", s.Buffers)
	enc.AddInt("buffer_memory", s.BufferBytes)
	enc.AddInt("vertex_arrays", s.VertexArrays)
	return nil
}
