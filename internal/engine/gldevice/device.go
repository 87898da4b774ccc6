// Package gldevice implements gpu.Device on OpenGL 4.1 core.
//
// A Device must be created and used on the thread that owns the GL context.
package gldevice

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/shader"
	"github.com/Faultbox/sceneview/internal/logger"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Device is an OpenGL gpu.Device.
type Device struct {
	log *zap.Logger

	mode      gpu.PolygonMode
	depthTest bool
	current   gpu.Program
	stats     gpu.Stats
	buffers   map[gpu.Buffer]int

	// flat-color line painter
	lineProgram uint32
	lineColor   int32
	lineVAO     uint32
	lineVBO     uint32
	lineCap     int
	scratch     []float32
}

var _ gpu.Device = (*Device)(nil)

// New initializes OpenGL and the line painter.
// IMPORTANT: Must be called AFTER the OpenGL context is created.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	d := &Device{
		log:     logger.Named("gl"),
		buffers: make(map[gpu.Buffer]int),
	}
	d.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.DEPTH_TEST)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	program, err := shader.CompileProgram(shader.LineVertexSource, shader.LineFragmentSource)
	if err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}
	d.lineProgram = program
	d.lineColor = shader.GetUniform(program, "lineColor")

	gl.GenVertexArrays(1, &d.lineVAO)
	gl.BindVertexArray(d.lineVAO)
	gl.GenBuffers(1, &d.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.lineVBO)
	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, 16, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return d, nil
}

// Close releases the line painter.
func (d *Device) Close() {
	if d.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &d.lineVAO)
		d.lineVAO = 0
	}
	if d.lineVBO != 0 {
		gl.DeleteBuffers(1, &d.lineVBO)
		d.lineVBO = 0
	}
	if d.lineProgram != 0 {
		gl.DeleteProgram(d.lineProgram)
		d.lineProgram = 0
	}
}

func (d *Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *Device) Clear(c math.Color) {
	gl.ClearColor(c.R, c.G, c.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	d.stats.Clears++
}

func (d *Device) SetPolygonMode(mode gpu.PolygonMode) {
	if mode == gpu.Line {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	d.mode = mode
}

func (d *Device) PolygonMode() gpu.PolygonMode { return d.mode }

func (d *Device) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	d.depthTest = enabled
}

func (d *Device) DepthTest() bool { return d.depthTest }

func (d *Device) CreateProgram(vertexSource, fragmentSource string) (gpu.Program, error) {
	p, err := shader.CompileProgram(vertexSource, fragmentSource)
	if err != nil {
		return 0, err
	}
	d.stats.Programs++
	return gpu.Program(p), nil
}

func (d *Device) DeleteProgram(p gpu.Program) {
	if p == 0 {
		return
	}
	if d.current == p {
		d.UseProgram(0)
	}
	gl.DeleteProgram(uint32(p))
	d.stats.Programs--
}

func (d *Device) UseProgram(p gpu.Program) {
	gl.UseProgram(uint32(p))
	d.current = p
}

func (d *Device) CurrentProgram() gpu.Program { return d.current }

func (d *Device) UniformLocation(p gpu.Program, name string) gpu.Uniform {
	return gpu.Uniform(shader.GetUniform(uint32(p), name))
}

func (d *Device) SetUniformMat4(u gpu.Uniform, m math.Mat4) {
	if u == gpu.NoUniform {
		return
	}
	gl.UniformMatrix4fv(int32(u), 1, false, m.Ptr())
	d.stats.UniformUploads++
}

func (d *Device) SetUniformColor(u gpu.Uniform, c math.Color) {
	if u == gpu.NoUniform {
		return
	}
	gl.Uniform4f(int32(u), c.R, c.G, c.B, c.A)
	d.stats.UniformUploads++
}

func (d *Device) SetUniformVec3(u gpu.Uniform, v math.Vec3) {
	if u == gpu.NoUniform {
		return
	}
	gl.Uniform3f(int32(u), v.X, v.Y, v.Z)
	d.stats.UniformUploads++
}

func (d *Device) CreateVertexArray() (gpu.VertexArray, error) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	if vao == 0 {
		return 0, fmt.Errorf("glGenVertexArrays returned no name: %v", glError())
	}
	d.stats.VertexArrays++
	return gpu.VertexArray(vao), nil
}

func (d *Device) CreateVertexBuffer(vao gpu.VertexArray, attrib uint32, data []math.Vec3) (gpu.Buffer, error) {
	gl.BindVertexArray(uint32(vao))
	defer gl.BindVertexArray(0)

	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	size := len(data) * int(unsafe.Sizeof(math.Vec3{}))
	gl.BufferData(gl.ARRAY_BUFFER, size, dataPtr(data), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(attrib, 3, gl.FLOAT, false, int32(unsafe.Sizeof(math.Vec3{})), 0)
	gl.EnableVertexAttribArray(attrib)

	if err := glError(); err != nil {
		gl.DeleteBuffers(1, &buf)
		return 0, fmt.Errorf("vertex buffer: %w", err)
	}
	return d.track(buf, size), nil
}

func (d *Device) CreateIndexBuffer(vao gpu.VertexArray, indices []uint32) (gpu.Buffer, error) {
	gl.BindVertexArray(uint32(vao))
	defer gl.BindVertexArray(0)

	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf)
	size := len(indices) * 4
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, size, dataPtr(indices), gl.STATIC_DRAW)

	if err := glError(); err != nil {
		gl.DeleteBuffers(1, &buf)
		return 0, fmt.Errorf("index buffer: %w", err)
	}
	return d.track(buf, size), nil
}

func (d *Device) track(buf uint32, size int) gpu.Buffer {
	b := gpu.Buffer(buf)
	d.buffers[b] = size
	d.stats.Buffers++
	d.stats.BufferBytes += size
	return b
}

func (d *Device) DeleteBuffers(buffers ...gpu.Buffer) {
	for _, b := range buffers {
		size, ok := d.buffers[b]
		if !ok {
			continue
		}
		id := uint32(b)
		gl.DeleteBuffers(1, &id)
		delete(d.buffers, b)
		d.stats.Buffers--
		d.stats.BufferBytes -= size
	}
}

func (d *Device) DeleteVertexArray(vao gpu.VertexArray) {
	if vao == 0 {
		return
	}
	id := uint32(vao)
	gl.DeleteVertexArrays(1, &id)
	d.stats.VertexArrays--
}

func (d *Device) DrawTriangles(vao gpu.VertexArray, indexCount int32) {
	gl.BindVertexArray(uint32(vao))
	gl.DrawElements(gl.TRIANGLES, indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	d.stats.DrawCalls++
	d.stats.Indices += int(indexCount)
}

func (d *Device) DrawLines(points []math.Vec4, color math.Color) {
	n := len(points) &^ 1
	if n == 0 {
		return
	}

	d.scratch = d.scratch[:0]
	for _, p := range points[:n] {
		d.scratch = append(d.scratch, p[0], p[1], p[2], p[3])
	}

	gl.UseProgram(d.lineProgram)
	gl.Uniform4f(d.lineColor, color.R, color.G, color.B, color.A)
	gl.BindVertexArray(d.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.lineVBO)
	size := len(d.scratch) * 4
	if size > d.lineCap {
		gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(d.scratch), gl.DYNAMIC_DRAW)
		d.lineCap = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(d.scratch))
	}
	gl.DrawArrays(gl.LINES, 0, int32(n))
	gl.BindVertexArray(0)
	gl.UseProgram(uint32(d.current))

	d.stats.DrawCalls++
	d.stats.LineDraws++
	d.stats.LineSegments += n / 2
}

func (d *Device) Flush() {
	gl.Flush()
}

func (d *Device) ReadPixels(width, height int32) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("read pixels: invalid size %dx%d", width, height)
	}
	pixels := make([]byte, int(width)*int(height)*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	if err := glError(); err != nil {
		return nil, fmt.Errorf("read pixels: %w", err)
	}
	return pixels, nil
}

func (d *Device) Stats() gpu.Stats { return d.stats }

func (d *Device) ResetStats() { d.stats.ResetFrame() }

func dataPtr[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}

func glError() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("GL error 0x%04x", code)
	}
	return nil
}
