package gpu

import (
	"fmt"
	"strings"

	"github.com/Faultbox/sceneview/pkg/math"
)

// Op names a recorded device call.
type Op string

const (
	OpClear       Op = "clear"
	OpPolygonMode Op = "polygon-mode"
	OpDepthTest   Op = "depth-test"
	OpUseProgram  Op = "use-program"
	OpTriangles   Op = "triangles"
	OpLines       Op = "lines"
	OpFlush       Op = "flush"
)

// Event is one recorded state change or draw.
type Event struct {
	Op      Op
	VAO     VertexArray
	Program Program
	Count   int // indices for OpTriangles, segments for OpLines
	Color   math.Color
	Enabled bool
	Mode    PolygonMode
}

type recordedProgram struct {
	source   string
	uniforms map[string]Uniform
}

// Recorder is a Device that keeps everything in memory. It records the
// calls it receives and the last value uploaded to every uniform.
//
// Set FailPrograms or FailBufferAt before use to simulate resource
// failures.
type Recorder struct {
	// FailPrograms makes CreateProgram fail.
	FailPrograms bool
	// FailBufferAt makes the n-th buffer creation (1-based) fail; 0 disables.
	FailBufferAt int
	// FailVertexArrays makes CreateVertexArray fail.
	FailVertexArrays bool

	Events []Event

	nextID        uint32
	programs      map[Program]*recordedProgram
	vaos          map[VertexArray]bool
	buffers       map[Buffer]int
	buffersMade   int
	uniformNames  map[Uniform]string
	uniformValues map[string]any

	viewport   [4]int32
	clearColor math.Color
	mode       PolygonMode
	depthTest  bool
	current    Program
	stats      Stats
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		programs:      make(map[Program]*recordedProgram),
		vaos:          make(map[VertexArray]bool),
		buffers:       make(map[Buffer]int),
		uniformNames:  make(map[Uniform]string),
		uniformValues: make(map[string]any),
	}
}

func (r *Recorder) id() uint32 {
	r.nextID++
	return r.nextID
}

func (r *Recorder) record(e Event) {
	r.Events = append(r.Events, e)
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.viewport = [4]int32{x, y, width, height}
}

// ViewportRect returns the last viewport set.
func (r *Recorder) ViewportRect() [4]int32 { return r.viewport }

func (r *Recorder) Clear(c math.Color) {
	r.clearColor = c
	r.stats.Clears++
	r.record(Event{Op: OpClear, Color: c})
}

// ClearColor returns the last clear color.
func (r *Recorder) ClearColor() math.Color { return r.clearColor }

func (r *Recorder) SetPolygonMode(mode PolygonMode) {
	r.mode = mode
	r.record(Event{Op: OpPolygonMode, Mode: mode})
}

func (r *Recorder) PolygonMode() PolygonMode { return r.mode }

func (r *Recorder) SetDepthTest(enabled bool) {
	r.depthTest = enabled
	r.record(Event{Op: OpDepthTest, Enabled: enabled})
}

func (r *Recorder) DepthTest() bool { return r.depthTest }

func (r *Recorder) CreateProgram(vertexSource, fragmentSource string) (Program, error) {
	if r.FailPrograms {
		return 0, fmt.Errorf("create program: %w", ErrInjected)
	}
	p := Program(r.id())
	r.programs[p] = &recordedProgram{
		source:   vertexSource + "\n" + fragmentSource,
		uniforms: make(map[string]Uniform),
	}
	r.stats.Programs++
	return p, nil
}

func (r *Recorder) DeleteProgram(p Program) {
	if _, ok := r.programs[p]; !ok {
		return
	}
	delete(r.programs, p)
	r.stats.Programs--
	if r.current == p {
		r.current = 0
	}
}

func (r *Recorder) UseProgram(p Program) {
	r.current = p
	r.record(Event{Op: OpUseProgram, Program: p})
}

func (r *Recorder) CurrentProgram() Program { return r.current }

// UniformLocation resolves names that appear in the program source.
func (r *Recorder) UniformLocation(p Program, name string) Uniform {
	prog, ok := r.programs[p]
	if !ok || name == "" || !strings.Contains(prog.source, name) {
		return NoUniform
	}
	if u, ok := prog.uniforms[name]; ok {
		return u
	}
	u := Uniform(r.id())
	prog.uniforms[name] = u
	r.uniformNames[u] = name
	return u
}

func (r *Recorder) setUniform(u Uniform, v any) {
	if u == NoUniform {
		return
	}
	r.stats.UniformUploads++
	if name, ok := r.uniformNames[u]; ok {
		r.uniformValues[name] = v
	}
}

func (r *Recorder) SetUniformMat4(u Uniform, m math.Mat4)   { r.setUniform(u, m) }
func (r *Recorder) SetUniformColor(u Uniform, c math.Color) { r.setUniform(u, c) }
func (r *Recorder) SetUniformVec3(u Uniform, v math.Vec3)   { r.setUniform(u, v) }

// UniformValue returns the last value uploaded to the named uniform.
func (r *Recorder) UniformValue(name string) (any, bool) {
	v, ok := r.uniformValues[name]
	return v, ok
}

func (r *Recorder) CreateVertexArray() (VertexArray, error) {
	if r.FailVertexArrays {
		return 0, fmt.Errorf("create vertex array: %w", ErrInjected)
	}
	vao := VertexArray(r.id())
	r.vaos[vao] = true
	r.stats.VertexArrays++
	return vao, nil
}

func (r *Recorder) createBuffer(vao VertexArray, size int) (Buffer, error) {
	r.buffersMade++
	if r.FailBufferAt > 0 && r.buffersMade == r.FailBufferAt {
		return 0, fmt.Errorf("create buffer %d: %w", r.buffersMade, ErrInjected)
	}
	if !r.vaos[vao] {
		return 0, fmt.Errorf("create buffer: unknown vertex array %d", vao)
	}
	b := Buffer(r.id())
	r.buffers[b] = size
	r.stats.Buffers++
	r.stats.BufferBytes += size
	return b, nil
}

func (r *Recorder) CreateVertexBuffer(vao VertexArray, attrib uint32, data []math.Vec3) (Buffer, error) {
	return r.createBuffer(vao, len(data)*12)
}

func (r *Recorder) CreateIndexBuffer(vao VertexArray, indices []uint32) (Buffer, error) {
	return r.createBuffer(vao, len(indices)*4)
}

func (r *Recorder) DeleteBuffers(buffers ...Buffer) {
	for _, b := range buffers {
		size, ok := r.buffers[b]
		if !ok {
			continue
		}
		delete(r.buffers, b)
		r.stats.Buffers--
		r.stats.BufferBytes -= size
	}
}

func (r *Recorder) DeleteVertexArray(vao VertexArray) {
	if !r.vaos[vao] {
		return
	}
	delete(r.vaos, vao)
	r.stats.VertexArrays--
}

func (r *Recorder) DrawTriangles(vao VertexArray, indexCount int32) {
	r.stats.DrawCalls++
	r.stats.Indices += int(indexCount)
	r.record(Event{Op: OpTriangles, VAO: vao, Program: r.current, Count: int(indexCount), Mode: r.mode, Enabled: r.depthTest})
}

func (r *Recorder) DrawLines(points []math.Vec4, color math.Color) {
	n := len(points) / 2
	if n == 0 {
		return
	}
	r.stats.DrawCalls++
	r.stats.LineDraws++
	r.stats.LineSegments += n
	r.record(Event{Op: OpLines, Count: n, Color: color, Enabled: r.depthTest})
}

func (r *Recorder) Flush() {
	r.record(Event{Op: OpFlush})
}

// ReadPixels returns a frame filled with the last clear color.
func (r *Recorder) ReadPixels(width, height int32) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("read pixels: invalid size %dx%d", width, height)
	}
	px := [4]byte{
		byte(math.Clamp(r.clearColor.R, 0, 1) * 255),
		byte(math.Clamp(r.clearColor.G, 0, 1) * 255),
		byte(math.Clamp(r.clearColor.B, 0, 1) * 255),
		255,
	}
	out := make([]byte, int(width)*int(height)*4)
	for i := 0; i < len(out); i += 4 {
		copy(out[i:i+4], px[:])
	}
	return out, nil
}

func (r *Recorder) Stats() Stats { return r.stats }

// ResetStats zeroes the draw counters and drops the event log.
func (r *Recorder) ResetStats() {
	r.stats.ResetFrame()
	r.Events = r.Events[:0]
}

// Count returns how many recorded events have op.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, e := range r.Events {
		if e.Op == op {
			n++
		}
	}
	return n
}
