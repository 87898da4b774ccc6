package renderer

import (
	"github.com/Faultbox/sceneview/internal/engine/debug"
	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/pkg/math"
)

const normalLength = 0.5

func (r *Renderer) clip(p math.Vec3) math.Vec4 {
	return r.vp.MulVec4(p.Vec4(1))
}

// drawSegments projects world-space segments to clip space and draws them
// in one call.
func (r *Renderer) drawSegments(segs []debug.Segment, color math.Color) {
	if len(segs) == 0 {
		return
	}
	r.points = r.points[:0]
	for _, s := range segs {
		r.points = append(r.points, r.clip(s.A), r.clip(s.B))
	}
	r.dev.DrawLines(r.points, color)
}

func (r *Renderer) drawGround(g debug.Ground) {
	r.drawSegments(g.Lines, math.DimGray)
	r.drawSegments([]debug.Segment{g.XAxis}, math.Red)
	r.drawSegments([]debug.Segment{g.ZAxis}, math.RoyalBlue)
}

func (r *Renderer) drawBox(b math.Bounds3, color math.Color) {
	edges := debug.BoxEdges(b)
	r.drawSegments(edges[:], color)
}

// drawNormals draws a white glyph of fixed length along every transformed
// normal. Meshes without normals draw nothing.
func (r *Renderer) drawNormals(vertices, normals []math.Vec3, t math.Mat4) {
	if len(normals) == 0 {
		return
	}
	shafts := make([]debug.Segment, 0, len(vertices))
	cones := make([]math.Mat4, 0, len(vertices))
	for i, v := range vertices {
		p := t.TransformPoint(v)
		n := t.TransformVector(normals[i]).Normalize()
		end, cone := debug.Arrow(p, n, normalLength)
		shafts = append(shafts, debug.Segment{A: p, B: end})
		cones = append(cones, cone)
	}
	r.drawSegments(shafts, math.White)
	for _, c := range cones {
		r.drawCone(c, math.White)
	}
}

// drawAxes draws unit glyphs along the columns of axes from p, with depth
// testing off. The previous depth-test state is restored.
func (r *Renderer) drawAxes(p math.Vec3, axes math.Mat3) {
	depth := r.dev.DepthTest()
	r.dev.SetDepthTest(false)
	r.drawVector(p, axes.Column(0), 1, math.Red)
	r.drawVector(p, axes.Column(1), 1, math.Green)
	r.drawVector(p, axes.Column(2), 1, math.RoyalBlue)
	r.dev.SetDepthTest(depth)
}

func (r *Renderer) drawVector(p, d math.Vec3, s float32, color math.Color) {
	end, cone := debug.Arrow(p, d, s)
	r.drawSegments([]debug.Segment{{A: p, B: end}}, color)
	r.drawCone(cone, color)
}

// drawCone draws the glyph cone filled in a flat material of color, then
// restores the program binding and the polygon mode of the current mode.
func (r *Renderer) drawCone(t math.Mat4, color math.Color) {
	e, err := r.cache.Acquire(r.cone)
	if err != nil {
		return
	}

	current := r.dev.CurrentProgram()
	r.dev.UseProgram(r.program)
	r.dev.SetPolygonMode(gpu.Fill)
	r.dev.SetUniformMat4(r.loc.modelMatrix, t)
	r.dev.SetUniformColor(r.loc.ambientReflectance, color)
	r.dev.SetUniformColor(r.loc.diffuseReflectance, color)
	r.cache.Render(e)
	if r.mode == Wireframe {
		r.dev.SetPolygonMode(gpu.Line)
	}
	r.dev.UseProgram(current)
}
