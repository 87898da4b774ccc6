package renderer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/debug"
	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/internal/engine/scene"
	"github.com/Faultbox/sceneview/internal/engine/vertexarray"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Render draws one frame:
//
//	update -> startRender -> mode dispatch (per-actor draws) -> endRender
//
// In smooth mode a scene without lights is lit by a default light that is
// added for the frame and removed before Render returns.
//
// ctx is checked after each actor; when it is done the remaining actors
// are skipped, the frame is still ended and ctx.Err() is returned.
func (r *Renderer) Render(ctx context.Context) error {
	if r.rendering {
		return ErrReentrant
	}
	r.rendering = true
	defer func() { r.rendering = false }()

	r.frame = FrameStats{}
	r.startRender()

	var err error
	if r.mode == Wireframe {
		err = r.renderWireframe(ctx)
	} else {
		err = r.renderFaces(ctx)
	}

	r.endRender()
	if err != nil {
		r.frame.Aborted = true
		r.log.Debug("frame aborted", zap.Object("frame", r.frame), zap.Error(err))
	}
	return err
}

// update recomputes the view-projection matrix and sets the viewport.
func (r *Renderer) update() {
	r.vp = r.camera.ProjectionMatrix().Mul(r.camera.WorldToCameraMatrix())
	r.dev.Viewport(0, 0, r.width, r.height)
}

func (r *Renderer) startRender() {
	r.update()

	r.dev.Clear(r.scene.BackgroundColor)

	s := debug.GroundSize(r.camera.WindowHeight(), r.camera.AspectRatio())
	r.drawGround(debug.GroundGrid(s, s/debug.GroundDivisions))

	r.dev.UseProgram(r.program)
	r.dev.SetUniformMat4(r.loc.viewProjection, r.vp)
	r.dev.SetUniformColor(r.loc.ambientLight, r.scene.AmbientLight)
}

func (r *Renderer) endRender() {
	if r.IsFlagSet(DrawSceneBounds) {
		if b := r.scene.Bounds(); !b.IsEmpty() {
			r.drawBox(b, math.DimGray)
		}
	}
	r.dev.Flush()
	r.dev.UseProgram(0)
}

func (r *Renderer) renderWireframe(ctx context.Context) error {
	if lights := r.scene.Lights(); len(lights) > 0 {
		r.uploadLight(lights[0])
	} else {
		r.uploadLight(nil)
	}
	r.dev.SetPolygonMode(gpu.Line)
	return r.drawActors(ctx)
}

func (r *Renderer) renderFaces(ctx context.Context) error {
	if r.scene.NumLights() == 0 {
		light := lighting.Default()
		r.scene.AddLight(light)
		defer r.scene.RemoveLight(light)
	}
	r.uploadLight(r.scene.Lights()[0])

	r.dev.SetPolygonMode(gpu.Fill)
	r.dev.SetDepthTest(true)
	err := r.drawActors(ctx)
	r.dev.SetDepthTest(false)
	return err
}

// uploadLight sets the light uniforms. A nil light, or a renderer without
// UseLights, contributes no diffuse term.
func (r *Renderer) uploadLight(l *lighting.Light) {
	if l == nil || !r.IsFlagSet(UseLights) {
		r.dev.SetUniformVec3(r.loc.lightPosition, lighting.DefaultPosition)
		r.dev.SetUniformColor(r.loc.lightColor, math.Black)
		return
	}
	r.dev.SetUniformVec3(r.loc.lightPosition, l.Position)
	r.dev.SetUniformColor(r.loc.lightColor, l.Color)
}

func (r *Renderer) drawActors(ctx context.Context) error {
	for _, a := range r.scene.Actors() {
		if !a.Visible() {
			r.frame.ActorsHidden++
			continue
		}
		r.drawModel(a.Model())
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// drawModel draws one primitive and its per-actor overlays. Primitives
// without geometry are skipped.
func (r *Renderer) drawModel(p *scene.Primitive) {
	m := p.Mesh()
	e, err := r.cache.Acquire(m)
	if err != nil {
		r.frame.ActorsSkipped++
		if errors.Is(err, vertexarray.ErrNoGeometry) {
			r.log.Debug("skipping actor without geometry")
		} else {
			r.log.Warn("skipping actor", zap.String("mesh", m.Name()), zap.Error(err))
		}
		return
	}

	if r.IsFlagSet(DrawActorBounds) {
		r.drawBox(p.Bounds(), math.DimGray)
	}

	t := p.Matrix()
	mat := p.Material()
	r.dev.SetUniformMat4(r.loc.modelMatrix, t)
	r.dev.SetUniformColor(r.loc.ambientReflectance, mat.Ambient)
	r.dev.SetUniformColor(r.loc.diffuseReflectance, mat.Diffuse)
	r.cache.Render(e)
	r.frame.ActorsDrawn++

	if r.IsFlagSet(DrawNormals) {
		r.drawNormals(m.Vertices(), m.Normals(), t)
	}
	if r.IsFlagSet(DrawAxes) {
		r.drawAxes(t.Translation(), t.Mat3().NormalizeColumns())
	}
}
