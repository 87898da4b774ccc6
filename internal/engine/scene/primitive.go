package scene

import (
	"github.com/Faultbox/sceneview/internal/engine/material"
	"github.com/Faultbox/sceneview/internal/engine/mesh"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Primitive is a drawable bundle of a shared mesh, a shared material and a
// model matrix.
type Primitive struct {
	mesh     *mesh.TriangleMesh
	material *material.Material
	matrix   math.Mat4

	// version changes whenever the world bounds may have changed.
	version uint64
}

// NewPrimitive returns a primitive with an identity transform. A nil
// material resolves to the default material.
func NewPrimitive(m *mesh.TriangleMesh, mat *material.Material) *Primitive {
	return &Primitive{
		mesh:     m,
		material: material.Resolve(mat),
		matrix:   math.Identity(),
	}
}

// Mesh returns the mesh, which may be nil for a placeholder.
func (p *Primitive) Mesh() *mesh.TriangleMesh { return p.mesh }

// Material returns the material; never nil.
func (p *Primitive) Material() *material.Material { return p.material }

// Matrix returns the model-to-world transform.
func (p *Primitive) Matrix() math.Mat4 { return p.matrix }

// SetMesh replaces the mesh.
func (p *Primitive) SetMesh(m *mesh.TriangleMesh) {
	p.mesh = m
	p.version++
}

// SetMaterial replaces the material. nil selects the default material.
func (p *Primitive) SetMaterial(m *material.Material) {
	p.material = material.Resolve(m)
}

// SetMatrix sets the transform from position, rotation and scale (T*R*S).
func (p *Primitive) SetMatrix(position math.Vec3, rotation math.Quat, scale math.Vec3) {
	p.SetTransform(math.TRS(position, rotation, scale))
}

// SetTransform sets the model matrix directly.
func (p *Primitive) SetTransform(m math.Mat4) {
	p.matrix = m
	p.version++
}

// Bounds returns the world-space bounding box, empty without geometry.
func (p *Primitive) Bounds() math.Bounds3 {
	if p.mesh == nil {
		return math.EmptyBounds()
	}
	return p.mesh.Bounds().Transform(p.matrix)
}

// Actor is a scene node pairing a primitive with a visibility flag.
type Actor struct {
	model   *Primitive
	visible bool
}

// NewActor returns a visible actor owning model.
func NewActor(model *Primitive) *Actor {
	return &Actor{model: model, visible: true}
}

// Model returns the actor's primitive.
func (a *Actor) Model() *Primitive { return a.model }

// Visible reports whether the actor is drawn.
func (a *Actor) Visible() bool { return a.visible }

// SetVisible shows or hides the actor.
func (a *Actor) SetVisible(v bool) { a.visible = v }
