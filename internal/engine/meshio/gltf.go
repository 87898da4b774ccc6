package meshio

import (
	"fmt"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/sceneview/internal/engine/mesh"
	"github.com/Faultbox/sceneview/pkg/math"
)

// ReadGLTF decodes a self-contained glTF document (GLB, or JSON with
// embedded buffers) and flattens it with FromGLTF.
func ReadGLTF(r io.Reader, name string) (*mesh.TriangleMesh, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("gltf %s: %w", name, err)
	}
	return FromGLTF(doc, name)
}

// LoadGLTF opens a .gltf or .glb file; external buffers are resolved
// relative to the file.
func LoadGLTF(path, name string) (*mesh.TriangleMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	return FromGLTF(doc, name)
}

// FromGLTF merges every triangle primitive reachable from the default
// scene into one mesh, baking node transforms into the vertices. A
// document without scene nodes contributes each mesh once, untransformed.
// Primitives with another topology are skipped.
func FromGLTF(doc *gltf.Document, name string) (*mesh.TriangleMesh, error) {
	b := &gltfBuilder{doc: doc, normals: true}

	roots := sceneRoots(doc)
	if len(roots) == 0 {
		for i := range doc.Meshes {
			if err := b.addMesh(i, math.Identity()); err != nil {
				return nil, fmt.Errorf("gltf %s: %w", name, err)
			}
		}
	}
	for _, n := range roots {
		if err := b.addNode(n, math.Identity(), 0); err != nil {
			return nil, fmt.Errorf("gltf %s: %w", name, err)
		}
	}

	norms := b.norms
	if !b.normals {
		norms = nil
	}
	m, err := mesh.New(name, b.verts, norms, b.tris)
	if err != nil {
		return nil, err
	}
	return m.WithNormals(), nil
}

// sceneRoots returns the root nodes of the default scene, or of the first
// scene when none is marked default.
func sceneRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) == 0 {
		return nil
	}
	s := 0
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		s = *doc.Scene
	}
	return doc.Scenes[s].Nodes
}

// maxNodeDepth bounds recursion on malformed documents with cyclic children.
const maxNodeDepth = 64

type gltfBuilder struct {
	doc     *gltf.Document
	verts   []math.Vec3
	norms   []math.Vec3
	tris    []mesh.Triangle
	normals bool // every primitive so far carried normals
}

func (b *gltfBuilder) addNode(i int, parent math.Mat4, depth int) error {
	if i < 0 || i >= len(b.doc.Nodes) {
		return fmt.Errorf("node %d out of range", i)
	}
	if depth > maxNodeDepth {
		return fmt.Errorf("node %d: hierarchy deeper than %d", i, maxNodeDepth)
	}
	n := b.doc.Nodes[i]
	world := parent.Mul(nodeMatrix(n))
	if n.Mesh != nil {
		if err := b.addMesh(*n.Mesh, world); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := b.addNode(c, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func nodeMatrix(n *gltf.Node) math.Mat4 {
	if n.Matrix != gltf.DefaultMatrix && n.Matrix != [16]float64{} {
		var m math.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	return math.TRS(
		math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])},
		math.Quat{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])},
		math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])},
	)
}

func (b *gltfBuilder) addMesh(i int, world math.Mat4) error {
	if i < 0 || i >= len(b.doc.Meshes) {
		return fmt.Errorf("mesh %d out of range", i)
	}
	// normals transform by the inverse transpose
	inv := world.Inverse()
	for pi, prim := range b.doc.Meshes[i].Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		if err := b.addPrimitive(prim, world, inv); err != nil {
			return fmt.Errorf("mesh %d primitive %d: %w", i, pi, err)
		}
	}
	return nil
}

func (b *gltfBuilder) accessor(i int) (*gltf.Accessor, error) {
	if i < 0 || i >= len(b.doc.Accessors) || b.doc.Accessors[i] == nil {
		return nil, fmt.Errorf("accessor %d out of range", i)
	}
	return b.doc.Accessors[i], nil
}

func (b *gltfBuilder) addPrimitive(prim *gltf.Primitive, world, inv math.Mat4) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return fmt.Errorf("no %s attribute", gltf.POSITION)
	}
	acc, err := b.accessor(posIdx)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}
	positions, err := modeler.ReadPosition(b.doc, acc, nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if acc, err = b.accessor(idx); err != nil {
			return fmt.Errorf("normals: %w", err)
		}
		if normals, err = modeler.ReadNormal(b.doc, acc, nil); err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}
	if len(normals) != len(positions) {
		b.normals = false
	}

	var indices []uint32
	if prim.Indices != nil {
		if acc, err = b.accessor(*prim.Indices); err != nil {
			return fmt.Errorf("indices: %w", err)
		}
		if indices, err = modeler.ReadIndices(b.doc, acc, nil); err != nil {
			return fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for k := range indices {
			indices[k] = uint32(k)
		}
	}

	base := uint32(len(b.verts))
	for k, p := range positions {
		b.verts = append(b.verts, world.TransformPoint(math.Vec3{X: p[0], Y: p[1], Z: p[2]}))
		var n math.Vec3
		if k < len(normals) {
			n = math.Vec3{
				X: inv[0]*normals[k][0] + inv[1]*normals[k][1] + inv[2]*normals[k][2],
				Y: inv[4]*normals[k][0] + inv[5]*normals[k][1] + inv[6]*normals[k][2],
				Z: inv[8]*normals[k][0] + inv[9]*normals[k][1] + inv[10]*normals[k][2],
			}.Normalize()
		}
		b.norms = append(b.norms, n)
	}
	for k := 0; k+2 < len(indices); k += 3 {
		b.tris = append(b.tris, mesh.Triangle{base + indices[k], base + indices[k+1], base + indices[k+2]})
	}
	return nil
}
