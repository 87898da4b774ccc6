package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/sceneview/internal/engine/mesh"
	"github.com/Faultbox/sceneview/pkg/math"
)

// objRef is one face corner: 0-based position and normal indices, -1 when absent.
type objRef struct {
	v, vn int
}

// ReadOBJ parses Wavefront OBJ geometry. Polygons are fan-triangulated,
// texture coordinates, groups and materials are ignored. When any face
// corner lacks a normal the mesh gets generated smooth normals.
func ReadOBJ(r io.Reader, name string) (*mesh.TriangleMesh, error) {
	var positions, normals []math.Vec3
	var faces [][]objRef

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj %s:%d: %w", name, lineNo, err)
			}
			positions = append(positions, p)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj %s:%d: %w", name, lineNo, err)
			}
			normals = append(normals, n)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj %s:%d: face with %d vertices", name, lineNo, len(fields)-1)
			}
			face := make([]objRef, 0, len(fields)-1)
			for _, f := range fields[1:] {
				ref, err := parseRef(f, len(positions), len(normals))
				if err != nil {
					return nil, fmt.Errorf("obj %s:%d: %w", name, lineNo, err)
				}
				face = append(face, ref)
			}
			faces = append(faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj %s: %w", name, err)
	}

	return buildOBJ(name, positions, normals, faces)
}

// buildOBJ emits one vertex per distinct (position, normal) pair.
func buildOBJ(name string, positions, normals []math.Vec3, faces [][]objRef) (*mesh.TriangleMesh, error) {
	withNormals := len(normals) > 0
	for _, f := range faces {
		for _, ref := range f {
			if ref.vn < 0 {
				withNormals = false
			}
		}
	}

	index := make(map[objRef]uint32)
	var verts, norms []math.Vec3
	var tris []mesh.Triangle
	corner := func(ref objRef) uint32 {
		if !withNormals {
			ref.vn = -1
		}
		if i, ok := index[ref]; ok {
			return i
		}
		i := uint32(len(verts))
		index[ref] = i
		verts = append(verts, positions[ref.v])
		if withNormals {
			norms = append(norms, normals[ref.vn])
		}
		return i
	}

	for _, f := range faces {
		a := corner(f[0])
		for k := 1; k+1 < len(f); k++ {
			tris = append(tris, mesh.Triangle{a, corner(f[k]), corner(f[k+1])})
		}
	}

	m, err := mesh.New(name, verts, norms, tris)
	if err != nil {
		return nil, err
	}
	return m.WithNormals(), nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	if len(fields) < 3 {
		return math.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var c [3]float32
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math.Vec3{}, err
		}
		c[i] = float32(f)
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// parseRef parses v, v/vt, v//vn or v/vt/vn. Negative indices count back
// from the last element read so far.
func parseRef(s string, numV, numVN int) (objRef, error) {
	parts := strings.Split(s, "/")
	v, err := resolveIndex(parts[0], numV)
	if err != nil {
		return objRef{}, fmt.Errorf("vertex %q: %w", s, err)
	}
	ref := objRef{v: v, vn: -1}
	if len(parts) == 3 && parts[2] != "" {
		if ref.vn, err = resolveIndex(parts[2], numVN); err != nil {
			return objRef{}, fmt.Errorf("normal %q: %w", s, err)
		}
	}
	return ref, nil
}

func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return 0, fmt.Errorf("index %d out of range [1, %d]", i, n)
	}
}
