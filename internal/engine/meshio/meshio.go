// Package meshio imports triangle meshes from files: Wavefront OBJ and
// glTF 2.0 (.gltf, .glb).
package meshio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/sceneview/internal/engine/mesh"
)

// ErrUnsupportedFormat is returned for file extensions no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Load reads the mesh at path, choosing the reader by extension. The mesh
// is named after the file.
func Load(path string) (*mesh.TriangleMesh, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open obj %q: %w", path, err)
		}
		defer f.Close()
		return ReadOBJ(f, name)
	case ".gltf", ".glb":
		return LoadGLTF(path, name)
	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
}
