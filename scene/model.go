package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"pbr-viewer/core"
)

// Model is the single loaded asset: its meshes flattened into model space.
type Model struct {
	Name   string
	Meshes []*Mesh
}

// LoadModel picks a loader by file extension. Texture problems inside the
// model are logged and the affected slot falls back to its material factor.
func LoadModel(path string, log zerolog.Logger) (*Model, error) {
	var (
		meshes []*Mesh
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		meshes, err = LoadOBJ(path, log)
	case ".gltf", ".glb":
		meshes, err = LoadGLTF(path, log)
	default:
		return nil, fmt.Errorf("load model %q: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, err
	}
	return &Model{Name: filepath.Base(path), Meshes: meshes}, nil
}

// Empty reports whether there is nothing to draw.
func (m *Model) Empty() bool {
	return m == nil || len(m.Meshes) == 0
}

// Triangles counts triangles across strips and lists.
func (m *Model) Triangles() int {
	if m == nil {
		return 0
	}
	var n int
	for _, mesh := range m.Meshes {
		if mesh.DrawMode == core.DrawTriangleStrip {
			if len(mesh.Indices) > 2 {
				n += len(mesh.Indices) - 2
			}
			continue
		}
		n += len(mesh.Indices) / 3
	}
	return n
}
