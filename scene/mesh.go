package scene

import (
	"pbr-viewer/core"
)

// Mesh holds CPU-side vertex/index data.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32
	DrawMode core.DrawMode

	// Material holds the PBR inputs. If nil, DefaultMaterial() is used.
	Material *Material
}

// CreateMeshFromData builds an indexed triangle mesh. Non-indexed input gets
// sequential indices so every mesh draws the same way.
func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	if len(indices) == 0 {
		indices = make([]uint32, len(vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
}

// MaterialOrDefault never returns nil.
func (m *Mesh) MaterialOrDefault() *Material {
	if m.Material == nil {
		m.Material = DefaultMaterial()
	}
	return m.Material
}
