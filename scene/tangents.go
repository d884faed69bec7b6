package scene

import (
	"pbr-viewer/core"
	"pbr-viewer/math"
)

// ComputeTangents fills per-vertex tangents and bitangents for tangent-space
// normal and parallax mapping. Triangles with zero UV area contribute
// nothing; vertices left without a frame get one perpendicular to the normal.
func ComputeTangents(m *Mesh) {
	if m.DrawMode != core.DrawTriangles {
		return
	}
	for i := range m.Vertices {
		m.Vertices[i].Tangent = math.Vec3{}
		m.Vertices[i].Bitangent = math.Vec3{}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		accumulateTriangle(m, m.Indices[i], m.Indices[i+1], m.Indices[i+2])
	}

	// Gram-Schmidt against the normal.
	for i := range m.Vertices {
		v := &m.Vertices[i]
		n := v.Normal
		t := v.Tangent.Sub(n.Mul(n.Dot(v.Tangent)))
		if t.LengthSqr() < 1e-8 {
			t = anyPerpendicular(n)
		}
		v.Tangent = t.Normalize()

		b := v.Bitangent
		if b.LengthSqr() < 1e-8 {
			b = n.Cross(v.Tangent)
		}
		v.Bitangent = b.Normalize()
	}
}

func accumulateTriangle(m *Mesh, i0, i1, i2 uint32) {
	if int(i0) >= len(m.Vertices) || int(i1) >= len(m.Vertices) || int(i2) >= len(m.Vertices) {
		return
	}
	v0, v1, v2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]

	e1 := v1.Position.Sub(v0.Position)
	e2 := v2.Position.Sub(v0.Position)
	du1, dv1 := v1.UV.X-v0.UV.X, v1.UV.Y-v0.UV.Y
	du2, dv2 := v2.UV.X-v0.UV.X, v2.UV.Y-v0.UV.Y

	denom := du1*dv2 - du2*dv1
	if denom == 0 {
		return
	}
	r := 1 / denom
	t := e1.Mul(dv2 * r).Sub(e2.Mul(dv1 * r))
	b := e2.Mul(du1 * r).Sub(e1.Mul(du2 * r))

	for _, idx := range [3]uint32{i0, i1, i2} {
		m.Vertices[idx].Tangent = m.Vertices[idx].Tangent.Add(t)
		m.Vertices[idx].Bitangent = m.Vertices[idx].Bitangent.Add(b)
	}
}

func anyPerpendicular(n math.Vec3) math.Vec3 {
	axis := math.Vec3{X: 1}
	if n.X > 0.9 || n.X < -0.9 {
		axis = math.Vec3{Y: 1}
	}
	return axis.Sub(n.Mul(n.Dot(axis)))
}
