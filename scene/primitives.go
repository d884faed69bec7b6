package scene

import (
	stdmath "math"

	"pbr-viewer/core"
	"pbr-viewer/math"
)

// cubeCorners are the 36 corners of a ±1 cube, two triangles per face,
// wound counter-clockwise seen from outside.
var cubeCorners = [36][3]float32{
	// back
	{-1, -1, -1}, {1, 1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, -1, -1}, {-1, 1, -1},
	// front
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {1, 1, 1}, {-1, 1, 1}, {-1, -1, 1},
	// left
	{-1, 1, 1}, {-1, 1, -1}, {-1, -1, -1}, {-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1},
	// right
	{1, 1, 1}, {1, -1, -1}, {1, 1, -1}, {1, -1, -1}, {1, 1, 1}, {1, -1, 1},
	// bottom
	{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {1, -1, 1}, {-1, -1, 1}, {-1, -1, -1},
	// top
	{-1, 1, -1}, {1, 1, 1}, {1, 1, -1}, {1, 1, 1}, {-1, 1, -1}, {-1, 1, 1},
}

// CreateUnitCube generates the position-only ±1 cube used for cubemap
// capture, the skybox and the light marker.
func CreateUnitCube() *Mesh {
	vertices := make([]core.Vertex, len(cubeCorners))
	for i, c := range cubeCorners {
		vertices[i] = core.Vertex{
			Position: math.Vec3{X: c[0], Y: c[1], Z: c[2]},
			Color:    core.ColorWhite,
		}
	}
	return CreateMeshFromData("UnitCube", vertices, nil)
}

// CreateScreenQuad generates a four-vertex triangle strip covering NDC, with
// UVs running 0..1 from the bottom-left.
func CreateScreenQuad() *Mesh {
	vertices := []core.Vertex{
		{Position: math.Vec3{X: -1, Y: 1}, UV: math.Vec2{X: 0, Y: 1}, Color: core.ColorWhite},
		{Position: math.Vec3{X: -1, Y: -1}, UV: math.Vec2{X: 0, Y: 0}, Color: core.ColorWhite},
		{Position: math.Vec3{X: 1, Y: 1}, UV: math.Vec2{X: 1, Y: 1}, Color: core.ColorWhite},
		{Position: math.Vec3{X: 1, Y: -1}, UV: math.Vec2{X: 1, Y: 0}, Color: core.ColorWhite},
	}
	mesh := CreateMeshFromData("ScreenQuad", vertices, nil)
	mesh.DrawMode = core.DrawTriangleStrip
	return mesh
}

// CreateUVSphere generates a unit sphere as one triangle strip that snakes
// across the rings, reversing direction on odd rows.
func CreateUVSphere(segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	vertices := make([]core.Vertex, 0, (segments+1)*(rings+1))
	for y := 0; y <= rings; y++ {
		for x := 0; x <= segments; x++ {
			u := float64(x) / float64(segments)
			v := float64(y) / float64(rings)
			sinV := stdmath.Sin(v * stdmath.Pi)
			p := math.Vec3{
				X: float32(stdmath.Cos(u*2*stdmath.Pi) * sinV),
				Y: float32(stdmath.Cos(v * stdmath.Pi)),
				Z: float32(stdmath.Sin(u*2*stdmath.Pi) * sinV),
			}
			// Tangent follows increasing u around the equator.
			tangent := math.Vec3{X: float32(-stdmath.Sin(u * 2 * stdmath.Pi)), Z: float32(stdmath.Cos(u * 2 * stdmath.Pi))}
			vertices = append(vertices, core.Vertex{
				Position:  p,
				Normal:    p,
				UV:        math.Vec2{X: float32(u), Y: float32(v)},
				Color:     core.ColorWhite,
				Tangent:   tangent,
				Bitangent: p.Cross(tangent),
			})
		}
	}

	stride := uint32(segments + 1)
	indices := make([]uint32, 0, rings*(segments+1)*2)
	for y := uint32(0); y < uint32(rings); y++ {
		if y%2 == 0 {
			for x := uint32(0); x <= uint32(segments); x++ {
				indices = append(indices, y*stride+x, (y+1)*stride+x)
			}
		} else {
			for x := int(segments); x >= 0; x-- {
				indices = append(indices, (y+1)*stride+uint32(x), y*stride+uint32(x))
			}
		}
	}

	mesh := CreateMeshFromData("UVSphere", vertices, indices)
	mesh.DrawMode = core.DrawTriangleStrip
	return mesh
}
