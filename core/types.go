package core

import (
	"pbr-viewer/math"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// Vertex is the interleaved layout every mesh uploads. Attribute locations
// follow field order: 0 position, 1 normal, 2 uv, 3 color, 4 tangent,
// 5 bitangent.
type Vertex struct {
	Position  math.Vec3
	Normal    math.Vec3
	UV        math.Vec2
	Color     Color
	Tangent   math.Vec3
	Bitangent math.Vec3
}

// DrawMode selects how a mesh's indices are assembled.
type DrawMode int

const (
	DrawTriangles DrawMode = iota
	DrawTriangleStrip
)
