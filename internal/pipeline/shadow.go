package pipeline

import "pbr-viewer/math"

type ShadowSettings struct {
	Size int
	Near float32
	Far  float32
}

func DefaultShadowSettings() ShadowSettings {
	return ShadowSettings{Size: 1024, Near: 0.1, Far: 100}
}

// ShadowProjection is the square 90 degree frustum covering one cube face.
func ShadowProjection(s ShadowSettings) math.Mat4 {
	return math.Mat4Perspective(math.Radians(90), 1, s.Near, s.Far)
}

// ShadowTransforms returns the light-space matrix for every cube face, in
// face order.
func ShadowTransforms(light math.Vec3, s ShadowSettings) [math.CubeFaceCount]math.Mat4 {
	return math.CaptureTransforms(light, ShadowProjection(s))
}
