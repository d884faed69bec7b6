package math

import "math"

// CubeFace indexes cubemap faces in GL order, so GL_TEXTURE_CUBE_MAP_POSITIVE_X
// plus the face value addresses the matching image.
type CubeFace int

const (
	CubeFacePositiveX CubeFace = iota
	CubeFaceNegativeX
	CubeFacePositiveY
	CubeFaceNegativeY
	CubeFacePositiveZ
	CubeFaceNegativeZ
	CubeFaceCount
)

var cubeFaceNames = [CubeFaceCount]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

func (f CubeFace) String() string {
	if f < 0 || f >= CubeFaceCount {
		return "invalid"
	}
	return cubeFaceNames[f]
}

// CubeFaceBasis is the camera orientation used to render one face.
type CubeFaceBasis struct {
	Direction Vec3
	Up        Vec3
}

// CubeFaceBases is the one table every cubemap capture renders with:
// environment, irradiance, prefilter and the shadow map. The up vectors
// follow the GL face orientation so rendered images read back unflipped.
var CubeFaceBases = [CubeFaceCount]CubeFaceBasis{
	CubeFacePositiveX: {Direction: Vec3{1, 0, 0}, Up: Vec3{0, -1, 0}},
	CubeFaceNegativeX: {Direction: Vec3{-1, 0, 0}, Up: Vec3{0, -1, 0}},
	CubeFacePositiveY: {Direction: Vec3{0, 1, 0}, Up: Vec3{0, 0, 1}},
	CubeFaceNegativeY: {Direction: Vec3{0, -1, 0}, Up: Vec3{0, 0, -1}},
	CubeFacePositiveZ: {Direction: Vec3{0, 0, 1}, Up: Vec3{0, -1, 0}},
	CubeFaceNegativeZ: {Direction: Vec3{0, 0, -1}, Up: Vec3{0, -1, 0}},
}

// CaptureViews returns the six face view matrices centred at eye.
func CaptureViews(eye Vec3) [CubeFaceCount]Mat4 {
	var views [CubeFaceCount]Mat4
	for f, basis := range CubeFaceBases {
		views[f] = Mat4LookAt(eye, eye.Add(basis.Direction), basis.Up)
	}
	return views
}

// CaptureTransforms combines each face view with proj.
func CaptureTransforms(eye Vec3, proj Mat4) [CubeFaceCount]Mat4 {
	views := CaptureViews(eye)
	for f := range views {
		views[f] = views[f].Mul(proj)
	}
	return views
}

// CubeLookup mirrors the GL cubemap addressing rule: it returns the face a
// direction selects and the [0,1] texel coordinates within that face.
func CubeLookup(dir Vec3) (face CubeFace, s, t float32) {
	ax := float32(math.Abs(float64(dir.X)))
	ay := float32(math.Abs(float64(dir.Y)))
	az := float32(math.Abs(float64(dir.Z)))

	var sc, tc, ma float32
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if dir.X > 0 {
			face, sc, tc = CubeFacePositiveX, -dir.Z, -dir.Y
		} else {
			face, sc, tc = CubeFaceNegativeX, dir.Z, -dir.Y
		}
	case ay >= az:
		ma = ay
		if dir.Y > 0 {
			face, sc, tc = CubeFacePositiveY, dir.X, dir.Z
		} else {
			face, sc, tc = CubeFaceNegativeY, dir.X, -dir.Z
		}
	default:
		ma = az
		if dir.Z > 0 {
			face, sc, tc = CubeFacePositiveZ, dir.X, -dir.Y
		} else {
			face, sc, tc = CubeFaceNegativeZ, -dir.X, -dir.Y
		}
	}
	if ma == 0 {
		return CubeFacePositiveX, 0.5, 0.5
	}
	return face, (sc/ma + 1) / 2, (tc/ma + 1) / 2
}
