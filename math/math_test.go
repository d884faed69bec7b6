package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-4

func assertMatchesMGL(t *testing.T, want mgl32.Mat4, got Mat4) {
	t.Helper()
	for i := 0; i < 16; i++ {
		assert.InDelta(t, want[i], got[i/4][i%4], tolerance, "element %d", i)
	}
}

func assertVec3InDelta(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tolerance, "x")
	assert.InDelta(t, want.Y, got.Y, tolerance, "y")
	assert.InDelta(t, want.Z, got.Z, tolerance, "z")
}

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), v1.Add(v2))
	assert.Equal(t, NewVec3(3, 3, 3), v2.Sub(v1))
	assert.Equal(t, NewVec3(2, 4, 6), v1.Mul(2))
	assert.Equal(t, float32(32), v1.Dot(v2))
	// Right x Up = Front in a right-handed system.
	assert.Equal(t, Vec3Front, Vec3Right.Cross(Vec3Up))
}

func TestVec3Normalize(t *testing.T) {
	assert.Equal(t, NewVec3(1, 0, 0), NewVec3(3, 0, 0).Normalize())
	assert.Equal(t, Vec3Zero, Vec3Zero.Normalize())
	assert.InDelta(t, 1, NewVec3(1, 2, 3).Normalize().Length(), tolerance)
}

func TestMat4TranslationMovesPoints(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	assert.Equal(t, translation, NewVec4(0, 0, 0, 1).MulMat(m).ToVec3())
	assert.Equal(t, Vec3Right, m.MulDir(Vec3Right), "directions ignore translation")
}

func TestMat4LookAtMatchesMathGL(t *testing.T) {
	eye := NewVec3(0, 0, 3)
	target := NewVec3(1, -2, -5)
	want := mgl32.LookAtV(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{1, -2, -5}, mgl32.Vec3{0, 1, 0})

	assertMatchesMGL(t, want, Mat4LookAt(eye, target, Vec3Up))
}

func TestMat4PerspectiveMatchesMathGL(t *testing.T) {
	fov := Radians(45)
	want := mgl32.Perspective(mgl32.DegToRad(45), 1600.0/1200.0, 0.1, 100)

	assertMatchesMGL(t, want, Mat4Perspective(fov, 1600.0/1200.0, 0.1, 100))
}

func TestMat4InverseMatchesMathGL(t *testing.T) {
	rot := QuaternionFromAxisAngle(Vec3Up, Radians(-60))
	model := Mat4TRS(NewVec3(25, 0, -25), rot, NewVec3(2, 2, 2))

	want := mgl32.Translate3D(25, 0, -25).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(-60))).
		Mul4(mgl32.Scale3D(2, 2, 2))

	assertMatchesMGL(t, want, model)
	assertMatchesMGL(t, want.Inv(), model.Inverse())

	proj := Mat4Perspective(Radians(90), 1, 0.1, 100)
	mglProj := mgl32.Perspective(mgl32.DegToRad(90), 1, 0.1, 100)
	assertMatchesMGL(t, mglProj.Mul4(want), model.Mul(proj))
}

func TestMat4InverseRoundTrip(t *testing.T) {
	m := Mat4LookAt(NewVec3(10, 0, -55), NewVec3(25, 0, -25), Vec3Up)
	product := m.Mul(m.Inverse())

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := float32(0)
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, product[i][j], tolerance, "[%d][%d]", i, j)
		}
	}
}

func TestMat4InverseOfSingularIsIdentity(t *testing.T) {
	assert.Equal(t, Mat4Identity(), Mat4Scale(NewVec3(0, 1, 1)).Inverse())
}

func TestMat4TRSAppliesScaleRotationTranslation(t *testing.T) {
	m := Mat4TRS(NewVec3(25, 0, -25), QuaternionFromAxisAngle(Vec3Up, Radians(-60)), Vec3One)

	assertVec3InDelta(t, NewVec3(25, 0, -25), m.MulVec3(Vec3Zero))
	// Rotating +X by -60 degrees about Y lands at (cos60, 0, sin60).
	assertVec3InDelta(t, NewVec3(25.5, 0, -25+float32(math.Sqrt(3)/2)), m.MulVec3(Vec3Right))
}

func TestMat4RotationStripsTranslation(t *testing.T) {
	view := Mat4LookAt(NewVec3(5, 6, 7), NewVec3(5, 6, 6), Vec3Up)
	r := view.Rotation()

	assert.Equal(t, float32(0), r[3][0])
	assert.Equal(t, float32(0), r[3][1])
	assert.Equal(t, float32(0), r[3][2])
	assertVec3InDelta(t, NewVec3(0, 0, -1), r.MulVec3(NewVec3(0, 0, -1)))
}

func TestNormalMatrixKeepsNormalsPerpendicular(t *testing.T) {
	m := Mat4Scale(NewVec3(4, 1, 1)).Mul(Mat4RotationY(Radians(30)))
	tangent := m.MulDir(NewVec3(1, 1, 0))
	normal := m.NormalMatrix().MulDir(NewVec3(1, -1, 0))

	assert.InDelta(t, 0, tangent.Dot(normal), tolerance)
}

func TestMat4FromColumnMajor(t *testing.T) {
	m := Mat4FromColumnMajor([16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 7, 8, 9, 1})
	assert.Equal(t, Mat4Translation(NewVec3(7, 8, 9)), m)
}

func TestQuaternionRotation(t *testing.T) {
	q := QuaternionFromAxisAngle(Vec3Up, float32(math.Pi/2))

	assertVec3InDelta(t, NewVec3(0, 0, -1), q.RotateVector(Vec3Right))
	assertVec3InDelta(t, NewVec3(0, 0, -1), q.ToMat4().MulDir(Vec3Right))
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4LookAt(NewVec3(0, 0, 3), Vec3Zero, Vec3Up)
	m2 := Mat4Perspective(Radians(45), 1, 0.1, 100)

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}
