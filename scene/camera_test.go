package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	reMath "pbr-viewer/math"
)

func newTestCamera() *Camera {
	return NewCamera(CameraConfig{
		Position:    reMath.NewVec3(0, 0, 3),
		Yaw:         -90,
		Speed:       2.5,
		Sensitivity: 0.1,
		Zoom:        45,
		Near:        0.1,
		Far:         100,
	})
}

func TestCameraStartsLookingDownNegativeZ(t *testing.T) {
	cam := newTestCamera()

	assert.InDelta(t, 0, cam.Front().X, 1e-6)
	assert.InDelta(t, -1, cam.Front().Z, 1e-6)
	assert.InDelta(t, 1, cam.Right().X, 1e-6)

	eye := cam.ViewMatrix().MulVec3(cam.Position)
	assert.InDelta(t, 0, eye.Length(), 1e-5)
}

func TestCameraKeyboardMovesAlongFront(t *testing.T) {
	cam := newTestCamera()
	cam.ProcessKeyboard(MoveForward, 1)
	assert.InDelta(t, 0.5, cam.Position.Z, 1e-5)

	cam.ProcessKeyboard(MoveRight, 2)
	assert.InDelta(t, 5, cam.Position.X, 1e-5)

	// View matrix follows the new position.
	eye := cam.ViewMatrix().MulVec3(cam.Position)
	assert.InDelta(t, 0, eye.Length(), 1e-5)
}

func TestCameraPitchIsConstrained(t *testing.T) {
	cam := newTestCamera()
	cam.ProcessMouseMovement(0, 5000, true)
	assert.Equal(t, float32(89), cam.Pitch)

	cam.ProcessMouseMovement(0, -50000, false)
	assert.Less(t, cam.Pitch, float32(-89))
}

func TestCameraScrollClampsZoom(t *testing.T) {
	cam := newTestCamera()
	cam.ProcessMouseScroll(10)
	assert.Equal(t, float32(35), cam.Zoom)

	cam.ProcessMouseScroll(100)
	assert.Equal(t, float32(1), cam.Zoom)

	cam.ProcessMouseScroll(-100)
	assert.Equal(t, float32(45), cam.Zoom)
}
