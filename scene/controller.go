package scene

import "pbr-viewer/core"

// CameraInput is the per-frame input the fly camera consumes. Deltas are
// reset by each read.
type CameraInput interface {
	core.KeySource
	CursorDelta() (dx, dy float64)
	ScrollDelta() float64
}

// MoveKeys are the held keys that translate the camera.
type MoveKeys struct {
	Forward  int
	Backward int
	Left     int
	Right    int
}

// CameraController feeds keyboard, mouse and scroll input into a Camera.
type CameraController struct {
	Camera *Camera
	input  CameraInput
	keys   MoveKeys
}

func NewCameraController(camera *Camera, input CameraInput, keys MoveKeys) *CameraController {
	return &CameraController{Camera: camera, input: input, keys: keys}
}

// Update applies one frame of input: held movement keys scaled by dt, then
// mouse look with pitch constrained, then scroll zoom.
func (c *CameraController) Update(dt float32) {
	moves := [...]struct {
		key int
		dir CameraMovement
	}{
		{c.keys.Forward, MoveForward},
		{c.keys.Backward, MoveBackward},
		{c.keys.Left, MoveLeft},
		{c.keys.Right, MoveRight},
	}
	for _, m := range moves {
		if c.input.IsKeyPressed(m.key) {
			c.Camera.ProcessKeyboard(m.dir, dt)
		}
	}

	if dx, dy := c.input.CursorDelta(); dx != 0 || dy != 0 {
		c.Camera.ProcessMouseMovement(float32(dx), float32(dy), true)
	}
	if scroll := c.input.ScrollDelta(); scroll != 0 {
		c.Camera.ProcessMouseScroll(float32(scroll))
	}
}
