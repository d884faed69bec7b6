package scene

import (
	"math"

	reMath "pbr-viewer/math"
)

// CameraMovement is one of the four fly directions.
type CameraMovement int

const (
	MoveForward CameraMovement = iota
	MoveBackward
	MoveLeft
	MoveRight
)

const (
	maxPitch = 89
	minZoom  = 1
	maxZoom  = 45
)

// Camera is a yaw/pitch fly camera. Angles are in degrees; Zoom is the
// vertical field of view.
type Camera struct {
	Position reMath.Vec3
	WorldUp  reMath.Vec3
	Yaw      float32
	Pitch    float32

	MovementSpeed    float32
	MouseSensitivity float32
	Zoom             float32
	NearPlane        float32
	FarPlane         float32

	front, right, up reMath.Vec3

	// Cached view matrix
	viewMatrix reMath.Mat4
	dirty      bool
}

type CameraConfig struct {
	Position    reMath.Vec3
	Yaw, Pitch  float32
	Speed       float32
	Sensitivity float32
	Zoom        float32
	Near, Far   float32
}

func NewCamera(cfg CameraConfig) *Camera {
	c := &Camera{
		Position:         cfg.Position,
		WorldUp:          reMath.Vec3Up,
		Yaw:              cfg.Yaw,
		Pitch:            cfg.Pitch,
		MovementSpeed:    cfg.Speed,
		MouseSensitivity: cfg.Sensitivity,
		Zoom:             clamp(cfg.Zoom, minZoom, maxZoom),
		NearPlane:        cfg.Near,
		FarPlane:         cfg.Far,
	}
	c.updateVectors()
	return c
}

func (c *Camera) Front() reMath.Vec3 { return c.front }
func (c *Camera) Right() reMath.Vec3 { return c.right }
func (c *Camera) Up() reMath.Vec3    { return c.up }

func (c *Camera) ViewMatrix() reMath.Mat4 {
	if c.dirty {
		c.viewMatrix = reMath.Mat4LookAt(c.Position, c.Position.Add(c.front), c.up)
		c.dirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix uses Zoom as the vertical field of view.
func (c *Camera) ProjectionMatrix(aspect float32) reMath.Mat4 {
	return reMath.Mat4Perspective(reMath.Radians(c.Zoom), aspect, c.NearPlane, c.FarPlane)
}

func (c *Camera) ProcessKeyboard(direction CameraMovement, deltaTime float32) {
	velocity := c.MovementSpeed * deltaTime
	switch direction {
	case MoveForward:
		c.Position = c.Position.Add(c.front.Mul(velocity))
	case MoveBackward:
		c.Position = c.Position.Sub(c.front.Mul(velocity))
	case MoveLeft:
		c.Position = c.Position.Sub(c.right.Mul(velocity))
	case MoveRight:
		c.Position = c.Position.Add(c.right.Mul(velocity))
	}
	c.dirty = true
}

// ProcessMouseMovement expects yOffset positive for upward motion.
func (c *Camera) ProcessMouseMovement(xOffset, yOffset float32, constrainPitch bool) {
	c.Yaw += xOffset * c.MouseSensitivity
	c.Pitch += yOffset * c.MouseSensitivity
	if constrainPitch {
		c.Pitch = clamp(c.Pitch, -maxPitch, maxPitch)
	}
	c.updateVectors()
}

func (c *Camera) ProcessMouseScroll(yOffset float32) {
	c.Zoom = clamp(c.Zoom-yOffset, minZoom, maxZoom)
}

func (c *Camera) updateVectors() {
	yaw := float64(reMath.Radians(c.Yaw))
	pitch := float64(reMath.Radians(c.Pitch))
	front := reMath.Vec3{
		X: float32(math.Cos(yaw) * math.Cos(pitch)),
		Y: float32(math.Sin(pitch)),
		Z: float32(math.Sin(yaw) * math.Cos(pitch)),
	}
	c.front = front.Normalize()
	c.right = c.front.Cross(c.WorldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
	c.dirty = true
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
