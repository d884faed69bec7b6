package pipeline

import "pbr-viewer/math"

// CameraState is what the passes need from the camera this frame.
type CameraState struct {
	View       math.Mat4
	Projection math.Mat4
	Position   math.Vec3
}

// Frame is the immutable input to one iteration of the pass pipeline.
type Frame struct {
	Config RenderConfig
	Light  LightState
	Camera CameraState

	ViewportWidth  int32
	ViewportHeight int32

	Time  float64
	Delta float32
}

// Destination selects where the lighting pass renders.
type Destination int

const (
	TargetHDR Destination = iota
	TargetScreen
)

func (d Destination) String() string {
	if d == TargetScreen {
		return "screen"
	}
	return "hdr"
}

// BlurSource is the image a blur step samples: the scene's bright
// attachment, or a ping-pong buffer.
type BlurSource struct {
	Scene    bool
	PingPong int
}

// BlurStep is one separable Gaussian pass.
type BlurStep struct {
	Target     int
	Horizontal bool
	Source     BlurSource
}

// BlurSchedule lays out n ping-pong passes. Horizontal passes write buffer 1,
// vertical passes write buffer 0, and each step reads what the previous one
// wrote.
func BlurSchedule(n int) []BlurStep {
	if n <= 0 {
		return nil
	}
	steps := make([]BlurStep, n)
	horizontal := true
	for i := range steps {
		target := 0
		if horizontal {
			target = 1
		}
		src := BlurSource{Scene: true}
		if i > 0 {
			src = BlurSource{PingPong: steps[i-1].Target}
		}
		steps[i] = BlurStep{Target: target, Horizontal: horizontal, Source: src}
		horizontal = !horizontal
	}
	return steps
}

// FinalBlurSource is what the composite samples as bloom after n passes.
func FinalBlurSource(n int) BlurSource {
	steps := BlurSchedule(n)
	if len(steps) == 0 {
		return BlurSource{Scene: true}
	}
	return BlurSource{PingPong: steps[len(steps)-1].Target}
}

// Passes is the per-frame GPU work, implemented by the OpenGL renderer.
type Passes interface {
	Resize(width, height int32) error
	Shadow(f *Frame)
	UpdateView(f *Frame)
	Lighting(f *Frame, dst Destination)
	Blur(f *Frame, step BlurStep)
	Composite(f *Frame, bloom BlurSource)
}

// RunFrame issues the passes for one frame in pipeline order. The shadow
// map renders every frame; cfg.Shadows only decides whether it is sampled.
func RunFrame(p Passes, f *Frame) {
	p.Shadow(f)
	p.UpdateView(f)
	if !f.Config.HDR {
		p.Lighting(f, TargetScreen)
		return
	}
	p.Lighting(f, TargetHDR)
	for _, step := range BlurSchedule(f.Config.BlurPasses) {
		p.Blur(f, step)
	}
	p.Composite(f, FinalBlurSource(f.Config.BlurPasses))
}
