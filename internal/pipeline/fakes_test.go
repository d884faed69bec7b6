package pipeline

import (
	"fmt"

	"pbr-viewer/math"
)

// recorder logs every pass call as a short string.
type recorder struct {
	calls  []string
	frames []Frame
}

func (r *recorder) Resize(w, h int32) error {
	r.calls = append(r.calls, fmt.Sprintf("resize %dx%d", w, h))
	return nil
}

func (r *recorder) Shadow(f *Frame) {
	r.calls = append(r.calls, "shadow")
	r.frames = append(r.frames, *f)
}

func (r *recorder) UpdateView(*Frame) { r.calls = append(r.calls, "view") }

func (r *recorder) Lighting(_ *Frame, dst Destination) {
	r.calls = append(r.calls, "lighting "+dst.String())
}

func (r *recorder) Blur(_ *Frame, step BlurStep) {
	r.calls = append(r.calls, fmt.Sprintf("blur %d", step.Target))
}

func (r *recorder) Composite(_ *Frame, src BlurSource) {
	r.calls = append(r.calls, fmt.Sprintf("composite %+v", src))
}

// keys is a KeySource with a scripted set of held keys.
type keys map[int]bool

func (k keys) IsKeyPressed(key int) bool { return k[key] }

// fakePlatform advances a fixed clock per frame and closes after a set
// number of presents.
type fakePlatform struct {
	now        float64
	step       float64
	closeAfter int
	presented  int
	polled     int
	closed     bool
	width      int32
	height     int32

	// sizes, when set, overrides width/height per poll.
	sizes [][2]int32
}

func (p *fakePlatform) Time() float64 {
	t := p.now
	p.now += p.step
	return t
}

func (p *fakePlatform) ShouldClose() bool {
	return p.closed || p.presented >= p.closeAfter || p.polled > 4*p.closeAfter
}

func (p *fakePlatform) RequestClose() { p.closed = true }
func (p *fakePlatform) PollEvents()   { p.polled++ }
func (p *fakePlatform) SwapBuffers()  { p.presented++ }

func (p *fakePlatform) FramebufferSize() (int32, int32) {
	if p.polled < len(p.sizes) {
		s := p.sizes[p.polled]
		return s[0], s[1]
	}
	return p.width, p.height
}

type fixedViewer struct{ updates int }

func (v *fixedViewer) Update(float32) { v.updates++ }

func (v *fixedViewer) State(aspect float32) CameraState {
	return CameraState{
		View:       math.Mat4Identity(),
		Projection: math.Mat4Perspective(math.Radians(45), aspect, 0.1, 100),
		Position:   math.Vec3{Z: 3},
	}
}
