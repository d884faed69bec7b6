package pipeline

import (
	"github.com/rs/zerolog"

	"pbr-viewer/core"
)

// Per-frame rates for the analog controls.
const (
	HeightScaleStep = 0.001 // per frame
	ExposureRate    = 0.5   // per second
)

// Bindings maps control actions onto key codes. Codes are whatever the
// KeySource understands; platform.DefaultBindings fills in GLFW keys.
type Bindings struct {
	Quit int

	ToggleBloom    int
	ToggleGamma    int
	ToggleShadows  int
	ToggleParallax int
	ToggleHDR      int

	HeightDown   int
	HeightUp     int
	ExposureDown int
	ExposureUp   int
}

// Controls turns key state into Toggles edits. Toggles fire once per press;
// height scale and exposure change continuously while held.
type Controls struct {
	bindings Bindings
	log      zerolog.Logger

	bloom    *core.Latch
	gamma    *core.Latch
	shadows  *core.Latch
	parallax *core.Latch
	hdr      *core.Latch
}

func NewControls(b Bindings, log zerolog.Logger) *Controls {
	return &Controls{
		bindings: b,
		log:      log,
		bloom:    core.NewLatch(b.ToggleBloom),
		gamma:    core.NewLatch(b.ToggleGamma),
		shadows:  core.NewLatch(b.ToggleShadows),
		parallax: core.NewLatch(b.ToggleParallax),
		hdr:      core.NewLatch(b.ToggleHDR),
	}
}

// Poll applies one frame of input to t and reports whether quit was pressed.
func (c *Controls) Poll(src core.KeySource, t *Toggles, dt float32) (quit bool) {
	if src.IsKeyPressed(c.bindings.Quit) {
		return true
	}

	if c.bloom.Pressed(src) {
		t.Bloom = !t.Bloom
		c.log.Info().Bool("bloom", t.Bloom).Msg("toggle")
	}
	if c.gamma.Pressed(src) {
		t.Gamma = !t.Gamma
		c.log.Info().Bool("gamma", t.Gamma).Msg("toggle")
	}
	if c.shadows.Pressed(src) {
		t.Shadows = !t.Shadows
		c.log.Info().Bool("shadows", t.Shadows).Msg("toggle")
	}
	if c.parallax.Pressed(src) {
		t.Parallax = !t.Parallax
		c.log.Info().Bool("parallax", t.Parallax).Msg("toggle")
	}
	if c.hdr.Pressed(src) {
		t.HDR = !t.HDR
		c.log.Info().Bool("hdr", t.HDR).Msg("toggle")
	}

	if src.IsKeyPressed(c.bindings.HeightDown) {
		t.HeightScale = clampNonNegative(t.HeightScale - HeightScaleStep)
	}
	if src.IsKeyPressed(c.bindings.HeightUp) {
		t.HeightScale += HeightScaleStep
	}
	if src.IsKeyPressed(c.bindings.ExposureDown) {
		t.Exposure = clampNonNegative(t.Exposure - ExposureRate*dt)
	}
	if src.IsKeyPressed(c.bindings.ExposureUp) {
		t.Exposure += ExposureRate * dt
	}
	return false
}

func clampNonNegative(v float32) float32 {
	if v < 0 {
		return 0
	}
	return v
}
