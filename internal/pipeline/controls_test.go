package pipeline

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

var testBindings = Bindings{
	Quit:           1,
	ToggleBloom:    2,
	ToggleGamma:    3,
	ToggleShadows:  4,
	ToggleParallax: 5,
	ToggleHDR:      6,
	HeightDown:     7,
	HeightUp:       8,
	ExposureDown:   9,
	ExposureUp:     10,
}

func defaultToggles() *Toggles {
	return NewToggles(RenderConfig{
		Gamma: true, Shadows: true, HeightScale: 0.1,
		HDR: true, Exposure: 1, BlurPasses: 10,
	})
}

func TestHeldToggleFlipsOnce(t *testing.T) {
	c := NewControls(testBindings, zerolog.Nop())
	tg := defaultToggles()
	held := keys{testBindings.ToggleBloom: true, testBindings.ToggleHDR: true}

	for i := 0; i < 30; i++ {
		assert.False(t, c.Poll(held, tg, 0.016))
	}
	assert.True(t, tg.Bloom)
	assert.False(t, tg.HDR)

	c.Poll(keys{}, tg, 0.016)
	c.Poll(held, tg, 0.016)
	assert.False(t, tg.Bloom, "second press toggles back")
	assert.True(t, tg.HDR)
}

func TestEveryToggleHasAKey(t *testing.T) {
	c := NewControls(testBindings, zerolog.Nop())
	tg := defaultToggles()
	c.Poll(keys{
		testBindings.ToggleGamma:    true,
		testBindings.ToggleShadows:  true,
		testBindings.ToggleParallax: true,
	}, tg, 0.016)

	assert.False(t, tg.Gamma)
	assert.False(t, tg.Shadows)
	assert.True(t, tg.Parallax)
}

func TestAnalogControlsClampAtZero(t *testing.T) {
	c := NewControls(testBindings, zerolog.Nop())
	tg := defaultToggles()
	tg.HeightScale = 0.0015
	tg.Exposure = 0.2

	down := keys{testBindings.HeightDown: true, testBindings.ExposureDown: true}
	for i := 0; i < 5; i++ {
		c.Poll(down, tg, 0.25)
	}
	assert.Zero(t, tg.HeightScale)
	assert.Zero(t, tg.Exposure)

	up := keys{testBindings.HeightUp: true, testBindings.ExposureUp: true}
	c.Poll(up, tg, 0.5)
	assert.InDelta(t, HeightScaleStep, tg.HeightScale, 1e-7)
	assert.InDelta(t, 0.25, tg.Exposure, 1e-6)
}

func TestQuitKey(t *testing.T) {
	c := NewControls(testBindings, zerolog.Nop())
	tg := defaultToggles()
	assert.True(t, c.Poll(keys{testBindings.Quit: true}, tg, 0.016))
}

func TestSnapshotIsIndependent(t *testing.T) {
	tg := defaultToggles()
	cfg := tg.Snapshot()
	tg.Bloom = true
	tg.Exposure = 4
	assert.False(t, cfg.Bloom)
	assert.Equal(t, float32(1), cfg.Exposure)
}
