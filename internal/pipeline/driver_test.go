package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-viewer/core"
	"pbr-viewer/math"
)

func newTestDriver(p *fakePlatform, input core.KeySource, passes Passes) (*Driver, *fixedViewer, *bool) {
	viewer := &fixedViewer{}
	shutdown := false
	d := NewDriver(DriverOptions{
		Platform:   p,
		Input:      input,
		Passes:     passes,
		Viewer:     viewer,
		Controls:   NewControls(testBindings, zerolog.Nop()),
		Toggles:    defaultToggles(),
		Orbit:      LightOrbit{Center: math.Vec3{X: 10, Z: -55}, Radius: 10, Speed: 0.5},
		LightColor: core.Color{R: 5, G: 5, B: 5, A: 1},
		Logger:     zerolog.Nop(),
		OnShutdown: func() { shutdown = true },
	})
	return d, viewer, &shutdown
}

func TestDriverRunsUntilClose(t *testing.T) {
	p := &fakePlatform{step: 0.5, closeAfter: 3, width: 1600, height: 1200}
	rec := &recorder{}
	d, viewer, shutdown := newTestDriver(p, keys{}, rec)
	assert.Equal(t, StateInit, d.State())

	require.NoError(t, d.Run(context.Background()))

	assert.Equal(t, StateShutdown, d.State())
	assert.True(t, *shutdown)
	assert.Equal(t, uint64(3), d.Frames())
	assert.Equal(t, 3, viewer.updates)
	assert.Equal(t, "resize 1600x1200", rec.calls[0], "first frame sizes the targets")
	assert.Len(t, rec.frames, 3)
	assert.Equal(t, int32(1600), rec.frames[0].ViewportWidth)
	assert.True(t, rec.frames[0].Config.HDR)
}

func TestDriverIsDeterministic(t *testing.T) {
	run := func() *recorder {
		p := &fakePlatform{step: 0.25, closeAfter: 5, width: 800, height: 600}
		rec := &recorder{}
		d, _, _ := newTestDriver(p, keys{}, rec)
		require.NoError(t, d.Run(context.Background()))
		return rec
	}
	a, b := run(), run()
	assert.Equal(t, a.calls, b.calls)
	require.Len(t, a.frames, len(b.frames))
	for i := range a.frames {
		assert.Equal(t, a.frames[i].Light, b.frames[i].Light)
		assert.Equal(t, a.frames[i].Time, b.frames[i].Time)
	}
	assert.NotEqual(t, a.frames[0].Light.Position, a.frames[1].Light.Position, "light moves with time")
}

func TestDriverEscapeRequestsClose(t *testing.T) {
	p := &fakePlatform{step: 0.1, closeAfter: 100, width: 640, height: 480}
	rec := &recorder{}
	d, _, shutdown := newTestDriver(p, keys{testBindings.Quit: true}, rec)

	require.NoError(t, d.Run(context.Background()))
	assert.True(t, p.closed)
	assert.True(t, *shutdown)
	assert.Equal(t, uint64(1), d.Frames(), "the frame in flight still presents")
}

func TestDriverHonoursCancelledContext(t *testing.T) {
	p := &fakePlatform{step: 0.1, closeAfter: 100, width: 640, height: 480}
	rec := &recorder{}
	d, _, shutdown := newTestDriver(p, keys{}, rec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, d.Run(ctx))
	assert.Empty(t, rec.calls)
	assert.True(t, *shutdown)
	assert.Equal(t, StateShutdown, d.State())
}

func TestDriverSkipsMinimisedFrames(t *testing.T) {
	p := &fakePlatform{
		step: 0.1, closeAfter: 2, width: 640, height: 480,
		sizes: [][2]int32{{0, 0}, {0, 0}, {640, 480}, {320, 240}},
	}
	rec := &recorder{}
	d, _, _ := newTestDriver(p, keys{}, rec)

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, 2, p.presented)
	assert.Equal(t, 4, p.polled)
	assert.Contains(t, rec.calls, "resize 640x480")
	assert.Contains(t, rec.calls, "resize 320x240")
}

type failingResize struct{ recorder }

func (f *failingResize) Resize(int32, int32) error { return errors.New("no memory") }

func TestDriverReturnsResizeError(t *testing.T) {
	p := &fakePlatform{step: 0.1, closeAfter: 5, width: 640, height: 480}
	passes := &failingResize{}
	d, _, shutdown := newTestDriver(p, keys{}, passes)

	err := d.Run(context.Background())
	assert.EqualError(t, err, "no memory")
	assert.True(t, *shutdown)
	assert.Empty(t, passes.calls)
}
