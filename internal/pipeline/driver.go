package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"pbr-viewer/core"
)

// State is the driver lifecycle position.
type State int

const (
	StateInit State = iota
	StateFrameLoop
	StateShutdown
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateFrameLoop:
		return "frame_loop"
	case StateShutdown:
		return "shutdown"
	}
	return "unknown"
}

// Platform is the window and clock the driver runs against.
type Platform interface {
	Time() float64
	ShouldClose() bool
	RequestClose()
	PollEvents()
	SwapBuffers()
	FramebufferSize() (width, height int32)
}

// Viewer owns the camera: it consumes input for the frame and reports the
// matrices for a given aspect ratio.
type Viewer interface {
	Update(dt float32)
	State(aspect float32) CameraState
}

type DriverOptions struct {
	Platform Platform
	Input    core.KeySource
	Passes   Passes
	Viewer   Viewer
	Controls *Controls
	Toggles  *Toggles

	Orbit      LightOrbit
	LightColor core.Color

	Logger zerolog.Logger

	// OnFrameStart runs at the top of every iteration, on the render thread.
	OnFrameStart func()
	// OnShutdown releases GPU resources once the loop exits.
	OnShutdown func()
}

// Driver runs the frame loop. It is single-threaded and must be driven from
// the thread that owns the GL context.
type Driver struct {
	opts  DriverOptions
	log   zerolog.Logger
	state State

	width, height int32
	frames        uint64
}

func NewDriver(opts DriverOptions) *Driver {
	return &Driver{opts: opts, log: opts.Logger, state: StateInit}
}

func (d *Driver) State() State { return d.state }

// Frames is the number of frames rendered and presented.
func (d *Driver) Frames() uint64 { return d.frames }

// Run loops until the window closes, Escape is pressed or ctx is cancelled.
// Cancellation is only observed between frames. A Resize failure ends the
// loop and is returned after shutdown.
func (d *Driver) Run(ctx context.Context) error {
	p := d.opts.Platform
	d.state = StateFrameLoop
	d.log.Info().Msg("entering frame loop")

	err := d.loop(ctx, p)

	d.state = StateShutdown
	if d.opts.OnShutdown != nil {
		d.opts.OnShutdown()
	}
	d.log.Info().Uint64("frames", d.frames).Msg("shutdown complete")
	return err
}

func (d *Driver) loop(ctx context.Context, p Platform) error {
	last := p.Time()
	for {
		if ctx.Err() != nil {
			d.log.Info().Msg("interrupted, closing")
			return nil
		}
		if p.ShouldClose() {
			return nil
		}
		if d.opts.OnFrameStart != nil {
			d.opts.OnFrameStart()
		}

		now := p.Time()
		dt := float32(now - last)
		last = now

		if d.opts.Controls.Poll(d.opts.Input, d.opts.Toggles, dt) {
			p.RequestClose()
		}
		d.opts.Viewer.Update(dt)

		light := LightState{Position: d.opts.Orbit.At(now), Color: d.opts.LightColor}
		cfg := d.opts.Toggles.Snapshot()

		w, h := p.FramebufferSize()
		if w <= 0 || h <= 0 {
			// Minimised: nothing to draw into.
			p.PollEvents()
			continue
		}
		if w != d.width || h != d.height {
			if err := d.opts.Passes.Resize(w, h); err != nil {
				return err
			}
			d.log.Debug().Int32("width", w).Int32("height", h).Msg("framebuffer resized")
			d.width, d.height = w, h
		}

		frame := &Frame{
			Config:         cfg,
			Light:          light,
			Camera:         d.opts.Viewer.State(float32(w) / float32(h)),
			ViewportWidth:  w,
			ViewportHeight: h,
			Time:           now,
			Delta:          dt,
		}
		RunFrame(d.opts.Passes, frame)

		p.SwapBuffers()
		p.PollEvents()
		d.frames++
	}
}
