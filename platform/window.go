// Package platform owns the GLFW window, the GL context and raw input.
package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and GL calls must stay on the main OS thread.
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	cursorX, cursorY float64
	cursorDX         float64
	cursorDY         float64
	scrollY          float64
	cursorSeen       bool
}

type WindowConfig struct {
	Width         int
	Height        int
	Title         string
	VSync         bool
	CaptureCursor bool
}

// NewWindow creates a window with a current OpenGL 4.1 core context.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.SRGBCapable, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	if config.CaptureCursor {
		handle.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	}

	window := &Window{
		Handle: handle,
		Width:  config.Width,
		Height: config.Height,
		Title:  config.Title,
	}

	handle.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
	})
	handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if !window.cursorSeen {
			window.cursorX, window.cursorY = x, y
			window.cursorSeen = true
		}
		window.cursorDX += x - window.cursorX
		// Screen y grows downward.
		window.cursorDY += window.cursorY - y
		window.cursorX, window.cursorY = x, y
	})
	handle.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		window.scrollY += yoff
	})

	return window, nil
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) RequestClose() {
	w.Handle.SetShouldClose(true)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

// Time is the number of seconds since GLFW was initialised.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) FramebufferSize() (int32, int32) {
	width, height := w.Handle.GetFramebufferSize()
	return int32(width), int32(height)
}

func (w *Window) IsKeyPressed(key int) bool {
	return w.Handle.GetKey(glfw.Key(key)) == glfw.Press
}

// CursorDelta returns the cursor motion since the previous call, with y
// pointing up.
func (w *Window) CursorDelta() (float64, float64) {
	dx, dy := w.cursorDX, w.cursorDY
	w.cursorDX, w.cursorDY = 0, 0
	return dx, dy
}

// ScrollDelta returns the vertical scroll since the previous call.
func (w *Window) ScrollDelta() float64 {
	dy := w.scrollY
	w.scrollY = 0
	return dy
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

const (
	KeySpace  = int(glfw.KeySpace)
	KeyA      = int(glfw.KeyA)
	KeyB      = int(glfw.KeyB)
	KeyC      = int(glfw.KeyC)
	KeyD      = int(glfw.KeyD)
	KeyE      = int(glfw.KeyE)
	KeyH      = int(glfw.KeyH)
	KeyO      = int(glfw.KeyO)
	KeyP      = int(glfw.KeyP)
	KeyQ      = int(glfw.KeyQ)
	KeyS      = int(glfw.KeyS)
	KeyW      = int(glfw.KeyW)
	KeyZ      = int(glfw.KeyZ)
	KeyEscape = int(glfw.KeyEscape)
)
