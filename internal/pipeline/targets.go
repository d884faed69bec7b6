// Package pipeline holds the GPU-independent half of the renderer: render
// target descriptions, the per-frame pass order, the IBL stage plan, shadow
// transforms and the frame driver state machine. The OpenGL backend in
// internal/opengl implements the interfaces declared here.
package pipeline

import (
	"errors"
	"fmt"
)

// ErrFramebufferIncomplete is wrapped by every render target failure, both
// TargetSpec.Validate and the GL completeness check.
var ErrFramebufferIncomplete = errors.New("framebuffer incomplete")

// AttachmentPoint is where an image binds on a framebuffer.
type AttachmentPoint int

const (
	Color0 AttachmentPoint = iota
	Color1
	Depth
	DepthStencil
)

func (p AttachmentPoint) String() string {
	switch p {
	case Color0:
		return "color0"
	case Color1:
		return "color1"
	case Depth:
		return "depth"
	case DepthStencil:
		return "depth_stencil"
	}
	return fmt.Sprintf("point(%d)", int(p))
}

// IsColor reports whether p is a colour attachment point.
func (p AttachmentPoint) IsColor() bool { return p == Color0 || p == Color1 }

// ColorIndex is the draw buffer index of a colour point.
func (p AttachmentPoint) ColorIndex() int { return int(p - Color0) }

type PixelFormat int

const (
	FormatRGBA16F PixelFormat = iota
	FormatRGB16F
	FormatRG16F
	FormatDepth           // 32-bit float depth, used by the shadow cubemap
	FormatDepth24         // renderbuffer depth for captures
	FormatDepth24Stencil8 // renderbuffer depth+stencil for the HDR scene
)

func (f PixelFormat) String() string {
	switch f {
	case FormatRGBA16F:
		return "RGBA16F"
	case FormatRGB16F:
		return "RGB16F"
	case FormatRG16F:
		return "RG16F"
	case FormatDepth:
		return "DEPTH"
	case FormatDepth24:
		return "DEPTH24"
	case FormatDepth24Stencil8:
		return "DEPTH24_STENCIL8"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// IsDepth reports whether f carries depth (and possibly stencil).
func (f PixelFormat) IsDepth() bool {
	return f == FormatDepth || f == FormatDepth24 || f == FormatDepth24Stencil8
}

// Storage is the kind of image backing an attachment.
type Storage int

const (
	StorageTexture2D Storage = iota
	StorageCubemap
	StorageRenderbuffer
	// StorageExternal attachments are supplied by the caller after
	// construction (the capture target renders into IBL cubemaps).
	StorageExternal
)

// Attachment describes one image of a render target.
type Attachment struct {
	Point   AttachmentPoint
	Format  PixelFormat
	Storage Storage
	Nearest bool // NEAREST filtering instead of LINEAR
}

// TargetSpec is everything needed to build a framebuffer.
type TargetSpec struct {
	Name        string
	Width       int
	Height      int
	Attachments []Attachment
}

// Validate checks the attachment list before any GPU object exists.
func (s TargetSpec) Validate() error {
	if len(s.Attachments) == 0 {
		return fmt.Errorf("target %q: no attachments: %w", s.Name, ErrFramebufferIncomplete)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("target %q: invalid size %dx%d: %w", s.Name, s.Width, s.Height, ErrFramebufferIncomplete)
	}

	seen := make(map[AttachmentPoint]bool, len(s.Attachments))
	colors := 0
	maxColor := -1
	hasDepth := false
	for _, a := range s.Attachments {
		if seen[a.Point] {
			return fmt.Errorf("target %q: duplicate attachment %s: %w", s.Name, a.Point, ErrFramebufferIncomplete)
		}
		seen[a.Point] = true

		if a.Point.IsColor() {
			if a.Format.IsDepth() {
				return fmt.Errorf("target %q: %s cannot hold %s: %w", s.Name, a.Point, a.Format, ErrFramebufferIncomplete)
			}
			colors++
			if idx := a.Point.ColorIndex(); idx > maxColor {
				maxColor = idx
			}
		} else {
			if !a.Format.IsDepth() {
				return fmt.Errorf("target %q: %s cannot hold %s: %w", s.Name, a.Point, a.Format, ErrFramebufferIncomplete)
			}
			if a.Point == DepthStencil && a.Format != FormatDepth24Stencil8 {
				return fmt.Errorf("target %q: %s requires %s: %w", s.Name, a.Point, FormatDepth24Stencil8, ErrFramebufferIncomplete)
			}
			if hasDepth {
				return fmt.Errorf("target %q: more than one depth attachment: %w", s.Name, ErrFramebufferIncomplete)
			}
			hasDepth = true
		}

		if a.Storage == StorageCubemap && s.Width != s.Height {
			return fmt.Errorf("target %q: cubemap faces must be square, got %dx%d: %w", s.Name, s.Width, s.Height, ErrFramebufferIncomplete)
		}
	}
	if colors != maxColor+1 {
		return fmt.Errorf("target %q: colour attachments are not contiguous: %w", s.Name, ErrFramebufferIncomplete)
	}
	return nil
}

// ColorCount is the number of colour attachments, i.e. draw buffers.
func (s TargetSpec) ColorCount() int {
	n := 0
	for _, a := range s.Attachments {
		if a.Point.IsColor() {
			n++
		}
	}
	return n
}

// HasExternal reports whether completeness can only be checked once the
// caller binds its own image.
func (s TargetSpec) HasExternal() bool {
	for _, a := range s.Attachments {
		if a.Storage == StorageExternal {
			return true
		}
	}
	return false
}

// ── Reference targets ────────────────────────────────────────────────────────

// HDRSceneSpec is the lit scene target: colour plus the raw bright copy
// feeding the blur chain.
func HDRSceneSpec(width, height int) TargetSpec {
	return TargetSpec{
		Name:   "hdr",
		Width:  width,
		Height: height,
		Attachments: []Attachment{
			{Point: Color0, Format: FormatRGBA16F, Storage: StorageTexture2D},
			{Point: Color1, Format: FormatRGBA16F, Storage: StorageTexture2D},
			{Point: DepthStencil, Format: FormatDepth24Stencil8, Storage: StorageRenderbuffer},
		},
	}
}

// PingPongSpec is one of the two blur targets.
func PingPongSpec(index, width, height int) TargetSpec {
	return TargetSpec{
		Name:   fmt.Sprintf("pingpong%d", index),
		Width:  width,
		Height: height,
		Attachments: []Attachment{
			{Point: Color0, Format: FormatRGBA16F, Storage: StorageTexture2D},
		},
	}
}

// ShadowCubeSpec is the depth-only omnidirectional shadow target.
func ShadowCubeSpec(size int) TargetSpec {
	return TargetSpec{
		Name:   "shadow",
		Width:  size,
		Height: size,
		Attachments: []Attachment{
			{Point: Depth, Format: FormatDepth, Storage: StorageCubemap, Nearest: true},
		},
	}
}

// CaptureSpec is the IBL capture target. Its colour image is whichever
// cubemap face or LUT the current stage writes.
func CaptureSpec(size int) TargetSpec {
	return TargetSpec{
		Name:   "capture",
		Width:  size,
		Height: size,
		Attachments: []Attachment{
			{Point: Color0, Format: FormatRGB16F, Storage: StorageExternal},
			{Point: Depth, Format: FormatDepth24, Storage: StorageRenderbuffer},
		},
	}
}
