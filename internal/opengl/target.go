package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"pbr-viewer/internal/pipeline"
	"pbr-viewer/math"
)

// targetImage is one attachment the target owns (or, for external
// attachments, only records).
type targetImage struct {
	pipeline.Attachment
	id uint32
}

// RenderTarget is a framebuffer built from a validated pipeline.TargetSpec.
type RenderTarget struct {
	FBO    uint32
	Width  int32
	Height int32

	spec   pipeline.TargetSpec
	images []targetImage
}

// NewRenderTarget validates spec, allocates every owned attachment and checks
// completeness. Targets with external attachments are checked by the caller
// once the attachment is bound.
func NewRenderTarget(spec pipeline.TargetSpec) (*RenderTarget, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	t := &RenderTarget{
		Width:  int32(spec.Width),
		Height: int32(spec.Height),
		spec:   spec,
	}

	gl.GenFramebuffers(1, &t.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.FBO)
	for _, att := range spec.Attachments {
		img := targetImage{Attachment: att}
		switch att.Storage {
		case pipeline.StorageTexture2D, pipeline.StorageCubemap:
			gl.GenTextures(1, &img.id)
		case pipeline.StorageRenderbuffer:
			gl.GenRenderbuffers(1, &img.id)
		}
		t.images = append(t.images, img)
	}
	t.allocate()
	t.drawBuffers()

	if !spec.HasExternal() {
		if err := t.CheckComplete(); err != nil {
			gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
			t.Destroy()
			return nil, err
		}
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return t, nil
}

// allocate (re)specifies storage for every owned image at the current size
// and attaches it. The framebuffer must be bound.
func (t *RenderTarget) allocate() {
	for _, img := range t.images {
		internal, format, xtype := glFormat(img.Format)
		attachment := glAttachment(img.Point)
		filter := int32(gl.LINEAR)
		if img.Nearest {
			filter = gl.NEAREST
		}

		switch img.Storage {
		case pipeline.StorageTexture2D:
			gl.BindTexture(gl.TEXTURE_2D, img.id)
			gl.TexImage2D(gl.TEXTURE_2D, 0, internal, t.Width, t.Height, 0, format, xtype, nil)
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
			gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, gl.TEXTURE_2D, img.id, 0)
			gl.BindTexture(gl.TEXTURE_2D, 0)

		case pipeline.StorageCubemap:
			gl.BindTexture(gl.TEXTURE_CUBE_MAP, img.id)
			for f := 0; f < int(math.CubeFaceCount); f++ {
				gl.TexImage2D(uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X+f), 0, internal,
					t.Width, t.Height, 0, format, xtype, nil)
			}
			gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, filter)
			gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, filter)
			gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
			gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
			gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
			// Layered: the geometry stage picks the face with gl_Layer.
			gl.FramebufferTexture(gl.FRAMEBUFFER, attachment, img.id, 0)
			gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

		case pipeline.StorageRenderbuffer:
			gl.BindRenderbuffer(gl.RENDERBUFFER, img.id)
			gl.RenderbufferStorage(gl.RENDERBUFFER, uint32(internal), t.Width, t.Height)
			gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, attachment, gl.RENDERBUFFER, img.id)
			gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
		}
	}
}

// drawBuffers enables every colour attachment, or none for depth-only
// targets.
func (t *RenderTarget) drawBuffers() {
	n := t.spec.ColorCount()
	if n == 0 {
		gl.DrawBuffer(gl.NONE)
		gl.ReadBuffer(gl.NONE)
		return
	}
	buffers := make([]uint32, n)
	for i := range buffers {
		buffers[i] = uint32(gl.COLOR_ATTACHMENT0 + i)
	}
	gl.DrawBuffers(int32(n), &buffers[0])
}

// Bind makes t the draw target and matches the viewport to its size.
func (t *RenderTarget) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.FBO)
	gl.Viewport(0, 0, t.Width, t.Height)
	t.drawBuffers()
}

// Texture returns the GL texture at point, or 0 for renderbuffers and
// external attachments.
func (t *RenderTarget) Texture(point pipeline.AttachmentPoint) uint32 {
	for _, img := range t.images {
		if img.Point == point && img.Storage != pipeline.StorageRenderbuffer {
			return img.id
		}
	}
	return 0
}

// Resize reallocates every owned image at the new size. A no-op when the
// size is unchanged.
func (t *RenderTarget) Resize(width, height int) error {
	if int32(width) == t.Width && int32(height) == t.Height {
		return nil
	}
	spec := t.spec
	spec.Width, spec.Height = width, height
	if err := spec.Validate(); err != nil {
		return err
	}
	t.spec = spec
	t.Width, t.Height = int32(width), int32(height)

	gl.BindFramebuffer(gl.FRAMEBUFFER, t.FBO)
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	t.allocate()
	if spec.HasExternal() {
		return nil
	}
	return t.CheckComplete()
}

// AttachCubeFace binds one face of an external cubemap at mip level. The
// target must be bound.
func (t *RenderTarget) AttachCubeFace(point pipeline.AttachmentPoint, cubemap uint32, face math.CubeFace, mip int32) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, glAttachment(point),
		uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X+int(face)), cubemap, mip)
}

// AttachTexture binds an external 2D texture. The target must be bound.
func (t *RenderTarget) AttachTexture(point pipeline.AttachmentPoint, tex uint32) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, glAttachment(point), gl.TEXTURE_2D, tex, 0)
}

// CheckComplete reports the status of the bound framebuffer.
func (t *RenderTarget) CheckComplete() error {
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("%s: %w: status=0x%X", t.spec.Name, pipeline.ErrFramebufferIncomplete, status)
	}
	return nil
}

// Destroy frees the framebuffer and every owned image.
func (t *RenderTarget) Destroy() {
	for i := range t.images {
		img := &t.images[i]
		if img.id == 0 {
			continue
		}
		if img.Storage == pipeline.StorageRenderbuffer {
			gl.DeleteRenderbuffers(1, &img.id)
		} else {
			gl.DeleteTextures(1, &img.id)
		}
		img.id = 0
	}
	if t.FBO != 0 {
		gl.DeleteFramebuffers(1, &t.FBO)
		t.FBO = 0
	}
}

func glAttachment(p pipeline.AttachmentPoint) uint32 {
	switch p {
	case pipeline.Depth:
		return gl.DEPTH_ATTACHMENT
	case pipeline.DepthStencil:
		return gl.DEPTH_STENCIL_ATTACHMENT
	}
	return uint32(gl.COLOR_ATTACHMENT0 + p.ColorIndex())
}

// glFormat maps a pixel format to its internal format, pixel format and
// component type.
func glFormat(f pipeline.PixelFormat) (int32, uint32, uint32) {
	switch f {
	case pipeline.FormatRGB16F:
		return gl.RGB16F, gl.RGB, gl.FLOAT
	case pipeline.FormatRG16F:
		return gl.RG16F, gl.RG, gl.FLOAT
	case pipeline.FormatDepth:
		return gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT
	case pipeline.FormatDepth24:
		return gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.UNSIGNED_INT
	case pipeline.FormatDepth24Stencil8:
		return gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8
	}
	return gl.RGBA16F, gl.RGBA, gl.FLOAT
}
