package scene

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
)

// ColorSpace tells the uploader how to interpret 8-bit texel values.
type ColorSpace int

const (
	ColorSpaceLinear ColorSpace = iota
	// ColorSpaceSRGB marks gamma-encoded colour data, uploaded as an sRGB
	// internal format so sampling returns linear values.
	ColorSpaceSRGB
)

func (c ColorSpace) String() string {
	if c == ColorSpaceSRGB {
		return "srgb"
	}
	return "linear"
}

// Texture holds CPU-side pixel data for a 2D texture.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format (4 bytes per pixel, row-major, top-to-bottom).
	Pixels     []byte
	ColorSpace ColorSpace
}

// LoadTexture reads a PNG or JPEG file from disk and converts it to RGBA8.
func LoadTexture(path string, colorSpace ColorSpace) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	tex, err := decodeTexture(path, f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	tex.ColorSpace = colorSpace
	return tex, nil
}

// DecodeTextureBytes decodes an in-memory PNG or JPEG, as found in GLB buffers.
func DecodeTextureBytes(name string, data []byte) (*Texture, error) {
	return decodeTexture(name, bytes.NewReader(data))
}

func decodeTexture(name string, r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &Texture{
		Name:   name,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: rgba.Pix,
	}, nil
}

// NewSolidTexture creates a 1x1 texture with the given RGBA color values (0–255).
func NewSolidTexture(name string, r, g, b, a uint8, colorSpace ColorSpace) *Texture {
	return &Texture{
		Name:       name,
		Width:      1,
		Height:     1,
		Pixels:     []byte{r, g, b, a},
		ColorSpace: colorSpace,
	}
}

// WithColorSpace returns a copy sharing the same pixels.
func (t *Texture) WithColorSpace(colorSpace ColorSpace) *Texture {
	c := *t
	c.ColorSpace = colorSpace
	return &c
}
