package scene

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hdrHeader(width, height int) []byte {
	return []byte(fmt.Sprintf("#?RADIANCE\n# test\nFORMAT=32-bit_rle_rgbe\nEXPOSURE=1.0\n\n-Y %d +X %d\n", height, width))
}

// rleScanline encodes one scanline of identical quads with run-length runs.
func rleScanline(width int, quad [4]byte) []byte {
	out := []byte{2, 2, byte(width >> 8), byte(width)}
	for c := 0; c < 4; c++ {
		for left := width; left > 0; {
			run := left
			if run > 127 {
				run = 127
			}
			out = append(out, byte(128+run), quad[c])
			left -= run
		}
	}
	return out
}

func TestDecodeHDRFlatScanlines(t *testing.T) {
	data := hdrHeader(2, 2)
	data = append(data,
		128, 64, 32, 129, 0, 0, 0, 0, // row 0
		255, 255, 255, 128, 1, 2, 3, 136, // row 1
	)

	img, err := DecodeHDR(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, img.Width)
	require.Equal(t, 2, img.Height)

	// 2^(129-136) = 1/128.
	assert.InDeltaSlice(t, []float32{1, 0.5, 0.25, 0, 0, 0}, img.Pixels[:6], 1e-6)
	assert.InDeltaSlice(t, []float32{255.0 / 256, 255.0 / 256, 255.0 / 256, 1, 2, 3}, img.Pixels[6:], 1e-6)
}

func TestDecodeHDRRunLengthScanlines(t *testing.T) {
	const width, height = 300, 3
	data := hdrHeader(width, height)
	for y := 0; y < height; y++ {
		data = append(data, rleScanline(width, [4]byte{byte(64 * (y + 1)), 0, 128, 129})...)
	}

	img, err := DecodeHDR(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, img.Pixels, width*height*3)
	for y := 0; y < height; y++ {
		px := img.Pixels[(y*width+width-1)*3:]
		assert.InDelta(t, float32(64*(y+1))/128, px[0], 1e-6, "row %d", y)
		assert.InDelta(t, 0, px[1], 1e-6)
		assert.InDelta(t, 1, px[2], 1e-6)
	}
}

func TestDecodeHDRIsDeterministic(t *testing.T) {
	data := hdrHeader(8, 2)
	for y := 0; y < 2; y++ {
		data = append(data, rleScanline(8, [4]byte{10, 20, 30, 140})...)
	}

	a, err := DecodeHDR(bytes.NewReader(data))
	require.NoError(t, err)
	b, err := DecodeHDR(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, a.Pixels, b.Pixels)
}

func TestDecodeHDRRejectsBadInput(t *testing.T) {
	cases := map[string][]byte{
		"magic":      []byte("P6\n"),
		"format":     []byte("#?RADIANCE\nFORMAT=32-bit_rle_xyze\n\n-Y 1 +X 1\n"),
		"resolution": []byte("#?RADIANCE\n\n+Y 1 +X 1\n"),
		"truncated":  append(hdrHeader(4, 1), 1, 2, 3),
		"empty":      nil,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeHDR(bytes.NewReader(data))
			assert.Error(t, err)
		})
	}
}

func TestDecodeHDRRejectsOversizedResolution(t *testing.T) {
	cases := map[string]string{
		"both axes":   "-Y 3037000500 +X 3037000500",
		"width only":  "-Y 1 +X 16777217",
		"height only": "-Y 16777217 +X 1",
		"total":       "-Y 16384 +X 16384",
	}
	for name, res := range cases {
		t.Run(name, func(t *testing.T) {
			var img *HDRImage
			var err error
			require.NotPanics(t, func() {
				img, err = DecodeHDR(strings.NewReader("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n" + res + "\n"))
			})
			assert.ErrorIs(t, err, errHDRTooLarge)
			assert.Nil(t, img)
		})
	}
}

func TestHDRFlipVertical(t *testing.T) {
	img := &HDRImage{Width: 1, Height: 3, Pixels: []float32{1, 1, 1, 2, 2, 2, 3, 3, 3}}
	img.FlipVertical()
	assert.Equal(t, []float32{3, 3, 3, 2, 2, 2, 1, 1, 1}, img.Pixels)
}

func TestLoadHDRFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.hdr")
	data := append(hdrHeader(1, 1), 128, 128, 128, 129)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	img, err := LoadHDR(path)
	require.NoError(t, err)
	assert.Equal(t, path, img.Name)
	assert.InDeltaSlice(t, []float32{1, 1, 1}, img.Pixels, 1e-6)

	_, err = LoadHDR(filepath.Join(t.TempDir(), "missing.hdr"))
	assert.Error(t, err)
}
