package scene

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// HDRImage is a decoded Radiance RGBE image as linear float RGB triples.
type HDRImage struct {
	Name   string
	Width  int
	Height int
	// Pixels holds 3 floats per texel, row-major, top-to-bottom unless
	// FlipVertical has been applied.
	Pixels []float32
}

var (
	errHDRFormat   = errors.New("not a radiance hdr file")
	errHDRTooLarge = errors.New("hdr image too large")
)

// Decode limits: per axis, and in total (a 16k x 8k panorama).
const (
	maxHDRDimension = 1 << 24
	maxHDRTexels    = 1 << 27
)

// LoadHDR reads a Radiance .hdr file.
func LoadHDR(path string) (*HDRImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hdr %q: %w", path, err)
	}
	defer f.Close()

	img, err := DecodeHDR(f)
	if err != nil {
		return nil, fmt.Errorf("decode hdr %q: %w", path, err)
	}
	img.Name = path
	return img, nil
}

// DecodeHDR decodes an RGBE stream with the standard "-Y h +X w" layout,
// flat or new-style run-length encoded scanlines.
func DecodeHDR(r io.Reader) (*HDRImage, error) {
	br := bufio.NewReader(r)

	magic, err := readHeaderLine(br)
	if err != nil {
		return nil, err
	}
	if magic != "#?RADIANCE" && magic != "#?RGBE" {
		return nil, errHDRFormat
	}
	for {
		line, err := readHeaderLine(br)
		if err != nil {
			return nil, err
		}
		if line == "" {
			break
		}
		if format, ok := strings.CutPrefix(line, "FORMAT="); ok && format != "32-bit_rle_rgbe" {
			return nil, fmt.Errorf("unsupported pixel format %q", format)
		}
	}

	resolution, err := readHeaderLine(br)
	if err != nil {
		return nil, err
	}
	width, height, err := parseResolution(resolution)
	if err != nil {
		return nil, err
	}

	img := &HDRImage{Width: width, Height: height, Pixels: make([]float32, width*height*3)}
	scanline := make([]byte, width*4)
	for y := 0; y < height; y++ {
		if err := readScanline(br, scanline, width); err != nil {
			return nil, fmt.Errorf("scanline %d: %w", y, err)
		}
		row := img.Pixels[y*width*3 : (y+1)*width*3]
		for x := 0; x < width; x++ {
			rgbeToFloat(scanline[x*4:x*4+4], row[x*3:x*3+3])
		}
	}
	return img, nil
}

// FlipVertical reverses row order so row 0 is the bottom, as GL expects.
func (h *HDRImage) FlipVertical() {
	stride := h.Width * 3
	tmp := make([]float32, stride)
	for top, bottom := 0, h.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := h.Pixels[top*stride : (top+1)*stride]
		b := h.Pixels[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

func readHeaderLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func parseResolution(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "-Y" || fields[2] != "+X" {
		return 0, 0, fmt.Errorf("unsupported resolution line %q", line)
	}
	height, err := strconv.Atoi(fields[1])
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("bad height in %q", line)
	}
	width, err := strconv.Atoi(fields[3])
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("bad width in %q", line)
	}
	if width > maxHDRDimension || height > maxHDRDimension || width*height > maxHDRTexels {
		return 0, 0, fmt.Errorf("%w: %dx%d", errHDRTooLarge, width, height)
	}
	return width, height, nil
}

// readScanline fills dst with width RGBE quads.
func readScanline(br *bufio.Reader, dst []byte, width int) error {
	var head [4]byte
	if _, err := io.ReadFull(br, head[:]); err != nil {
		return err
	}
	rle := width >= 8 && width < 0x8000 && head[0] == 2 && head[1] == 2 && head[2]&0x80 == 0
	if !rle {
		copy(dst, head[:])
		_, err := io.ReadFull(br, dst[4:])
		return err
	}
	if int(head[2])<<8|int(head[3]) != width {
		return errors.New("scanline width mismatch")
	}

	// Channels are stored one after another, each run-length encoded.
	for c := 0; c < 4; c++ {
		for x := 0; x < width; {
			count, err := br.ReadByte()
			if err != nil {
				return err
			}
			if count > 128 {
				run := int(count - 128)
				if x+run > width {
					return errors.New("run overflows scanline")
				}
				value, err := br.ReadByte()
				if err != nil {
					return err
				}
				for i := 0; i < run; i++ {
					dst[(x+i)*4+c] = value
				}
				x += run
				continue
			}
			n := int(count)
			if n == 0 || x+n > width {
				return errors.New("bad literal length")
			}
			for i := 0; i < n; i++ {
				value, err := br.ReadByte()
				if err != nil {
					return err
				}
				dst[(x+i)*4+c] = value
			}
			x += n
		}
	}
	return nil
}

func rgbeToFloat(rgbe []byte, out []float32) {
	if rgbe[3] == 0 {
		out[0], out[1], out[2] = 0, 0, 0
		return
	}
	f := float32(math.Ldexp(1, int(rgbe[3])-(128+8)))
	out[0] = float32(rgbe[0]) * f
	out[1] = float32(rgbe[1]) * f
	out[2] = float32(rgbe[2]) * f
}
