package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/rs/zerolog"

	"pbr-viewer/math"
	"pbr-viewer/scene"
)

// UploadTexture uploads a scene.Texture as a mipmapped, repeating 2D texture.
// sRGB textures use an sRGB internal format so sampling returns linear
// values. The GL context must be current.
func UploadTexture(tex *scene.Texture) (uint32, error) {
	if tex == nil {
		return 0, fmt.Errorf("nil texture")
	}
	if len(tex.Pixels) < tex.Width*tex.Height*4 || tex.Width <= 0 || tex.Height <= 0 {
		return 0, fmt.Errorf("texture %q has no pixel data", tex.Name)
	}

	internal := int32(gl.RGBA8)
	if tex.ColorSpace == scene.ColorSpaceSRGB {
		internal = gl.SRGB8_ALPHA8
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal,
		int32(tex.Width), int32(tex.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(tex.Pixels))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id, nil
}

// LoadTexture2D reads and uploads an image file. Failures are logged with
// the path and yield 0.
func LoadTexture2D(path string, colorSpace scene.ColorSpace, log zerolog.Logger) uint32 {
	tex, err := scene.LoadTexture(path, colorSpace)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Texture failed to load at path")
		return 0
	}
	id, err := UploadTexture(tex)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("texture upload failed")
		return 0
	}
	return id
}

// LoadHDRTexture uploads a Radiance image as a flipped RGB16F texture for the
// equirectangular capture.
func LoadHDRTexture(path string, log zerolog.Logger) (uint32, error) {
	img, err := scene.LoadHDR(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to load HDR image")
		return 0, err
	}
	img.FlipVertical()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB16F,
		int32(img.Width), int32(img.Height), 0,
		gl.RGB, gl.FLOAT, gl.Ptr(img.Pixels))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	log.Debug().Str("path", path).Int("width", img.Width).Int("height", img.Height).Msg("hdr environment uploaded")
	return id, nil
}

// LoadCubemap builds one sRGB cubemap from six images in +X, -X, +Y, -Y,
// +Z, -Z order. A face that fails to load is logged and left empty.
func LoadCubemap(faces [math.CubeFaceCount]string, log zerolog.Logger) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for f, path := range faces {
		tex, err := scene.LoadTexture(path, scene.ColorSpaceSRGB)
		if err != nil {
			log.Error().Err(err).Str("path", path).Str("face", math.CubeFace(f).String()).
				Msg("Cubemap texture failed to load at path")
			continue
		}
		gl.TexImage2D(uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X+f), 0, gl.SRGB8_ALPHA8,
			int32(tex.Width), int32(tex.Height), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(tex.Pixels))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return id
}

// DeleteTexture frees a texture handle and zeroes it.
func DeleteTexture(id *uint32) {
	if id == nil || *id == 0 {
		return
	}
	gl.DeleteTextures(1, id)
	*id = 0
}
