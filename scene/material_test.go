package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pbr-viewer/core"
)

func TestMaterialFallbackTextures(t *testing.T) {
	mat := DefaultMaterial()
	mat.Albedo = core.Color{R: 1, G: 0, B: 0.5, A: 1}
	mat.Metallic = 1

	albedo := mat.Texture(SlotAlbedo)
	assert.Equal(t, ColorSpaceSRGB, albedo.ColorSpace)
	// 0.5 linear encodes to 188 in sRGB.
	assert.Equal(t, []byte{255, 0, 188, 255}, albedo.Pixels)

	assert.Equal(t, []byte{128, 128, 255, 255}, mat.Texture(SlotNormal).Pixels)
	assert.Equal(t, []byte{255, 255, 255, 255}, mat.Texture(SlotMetallic).Pixels)
	assert.Equal(t, []byte{128, 128, 128, 255}, mat.Texture(SlotRoughness).Pixels)
	assert.Equal(t, []byte{255, 255, 255, 255}, mat.Texture(SlotAO).Pixels)
	assert.Equal(t, []byte{0, 0, 0, 255}, mat.Texture(SlotHeight).Pixels)
}

func TestMaterialPrefersBoundTexture(t *testing.T) {
	mat := DefaultMaterial()
	tex := NewSolidTexture("bound", 1, 2, 3, 4, ColorSpaceLinear)
	mat.Textures[SlotAO] = tex
	assert.Same(t, tex, mat.Texture(SlotAO))
}

func TestTextureSlotSamplersAndColorSpaces(t *testing.T) {
	assert.Equal(t, "albedoMap", SlotAlbedo.Sampler())
	assert.Equal(t, "heightMap", SlotHeight.Sampler())
	assert.Equal(t, ColorSpaceSRGB, SlotAlbedo.ColorSpace())
	for slot := SlotNormal; slot < SlotCount; slot++ {
		assert.Equal(t, ColorSpaceLinear, slot.ColorSpace(), slot.Sampler())
	}
}

func TestSplitMetallicRoughness(t *testing.T) {
	packed := &Texture{Name: "mr", Width: 2, Height: 1, Pixels: []byte{
		0, 255, 0, 255,
		0, 0, 255, 255,
	}}

	metallic, roughness := SplitMetallicRoughness(packed, 1, 0.5)
	assert.Equal(t, []byte{0, 0, 0, 255, 255, 255, 255, 255}, metallic.Pixels)
	assert.Equal(t, []byte{128, 128, 128, 255, 0, 0, 0, 255}, roughness.Pixels)
	assert.Equal(t, ColorSpaceLinear, metallic.ColorSpace)
}

func TestParseTextureSlot(t *testing.T) {
	for slot := SlotAlbedo; slot < SlotCount; slot++ {
		got, ok := ParseTextureSlot(slot.String())
		assert.True(t, ok)
		assert.Equal(t, slot, got)
	}
	_, ok := ParseTextureSlot("specular")
	assert.False(t, ok)
	assert.Equal(t, "invalid", SlotCount.String())
}
