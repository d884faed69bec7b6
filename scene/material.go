package scene

import (
	"math"

	"pbr-viewer/core"
)

// TextureSlot names the material inputs of the PBR shader. The slot value is
// also the texture unit the slot binds to.
type TextureSlot int

const (
	SlotAlbedo TextureSlot = iota
	SlotNormal
	SlotMetallic
	SlotRoughness
	SlotAO
	SlotHeight
	SlotCount
)

var slotSamplers = [SlotCount]string{
	"albedoMap", "normalMap", "metallicMap", "roughnessMap", "aoMap", "heightMap",
}

var slotNames = [SlotCount]string{"albedo", "normal", "metallic", "roughness", "ao", "height"}

func (s TextureSlot) String() string {
	if s < 0 || s >= SlotCount {
		return "invalid"
	}
	return slotNames[s]
}

// ParseTextureSlot maps a config key such as "roughness" to its slot.
func ParseTextureSlot(name string) (TextureSlot, bool) {
	for i, n := range slotNames {
		if n == name {
			return TextureSlot(i), true
		}
	}
	return SlotCount, false
}

// Sampler is the GLSL sampler uniform fed by this slot.
func (s TextureSlot) Sampler() string {
	return slotSamplers[s]
}

// ColorSpace is how images bound to this slot are encoded. Only albedo is
// colour data.
func (s TextureSlot) ColorSpace() ColorSpace {
	if s == SlotAlbedo {
		return ColorSpaceSRGB
	}
	return ColorSpaceLinear
}

// Material describes the metallic-roughness inputs for one mesh. Slots with
// no texture fall back to a 1x1 texture built from the scalar factors.
type Material struct {
	Name      string
	Albedo    core.Color // linear base colour
	Metallic  float32
	Roughness float32
	AO        float32

	Textures [SlotCount]*Texture
}

func DefaultMaterial() *Material {
	return &Material{
		Name:      "Default",
		Albedo:    core.ColorWhite,
		Metallic:  0,
		Roughness: 0.5,
		AO:        1,
	}
}

// Texture returns the bound texture for slot, or its solid fallback.
func (m *Material) Texture(slot TextureSlot) *Texture {
	if tex := m.Textures[slot]; tex != nil {
		return tex
	}
	return m.FallbackTexture(slot)
}

// FallbackTexture encodes the slot's scalar factor as a single texel.
func (m *Material) FallbackTexture(slot TextureSlot) *Texture {
	name := m.Name + "/" + slot.Sampler()
	switch slot {
	case SlotAlbedo:
		return NewSolidTexture(name,
			unorm(linearToSRGB(m.Albedo.R)), unorm(linearToSRGB(m.Albedo.G)),
			unorm(linearToSRGB(m.Albedo.B)), unorm(m.Albedo.A), ColorSpaceSRGB)
	case SlotNormal:
		return NewSolidTexture(name, 128, 128, 255, 255, ColorSpaceLinear)
	case SlotMetallic:
		v := unorm(m.Metallic)
		return NewSolidTexture(name, v, v, v, 255, ColorSpaceLinear)
	case SlotRoughness:
		v := unorm(m.Roughness)
		return NewSolidTexture(name, v, v, v, 255, ColorSpaceLinear)
	case SlotAO:
		v := unorm(m.AO)
		return NewSolidTexture(name, v, v, v, 255, ColorSpaceLinear)
	default:
		// Zero depth: parallax mapping leaves coordinates untouched.
		return NewSolidTexture(name, 0, 0, 0, 255, ColorSpaceLinear)
	}
}

func unorm(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func linearToSRGB(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return float32(1.055*math.Pow(float64(v), 1/2.4) - 0.055)
}
