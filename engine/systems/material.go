package systems

import (
	"fmt"
	gomath "math"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/davsar89/GDML-Studio/engine/core"
	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

// Bright palette for materials with neither a usable hint nor a density.
var materialPalette = [16]string{
	"#64B5F6", "#81C784", "#FFB74D", "#CE93D8",
	"#FF8A65", "#4DD0E1", "#AED581", "#F06292",
	"#FFD54F", "#9FA8DA", "#BCAAA4", "#B0BEC5",
	"#EF9A9A", "#4FC3F7", "#E6EE9C", "#80CBC4",
}

const (
	// Hints at or below this luminance are placeholders and are ignored.
	hintLuminanceThreshold = 20.0

	minDensity = 0.001
	maxDensity = 22.0
)

// Highlight and ambient surface colors.
var (
	SelectedColor             = mustColor("#ff6090")
	SelectedEmissive          = mustColor("#ff2060")
	SelectedEmissiveIntensity = float32(0.3)
	AmbientEmissive           = mustColor("#202020")
	AmbientEmissiveIntensity  = float32(0.15)
)

type materialKey struct {
	name    string
	hint    string
	density float64
	hasHint bool
	hasDens bool
}

/**
 * @brief Maps a material to its display color. The result depends only on
 * the inputs: a bright enough color hint wins, then the density ramp, then a
 * palette entry chosen by hashing the material name.
 */
type MaterialColorResolver struct {
	cache map[materialKey]metadata.Color
}

func NewMaterialColorResolver() *MaterialColorResolver {
	return &MaterialColorResolver{
		cache: make(map[materialKey]metadata.Color),
	}
}

/**
 * @brief Resolves the display color of a material.
 *
 * @param materialName The material name, used for the palette fallback.
 * @param hint An optional "RRGGBB" color hint, with or without a leading '#'.
 * @param density An optional density in g/cm3.
 * @return The resolved color.
 */
func (mr *MaterialColorResolver) Resolve(materialName string, hint *string, density *float64) metadata.Color {
	key := materialKey{name: materialName}
	if hint != nil {
		key.hint, key.hasHint = *hint, true
	}
	if density != nil {
		key.density, key.hasDens = *density, true
	}
	if c, ok := mr.cache[key]; ok {
		return c
	}
	c := ResolveMaterialColor(materialName, hint, density)
	mr.cache[key] = c
	return c
}

// Reset drops memoized colors.
func (mr *MaterialColorResolver) Reset() {
	mr.cache = make(map[materialKey]metadata.Color)
}

// ResolveMaterialColor is the uncached form of MaterialColorResolver.Resolve.
func ResolveMaterialColor(materialName string, hint *string, density *float64) metadata.Color {
	if hint != nil {
		if c, ok := hintColor(*hint); ok {
			return c
		}
	}
	if density != nil && *density > 0 {
		return DensityColor(*density)
	}
	return mustColor(materialPalette[PaletteIndex(materialName)])
}

// hintColor accepts hints whose first six characters are hex RGB with a
// luminance above the placeholder threshold.
func hintColor(hint string) (metadata.Color, bool) {
	hint = strings.TrimPrefix(strings.TrimSpace(hint), "#")
	if len(hint) < 6 {
		return metadata.Color{}, false
	}
	hint = hint[:6]
	rgb, err := strconv.ParseUint(hint, 16, 32)
	if err != nil {
		return metadata.Color{}, false
	}
	r := float64((rgb >> 16) & 0xFF)
	g := float64((rgb >> 8) & 0xFF)
	b := float64(rgb & 0xFF)
	if HintLuminance(r, g, b) <= hintLuminanceThreshold {
		return metadata.Color{}, false
	}
	return metadata.Color{
		Value: "#" + hint,
		R:     float32(r / 255),
		G:     float32(g / 255),
		B:     float32(b / 255),
	}, true
}

// HintLuminance is the perceptual luminance of 0-255 channels.
func HintLuminance(r, g, b float64) float64 {
	return 0.299*r + 0.587*g + 0.114*b
}

// DensityT maps a density onto [0, 1] on a log scale between 0.001 and 22 g/cm3.
func DensityT(density float64) float64 {
	d := gomath.Min(gomath.Max(density, minDensity), maxDensity)
	lo := gomath.Log(minDensity)
	hi := gomath.Log(maxDensity)
	t := (gomath.Log(d) - lo) / (hi - lo)
	return gomath.Min(gomath.Max(t, 0), 1)
}

/**
 * @brief Returns hue (degrees), saturation and lightness (percent) for a
 * density. Hue runs 200 to 45 over the first half of the ramp, 45 to 0 up to
 * 0.8 and then 360 down to 280 for the densest materials.
 */
func DensityHSL(density float64) (h, s, l float64) {
	t := DensityT(density)
	switch {
	case t < 0.5:
		h = 200 - t*2*155
	case t < 0.8:
		h = 45 - ((t-0.5)/0.3)*45
	default:
		h = 360 - ((t-0.8)/0.2)*80
	}
	s = 60 + 15*t
	l = 75 - 25*t
	return h, s, l
}

func DensityColor(density float64) metadata.Color {
	h, s, l := DensityHSL(density)
	h, s, l = gomath.Round(h), gomath.Round(s), gomath.Round(l)
	c := colorful.Hsl(h, s/100, l/100).Clamped()
	return metadata.Color{
		Value: fmt.Sprintf("hsl(%d, %d%%, %d%%)", int(h), int(s), int(l)),
		R:     float32(c.R),
		G:     float32(c.G),
		B:     float32(c.B),
	}
}

// PaletteIndex hashes the UTF-16 code units of name into a palette slot.
// Only the shifted operand wraps to 32 bits; the running sum stays exact.
func PaletteIndex(name string) int {
	hash := 0.0
	for _, code := range utf16.Encode([]rune(name)) {
		shifted := int32(int64(hash)) << 5
		hash = float64(code) + (float64(shifted) - hash)
	}
	n := float64(len(materialPalette))
	return int(gomath.Mod(gomath.Mod(hash, n)+n, n))
}

func mustColor(hex string) metadata.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		core.LogError("invalid color constant %s: %s", hex, err)
		return metadata.Color{Value: hex}
	}
	return metadata.Color{
		Value: hex,
		R:     float32(c.R),
		G:     float32(c.G),
		B:     float32(c.B),
	}
}
