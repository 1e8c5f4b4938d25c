package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaletteIndex(t *testing.T) {
	cases := map[string]int{
		"":                   0,
		"A":                  1,
		"Steel":              11,
		"G4_AIR":             8,
		"G4_Galactic":        12,
		"Lead":               12,
		"G4_STAINLESS-STEEL": 10,
		"Vacuum":             5,
	}
	for name, want := range cases {
		assert.Equal(t, want, PaletteIndex(name), name)
	}
}

func TestResolvePaletteFallback(t *testing.T) {
	c := ResolveMaterialColor("Steel", nil, nil)
	assert.Equal(t, "#B0BEC5", c.Value)
	assert.InDelta(t, 0xB0/255.0, c.R, 1e-6)
}

func TestResolveHintWins(t *testing.T) {
	c := ResolveMaterialColor("Lead", ptr("3399FF"), ptr(11.35))
	assert.Equal(t, "#3399FF", c.Value)
	assert.InDelta(t, 0x33/255.0, c.R, 1e-6)
	assert.InDelta(t, 0x99/255.0, c.G, 1e-6)
	assert.InDelta(t, 1.0, c.B, 1e-6)

	// A leading '#' and trailing alpha are accepted.
	assert.Equal(t, "#3399FF", ResolveMaterialColor("Lead", ptr("#3399FF80"), nil).Value)
	assert.Equal(t, "#FF0000", ResolveMaterialColor("Lead", ptr("FF0000FF"), nil).Value)
}

func TestResolveIgnoresDarkOrBrokenHints(t *testing.T) {
	density := ptr(1.0)
	want := DensityColor(1.0)

	// Luminance at or below 20 marks a placeholder.
	assert.Equal(t, want, ResolveMaterialColor("Water", ptr("000000"), density))
	assert.Equal(t, want, ResolveMaterialColor("Water", ptr("141414"), density))
	assert.Equal(t, want, ResolveMaterialColor("Water", ptr("zzzzzz"), density))
	assert.Equal(t, want, ResolveMaterialColor("Water", ptr("FFF"), density))

	// Without density the palette takes over.
	assert.Equal(t, "#B0BEC5", ResolveMaterialColor("Steel", ptr("000000"), nil).Value)
}

func TestResolveNonPositiveDensityFallsThrough(t *testing.T) {
	assert.Equal(t, "#B0BEC5", ResolveMaterialColor("Steel", nil, ptr(0.0)).Value)
	assert.Equal(t, "#B0BEC5", ResolveMaterialColor("Steel", nil, ptr(-3.0)).Value)
}

func TestHintLuminance(t *testing.T) {
	assert.InDelta(t, 255, HintLuminance(255, 255, 255), 1e-9)
	assert.InDelta(t, 20, HintLuminance(20, 20, 20), 1e-9)
	assert.InDelta(t, 76.245, HintLuminance(255, 0, 0), 1e-9)
}

func TestDensityRamp(t *testing.T) {
	cases := []struct {
		density float64
		t, h    float64
		value   string
	}{
		{0.01, 0.2303, 128.61, "hsl(129, 63%, 69%)"},
		{0.1, 0.4606, 57.22, "hsl(57, 67%, 63%)"},
		{1, 0.6909, 16.37, "hsl(16, 70%, 58%)"},
		{5, 0.8518, 339.27, "hsl(339, 73%, 54%)"},
		{22, 1.0, 280, "hsl(280, 75%, 50%)"},
	}
	for _, c := range cases {
		assert.InDelta(t, c.t, DensityT(c.density), 1e-3, "t(%v)", c.density)
		h, _, _ := DensityHSL(c.density)
		assert.InDelta(t, c.h, h, 0.05, "hue(%v)", c.density)
		assert.Equal(t, c.value, DensityColor(c.density).Value)
	}
}

func TestDensityClamps(t *testing.T) {
	assert.Equal(t, 0.0, DensityT(0.0001))
	assert.Equal(t, 1.0, DensityT(1000))
	h, s, l := DensityHSL(0.0001)
	assert.Equal(t, 200.0, h)
	assert.Equal(t, 60.0, s)
	assert.Equal(t, 75.0, l)
}

func TestDensityColorRGB(t *testing.T) {
	// hsl(280, 75%, 50%)
	c := DensityColor(22)
	assert.InDelta(t, 0.625, c.R, 1e-3)
	assert.InDelta(t, 0.125, c.G, 1e-3)
	assert.InDelta(t, 0.875, c.B, 1e-3)
}

func TestResolverIsDeterministicAndMemoized(t *testing.T) {
	mr := NewMaterialColorResolver()
	a := mr.Resolve("G4_AIR", nil, ptr(0.0012))
	b := mr.Resolve("G4_AIR", nil, ptr(0.0012))
	assert.Equal(t, a, b)
	assert.Len(t, mr.cache, 1)
	assert.Equal(t, "hsl(194, 60%, 75%)", a.Value)

	// Same name, different inputs resolve separately.
	c := mr.Resolve("G4_AIR", nil, nil)
	assert.Equal(t, materialPalette[8], c.Value)
	assert.Len(t, mr.cache, 2)

	mr.Reset()
	assert.Empty(t, mr.cache)
	assert.Equal(t, a, mr.Resolve("G4_AIR", nil, ptr(0.0012)))
}
