package g

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSB converts a hue in degrees and saturation/brightness in percent, the
// way the sketches specify colors, to a color.
func HSB(h, s, b float64) color.Color {
	return colorful.Hsv(h, s/100, b/100).Clamped()
}

// A Paint represents a selection-of-color from a Palette.
type Paint int

// A Palette represents a collection of indexed colors.
type Palette struct {
	Colors []colorful.Color
	Length int
}

// Palettes is the set of known Palettes.
var Palettes = map[string]*Palette{
	"dogs": NewPalette(
		colorful.Hsv(22, 0.55, 0.45),
		colorful.Hsv(35, 0.40, 0.80),
		colorful.Hsv(10, 0.70, 0.65),
		colorful.Hsv(48, 0.25, 0.95),
		colorful.Hsv(0, 0, 0.15),
	),
	"berry": NewPalette(
		colorful.Hsv(330, 0.70, 0.55),
		colorful.Hsv(175, 0.65, 0.70),
		colorful.Hsv(300, 0.45, 0.35),
		colorful.Hsv(190, 0.30, 0.95),
	),
	"rainbow": NewPalette(
		colorful.Hsv(0, 1, 1),
		colorful.Hsv(22, 1, 0.94),
		colorful.Hsv(60, 1, 0.86),
		colorful.Hsv(120, 1, 0.78),
		colorful.Hsv(240, 1, 1),
		colorful.Hsv(294, 1, 0.78),
	),
}

// NewPalette builds a palette from colors.
func NewPalette(cs ...colorful.Color) *Palette {
	return &Palette{Colors: cs, Length: len(cs)}
}

// Paint yields the idx'th Paint in a given Palette, coercing into range.
func (p Palette) Paint(idx int) Paint {
	return Paint(((idx % p.Length) + p.Length) % p.Length)
}

// Color yields the color for a paint, coercing into range.
func (p Palette) Color(pt Paint) color.Color {
	return p.Colors[int(p.Paint(int(pt)))].Clamped()
}

// Blend yields a color t of the way from pt to the next paint, mixed in
// Lab space so the midpoints stay saturated.
func (p Palette) Blend(pt Paint, t float64) color.Color {
	a := p.Colors[p.Paint(int(pt))]
	b := p.Colors[p.Paint(int(pt)+1)]
	return a.BlendLab(b, t).Clamped()
}
