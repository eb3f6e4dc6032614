package stone

import "image/color"

// ColorID indexes the stone palette. The palette is deliberately small so
// young children can name every color.
type ColorID uint8

const (
	ColorRed ColorID = iota
	ColorOrange
	ColorYellow
	ColorGreen
	ColorBlue
	ColorPurple
	ColorWell
	colorCount
)

// Category groups palette entries into warm and cool families for the
// stack mode's faint-glow reaction.
type Category uint8

const (
	CategoryWarm Category = iota
	CategoryCool
	CategoryNone
)

var palette = [colorCount]color.RGBA{
	ColorRed:    {R: 0xe5, G: 0x4d, B: 0x42, A: 0xff},
	ColorOrange: {R: 0xf2, G: 0x99, B: 0x3b, A: 0xff},
	ColorYellow: {R: 0xf2, G: 0xd0, B: 0x49, A: 0xff},
	ColorGreen:  {R: 0x5f, G: 0xb5, B: 0x6b, A: 0xff},
	ColorBlue:   {R: 0x48, G: 0x86, B: 0xc9, A: 0xff},
	ColorPurple: {R: 0x8e, G: 0x63, B: 0xb5, A: 0xff},
	ColorWell:   {R: 0x2e, G: 0x2a, B: 0x3a, A: 0xff},
}

// complement holds the opposite-on-the-wheel pairing used for sparks.
var complement = map[ColorID]ColorID{
	ColorRed:    ColorGreen,
	ColorGreen:  ColorRed,
	ColorOrange: ColorBlue,
	ColorBlue:   ColorOrange,
	ColorYellow: ColorPurple,
	ColorPurple: ColorYellow,
}

// RGBA returns the draw color for a palette entry.
func (c ColorID) RGBA() color.RGBA {
	if c >= colorCount {
		return palette[ColorBlue]
	}
	return palette[c]
}

// Category reports the warm/cool family of a palette entry.
func (c ColorID) Category() Category {
	switch c {
	case ColorRed, ColorOrange, ColorYellow:
		return CategoryWarm
	case ColorGreen, ColorBlue, ColorPurple:
		return CategoryCool
	default:
		return CategoryNone
	}
}

// Complementary reports whether two palette entries sit opposite each other
// on the color wheel.
func Complementary(a, b ColorID) bool {
	return complement[a] == b
}

// colorForMass gives light stones warm colors and heavy stones cool ones,
// so weight reads at a glance.
func colorForMass(mass float64) ColorID {
	switch {
	case mass < 0.75:
		return ColorYellow
	case mass < 1.25:
		return ColorOrange
	case mass < 2.0:
		return ColorGreen
	case mass < 3.0:
		return ColorBlue
	default:
		return ColorPurple
	}
}
