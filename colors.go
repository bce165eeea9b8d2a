package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

const defaultColorCode = 10

// scheme is the resolved color ramp for drop trails. Construct it through
// resolveScheme; it is immutable after that.
type scheme struct {
	custom bool
	code   int
	base   tcell.Color
}

// resolveScheme maps a terminal palette code (0-15) to a scheme. The two
// green codes keep the classic green ramp; every other valid code fades
// through the selected color with a white head. Out-of-range codes fall back
// to green, and the second return reports that so the caller can warn the
// operator.
func resolveScheme(code int) (scheme, bool) {
	if code < 0 || code > 15 {
		return scheme{code: defaultColorCode}, true
	}
	if code == 2 || code == defaultColorCode {
		return scheme{code: code}, false
	}
	return scheme{custom: true, code: code, base: tcell.PaletteColor(code)}, false
}

// colors returns the five-step discrete gradient, brightest first. The head
// is always white so it stays visible against the body color.
func (s scheme) colors() (head, mid, dim, dark, darkest tcell.Color) {
	if s.custom {
		return tcell.ColorWhite, s.base, s.base, s.base, tcell.ColorBlack
	}
	return tcell.ColorWhite, tcell.PaletteColor(10), tcell.PaletteColor(2), tcell.PaletteColor(2), tcell.ColorBlack
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

var greenRGB = rgb(0, 255, 0)

// approximate RGB triples for the 16-color palette, for continuous fades
var paletteRGB = map[int]colorful.Color{
	0:  rgb(0, 0, 0),
	1:  rgb(139, 0, 0),
	3:  rgb(184, 134, 11),
	4:  rgb(0, 0, 139),
	5:  rgb(139, 0, 139),
	6:  rgb(0, 139, 139),
	7:  rgb(192, 192, 192),
	8:  rgb(169, 169, 169),
	9:  rgb(255, 0, 0),
	11: rgb(255, 255, 0),
	12: rgb(0, 0, 255),
	13: rgb(255, 0, 255),
	14: rgb(0, 255, 255),
	15: rgb(255, 255, 255),
}

// baseRGB is the starting color for continuous-fade rendering. Codes without
// an RGB mapping fade through green.
func (s scheme) baseRGB() colorful.Color {
	if !s.custom {
		return greenRGB
	}
	if c, ok := paletteRGB[s.code]; ok {
		return c
	}
	return greenRGB
}

// fadedColor darkens base toward black; alpha 1 is full brightness.
func fadedColor(base colorful.Color, alpha float64) tcell.Color {
	blended := base.BlendRgb(colorful.Color{}, 1-min(max(alpha, 0), 1))
	r, g, b := blended.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
