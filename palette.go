package main

import "strings"

// half-width katakana as Go runes
// source: http://en.wikipedia.org/wiki/Half-width_kana
var katakanaGlyphs = []rune{
	'ｱ', 'ｲ', 'ｳ', 'ｴ', 'ｵ', 'ｶ', 'ｷ', 'ｸ', 'ｹ', 'ｺ', 'ｻ', 'ｼ', 'ｽ', 'ｾ', 'ｿ',
	'ﾀ', 'ﾁ', 'ﾂ', 'ﾃ', 'ﾄ', 'ﾅ', 'ﾆ', 'ﾇ', 'ﾈ', 'ﾉ', 'ﾊ', 'ﾋ', 'ﾌ', 'ﾍ', 'ﾎ',
	'ﾏ', 'ﾐ', 'ﾑ', 'ﾒ', 'ﾓ', 'ﾔ', 'ﾕ', 'ﾖ', 'ﾗ', 'ﾘ', 'ﾙ', 'ﾚ', 'ﾛ', 'ﾜ', 'ﾝ',
}

var alphanumericGlyphs = []rune{
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M',
	'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
}

var symbolGlyphs = []rune{
	':', '·', '¦', '‡', '†', '°', '¤', '═', '║', '╔', '╗', '╚', '╝', '╠', '╣', '╦', '╩', '╬',
}

var greekGlyphs = []rune{
	'Α', 'Β', 'Γ', 'Δ', 'Ε', 'Ζ', 'Η', 'Θ', 'Ι', 'Κ', 'Λ', 'Μ',
	'Ν', 'Ξ', 'Ο', 'Π', 'Ρ', 'Σ', 'Τ', 'Υ', 'Φ', 'Χ', 'Ψ', 'Ω',
}

// block glyphs substituted during a glitch
var glitchGlyphs = []rune{'▒', '▓', '░', '█'}

// classicPalette concatenates every glyph set into one freshly owned slice.
// The engine holds it for the run's duration; nothing is leaked or shared
// between runs.
func classicPalette() []rune {
	combined := make([]rune, 0, len(katakanaGlyphs)+len(alphanumericGlyphs)+len(symbolGlyphs)+len(greekGlyphs))
	combined = append(combined, katakanaGlyphs...)
	combined = append(combined, alphanumericGlyphs...)
	combined = append(combined, symbolGlyphs...)
	combined = append(combined, greekGlyphs...)
	return combined
}

// paletteByName resolves a palette name, case-insensitively. Unknown names
// fall back to the classic combined set; the second return reports whether
// the name was recognized so the caller can warn.
func paletteByName(name string) ([]rune, bool) {
	switch strings.ToLower(name) {
	case "katakana":
		return katakanaGlyphs, true
	case "alphanumeric":
		return alphanumericGlyphs, true
	case "symbols":
		return symbolGlyphs, true
	case "greek":
		return greekGlyphs, true
	case "classic":
		return classicPalette(), true
	default:
		return classicPalette(), false
	}
}
