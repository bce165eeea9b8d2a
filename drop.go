package main

import (
	"math"
	"math/rand"

	"github.com/gdamore/tcell/v2"
)

const (
	speedVariation          = 0.3
	speedJitterProbability  = 0.02
	speedJitterAmount       = 0.05
	charChangeProbability   = 0.2
	glitchChangeProbability = 0.005
)

// drop is one falling glyph trail in a single terminal column. A drop always
// falls; when it leaves the screen the engine replaces its grid slot with a
// freshly constructed drop rather than rewinding this one.
type drop struct {
	column   int
	head     float64
	prevHead float64
	length   int
	speed    float64
	glyphs   []rune
	charset  []rune
	cfg      *Config
	rng      *rand.Rand
}

// newDrop constructs a drop fully above the visible area, with a random
// length from the configured trail bounds and a random speed. The charset is
// shared and never mutated through the drop.
func newDrop(column int, cfg *Config, charset []rune, rng *rand.Rand) *drop {
	minTrail, maxTrail := cfg.MinTrail(), cfg.MaxTrail()
	length := minTrail + rng.Intn(maxTrail-minTrail+1)
	glyphs := make([]rune, length)
	for i := range glyphs {
		glyphs[i] = charset[rng.Intn(len(charset))]
	}
	return &drop{
		column:   column,
		head:     -float64(length),
		prevHead: -float64(length),
		length:   length,
		speed:    1.0 + rng.Float64()*speedVariation,
		glyphs:   glyphs,
		charset:  charset,
		cfg:      cfg,
		rng:      rng,
	}
}

// update advances the head by speed * elapsed seconds * configured frame
// rate, occasionally jitters the speed, and resamples glyph content. It
// reports true exactly when the drop has fully exited the visible area.
func (d *drop) update(elapsed float64, rows int) bool {
	if rows <= 0 {
		return false
	}
	d.prevHead = d.head
	d.head += d.speed * elapsed * d.cfg.FrameRate()

	if d.rng.Float64() < speedJitterProbability {
		delta := (d.rng.Float64()*2 - 1) * speedJitterAmount
		d.speed = min(max(d.speed+delta, 0.5), 3.0)
	}

	for i := range d.glyphs {
		if d.rng.Float64() < charChangeProbability {
			if d.rng.Float64() < glitchChangeProbability {
				d.glyphs[i] = glitchGlyphs[d.rng.Intn(len(glitchGlyphs))]
			} else {
				d.glyphs[i] = d.charset[d.rng.Intn(len(d.charset))]
			}
		}
	}

	return d.head > float64(rows+d.length)
}

// render draws every visible glyph, brightest at the head. Flicker and glitch
// are rolled per glyph per frame and never touch the stored glyphs. A cell a
// live glyph lands on loses any stuck entry; cells vacated since the last
// update are cleared unless a stuck entry occupies them.
func (d *drop) render(c canvas, rows int, rgbFade bool, sc scheme, stuck *stuckTable) {
	head, mid, dim, dark, darkest := sc.colors()
	glitchProb := d.cfg.GlitchProbability()
	flickerProb := d.cfg.FlickerProbability()

	for i, ch := range d.glyphs {
		y := d.head - float64(i)
		if y < 0 || y >= float64(rows) {
			continue
		}
		row := int(y)

		var color tcell.Color
		switch {
		case i == 0:
			color = head
		case rgbFade:
			alpha := 1.0 - math.Pow(float64(i)/float64(d.length), 1.3)
			color = fadedColor(sc.baseRGB(), alpha)
		case i <= 3:
			color = mid
		case i <= 8:
			color = dim
		case i <= 15:
			color = dark
		default:
			color = darkest
		}

		flicker := d.rng.Float64() < flickerProb
		glitch := d.rng.Float64() < glitchProb
		glyph := ch
		if glitch {
			glyph = glitchGlyphs[d.rng.Intn(len(glitchGlyphs))]
		} else if flicker {
			glyph = ' '
		}

		stuck.remove(d.column, row)
		c.SetContent(d.column, row, glyph, nil, tcell.StyleDefault.Foreground(color))
	}

	d.clearVacated(c, rows, stuck)
}

// clearVacated blanks the cells the tail left behind between the previous and
// current update. The head can advance more than one row per frame, so the
// whole vacated range is cleared, not just one cell.
func (d *drop) clearVacated(c canvas, rows int, stuck *stuckTable) {
	from := int(d.prevHead) - d.length + 1
	to := int(d.head) - d.length
	for row := from; row <= to; row++ {
		if row < 0 || row >= rows {
			continue
		}
		if stuck.has(d.column, row) {
			continue
		}
		c.SetContent(d.column, row, ' ', nil, tcell.StyleDefault)
	}
}

// stickCandidate rolls the stuck probability once. On a hit it returns the
// drop's last glyph and a uniformly random in-bounds row. Only meaningful
// immediately before an expired drop is replaced.
func (d *drop) stickCandidate(rows int) (row int, glyph rune, ok bool) {
	if rows <= 0 || len(d.glyphs) == 0 {
		return 0, 0, false
	}
	if d.rng.Float64() >= d.cfg.StuckProbability() {
		return 0, 0, false
	}
	return d.rng.Intn(rows), d.glyphs[len(d.glyphs)-1], true
}
