package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// stuckRetention is how long a stuck glyph survives before being purged.
const stuckRetention = 10 * time.Second

type gridCell struct {
	col, row int
}

type stuckEntry struct {
	glyph rune
	since time.Time
}

// stuckTable persists glyphs left behind by expired drops for a bounded time.
// It is owned and driven solely by the frame loop.
type stuckTable struct {
	entries map[gridCell]stuckEntry
	cfg     *Config
}

func newStuckTable(cfg *Config) *stuckTable {
	return &stuckTable{
		entries: make(map[gridCell]stuckEntry),
		cfg:     cfg,
	}
}

// insert records a glyph at (col,row). Once the table is at the configured
// capacity new insertions are silently dropped; existing entries are never
// evicted to make room. Capacity 0 means unbounded.
func (t *stuckTable) insert(col, row int, glyph rune, now time.Time) {
	if capacity := t.cfg.StuckCapacity(); capacity > 0 && len(t.entries) >= capacity {
		return
	}
	t.entries[gridCell{col, row}] = stuckEntry{glyph: glyph, since: now}
}

// purge removes every entry older than the retention window.
func (t *stuckTable) purge(now time.Time) {
	for pos, e := range t.entries {
		if now.Sub(e.since) > stuckRetention {
			delete(t.entries, pos)
		}
	}
}

// render draws every surviving entry. The engine calls this before the drops
// render so live drops paint over stuck glyphs.
func (t *stuckTable) render(c canvas, style tcell.Style) {
	for pos, e := range t.entries {
		c.SetContent(pos.col, pos.row, e.glyph, nil, style)
	}
}

func (t *stuckTable) remove(col, row int) {
	delete(t.entries, gridCell{col, row})
}

func (t *stuckTable) has(col, row int) bool {
	_, ok := t.entries[gridCell{col, row}]
	return ok
}

// clear empties the table; used on resize when the stored positions are no
// longer valid.
func (t *stuckTable) clear() {
	t.entries = make(map[gridCell]stuckEntry)
}

func (t *stuckTable) size() int {
	return len(t.entries)
}
