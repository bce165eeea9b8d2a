package main

import (
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gdamore/tcell/v2"
)

const (
	// frameDelay paces wall-clock redraws. It is deliberately independent of
	// the configured frame rate, which only scales simulated velocity.
	frameDelay    = 60 * time.Millisecond
	spawnInterval = 200 * time.Millisecond
	pollTimeout   = time.Millisecond

	// share of columns reseeded after a resize
	resizeReseedProbability = 0.3
)

// canvas is the subset of tcell.Screen the animation draws on. Tests swap in
// a recording implementation to check draw bounds.
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

type engineParams struct {
	rgbFade      bool
	stuckEnabled bool
	initialDrops int
	debug        bool
}

// engine owns the drop grid and drives the frame loop: input polling, resize
// recovery, spawning, per-drop update and render, and the stuck table. All
// per-frame work runs sequentially on one goroutine; the only concurrent
// access is the running flag, cleared by the signal handler.
type engine struct {
	screen  tcell.Screen
	cv      canvas
	cfg     *Config
	sc      scheme
	charset []rune
	rng     *rand.Rand
	params  engineParams

	cols, rows int
	drops      []*drop // one slot per column, nil = empty
	stuck      *stuckTable

	running   atomic.Bool
	events    chan tcell.Event
	lastSpawn time.Time
	restored  bool
}

func newEngine(screen tcell.Screen, cfg *Config, sc scheme, charset []rune, params engineParams, rng *rand.Rand) *engine {
	return &engine{
		screen:  screen,
		cv:      screen,
		cfg:     cfg,
		sc:      sc,
		charset: charset,
		rng:     rng,
		params:  params,
		stuck:   newStuckTable(cfg),
	}
}

// stop requests a graceful shutdown. Safe to call from a signal handler: it
// performs a single atomic write and nothing else. The loop notices at the
// top of its next iteration, finishing the in-flight frame first.
func (e *engine) stop() {
	e.running.Store(false)
}

// seed allocates the grid and starts initialDrops drops in distinct shuffled
// columns.
func (e *engine) seed() {
	e.cols, e.rows = e.screen.Size()
	e.drops = make([]*drop, max(e.cols, 0))
	if e.cols <= 0 || e.rows <= 0 {
		return
	}
	for _, col := range e.rng.Perm(e.cols)[:min(max(e.params.initialDrops, 0), e.cols)] {
		e.drops[col] = newDrop(col, e.cfg, e.charset, e.rng)
	}
}

// run drives the animation until a quit key or interrupt arrives. The screen
// must already be initialized; run restores it exactly once on every exit
// path from here on.
func (e *engine) run() error {
	e.running.Store(true)
	defer e.restore()

	e.screen.HideCursor()
	e.screen.Clear()
	e.seed()

	// one goroutine feeds tcell events into a channel so the loop can wait
	// with a bounded timeout
	e.events = make(chan tcell.Event, 16)
	go func() {
		for {
			ev := e.screen.PollEvent()
			if ev == nil {
				return
			}
			e.events <- ev
		}
	}()

	e.lastSpawn = time.Now()
	last := time.Now()
	for e.running.Load() {
		e.pollInput()
		if !e.running.Load() {
			break
		}
		now := time.Now()
		e.step(now, now.Sub(last).Seconds())
		last = now
		e.screen.Show()
		time.Sleep(frameDelay)
	}
	return nil
}

// pollInput drains pending events, waiting at most pollTimeout so the
// animation never stalls on input.
func (e *engine) pollInput() {
	for {
		select {
		case ev := <-e.events:
			if e.params.debug {
				log.Printf("have event: \n%s", spew.Sdump(ev))
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
					e.running.Store(false)
					return
				case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
					e.running.Store(false)
					return
				}
			case *tcell.EventResize:
				cols, rows := ev.Size()
				e.resize(cols, rows)
			}
		case <-time.After(pollTimeout):
			return
		}
	}
}

// resize rebuilds the grid at the new geometry. Stuck positions may now be
// out of bounds, so the table is cleared, and a share of columns restarts
// with fresh drops.
func (e *engine) resize(cols, rows int) {
	// tcell posts a resize event right after Init; ignore no-op geometry so
	// the initial seeding survives it
	if cols == e.cols && rows == e.rows {
		return
	}
	e.cols, e.rows = cols, rows
	e.screen.Clear()
	e.stuck.clear()
	e.drops = make([]*drop, max(cols, 0))
	if cols <= 0 || rows <= 0 {
		return
	}
	for col := range e.drops {
		if e.rng.Float64() < resizeReseedProbability {
			e.drops[col] = newDrop(col, e.cfg, e.charset, e.rng)
		}
	}
}

// step runs one frame of simulation and drawing. It is separate from run's
// sleep and clock so tests can drive simulated frames directly.
func (e *engine) step(now time.Time, elapsed float64) {
	if e.cols <= 0 || e.rows <= 0 {
		return
	}

	e.stuck.purge(now)

	if now.Sub(e.lastSpawn) > spawnInterval {
		for col, slot := range e.drops {
			if slot == nil && e.rng.Float64() < e.cfg.NewDropProbability() {
				e.drops[col] = newDrop(col, e.cfg, e.charset, e.rng)
			}
		}
		e.lastSpawn = now
	}

	// stuck glyphs first, so the drops painted below occlude them
	_, _, dim, _, _ := e.sc.colors()
	e.stuck.render(e.cv, tcell.StyleDefault.Foreground(dim))

	for col, d := range e.drops {
		if d == nil {
			continue
		}
		if d.update(elapsed, e.rows) {
			if e.params.stuckEnabled {
				if row, glyph, ok := d.stickCandidate(e.rows); ok {
					e.stuck.insert(col, row, glyph, now)
				}
			}
			e.drops[col] = newDrop(col, e.cfg, e.charset, e.rng)
			continue
		}
		d.render(e.cv, e.rows, e.params.rgbFade, e.sc, e.stuck)
	}
}

// restore returns the terminal to its normal state. It runs at most once no
// matter how many exit paths reach it.
func (e *engine) restore() {
	if e.restored {
		return
	}
	e.restored = true
	e.screen.Fini()
}
