package main

import (
	"math"
	"sync/atomic"
)

// Tunable limits. Out-of-range input is clamped on write, never rejected.
const (
	trailLimitMin = 4
	trailLimitMax = 40
	frameRateMin  = 1.0
	frameRateMax  = 15.0
)

// atomicFloat stores a float64 as its bit pattern so the animation loop can
// read tunables without taking a lock.
type atomicFloat struct {
	bits atomic.Uint64
}

func (f *atomicFloat) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

func (f *atomicFloat) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Config holds the runtime tunables shared between the setup phase and the
// animation loop. It is constructed once in main and passed by pointer into
// the engine and every drop; there is no package-level instance. Writes come
// from the setup phase, reads from the frame loop, and neither side blocks
// the other.
type Config struct {
	frameRate   atomicFloat
	minTrail    atomic.Int64
	maxTrail    atomic.Int64
	glitchProb  atomicFloat
	flickerProb atomicFloat
	newDropProb atomicFloat
	stuckProb   atomicFloat
	stuckCap    atomic.Int64
}

// NewConfig returns a Config with the stock defaults.
func NewConfig() *Config {
	c := &Config{}
	c.SetFrameRate(12)
	c.minTrail.Store(8)
	c.maxTrail.Store(25)
	c.SetGlitchProbability(0.003)
	c.SetFlickerProbability(0.01)
	c.SetNewDropProbability(0.15)
	c.SetStuckProbability(0.02)
	c.SetStuckCapacity(50)
	return c
}

// SetFrameRate sets the logical frame rate, clamped to 1-15. It scales the
// simulated fall velocity, not the wall-clock redraw cadence.
func (c *Config) SetFrameRate(fps float64) {
	c.frameRate.Store(min(max(fps, frameRateMin), frameRateMax))
}

func (c *Config) FrameRate() float64 {
	return c.frameRate.Load()
}

// SetMinTrail clamps against both the hard limits and the current max trail,
// so min <= max holds after the call regardless of call order.
func (c *Config) SetMinTrail(n int) {
	upper := min(trailLimitMax, int(c.maxTrail.Load()))
	c.minTrail.Store(int64(min(max(n, trailLimitMin), upper)))
}

func (c *Config) MinTrail() int {
	return int(c.minTrail.Load())
}

// SetMaxTrail clamps against both the hard limits and the current min trail.
func (c *Config) SetMaxTrail(n int) {
	lower := max(trailLimitMin, int(c.minTrail.Load()))
	c.maxTrail.Store(int64(min(max(n, lower), trailLimitMax)))
}

func (c *Config) MaxTrail() int {
	return int(c.maxTrail.Load())
}

func (c *Config) SetGlitchProbability(p float64) {
	c.glitchProb.Store(clampProbability(p))
}

func (c *Config) GlitchProbability() float64 {
	return c.glitchProb.Load()
}

func (c *Config) SetFlickerProbability(p float64) {
	c.flickerProb.Store(clampProbability(p))
}

func (c *Config) FlickerProbability() float64 {
	return c.flickerProb.Load()
}

func (c *Config) SetNewDropProbability(p float64) {
	c.newDropProb.Store(clampProbability(p))
}

func (c *Config) NewDropProbability() float64 {
	return c.newDropProb.Load()
}

func (c *Config) SetStuckProbability(p float64) {
	c.stuckProb.Store(clampProbability(p))
}

func (c *Config) StuckProbability() float64 {
	return c.stuckProb.Load()
}

// SetStuckCapacity bounds the stuck-character table; 0 means unbounded.
func (c *Config) SetStuckCapacity(n int) {
	c.stuckCap.Store(int64(max(n, 0)))
}

func (c *Config) StuckCapacity() int {
	return int(c.stuckCap.Load())
}

func clampProbability(p float64) float64 {
	return min(max(p, 0), 1)
}
