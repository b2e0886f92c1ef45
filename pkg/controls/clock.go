package controls

import (
	"math"

	"flycam/internal/util"
)

// DefaultMaxDelta caps a single frame step so a stalled frame does not teleport the camera
const DefaultMaxDelta float32 = 0.25

// FrameClock turns monotonic timestamps into per-frame deltas.
// The first tick always yields zero.
type FrameClock struct {
	last     float64
	started  bool
	maxDelta float32
}

// NewFrameClock creates a clock that clamps deltas to maxDelta seconds.
// A non-positive maxDelta disables clamping.
func NewFrameClock(maxDelta float32) *FrameClock {
	return &FrameClock{maxDelta: maxDelta}
}

// Tick records now (seconds) and returns the time elapsed since the previous tick
func (fc *FrameClock) Tick(now float64) float32 {
	if !fc.started || math.IsNaN(now) {
		fc.started = !math.IsNaN(now)
		fc.last = now
		return 0
	}

	delta := now - fc.last
	fc.last = now
	if delta <= 0 {
		return 0
	}
	if fc.maxDelta > 0 {
		delta = util.Clamp(delta, 0, float64(fc.maxDelta))
	}
	return float32(delta)
}

// Reset makes the next tick behave like the first one, e.g. after the window regains focus
func (fc *FrameClock) Reset() {
	fc.started = false
	fc.last = 0
}
