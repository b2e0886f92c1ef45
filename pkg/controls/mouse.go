package controls

// MouseTracker converts absolute cursor positions into per-event offsets.
// Screen Y grows downwards, so the returned y offset is flipped: positive means up.
type MouseTracker struct {
	lastX, lastY float64
	seen         bool
}

// Move records a cursor position and returns the offset from the previous one.
// The first position only primes the tracker.
func (mt *MouseTracker) Move(x, y float64) (float32, float32) {
	if !mt.seen {
		mt.lastX, mt.lastY = x, y
		mt.seen = true
		return 0, 0
	}

	dx := x - mt.lastX
	dy := mt.lastY - y
	mt.lastX, mt.lastY = x, y
	return float32(dx), float32(dy)
}

// Reset forgets the last position, e.g. after the cursor is captured again
func (mt *MouseTracker) Reset() {
	mt.seen = false
}
