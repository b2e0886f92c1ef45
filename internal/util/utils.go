package util

import (
	"cmp"
	"os"
	"time"
)

// Clamp restricts a value to be between min and max
func Clamp[T cmp.Ordered](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// AspectRatio returns width/height, or 1 for a minimised (zero-height) framebuffer
func AspectRatio(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// FrameTimer keeps a rolling average of frame durations
type FrameTimer struct {
	samples []float64
	next    int
	filled  bool
}

// NewFrameTimer averages over the last windowSize frames
func NewFrameTimer(windowSize int) *FrameTimer {
	if windowSize < 1 {
		windowSize = 1
	}
	return &FrameTimer{samples: make([]float64, windowSize)}
}

// Add records one frame duration in seconds
func (ft *FrameTimer) Add(seconds float64) {
	ft.samples[ft.next] = seconds
	ft.next = (ft.next + 1) % len(ft.samples)
	if ft.next == 0 {
		ft.filled = true
	}
}

// Average returns the mean frame duration over the recorded window
func (ft *FrameTimer) Average() float64 {
	n := ft.next
	if ft.filled {
		n = len(ft.samples)
	}
	if n == 0 {
		return 0
	}

	sum := 0.0
	for _, s := range ft.samples[:n] {
		sum += s
	}
	return sum / float64(n)
}

// FPS returns frames per second derived from the rolling average
func (ft *FrameTimer) FPS() float64 {
	avg := ft.Average()
	if avg <= 0 {
		return 0
	}
	return 1 / avg
}

// FrameBudget returns the target duration of one frame for a rate cap, or 0 when uncapped
func FrameBudget(frameRate int) time.Duration {
	if frameRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(frameRate)
}
