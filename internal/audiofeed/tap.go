package audiofeed

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and keeps the most recent samples in a ring so
// gauges can be fed from what was just played. It also counts the samples
// that went through it.
type Tap struct {
	Source beep.Streamer

	mu     sync.RWMutex
	ring   [][2]float64
	head   int // next write position
	played int
}

func NewTap(src beep.Streamer, ringSize int) *Tap {
	return &Tap{Source: src, ring: make([][2]float64, ringSize)}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n == 0 {
		return n, ok
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.played += n
	if len(t.ring) == 0 {
		return n, ok
	}
	rec := samples[:n]
	if len(rec) > len(t.ring) {
		rec = rec[len(rec)-len(t.ring):]
	}
	k := copy(t.ring[t.head:], rec)
	copy(t.ring, rec[k:])
	t.head = (t.head + len(rec)) % len(t.ring)
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Played is the number of samples streamed so far.
func (t *Tap) Played() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.played
}

func (t *Tap) setPlayed(n int) {
	t.mu.Lock()
	t.played = n
	t.mu.Unlock()
}

// Snapshot returns up to the last n samples, most recent last.
func (t *Tap) Snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = max(min(n, t.played, len(t.ring)), 0)
	out := make([][2]float64, n)
	from := t.head - n
	if from >= 0 {
		copy(out, t.ring[from:t.head])
		return out
	}
	k := copy(out, t.ring[len(t.ring)+from:])
	copy(out[k:], t.ring[:t.head])
	return out
}

// RMS is the per-channel root mean square of samples.
func RMS(samples [][2]float64) (left, right float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	for _, s := range samples {
		left += s[0] * s[0]
		right += s[1] * s[1]
	}
	n := float64(len(samples))
	return math.Sqrt(left / n), math.Sqrt(right / n)
}

// Meter turns raw RMS into a smoothed 0..1 level.
type Meter struct {
	Smoothing float64
	level     float64
}

// Update feeds one RMS reading and returns the new level.
func (m *Meter) Update(rms float64) float64 {
	mag := math.Pow(clamp01(rms), 0.3) // compress quiet passages
	m.level = m.Smoothing*m.level + (1-m.Smoothing)*mag
	return m.level
}

// Level is the last value returned by Update.
func (m *Meter) Level() float64 {
	return m.level
}
