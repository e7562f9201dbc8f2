// Package virtual is a deterministic host: time only moves when the caller
// advances it, which makes animation and timer behavior reproducible.
package virtual

import (
	"time"

	"github.com/iburimskiy/gauges/internal/geom"
	"github.com/iburimskiy/gauges/internal/platform"
)

// FrameInterval is the default refresh period.
const FrameInterval = 16 * time.Millisecond

// Epoch is where every virtual clock starts.
var Epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// Host implements platform.Context on a virtual clock.
type Host struct {
	*platform.Loop

	clock     time.Time
	nextFrame time.Time
	interval  time.Duration

	width, height float64
	ratio         float64
}

// New creates a host with a container of the given logical size.
func New(width, height float64) *Host {
	h := &Host{
		clock:    Epoch,
		interval: FrameInterval,
		width:    width,
		height:   height,
		ratio:    1,
	}
	h.Loop = platform.NewLoop(func() time.Time { return h.clock })
	h.nextFrame = h.clock.Add(h.interval)
	return h
}

// SetFrameInterval changes the refresh period from the next frame on.
func (h *Host) SetFrameInterval(d time.Duration) {
	h.interval = d
	h.nextFrame = h.clock.Add(d)
}

// Elapsed is the virtual time since Epoch.
func (h *Host) Elapsed() time.Duration {
	return h.clock.Sub(Epoch)
}

// Advance moves the clock forward by d, firing timers at their exact
// deadlines and frames on the refresh grid, in time order.
func (h *Host) Advance(d time.Duration) error {
	target := h.clock.Add(d)
	for {
		deadline, armed := h.NextDeadline()
		if armed && !deadline.After(h.nextFrame) && !deadline.After(target) {
			if deadline.After(h.clock) {
				h.clock = deadline
			}
			h.FireTimers(h.clock)
			continue
		}
		if h.nextFrame.After(target) {
			break
		}
		h.clock = h.nextFrame
		h.nextFrame = h.nextFrame.Add(h.interval)
		if err := h.FireFrame(h.clock); err != nil {
			return err
		}
	}
	h.clock = target
	return nil
}

// Step advances to the next frame and runs it.
func (h *Host) Step() error {
	return h.Advance(h.nextFrame.Sub(h.clock))
}

// Move delivers a pointer move synchronously.
func (h *Host) Move(x, y float64) error {
	return h.Dispatch(geom.Pt(x, y))
}

// SetSize changes the container's logical size.
func (h *Host) SetSize(width, height float64) {
	h.width, h.height = width, height
}

// SetPixelRatio changes the device pixel scale.
func (h *Host) SetPixelRatio(r float64) {
	h.ratio = r
}

// Size implements platform.Container.
func (h *Host) Size() (float64, float64) {
	return h.width, h.height
}

// PixelRatio implements platform.Container.
func (h *Host) PixelRatio() float64 {
	return h.ratio
}

var _ platform.Context = (*Host)(nil)
