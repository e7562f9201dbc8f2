// Package anim advances numeric channels from a start vector to an end
// vector along an easing curve, one step per display frame.
package anim

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/iburimskiy/gauges/internal/easing"
	"github.com/iburimskiy/gauges/internal/platform"
)

var (
	// ErrShapeMismatch is returned when start and end differ in length.
	ErrShapeMismatch = errors.New("anim: start and end vectors differ in shape")

	// ErrEmpty is returned for zero-length vectors.
	ErrEmpty = errors.New("anim: empty vector")

	// ErrDuration is returned for a non-positive duration.
	ErrDuration = errors.New("anim: duration must be positive")
)

// snapDistance is the span below which a channel jumps straight to its end
// value instead of creeping toward it.
const snapDistance = 0.001

// Vector is an ordered set of channels. A scalar is a one-element vector.
type Vector []float64

// Scalar wraps v as a one-channel vector.
func Scalar(v float64) Vector {
	return Vector{v}
}

// Frame is what a FrameHandler sees on every step.
type Frame struct {
	End      Vector
	Current  Vector
	Progress float64
}

// Done reports whether this is the final frame.
func (f Frame) Done() bool {
	return f.Progress >= 1
}

// FrameHandler consumes one step. The Current slice is reused between
// frames; copy it to keep it.
type FrameHandler func(f Frame) error

// Animator drives one interpolation. It owns its frame subscription.
type Animator struct {
	sched    platform.Scheduler
	from, to Vector
	duration time.Duration
	ease     easing.Func
	onFrame  FrameHandler

	begin   time.Time
	current Vector
	running bool
	frame   platform.FrameID
}

// Start validates the request and schedules the first frame.
func Start(s platform.Scheduler, from, to Vector, d time.Duration, easingName string, onFrame FrameHandler) (*Animator, error) {
	if len(from) == 0 || len(to) == 0 {
		return nil, ErrEmpty
	}
	if len(from) != len(to) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrShapeMismatch, len(from), len(to))
	}
	if d <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrDuration, d)
	}
	ease, err := easing.Lookup(easingName)
	if err != nil {
		return nil, err
	}

	a := &Animator{
		sched:    s,
		from:     append(Vector(nil), from...),
		to:       append(Vector(nil), to...),
		duration: d,
		ease:     ease,
		onFrame:  onFrame,
		begin:    s.Now(),
		current:  append(Vector(nil), from...),
		running:  true,
	}
	a.frame = s.RequestFrame(a.step)
	return a, nil
}

func (a *Animator) step(now time.Time) error {
	if !a.running {
		return nil
	}

	progress := float64(now.Sub(a.begin)) / float64(a.duration)
	progress = math.Max(0, math.Min(progress, 1))
	eased := a.ease(progress)

	for i := range a.current {
		span := a.to[i] - a.from[i]
		if math.Abs(span) < snapDistance || progress == 1 {
			a.current[i] = a.to[i]
			continue
		}
		a.current[i] = a.from[i] + span*eased
	}

	if progress == 1 {
		a.running = false
	} else {
		a.frame = a.sched.RequestFrame(a.step)
	}

	if a.onFrame == nil {
		return nil
	}
	return a.onFrame(Frame{End: a.to, Current: a.current, Progress: progress})
}

// Stop cancels the interpolation. It is safe to call more than once and
// after natural completion.
func (a *Animator) Stop() {
	if a.running {
		a.sched.CancelFrame(a.frame)
	}
	a.running = false
}

// Running reports whether more frames will be delivered.
func (a *Animator) Running() bool {
	return a.running
}

// Current returns a copy of the last delivered values.
func (a *Animator) Current() Vector {
	return append(Vector(nil), a.current...)
}
