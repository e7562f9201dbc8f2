package platform

import (
	"time"

	"github.com/iburimskiy/gauges/internal/geom"
)

type frameReq struct {
	id FrameID
	fn FrameFunc
}

type timerReq struct {
	id TimerID
	at time.Time
	fn func()
}

// Loop is the single-threaded run queue behind every host. It is not safe
// for concurrent use: hosts call it from their one event goroutine.
//
// Frame requests made while a frame is being dispatched run on the next
// frame. Timers fire in deadline order, ties in arming order.
type Loop struct {
	now    func() time.Time
	nextID uint64

	frames  []frameReq
	running []frameReq
	timers  []timerReq

	listeners []PointerListener
}

// NewLoop creates a loop reading the current time from now.
func NewLoop(now func() time.Time) *Loop {
	if now == nil {
		now = time.Now
	}
	return &Loop{now: now}
}

// Now returns the loop's current time.
func (l *Loop) Now() time.Time {
	return l.now()
}

func (l *Loop) id() uint64 {
	l.nextID++
	return l.nextID
}

// RequestFrame queues fn for the next frame.
func (l *Loop) RequestFrame(fn FrameFunc) FrameID {
	id := FrameID(l.id())
	l.frames = append(l.frames, frameReq{id: id, fn: fn})
	return id
}

// CancelFrame drops a pending frame request. Unknown ids are ignored.
func (l *Loop) CancelFrame(id FrameID) {
	for i := range l.running {
		if l.running[i].id == id {
			l.running[i].fn = nil
			return
		}
	}
	for i, f := range l.frames {
		if f.id == id {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			return
		}
	}
}

// AfterFunc arms a one-shot timer.
func (l *Loop) AfterFunc(d time.Duration, fn func()) TimerID {
	id := TimerID(l.id())
	at := l.now().Add(d)
	// keep timers sorted by deadline, stable for equal deadlines
	i := len(l.timers)
	for i > 0 && l.timers[i-1].at.After(at) {
		i--
	}
	l.timers = append(l.timers, timerReq{})
	copy(l.timers[i+1:], l.timers[i:])
	l.timers[i] = timerReq{id: id, at: at, fn: fn}
	return id
}

// CancelTimer disarms a timer. Unknown or already fired ids are ignored.
func (l *Loop) CancelTimer(id TimerID) {
	for i, t := range l.timers {
		if t.id == id {
			l.timers = append(l.timers[:i], l.timers[i+1:]...)
			return
		}
	}
}

// NextDeadline returns the earliest armed timer deadline.
func (l *Loop) NextDeadline() (time.Time, bool) {
	if len(l.timers) == 0 {
		return time.Time{}, false
	}
	return l.timers[0].at, true
}

// FireTimers runs every timer due at or before now, including timers armed
// by those callbacks that are already due.
func (l *Loop) FireTimers(now time.Time) {
	for len(l.timers) > 0 && !l.timers[0].at.After(now) {
		t := l.timers[0]
		l.timers = l.timers[1:]
		t.fn()
	}
}

// FireFrame runs the frame callbacks queued before this call. On error the
// callbacks that did not run are put back in front of the queue.
func (l *Loop) FireFrame(now time.Time) error {
	l.running, l.frames = l.frames, nil
	defer func() { l.running = nil }()

	for i := range l.running {
		fn := l.running[i].fn
		if fn == nil {
			continue
		}
		l.running[i].fn = nil
		if err := fn(now); err != nil {
			var rest []frameReq
			for _, f := range l.running[i+1:] {
				if f.fn != nil {
					rest = append(rest, f)
				}
			}
			l.frames = append(rest, l.frames...)
			return err
		}
	}
	return nil
}

// Tick fires due timers and then one frame.
func (l *Loop) Tick(now time.Time) error {
	l.FireTimers(now)
	return l.FireFrame(now)
}

// SubscribePointer registers l for pointer moves. Subscribing twice is a
// no-op.
func (l *Loop) SubscribePointer(pl PointerListener) {
	for _, x := range l.listeners {
		if x == pl {
			return
		}
	}
	l.listeners = append(l.listeners, pl)
}

// UnsubscribePointer removes the exact handle passed to SubscribePointer.
func (l *Loop) UnsubscribePointer(pl PointerListener) {
	for i, x := range l.listeners {
		if x == pl {
			l.listeners = append(l.listeners[:i], l.listeners[i+1:]...)
			return
		}
	}
}

// Dispatch delivers a pointer move to every listener synchronously and
// stops at the first error.
func (l *Loop) Dispatch(p geom.Point) error {
	ls := append([]PointerListener(nil), l.listeners...)
	for _, x := range ls {
		if err := x.PointerMove(p); err != nil {
			return err
		}
	}
	return nil
}

// PendingFrames is the number of queued frame requests.
func (l *Loop) PendingFrames() int {
	return len(l.frames)
}

// PendingTimers is the number of armed timers.
func (l *Loop) PendingTimers() int {
	return len(l.timers)
}

// Listeners is the number of pointer subscriptions.
func (l *Loop) Listeners() int {
	return len(l.listeners)
}
