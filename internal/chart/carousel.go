package chart

import (
	"fmt"
	"time"

	"github.com/iburimskiy/gauges/internal/config"
	"github.com/iburimskiy/gauges/internal/platform"
)

// CarouselState is the carousel's lifecycle position.
type CarouselState int

const (
	CarouselStopped CarouselState = iota
	CarouselRunning
	CarouselPaused
	CarouselDisposed
)

func (s CarouselState) String() string {
	switch s {
	case CarouselStopped:
		return "stopped"
	case CarouselRunning:
		return "running"
	case CarouselPaused:
		return "paused"
	case CarouselDisposed:
		return "disposed"
	}
	return fmt.Sprintf("CarouselState(%d)", int(s))
}

type carouselEvent int

const (
	evStart carouselEvent = iota
	evAdvance
	evPause
	evResume
	evStop
	evDispose
)

func (e carouselEvent) String() string {
	return [...]string{"start", "advance", "pause", "resume", "stop", "dispose"}[e]
}

// transitions lists every accepted event per state. Anything else is
// ignored.
var transitions = map[CarouselState]map[carouselEvent]CarouselState{
	CarouselStopped: {
		evStart:   CarouselRunning,
		evStop:    CarouselStopped,
		evDispose: CarouselDisposed,
	},
	CarouselRunning: {
		evStart:   CarouselRunning,
		evAdvance: CarouselRunning,
		evPause:   CarouselPaused,
		evStop:    CarouselStopped,
		evDispose: CarouselDisposed,
	},
	CarouselPaused: {
		evStart:   CarouselRunning,
		evResume:  CarouselRunning,
		evStop:    CarouselStopped,
		evDispose: CarouselDisposed,
	},
	CarouselDisposed: {},
}

// carousel rotates emphasis across rings. It holds at most one armed
// timer: the advance timer while running, the resume timer while paused.
type carousel struct {
	timers      platform.Timers
	state       CarouselState
	index       int
	interval    time.Duration
	resumeDelay time.Duration

	// delay is added to interval before each advance.
	delay     func() time.Duration
	count     func() int
	onAdvance func(index int) error
	// changed, if set, runs after every accepted event.
	changed func()

	timer platform.TimerID
	armed bool
	err   error
}

func newCarousel(t platform.Timers, delay func() time.Duration, count func() int, onAdvance func(int) error) *carousel {
	return &carousel{
		timers:      t,
		index:       -1,
		resumeDelay: config.CarouselResumeDelay,
		delay:       delay,
		count:       count,
		onAdvance:   onAdvance,
	}
}

// fire applies ev and reports whether the current state accepted it.
func (c *carousel) fire(ev carouselEvent) bool {
	next, ok := transitions[c.state][ev]
	if !ok {
		return false
	}
	c.disarm()
	from := c.state
	c.state = next
	Logger().Debug("carousel", "event", ev, "from", from, "to", next, "index", c.index)

	switch ev {
	case evStart, evResume:
		c.arm(c.interval+c.delay(), evAdvance)
	case evAdvance:
		if n := c.count(); n > 0 {
			c.index = (c.index + 1) % n
			if err := c.onAdvance(c.index); err != nil {
				c.err = err
				Logger().Error("carousel advance failed", "index", c.index, "err", err)
				c.state = CarouselStopped
				return true
			}
		}
		c.arm(c.interval+c.delay(), evAdvance)
	case evPause:
		c.arm(c.resumeDelay, evResume)
	}
	if c.changed != nil {
		c.changed()
	}
	return true
}

func (c *carousel) arm(d time.Duration, ev carouselEvent) {
	c.timer = c.timers.AfterFunc(d, func() {
		c.armed = false
		c.fire(ev)
	})
	c.armed = true
}

func (c *carousel) disarm() {
	if c.armed {
		c.timers.CancelTimer(c.timer)
		c.armed = false
	}
}

func (c *carousel) start(interval time.Duration) bool {
	c.interval = interval
	return c.fire(evStart)
}

func (c *carousel) pause() bool   { return c.fire(evPause) }
func (c *carousel) stop() bool    { return c.fire(evStop) }
func (c *carousel) dispose() bool { return c.fire(evDispose) }

// emphasizing reports whether ring i gets the emphasis width.
func (c *carousel) emphasizing(i int) bool {
	return c.state == CarouselRunning && c.index == i
}
