// Package platform defines the capabilities the charts consume from their
// host: frame scheduling, timers, pointer input, container size and a
// drawing surface. Hosts implement them on top of Loop.
package platform

import (
	"image/color"
	"time"

	"github.com/iburimskiy/gauges/internal/geom"
)

// FrameID identifies a pending frame request.
type FrameID uint64

// TimerID identifies an armed timer.
type TimerID uint64

// FrameFunc runs once on the next frame. An error aborts the rest of the
// frame and is reported by the host.
type FrameFunc func(now time.Time) error

// Scheduler delivers callbacks at display refresh boundaries.
type Scheduler interface {
	Now() time.Time
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

// Timers schedules one-shot callbacks.
type Timers interface {
	AfterFunc(d time.Duration, fn func()) TimerID
	CancelTimer(id TimerID)
}

// PointerListener receives pointer moves in surface pixels. The listener
// value itself is the subscription handle. A returned error is fatal to the
// event and reported by the host.
type PointerListener interface {
	PointerMove(p geom.Point) error
}

// Pointer manages pointer subscriptions.
type Pointer interface {
	SubscribePointer(l PointerListener)
	UnsubscribePointer(l PointerListener)
}

// Container reports the logical size of the chart's host area and the
// device pixel scale.
type Container interface {
	Size() (w, h float64)
	PixelRatio() float64
}

// Context bundles every host capability a chart controller needs.
type Context interface {
	Scheduler
	Timers
	Pointer
	Container
}

// LineCap is the shape of stroke ends.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// Arc describes one stroked circular arc. Angles are radians.
type Arc struct {
	Center geom.Point
	Radius float64
	Start  float64
	End    float64
	Width  float64
	Cap    LineCap
	Color  color.Color
}

// Font selects a face.
type Font struct {
	Family string
	Size   float64
	Bold   bool
}

// Text is a run of text centred on At.
type Text struct {
	S     string
	At    geom.Point
	Font  Font
	Color color.Color
}

// Surface is the drawing capability a chart owns exclusively.
type Surface interface {
	Size() (w, h int)
	Resize(w, h int) error
	Clear()
	StrokeArc(a Arc) error
	FillPolygon(pts []geom.Point, c color.Color) error
	// ClipCircle intersects the clip with a disc until the matching Restore.
	ClipCircle(center geom.Point, r float64)
	DrawText(t Text) error
	Save()
	Restore()
}
