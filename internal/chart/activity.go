// Package chart implements the two radial charts: Activity, a set of
// nested progress rings with hover and carousel emphasis, and Water, a
// liquid-fill gauge with a drifting wave.
//
// Controllers are single-threaded. Every method, and every callback they
// register, must run on the host's loop.
package chart

import (
	"image/color"
	"math"
	"time"

	"github.com/iburimskiy/gauges/internal/anim"
	"github.com/iburimskiy/gauges/internal/config"
	"github.com/iburimskiy/gauges/internal/geom"
	"github.com/iburimskiy/gauges/internal/platform"
)

// Ring is one derived ring record. Rings are rebuilt wholesale on every
// Configure.
type Ring struct {
	Name      string
	Value     float64
	BaseValue float64
	Percent   float64
	Color     color.Color
	EndAngle  float64 // degrees
	Radius    float64
}

// ringStyle is ActivityOptions.ItemStyle and TextStyle resolved.
type ringStyle struct {
	cap         platform.LineCap
	gap         float64
	inner       float64
	width       float64
	hoverWidth  float64
	emphasis    float64
	bottom      color.Color
	duration    time.Duration
	startRadian float64
	easing      string

	title, sub       font
	titleFmt, subFmt string
}

// ringState is the mutable per-ring animation and interaction state,
// indexed like the ring arena.
type ringState struct {
	angle      float64
	percent    float64
	emphasis   float64
	hovered    bool
	emphasized bool
	anim       *anim.Animator
}

// Activity is the ring chart controller.
type Activity struct {
	ctx     platform.Context
	surface platform.Surface
	view    viewport

	opts       ActivityOptions
	configured bool
	style      ringStyle
	rings      []Ring
	state      []ringState

	carousel *carousel

	pointer    geom.Point // last pointer position
	hasPointer bool

	paint    platform.FrameID
	painting bool
	disposed bool
}

// NewActivity binds a chart to its host and surface, sizes the surface to
// the container and starts listening for pointer moves.
func NewActivity(ctx platform.Context, s platform.Surface) (*Activity, error) {
	a := &Activity{ctx: ctx, surface: s}
	a.carousel = newCarousel(ctx, a.animationTime, a.ringCount, a.advance)
	a.carousel.changed = a.invalidate
	if _, err := a.view.fit(ctx, s); err != nil {
		return nil, err
	}
	ctx.SubscribePointer(a)
	return a, nil
}

func (a *Activity) animationTime() time.Duration { return a.style.duration }
func (a *Activity) ringCount() int               { return len(a.rings) }

// deriveRingStyle validates and resolves the style part of o.
func deriveRingStyle(o ActivityOptions) (ringStyle, error) {
	is := o.ItemStyle
	st := ringStyle{
		gap:         is.ArcGap,
		inner:       is.InnerRadius,
		width:       is.Width,
		hoverWidth:  is.Width + is.ArcGap/2,
		emphasis:    math.Floor(is.ArcGap / 2),
		startRadian: geom.AngleToRadian(is.StartAngleDeg),
		easing:      is.Easing,
		titleFmt:    orDefault(o.TextStyle.Title.Formatter, config.TitleFormatter),
		subFmt:      orDefault(o.TextStyle.SubTitle.Formatter, config.SubTitleFormatter),
	}
	var err error
	if st.cap, err = parseCap(is.LineCap); err != nil {
		return st, err
	}
	if err = nonNegative("itemStyle.arcGap", is.ArcGap); err != nil {
		return st, err
	}
	if err = nonNegative("itemStyle.innerRadius", is.InnerRadius); err != nil {
		return st, err
	}
	if err = positive("itemStyle.width", is.Width); err != nil {
		return st, err
	}
	if st.bottom, err = ParseColor(is.BottomColor); err != nil {
		return st, wrapConfig("itemStyle.bottomColor", err)
	}
	if st.duration, err = animationTime("itemStyle.animationTimeMs", is.AnimationTimeMs); err != nil {
		return st, err
	}
	if err = checkEasing(is.Easing); err != nil {
		return st, err
	}
	if st.title, err = resolveText("textStyle.title", o.TextStyle.Title); err != nil {
		return st, err
	}
	if st.sub, err = resolveText("textStyle.subTitle", o.TextStyle.SubTitle); err != nil {
		return st, err
	}
	return st, nil
}

// DeriveRings builds the ring arena from data and visualMap. Radii grow
// with the index by width+gap.
func DeriveRings(o ActivityOptions) ([]Ring, error) {
	if len(o.Data) == 0 {
		return nil, configErr("data", "must be a non-empty list")
	}
	if len(o.VisualMap) == 0 {
		return nil, configErr("visualMap", "must be a non-empty list")
	}
	colors := make([]color.Color, len(o.VisualMap))
	for i, vm := range o.VisualMap {
		c, err := ParseColor(vm.Color)
		if err != nil {
			return nil, wrapConfig(fieldf("visualMap[%d].color", i), err)
		}
		colors[i] = c
	}
	fallback, _ := ParseColor(config.BaseColor)

	is := o.ItemStyle
	rings := make([]Ring, len(o.Data))
	for i, d := range o.Data {
		if math.IsNaN(d.Value) || math.IsInf(d.Value, 0) {
			return nil, configErr(fieldf("data[%d].value", i), "must be finite")
		}
		base := d.BaseValue
		if base == 0 {
			base = config.BaseValue
		}
		r := Ring{
			Name:      d.Name,
			Value:     d.Value,
			BaseValue: base,
			Percent:   geom.Round2(d.Value / base * 100),
			Color:     fallback,
			Radius:    is.InnerRadius + float64(i+1)*(is.Width+is.ArcGap),
		}
		for j, vm := range o.VisualMap {
			if d.Value >= vm.Min && d.Value <= vm.Max {
				r.Color = colors[j]
				break
			}
		}
		r.EndAngle = math.Max(0, geom.PercentToAngle(r.Percent))
		rings[i] = r
	}
	return rings, nil
}

// Configure replaces the chart's data and style. A rejected configuration
// leaves the chart untouched. Every ring then animates from its previous
// sweep (or 0) to the new one.
func (a *Activity) Configure(o ActivityOptions) error {
	if a.disposed {
		return ErrDisposed
	}
	st, err := deriveRingStyle(o)
	if err != nil {
		return err
	}
	rings, err := DeriveRings(o)
	if err != nil {
		return err
	}

	prev := a.state
	next := make([]ringState, len(rings))
	for i := range next {
		ns := &next[i]
		if i < len(prev) {
			ns.angle = prev[i].angle
			ns.hovered = prev[i].hovered
		}
		ns.percent = geom.AngleToPercent(ns.angle)
		ns.emphasized = a.carousel.index == i
		if err := a.animate(ns, rings[i], st, ns.angle); err != nil {
			stopAll(next)
			return err
		}
	}

	stopAll(prev)
	a.opts, a.style, a.rings, a.state = o, st, rings, next
	a.configured = true
	if a.hasPointer {
		a.hitTest(a.pointer)
	}
	Logger().Debug("activity configured", "rings", len(rings), "center", a.view.center)
	return a.drawAll()
}

func stopAll(states []ringState) {
	for i := range states {
		if states[i].anim != nil {
			states[i].anim.Stop()
		}
	}
}

// animate starts a ring's sweep from angle `from` to its target, with the
// emphasis width growing from 0 alongside. st must not move while the
// animation runs.
func (a *Activity) animate(st *ringState, ring Ring, style ringStyle, from float64) error {
	if st.anim != nil {
		st.anim.Stop()
	}
	an, err := anim.Start(a.ctx,
		anim.Vector{from, 0},
		anim.Vector{ring.EndAngle, style.emphasis},
		style.duration, style.easing,
		func(f anim.Frame) error {
			st.angle, st.emphasis = f.Current[0], f.Current[1]
			if f.Done() {
				st.percent = ring.Percent
			} else {
				st.percent = geom.AngleToPercent(st.angle)
			}
			a.invalidate()
			return nil
		})
	if err != nil {
		return wrapConfig("itemStyle", err)
	}
	st.anim = an
	return nil
}

// invalidate coalesces repaints into one per frame.
func (a *Activity) invalidate() {
	if a.painting || a.disposed {
		return
	}
	a.painting = true
	a.paint = a.ctx.RequestFrame(func(time.Time) error {
		a.painting = false
		return a.drawAll()
	})
}

// advance emphasizes ring index alone and replays its sweep from zero.
func (a *Activity) advance(index int) error {
	for i := range a.state {
		a.state[i].emphasized = i == index
	}
	a.state[index].angle = 0
	return a.animate(&a.state[index], a.rings[index], a.style, 0)
}

// PointerMove implements platform.PointerListener. Entering a ring widens
// it, shows its text and pauses the carousel. The repaint is immediate.
func (a *Activity) PointerMove(p geom.Point) error {
	if a.disposed {
		return nil
	}
	a.pointer, a.hasPointer = p, true
	if !a.configured || !a.hitTest(p) {
		return nil
	}
	return a.drawAll()
}

// hitTest updates hover flags for a pointer at p and reports whether any
// changed.
func (a *Activity) hitTest(p geom.Point) bool {
	local := geom.ToLocal(p, a.view.center, a.style.startRadian)
	changed := false
	for i, r := range a.rings {
		st := &a.state[i]
		w := a.style.width
		if st.hovered {
			w = a.style.hoverWidth
		}
		in := geom.PointInArcBand(local, geom.Point{}, r.Radius, w, 0, geom.AngleToRadian(st.angle))
		switch {
		case in && !st.hovered:
			st.hovered = true
			a.carousel.pause()
			changed = true
		case !in && st.hovered:
			st.hovered = false
			changed = true
		}
	}
	return changed
}

func (a *Activity) drawAll() error {
	a.surface.Clear()
	full := 2 * math.Pi
	for i, r := range a.rings {
		st := a.state[i]
		w := a.style.width
		if st.hovered {
			w = a.style.hoverWidth
		}
		if a.carousel.emphasizing(i) {
			w += st.emphasis
		}
		track := platform.Arc{
			Center: a.view.center,
			Radius: r.Radius,
			Start:  a.style.startRadian,
			End:    a.style.startRadian + full,
			Width:  w,
			Cap:    a.style.cap,
			Color:  a.style.bottom,
		}
		if err := a.surface.StrokeArc(track); err != nil {
			return err
		}
		sweep := track
		sweep.End = a.style.startRadian + geom.AngleToRadian(st.angle)
		sweep.Color = r.Color
		if err := a.surface.StrokeArc(sweep); err != nil {
			return err
		}
	}
	for i := range a.rings {
		if a.showsText(i) {
			if err := a.drawText(i); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *Activity) showsText(i int) bool {
	st := a.state[i]
	return st.hovered || (st.emphasized && a.carousel.state == CarouselRunning)
}

func (a *Activity) drawText(i int) error {
	r, st := a.rings[i], a.state[i]
	sub := a.style.sub
	titleColor, subColor := a.style.title.color, sub.color
	if a.style.title.auto {
		titleColor = r.Color
	}
	if sub.auto {
		subColor = r.Color
	}
	c := a.view.center
	off := sub.face.Size * 0.7

	a.surface.Save()
	defer a.surface.Restore()
	err := a.surface.DrawText(platform.Text{
		S:     ringText(a.style.titleFmt, r, st.percent),
		At:    geom.Pt(c.X, c.Y-off),
		Font:  a.style.title.face,
		Color: titleColor,
	})
	if err != nil {
		return err
	}
	return a.surface.DrawText(platform.Text{
		S:     ringText(a.style.subFmt, r, st.percent),
		At:    geom.Pt(c.X, c.Y+off),
		Font:  sub.face,
		Color: subColor,
	})
}

// StartCarousel (re)starts rotating emphasis every interval plus the
// animation time.
func (a *Activity) StartCarousel(interval time.Duration) error {
	if a.disposed {
		return ErrDisposed
	}
	if interval <= 0 {
		return configErr("carousel interval", "must be positive, got %v", interval)
	}
	a.carousel.start(interval)
	return nil
}

// PauseCarousel suspends a running carousel and resumes it after the
// resume delay. It does nothing unless the carousel is running.
func (a *Activity) PauseCarousel() {
	a.carousel.pause()
}

// StopCarousel cancels the carousel timers. The index is kept.
func (a *Activity) StopCarousel() {
	a.carousel.stop()
}

// CarouselState reports the carousel's state.
func (a *Activity) CarouselState() CarouselState {
	return a.carousel.state
}

// CarouselIndex is the last emphasized ring, -1 before the first advance.
func (a *Activity) CarouselIndex() int {
	return a.carousel.index
}

// CarouselErr returns the error that stopped the carousel, if any.
func (a *Activity) CarouselErr() error {
	return a.carousel.err
}

// Rings returns a copy of the ring arena.
func (a *Activity) Rings() []Ring {
	return append([]Ring(nil), a.rings...)
}

// RingView is a ring's observable state.
type RingView struct {
	Angle      float64
	Percent    float64
	Width      float64
	Hovered    bool
	Emphasized bool
	Animating  bool
	TextShown  bool
}

// View reports ring i's current state.
func (a *Activity) View(i int) RingView {
	st := a.state[i]
	w := a.style.width
	if st.hovered {
		w = a.style.hoverWidth
	}
	if a.carousel.emphasizing(i) {
		w += st.emphasis
	}
	return RingView{
		Angle:      st.angle,
		Percent:    st.percent,
		Width:      w,
		Hovered:    st.hovered,
		Emphasized: st.emphasized,
		Animating:  st.anim != nil && st.anim.Running(),
		TextShown:  a.showsText(i),
	}
}

// Center is the chart centre in surface pixels.
func (a *Activity) Center() geom.Point {
	return a.view.center
}

// Options returns the last accepted options.
func (a *Activity) Options() ActivityOptions {
	return a.opts
}

// Resize re-measures the container. When the device-pixel size changed the
// last configuration is applied again from scratch.
func (a *Activity) Resize() error {
	if a.disposed {
		return ErrDisposed
	}
	changed, err := a.view.fit(a.ctx, a.surface)
	if err != nil || !changed || !a.configured {
		return err
	}
	return a.Configure(a.opts)
}

// Dispose cancels every timer, frame and animation and drops the pointer
// subscription. Later calls are no-ops.
func (a *Activity) Dispose() {
	if a.disposed {
		return
	}
	a.carousel.dispose()
	stopAll(a.state)
	if a.painting {
		a.ctx.CancelFrame(a.paint)
		a.painting = false
	}
	a.ctx.UnsubscribePointer(a)
	a.disposed = true
	Logger().Debug("activity disposed")
}
