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

type circleStyle struct {
	radius, width float64
	color         color.Color
}

type waterStyle struct {
	duration time.Duration
	easing   string

	cycle, height, offsetRange float64
	wave                       color.Color
	inner, outer               circleStyle

	text   font
	format string
}

func resolveCircle(field string, c Circle) (circleStyle, error) {
	cs := circleStyle{radius: c.Radius, width: c.Width}
	if err := positive(field+".radius", c.Radius); err != nil {
		return cs, err
	}
	if err := nonNegative(field+".width", c.Width); err != nil {
		return cs, err
	}
	col, err := ParseColor(c.Color)
	if err != nil {
		return cs, wrapConfig(field+".color", err)
	}
	cs.color = col
	return cs, nil
}

func deriveWaterStyle(o WaterOptions) (waterStyle, error) {
	is := o.ItemStyle
	st := waterStyle{
		easing:      is.Easing,
		cycle:       is.Wave.WaterCycle,
		height:      is.Wave.WaterHeight,
		offsetRange: is.Wave.WaveOffsetRange,
		format:      orDefault(o.TextStyle.Formatter, config.WaterTextFormatter),
	}
	var err error
	if math.IsNaN(o.Data.Value) || math.IsInf(o.Data.Value, 0) {
		return st, configErr("data.value", "must be finite")
	}
	if st.duration, err = animationTime("itemStyle.animationTimeMs", is.AnimationTimeMs); err != nil {
		return st, err
	}
	if err = checkEasing(is.Easing); err != nil {
		return st, err
	}
	if err = positive("itemStyle.wave.waterCycle", st.cycle); err != nil {
		return st, err
	}
	if err = nonNegative("itemStyle.wave.waterHeight", st.height); err != nil {
		return st, err
	}
	if st.wave, err = ParseColor(is.Wave.Color); err != nil {
		return st, wrapConfig("itemStyle.wave.color", err)
	}
	if st.inner, err = resolveCircle("itemStyle.innerCircle", is.InnerCircle); err != nil {
		return st, err
	}
	if st.outer, err = resolveCircle("itemStyle.outterCircle", is.OutterCircle); err != nil {
		return st, err
	}
	if st.text, err = resolveText("textStyle", o.TextStyle); err != nil {
		return st, err
	}
	if st.text.auto {
		st.text.color = st.wave
	}
	return st, nil
}

// Water is the liquid-fill chart controller. Once configured it repaints
// on every frame until reconfigured or disposed.
type Water struct {
	ctx     platform.Context
	surface platform.Surface
	view    viewport

	opts       WaterOptions
	configured bool
	style      waterStyle

	bottom   float64 // y of the inner circle's lowest point
	startX   float64
	fill     float64 // target fill height in pixels
	value    float64 // animated value
	current  float64 // displayed value
	surfaceY float64 // animated water line
	offsetX  float64 // wave phase

	animator *anim.Animator
	frame    platform.FrameID
	looping  bool
	disposed bool
}

// NewWater binds a water chart to its host and sizes the surface.
func NewWater(ctx platform.Context, s platform.Surface) (*Water, error) {
	w := &Water{ctx: ctx, surface: s}
	if _, err := w.view.fit(ctx, s); err != nil {
		return nil, err
	}
	return w, nil
}

// FillHeight returns the fill in pixels for value on a circle of the given
// radius. Values are clamped to [0, 100].
func FillHeight(radius, value float64) float64 {
	return radius * 2 * math.Min(math.Max(value, 0), 100) / 100
}

// Configure tears down any running animation, then fills from empty to
// o.Data.Value and starts the render loop.
func (w *Water) Configure(o WaterOptions) error {
	if w.disposed {
		return ErrDisposed
	}
	st, err := deriveWaterStyle(o)
	if err != nil {
		return err
	}
	w.teardown()

	w.opts, w.style, w.configured = o, st, true
	c := w.view.center
	w.bottom = c.Y + st.inner.radius
	w.startX = c.X - st.inner.radius
	w.fill = FillHeight(st.inner.radius, o.Data.Value)
	w.value, w.current = 0, 0
	w.surfaceY = w.bottom
	w.offsetX = 0

	if err := w.startFill(0, w.bottom); err != nil {
		return err
	}
	Logger().Debug("water configured", "value", o.Data.Value, "fill", w.fill)
	w.looping = true
	return w.render(w.ctx.Now())
}

// SetValue moves a configured chart to new data without starting over: the
// value and the water line animate from where they are, and the render
// loop and wave phase carry on.
func (w *Water) SetValue(d WaterData) error {
	if w.disposed {
		return ErrDisposed
	}
	if !w.configured {
		return ErrNotConfigured
	}
	if math.IsNaN(d.Value) || math.IsInf(d.Value, 0) {
		return configErr("data.value", "must be finite")
	}
	if w.animator != nil {
		w.animator.Stop()
		w.animator = nil
	}
	w.opts.Data = d
	w.fill = FillHeight(w.style.inner.radius, d.Value)
	Logger().Debug("water retargeted", "from", w.value, "value", d.Value)
	return w.startFill(w.value, w.surfaceY)
}

func (w *Water) startFill(value, surfaceY float64) error {
	an, err := anim.Start(w.ctx,
		anim.Vector{value, surfaceY},
		anim.Vector{w.opts.Data.Value, w.bottom - w.fill},
		w.style.duration, w.style.easing,
		func(f anim.Frame) error {
			w.value = f.Current[0]
			if f.Current[0] == f.End[0] {
				w.current = f.Current[0]
			} else {
				w.current = math.Floor(f.Current[0])
			}
			w.surfaceY = f.Current[1]
			return nil
		})
	if err != nil {
		return wrapConfig("itemStyle", err)
	}
	w.animator = an
	return nil
}

func (w *Water) teardown() {
	if w.looping {
		w.ctx.CancelFrame(w.frame)
		w.looping = false
	}
	if w.animator != nil {
		w.animator.Stop()
		w.animator = nil
	}
}

func (w *Water) render(time.Time) error {
	if !w.looping {
		return nil
	}
	if err := w.drawFrame(); err != nil {
		w.looping = false
		return err
	}
	w.frame = w.ctx.RequestFrame(w.render)
	return nil
}

func (w *Water) drawFrame() error {
	w.surface.Clear()
	if err := w.drawCircles(); err != nil {
		return err
	}
	if err := w.drawWave(); err != nil {
		return err
	}
	return w.drawText()
}

func (w *Water) drawCircles() error {
	for _, cs := range []circleStyle{w.style.inner, w.style.outer} {
		err := w.surface.StrokeArc(platform.Arc{
			Center: w.view.center,
			Radius: cs.radius,
			Start:  0,
			End:    2 * math.Pi,
			Width:  cs.width,
			Cap:    platform.CapButt,
			Color:  cs.color,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// WavePoints samples the water line one pixel apart across the inner
// circle's diameter for the given phase.
func (w *Water) WavePoints(offsetX float64) []geom.Point {
	n := int(w.style.inner.radius * 2)
	pts := make([]geom.Point, 0, n)
	for i := 0; i < n; i++ {
		x := 2 * math.Pi * float64(i) / w.style.cycle
		y := -math.Sin(x+offsetX) * w.style.height
		pts = append(pts, geom.Pt(w.startX+float64(i), y+w.surfaceY))
	}
	return pts
}

func (w *Water) drawWave() error {
	pts := w.WavePoints(w.offsetX)
	w.offsetX -= w.style.offsetRange
	if len(pts) == 0 {
		return nil
	}
	last := pts[len(pts)-1]
	floor := last.Y + w.style.inner.radius*2
	pts = append(pts, geom.Pt(last.X, floor), geom.Pt(w.startX, floor))

	w.surface.Save()
	defer w.surface.Restore()
	w.surface.ClipCircle(w.view.center, w.style.inner.radius-w.style.inner.width/2)
	return w.surface.FillPolygon(pts, w.style.wave)
}

func (w *Water) drawText() error {
	w.surface.Save()
	defer w.surface.Restore()
	return w.surface.DrawText(platform.Text{
		S:     waterText(w.style.format, w.opts.Data.Name, w.current),
		At:    w.view.center,
		Font:  w.style.text.face,
		Color: w.style.text.color,
	})
}

// CurrentValue is the value shown in the text: floored while filling,
// exact once settled.
func (w *Water) CurrentValue() float64 {
	return w.current
}

// FillLevel is the current water height above the inner circle's bottom.
func (w *Water) FillLevel() float64 {
	return w.bottom - w.surfaceY
}

// Phase is the wave offset the next frame will use.
func (w *Water) Phase() float64 {
	return w.offsetX
}

// Filling reports whether the fill animation is still running.
func (w *Water) Filling() bool {
	return w.animator != nil && w.animator.Running()
}

// Options returns the last accepted options.
func (w *Water) Options() WaterOptions {
	return w.opts
}

// Resize re-measures the container and reconfigures on change.
func (w *Water) Resize() error {
	if w.disposed {
		return ErrDisposed
	}
	changed, err := w.view.fit(w.ctx, w.surface)
	if err != nil || !changed || !w.configured {
		return err
	}
	return w.Configure(w.opts)
}

// Dispose stops the render loop and the fill animation. Later calls are
// no-ops.
func (w *Water) Dispose() {
	if w.disposed {
		return
	}
	w.teardown()
	w.disposed = true
	Logger().Debug("water disposed")
}
