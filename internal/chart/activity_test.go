package chart

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"

	"github.com/iburimskiy/gauges/internal/easing"
	"github.com/iburimskiy/gauges/internal/geom"
	"github.com/iburimskiy/gauges/internal/platform/virtual"
)

func activityOptions(items ...DataItem) ActivityOptions {
	o := DefaultActivityOptions()
	o.Data = items
	o.VisualMap = []VisualRange{{Min: 0, Max: 100, Color: "red"}}
	return o
}

func newActivity(t *testing.T) (*Activity, *virtual.Host, *recorder) {
	t.Helper()
	h := virtual.New(400, 400)
	s := &recorder{}
	a, err := NewActivity(h, s)
	require.NoError(t, err)
	return a, h, s
}

func TestDeriveRings(t *testing.T) {
	rings, err := DeriveRings(activityOptions(DataItem{Name: "A", Value: 50, BaseValue: 100}))
	require.NoError(t, err)
	require.Len(t, rings, 1)

	r := rings[0]
	assert.Equal(t, 50.0, r.Percent)
	assert.Equal(t, 180.0, r.EndAngle)
	assert.Equal(t, colornames.Red, r.Color)
	assert.Equal(t, 50.0+32+12, r.Radius)
}

func TestDeriveRingsDefaultsAndFallbacks(t *testing.T) {
	o := activityOptions(
		DataItem{Name: "A", Value: 1, BaseValue: 3},
		DataItem{Name: "B", Value: 250},
		DataItem{Name: "C", Value: 40},
	)
	o.VisualMap = []VisualRange{
		{Min: 0, Max: 50, Color: "#00ff00"},
		{Min: 30, Max: 60, Color: "blue"},
	}
	rings, err := DeriveRings(o)
	require.NoError(t, err)

	assert.Equal(t, 33.33, rings[0].Percent)
	assert.Equal(t, 100.0, rings[1].BaseValue)
	assert.Equal(t, 250.0, rings[1].Percent)
	assert.Equal(t, 360.0, rings[1].EndAngle)
	assert.Equal(t, colornames.Red, rings[1].Color, "no range matches")

	r, g, b, _ := rings[2].Color.RGBA()
	assert.Equal(t, [3]uint32{0, 0xffff, 0}, [3]uint32{r, g, b}, "first matching range wins")

	for i := 1; i < len(rings); i++ {
		assert.Greater(t, rings[i].Radius, rings[i-1].Radius)
	}
}

func TestConfigureRejectsBadOptions(t *testing.T) {
	for name, mutate := range map[string]func(*ActivityOptions){
		"no data":       func(o *ActivityOptions) { o.Data = nil },
		"no visualMap":  func(o *ActivityOptions) { o.VisualMap = nil },
		"easing":        func(o *ActivityOptions) { o.ItemStyle.Easing = "wobbly" },
		"color":         func(o *ActivityOptions) { o.VisualMap[0].Color = "#12" },
		"cap":           func(o *ActivityOptions) { o.ItemStyle.LineCap = "pointy" },
		"width":         func(o *ActivityOptions) { o.ItemStyle.Width = 0 },
		"duration":      func(o *ActivityOptions) { o.ItemStyle.AnimationTimeMs = -1 },
		"font size":     func(o *ActivityOptions) { o.TextStyle.Title.FontSize = 0 },
		"infinite data": func(o *ActivityOptions) { o.Data[0].Value = math.Inf(1) },
	} {
		t.Run(name, func(t *testing.T) {
			a, h, _ := newActivity(t)
			good := activityOptions(DataItem{Name: "A", Value: 20})
			require.NoError(t, a.Configure(good))

			bad := activityOptions(DataItem{Name: "B", Value: 70})
			mutate(&bad)
			err := a.Configure(bad)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))

			var ce *ConfigError
			assert.True(t, errors.As(err, &ce))
			assert.NotEmpty(t, ce.Field)

			assert.Equal(t, "A", a.Rings()[0].Name, "rejected options must not apply")
			require.NoError(t, h.Advance(2*time.Second))
			assert.Equal(t, 72.0, a.View(0).Angle)
		})
	}
}

func TestUnknownEasingUnwraps(t *testing.T) {
	a, _, _ := newActivity(t)
	o := activityOptions(DataItem{Name: "A", Value: 20})
	o.ItemStyle.Easing = "nope"
	assert.ErrorIs(t, a.Configure(o), easing.ErrUnknown)
}

func TestConfigureAnimatesToTarget(t *testing.T) {
	a, h, s := newActivity(t)
	require.NoError(t, a.Configure(activityOptions(DataItem{Name: "A", Value: 50})))
	assert.Equal(t, 0.0, a.View(0).Angle)
	assert.True(t, a.View(0).Animating)

	require.NoError(t, h.Advance(500*time.Millisecond))
	mid := a.View(0)
	assert.Greater(t, mid.Angle, 0.0)
	assert.Less(t, mid.Angle, 180.0)
	assert.Equal(t, geom.AngleToPercent(mid.Angle), mid.Percent)
	assert.Equal(t, math.Round(mid.Percent), mid.Percent)

	require.NoError(t, h.Advance(600*time.Millisecond))
	end := a.View(0)
	assert.Equal(t, 180.0, end.Angle)
	assert.Equal(t, 50.0, end.Percent)
	assert.False(t, end.Animating)

	require.NoError(t, h.Step())
	assert.Zero(t, h.PendingFrames(), "nothing left to paint")

	arcs := s.ops("arc")
	require.Len(t, arcs, 2)
	assert.Equal(t, 2*math.Pi, arcs[0].arc.End-arcs[0].arc.Start, "track")
	assert.InDelta(t, math.Pi, arcs[1].arc.End-arcs[1].arc.Start, 1e-12, "sweep")
	assert.Equal(t, geom.Pt(200, 200), arcs[1].arc.Center)
	assert.Equal(t, 32.0, arcs[1].arc.Width)
}

func TestReconfigureStartsFromPreviousAngle(t *testing.T) {
	a, h, _ := newActivity(t)
	require.NoError(t, a.Configure(activityOptions(DataItem{Name: "A", Value: 50})))
	require.NoError(t, h.Advance(1100*time.Millisecond))

	require.NoError(t, a.Configure(activityOptions(DataItem{Name: "A", Value: 100})))
	assert.Equal(t, 180.0, a.View(0).Angle)
	require.NoError(t, h.Step())
	assert.Greater(t, a.View(0).Angle, 180.0)

	require.NoError(t, h.Advance(2*time.Second))
	assert.Equal(t, 360.0, a.View(0).Angle)
	assert.Equal(t, 100.0, a.View(0).Percent)
}

func TestHoverWidensRingAndShowsText(t *testing.T) {
	a, h, s := newActivity(t)
	require.NoError(t, a.Configure(activityOptions(DataItem{Name: "A", Value: 50})))
	require.NoError(t, h.Advance(1100*time.Millisecond))

	// ring 0 sweeps the lower half: radius 94 around (200, 200)
	require.NoError(t, h.Move(200, 200+94))
	v := a.View(0)
	assert.True(t, v.Hovered)
	assert.Equal(t, 32.0+6, v.Width)
	assert.True(t, v.TextShown)
	assert.Equal(t, []string{"A", "50%"}, s.texts())

	texts := s.ops("text")
	assert.InDelta(t, 200-32*0.7, texts[0].text.At.Y, 1e-9)
	assert.InDelta(t, 200+32*0.7, texts[1].text.At.Y, 1e-9)
	assert.Equal(t, colornames.Red, texts[1].text.Color, "auto subtitle color")
	assert.True(t, texts[1].text.Font.Bold)
	assert.Zero(t, s.depth)

	// still inside the widened band
	require.NoError(t, h.Move(200, 200+94+18))
	assert.True(t, a.View(0).Hovered)

	// upper half is not swept
	require.NoError(t, h.Move(200, 200-94))
	assert.False(t, a.View(0).Hovered)
	assert.Empty(t, s.texts())

	assert.Equal(t, colornames.Black, texts[0].text.Color)
	o := activityOptions(DataItem{Name: "A", Value: 50})
	o.TextStyle.Title.Color = "auto"
	require.NoError(t, a.Configure(o))
	require.NoError(t, h.Move(200, 200+94))
	texts = s.ops("text")
	require.Len(t, texts, 2)
	assert.Equal(t, colornames.Red, texts[0].text.Color, "auto title color")
}

func TestReconfigureKeepsHover(t *testing.T) {
	a, h, s := newActivity(t)
	require.NoError(t, a.Configure(activityOptions(DataItem{Name: "A", Value: 50})))
	require.NoError(t, h.Advance(1100*time.Millisecond))
	require.NoError(t, h.Move(200, 200+94))
	require.True(t, a.View(0).Hovered)

	for _, v := range []float64{60, 70} {
		require.NoError(t, h.Advance(2*time.Second))
		require.NoError(t, a.Configure(activityOptions(DataItem{Name: "A", Value: v})))
		assert.True(t, a.View(0).Hovered)
		assert.True(t, a.View(0).TextShown)
		assert.Equal(t, 32.0+6, a.View(0).Width)
		assert.Equal(t, []string{"A", fmt.Sprintf("%v%%", v-10)}, s.texts())
	}
	require.NoError(t, h.Advance(1100*time.Millisecond))
	assert.Equal(t, 70.0, a.View(0).Percent)

	// a new layout that no longer covers the resting pointer drops the hover
	o := activityOptions(DataItem{Name: "A", Value: 70})
	o.ItemStyle.InnerRadius = 120
	require.NoError(t, a.Configure(o))
	assert.False(t, a.View(0).Hovered)
	assert.Empty(t, s.texts())
}

func TestHoverFollowsStartAngle(t *testing.T) {
	a, h, _ := newActivity(t)
	o := activityOptions(DataItem{Name: "A", Value: 25})
	o.ItemStyle.StartAngleDeg = -90
	require.NoError(t, a.Configure(o))
	require.NoError(t, h.Advance(1100*time.Millisecond))

	// sweep runs from 12 o'clock to 3 o'clock
	require.NoError(t, h.Move(200+94*math.Cos(-math.Pi/4), 200+94*math.Sin(-math.Pi/4)))
	assert.True(t, a.View(0).Hovered)
	require.NoError(t, h.Move(200, 200+94))
	assert.False(t, a.View(0).Hovered)
}

func TestCarouselScenario(t *testing.T) {
	a, h, _ := newActivity(t)
	require.NoError(t, a.Configure(activityOptions(
		DataItem{Name: "A", Value: 50},
		DataItem{Name: "B", Value: 80},
		DataItem{Name: "C", Value: 30},
	)))
	require.NoError(t, a.StartCarousel(2000*time.Millisecond))
	assert.Equal(t, CarouselRunning, a.CarouselState())
	assert.Equal(t, -1, a.CarouselIndex())

	require.NoError(t, h.Advance(2999*time.Millisecond))
	assert.Equal(t, -1, a.CarouselIndex())

	require.NoError(t, h.Advance(time.Millisecond))
	assert.Equal(t, 0, a.CarouselIndex())
	for i := 0; i < 3; i++ {
		assert.Equal(t, i == 0, a.View(i).Emphasized, "ring %d", i)
	}
	assert.True(t, a.View(0).Animating, "emphasized ring replays its sweep")
	assert.Equal(t, 1, h.PendingTimers())

	require.NoError(t, h.Advance(time.Second))
	assert.Equal(t, 32.0+6, a.View(0).Width, "emphasis width")
	assert.True(t, a.View(0).TextShown)

	// hover ring 0 at t=4s: the 6s advance is cancelled, resume at 9s
	require.NoError(t, h.Move(200, 200+94))
	assert.Equal(t, CarouselPaused, a.CarouselState())
	assert.Equal(t, 1, h.PendingTimers())
	assert.Equal(t, 38.0, a.View(0).Width, "no emphasis while paused")

	require.NoError(t, h.Move(0, 0))
	require.NoError(t, h.Advance(4999*time.Millisecond))
	assert.Equal(t, 0, a.CarouselIndex())
	assert.Equal(t, CarouselPaused, a.CarouselState())

	require.NoError(t, h.Advance(time.Millisecond))
	assert.Equal(t, CarouselRunning, a.CarouselState())
	assert.Equal(t, 0, a.CarouselIndex())

	require.NoError(t, h.Advance(3*time.Second))
	assert.Equal(t, 1, a.CarouselIndex())
	assert.False(t, a.View(0).Emphasized)
	assert.True(t, a.View(1).Emphasized)
}

func TestCarouselWrapsAround(t *testing.T) {
	a, h, _ := newActivity(t)
	require.NoError(t, a.Configure(activityOptions(DataItem{Name: "A", Value: 10}, DataItem{Name: "B", Value: 20})))
	require.NoError(t, a.StartCarousel(time.Second))

	var seen []int
	for i := 0; i < 4; i++ {
		require.NoError(t, h.Advance(2*time.Second))
		seen = append(seen, a.CarouselIndex())
	}
	assert.Equal(t, []int{0, 1, 0, 1}, seen)
	assert.NoError(t, a.CarouselErr())
}

func TestCarouselPauseAndStop(t *testing.T) {
	a, h, _ := newActivity(t)
	require.NoError(t, a.Configure(activityOptions(DataItem{Name: "A", Value: 10})))

	a.PauseCarousel()
	assert.Equal(t, CarouselStopped, a.CarouselState(), "pause needs a running carousel")
	assert.Zero(t, h.PendingTimers())

	assert.ErrorIs(t, a.StartCarousel(0), ErrInvalidConfig)

	require.NoError(t, a.StartCarousel(time.Second))
	require.NoError(t, h.Advance(2*time.Second))
	assert.Equal(t, 0, a.CarouselIndex())

	a.PauseCarousel()
	a.PauseCarousel()
	assert.Equal(t, CarouselPaused, a.CarouselState())
	assert.Equal(t, 1, h.PendingTimers())

	a.StopCarousel()
	assert.Equal(t, CarouselStopped, a.CarouselState())
	assert.Zero(t, h.PendingTimers())
	assert.Equal(t, 0, a.CarouselIndex(), "stop keeps the index")

	require.NoError(t, h.Advance(10*time.Second))
	assert.Equal(t, 0, a.CarouselIndex())
}

func TestResizeReconfiguresOnChange(t *testing.T) {
	a, h, s := newActivity(t)
	require.NoError(t, a.Configure(activityOptions(DataItem{Name: "A", Value: 50})))
	assert.Equal(t, 1, s.resizes)

	require.NoError(t, a.Resize())
	assert.Equal(t, 1, s.resizes, "same size")

	h.SetSize(300, 200)
	h.SetPixelRatio(2)
	require.NoError(t, a.Resize())
	assert.Equal(t, 2, s.resizes)
	assert.Equal(t, [2]int{600, 400}, [2]int{s.w, s.h})
	assert.Equal(t, geom.Pt(300, 200), a.Center())
	assert.True(t, a.View(0).Animating)
}

func TestPaintErrorsPropagate(t *testing.T) {
	a, h, s := newActivity(t)
	require.NoError(t, a.Configure(activityOptions(DataItem{Name: "A", Value: 50})))
	s.failOn = "arc"
	assert.ErrorIs(t, h.Advance(100*time.Millisecond), errPaint)
}

func TestDisposeReleasesEverything(t *testing.T) {
	a, h, _ := newActivity(t)
	assert.Equal(t, 1, h.Listeners())
	require.NoError(t, a.Configure(activityOptions(DataItem{Name: "A", Value: 10}, DataItem{Name: "B", Value: 90})))
	require.NoError(t, a.StartCarousel(time.Second))
	require.NoError(t, h.Advance(2100*time.Millisecond))

	a.Dispose()
	a.Dispose()
	assert.Zero(t, h.PendingFrames())
	assert.Zero(t, h.PendingTimers())
	assert.Zero(t, h.Listeners())
	assert.Equal(t, CarouselDisposed, a.CarouselState())

	assert.ErrorIs(t, a.Configure(activityOptions(DataItem{Name: "A", Value: 10})), ErrDisposed)
	assert.ErrorIs(t, a.Resize(), ErrDisposed)
	assert.ErrorIs(t, a.StartCarousel(time.Second), ErrDisposed)
	require.NoError(t, h.Advance(10*time.Second))
}
