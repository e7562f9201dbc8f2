package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/gauges/internal/audiofeed"
	"github.com/iburimskiy/gauges/internal/canvas"
	"github.com/iburimskiy/gauges/internal/chart"
	"github.com/iburimskiy/gauges/internal/config"
	"github.com/iburimskiy/gauges/internal/export"
	"github.com/iburimskiy/gauges/internal/platform"
	"github.com/iburimskiy/gauges/internal/platform/desktop"
	"github.com/iburimskiy/gauges/internal/platform/term"
	"github.com/iburimskiy/gauges/internal/platform/virtual"
)

// gauge is what the hosts need from either chart.
type gauge interface {
	Resize() error
	Dispose()
}

type feedFunc func(audiofeed.Reading) error

type app struct {
	f        flags
	settings config.Settings
	bg       color.Color

	activity chart.ActivityOptions
	water    chart.WaterOptions

	player audiofeed.Player
	track  *audiofeed.Track
}

func newApp(f flags, s config.Settings) (*app, error) {
	bg, err := chart.ParseColor(s.Background)
	if err != nil {
		return nil, fmt.Errorf("GAUGES_BACKGROUND: %w", err)
	}
	a := &app{f: f, settings: s, bg: bg, activity: demoActivity(), water: demoWater()}
	if f.options == "" {
		return a, nil
	}

	file, err := os.Open(f.options)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if f.chart == "water" {
		a.water, err = chart.LoadWaterOptions(file)
	} else {
		a.activity, err = chart.LoadActivityOptions(file)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.options, err)
	}
	return a, nil
}

func demoActivity() chart.ActivityOptions {
	o := chart.DefaultActivityOptions()
	o.Data = []chart.DataItem{
		{Name: "Move", Value: 320, BaseValue: 400},
		{Name: "Exercise", Value: 21, BaseValue: 30},
		{Name: "Stand", Value: 9, BaseValue: 12},
	}
	o.VisualMap = []chart.VisualRange{
		{Min: 0, Max: 12, Color: "#00d8fe"},
		{Min: 13, Max: 30, Color: "#a4ff00"},
		{Min: 31, Max: 1000, Color: "#ff2d55"},
	}
	return o
}

func demoWater() chart.WaterOptions {
	o := chart.DefaultWaterOptions()
	o.Data = chart.WaterData{Name: "Level", Value: 64}
	return o
}

// mount builds the selected chart on a host and applies the options.
func (a *app) mount(ctx platform.Context, s platform.Surface) (gauge, feedFunc, error) {
	if a.f.chart == "water" {
		w, err := chart.NewWater(ctx, s)
		if err != nil {
			return nil, nil, err
		}
		if err := w.Configure(a.water); err != nil {
			w.Dispose()
			return nil, nil, err
		}
		return w, func(r audiofeed.Reading) error {
			return w.SetValue(audiofeed.WaterData(r))
		}, nil
	}

	act, err := chart.NewActivity(ctx, s)
	if err != nil {
		return nil, nil, err
	}
	if err := act.Configure(a.activity); err != nil {
		act.Dispose()
		return nil, nil, err
	}
	if a.f.carousel > 0 {
		if err := act.StartCarousel(a.f.carousel); err != nil {
			act.Dispose()
			return nil, nil, err
		}
	}
	return act, func(r audiofeed.Reading) error {
		return act.Configure(audiofeed.ApplyActivity(a.activity, r))
	}, nil
}

func (a *app) writeHTML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if a.f.chart == "water" {
		err = export.Water(f, a.water)
	} else {
		err = export.Activity(f, a.activity)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		slog.Info("wrote html", "path", path)
	}
	return err
}

// writePNG runs the chart on a virtual clock up to `at` and saves that
// frame.
func (a *app) writePNG(path string, at time.Duration) error {
	host := virtual.New(float64(a.settings.Width), float64(a.settings.Height))
	host.SetPixelRatio(a.settings.Scale)
	host.SetFrameInterval(a.settings.FrameInterval())

	cv := canvas.New(1, 1)
	defer cv.Close()
	cv.SetBackground(a.bg)

	g, _, err := a.mount(host, cv)
	if err != nil {
		return err
	}
	defer g.Dispose()
	if err := host.Advance(at); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := cv.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	slog.Info("wrote png", "path", path, "at", at)
	return f.Close()
}

// startFeed plays the -audio file and re-configures the chart with fresh
// readings every feed interval.
func (a *app) startFeed(timers platform.Timers, feed feedFunc) error {
	path := a.f.audio
	if path == "" {
		return nil
	}
	if path == "pick" {
		var err error
		if path, err = audiofeed.Pick(); err != nil || path == "" {
			return err
		}
	}
	track, err := audiofeed.Open(path)
	if err != nil {
		return err
	}
	if err := a.player.Play(track); err != nil {
		track.Close()
		return err
	}
	a.track = track

	var tick func()
	tick = func() {
		if err := feed(track.Read()); err != nil {
			slog.Warn("feed reading rejected", "err", err)
		}
		timers.AfterFunc(config.FeedInterval, tick)
	}
	timers.AfterFunc(config.FeedInterval, tick)
	return nil
}

func (a *app) seek(delta float64) error {
	if a.track == nil {
		return nil
	}
	return a.track.Seek(a.track.Progress() + delta)
}

func (a *app) togglePause() error {
	a.player.TogglePause()
	return nil
}

func (a *app) runWindow() error {
	cv := canvas.New(1, 1)
	defer cv.Close()
	cv.SetBackground(a.bg)

	host := desktop.New(cv, a.settings)
	g, feed, err := a.mount(host, cv)
	if err != nil {
		return err
	}
	defer g.Dispose()
	host.OnResize(g.Resize)

	if err := a.startFeed(host, feed); err != nil {
		return err
	}
	defer a.player.Close()
	host.OnKey(ebiten.KeySpace, a.togglePause)
	host.OnKey(ebiten.KeyRight, func() error { return a.seek(0.05) })
	host.OnKey(ebiten.KeyLeft, func() error { return a.seek(-0.05) })
	return host.Run()
}

func (a *app) runTerm() error {
	cv := canvas.New(1, 1)
	defer cv.Close()
	cv.SetBackground(a.bg)

	host, err := term.New(cv, a.settings, a.bg)
	if err != nil {
		return err
	}
	defer host.Close()
	g, feed, err := a.mount(host, cv)
	if err != nil {
		return err
	}
	defer g.Dispose()
	host.OnResize(g.Resize)

	if err := a.startFeed(host, feed); err != nil {
		return err
	}
	defer a.player.Close()
	host.OnRune(' ', a.togglePause)
	host.OnRune('l', func() error { return a.seek(0.05) })
	host.OnRune('h', func() error { return a.seek(-0.05) })
	return host.Run()
}
