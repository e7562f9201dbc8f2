// Package desktop hosts a chart in an ebiten window. ebiten's Update drives
// the loop at the configured FPS and Draw presents the chart's canvas.
package desktop

import (
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/gauges/internal/canvas"
	"github.com/iburimskiy/gauges/internal/config"
	"github.com/iburimskiy/gauges/internal/geom"
	"github.com/iburimskiy/gauges/internal/platform"
)

// Host implements platform.Context and ebiten.Game.
type Host struct {
	*platform.Loop

	canvas *canvas.Canvas
	img    *ebiten.Image
	title  string
	fps    int

	width, height int // logical window size
	scale         float64
	userScale     float64
	resized       bool
	onResize      func() error

	cursor  image.Point
	keys    map[ebiten.Key]func() error
	prevKey map[ebiten.Key]bool
}

// New creates a window host presenting c.
func New(c *canvas.Canvas, s config.Settings) *Host {
	return &Host{
		Loop:      platform.NewLoop(time.Now),
		canvas:    c,
		title:     config.WindowTitle,
		fps:       s.FPS,
		width:     s.Width,
		height:    s.Height,
		scale:     s.Scale,
		userScale: s.Scale,
		cursor:    image.Pt(-1, -1),
		keys:      map[ebiten.Key]func() error{},
		prevKey:   map[ebiten.Key]bool{},
	}
}

// OnResize sets the callback run when the window or its scale changed.
func (h *Host) OnResize(fn func() error) {
	h.onResize = fn
}

// OnKey binds fn to a key press.
func (h *Host) OnKey(k ebiten.Key, fn func() error) {
	h.keys[k] = fn
}

// Size implements platform.Container.
func (h *Host) Size() (float64, float64) {
	return float64(h.width), float64(h.height)
}

// PixelRatio implements platform.Container.
func (h *Host) PixelRatio() float64 {
	return h.scale
}

// Run opens the window and blocks until it is closed or Esc/Q is pressed.
func (h *Host) Run() error {
	ebiten.SetWindowSize(h.width, h.height)
	ebiten.SetWindowTitle(h.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(h.fps)
	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (h *Host) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !h.prevKey[k]
		h.prevKey[k] = pressed
		return jp
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	for k, fn := range h.keys {
		if justPressed(k) {
			if err := fn(); err != nil {
				return err
			}
		}
	}

	if h.resized {
		h.resized = false
		slog.Debug("window resized", "width", h.width, "height", h.height, "scale", h.scale)
		if h.onResize != nil {
			if err := h.onResize(); err != nil {
				return err
			}
		}
	}

	if x, y := ebiten.CursorPosition(); image.Pt(x, y) != h.cursor {
		h.cursor = image.Pt(x, y)
		if err := h.Dispatch(geom.Pt(float64(x), float64(y))); err != nil {
			return err
		}
	}
	return h.Tick(time.Now())
}

func (h *Host) Draw(screen *ebiten.Image) {
	w, hh := h.canvas.Size()
	if w == 0 || hh == 0 {
		return
	}
	if h.img == nil || h.img.Bounds().Dx() != w || h.img.Bounds().Dy() != hh {
		if h.img != nil {
			h.img.Deallocate()
		}
		h.img = ebiten.NewImage(w, hh)
	}
	h.img.WritePixels(h.canvas.Pixels())
	screen.DrawImage(h.img, nil)
}

// Layout reports the screen in device pixels so the canvas maps 1:1.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := h.userScale
	if m := ebiten.Monitor(); m != nil {
		scale *= m.DeviceScaleFactor()
	}
	if outsideWidth != h.width || outsideHeight != h.height || scale != h.scale {
		h.width, h.height, h.scale = outsideWidth, outsideHeight, scale
		h.resized = true
	}
	return int(float64(outsideWidth) * scale), int(float64(outsideHeight) * scale)
}

var _ platform.Context = (*Host)(nil)
