// Package term previews a chart in the terminal. Each cell shows two
// vertically stacked canvas samples with the upper half block glyph.
package term

import (
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/gauges/internal/canvas"
	"github.com/iburimskiy/gauges/internal/config"
	"github.com/iburimskiy/gauges/internal/geom"
	"github.com/iburimskiy/gauges/internal/platform"
)

const halfBlock = '▀'

// Host implements platform.Context on a tcell screen.
type Host struct {
	*platform.Loop

	screen     tcell.Screen
	canvas     *canvas.Canvas
	cell       int // canvas pixels per column; a row is two cells tall
	cols, rows int
	interval   time.Duration
	background colorful.Color

	onResize func() error
	runes    map[rune]func() error

	polled chan struct{} // closed when the poll goroutine of the last Run exits
}

// New initializes the terminal.
func New(c *canvas.Canvas, s config.Settings, bg color.Color) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return NewWithScreen(screen, c, s, bg), nil
}

// NewWithScreen wraps an initialized screen.
func NewWithScreen(screen tcell.Screen, c *canvas.Canvas, s config.Settings, bg color.Color) *Host {
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	h := &Host{
		Loop:     platform.NewLoop(time.Now),
		screen:   screen,
		canvas:   c,
		cell:     config.TermCellWidth,
		interval: s.FrameInterval(),
		runes:    map[rune]func() error{},
	}
	h.background, _ = colorful.MakeColor(bg)
	h.cols, h.rows = screen.Size()
	return h
}

// OnResize sets the callback run after the terminal changed size.
func (h *Host) OnResize(fn func() error) {
	h.onResize = fn
}

// OnRune binds fn to a key.
func (h *Host) OnRune(r rune, fn func() error) {
	h.runes[r] = fn
}

// Size implements platform.Container: the terminal in canvas pixels.
func (h *Host) Size() (float64, float64) {
	return float64(h.cols * h.cell), float64(h.rows * 2 * h.cell)
}

// PixelRatio implements platform.Container.
func (h *Host) PixelRatio() float64 {
	return 1
}

// Close restores the terminal.
func (h *Host) Close() {
	h.screen.Fini()
}

// Run polls events and ticks the loop until Esc, q or Ctrl-C.
func (h *Host) Run() error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	polled := make(chan struct{})
	h.polled = polled
	go func() {
		defer close(polled)
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case <-done:
				return
			default:
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			quit, err := h.handle(ev)
			if quit || err != nil {
				return err
			}
		case now := <-ticker.C:
			if err := h.Tick(now); err != nil {
				return err
			}
			h.Draw()
		}
	}
}

func (h *Host) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true, nil
		}
		if ev.Key() == tcell.KeyRune {
			if ev.Rune() == 'q' {
				return true, nil
			}
			if fn, ok := h.runes[ev.Rune()]; ok {
				return false, fn()
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		return false, h.Dispatch(h.cellCenter(x, y))
	case *tcell.EventResize:
		h.screen.Sync()
		h.cols, h.rows = h.screen.Size()
		if h.onResize != nil {
			return false, h.onResize()
		}
	}
	return false, nil
}

// cellCenter maps a terminal cell to the canvas pixel under its middle.
func (h *Host) cellCenter(x, y int) geom.Point {
	return geom.Pt(float64(x*h.cell+h.cell/2), float64(y*2*h.cell+h.cell))
}

// Draw samples the canvas into the screen.
func (h *Host) Draw() {
	w, hh := h.canvas.Size()
	for row := 0; row < h.rows; row++ {
		for col := 0; col < h.cols; col++ {
			x := col*h.cell + h.cell/2
			top := h.sample(x, row*2*h.cell+h.cell/2, w, hh)
			bottom := h.sample(x, row*2*h.cell+h.cell+h.cell/2, w, hh)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			h.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	h.screen.Show()
}

func (h *Host) sample(x, y, w, hh int) tcell.Color {
	c := h.background
	if x < w && y < hh {
		if px, ok := colorful.MakeColor(h.canvas.At(x, y)); ok {
			c = px
		}
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

var _ platform.Context = (*Host)(nil)
