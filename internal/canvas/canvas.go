// Package canvas implements platform.Surface on the gogpu/gg software
// rasterizer. It is also what the hosts present on screen and what the PNG
// snapshots encode.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iburimskiy/gauges/internal/geom"
	"github.com/iburimskiy/gauges/internal/platform"
)

type faceKey struct {
	ttf  string
	size float64
}

// Canvas is a raster drawing surface.
type Canvas struct {
	dc         *gg.Context
	background gg.RGBA

	sources map[string]*text.FontSource
	faces   map[faceKey]text.Face
}

// New creates a transparent canvas of w×h pixels.
func New(w, h int) *Canvas {
	return &Canvas{
		dc:         gg.NewContext(w, h),
		background: gg.Transparent,
		sources:    map[string]*text.FontSource{},
		faces:      map[faceKey]text.Face{},
	}
}

// SetBackground sets the color Clear paints with.
func (c *Canvas) SetBackground(col color.Color) {
	c.background = gg.FromColor(col)
}

// Size implements platform.Surface.
func (c *Canvas) Size() (int, int) {
	return c.dc.Width(), c.dc.Height()
}

// Resize implements platform.Surface.
func (c *Canvas) Resize(w, h int) error {
	return c.dc.Resize(w, h)
}

// Clear implements platform.Surface.
func (c *Canvas) Clear() {
	c.dc.ClearWithColor(c.background)
}

// StrokeArc implements platform.Surface. An empty sweep draws nothing.
func (c *Canvas) StrokeArc(a platform.Arc) error {
	if a.End <= a.Start || a.Width <= 0 || a.Radius <= 0 {
		return nil
	}
	c.dc.ClearPath()
	c.dc.SetLineWidth(a.Width)
	switch a.Cap {
	case platform.CapRound:
		c.dc.SetLineCap(gg.LineCapRound)
	case platform.CapSquare:
		c.dc.SetLineCap(gg.LineCapSquare)
	default:
		c.dc.SetLineCap(gg.LineCapButt)
	}
	c.dc.SetColor(a.Color)
	c.dc.DrawArc(a.Center.X, a.Center.Y, a.Radius, a.Start, a.End)
	return c.dc.Stroke()
}

// FillPolygon implements platform.Surface.
func (c *Canvas) FillPolygon(pts []geom.Point, col color.Color) error {
	if len(pts) < 3 {
		return nil
	}
	c.dc.ClearPath()
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	c.dc.SetColor(col)
	return c.dc.Fill()
}

// ClipCircle implements platform.Surface.
func (c *Canvas) ClipCircle(center geom.Point, r float64) {
	c.dc.ClearPath()
	c.dc.DrawCircle(center.X, center.Y, r)
	c.dc.Clip()
}

// DrawText implements platform.Surface.
func (c *Canvas) DrawText(t platform.Text) error {
	if t.S == "" {
		return nil
	}
	face, err := c.face(t.Font)
	if err != nil {
		return err
	}
	c.dc.SetFont(face)
	c.dc.SetColor(t.Color)
	c.dc.DrawStringAnchored(t.S, t.At.X, t.At.Y, 0.5, 0.5)
	return nil
}

// Save implements platform.Surface.
func (c *Canvas) Save() {
	c.dc.Push()
}

// Restore implements platform.Surface.
func (c *Canvas) Restore() {
	c.dc.Pop()
}

// Pixels exposes the backing RGBA buffer, row major, 4 bytes per pixel.
func (c *Canvas) Pixels() []byte {
	return c.dc.ResizeTarget().Data()
}

// At returns the color of one pixel.
func (c *Canvas) At(x, y int) color.Color {
	return c.dc.ResizeTarget().GetPixel(x, y).Color()
}

// Image returns a copy of the current frame.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the current frame as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// Close releases the fonts and the drawing context.
func (c *Canvas) Close() error {
	for _, s := range c.sources {
		_ = s.Close()
	}
	return c.dc.Close()
}

func (c *Canvas) face(f platform.Font) (text.Face, error) {
	name, data := fontData(f)
	key := faceKey{ttf: name, size: f.Size}
	if face, ok := c.faces[key]; ok {
		return face, nil
	}
	src, ok := c.sources[name]
	if !ok {
		var err error
		src, err = text.NewFontSource(data)
		if err != nil {
			return nil, fmt.Errorf("canvas: load %s: %w", name, err)
		}
		c.sources[name] = src
	}
	face := src.Face(f.Size)
	c.faces[key] = face
	return face, nil
}

// fontData picks one of the bundled Go fonts. Families other than the
// monospace ones fall back to the proportional face.
func fontData(f platform.Font) (string, []byte) {
	mono := f.Family == "monospace" || f.Family == "mono"
	switch {
	case mono && f.Bold:
		return "gomonobold", gomonobold.TTF
	case mono:
		return "gomono", gomono.TTF
	case f.Bold:
		return "gobold", gobold.TTF
	default:
		return "goregular", goregular.TTF
	}
}

var _ platform.Surface = (*Canvas)(nil)
