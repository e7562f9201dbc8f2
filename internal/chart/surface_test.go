package chart

import (
	"errors"
	"image/color"

	"github.com/iburimskiy/gauges/internal/geom"
	"github.com/iburimskiy/gauges/internal/platform"
)

var errPaint = errors.New("paint failed")

type call struct {
	op     string
	arc    platform.Arc
	text   platform.Text
	radius float64
	points int
}

// recorder is a platform.Surface that keeps every call since the last
// Clear.
type recorder struct {
	w, h    int
	calls   []call
	clears  int
	resizes int
	depth   int
	failOn  string
}

func (r *recorder) Size() (int, int) { return r.w, r.h }

func (r *recorder) Resize(w, h int) error {
	r.w, r.h = w, h
	r.resizes++
	return nil
}

func (r *recorder) Clear() {
	r.calls = r.calls[:0]
	r.clears++
}

func (r *recorder) record(c call) error {
	if c.op == r.failOn {
		return errPaint
	}
	r.calls = append(r.calls, c)
	return nil
}

func (r *recorder) StrokeArc(a platform.Arc) error {
	return r.record(call{op: "arc", arc: a})
}

func (r *recorder) FillPolygon(pts []geom.Point, _ color.Color) error {
	return r.record(call{op: "fill", points: len(pts)})
}

func (r *recorder) ClipCircle(_ geom.Point, radius float64) {
	r.calls = append(r.calls, call{op: "clip", radius: radius})
}

func (r *recorder) DrawText(t platform.Text) error {
	return r.record(call{op: "text", text: t})
}

func (r *recorder) Save()    { r.depth++ }
func (r *recorder) Restore() { r.depth-- }

func (r *recorder) ops(op string) []call {
	var out []call
	for _, c := range r.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

func (r *recorder) texts() []string {
	var out []string
	for _, c := range r.ops("text") {
		out = append(out, c.text.S)
	}
	return out
}
