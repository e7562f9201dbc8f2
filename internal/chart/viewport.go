package chart

import (
	"math"

	"github.com/iburimskiy/gauges/internal/geom"
	"github.com/iburimskiy/gauges/internal/platform"
)

// viewport tracks the device-pixel size of a chart's surface.
type viewport struct {
	w, h   int
	center geom.Point
}

func devicePixels(c platform.Container) (int, int) {
	w, h := c.Size()
	r := c.PixelRatio()
	if r <= 0 {
		r = 1
	}
	return int(math.Round(w * r)), int(math.Round(h * r))
}

// fit resizes s to the container when the device-pixel size changed and
// reports whether it did.
func (v *viewport) fit(c platform.Container, s platform.Surface) (bool, error) {
	w, h := devicePixels(c)
	if w == v.w && h == v.h {
		return false, nil
	}
	if sw, sh := s.Size(); sw != w || sh != h {
		if err := s.Resize(w, h); err != nil {
			return false, err
		}
	}
	v.w, v.h = w, h
	v.center = geom.Pt(float64(w)/2, float64(h)/2)
	Logger().Debug("viewport resized", "width", w, "height", h)
	return true, nil
}
