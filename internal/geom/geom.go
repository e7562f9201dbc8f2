// Package geom holds the angle conversions and the closed-form arc hit test
// used by the radial charts. Angles follow canvas conventions: 0 rad points
// to 3 o'clock and positive angles turn clockwise because y grows downward.
package geom

import (
	"math"

	mt "github.com/rustyoz/Mtransform"
)

// fullCircleTolerance is how close an arc span must come to 2π to be
// treated as a complete ring.
const fullCircleTolerance = 1e-4

// Point is a position in surface pixels.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Len returns the distance of p from the origin.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// AngleToRadian converts degrees to radians.
func AngleToRadian(angle float64) float64 {
	return math.Pi * angle / 180
}

// RadianToAngle converts radians to degrees.
func RadianToAngle(radian float64) float64 {
	return radian * 180 / math.Pi
}

// PercentToAngle maps a percentage onto a ring sweep in degrees.
// Anything at or above 100 is a full turn.
func PercentToAngle(percent float64) float64 {
	if percent >= 100 {
		return 360
	}
	return 18 * percent / 5
}

// AngleToPercent is the inverse of PercentToAngle rounded to a whole
// percent. The forward direction keeps two decimals; this one keeps none.
func AngleToPercent(angle float64) float64 {
	return math.Round(5 * angle / 18)
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NormalizeRadian folds a into [0, 2π).
func NormalizeRadian(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// PointInArcBand reports whether p lies on the band of width lineWidth
// centred on the circle of the given radius around center, restricted to
// the sweep [start, end] unless that sweep covers the whole circle.
func PointInArcBand(p, center Point, radius, lineWidth, start, end float64) bool {
	if lineWidth <= 0 {
		return false
	}
	d := p.Sub(center)
	dist := d.Len()
	half := lineWidth / 2
	if dist < radius-half || dist > radius+half {
		return false
	}
	if end-start >= 2*math.Pi-fullCircleTolerance {
		return true
	}
	a := NormalizeRadian(math.Atan2(d.Y, d.X))
	return a >= start && a <= end
}

// ToLocal maps p into a frame whose origin is center and whose x axis is
// turned by rotation radians, the frame the ring sweeps are drawn in.
func ToLocal(p, center Point, rotation float64) Point {
	cos, sin := math.Cos(rotation), math.Sin(rotation)
	t := mt.Transform{
		{cos, sin, -(cos*center.X + sin*center.Y)},
		{-sin, cos, sin*center.X - cos*center.Y},
		{0, 0, 1},
	}
	x, y := t.Apply(p.X, p.Y)
	return Point{X: x, Y: y}
}
