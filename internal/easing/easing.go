// Package easing is the catalog of named progress curves.
//
// Every curve maps normalized progress t ∈ [0, 1] to eased progress with
// f(0) = 0 and f(1) = 1. Elastic and back curves overshoot in between.
//
// Reference: https://easings.net/
package easing

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnknown is returned by Lookup for a name that is not in the catalog.
var ErrUnknown = errors.New("easing: unknown curve")

// Func is an easing curve.
type Func func(t float64) float64

// Default is the curve the charts use when none is configured.
const Default = "quarticOut"

var catalog = map[string]Func{
	"linear": Linear,

	"quadraticIn":    func(t float64) float64 { return t * t },
	"quadraticOut":   func(t float64) float64 { return t * (2 - t) },
	"quadraticInOut": inOut(func(t float64) float64 { return t * t }),

	"cubicIn":    func(t float64) float64 { return t * t * t },
	"cubicOut":   func(t float64) float64 { return 1 - math.Pow(1-t, 3) },
	"cubicInOut": inOut(func(t float64) float64 { return t * t * t }),

	"quarticIn":    func(t float64) float64 { return t * t * t * t },
	"quarticOut":   QuarticOut,
	"quarticInOut": inOut(func(t float64) float64 { return t * t * t * t }),

	"quinticIn":    func(t float64) float64 { return math.Pow(t, 5) },
	"quinticOut":   func(t float64) float64 { return 1 - math.Pow(1-t, 5) },
	"quinticInOut": inOut(func(t float64) float64 { return math.Pow(t, 5) }),

	"sinusoidalIn":    func(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) },
	"sinusoidalOut":   func(t float64) float64 { return math.Sin(t * math.Pi / 2) },
	"sinusoidalInOut": func(t float64) float64 { return 0.5 * (1 - math.Cos(math.Pi*t)) },

	"exponentialIn":    expoIn,
	"exponentialOut":   func(t float64) float64 { return 1 - expoIn(1-t) },
	"exponentialInOut": inOut(expoIn),

	"circularIn":    circIn,
	"circularOut":   func(t float64) float64 { return 1 - circIn(1-t) },
	"circularInOut": inOut(circIn),

	"elasticIn":    elasticIn,
	"elasticOut":   func(t float64) float64 { return 1 - elasticIn(1-t) },
	"elasticInOut": inOut(elasticIn),

	"backIn":    backIn,
	"backOut":   func(t float64) float64 { return 1 - backIn(1-t) },
	"backInOut": inOut(backIn),

	"bounceIn":    func(t float64) float64 { return 1 - BounceOut(1-t) },
	"bounceOut":   BounceOut,
	"bounceInOut": inOut(func(t float64) float64 { return 1 - BounceOut(1-t) }),
}

// Lookup returns the curve registered under name.
func Lookup(name string) (Func, error) {
	f, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return f, nil
}

// Names lists the catalog in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for n := range catalog {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return t
}

// QuarticOut decelerates to a stop: 1 - (1-t)⁴.
func QuarticOut(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u*u
}

// BounceOut settles with decaying bounces.
func BounceOut(t float64) float64 {
	switch {
	case t < 1/2.75:
		return 7.5625 * t * t
	case t < 2/2.75:
		t -= 1.5 / 2.75
		return 7.5625*t*t + 0.75
	case t < 2.5/2.75:
		t -= 2.25 / 2.75
		return 7.5625*t*t + 0.9375
	default:
		t -= 2.625 / 2.75
		return 7.5625*t*t + 0.984375
	}
}

// inOut mirrors an ease-in curve into a symmetric in/out curve.
func inOut(in Func) Func {
	return func(t float64) float64 {
		if t < 0.5 {
			return in(2*t) / 2
		}
		return 1 - in(2-2*t)/2
	}
}

func expoIn(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Pow(1024, t-1)
}

func circIn(t float64) float64 {
	return 1 - math.Sqrt(1-t*t)
}

func elasticIn(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	const a, p = 1.0, 0.4
	s := p * math.Asin(1/a) / (2 * math.Pi)
	t--
	return -(a * math.Pow(2, 10*t) * math.Sin((t-s)*(2*math.Pi)/p))
}

func backIn(t float64) float64 {
	const s = 1.70158
	return t * t * ((s+1)*t - s)
}
