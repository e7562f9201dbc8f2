package easing

import (
	"errors"
	"testing"

	"github.com/cheekybits/is"
)

func TestCatalogEndpoints(t *testing.T) {
	is := is.New(t)
	for _, name := range Names() {
		f, err := Lookup(name)
		is.NoErr(err)
		is.True(abs(f(0)) < 1e-9)
		is.True(abs(f(1)-1) < 1e-9)
	}
}

func TestMonotoneCurvesStayInRange(t *testing.T) {
	is := is.New(t)
	for _, name := range []string{"linear", "quadraticOut", "cubicInOut", "quarticOut", "sinusoidalIn", "circularOut", "bounceOut"} {
		f, err := Lookup(name)
		is.NoErr(err)
		for i := 0; i <= 100; i++ {
			v := f(float64(i) / 100)
			is.True(v >= -1e-9 && v <= 1+1e-9)
		}
	}
}

func TestQuarticOut(t *testing.T) {
	is := is.New(t)
	is.Equal(QuarticOut(0.5), 0.9375)
}

func TestLookupUnknown(t *testing.T) {
	is := is.New(t)
	f, err := Lookup("wobbly")
	is.Nil(f)
	is.True(errors.Is(err, ErrUnknown))
}

func TestDefaultIsRegistered(t *testing.T) {
	is := is.New(t)
	_, err := Lookup(Default)
	is.NoErr(err)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
