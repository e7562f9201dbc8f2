package anim

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/gauges/internal/easing"
	"github.com/iburimskiy/gauges/internal/platform/virtual"
)

type recorder struct {
	frames []Frame
}

func (r *recorder) handle(f Frame) error {
	r.frames = append(r.frames, Frame{
		End:      f.End,
		Current:  append(Vector(nil), f.Current...),
		Progress: f.Progress,
	})
	return nil
}

func (r *recorder) finals() int {
	n := 0
	for _, f := range r.frames {
		if f.Done() {
			n++
		}
	}
	return n
}

func TestLinearScalarReachesEndOnce(t *testing.T) {
	h := virtual.New(100, 100)
	rec := &recorder{}
	a, err := Start(h, Scalar(0), Scalar(100), 160*time.Millisecond, "linear", rec.handle)
	require.NoError(t, err)

	require.NoError(t, h.Advance(time.Second))
	require.Len(t, rec.frames, 10)
	assert.InDelta(t, 10, rec.frames[0].Current[0], 1e-9)
	assert.Equal(t, 100.0, rec.frames[9].Current[0])
	assert.Equal(t, 1, rec.finals())
	assert.False(t, a.Running())
	assert.Zero(t, h.PendingFrames())

	a.Stop()
	a.Stop()
	assert.Equal(t, Vector{100}, a.Current())
	assert.Equal(t, 1, rec.finals())
}

func TestEasedVector(t *testing.T) {
	h := virtual.New(100, 100)
	rec := &recorder{}
	_, err := Start(h, Vector{0, 32}, Vector{360, 38}, 320*time.Millisecond, easing.Default, rec.handle)
	require.NoError(t, err)

	require.NoError(t, h.Advance(160*time.Millisecond))
	last := rec.frames[len(rec.frames)-1]
	assert.Equal(t, 0.5, last.Progress)
	assert.InDelta(t, 360*0.9375, last.Current[0], 1e-9)
	assert.InDelta(t, 32+6*0.9375, last.Current[1], 1e-9)
}

func TestNegativeStartInterpolatesFromStart(t *testing.T) {
	h := virtual.New(100, 100)
	rec := &recorder{}
	_, err := Start(h, Scalar(-50), Scalar(50), 160*time.Millisecond, "linear", rec.handle)
	require.NoError(t, err)
	require.NoError(t, h.Advance(80*time.Millisecond))
	assert.InDelta(t, 0, rec.frames[len(rec.frames)-1].Current[0], 1e-9)
}

func TestTinySpanSnapsFromFirstFrame(t *testing.T) {
	h := virtual.New(100, 100)
	rec := &recorder{}
	_, err := Start(h, Vector{10, 5}, Vector{10.0005, 4.9999}, 500*time.Millisecond, "linear", rec.handle)
	require.NoError(t, err)
	require.NoError(t, h.Advance(time.Second))
	require.NotEmpty(t, rec.frames)
	for _, f := range rec.frames {
		assert.Equal(t, Vector{10.0005, 4.9999}, f.Current)
	}
}

func TestStopCancelsPendingFrame(t *testing.T) {
	h := virtual.New(100, 100)
	rec := &recorder{}
	a, err := Start(h, Scalar(0), Scalar(1), time.Second, "linear", rec.handle)
	require.NoError(t, err)
	require.NoError(t, h.Advance(100*time.Millisecond))
	n := len(rec.frames)

	a.Stop()
	require.NoError(t, h.Advance(time.Second))
	assert.Len(t, rec.frames, n)
	assert.Zero(t, rec.finals())
	assert.Zero(t, h.PendingFrames())
}

func TestHandlerErrorPropagates(t *testing.T) {
	h := virtual.New(100, 100)
	boom := errors.New("surface lost")
	_, err := Start(h, Scalar(0), Scalar(1), time.Second, "linear", func(Frame) error { return boom })
	require.NoError(t, err)
	assert.ErrorIs(t, h.Step(), boom)
}

func TestStartValidation(t *testing.T) {
	h := virtual.New(100, 100)

	_, err := Start(h, Vector{0, 1}, Vector{1}, time.Second, "linear", nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = Start(h, Vector{}, Vector{}, time.Second, "linear", nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Start(h, Scalar(0), Scalar(1), 0, "linear", nil)
	assert.ErrorIs(t, err, ErrDuration)

	_, err = Start(h, Scalar(0), Scalar(1), time.Second, "nope", nil)
	assert.ErrorIs(t, err, easing.ErrUnknown)

	assert.Zero(t, h.PendingFrames())
}
