package audiofeed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/gauges/internal/chart"
)

// constant streams n samples of s.
func constant(n int, s [2]float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if n <= 0 {
			return 0, false
		}
		k := len(samples)
		if k > n {
			k = n
		}
		for i := 0; i < k; i++ {
			samples[i] = s
		}
		n -= k
		return k, true
	})
}

func drain(s beep.Streamer) {
	buf := make([][2]float64, 512)
	for {
		if _, ok := s.Stream(buf); !ok {
			return
		}
	}
}

func TestTapSnapshot(t *testing.T) {
	tap := NewTap(constant(10, [2]float64{0.5, -0.5}), 4)
	assert.Empty(t, tap.Snapshot(4))

	drain(tap)
	assert.Equal(t, 10, tap.Played())
	snap := tap.Snapshot(8)
	assert.Len(t, snap, 4, "capped at ring size")
	assert.Equal(t, [2]float64{0.5, -0.5}, snap[3])
	assert.NoError(t, tap.Err())
}

func TestTapSnapshotIsChronological(t *testing.T) {
	i := 0.0
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for k := range samples {
			i++
			samples[k] = [2]float64{i, 0}
		}
		return len(samples), true
	})
	tap := NewTap(src, 8)
	buf := make([][2]float64, 5)
	tap.Stream(buf)
	tap.Stream(buf)

	snap := tap.Snapshot(3)
	assert.Equal(t, [][2]float64{{8, 0}, {9, 0}, {10, 0}}, snap)
}

func TestRMSAndMeter(t *testing.T) {
	l, r := RMS([][2]float64{{0.5, 0}, {-0.5, 0}})
	assert.InDelta(t, 0.5, l, 1e-12)
	assert.Zero(t, r)

	l, r = RMS(nil)
	assert.Zero(t, l+r)

	m := Meter{Smoothing: 0.5}
	first := m.Update(1)
	assert.Equal(t, 0.5, first)
	assert.Equal(t, 0.75, m.Update(1))
	assert.Equal(t, 0.75, m.Level())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00", FormatDuration(0))
	assert.Equal(t, "01:05", FormatDuration(65*time.Second))
	assert.Equal(t, "61:01", FormatDuration(time.Hour+61*time.Second))
}

func writeWav(t *testing.T, samples int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, constant(samples, [2]float64{0.25, 0.5}), format))
	require.NoError(t, f.Close())
	return path
}

func TestOpenWav(t *testing.T) {
	tr, err := Open(writeWav(t, 8000))
	require.NoError(t, err)
	defer tr.Close()

	assert.Equal(t, beep.SampleRate(8000), tr.Format.SampleRate)
	assert.Equal(t, time.Second, tr.Duration)
	assert.Zero(t, tr.Progress())

	drain(tr.ctrl)
	assert.Equal(t, 1.0, tr.Progress())
	assert.Equal(t, time.Second, tr.Position())

	rd := tr.Read()
	assert.Greater(t, rd.Right, rd.Left)
	assert.Equal(t, time.Second, rd.Elapsed)

	require.NoError(t, tr.Seek(0.5))
	assert.InDelta(t, 0.5, tr.Progress(), 0.01)
}

func TestOpenRejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("la la"), 0o644))
	_, err := Open(path)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Open(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}

func TestFeedOptions(t *testing.T) {
	r := Reading{Progress: 0.256, Left: 0.5, Right: 0.75, Elapsed: 90 * time.Second}

	o := ApplyActivity(chart.DefaultActivityOptions(), r)
	require.Len(t, o.Data, 3)
	assert.Equal(t, "Played 01:30", o.Data[0].Name)
	assert.Equal(t, 25.6, o.Data[0].Value)
	assert.Equal(t, 75.0, o.Data[2].Value)

	w := WaterData(r)
	assert.Equal(t, "Level", w.Name)
	assert.Equal(t, 75.0, w.Value)
}
