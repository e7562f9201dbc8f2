// Package audiofeed plays an audio file and turns what is being played into
// gauge values: playback progress and per-channel loudness.
package audiofeed

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/gauges/internal/config"
)

// ErrUnsupported is returned for files that are not wav, mp3 or flac.
var ErrUnsupported = errors.New("audiofeed: unsupported file type")

// Track is a decoded file ready to play.
type Track struct {
	Path     string
	Format   beep.Format
	Duration time.Duration

	file     *os.File
	streamer beep.StreamSeekCloser
	tap      *Tap
	ctrl     *beep.Ctrl
	meters   [2]Meter
}

// Open decodes path based on its extension.
func Open(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("audiofeed: decode %s: %w", path, err)
	}

	// streamer -> tap -> ctrl
	t := NewTap(streamer, config.VisualRingSize)
	tr := &Track{
		Path:     path,
		Format:   format,
		Duration: format.SampleRate.D(streamer.Len()),
		file:     f,
		streamer: streamer,
		tap:      t,
		ctrl:     &beep.Ctrl{Streamer: t},
	}
	tr.meters[0].Smoothing = config.SmoothingFactor
	tr.meters[1].Smoothing = config.SmoothingFactor
	return tr, nil
}

// Position is how far playback got.
func (t *Track) Position() time.Duration {
	p := t.Format.SampleRate.D(t.tap.Played())
	if p > t.Duration {
		p = t.Duration
	}
	return p
}

// Progress is Position as a fraction of Duration.
func (t *Track) Progress() float64 {
	if t.Duration <= 0 {
		return 0
	}
	return clamp01(float64(t.Position()) / float64(t.Duration))
}

// Seek jumps to pos in [0, 1].
func (t *Track) Seek(pos float64) error {
	n := int(clamp01(pos) * float64(t.streamer.Len()))
	if n >= t.streamer.Len() {
		n = t.streamer.Len() - 1
	}
	if n < 0 {
		n = 0
	}
	speaker.Lock()
	err := t.streamer.Seek(n)
	speaker.Unlock()
	if err != nil {
		return err
	}
	t.tap.setPlayed(n)
	return nil
}

// Reading is one sample of the feed.
type Reading struct {
	Progress    float64 // 0..1
	Left, Right float64 // smoothed level 0..1
	Elapsed     time.Duration
	Duration    time.Duration
}

// Read measures the most recent audio.
func (t *Track) Read() Reading {
	l, r := RMS(t.tap.Snapshot(2048))
	return Reading{
		Progress: t.Progress(),
		Left:     t.meters[0].Update(l),
		Right:    t.meters[1].Update(r),
		Elapsed:  t.Position(),
		Duration: t.Duration,
	}
}

// Close releases the decoder and the file.
func (t *Track) Close() error {
	err := t.streamer.Close()
	if ferr := t.file.Close(); err == nil {
		err = ferr
	}
	return err
}

// Player owns the speaker.
type Player struct {
	initDone bool
	rate     beep.SampleRate
	current  *Track
	paused   bool
}

// Play stops whatever is playing and starts t. The speaker is
// (re)initialized for t's sample rate.
func (p *Player) Play(t *Track) error {
	bufferSize := t.Format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := speaker.Init(t.Format.SampleRate, bufferSize); err != nil {
			return err
		}
		p.initDone = true
	case p.rate != t.Format.SampleRate:
		speaker.Clear()
		if err := speaker.Init(t.Format.SampleRate, bufferSize); err != nil {
			return err
		}
	default:
		speaker.Clear()
	}
	p.rate = t.Format.SampleRate
	p.current = t
	p.paused = false

	slog.Info("playing", "path", t.Path, "duration", FormatDuration(t.Duration))
	speaker.Play(beep.Seq(t.ctrl, beep.Callback(func() {
		slog.Debug("playback finished", "path", t.Path)
	})))
	return nil
}

// TogglePause pauses or resumes the current track.
func (p *Player) TogglePause() {
	if p.current == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.current.ctrl.Paused = p.paused
	speaker.Unlock()
}

// Current is the track being played, if any.
func (p *Player) Current() *Track {
	return p.current
}

// Close stops playback and closes the current track.
func (p *Player) Close() error {
	if p.initDone {
		speaker.Clear()
	}
	if p.current == nil {
		return nil
	}
	err := p.current.Close()
	p.current = nil
	return err
}

// Pick asks for an audio file with a native dialog. A cancelled dialog
// returns "" and no error.
func Pick() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}
