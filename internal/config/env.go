package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Settings are the runtime knobs read from the environment.
type Settings struct {
	Width      int
	Height     int
	Scale      float64
	FPS        int
	LogLevel   slog.Level
	Background string
}

// FrameInterval is the refresh period implied by FPS.
func (s Settings) FrameInterval() time.Duration {
	return time.Second / time.Duration(s.FPS)
}

// Defaults returns the settings used when nothing is set.
func Defaults() Settings {
	return Settings{
		Width:      WindowWidth,
		Height:     WindowHeight,
		Scale:      1,
		FPS:        FPS,
		LogLevel:   slog.LevelInfo,
		Background: "white",
	}
}

// Load reads an optional .env file (a missing one is fine) and then the
// GAUGES_* variables.
func Load(envFiles ...string) (Settings, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("config: load env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds settings from a variable lookup.
func FromEnv(getenv func(string) string) (Settings, error) {
	s := Defaults()
	var err error
	if s.Width, err = intVar(getenv, "GAUGES_WIDTH", s.Width); err != nil {
		return s, err
	}
	if s.Height, err = intVar(getenv, "GAUGES_HEIGHT", s.Height); err != nil {
		return s, err
	}
	if s.FPS, err = intVar(getenv, "GAUGES_FPS", s.FPS); err != nil {
		return s, err
	}
	if v := getenv("GAUGES_SCALE"); v != "" {
		f, perr := strconv.ParseFloat(v, 64)
		if perr != nil || f <= 0 {
			return s, fmt.Errorf("config: GAUGES_SCALE must be a positive number, got %q", v)
		}
		s.Scale = f
	}
	if v := getenv("GAUGES_LOG_LEVEL"); v != "" {
		if err := s.LogLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return s, fmt.Errorf("config: GAUGES_LOG_LEVEL: %w", err)
		}
	}
	if v := getenv("GAUGES_BACKGROUND"); v != "" {
		s.Background = v
	}
	return s, nil
}

func intVar(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("config: %s must be a positive integer, got %q", key, v)
	}
	return n, nil
}
