package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cli/browser"

	"github.com/iburimskiy/gauges/internal/chart"
	"github.com/iburimskiy/gauges/internal/config"
)

type flags struct {
	chart    string
	options  string
	mode     string
	out      string
	at       time.Duration
	carousel time.Duration
	audio    string
	open     bool
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("gauges", flag.ContinueOnError)
	fs.StringVar(&f.chart, "chart", "activity", "chart kind: activity|water")
	fs.StringVar(&f.options, "options", "", "JSON options file (built-in demo when empty)")
	fs.StringVar(&f.mode, "mode", "window", "output: window|term|png|html")
	fs.StringVar(&f.out, "out", "", "output file for png and html modes")
	fs.DurationVar(&f.at, "at", 2*time.Second, "time at which the png snapshot is taken")
	fs.DurationVar(&f.carousel, "carousel", 0, "carousel interval for the activity chart, 0 disables it")
	fs.StringVar(&f.audio, "audio", "", `audio file feeding the chart, or "pick" for a file dialog`)
	fs.BoolVar(&f.open, "open", false, "open the png or html output when done")
	if err := fs.Parse(args); err != nil {
		return f, err
	}

	switch f.chart {
	case "activity", "water":
	default:
		return f, fmt.Errorf("unknown chart %q", f.chart)
	}
	switch f.mode {
	case "window", "term":
	case "png", "html":
		if f.out == "" {
			f.out = "gauges." + f.mode
		}
	default:
		return f, fmt.Errorf("unknown mode %q", f.mode)
	}
	if f.carousel < 0 {
		return f, errors.New("carousel interval must not be negative")
	}
	return f, nil
}

func run(args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: settings.LogLevel}))
	slog.SetDefault(logger)
	chart.SetLogger(logger)

	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	a, err := newApp(f, settings)
	if err != nil {
		return err
	}

	switch f.mode {
	case "html":
		err = a.writeHTML(f.out)
	case "png":
		err = a.writePNG(f.out, f.at)
	case "term":
		err = a.runTerm()
	default:
		err = a.runWindow()
	}
	if err != nil {
		return err
	}

	if f.open && (f.mode == "png" || f.mode == "html") {
		slog.Info("opening", "path", f.out)
		return browser.OpenFile(f.out)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("gauges failed", "err", err)
		os.Exit(1)
	}
}
