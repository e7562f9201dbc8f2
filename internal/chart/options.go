package chart

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"strings"
	"time"

	"github.com/iburimskiy/gauges/internal/config"
	"github.com/iburimskiy/gauges/internal/easing"
	"github.com/iburimskiy/gauges/internal/platform"
)

// DataItem is one ring's input.
type DataItem struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	BaseValue float64 `json:"baseValue,omitempty"`
}

// VisualRange maps values in [Min, Max] to Color.
type VisualRange struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Color string  `json:"color"`
}

// TextStyle configures one line of centred text. Color "auto" takes the
// ring color.
type TextStyle struct {
	FontFamily string  `json:"fontFamily,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	Color      string  `json:"color,omitempty"`
	FontWeight string  `json:"fontWeight,omitempty"`
	Formatter  string  `json:"formatter,omitempty"`
}

type ActivityText struct {
	Title    TextStyle `json:"title"`
	SubTitle TextStyle `json:"subTitle"`
}

type RingStyle struct {
	LineCap         string  `json:"lineCap,omitempty"`
	ArcGap          float64 `json:"arcGap"`
	InnerRadius     float64 `json:"innerRadius"`
	Width           float64 `json:"width"`
	BottomColor     string  `json:"bottomColor,omitempty"`
	AnimationTimeMs int     `json:"animationTimeMs,omitempty"`
	StartAngleDeg   float64 `json:"startAngleDeg"`
	Easing          string  `json:"easing,omitempty"`
}

// ActivityOptions configures the ring chart.
type ActivityOptions struct {
	Data      []DataItem    `json:"data"`
	VisualMap []VisualRange `json:"visualMap"`
	TextStyle ActivityText  `json:"textStyle"`
	ItemStyle RingStyle     `json:"itemStyle"`
}

// DefaultActivityOptions returns options with every style field filled and
// no data.
func DefaultActivityOptions() ActivityOptions {
	return ActivityOptions{
		TextStyle: ActivityText{
			Title: TextStyle{
				FontFamily: config.TitleFontFamily,
				FontSize:   config.TitleFontSize,
				Color:      config.TitleColor,
				FontWeight: config.TitleFontWeight,
				Formatter:  config.TitleFormatter,
			},
			SubTitle: TextStyle{
				FontFamily: config.TitleFontFamily,
				FontSize:   config.SubTitleFontSize,
				Color:      config.SubTitleColor,
				FontWeight: config.SubTitleFontWeight,
				Formatter:  config.SubTitleFormatter,
			},
		},
		ItemStyle: RingStyle{
			LineCap:         config.RingLineCap,
			ArcGap:          config.RingArcGap,
			InnerRadius:     config.RingInnerRadius,
			Width:           config.RingWidth,
			BottomColor:     config.RingBottomColor,
			AnimationTimeMs: config.RingAnimationTime,
			StartAngleDeg:   config.RingStartAngle,
			Easing:          config.Easing,
		},
	}
}

// LoadActivityOptions decodes JSON over the defaults. Unknown fields are
// rejected.
func LoadActivityOptions(r io.Reader) (ActivityOptions, error) {
	o := DefaultActivityOptions()
	if err := decodeStrict(r, &o); err != nil {
		return ActivityOptions{}, err
	}
	return o, nil
}

type WaterData struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type Wave struct {
	WaterCycle      float64 `json:"waterCycle"`
	WaterHeight     float64 `json:"waterHeight"`
	WaveOffsetRange float64 `json:"waveOffsetRange"`
	Color           string  `json:"color,omitempty"`
}

type Circle struct {
	Radius float64 `json:"radius"`
	Width  float64 `json:"width"`
	Color  string  `json:"color,omitempty"`
}

type WaterStyle struct {
	AnimationTimeMs int    `json:"animationTimeMs,omitempty"`
	Easing          string `json:"easing,omitempty"`
	Wave            Wave   `json:"wave"`
	InnerCircle     Circle `json:"innerCircle"`
	OutterCircle    Circle `json:"outterCircle"`
}

// WaterOptions configures the liquid-fill chart.
type WaterOptions struct {
	Data      WaterData  `json:"data"`
	TextStyle TextStyle  `json:"textStyle"`
	ItemStyle WaterStyle `json:"itemStyle"`
}

func DefaultWaterOptions() WaterOptions {
	return WaterOptions{
		TextStyle: TextStyle{
			FontFamily: config.TitleFontFamily,
			FontSize:   config.WaterFontSize,
			Color:      config.WaterTextColor,
			FontWeight: config.WaterTextFontWeight,
			Formatter:  config.WaterTextFormatter,
		},
		ItemStyle: WaterStyle{
			AnimationTimeMs: config.WaterAnimationTime,
			Easing:          config.Easing,
			Wave: Wave{
				WaterCycle:      config.WaterCycle,
				WaterHeight:     config.WaterWaveHeight,
				WaveOffsetRange: config.WaterOffsetRange,
				Color:           config.WaterWaveColor,
			},
			InnerCircle:  Circle{Radius: config.WaterInnerRadius, Width: config.WaterInnerWidth, Color: config.WaterInnerColor},
			OutterCircle: Circle{Radius: config.WaterOuterRadius, Width: config.WaterOuterWidth, Color: config.WaterOuterColor},
		},
	}
}

// LoadWaterOptions decodes JSON over the water defaults.
func LoadWaterOptions(r io.Reader) (WaterOptions, error) {
	o := DefaultWaterOptions()
	if err := decodeStrict(r, &o); err != nil {
		return WaterOptions{}, err
	}
	return o, nil
}

func decodeStrict(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return wrapConfig("options", err)
	}
	return nil
}

// font is a resolved TextStyle minus the formatter.
type font struct {
	face  platform.Font
	color color.Color
	auto  bool
}

func resolveText(field string, ts TextStyle) (font, error) {
	f := font{face: platform.Font{Family: ts.FontFamily, Size: ts.FontSize}}
	if ts.FontSize <= 0 {
		return f, configErr(field+".fontSize", "must be positive, got %v", ts.FontSize)
	}
	switch strings.ToLower(ts.FontWeight) {
	case "", "normal", "lighter", "100", "200", "300", "400", "500":
	case "bold", "bolder", "600", "700", "800", "900":
		f.face.Bold = true
	default:
		return f, configErr(field+".fontWeight", "unknown weight %q", ts.FontWeight)
	}
	if strings.EqualFold(ts.Color, "auto") {
		f.auto = true
		return f, nil
	}
	c, err := ParseColor(ts.Color)
	if err != nil {
		return f, wrapConfig(field+".color", err)
	}
	f.color = c
	return f, nil
}

func parseCap(s string) (platform.LineCap, error) {
	switch strings.ToLower(s) {
	case "round":
		return platform.CapRound, nil
	case "butt":
		return platform.CapButt, nil
	case "square":
		return platform.CapSquare, nil
	}
	return 0, configErr("itemStyle.lineCap", "unknown cap %q", s)
}

func animationTime(field string, ms int) (time.Duration, error) {
	if ms <= 0 {
		return 0, configErr(field, "must be positive, got %d", ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func checkEasing(name string) error {
	if _, err := easing.Lookup(name); err != nil {
		return wrapConfig("itemStyle.easing", err)
	}
	return nil
}

func positive(field string, v float64) error {
	if v <= 0 {
		return configErr(field, "must be positive, got %v", v)
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if v < 0 {
		return configErr(field, "must not be negative, got %v", v)
	}
	return nil
}

// orDefault returns def for an empty formatter.
func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func fieldf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
