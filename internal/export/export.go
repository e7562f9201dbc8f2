// Package export writes an interactive HTML rendition of a chart
// configuration using go-echarts.
package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/gauges/internal/chart"
)

// Activity renders one gauge per ring.
func Activity(w io.Writer, o chart.ActivityOptions) error {
	rings, err := chart.DeriveRings(o)
	if err != nil {
		return err
	}
	page := components.NewPage()
	for _, r := range rings {
		page.AddCharts(ringGauge(r))
	}
	return page.Render(w)
}

func ringGauge(r chart.Ring) *charts.Gauge {
	g := charts.NewGauge()
	g.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "360px", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    r.Name,
			Subtitle: fmt.Sprintf("%s / %s", formatValue(r.Value), formatValue(r.BaseValue)),
		}),
	)
	g.AddSeries(r.Name,
		[]opts.GaugeData{{Name: r.Name, Value: r.Percent}},
		charts.WithItemStyleOpts(opts.ItemStyle{Color: Hex(r.Color)}),
	)
	return g
}

// Water renders a liquid-fill chart.
func Water(w io.Writer, o chart.WaterOptions) error {
	wave, err := chart.ParseColor(o.ItemStyle.Wave.Color)
	if err != nil {
		return err
	}
	l := charts.NewLiquid()
	l.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "480px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: o.Data.Name}),
	)
	value := o.Data.Value / 100
	if value > 1 {
		value = 1
	}
	l.AddSeries(o.Data.Name,
		[]opts.LiquidData{{Name: o.Data.Name, Value: value}},
		charts.WithLiquidChartOpts(opts.LiquidChart{
			Shape:           "circle",
			IsShowOutline:   opts.Bool(true),
			IsWaveAnimation: opts.Bool(true),
		}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: Hex(wave)}),
	)
	return components.NewPage().AddCharts(l).Render(w)
}

// Hex formats c as #rrggbb, dropping alpha.
func Hex(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Hex()
}

func formatValue(v float64) string {
	return fmt.Sprintf("%g", v)
}
