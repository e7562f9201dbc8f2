package audiofeed

import (
	"math"

	"github.com/iburimskiy/gauges/internal/chart"
)

// ActivityData lays a reading out as three rings: progress, left, right.
func ActivityData(r Reading) []chart.DataItem {
	return []chart.DataItem{
		{Name: "Played " + FormatDuration(r.Elapsed), Value: round1(r.Progress * 100)},
		{Name: "Left", Value: round1(r.Left * 100)},
		{Name: "Right", Value: round1(r.Right * 100)},
	}
}

// WaterData shows the louder channel.
func WaterData(r Reading) chart.WaterData {
	return chart.WaterData{Name: "Level", Value: round1(math.Max(r.Left, r.Right) * 100)}
}

// ApplyActivity returns base with its data replaced by the reading.
func ApplyActivity(base chart.ActivityOptions, r Reading) chart.ActivityOptions {
	base.Data = ActivityData(r)
	return base
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
