package chart

import (
	"strconv"
	"strings"
)

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ringText fills {name} {percent} {value} {baseValue}.
func ringText(format string, r Ring, percent float64) string {
	return strings.NewReplacer(
		"{name}", r.Name,
		"{percent}", formatNumber(percent),
		"{value}", formatNumber(r.Value),
		"{baseValue}", formatNumber(r.BaseValue),
	).Replace(format)
}

// waterText fills {name} {value}.
func waterText(format, name string, value float64) string {
	return strings.NewReplacer(
		"{name}", name,
		"{value}", formatNumber(value),
	).Replace(format)
}
