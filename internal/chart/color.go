package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor accepts CSS color names, #rgb, #rrggbb, rgb(r,g,b) and
// rgba(r,g,b,a) with a in [0,1].
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "":
		return nil, fmt.Errorf("empty color")
	case s == "transparent":
		return color.Transparent, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseRGB(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown color %q", s)
}

func parseHex(s string) (color.Color, error) {
	if len(s) == 4 {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("bad hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func parseRGB(s string) (color.Color, error) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return nil, fmt.Errorf("bad color %q", s)
	}
	fn := strings.TrimSpace(s[:open])
	parts := strings.Split(s[open+1:end], ",")
	want := 3
	if fn == "rgba" {
		want = 4
	} else if fn != "rgb" {
		return nil, fmt.Errorf("bad color %q", s)
	}
	if len(parts) != want {
		return nil, fmt.Errorf("%s wants %d components, got %d", fn, want, len(parts))
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return nil, fmt.Errorf("bad channel %q in %q", parts[i], s)
		}
		ch[i] = uint8(v)
	}
	a := 1.0
	if want == 4 {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || v < 0 || v > 1 {
			return nil, fmt.Errorf("bad alpha %q in %q", parts[3], s)
		}
		a = v
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: uint8(a*255 + 0.5)}, nil
}
