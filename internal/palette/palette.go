// Package palette parses hex colors and interpolates between them.
package palette

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseHex parses "#rrggbb" or "#rgb" (the leading '#' is optional) into an
// opaque color.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimSpace(s)
	if !strings.HasPrefix(h, "#") {
		h = "#" + h
	}
	if len(h) != 7 && len(h) != 4 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	c, err := colorful.Hex(strings.ToLower(h))
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// MustParseHex is like ParseHex but panics on error. It is meant for
// package-level color constants.
func MustParseHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Lerp interpolates each channel from c1 to c2 by t and truncates the result
// toward zero. The returned color is fully opaque.
func Lerp(c1, c2 color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: channel(c1.R, c2.R, t),
		G: channel(c1.G, c2.G, t),
		B: channel(c1.B, c2.B, t),
		A: 0xff,
	}
}

func channel(a, b uint8, t float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*t
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
