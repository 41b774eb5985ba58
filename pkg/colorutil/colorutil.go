// Package colorutil provides shared color utilities for mask rendering.
package colorutil

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Mask palette colors.
var (
	Red   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// ParseHex parses a "#rrggbb" string into an opaque RGBA color.
func ParseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Hex formats c as "#rrggbb", ignoring alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
