// Package mask classifies pixels as red and builds boolean masks from images.
package mask

import (
	"strings"

	"red-calibrator/internal/raster"
)

// Mask is a row-major boolean classification, indexed y*width + x.
type Mask []bool

// IsRed reports whether p is red under threshold: the red channel must exceed
// the threshold and exceed both other channels by more than the threshold.
func IsRed(p raster.Pixel, threshold float64) bool {
	r, g, b := float64(p.R), float64(p.G), float64(p.B)
	return r > threshold && r > g+threshold && r > b+threshold
}

// Build classifies every pixel of src with IsRed.
func Build(src raster.Grid, threshold float64) Mask {
	w, h := src.Width(), src.Height()
	m := make(Mask, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if IsRed(src.At(x, y), threshold) {
				m[y*w+x] = true
			}
		}
	}

	return m
}

// BuildFromFile decodes path with dec and classifies it.
// The decoded grid is not retained.
func BuildFromFile(dec raster.Decoder, path string, threshold float64) (Mask, error) {
	src, err := dec.Decode(path)
	if err != nil {
		return nil, err
	}
	return Build(src, threshold), nil
}

// Count returns the number of true entries.
func (m Mask) Count() int {
	n := 0
	for _, v := range m {
		if v {
			n++
		}
	}
	return n
}

// Equal reports whether m and o have the same length and entries.
func (m Mask) Equal(o Mask) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if m[i] != o[i] {
			return false
		}
	}
	return true
}

// Format draws the mask as text rows of width characters, '#' for true and '.' for false.
func (m Mask) Format(width int) string {
	if width <= 0 {
		return ""
	}
	var sb strings.Builder
	for i, v := range m {
		if v {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
		if (i+1)%width == 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
