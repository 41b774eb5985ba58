// Package render draws classification masks as two-color images.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"red-calibrator/internal/mask"
	"red-calibrator/pkg/colorutil"

	"github.com/disintegration/imaging"
)

// ErrNoMask is returned when there is no mask to render.
var ErrNoMask = errors.New("no mask to render")

// Palette holds the colors for true and false mask entries.
type Palette struct {
	True  color.RGBA
	False color.RGBA
}

// DefaultPalette renders true entries red on a white background.
func DefaultPalette() Palette {
	return Palette{True: colorutil.Red, False: colorutil.White}
}

// Render produces a width x height image of m, row-major.
func Render(m mask.Mask, width, height int, p Palette) (*image.RGBA, error) {
	if m == nil {
		return nil, ErrNoMask
	}
	if width <= 0 || height <= 0 || len(m) != width*height {
		return nil, fmt.Errorf("mask has %d entries, cannot render as %dx%d", len(m), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if m[y*width+x] {
				img.SetRGBA(x, y, p.True)
			} else {
				img.SetRGBA(x, y, p.False)
			}
		}
	}

	return img, nil
}

// Save writes img to path. The format follows the file extension.
func Save(img image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

// RenderFile renders m and saves it to path.
func RenderFile(m mask.Mask, width, height int, p Palette, path string) error {
	img, err := Render(m, width, height, p)
	if err != nil {
		return err
	}
	return Save(img, path)
}
