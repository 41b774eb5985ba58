package raster

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decoder turns an image path into a pixel grid.
type Decoder interface {
	Decode(path string) (Grid, error)
}

// FileDecoder decodes images with the registered Go image codecs.
type FileDecoder struct{}

// Decode opens and decodes the image at path.
func (FileDecoder) Decode(path string) (Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return FromImage(img), nil
}

// StaticDecoder returns the same grid for every path.
// It backs cached runs and in-memory tests.
type StaticDecoder struct {
	Grid Grid
}

// Decode returns the stored grid.
func (d StaticDecoder) Decode(string) (Grid, error) {
	if d.Grid == nil {
		return nil, fmt.Errorf("failed to decode image: no grid")
	}
	return d.Grid, nil
}

// Resampled wraps a Decoder and scales every decoded grid to Width x Height
// with nearest-neighbour sampling.
type Resampled struct {
	Decoder Decoder
	Width   int
	Height  int
}

// Decode decodes path with the wrapped decoder and resamples the result.
func (r Resampled) Decode(path string) (Grid, error) {
	g, err := r.Decoder.Decode(path)
	if err != nil {
		return nil, err
	}
	return Resample(g, r.Width, r.Height), nil
}

// Resample scales g to width x height. A grid that already has that size is returned as is.
func Resample(g Grid, width, height int) Grid {
	if g.Width() == width && g.Height() == height {
		return g
	}

	src := toRGBGrid(g).Image()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	return FromImage(dst)
}

func toRGBGrid(g Grid) *RGBGrid {
	if rg, ok := g.(*RGBGrid); ok {
		return rg
	}
	out := NewRGBGrid(g.Width(), g.Height())
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			out.Pix[y*out.W+x] = g.At(x, y)
		}
	}
	return out
}

// SupportedFormats returns the file extensions FileDecoder understands.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".tiff", ".tif", ".bmp", ".webp"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}
