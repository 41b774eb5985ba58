// Package raster provides image decoding into plain RGB pixel grids.
package raster

import (
	"image"
	"image/color"
)

// Pixel is an 8-bit RGB triple read from a decoded image.
type Pixel struct {
	R, G, B uint8
}

// Grid is a read-only, row-major view of decoded pixels.
type Grid interface {
	Width() int
	Height() int
	At(x, y int) Pixel
}

// RGBGrid is an in-memory Grid.
type RGBGrid struct {
	W, H int
	Pix  []Pixel // row-major, len W*H
}

// NewRGBGrid creates a black grid of the given size.
func NewRGBGrid(width, height int) *RGBGrid {
	return &RGBGrid{
		W:   width,
		H:   height,
		Pix: make([]Pixel, width*height),
	}
}

// Fill creates a grid where every pixel is p.
func Fill(width, height int, p Pixel) *RGBGrid {
	g := NewRGBGrid(width, height)
	for i := range g.Pix {
		g.Pix[i] = p
	}
	return g
}

// Width returns the grid width in pixels.
func (g *RGBGrid) Width() int { return g.W }

// Height returns the grid height in pixels.
func (g *RGBGrid) Height() int { return g.H }

// At returns the pixel at (x, y). Out of range coordinates return black.
func (g *RGBGrid) At(x, y int) Pixel {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return Pixel{}
	}
	return g.Pix[y*g.W+x]
}

// Set stores p at (x, y). Out of range coordinates are ignored.
func (g *RGBGrid) Set(x, y int, p Pixel) {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return
	}
	g.Pix[y*g.W+x] = p
}

// Image returns the grid as an opaque NRGBA image.
func (g *RGBGrid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.W, g.H))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			p := g.Pix[y*g.W+x]
			img.SetNRGBA(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

// FromImage copies img into an RGBGrid, dropping alpha.
// Colors are taken un-premultiplied so a half transparent red pixel stays red.
func FromImage(img image.Image) *RGBGrid {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	g := NewRGBGrid(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			g.Pix[y*w+x] = Pixel{R: c.R, G: c.G, B: c.B}
		}
	}

	return g
}
