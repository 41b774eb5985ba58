// Package cvdecode decodes images through OpenCV.
package cvdecode

import (
	"fmt"

	"red-calibrator/internal/raster"

	"gocv.io/x/gocv"
)

// Decoder reads images with gocv.IMRead. It accepts any format the
// linked OpenCV build can read.
type Decoder struct{}

// Decode reads path as a 3-channel BGR image and converts it to RGB.
func (Decoder) Decode(path string) (raster.Grid, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		img.Close()
		return nil, fmt.Errorf("failed to decode image: opencv could not read %s", path)
	}
	defer img.Close()

	h, w := img.Rows(), img.Cols()
	g := raster.NewRGBGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			vec := img.GetVecbAt(y, x)
			// BGR -> RGB
			g.Pix[y*w+x] = raster.Pixel{R: vec[2], G: vec[1], B: vec[0]}
		}
	}

	return g, nil
}
