// Command labelmask turns a hand-painted red on white image into a JSON
// reference mask for the calibrator.
//
// Usage: labelmask [-threshold 127] <labeled-image> [output-json]
package main

import (
	"flag"
	"fmt"
	"os"

	"red-calibrator/internal/mask"
	"red-calibrator/internal/raster"
)

func main() {
	threshold := flag.Float64("threshold", 127, "Red margin a painted pixel needs to count as labeled")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-threshold 127] <labeled-image> [output-json]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nBuilds a reference mask from a red/white labeled image.\n")
		fmt.Fprintf(os.Stderr, "Default output: reference.json\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	imagePath := flag.Arg(0)
	outputPath := "reference.json"
	if flag.NArg() >= 2 {
		outputPath = flag.Arg(1)
	}

	if !raster.IsSupportedFormat(imagePath) {
		fmt.Printf("Warning: %s has an unrecognised extension, trying anyway\n", imagePath)
	}

	fmt.Printf("Loading labels: %s\n", imagePath)
	grid, err := raster.FileDecoder{}.Decode(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading image: %v\n", err)
		os.Exit(1)
	}

	ref := mask.FromGrid(grid, *threshold)
	ref.FilePath = outputPath
	fmt.Print(ref.Values.Format(ref.Width))

	if err := ref.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing reference: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nWrote %dx%d reference (%d labeled red) to %s\n",
		ref.Width, ref.Height, ref.Values.Count(), outputPath)
}
