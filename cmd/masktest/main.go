// Command masktest classifies one image at one threshold and prints the
// resulting mask next to its error ratios against a reference.
package main

import (
	"flag"
	"fmt"
	"os"

	"red-calibrator/internal/calibrate"
	"red-calibrator/internal/config"
	"red-calibrator/internal/mask"
)

func main() {
	imagePath := flag.String("image", "", "Path to source image")
	threshold := flag.Float64("threshold", 1, "Classification threshold")
	referencePath := flag.String("reference", "", "JSON reference mask (default: built-in 16x16 apple)")
	decoder := flag.String("decoder", config.DecoderGo, "Image decoder: go or opencv")
	resample := flag.Bool("resample", false, "Scale the source image to the reference size")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: masktest -image <path> [-threshold 1] [-reference ref.json] [-decoder go|opencv] [-resample]")
		os.Exit(1)
	}

	cfg := config.Default()
	cfg.ImagePath = *imagePath
	cfg.ReferencePath = *referencePath
	cfg.Decoder = *decoder
	cfg.Resample = *resample

	if *referencePath != "" {
		// Take the output size from the reference itself
		ref, err := mask.LoadReference(*referencePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load reference: %v\n", err)
			os.Exit(1)
		}
		cfg.Width, cfg.Height = ref.Width, ref.Height
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid options: %v\n", err)
		os.Exit(2)
	}
	ref, err := cfg.Reference()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load reference: %v\n", err)
		os.Exit(1)
	}

	grid, err := cfg.NewDecoder().Decode(cfg.ImagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded image: %dx%d pixels\n", grid.Width(), grid.Height())
	fmt.Printf("Threshold: %v\n\n", *threshold)

	predicted := mask.Build(grid, *threshold)
	fmt.Print(predicted.Format(grid.Width()))
	fmt.Printf("\n%d of %d pixels red (reference: %d)\n", predicted.Count(), len(predicted), ref.Values.Count())

	fn, err := calibrate.FalseNegativeRatio(ref.Values, predicted)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot score: %v\n", err)
		os.Exit(1)
	}
	fp, err := calibrate.FalsePositiveRatio(ref.Values, predicted)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot score: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("False negative ratio: %v\n", fn)
	fmt.Printf("False positive ratio: %v\n", fp)
	fmt.Printf("Next threshold: %v\n", calibrate.UpdateThreshold(*threshold, fn, fp))
}
