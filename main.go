// Package main provides the entry point for the red threshold calibrator.
//
// It classifies a source image at a threshold, compares the result with a
// labeled reference mask, adjusts the threshold and repeats for a fixed
// number of iterations. The final prediction is written as a red on white
// image.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"red-calibrator/internal/calibrate"
	"red-calibrator/internal/config"
	"red-calibrator/internal/render"
	"red-calibrator/internal/version"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "", "Path to JSON config (default ~/.config/red-calibrator/config.json if present)")
	imagePath := flag.String("image", "", "Source image to classify")
	referencePath := flag.String("reference", "", "JSON reference mask (default: built-in 16x16 apple)")
	outputPath := flag.String("output", "", "Where to write the rendered mask")
	graphPath := flag.String("graph", "", "Write a PNG graph of the run to this path")
	iterations := flag.Int("iterations", 0, "Number of calibration iterations")
	threshold := flag.Float64("threshold", 0, "Initial threshold")
	decoder := flag.String("decoder", "", "Image decoder: go or opencv")
	resample := flag.Bool("resample", false, "Scale the source image to the reference size")
	cache := flag.Bool("cache", false, "Decode the source image once")
	summary := flag.Bool("summary", false, "Print run statistics when done")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags given on the command line override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "image":
			cfg.ImagePath = *imagePath
		case "reference":
			cfg.ReferencePath = *referencePath
		case "output":
			cfg.OutputPath = *outputPath
		case "graph":
			cfg.GraphPath = *graphPath
		case "iterations":
			cfg.Iterations = *iterations
		case "threshold":
			cfg.InitialThreshold = *threshold
		case "decoder":
			cfg.Decoder = *decoder
		case "resample":
			cfg.Resample = *resample
		case "cache":
			cfg.CacheImage = *cache
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	ref, err := cfg.Reference()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading reference: %v\n", err)
		os.Exit(1)
	}
	palette, err := cfg.Palette()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	log.Printf("Starting %s", version.String())
	log.Printf("Source %s, reference %dx%d (%d labeled red), %d iterations, decoder %s",
		cfg.ImagePath, ref.Width, ref.Height, ref.Values.Count(), cfg.Iterations, cfg.Decoder)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cal := calibrate.New(cfg.Params(), cfg.NewDecoder(), ref.Values)
	res, err := cal.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Calibration failed: %v\n", err)
		os.Exit(1)
	}

	if res.Mask == nil {
		log.Printf("No iterations ran; threshold stays %v and nothing is rendered", res.Threshold)
		return
	}

	if err := render.RenderFile(res.Mask, cfg.Width, cfg.Height, palette, cfg.OutputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering mask: %v\n", err)
		os.Exit(1)
	}
	log.Printf("Wrote %s (%d of %d pixels red, final threshold %v)",
		cfg.OutputPath, res.Mask.Count(), len(res.Mask), res.Threshold)

	if cfg.GraphPath != "" {
		if err := writeGraph(res.Steps, cfg.ImagePath, cfg.GraphPath); err != nil {
			log.Printf("Graph not written: %v", err)
		} else {
			log.Printf("Wrote graph %s", cfg.GraphPath)
		}
	}

	if *summary {
		fmt.Println(calibrate.Summarize(res.Steps))
	}
}

func writeGraph(steps []calibrate.Step, title, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return calibrate.Graph(steps, title, f)
}
