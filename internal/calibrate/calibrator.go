package calibrate

import (
	"context"
	"fmt"
	"io"
	"os"

	"red-calibrator/internal/mask"
	"red-calibrator/internal/raster"
)

// Step records one iteration of the calibration loop.
type Step struct {
	Index         int     // 1-based
	ThresholdIn   float64 // threshold the mask was built with
	FalseNegative float64
	FalsePositive float64
	ThresholdOut  float64
	Positives     int // true entries in the predicted mask
}

// Result is the state of a finished run.
type Result struct {
	Threshold float64
	// Mask is the prediction of the last iteration, built with the threshold
	// before the final update. Nil when no iteration ran.
	Mask  mask.Mask
	Steps []Step
}

// Calibrator runs the classify, score, update loop.
type Calibrator struct {
	params    Params
	decoder   raster.Decoder
	reference mask.Mask
	out       io.Writer
	observer  func(Step)
}

// New creates a Calibrator. Progress is printed to stdout unless SetOutput is called.
func New(params Params, decoder raster.Decoder, reference mask.Mask) *Calibrator {
	return &Calibrator{
		params:    params,
		decoder:   decoder,
		reference: reference,
		out:       os.Stdout,
	}
}

// SetOutput redirects progress lines. A nil writer discards them.
func (c *Calibrator) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	c.out = w
}

// OnStep registers a callback invoked after every iteration.
func (c *Calibrator) OnStep(fn func(Step)) {
	c.observer = fn
}

// Params returns the run parameters.
func (c *Calibrator) Params() Params {
	return c.params
}

// Iterate runs a single iteration at threshold: build the predicted mask,
// score it and derive the next threshold.
func (c *Calibrator) Iterate(dec raster.Decoder, threshold float64) (Step, mask.Mask, error) {
	predicted, err := mask.BuildFromFile(dec, c.params.ImagePath, threshold)
	if err != nil {
		return Step{}, nil, err
	}

	fn, err := FalseNegativeRatio(c.reference, predicted)
	if err != nil {
		return Step{}, nil, err
	}
	fmt.Fprintf(c.out, "False negative ratio: %v\n", fn)

	fp, err := FalsePositiveRatio(c.reference, predicted)
	if err != nil {
		return Step{}, nil, err
	}
	fmt.Fprintf(c.out, "False positive ratio: %v\n", fp)

	step := Step{
		ThresholdIn:   threshold,
		FalseNegative: fn,
		FalsePositive: fp,
		ThresholdOut:  UpdateThreshold(threshold, fn, fp),
		Positives:     predicted.Count(),
	}
	return step, predicted, nil
}

// Run performs Params.Iterations iterations starting from
// Params.InitialThreshold. Any error aborts the run immediately.
func (c *Calibrator) Run(ctx context.Context) (*Result, error) {
	threshold := c.params.InitialThreshold
	fmt.Fprintf(c.out, "Threshold: %v\n", threshold)

	res := &Result{Threshold: threshold}
	if c.params.Iterations <= 0 {
		return res, nil
	}

	dec := c.decoder
	if c.params.CacheImage {
		g, err := dec.Decode(c.params.ImagePath)
		if err != nil {
			return nil, err
		}
		dec = raster.StaticDecoder{Grid: g}
	}

	res.Steps = make([]Step, 0, c.params.Iterations)
	for i := 0; i < c.params.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("calibration interrupted after %d iterations: %w", i, err)
		}

		step, predicted, err := c.Iterate(dec, threshold)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", i+1, err)
		}
		step.Index = i + 1

		threshold = step.ThresholdOut
		fmt.Fprintf(c.out, "Threshold %d: %v\n", step.Index, threshold)

		res.Threshold = threshold
		res.Mask = predicted
		res.Steps = append(res.Steps, step)

		if c.observer != nil {
			c.observer(step)
		}
	}

	return res, nil
}
