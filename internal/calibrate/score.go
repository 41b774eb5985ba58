// Package calibrate tunes the red classification threshold against a
// labeled reference mask.
package calibrate

import (
	"errors"
	"fmt"

	"red-calibrator/internal/mask"
)

// ErrShapeMismatch is returned when a predicted mask and its reference differ in length.
var ErrShapeMismatch = errors.New("mask length mismatch")

func checkShape(reference, predicted mask.Mask) error {
	if len(reference) != len(predicted) {
		return fmt.Errorf("%w: reference has %d entries, predicted has %d",
			ErrShapeMismatch, len(reference), len(predicted))
	}
	return nil
}

// FalseNegativeRatio returns 1 - fn/total, where fn counts positions that are
// true in reference and false in predicted. It falls as misses grow.
func FalseNegativeRatio(reference, predicted mask.Mask) (float64, error) {
	if err := checkShape(reference, predicted); err != nil {
		return 0, err
	}
	if len(reference) == 0 {
		return 1, nil
	}

	fn := 0
	for i, want := range reference {
		if want && !predicted[i] {
			fn++
		}
	}

	return 1 - float64(fn)/float64(len(reference)), nil
}

// FalsePositiveRatio returns 1 + fp/total, where fp counts positions that are
// true in predicted and false in reference. It is never below 1.
func FalsePositiveRatio(reference, predicted mask.Mask) (float64, error) {
	if err := checkShape(reference, predicted); err != nil {
		return 0, err
	}
	if len(reference) == 0 {
		return 1, nil
	}

	fp := 0
	for i, got := range predicted {
		if got && !reference[i] {
			fp++
		}
	}

	return 1 + float64(fp)/float64(len(reference)), nil
}

// UpdateThreshold derives the next threshold from the two ratios.
// The result is not bounded; a zero term collapses the threshold to zero.
func UpdateThreshold(threshold, falseNegative, falsePositive float64) float64 {
	return threshold * falsePositive * ((falseNegative + 1) / 2)
}
