package calibrate

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats holds descriptive statistics for one series of a run.
type Stats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Summary describes the trajectory of a run.
type Summary struct {
	Iterations    int   `json:"iterations"`
	Threshold     Stats `json:"threshold"`
	FalseNegative Stats `json:"false_negative"`
	FalsePositive Stats `json:"false_positive"`
	// Settled is the first iteration from which every update left the
	// threshold unchanged, 0 if the last update still moved it.
	Settled int `json:"settled"`
}

// Summarize computes statistics over the thresholds produced by steps and both ratios.
func Summarize(steps []Step) Summary {
	s := Summary{Iterations: len(steps)}
	if len(steps) == 0 {
		return s
	}

	thresholds := make([]float64, len(steps))
	fns := make([]float64, len(steps))
	fps := make([]float64, len(steps))
	for i, st := range steps {
		thresholds[i] = st.ThresholdOut
		fns[i] = st.FalseNegative
		fps[i] = st.FalsePositive
	}

	s.Threshold = seriesStats(thresholds)
	s.FalseNegative = seriesStats(fns)
	s.FalsePositive = seriesStats(fps)

	for i := len(steps) - 1; i >= 0; i-- {
		if steps[i].ThresholdIn != steps[i].ThresholdOut {
			if i+1 < len(steps) {
				s.Settled = steps[i+1].Index
			}
			return s
		}
	}
	s.Settled = steps[0].Index

	return s
}

func seriesStats(x []float64) Stats {
	st := Stats{
		Min: floats.Min(x),
		Max: floats.Max(x),
	}
	if len(x) == 1 {
		st.Mean = x[0]
		return st
	}
	st.Mean, st.StdDev = stat.MeanStdDev(x, nil)
	return st
}

// String returns a human-readable summary.
func (s Summary) String() string {
	settled := "never"
	if s.Settled > 0 {
		settled = fmt.Sprintf("at iteration %d", s.Settled)
	}
	return fmt.Sprintf("%d iterations, threshold settled %s\n"+
		"  threshold:      min=%.6g max=%.6g mean=%.6g std=%.6g\n"+
		"  false negative: min=%.6g max=%.6g mean=%.6g std=%.6g\n"+
		"  false positive: min=%.6g max=%.6g mean=%.6g std=%.6g",
		s.Iterations, settled,
		s.Threshold.Min, s.Threshold.Max, s.Threshold.Mean, s.Threshold.StdDev,
		s.FalseNegative.Min, s.FalseNegative.Max, s.FalseNegative.Mean, s.FalseNegative.StdDev,
		s.FalsePositive.Min, s.FalsePositive.Max, s.FalsePositive.Mean, s.FalsePositive.StdDev)
}
