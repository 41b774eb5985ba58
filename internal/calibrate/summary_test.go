package calibrate

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSteps() []Step {
	return []Step{
		{Index: 1, ThresholdIn: 1, FalseNegative: 1, FalsePositive: 2, ThresholdOut: 2},
		{Index: 2, ThresholdIn: 2, FalseNegative: 0.5, FalsePositive: 1, ThresholdOut: 1.5},
		{Index: 3, ThresholdIn: 1.5, FalseNegative: 1, FalsePositive: 1, ThresholdOut: 1.5},
		{Index: 4, ThresholdIn: 1.5, FalseNegative: 1, FalsePositive: 1, ThresholdOut: 1.5},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleSteps())
	assert.Equal(t, 4, s.Iterations)
	assert.Equal(t, 1.5, s.Threshold.Min)
	assert.Equal(t, 2.0, s.Threshold.Max)
	assert.InDelta(t, 1.625, s.Threshold.Mean, 1e-12)
	assert.InDelta(t, 0.25, s.Threshold.StdDev, 1e-12)
	assert.Equal(t, 0.5, s.FalseNegative.Min)
	assert.Equal(t, 2.0, s.FalsePositive.Max)
	assert.Equal(t, 3, s.Settled)
	assert.Contains(t, s.String(), "settled at iteration 3")
}

func TestSummarizeEdges(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	one := Summarize([]Step{{Index: 1, ThresholdIn: 1, FalseNegative: 1, FalsePositive: 2, ThresholdOut: 2}})
	assert.Equal(t, 2.0, one.Threshold.Mean)
	assert.Equal(t, 0.0, one.Threshold.StdDev)
	assert.Equal(t, 0, one.Settled)
	assert.Contains(t, one.String(), "settled never")

	still := Summarize([]Step{
		{Index: 1, ThresholdIn: 1, FalseNegative: 1, FalsePositive: 1, ThresholdOut: 1},
		{Index: 2, ThresholdIn: 1, FalseNegative: 1, FalsePositive: 1, ThresholdOut: 1},
	})
	assert.Equal(t, 1, still.Settled)
}

func TestGraph(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Graph(sampleSteps(), "apple.png", &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1024, img.Bounds().Dx())
	assert.Equal(t, 512, img.Bounds().Dy())
}

func TestGraphFlatSeries(t *testing.T) {
	steps := []Step{
		{Index: 1, ThresholdIn: 1, FalseNegative: 1, FalsePositive: 1, ThresholdOut: 1},
		{Index: 2, ThresholdIn: 1, FalseNegative: 1, FalsePositive: 1, ThresholdOut: 1},
	}
	var buf bytes.Buffer
	assert.NoError(t, Graph(steps, "", &buf))
}

func TestGraphNeedsTwoSteps(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Graph(sampleSteps()[:1], "", &buf))
}
