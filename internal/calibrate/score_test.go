package calibrate

import (
	"errors"
	"math"
	"testing"

	"red-calibrator/internal/mask"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(n int, v bool) mask.Mask {
	m := make(mask.Mask, n)
	for i := range m {
		m[i] = v
	}
	return m
}

func TestRatiosAgainstSelf(t *testing.T) {
	masks := []mask.Mask{
		filled(256, false),
		filled(256, true),
		mask.Apple16().Values,
		{true, false, true},
	}
	for _, m := range masks {
		fn, err := FalseNegativeRatio(m, m)
		require.NoError(t, err)
		assert.Equal(t, 1.0, fn)

		fp, err := FalsePositiveRatio(m, m)
		require.NoError(t, err)
		assert.Equal(t, 1.0, fp)
	}
}

func TestRatiosShapeMismatch(t *testing.T) {
	_, err := FalseNegativeRatio(filled(256, false), filled(255, false))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
	assert.Contains(t, err.Error(), "256")
	assert.Contains(t, err.Error(), "255")

	_, err = FalsePositiveRatio(filled(4, true), nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestRatios(t *testing.T) {
	cases := []struct {
		name      string
		reference mask.Mask
		predicted mask.Mask
		fn, fp    float64
	}{
		{"all false vs all false", filled(256, false), filled(256, false), 1, 1},
		{"all false vs all true", filled(256, false), filled(256, true), 1, 2},
		{"all true vs all false", filled(256, true), filled(256, false), 0, 1},
		{"one miss one extra", mask.Mask{true, true, false, false}, mask.Mask{true, false, true, false}, 0.75, 1.25},
		{"empty", mask.Mask{}, mask.Mask{}, 1, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fn, err := FalseNegativeRatio(c.reference, c.predicted)
			require.NoError(t, err)
			assert.Equal(t, c.fn, fn)

			fp, err := FalsePositiveRatio(c.reference, c.predicted)
			require.NoError(t, err)
			assert.Equal(t, c.fp, fp)
		})
	}
}

func TestUpdateThreshold(t *testing.T) {
	cases := []struct {
		t, fn, fp, want float64
	}{
		{1, 1, 1, 1},
		{1, 1, 2, 2},
		{1, 0, 1, 0.5},
		{0, 0.3, 1.7, 0},
		{5, 0.5, 0, 0},
		{-2, 1, 1.5, -3},
		{3, 0.25, 1.125, 3 * 1.125 * ((0.25 + 1) / 2)},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, UpdateThreshold(c.t, c.fn, c.fp), "update(%v, %v, %v)", c.t, c.fn, c.fp)
	}
}

func TestUpdateThresholdUnbounded(t *testing.T) {
	assert.True(t, math.IsInf(UpdateThreshold(math.MaxFloat64, 1, 2), 1))
	assert.Equal(t, -4.0, UpdateThreshold(-2, 1, 2))
}
