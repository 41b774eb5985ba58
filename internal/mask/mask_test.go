package mask

import (
	"os"
	"path/filepath"
	"testing"

	"red-calibrator/internal/raster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRed(t *testing.T) {
	cases := []struct {
		name      string
		pixel     raster.Pixel
		threshold float64
		want      bool
	}{
		{"pure red", raster.Pixel{R: 255}, 1, true},
		{"pure red at zero", raster.Pixel{R: 255}, 0, true},
		{"black at zero", raster.Pixel{}, 0, false},
		{"white", raster.Pixel{R: 255, G: 255, B: 255}, 0, false},
		{"red equals green", raster.Pixel{R: 200, G: 200}, 0, false},
		{"red below blue", raster.Pixel{R: 100, B: 101}, 0, false},
		{"margin exactly threshold", raster.Pixel{R: 150, G: 100, B: 100}, 50, false},
		{"margin above threshold", raster.Pixel{R: 151, G: 100, B: 100}, 50, true},
		{"red not above threshold", raster.Pixel{R: 40}, 40, false},
		{"no uint8 overflow", raster.Pixel{R: 255, G: 250, B: 0}, 10, false},
		{"negative threshold", raster.Pixel{R: 10, G: 12, B: 12}, -5, true},
		{"huge threshold", raster.Pixel{R: 255}, 1000, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, IsRed(c.pixel, c.threshold))
		})
	}
}

func TestIsRedNeverWhenNotDominant(t *testing.T) {
	for _, threshold := range []float64{0, 0.5, 1, 10, 100} {
		for r := 0; r < 256; r += 15 {
			for other := r; other < 256; other += 20 {
				assert.False(t, IsRed(raster.Pixel{R: uint8(r), G: uint8(other)}, threshold))
				assert.False(t, IsRed(raster.Pixel{R: uint8(r), B: uint8(other)}, threshold))
			}
		}
	}
}

func TestBuildRowMajor(t *testing.T) {
	g := raster.NewRGBGrid(3, 2)
	g.Set(2, 0, raster.Pixel{R: 255})
	g.Set(0, 1, raster.Pixel{R: 255})
	g.Set(1, 1, raster.Pixel{G: 255})

	got := Build(g, 1)
	assert.Equal(t, Mask{false, false, true, true, false, false}, got)
	assert.Equal(t, 2, got.Count())
}

func TestBuildThresholdSensitivity(t *testing.T) {
	g := raster.Fill(2, 2, raster.Pixel{R: 120, G: 60, B: 60})
	assert.Equal(t, 4, Build(g, 59).Count())
	assert.Equal(t, 0, Build(g, 60).Count())
}

func TestBuildFromFile(t *testing.T) {
	dec := raster.StaticDecoder{Grid: raster.Fill(4, 4, raster.Pixel{R: 255})}
	m, err := BuildFromFile(dec, "apple.png", 1)
	require.NoError(t, err)
	assert.Len(t, m, 16)
	assert.Equal(t, 16, m.Count())

	_, err = BuildFromFile(raster.StaticDecoder{}, "apple.png", 1)
	assert.Error(t, err)
}

func TestEqualAndFormat(t *testing.T) {
	m := Mask{true, false, false, true}
	assert.True(t, m.Equal(Mask{true, false, false, true}))
	assert.False(t, m.Equal(Mask{true, false, false}))
	assert.False(t, m.Equal(Mask{true, true, false, true}))
	assert.Equal(t, "#.\n.#\n", m.Format(2))
	assert.Equal(t, "", m.Format(0))
}

func TestApple16(t *testing.T) {
	ref := Apple16()
	require.NoError(t, ref.Validate())
	assert.Len(t, ref.Values, 256)
	assert.Equal(t, 138, ref.Values.Count())
	// The top four rows are background.
	for i := 0; i < 64; i++ {
		assert.False(t, ref.Values[i], "index %d", i)
	}
}

func TestReferenceSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs", "apple.json")
	ref := Apple16()
	ref.FilePath = path
	require.NoError(t, ref.Save())

	loaded, err := LoadReference(path)
	require.NoError(t, err)
	assert.Equal(t, 16, loaded.Width)
	assert.Equal(t, 16, loaded.Height)
	assert.True(t, ref.Values.Equal(loaded.Values))
	assert.Equal(t, path, loaded.FilePath)
}

func TestReferenceErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadReference(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"width":2,"height":2,"values":[true]}`), 0644))
	_, err = LoadReference(bad)
	assert.Error(t, err)

	assert.Error(t, (&Reference{Values: Mask{true}}).Save())
	assert.Error(t, (&Reference{Width: 0, Height: 1}).Validate())
}

func TestFromGrid(t *testing.T) {
	g := raster.Fill(2, 2, raster.Pixel{R: 255, G: 255, B: 255})
	g.Set(1, 0, raster.Pixel{R: 255})
	g.Set(0, 1, raster.Pixel{R: 250, G: 140, B: 140})

	ref := FromGrid(g, 127)
	require.NoError(t, ref.Validate())
	assert.Equal(t, Mask{false, true, false, false}, ref.Values)
}
