package mask

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"red-calibrator/internal/raster"
)

// Reference is a hand-labeled ground truth mask with its dimensions.
type Reference struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Values   Mask   `json:"values"`
	FilePath string `json:"-"` // Path for persistence
}

// Validate checks that Values holds exactly Width*Height entries.
func (r *Reference) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("invalid reference size %dx%d", r.Width, r.Height)
	}
	if len(r.Values) != r.Width*r.Height {
		return fmt.Errorf("reference has %d values, want %d for %dx%d",
			len(r.Values), r.Width*r.Height, r.Width, r.Height)
	}
	return nil
}

// LoadReference loads a reference mask from a JSON file.
func LoadReference(path string) (*Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference: %w", err)
	}

	ref := &Reference{}
	if err := json.Unmarshal(data, ref); err != nil {
		return nil, fmt.Errorf("failed to parse reference: %w", err)
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	ref.FilePath = path

	return ref, nil
}

// Save persists the reference to FilePath.
func (r *Reference) Save() error {
	if r.FilePath == "" {
		return fmt.Errorf("no file path set")
	}

	if dir := filepath.Dir(r.FilePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize reference: %w", err)
	}

	if err := os.WriteFile(r.FilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write reference: %w", err)
	}

	return nil
}

// FromGrid labels a hand-painted image: pixels IsRed accepts under
// labelThreshold become true, everything else false.
func FromGrid(src raster.Grid, labelThreshold float64) *Reference {
	return &Reference{
		Width:  src.Width(),
		Height: src.Height(),
		Values: Build(src, labelThreshold),
	}
}

// Apple16 returns the built-in 16x16 apple reference mask.
func Apple16() *Reference {
	const (
		F = false
		T = true
	)
	values := Mask{
		F, F, F, F, F, F, F, F, F, F, F, F, F, F, F, F,
		F, F, F, F, F, F, F, F, F, F, F, F, F, F, F, F,
		F, F, F, F, F, F, F, F, F, F, F, F, F, F, F, F,
		F, F, F, F, F, F, F, F, F, F, F, F, F, F, F, F,
		F, F, F, T, T, T, T, F, F, T, T, T, T, F, F, F,
		F, F, T, T, F, T, T, F, T, T, F, F, T, T, F, F,
		F, T, T, T, T, T, T, T, T, T, T, T, T, T, T, F,
		F, T, T, T, T, T, T, T, T, T, T, T, T, T, T, F,
		F, T, T, T, T, T, T, T, T, T, T, T, T, T, T, F,
		F, T, T, T, T, T, T, T, T, T, T, T, T, T, T, F,
		F, T, T, T, T, T, T, T, T, T, T, T, T, T, T, F,
		F, F, T, T, T, T, T, T, T, T, T, T, T, T, F, F,
		F, F, T, T, T, T, T, T, T, T, T, T, T, T, F, F,
		F, F, F, T, T, T, T, T, T, T, T, T, T, F, F, F,
		F, F, F, T, T, T, T, T, T, T, T, T, T, F, F, F,
		F, F, F, F, T, T, T, T, T, T, T, T, F, F, F, F,
	}
	return &Reference{Width: 16, Height: 16, Values: values}
}
