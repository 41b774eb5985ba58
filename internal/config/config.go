// Package config provides the JSON run configuration for the calibrator.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"red-calibrator/internal/calibrate"
	"red-calibrator/internal/mask"
	"red-calibrator/internal/raster"
	"red-calibrator/internal/raster/cvdecode"
	"red-calibrator/internal/render"
	"red-calibrator/pkg/colorutil"
)

const configFile = "config.json"

// Decoder names.
const (
	DecoderGo     = "go"
	DecoderOpenCV = "opencv"
)

// Config holds every setting of a calibration run.
type Config struct {
	ImagePath     string `json:"image"`
	ReferencePath string `json:"reference,omitempty"` // empty uses the built-in apple mask
	OutputPath    string `json:"output"`
	GraphPath     string `json:"graph,omitempty"`

	// Output and reference dimensions
	Width  int `json:"width"`
	Height int `json:"height"`

	InitialThreshold float64 `json:"initial_threshold"`
	Iterations       int     `json:"iterations"`

	Decoder    string `json:"decoder"`
	Resample   bool   `json:"resample"`    // scale the source to Width x Height
	CacheImage bool   `json:"cache_image"` // decode once instead of every iteration

	MaskColor       string `json:"mask_color"`
	BackgroundColor string `json:"background_color"`
}

// Default returns the configuration of the reference apple run.
func Default() Config {
	p := calibrate.DefaultParams()
	return Config{
		ImagePath:        p.ImagePath,
		OutputPath:       "output_image.png",
		Width:            16,
		Height:           16,
		InitialThreshold: p.InitialThreshold,
		Iterations:       p.Iterations,
		Decoder:          DecoderGo,
		MaskColor:        colorutil.Hex(colorutil.Red),
		BackgroundColor:  colorutil.Hex(colorutil.White),
	}
}

// DefaultPath returns ~/.config/red-calibrator/config.json.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "red-calibrator", configFile)
}

// Load reads a config file. Keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, or DefaultPath when path is empty.
// A missing default file is not an error.
func LoadOrDefault(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg, err := Load(DefaultPath())
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the config as indented JSON.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the config for values no run can use.
func (c Config) Validate() error {
	if c.ImagePath == "" {
		return errors.New("no source image set")
	}
	if c.OutputPath == "" {
		return errors.New("no output path set")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid output size %dx%d", c.Width, c.Height)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("invalid iteration count %d", c.Iterations)
	}
	if c.Decoder != DecoderGo && c.Decoder != DecoderOpenCV {
		return fmt.Errorf("unknown decoder %q (want %q or %q)", c.Decoder, DecoderGo, DecoderOpenCV)
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}

// Params returns the calibration loop parameters.
func (c Config) Params() calibrate.Params {
	p := calibrate.DefaultParams().
		WithImage(c.ImagePath).
		WithThreshold(c.InitialThreshold).
		WithIterations(c.Iterations)
	p.CacheImage = c.CacheImage
	return p
}

// NewDecoder returns the image decoder the config selects.
func (c Config) NewDecoder() raster.Decoder {
	var dec raster.Decoder = raster.FileDecoder{}
	if c.Decoder == DecoderOpenCV {
		dec = cvdecode.Decoder{}
	}
	if c.Resample {
		dec = raster.Resampled{Decoder: dec, Width: c.Width, Height: c.Height}
	}
	return dec
}

// Reference loads the configured reference mask and checks it matches Width x Height.
func (c Config) Reference() (*mask.Reference, error) {
	ref := mask.Apple16()
	if c.ReferencePath != "" {
		var err error
		if ref, err = mask.LoadReference(c.ReferencePath); err != nil {
			return nil, err
		}
	}
	if ref.Width != c.Width || ref.Height != c.Height {
		return nil, fmt.Errorf("reference is %dx%d but output is %dx%d",
			ref.Width, ref.Height, c.Width, c.Height)
	}
	return ref, nil
}

// Palette parses the configured render colors.
func (c Config) Palette() (render.Palette, error) {
	fg, err := colorutil.ParseHex(c.MaskColor)
	if err != nil {
		return render.Palette{}, fmt.Errorf("mask_color: %w", err)
	}
	bg, err := colorutil.ParseHex(c.BackgroundColor)
	if err != nil {
		return render.Palette{}, fmt.Errorf("background_color: %w", err)
	}
	return render.Palette{True: fg, False: bg}, nil
}
