package calibrate

// Params configures a calibration run. It is copied into the Calibrator
// and never changed afterwards.
type Params struct {
	InitialThreshold float64
	Iterations       int
	ImagePath        string

	// CacheImage decodes the source once instead of on every iteration.
	// Results are identical either way.
	CacheImage bool
}

// DefaultParams returns the parameters of the reference apple run.
func DefaultParams() Params {
	return Params{
		InitialThreshold: 1,
		Iterations:       500,
		ImagePath:        "apple.png",
	}
}

// WithIterations returns a copy of params with a different iteration count.
func (p Params) WithIterations(n int) Params {
	p.Iterations = n
	return p
}

// WithThreshold returns a copy of params with a different starting threshold.
func (p Params) WithThreshold(t float64) Params {
	p.InitialThreshold = t
	return p
}

// WithImage returns a copy of params reading the source image from path.
func (p Params) WithImage(path string) Params {
	p.ImagePath = path
	return p
}
