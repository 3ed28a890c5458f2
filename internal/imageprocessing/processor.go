package imageprocessing

import (
	"errors"
	"fmt"
	"time"

	"github.com/rmitchellscott/monodither/internal/dither"
)

// ErrInvalidFit is returned for unusable resize parameters.
var ErrInvalidFit = errors.New("invalid fit parameters")

// ProcessingOptions selects the method and optional resize step.
type ProcessingOptions struct {
	Method    string
	Threshold int
	FitWidth  int
	FitHeight int
	FitMode   string
}

// DefaultProcessingOptions returns Floyd-Steinberg with no resize.
func DefaultProcessingOptions() ProcessingOptions {
	return ProcessingOptions{
		Method:    dither.MethodFloydSteinberg,
		Threshold: dither.DefaultThreshold,
		FitMode:   FitModeFit,
	}
}

// Result describes a processed buffer.
type Result struct {
	Buffer      *dither.PixelBuffer
	BlackPixels int
	Duration    time.Duration
}

// Process applies the optional resize and then the dither method. Without a
// resize the input buffer is transformed in place and returned in the result.
func Process(buf *dither.PixelBuffer, options ProcessingOptions) (*Result, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if _, ok := dither.Lookup(options.Method); !ok {
		return nil, fmt.Errorf("%w: %q", dither.ErrUnknownMethod, options.Method)
	}

	start := time.Now()

	// Step 1: resize to the requested display size
	if options.FitWidth > 0 || options.FitHeight > 0 {
		if options.FitWidth <= 0 || options.FitHeight <= 0 {
			return nil, fmt.Errorf("%w: both fit width and height are required, got %dx%d", ErrInvalidFit, options.FitWidth, options.FitHeight)
		}
		switch options.FitMode {
		case "", FitModeFit:
			buf = ResizeToFit(buf, options.FitWidth, options.FitHeight)
		case FitModeFill:
			buf = ResizeToFill(buf, options.FitWidth, options.FitHeight)
		default:
			return nil, fmt.Errorf("%w: unknown fit mode %q", ErrInvalidFit, options.FitMode)
		}
	}

	// Step 2: dither
	out, err := dither.Apply(options.Method, buf, dither.Options{Threshold: options.Threshold})
	if err != nil {
		return nil, err
	}

	return &Result{
		Buffer:      out,
		BlackPixels: CountBlack(out),
		Duration:    time.Since(start),
	}, nil
}
