package imageprocessing

import (
	"errors"
	"testing"

	"github.com/rmitchellscott/monodither/internal/dither"
)

func TestProcess(t *testing.T) {
	t.Run("in place without resize", func(t *testing.T) {
		buf := rampBuffer(8, 4)
		res, err := Process(buf, DefaultProcessingOptions())
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if res.Buffer != buf {
			t.Error("expected the input buffer to be transformed in place")
		}
		if res.BlackPixels <= 0 || res.BlackPixels >= buf.Len() {
			t.Errorf("BlackPixels = %d, want between 0 and %d", res.BlackPixels, buf.Len())
		}
	})

	t.Run("resize then dither", func(t *testing.T) {
		opts := ProcessingOptions{Method: dither.MethodThreshold, Threshold: 128, FitWidth: 4, FitHeight: 6, FitMode: FitModeFill}
		res, err := Process(rampBuffer(8, 4), opts)
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if res.Buffer.Width != 4 || res.Buffer.Height != 6 {
			t.Errorf("got %dx%d, want 4x6", res.Buffer.Width, res.Buffer.Height)
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name string
			buf  *dither.PixelBuffer
			opts ProcessingOptions
			want error
		}{
			{name: "bad shape", buf: &dither.PixelBuffer{Width: 2, Height: 2}, opts: DefaultProcessingOptions(), want: dither.ErrInvalidShape},
			{name: "unknown method", buf: rampBuffer(2, 2), opts: ProcessingOptions{Method: "halftone"}, want: dither.ErrUnknownMethod},
			{name: "half a fit", buf: rampBuffer(2, 2), opts: ProcessingOptions{Method: dither.MethodAtkinson, FitWidth: 3}, want: ErrInvalidFit},
			{name: "bad fit mode", buf: rampBuffer(2, 2), opts: ProcessingOptions{Method: dither.MethodAtkinson, FitWidth: 3, FitHeight: 3, FitMode: "stretch"}, want: ErrInvalidFit},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := Process(tt.buf, tt.opts); !errors.Is(err, tt.want) {
					t.Errorf("err = %v, want %v", err, tt.want)
				}
			})
		}
	})
}
