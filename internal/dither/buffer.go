package dither

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidShape is returned when a buffer's length does not match its
// declared dimensions.
var ErrInvalidShape = errors.New("invalid pixel buffer shape")

// PixelBuffer is a row-major RGBA buffer with one byte per channel.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewPixelBuffer allocates a zeroed buffer of the given dimensions.
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, 4*width*height),
	}
}

// Validate reports whether the buffer length agrees with its dimensions.
// The transforms themselves assume a valid buffer.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidShape)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidShape, b.Width, b.Height)
	}
	if b.Width > math.MaxInt/4/b.Height {
		return fmt.Errorf("%w: dimensions %dx%d overflow", ErrInvalidShape, b.Width, b.Height)
	}
	if want := 4 * b.Width * b.Height; len(b.Pix) != want {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d", ErrInvalidShape, len(b.Pix), want, b.Width, b.Height)
	}
	return nil
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (b *PixelBuffer) PixOffset(x, y int) int {
	return 4 * (y*b.Width + x)
}

// Len returns the number of pixels in the buffer.
func (b *PixelBuffer) Len() int {
	return len(b.Pix) / 4
}

// Clone returns a deep copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	pix := make([]byte, len(b.Pix))
	copy(pix, b.Pix)
	return &PixelBuffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// setGray writes v to the R, G and B channels of the pixel starting at i.
func (b *PixelBuffer) setGray(i int, v uint8) {
	b.Pix[i] = v
	b.Pix[i+1] = v
	b.Pix[i+2] = v
}

// luminanceAt returns the luminance of the pixel starting at i.
func (b *PixelBuffer) luminanceAt(i int) float64 {
	return Luminance(b.Pix[i], b.Pix[i+1], b.Pix[i+2])
}
