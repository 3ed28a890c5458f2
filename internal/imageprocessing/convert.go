package imageprocessing

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/rmitchellscott/monodither/internal/dither"
)

// BlackWhitePalette is the two-color palette used for 1-bit output.
var BlackWhitePalette = color.Palette{color.Black, color.White}

// FromImage returns the image as a non-premultiplied RGBA pixel buffer.
// A tightly packed *image.NRGBA anchored at the origin shares its pixels
// with the returned buffer; anything else is copied.
func FromImage(img image.Image) *dither.PixelBuffer {
	if img == nil {
		return nil
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if nrgba, ok := img.(*image.NRGBA); ok && bounds.Min == (image.Point{}) && nrgba.Stride == 4*width {
		return &dither.PixelBuffer{Width: width, Height: height, Pix: nrgba.Pix[:4*width*height]}
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	return &dither.PixelBuffer{Width: width, Height: height, Pix: nrgba.Pix}
}

// ToNRGBA wraps the buffer as an image without copying.
func ToNRGBA(buf *dither.PixelBuffer) *image.NRGBA {
	if buf == nil {
		return nil
	}
	return &image.NRGBA{
		Pix:    buf.Pix,
		Stride: 4 * buf.Width,
		Rect:   image.Rect(0, 0, buf.Width, buf.Height),
	}
}

// opaqueNRGBA copies the buffer into a new image with every alpha set to 255.
// The library ditherers read premultiplied colors, and the transforms in this
// module never take alpha into account.
func opaqueNRGBA(buf *dither.PixelBuffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	copy(img.Pix, buf.Pix)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}

// CountBlack returns the number of pixels whose color channels are all zero.
func CountBlack(buf *dither.PixelBuffer) int {
	if buf == nil {
		return 0
	}
	n := 0
	for i := 0; i+3 < len(buf.Pix); i += 4 {
		if buf.Pix[i] == 0 && buf.Pix[i+1] == 0 && buf.Pix[i+2] == 0 {
			n++
		}
	}
	return n
}
