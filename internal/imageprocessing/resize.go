package imageprocessing

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/rmitchellscott/monodither/internal/dither"
)

// Fit modes accepted by Process.
const (
	FitModeFit  = "fit"
	FitModeFill = "fill"
)

// paper is the letterbox color for ResizeToFit.
var paper = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// ResizeToFit scales the buffer to fit within the target dimensions while
// preserving aspect ratio. Uncovered areas are filled with white.
func ResizeToFit(buf *dither.PixelBuffer, targetWidth, targetHeight int) *dither.PixelBuffer {
	if buf == nil {
		return nil
	}

	newWidth, newHeight := ScaledDimensions(buf.Width, buf.Height, targetWidth, targetHeight)

	canvas := image.NewNRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{paper}, image.Point{}, draw.Src)

	offsetX := (targetWidth - newWidth) / 2
	offsetY := (targetHeight - newHeight) / 2
	targetRect := image.Rect(offsetX, offsetY, offsetX+newWidth, offsetY+newHeight)

	// BiLinear is a good quality/speed balance for photos headed to 1-bit.
	xdraw.BiLinear.Scale(canvas, targetRect, ToNRGBA(buf), image.Rect(0, 0, buf.Width, buf.Height), xdraw.Src, nil)

	return FromImage(canvas)
}

// ScaledDimensions returns the largest size with the source aspect ratio
// that fits within the target. Neither dimension drops below 1.
func ScaledDimensions(srcWidth, srcHeight, targetWidth, targetHeight int) (int, int) {
	scaleX := float64(targetWidth) / float64(srcWidth)
	scaleY := float64(targetHeight) / float64(srcHeight)
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}

	newWidth := max(int(float64(srcWidth)*scale), 1)
	newHeight := max(int(float64(srcHeight)*scale), 1)
	return newWidth, newHeight
}

// ResizeToFill scales the buffer to cover the target dimensions while
// preserving aspect ratio, cropping the overflow evenly from both sides.
func ResizeToFill(buf *dither.PixelBuffer, targetWidth, targetHeight int) *dither.PixelBuffer {
	if buf == nil {
		return nil
	}

	scaleX := float64(targetWidth) / float64(buf.Width)
	scaleY := float64(targetHeight) / float64(buf.Height)
	scale := scaleX
	if scaleY > scaleX {
		scale = scaleY
	}

	newWidth := max(int(float64(buf.Width)*scale), targetWidth)
	newHeight := max(int(float64(buf.Height)*scale), targetHeight)

	resized := image.NewNRGBA(image.Rect(0, 0, newWidth, newHeight))
	xdraw.BiLinear.Scale(resized, resized.Bounds(), ToNRGBA(buf), image.Rect(0, 0, buf.Width, buf.Height), xdraw.Src, nil)

	// Cropping a subimage leaves a strided view, which FromImage copies out.
	offset := image.Pt((newWidth-targetWidth)/2, (newHeight-targetHeight)/2)
	crop := image.Rectangle{Min: offset, Max: offset.Add(image.Pt(targetWidth, targetHeight))}
	return FromImage(resized.SubImage(crop))
}
