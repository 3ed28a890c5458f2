package dither

import "math"

// bayerMatrix is indexed [x%4][y%4]. The first index is the column, which
// transposes the usual tiling; output depends on this orientation.
var bayerMatrix = [4][4]float64{
	{15, 135, 45, 165},
	{195, 75, 225, 105},
	{60, 180, 30, 150},
	{240, 120, 210, 90},
}

// Bayer applies 4x4 ordered dithering. Each pixel's luminance is averaged
// with its matrix bias, floored, and compared against threshold.
func Bayer(buf *PixelBuffer, threshold int) *PixelBuffer {
	if buf == nil {
		return nil
	}
	if buf.Width <= 0 {
		return buf
	}
	t := float64(threshold)
	for p, i := 0, 0; i+3 < len(buf.Pix); p, i = p+1, i+4 {
		x, y := p%buf.Width, p/buf.Width
		biased := math.Floor((buf.luminanceAt(i) + bayerMatrix[x%4][y%4]) / 2)
		buf.setGray(i, binarize(biased < t))
	}
	return buf
}
