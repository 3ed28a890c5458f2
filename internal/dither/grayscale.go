package dither

// Grayscale replaces the color channels of every pixel with its luminance.
func Grayscale(buf *PixelBuffer) *PixelBuffer {
	if buf == nil {
		return nil
	}
	for i := 0; i+3 < len(buf.Pix); i += 4 {
		buf.setGray(i, clampByte(buf.luminanceAt(i)))
	}
	return buf
}
