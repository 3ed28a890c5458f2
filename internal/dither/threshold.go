package dither

// Threshold sets each pixel to black when its luminance is strictly below
// threshold and to white otherwise. Pixels are decided independently.
func Threshold(buf *PixelBuffer, threshold int) *PixelBuffer {
	if buf == nil {
		return nil
	}
	t := float64(threshold)
	for i := 0; i+3 < len(buf.Pix); i += 4 {
		buf.setGray(i, binarize(buf.luminanceAt(i) < t))
	}
	return buf
}
