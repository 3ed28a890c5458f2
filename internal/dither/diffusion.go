package dither

// diffusionMidpoint is the fixed binarization threshold for error diffusion.
const diffusionMidpoint = 129

// tap is one error diffusion target, relative to the current pixel.
type tap struct {
	dx, dy int
	weight int
}

// kernel describes how quantization error is spread to unvisited pixels.
// Offsets are flattened as dy*width+dx with no row boundary check.
type kernel struct {
	divisor int
	taps    []tap
}

var floydSteinbergKernel = kernel{
	divisor: 16,
	taps: []tap{
		{dx: 1, dy: 0, weight: 7},
		{dx: -1, dy: 1, weight: 3},
		{dx: 0, dy: 1, weight: 5},
		{dx: 1, dy: 1, weight: 1},
	},
}

// Atkinson diffuses only 6/8 of the error.
var atkinsonKernel = kernel{
	divisor: 8,
	taps: []tap{
		{dx: 1, dy: 0, weight: 1},
		{dx: 2, dy: 0, weight: 1},
		{dx: -1, dy: 1, weight: 1},
		{dx: 0, dy: 1, weight: 1},
		{dx: 1, dy: 1, weight: 1},
		{dx: 0, dy: 2, weight: 1},
	},
}

// FloydSteinberg applies Floyd-Steinberg error diffusion with a midpoint
// of 129.
func FloydSteinberg(buf *PixelBuffer) *PixelBuffer {
	return floydSteinbergKernel.apply(buf)
}

// Atkinson applies Atkinson error diffusion with a midpoint of 129.
func Atkinson(buf *PixelBuffer) *PixelBuffer {
	return atkinsonKernel.apply(buf)
}

func (k kernel) apply(buf *PixelBuffer) *PixelBuffer {
	if buf == nil {
		return nil
	}
	lum := luminanceMap(buf)
	for l := range lum {
		v := int(lum[l])
		out := binarize(v < diffusionMidpoint)
		buf.setGray(4*l, out)
		k.spread(lum, l, buf.Width, floorDiv(v-int(out), k.divisor))
	}
	return buf
}

// spread adds the weighted error to each target of pixel l. Targets outside
// the map are skipped.
func (k kernel) spread(lum []uint8, l, width, quantErr int) {
	for _, t := range k.taps {
		idx := l + t.dy*width + t.dx
		if idx < 0 || idx >= len(lum) {
			continue
		}
		lum[idx] = clampInt(int(lum[idx]) + quantErr*t.weight)
	}
}

// luminanceMap returns the clamped luminance of every pixel in scan order.
func luminanceMap(buf *PixelBuffer) []uint8 {
	lum := make([]uint8, buf.Len())
	for l := range lum {
		lum[l] = clampByte(buf.luminanceAt(4 * l))
	}
	return lum
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
