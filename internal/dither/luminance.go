package dither

import "math"

// Luminance returns Y = 0.299*R + 0.587*G + 0.114*B.
func Luminance(r, g, b uint8) float64 {
	// Explicit conversions keep each product rounded on its own so no
	// platform fuses them into a multiply-add.
	return float64(float64(r)*0.299) + float64(float64(g)*0.587) + float64(float64(b)*0.114)
}

// clampByte stores v the way a clamped byte array does: round half to even,
// then saturate to [0, 255].
func clampByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}

// clampInt saturates an accumulator value to [0, 255].
func clampInt(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

// binarize returns black for values below the threshold and white otherwise.
func binarize(below bool) uint8 {
	if below {
		return 0
	}
	return 255
}
