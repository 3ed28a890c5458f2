// Package dither converts RGBA pixel buffers into 1-bit black and white
// buffers.
//
// All transforms operate in place on a PixelBuffer and return the same
// pointer. The alpha channel is never read or written. The error diffusion
// methods walk the buffer as one flat array, so diffused error wraps from the
// end of a row onto the start of the next one; writes that fall past the end
// of the buffer are dropped.
package dither
