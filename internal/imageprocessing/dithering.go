package imageprocessing

import (
	"image/color"

	ditherlib "github.com/makeworld-the-better-one/dither/v2"
	"github.com/rmitchellscott/monodither/internal/dither"
)

// Names of the methods backed by the dither library.
const (
	MethodStucki            = "stucki"
	MethodBurkes            = "burkes"
	MethodSierra            = "sierra"
	MethodSierraLite        = "sierra-lite"
	MethodJarvisJudiceNinke = "jarvis-judice-ninke"
	MethodBayer8x8          = "bayer-8x8"
)

func init() {
	registerDiffusion(MethodStucki, "Stucki error diffusion", ditherlib.Stucki)
	registerDiffusion(MethodBurkes, "Burkes error diffusion", ditherlib.Burkes)
	registerDiffusion(MethodSierra, "Sierra (three row) error diffusion", ditherlib.Sierra)
	registerDiffusion(MethodSierraLite, "Sierra Lite error diffusion", ditherlib.SierraLite)
	registerDiffusion(MethodJarvisJudiceNinke, "Jarvis, Judice and Ninke error diffusion", ditherlib.JarvisJudiceNinke)

	dither.Register(dither.Method{
		Name:        MethodBayer8x8,
		Description: "8x8 Bayer ordered dithering in linear RGB",
		Binary:      true,
		Apply: func(buf *dither.PixelBuffer, _ dither.Options) *dither.PixelBuffer {
			d := ditherlib.NewDitherer(BlackWhitePalette)
			d.Mapper = ditherlib.Bayer(8, 8, 1.0)
			return applyDitherer(buf, d)
		},
	})
}

func registerDiffusion(name, description string, matrix ditherlib.ErrorDiffusionMatrix) {
	dither.Register(dither.Method{
		Name:        name,
		Description: description,
		Binary:      true,
		Apply: func(buf *dither.PixelBuffer, _ dither.Options) *dither.PixelBuffer {
			d := ditherlib.NewDitherer(BlackWhitePalette)
			d.Matrix = matrix
			return applyDitherer(buf, d)
		},
	})
}

// applyDitherer runs a library ditherer over buf and writes the result back
// into its color channels, leaving alpha alone.
func applyDitherer(buf *dither.PixelBuffer, d *ditherlib.Ditherer) *dither.PixelBuffer {
	if buf == nil {
		return nil
	}

	paletted := d.DitherPaletted(opaqueNRGBA(buf))
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			v := color.GrayModel.Convert(paletted.At(x, y)).(color.Gray).Y
			if v >= 128 {
				v = 255
			} else {
				v = 0
			}
			i := buf.PixOffset(x, y)
			buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2] = v, v, v
		}
	}
	return buf
}
