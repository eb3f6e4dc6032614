// Backdrop texture from layered simplex noise: a warm paper tone with low
// frequency shading and a fine grain layer.

package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	opensimplex "github.com/ojrac/opensimplex-go"
)

func backgroundImage(width, height int, seed int64) *ebiten.Image {
	shade := opensimplex.NewNormalized(seed)
	grain := opensimplex.NewNormalized(seed + 1)

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// Base paper tone.
	base := color.RGBA{R: 0xf4, G: 0xec, B: 0xdc, A: 0xff}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Broad shading plus fine grain, both small deviations
			// around the base tone.
			s := shade.Eval2(float64(x)/180.0, float64(y)/180.0)
			g := grain.Eval2(float64(x)/6.0, float64(y)/6.0)
			d := (s-0.5)*18 + (g-0.5)*8

			img.SetRGBA(x, y, color.RGBA{
				R: clampByte(float64(base.R) + d),
				G: clampByte(float64(base.G) + d),
				B: clampByte(float64(base.B) + d*0.8),
				A: 0xff,
			})
		}
	}

	return ebiten.NewImageFromImage(img)
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
