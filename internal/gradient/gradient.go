// Package gradient fills images with two-color gradients.
package gradient

import (
	"image"
	"image/color"
	"math"

	"github.com/aellingwood/assetgen/internal/palette"
)

// DiagonalFactor returns the position of (x, y) projected onto the diagonal
// vector (w, h), normalized so that (0, 0) maps to 0 and (w, h) maps to 1.
func DiagonalFactor(x, y, w, h int) float64 {
	fw, fh := float64(w), float64(h)
	return (float64(x)*fw + float64(y)*fh) / (fw*fw + fh*fh)
}

// DiagonalAt returns the color of pixel (x, y) in a w×h diagonal gradient
// from c1 to c2 shaped by exponent. An exponent below 1 biases the blend
// toward c2.
func DiagonalAt(x, y, w, h int, c1, c2 color.RGBA, exponent float64) color.RGBA {
	f := DiagonalFactor(x, y, w, h)
	return palette.Lerp(c1, c2, math.Pow(f, exponent))
}

// Diagonal renders a fully opaque w×h gradient running from c1 at the
// top-left corner to c2 at the bottom-right corner.
func Diagonal(w, h int, c1, c2 color.RGBA, exponent float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			c := DiagonalAt(x, y, w, h, c1, c2, exponent)
			i := x * 4
			row[i+0] = c.R
			row[i+1] = c.G
			row[i+2] = c.B
			row[i+3] = c.A
		}
	}
	return img
}

// VerticalAt returns the color of row y in a vertical gradient of height h.
// The last row stops one step short of c2.
func VerticalAt(y, h int, c1, c2 color.RGBA) color.RGBA {
	return palette.Lerp(c1, c2, float64(y)/float64(h))
}

// Vertical renders a fully opaque w×h linear gradient from c1 on the top row
// toward c2 on the bottom row.
func Vertical(w, h int, c1, c2 color.RGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := VerticalAt(y, h, c1, c2)
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			row[i+0] = c.R
			row[i+1] = c.G
			row[i+2] = c.B
			row[i+3] = c.A
		}
	}
	return img
}
