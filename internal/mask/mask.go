// Package mask builds single-channel alpha masks and applies them to images.
package mask

import (
	"fmt"
	"image"
)

// RoundedRect returns a w×h mask that is opaque inside a rectangle whose
// corners are replaced by quarter circles of radius r and transparent
// elsewhere. A pixel is inside when its centre is. r is clamped to half the
// shorter side; r <= 0 yields a plain opaque rectangle. The corner pixels are
// transparent only for r >= 2.
func RoundedRect(w, h, r int) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, w, h))
	if r > w/2 {
		r = w / 2
	}
	if r > h/2 {
		r = h / 2
	}
	if r < 0 {
		r = 0
	}

	fr := float64(r)
	left, right := fr, float64(w)-fr
	top, bottom := fr, float64(h)-fr
	r2 := fr * fr

	for y := 0; y < h; y++ {
		py := float64(y) + 0.5
		row := m.Pix[y*m.Stride : y*m.Stride+w]
		for x := 0; x < w; x++ {
			px := float64(x) + 0.5

			// Distance from the nearest corner centre, zero outside the corner bands.
			var dx, dy float64
			switch {
			case px < left:
				dx = left - px
			case px > right:
				dx = px - right
			}
			switch {
			case py < top:
				dy = top - py
			case py > bottom:
				dy = py - bottom
			}

			if dx*dx+dy*dy <= r2 {
				row[x] = 0xff
			}
		}
	}
	return m
}

// Apply replaces the alpha channel of dst with m. Colour channels are left
// untouched, so pixels hidden by the mask keep their RGB values.
func Apply(dst *image.NRGBA, m *image.Alpha) error {
	db, mb := dst.Bounds(), m.Bounds()
	if db.Dx() != mb.Dx() || db.Dy() != mb.Dy() {
		return fmt.Errorf("mask size %dx%d does not match image size %dx%d",
			mb.Dx(), mb.Dy(), db.Dx(), db.Dy())
	}
	for y := 0; y < db.Dy(); y++ {
		drow := dst.Pix[y*dst.Stride:]
		mrow := m.Pix[y*m.Stride:]
		for x := 0; x < db.Dx(); x++ {
			drow[x*4+3] = mrow[x]
		}
	}
	return nil
}
