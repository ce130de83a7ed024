// Package label loads fonts and renders centered text labels.
package label

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io/fs"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// ErrFontNotFound is returned by LoadFace when the font file does not exist.
var ErrFontNotFound = errors.New("could not find font")

// LoadFace reads the TrueType or OpenType font at path and returns a face
// whose em size is size pixels.
func LoadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrFontNotFound, path)
		}
		return nil, fmt.Errorf("reading font %s: %w", path, err)
	}
	face, err := ParseFace(data, size)
	if err != nil {
		return nil, fmt.Errorf("loading font %s: %w", path, err)
	}
	return face, nil
}

// ParseFace parses raw font data into a face of the given pixel size.
func ParseFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	// At 72 DPI one point is one pixel.
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating font face: %w", err)
	}
	return face, nil
}

// DrawCentered draws text onto dst so that the middle of its advance width
// and the midpoint between the face's ascender and descender lines both sit
// on center. It returns the bounding box of the drawn glyphs.
func DrawCentered(dst draw.Image, face font.Face, text string, c color.Color, cx, cy float64) image.Rectangle {
	text = norm.NFC.String(text)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}
	advance := d.MeasureString(text)
	m := face.Metrics()

	d.Dot = fixed.Point26_6{
		X: toFixed(cx) - advance/2,
		Y: toFixed(cy) + (m.Ascent-m.Descent)/2,
	}
	bounds, _ := d.BoundString(text)
	d.DrawString(text)

	return image.Rect(
		bounds.Min.X.Floor(), bounds.Min.Y.Floor(),
		bounds.Max.X.Ceil(), bounds.Max.Y.Ceil(),
	)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
