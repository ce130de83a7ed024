// Package icon renders the rounded application icon: a vertically graded,
// round-cornered body carrying a centered label, inset on a transparent
// square canvas.
package icon

import (
	"fmt"
	"image"
	"image/color"

	"github.com/aellingwood/assetgen/internal/config"
	"github.com/aellingwood/assetgen/internal/gradient"
	"github.com/aellingwood/assetgen/internal/label"
	"github.com/aellingwood/assetgen/internal/mask"
	"github.com/aellingwood/assetgen/internal/palette"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
)

// Layout holds the pixel dimensions derived from an IconConfig.
type Layout struct {
	Size     int // canvas side
	Margin   int // transparent border on each side
	Inner    int // body side
	Radius   int // body corner radius
	FontSize int // label em size in pixels
}

// NewLayout derives the icon geometry from cfg. Scaled values are truncated.
func NewLayout(cfg config.IconConfig) Layout {
	inner := cfg.Inner()
	return Layout{
		Size:     cfg.Size,
		Margin:   cfg.Margin,
		Inner:    inner,
		Radius:   int(float64(inner) * cfg.RadiusScale),
		FontSize: int(float64(inner) * cfg.FontScale),
	}
}

// Generate loads the label font from fontPath and renders the icon. A missing
// font is reported as label.ErrFontNotFound before anything is drawn.
func Generate(cfg config.IconConfig, fontPath string) (*image.NRGBA, error) {
	l := NewLayout(cfg)
	face, err := label.LoadFace(fontPath, float64(l.FontSize))
	if err != nil {
		return nil, err
	}
	defer face.Close()
	return Render(cfg, face)
}

// Render draws the icon with an already loaded face. The face size is used
// as is.
func Render(cfg config.IconConfig, face font.Face) (*image.NRGBA, error) {
	l := NewLayout(cfg)
	if l.Inner <= 0 {
		return nil, fmt.Errorf("margin %d leaves no room for an icon body in a %dpx canvas", l.Margin, l.Size)
	}

	top, err := palette.ParseHex(cfg.Top)
	if err != nil {
		return nil, fmt.Errorf("top color: %w", err)
	}
	bottom, err := palette.ParseHex(cfg.Bottom)
	if err != nil {
		return nil, fmt.Errorf("bottom color: %w", err)
	}
	textColor, err := palette.ParseHex(cfg.TextColor)
	if err != nil {
		return nil, fmt.Errorf("text color: %w", err)
	}

	body := gradient.Vertical(l.Inner, l.Inner, top, bottom)
	label.DrawCentered(body, face, cfg.Text, textColor, float64(l.Inner)/2, float64(l.Inner)/2)

	if err := mask.Apply(body, mask.RoundedRect(l.Inner, l.Inner, l.Radius)); err != nil {
		return nil, fmt.Errorf("rounding corners: %w", err)
	}

	canvas := imaging.New(l.Size, l.Size, color.NRGBA{})
	offset := (l.Size - l.Inner) / 2
	return imaging.Overlay(canvas, body, image.Pt(offset, offset), 1.0), nil
}
