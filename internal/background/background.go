// Package background renders the application's desktop background: a
// diagonal two-color gradient biased toward the end color.
package background

import (
	"fmt"
	"image"

	"github.com/aellingwood/assetgen/internal/config"
	"github.com/aellingwood/assetgen/internal/gradient"
	"github.com/aellingwood/assetgen/internal/palette"
)

// Generate renders the background described by cfg. The result is fully
// opaque.
func Generate(cfg config.BackgroundConfig) (*image.RGBA, error) {
	start, err := palette.ParseHex(cfg.Start)
	if err != nil {
		return nil, fmt.Errorf("start color: %w", err)
	}
	end, err := palette.ParseHex(cfg.End)
	if err != nil {
		return nil, fmt.Errorf("end color: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid background size %dx%d", cfg.Width, cfg.Height)
	}
	return gradient.Diagonal(cfg.Width, cfg.Height, start, end, cfg.Exponent), nil
}
