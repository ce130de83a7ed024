package image

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/webp"
)

// DefaultQuality is the JPEG quality used when a generator writes .jpg output.
const DefaultQuality = 92

// Format returns the encoder name for an output path: "png", "jpeg" or
// "webp". Unknown extensions fall back to "png".
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".webp":
		return "webp"
	default:
		return "png"
	}
}

// Save encodes img to path in the format implied by its extension. The parent
// directory must already exist.
func Save(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch Format(path) {
	case "webp":
		if err := webp.Encode(f, img, webp.Options{Lossless: true, Quality: 100}); err != nil {
			return fmt.Errorf("encoding webp: %w", err)
		}
	case "jpeg":
		if err := imaging.Encode(f, img, imaging.JPEG, imaging.JPEGQuality(DefaultQuality)); err != nil {
			return fmt.Errorf("encoding jpeg: %w", err)
		}
	default:
		if err := imaging.Encode(f, img, imaging.PNG); err != nil {
			return fmt.Errorf("encoding png: %w", err)
		}
	}
	return f.Close()
}
