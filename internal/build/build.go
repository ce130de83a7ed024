// Package build orchestrates asset generation. It resolves paths against the
// project root, skips assets whose inputs have not changed, and reports
// progress to the caller's writer.
package build

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/aellingwood/assetgen/internal/background"
	"github.com/aellingwood/assetgen/internal/config"
	"github.com/aellingwood/assetgen/internal/icon"
	assetimage "github.com/aellingwood/assetgen/internal/image"
	"github.com/aellingwood/assetgen/internal/label"
	"github.com/sirupsen/logrus"
)

// Options controls the behaviour of the Builder.
type Options struct {
	Force   bool      // regenerate even when the cache says the output is current
	Verbose bool      // log timings and cache decisions
	Out     io.Writer // progress messages; os.Stdout when nil
}

// Result describes one generated (or skipped) asset.
type Result struct {
	Path     string
	Width    int
	Height   int
	Cached   bool
	Duration time.Duration
}

// Builder generates the configured assets.
type Builder struct {
	config  *config.Config
	options Options
	cache   *assetimage.Cache
	log     *logrus.Entry
}

// NewBuilder creates a Builder for cfg. If the cache is enabled but cannot be
// opened, the Builder runs without it.
func NewBuilder(cfg *config.Config, opts Options) *Builder {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	b := &Builder{
		config:  cfg,
		options: opts,
		log:     logrus.WithField("component", "build"),
	}
	if cfg.Cache.Enabled {
		cache, err := assetimage.NewCache(cfg.Resolve(cfg.Cache.Dir))
		if err != nil {
			b.log.WithError(err).Warn("generation cache unavailable; regenerating everything")
		} else {
			b.cache = cache
		}
	}
	return b
}

// All generates the background and then the icon, stopping at the first
// error.
func (b *Builder) All() ([]*Result, error) {
	var results []*Result
	bg, err := b.Background()
	if err != nil {
		return results, err
	}
	results = append(results, bg)

	ic, err := b.Icon()
	if err != nil {
		return results, err
	}
	return append(results, ic), nil
}

// Background renders the diagonal gradient background. The output directory
// is created if it does not exist.
func (b *Builder) Background() (*Result, error) {
	cfg := b.config.Background
	output := b.config.Resolve(cfg.Output)

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paramHash, err := assetimage.HashParams(cfg)
	if err != nil {
		return nil, err
	}
	if b.upToDate(output, paramHash) {
		return &Result{Path: output, Width: cfg.Width, Height: cfg.Height, Cached: true}, nil
	}

	start := time.Now()
	fmt.Fprintln(b.options.Out, "Generating gradient... this might take a few seconds.")

	img, err := background.Generate(cfg)
	if err != nil {
		return nil, fmt.Errorf("generating background: %w", err)
	}
	if err := assetimage.Save(img, output); err != nil {
		return nil, fmt.Errorf("writing %s: %w", output, err)
	}
	b.remember(output, paramHash)

	fmt.Fprintf(b.options.Out, "Gradient background generated at %s\n", output)
	return b.finish(output, cfg.Width, cfg.Height, start), nil
}

// Icon renders the rounded application icon. Unlike Background it does not
// create the output directory. A missing font file is reported as
// label.ErrFontNotFound.
func (b *Builder) Icon() (*Result, error) {
	cfg := b.config.Icon
	output := b.config.Resolve(cfg.Output)
	fontPath := b.config.Resolve(cfg.Font)

	fontHash, err := assetimage.HashFile(fontPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", label.ErrFontNotFound, fontPath)
		}
		return nil, fmt.Errorf("reading font %s: %w", fontPath, err)
	}

	paramHash, err := assetimage.HashParams(cfg, fontHash)
	if err != nil {
		return nil, err
	}
	if b.upToDate(output, paramHash) {
		return &Result{Path: output, Width: cfg.Size, Height: cfg.Size, Cached: true}, nil
	}

	start := time.Now()
	layout := icon.NewLayout(cfg)
	fmt.Fprintf(b.options.Out, "Generating icon body (%dx%d) with %dpx radius...\n",
		layout.Inner, layout.Inner, layout.Radius)

	face, err := label.LoadFace(fontPath, float64(layout.FontSize))
	if err != nil {
		return nil, err
	}
	defer face.Close()

	fmt.Fprintf(b.options.Out, "Drawing text '%s'...\n", cfg.Text)
	img, err := icon.Render(cfg, face)
	if err != nil {
		return nil, fmt.Errorf("generating icon: %w", err)
	}
	if err := assetimage.Save(img, output); err != nil {
		return nil, fmt.Errorf("writing %s: %w", output, err)
	}
	b.remember(output, paramHash)

	fmt.Fprintf(b.options.Out, "Success! App icon created at: %s\n", output)
	return b.finish(output, cfg.Size, cfg.Size, start), nil
}

// upToDate reports whether output can be reused, printing a notice when it
// can.
func (b *Builder) upToDate(output, paramHash string) bool {
	log := b.log.WithField("output", output)
	if b.options.Force || b.cache == nil {
		return false
	}
	if !b.cache.Lookup(output, paramHash) {
		log.WithField("params", paramHash[:12]).Debug("cache miss")
		return false
	}
	log.Debug("cache hit")
	fmt.Fprintf(b.options.Out, "Up to date: %s\n", output)
	return true
}

// remember records output in the cache. Failures are logged, not returned.
func (b *Builder) remember(output, paramHash string) {
	if b.cache == nil {
		return
	}
	if err := b.cache.Store(output, paramHash); err != nil {
		b.log.WithError(err).Warn("could not update generation cache")
	}
}

func (b *Builder) finish(output string, w, h int, start time.Time) *Result {
	r := &Result{Path: output, Width: w, Height: h, Duration: time.Since(start)}
	if b.options.Verbose {
		b.log.WithFields(logrus.Fields{
			"output":   output,
			"size":     fmt.Sprintf("%dx%d", w, h),
			"duration": r.Duration.Round(time.Millisecond),
		}).Info("asset written")
	}
	return r
}
