// Package config handles loading, validating, and managing asset generation
// configuration for assetgen.
package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aellingwood/assetgen/internal/palette"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for an assetgen project.
type Config struct {
	Root       string           `yaml:"root"       toml:"root"       mapstructure:"root"`
	Background BackgroundConfig `yaml:"background" toml:"background" mapstructure:"background"`
	Icon       IconConfig       `yaml:"icon"       toml:"icon"       mapstructure:"icon"`
	Cache      CacheConfig      `yaml:"cache"      toml:"cache"      mapstructure:"cache"`
}

// BackgroundConfig controls the diagonal gradient background.
type BackgroundConfig struct {
	Width    int     `yaml:"width"    toml:"width"    mapstructure:"width"`
	Height   int     `yaml:"height"   toml:"height"   mapstructure:"height"`
	Start    string  `yaml:"start"    toml:"start"    mapstructure:"start"`
	End      string  `yaml:"end"      toml:"end"      mapstructure:"end"`
	Exponent float64 `yaml:"exponent" toml:"exponent" mapstructure:"exponent"`
	Output   string  `yaml:"output"   toml:"output"   mapstructure:"output"`
}

// IconConfig controls the rounded application icon.
type IconConfig struct {
	Size        int     `yaml:"size"        toml:"size"        mapstructure:"size"`
	Margin      int     `yaml:"margin"      toml:"margin"      mapstructure:"margin"`
	Top         string  `yaml:"top"         toml:"top"         mapstructure:"top"`
	Bottom      string  `yaml:"bottom"      toml:"bottom"      mapstructure:"bottom"`
	Text        string  `yaml:"text"        toml:"text"        mapstructure:"text"`
	TextColor   string  `yaml:"textColor"   toml:"textColor"   mapstructure:"textColor"`
	Font        string  `yaml:"font"        toml:"font"        mapstructure:"font"`
	FontScale   float64 `yaml:"fontScale"   toml:"fontScale"   mapstructure:"fontScale"`
	RadiusScale float64 `yaml:"radiusScale" toml:"radiusScale" mapstructure:"radiusScale"`
	Output      string  `yaml:"output"      toml:"output"      mapstructure:"output"`
}

// CacheConfig controls the generation cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled" mapstructure:"enabled"`
	Dir     string `yaml:"dir"     toml:"dir"     mapstructure:"dir"`
}

// Inner returns the side length of the icon body inside the margin.
func (c IconConfig) Inner() int {
	return c.Size - 2*c.Margin
}

// Default returns a Config populated with the stock asset settings.
func Default() *Config {
	return &Config{
		Root: ".",
		Background: BackgroundConfig{
			Width:    4000,
			Height:   4000,
			Start:    "#dfadb9",
			End:      "#dd3e88",
			Exponent: 0.7,
			Output:   filepath.Join("src", "renderer", "src", "assets", "images", "background.png"),
		},
		Icon: IconConfig{
			Size:        1024,
			Margin:      80,
			Top:         "#dfadb9",
			Bottom:      "#dd3e88",
			Text:        "Harry's",
			TextColor:   "#ffffff",
			Font:        filepath.Join("src", "renderer", "src", "assets", "fonts", "dynapuff.bold.ttf"),
			FontScale:   0.225,
			RadiusScale: 0.225,
			Output:      filepath.Join("resources", "icon_rounded.png"),
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     filepath.Join(".assetgen", "cache"),
		},
	}
}

// Load reads a configuration file from configPath (YAML or TOML) and returns
// a Config with defaults applied first and file values overlaid on top.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	v := viper.New()

	ext := strings.TrimPrefix(filepath.Ext(configPath), ".")
	switch ext {
	case "toml":
		v.SetConfigType("toml")
	default:
		v.SetConfigType("yaml")
	}

	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the Config for values the generators cannot work with.
func (c *Config) Validate() error {
	b := c.Background
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("config: background size must be positive (got %dx%d)", b.Width, b.Height)
	}
	if b.Exponent <= 0 {
		return fmt.Errorf("config: background exponent must be positive (got %g)", b.Exponent)
	}
	if err := validateColors("background", b.Start, b.End); err != nil {
		return err
	}
	if err := validateOutput("background", b.Output, false); err != nil {
		return err
	}

	i := c.Icon
	if i.Size <= 0 {
		return fmt.Errorf("config: icon size must be positive (got %d)", i.Size)
	}
	if i.Margin < 0 {
		return fmt.Errorf("config: icon margin must not be negative (got %d)", i.Margin)
	}
	if i.Inner() <= 0 {
		return fmt.Errorf("config: icon margin %d leaves no room for a body in a %dpx canvas", i.Margin, i.Size)
	}
	if err := validateColors("icon", i.Top, i.Bottom, i.TextColor); err != nil {
		return err
	}
	if strings.TrimSpace(i.Text) == "" {
		return fmt.Errorf("config: icon text is required")
	}
	if i.Font == "" {
		return fmt.Errorf("config: icon font is required")
	}
	if i.FontScale <= 0 || i.FontScale > 1 {
		return fmt.Errorf("config: icon fontScale must be in (0, 1] (got %g)", i.FontScale)
	}
	if i.RadiusScale <= 0 || i.RadiusScale > 1 {
		return fmt.Errorf("config: icon radiusScale must be in (0, 1] (got %g)", i.RadiusScale)
	}
	if err := validateOutput("icon", i.Output, true); err != nil {
		return err
	}

	if c.Cache.Enabled && c.Cache.Dir == "" {
		return fmt.Errorf("config: cache dir is required when the cache is enabled")
	}
	return nil
}

func validateColors(section string, hexes ...string) error {
	for _, h := range hexes {
		if _, err := palette.ParseHex(h); err != nil {
			return fmt.Errorf("config: %s: %w", section, err)
		}
	}
	return nil
}

// validateOutput checks that the output path names a format we can encode.
// Icons need an alpha channel, so JPEG is rejected for them.
func validateOutput(section, path string, needsAlpha bool) error {
	if path == "" {
		return fmt.Errorf("config: %s output is required", section)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".webp":
		return nil
	case ".jpg", ".jpeg":
		if needsAlpha {
			return fmt.Errorf("config: %s output %q must be .png or .webp to keep transparency", section, path)
		}
		return nil
	default:
		return fmt.Errorf("config: %s output %q has an unsupported extension", section, path)
	}
}

// Resolve returns path joined to the project root unless it is already
// absolute.
func (c *Config) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

// WithOverrides applies CLI flag overrides to the config. Known keys are
// mapped to their corresponding struct fields. The modified config is returned
// for convenient chaining.
func (c *Config) WithOverrides(overrides map[string]any) *Config {
	for key, val := range overrides {
		switch key {
		case "root":
			if s, ok := val.(string); ok && s != "" {
				c.Root = s
			}
		case "cache":
			if b, ok := val.(bool); ok {
				c.Cache.Enabled = b
			}
		case "text":
			if s, ok := val.(string); ok && s != "" {
				c.Icon.Text = s
			}
		case "font":
			if s, ok := val.(string); ok && s != "" {
				c.Icon.Font = s
			}
		}
	}
	return c
}

// Encode writes the config to w as "yaml" or "toml".
func (c *Config) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case "toml":
		if err := toml.NewEncoder(w).Encode(c); err != nil {
			return fmt.Errorf("encoding toml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown config format %q (want yaml or toml)", format)
	}
}
