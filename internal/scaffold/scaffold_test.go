package scaffold

import (
	"path/filepath"
	"testing"

	"github.com/aellingwood/assetgen/internal/config"
)

func TestNewConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path, err := NewConfig(dir, "yaml")
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if path != filepath.Join(dir, "assetgen.yaml") {
		t.Errorf("path = %q", path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("loading written config: %v", err)
	}
	if cfg.Icon.Size != 1024 || cfg.Background.Exponent != 0.7 {
		t.Errorf("written config does not match defaults: %+v", cfg)
	}
}

func TestNewConfig_TOML(t *testing.T) {
	dir := t.TempDir()
	path, err := NewConfig(dir, "toml")
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("loading written config: %v", err)
	}
	if cfg.Icon.Text != "Harry's" {
		t.Errorf("Icon.Text = %q; want %q", cfg.Icon.Text, "Harry's")
	}
}

func TestNewConfig_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewConfig(dir, "yaml"); err != nil {
		t.Fatal(err)
	}
	if _, err := NewConfig(dir, "yaml"); err == nil {
		t.Error("expected error when config already exists")
	}
}

func TestNewConfig_UnknownFormat(t *testing.T) {
	if _, err := NewConfig(t.TempDir(), "ini"); err == nil {
		t.Error("expected error for unknown format")
	}
}
