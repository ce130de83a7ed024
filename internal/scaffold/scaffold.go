// Package scaffold creates starter files for a new assetgen project.
package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aellingwood/assetgen/internal/config"
)

// ConfigFileName returns the starter config file name for format ("yaml" or
// "toml").
func ConfigFileName(format string) string {
	if format == "toml" {
		return "assetgen.toml"
	}
	return "assetgen.yaml"
}

// NewConfig writes the default configuration into dir in the given format
// and returns the path written. It refuses to overwrite an existing file.
func NewConfig(dir, format string) (string, error) {
	path := filepath.Join(dir, ConfigFileName(format))
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}

	var buf bytes.Buffer
	if err := config.Default().Encode(&buf, format); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
