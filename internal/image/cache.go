// Package image encodes generated assets and keeps a build cache so that
// unchanged assets are not regenerated.
package image

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// cacheManifestVersion is bumped when the cache format changes.
const cacheManifestVersion = "1"

// Cache records which parameters produced each generated asset so that a
// rerun with identical inputs can be skipped. All methods are safe for
// concurrent use.
type Cache struct {
	mu       sync.Mutex
	dir      string        // e.g. .assetgen/cache/
	manifest CacheManifest // loaded from manifest.json
}

// CacheManifest is the top-level structure persisted as manifest.json.
type CacheManifest struct {
	Version string                 `json:"version"`
	Entries map[string]*CacheEntry `json:"entries"` // keyed by output path
}

// CacheEntry records the generation state of a single output file.
type CacheEntry struct {
	ParamHash  string `json:"paramHash"`  // SHA-256 of everything that shapes the output
	OutputHash string `json:"outputHash"` // SHA-256 of the written file
}

// NewCache creates a Cache rooted at cacheDir. If a manifest.json already
// exists there it is loaded; otherwise an empty manifest is initialised.
func NewCache(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	c := &Cache{
		dir: cacheDir,
		manifest: CacheManifest{
			Version: cacheManifestVersion,
			Entries: make(map[string]*CacheEntry),
		},
	}

	data, err := os.ReadFile(c.manifestPath())
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading cache manifest: %w", err)
	}

	var m CacheManifest
	if err := json.Unmarshal(data, &m); err != nil {
		// Corrupt manifest — start fresh.
		return c, nil
	}
	if m.Version != cacheManifestVersion {
		return c, nil
	}
	if m.Entries == nil {
		m.Entries = make(map[string]*CacheEntry)
	}
	c.manifest = m
	return c, nil
}

// Lookup reports whether output was last generated from paramHash and the
// file on disk is still the one that was written.
func (c *Cache) Lookup(output, paramHash string) bool {
	c.mu.Lock()
	entry, ok := c.manifest.Entries[output]
	c.mu.Unlock()
	if !ok || entry.ParamHash != paramHash {
		return false
	}
	h, err := HashFile(output)
	if err != nil {
		return false
	}
	return h == entry.OutputHash
}

// Store records that output was generated from paramHash and persists the
// manifest.
func (c *Cache) Store(output, paramHash string) error {
	h, err := HashFile(output)
	if err != nil {
		return fmt.Errorf("hashing %s: %w", output, err)
	}
	c.mu.Lock()
	c.manifest.Entries[output] = &CacheEntry{
		ParamHash:  paramHash,
		OutputHash: h,
	}
	c.mu.Unlock()
	return c.SaveManifest()
}

// SaveManifest writes the current manifest to manifest.json in the cache
// directory.
func (c *Cache) SaveManifest() error {
	c.mu.Lock()
	data, err := json.MarshalIndent(c.manifest, "", "  ")
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("marshalling cache manifest: %w", err)
	}
	return os.WriteFile(c.manifestPath(), data, 0o644)
}

func (c *Cache) manifestPath() string {
	return filepath.Join(c.dir, "manifest.json")
}

// HashFile computes the SHA-256 hex digest of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// HashParams computes a SHA-256 hex digest over the JSON encoding of each
// value in order.
func HashParams(values ...any) (string, error) {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			return "", fmt.Errorf("hashing parameters: %w", err)
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
