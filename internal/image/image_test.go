package image

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gen2brain/webp"
)

// newTestImage returns a w×h image with a transparent left half and an
// opaque right half.
func newTestImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := uint8(255)
			if x < w/2 {
				a = 0
			}
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: a})
		}
	}
	return img
}

// writeFile writes data to path, failing the test on error.
func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

// ---------------------------------------------------------------
// Cache tests
// ---------------------------------------------------------------

func TestNewCache_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	c, err := NewCache(cacheDir)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	if c.manifest.Version != cacheManifestVersion {
		t.Errorf("version = %q; want %q", c.manifest.Version, cacheManifestVersion)
	}
	if len(c.manifest.Entries) != 0 {
		t.Errorf("entries = %d; want 0", len(c.manifest.Entries))
	}
	if _, err := os.Stat(cacheDir); err != nil {
		t.Errorf("cache dir not created: %v", err)
	}
}

func TestNewCache_LoadExisting(t *testing.T) {
	dir := t.TempDir()
	m := CacheManifest{
		Version: cacheManifestVersion,
		Entries: map[string]*CacheEntry{
			"resources/icon.png": {ParamHash: "abc", OutputHash: "def"},
		},
	}
	data, _ := json.MarshalIndent(m, "", "  ")
	writeFile(t, filepath.Join(dir, "manifest.json"), data)

	c, err := NewCache(dir)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	if len(c.manifest.Entries) != 1 {
		t.Errorf("entries = %d; want 1", len(c.manifest.Entries))
	}
}

func TestNewCache_CorruptManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "manifest.json"), []byte("{bad json"))

	c, err := NewCache(dir)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	if len(c.manifest.Entries) != 0 {
		t.Errorf("entries = %d; want 0 (fresh start)", len(c.manifest.Entries))
	}
}

func TestNewCache_VersionMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "manifest.json"),
		[]byte(`{"version":"0","entries":{"a.png":{"paramHash":"x","outputHash":"y"}}}`))

	c, err := NewCache(dir)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	if len(c.manifest.Entries) != 0 {
		t.Errorf("entries = %d; want 0 (fresh start)", len(c.manifest.Entries))
	}
}

func TestCache_LookupMiss(t *testing.T) {
	c, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if c.Lookup("nonexistent.png", "hash") {
		t.Error("expected cache miss")
	}
}

func TestCache_StoreAndLookup(t *testing.T) {
	dir := t.TempDir()
	c, err := NewCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "bg.png")
	writeFile(t, out, []byte("fake png"))

	if err := c.Store(out, "params1"); err != nil {
		t.Fatal(err)
	}
	if !c.Lookup(out, "params1") {
		t.Fatal("expected cache hit")
	}

	// A fresh Cache reads the persisted manifest.
	c2, err := NewCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	if !c2.Lookup(out, "params1") {
		t.Error("expected cache hit after reload")
	}
}

func TestCache_SaveManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := NewCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SaveManifest(); err != nil {
		t.Fatalf("SaveManifest: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	var m CacheManifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("manifest is not JSON: %v", err)
	}
	if m.Version != cacheManifestVersion {
		t.Errorf("Version = %q; want %q", m.Version, cacheManifestVersion)
	}
	if len(m.Entries) != 0 {
		t.Errorf("Entries = %d; want 0", len(m.Entries))
	}
}

func TestCache_InvalidateOnParamChange(t *testing.T) {
	dir := t.TempDir()
	c, err := NewCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "bg.png")
	writeFile(t, out, []byte("x"))
	_ = c.Store(out, "old")

	if c.Lookup(out, "new") {
		t.Error("expected cache miss on parameter change")
	}
}

func TestCache_InvalidateOnOutputChange(t *testing.T) {
	dir := t.TempDir()
	c, err := NewCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "bg.png")
	writeFile(t, out, []byte("original"))
	_ = c.Store(out, "p")

	writeFile(t, out, []byte("edited by hand"))
	if c.Lookup(out, "p") {
		t.Error("expected cache miss after output was modified")
	}

	if err := os.Remove(out); err != nil {
		t.Fatal(err)
	}
	if c.Lookup(out, "p") {
		t.Error("expected cache miss after output was deleted")
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	writeFile(t, path, []byte("hello"))

	h, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	// SHA-256 of "hello".
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if h != want {
		t.Errorf("HashFile = %q; want %q", h, want)
	}
}

func TestHashParams(t *testing.T) {
	type params struct {
		Width int
		Start string
	}
	a, err := HashParams(params{4000, "#dfadb9"}, "fonthash")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := HashParams(params{4000, "#dfadb9"}, "fonthash")
	c, _ := HashParams(params{4001, "#dfadb9"}, "fonthash")
	d, _ := HashParams(params{4000, "#dfadb9"}, "otherfont")

	if a != b {
		t.Error("identical parameters hashed differently")
	}
	if a == c || a == d {
		t.Error("different parameters hashed identically")
	}
}

// ---------------------------------------------------------------
// Encoding tests
// ---------------------------------------------------------------

func TestFormat(t *testing.T) {
	tests := map[string]string{
		"a/background.png": "png",
		"icon.PNG":         "png",
		"photo.jpg":        "jpeg",
		"photo.JPEG":       "jpeg",
		"bg.webp":          "webp",
		"noext":            "png",
	}
	for in, want := range tests {
		if got := Format(in); got != want {
			t.Errorf("Format(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestSave_PNGKeepsAlpha(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	if err := Save(newTestImage(8, 4), path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("left alpha = %d; want 0", a)
	}
	if _, _, _, a := img.At(7, 0).RGBA(); a != 0xffff {
		t.Errorf("right alpha = %d; want 0xffff", a)
	}
}

func TestSave_JPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.jpg")
	if err := Save(newTestImage(16, 16), path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := jpeg.Decode(f)
	if err != nil {
		t.Fatalf("decoding jpeg: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("bounds = %v; want 16x16", b)
	}
}

func TestSave_WebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.webp")
	if err := Save(newTestImage(8, 8), path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := webp.Decode(f)
	if err != nil {
		t.Fatalf("decoding webp: %v", err)
	}
	if _, _, _, a := img.At(7, 7).RGBA(); a != 0xffff {
		t.Errorf("opaque pixel alpha = %d; want 0xffff", a)
	}
	if _, _, _, a := img.At(0, 7).RGBA(); a != 0 {
		t.Errorf("transparent pixel alpha = %d; want 0", a)
	}
}

func TestSave_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "icon.png")
	if err := Save(newTestImage(2, 2), path); err == nil {
		t.Error("expected error when the output directory does not exist")
	}
}
