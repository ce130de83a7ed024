package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcher_Debouncing(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "assetgen.yaml")
	if err := os.WriteFile(testFile, []byte("initial"), 0o644); err != nil {
		t.Fatal(err)
	}

	var callCount atomic.Int32
	w := New([]string{testFile}, 100*time.Millisecond, func() {
		callCount.Add(1)
	})

	go func() {
		if err := w.Start(); err != nil {
			t.Logf("watcher start error: %v", err)
		}
	}()

	// Give watcher time to start.
	time.Sleep(50 * time.Millisecond)

	for i := range 5 {
		if err := os.WriteFile(testFile, fmt.Appendf(nil, "change %d", i), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(300 * time.Millisecond)
	w.Stop()

	count := callCount.Load()
	if count < 1 {
		t.Error("expected at least 1 callback invocation")
	}
	if count > 2 {
		t.Errorf("expected debounced callbacks (1-2), got %d", count)
	}
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "font.ttf")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(watched, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var callCount atomic.Int32
	w := New([]string{watched}, 50*time.Millisecond, func() {
		callCount.Add(1)
	})
	go func() { _ = w.Start() }()
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(other, []byte("unrelated"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	w.Stop()

	if n := callCount.Load(); n != 0 {
		t.Errorf("callbacks = %d; want 0 for unrelated file", n)
	}
}

func TestWatcher_NonexistentPaths(t *testing.T) {
	w := New([]string{"/nonexistent/path/that/does/not/exist/assetgen.yaml"}, 100*time.Millisecond, func() {})

	go func() {
		_ = w.Start()
	}()

	time.Sleep(50 * time.Millisecond)
	w.Stop()
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w := New(nil, 100*time.Millisecond, func() {})

	go func() {
		_ = w.Start()
	}()

	time.Sleep(50 * time.Millisecond)

	w.Stop()
	w.Stop()
}
