// Package watch reruns a callback when any of a set of files changes.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher monitors individual files for changes and invokes a callback once
// the changes have settled for the debounce interval. The files' parent
// directories are watched, so saves that replace a file by rename are seen.
type Watcher struct {
	files    map[string]bool
	onChange func()
	debounce time.Duration
	watcher  *fsnotify.Watcher
	done     chan struct{}
	once     sync.Once
	runMu    sync.Mutex // serializes onChange
	log      *logrus.Entry
}

// New creates a Watcher for the given files. onChange is never run
// concurrently with itself.
func New(files []string, debounce time.Duration, onChange func()) *Watcher {
	set := make(map[string]bool, len(files))
	for _, f := range files {
		if abs, err := filepath.Abs(f); err == nil {
			set[abs] = true
		}
	}
	return &Watcher{
		files:    set,
		onChange: onChange,
		debounce: debounce,
		done:     make(chan struct{}),
		log:      logrus.WithField("component", "watch"),
	}
}

// Start begins watching. It blocks until Stop is called or the underlying
// watcher fails to start.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = fsw

	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if _, err := os.Stat(d); err != nil {
			// The directory may appear later; there is nothing to watch yet.
			w.log.WithField("dir", d).Debug("skipping missing directory")
			continue
		}
		if err := fsw.Add(d); err != nil {
			w.log.WithError(err).WithField("dir", d).Warn("failed to watch directory")
		}
	}

	var timer *time.Timer
	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			w.log.WithField("file", event.Name).Debug("change detected")

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.fire)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watcher error")

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return fsw.Close()
		}
	}
}

// Stop signals the watcher to stop monitoring files.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.done)
	})
}

func (w *Watcher) fire() {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	w.onChange()
}
