// Package watcher follows a single text file and reports its content each time
// it settles after a change.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before it is re-read.
const DefaultDebounce = 150 * time.Millisecond

// Event carries the file content after a change.
type Event struct {
	Path string
	Text string
	At   time.Time
}

// Watcher monitors one file. Editors often replace files by rename, so the
// parent directory is watched and events are filtered by name.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration

	events chan Event
	errors chan error

	mu   sync.Mutex
	last string
	wg   sync.WaitGroup
}

// New creates a watcher for path. A zero debounce uses DefaultDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		path:      abs,
		debounce:  debounce,
		events:    make(chan Event, 16),
		errors:    make(chan error, 4),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns content updates. The channel closes when Start's context ends.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns watch and read errors. Errors are dropped when nobody reads.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Start reads the current content and begins watching until ctx is done.
func (w *Watcher) Start(ctx context.Context) (string, error) {
	text, err := readText(w.path)
	if err != nil {
		_ = w.fsWatcher.Close()
		return "", err
	}
	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		_ = w.fsWatcher.Close()
		return "", fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.mu.Lock()
	w.last = text
	w.mu.Unlock()

	w.wg.Add(1)
	go w.loop(ctx)
	return text, nil
}

// Wait blocks until the watch loop has exited.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()
	defer close(w.events)
	defer close(w.errors)
	defer w.fsWatcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.report(err)

		case now := <-timer.C:
			w.emit(ctx, now)
		}
	}
}

func (w *Watcher) emit(ctx context.Context, now time.Time) {
	text, err := readText(w.path)
	if err != nil {
		// Rename-based saves briefly leave no file behind.
		if os.IsNotExist(err) {
			return
		}
		w.report(err)
		return
	}
	w.mu.Lock()
	if text == w.last {
		w.mu.Unlock()
		return
	}
	w.last = text
	w.mu.Unlock()

	select {
	case w.events <- Event{Path: w.path, Text: text, At: now}:
	case <-ctx.Done():
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
