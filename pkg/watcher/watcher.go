// Package watcher re-runs schema generation when project source files
// change. Each change triggers a complete extraction pass; there is no
// incremental analysis.
package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gnana997/docspec/pkg/parser"
)

// Options configures change handling.
type Options struct {
	// DebounceMs groups rapid successive writes to the same file into one
	// regeneration. 0 applies the 200ms default.
	DebounceMs int
}

// DefaultOptions returns the default watch options.
func DefaultOptions() Options {
	return Options{DebounceMs: 200}
}

// Watcher watches the directories containing project files and invokes a
// callback, debounced per file, whenever a source file changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	onChange func(path string)
	options  Options
	logger   *slog.Logger

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopOnce sync.Once
}

// New creates a watcher. onChange runs on the watcher's goroutine; it must
// not block for long.
func New(onChange func(path string), options Options, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if options.DebounceMs == 0 {
		options.DebounceMs = 200
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		fsw:            fsw,
		onChange:       onChange,
		options:        options,
		logger:         logger,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Watch registers the parent directories of the given files and starts the
// event loop in a background goroutine.
func (w *Watcher) Watch(files []string) error {
	dirs := make(map[string]bool)
	for _, f := range files {
		dirs[filepath.Dir(f)] = true
	}

	for dir := range dirs {
		if err := w.fsw.Add(dir); err != nil {
			w.logger.Warn("failed to watch directory", "dir", dir, "error", err)
		}
	}

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if parser.DetectLanguage(event.Name) == parser.LanguageUnknown {
				continue
			}
			w.debounce(event.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// debounce schedules the change callback, resetting the timer while writes
// to the same file keep arriving.
func (w *Watcher) debounce(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.debounceTimers[path]; ok {
		timer.Stop()
	}

	w.debounceTimers[path] = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		func() {
			w.debounceMu.Lock()
			delete(w.debounceTimers, path)
			w.debounceMu.Unlock()

			w.logger.Debug("source file changed", "file", path)
			w.onChange(path)
		},
	)
}

// Stop shuts the watcher down. Safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		err = w.fsw.Close()
	})
	return err
}
