// Package watch re-runs a callback whenever watched résumé files change.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"resumeaudit/internal/errors"
)

// DefaultDebounceDelay is used when no delay is configured
const DefaultDebounceDelay = 500 * time.Millisecond

// ChangeFunc receives the files whose content changed, in watch order
type ChangeFunc func(changed []string)

type fileState struct {
	modTime time.Time
	size    int64
}

// Watcher watches a set of files and reports debounced changes
type Watcher struct {
	mu sync.Mutex

	files     []string
	lastState map[string]fileState
	pending   map[string]struct{}

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	changeChan chan struct{}
	done       chan struct{}

	onChange ChangeFunc
	logger   *errors.Logger

	running bool
}

// New creates a watcher for files. Paths are made absolute so events from
// the file and from its directory match the same entry.
func New(files []string, debounceDelay time.Duration, onChange ChangeFunc, logger *errors.Logger) (*Watcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if onChange == nil {
		return nil, fmt.Errorf("change callback is required")
	}
	if debounceDelay <= 0 {
		debounceDelay = DefaultDebounceDelay
	}

	abs := make([]string, 0, len(files))
	for _, f := range files {
		p, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		if !slices.Contains(abs, p) {
			abs = append(abs, p)
		}
	}

	return &Watcher{
		files:         abs,
		lastState:     make(map[string]fileState),
		pending:       make(map[string]struct{}),
		debounceDelay: debounceDelay,
		onChange:      onChange,
		logger:        logger,
	}, nil
}

// Start begins watching. It returns once the watches are registered.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("watcher is already running")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	w.fsWatcher = fsWatcher

	for _, file := range w.files {
		if state, ok := statFile(file); ok {
			w.lastState[file] = state
		}
	}

	dirs := make([]string, 0, len(w.files))
	for _, file := range w.files {
		if dir := filepath.Dir(file); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	// Directories rather than files, so atomic replace-by-rename is seen
	for _, dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			w.closeWatcher()
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	w.stopChan = make(chan struct{})
	w.changeChan = make(chan struct{}, 1)
	w.done = make(chan struct{})
	w.running = true
	go w.watchLoop(fsWatcher, w.stopChan, w.done)

	w.logger.Info("File watcher started", "files", w.files, "debounce_delay", w.debounceDelay)
	return nil
}

func (w *Watcher) closeWatcher() {
	if w.fsWatcher == nil {
		return
	}
	if err := w.fsWatcher.Close(); err != nil {
		w.logger.LogError(err, "Failed to close file watcher")
	}
	w.fsWatcher = nil
}

// Stop stops watching and waits for the event loop to exit
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	close(w.stopChan)
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.closeWatcher()
	w.running = false
	done := w.done
	w.mu.Unlock()

	<-done
	w.logger.Info("File watcher stopped")
	return nil
}

// IsRunning returns whether the watcher is currently running
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Files returns the absolute paths being watched
func (w *Watcher) Files() []string {
	return slices.Clone(w.files)
}

func (w *Watcher) watchLoop(fsWatcher *fsnotify.Watcher, stop, done chan struct{}) {
	defer close(done)
	for {
		select {
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			if w.isRelevant(event) {
				w.schedule(filepath.Clean(event.Name))
			}

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.LogError(err, "File watcher error")

		case <-w.changeChan:
			if changed := w.collectChanged(); len(changed) > 0 {
				w.logger.Debug("Watched files changed", "files", changed)
				w.onChange(changed)
			}

		case <-stop:
			return
		}
	}
}

func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if !slices.Contains(w.files, filepath.Clean(event.Name)) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) schedule(file string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[file] = struct{}{}
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, func() {
		select {
		case w.changeChan <- struct{}{}:
		default: // already queued
		}
	})
}

// collectChanged drains the pending set and keeps the files whose size or
// modification time moved. Missing files are skipped until they reappear.
func (w *Watcher) collectChanged() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var changed []string
	for _, file := range w.files {
		if _, ok := w.pending[file]; !ok {
			continue
		}
		delete(w.pending, file)

		state, ok := statFile(file)
		if !ok {
			delete(w.lastState, file)
			continue
		}
		if last, seen := w.lastState[file]; seen && last == state {
			continue
		}
		w.lastState[file] = state
		changed = append(changed, file)
	}
	return changed
}

func statFile(file string) (fileState, bool) {
	info, err := os.Stat(file)
	if err != nil {
		return fileState{}, false
	}
	return fileState{modTime: info.ModTime(), size: info.Size()}, true
}
