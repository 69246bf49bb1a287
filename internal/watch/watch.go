// Package watch notifies the window when projects appear, disappear or change
// under the base path.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses bursts of events (a template write, a git checkout)
// into one refresh.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches the base path and each language bucket one level deep.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	basePath string
	debounce time.Duration
	onChange func()
	logger   *zap.Logger
	hidden   bool
	watched  map[string]bool
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a Watcher that calls onChange after disk activity under basePath.
// onChange runs on the watcher goroutine.
func New(basePath string, debounce time.Duration, onChange func(), logger *zap.Logger) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback is required")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		watcher:  fw,
		basePath: basePath,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		watched:  make(map[string]bool),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetShowHidden makes dot-prefixed buckets part of the watch set. Call it
// before Start.
func (w *Watcher) SetShowHidden(show bool) {
	w.mu.Lock()
	w.hidden = show
	w.mu.Unlock()
}

// Start adds the base path and existing buckets to the watch set and begins
// delivering events. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.add(w.basePath); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return fmt.Errorf("failed to watch %q: %w", w.basePath, err)
	}

	entries, err := os.ReadDir(w.basePath)
	if err != nil {
		w.logger.Warn("Failed to list language folders", zap.String("path", w.basePath), zap.Error(err))
	}
	for _, entry := range entries {
		if entry.IsDir() && w.isBucket(entry.Name()) {
			w.addBucket(filepath.Join(w.basePath, entry.Name()))
		}
	}

	go w.run(ctx)
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

// Watched returns the directories currently in the watch set.
func (w *Watcher) Watched() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, 0, len(w.watched))
	for path := range w.watched {
		out = append(out, path)
	}
	return out
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("File watcher error", zap.Error(err))

		case <-timer.C:
			w.onChange()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	w.logger.Debug("Disk change", zap.String("path", event.Name), zap.String("op", event.Op.String()))

	// New language buckets appear directly under the base path.
	if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == filepath.Clean(w.basePath) && w.isBucket(filepath.Base(event.Name)) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.addBucket(event.Name)
		}
	}
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.mu.Lock()
		delete(w.watched, event.Name)
		w.mu.Unlock()
	}
}

func (w *Watcher) isBucket(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hidden || !strings.HasPrefix(name, ".")
}

func (w *Watcher) addBucket(path string) {
	if err := w.add(path); err != nil {
		w.logger.Warn("Failed to watch language folder", zap.String("path", path), zap.Error(err))
	}
}

func (w *Watcher) add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watched[path] {
		return nil
	}
	if err := w.watcher.Add(path); err != nil {
		return err
	}
	w.watched[path] = true
	return nil
}
