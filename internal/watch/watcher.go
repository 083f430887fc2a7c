// Package watch regenerates output when an error table file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// DefaultDebounceInterval is the default interval to wait after the last change before regenerating.
	DefaultDebounceInterval = 100 * time.Millisecond
)

// RegenerateFunc is called when the watched file has settled after a change.
type RegenerateFunc func() error

// Watcher monitors one table file and triggers regeneration.
//
// The parent directory is watched rather than the file itself so that
// editors which save by writing a temp file and renaming it are still seen.
type Watcher struct {
	path             string
	regenerateFn     RegenerateFunc
	logger           *slog.Logger
	debounceInterval time.Duration

	watcher   *fsnotify.Watcher
	stopChan  chan struct{}
	doneChan  chan struct{}
	closeOnce sync.Once
	started   atomic.Bool

	// debounce state
	mu       sync.Mutex
	pending  *time.Timer
	gen      uint64 // bumped for every scheduled timer
	closed   bool
	inflight sync.WaitGroup // scheduled or running regenerations
}

// NewWatcher creates a watcher for path.
// logger may be nil for no logging.
func NewWatcher(path string, regenerateFn RegenerateFunc, logger *slog.Logger) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Watcher{
		path:             absPath,
		regenerateFn:     regenerateFn,
		logger:           logger,
		debounceInterval: DefaultDebounceInterval,
		watcher:          fsWatcher,
		stopChan:         make(chan struct{}),
		doneChan:         make(chan struct{}),
	}, nil
}

// SetDebounceInterval changes the debounce interval. Call before Start.
func (w *Watcher) SetDebounceInterval(d time.Duration) {
	w.debounceInterval = d
}

// Start begins watching for file changes.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Info("watching table file", "path", w.path)

	w.started.Store(true)
	go w.processEvents()

	return nil
}

// Run starts the watcher and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	w.Close()
	return nil
}

// Close stops the watcher and cleans up resources.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.stopChan)
		w.watcher.Close()

		w.mu.Lock()
		w.closed = true
		if w.pending != nil {
			if w.pending.Stop() {
				w.inflight.Done()
			}
			w.pending = nil
		}
		w.mu.Unlock()

		if w.started.Load() {
			<-w.doneChan
		}
		w.inflight.Wait()
	})
}

// processEvents handles filesystem events.
func (w *Watcher) processEvents() {
	defer close(w.doneChan)

	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// handleEvent processes a single filesystem event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}

	// Only process write events
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	w.logger.Debug("table file changed", "path", w.path, "op", event.Op.String())
	w.scheduleRegenerate()
}

// scheduleRegenerate schedules a debounced regeneration.
func (w *Watcher) scheduleRegenerate() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.pending != nil && w.pending.Stop() {
		w.inflight.Done()
	}
	w.inflight.Add(1)
	w.gen++
	gen := w.gen
	w.pending = time.AfterFunc(w.debounceInterval, func() { w.doRegenerate(gen) })
}

// doRegenerate performs the actual regeneration for the timer scheduled
// as generation gen. A newer pending timer is left in place.
func (w *Watcher) doRegenerate(gen uint64) {
	defer w.inflight.Done()

	w.mu.Lock()
	if w.gen == gen {
		w.pending = nil
	}
	w.mu.Unlock()

	if err := w.regenerateFn(); err != nil {
		w.logger.Error("regeneration failed", "path", w.path, "error", err)
		return
	}
	w.logger.Info("regenerated", "path", w.path)
}
