package watcher

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/contre95/hotfolder/src/features/hotfolder"
	"github.com/fsnotify/fsnotify"
)

// Watcher is an fsnotify-backed hotfolder.Detector. It watches a directory tree
// recursively and emits one event per path once the path has been quiet for the
// stability interval.
type Watcher struct {
	watcher   *fsnotify.Watcher
	root      string
	debouncer *debouncer
	expired   chan expiry
	eventChan chan<- hotfolder.FileEvent
	done      chan struct{}
	loop      sync.WaitGroup
	stopOnce  sync.Once
	logger    *slog.Logger
}

// NewWatcher creates a watcher that sends settled files on eventChan.
func NewWatcher(stability time.Duration, eventChan chan<- hotfolder.FileEvent) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:   watcher,
		expired:   make(chan expiry, 16),
		eventChan: eventChan,
		done:      make(chan struct{}),
		logger:    slog.Default().With("component", "watcher"),
	}
	w.debouncer = newDebouncer(stability, w.expire)
	return w, nil
}

// NewDetector adapts NewWatcher to hotfolder.DetectorFactory.
func NewDetector(stability time.Duration, eventChan chan<- hotfolder.FileEvent) (hotfolder.Detector, error) {
	w, err := NewWatcher(stability, eventChan)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Start watches root and every directory below it. The watch lives until Stop;
// ctx only aborts a start that has not happened yet.
func (w *Watcher) Start(ctx context.Context, watchPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.root = filepath.Clean(watchPath)
	if err := w.watcher.Add(w.root); err != nil {
		return err
	}
	w.addTree(w.root, false)

	w.loop.Add(1)
	go w.watchLoop()

	w.logger.Debug("File watcher started", "path", w.root, "watches", len(w.watcher.WatchList()))
	return nil
}

// Stop releases the fsnotify handle, cancels pending timers and waits for the
// event loop to exit. No event is sent after Stop returns.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn("Failed to close fsnotify watcher", "path", w.root, "error", err)
		}
		w.loop.Wait()
		w.debouncer.stop()
		w.logger.Debug("File watcher stopped", "path", w.root)
	})
}

func (w *Watcher) watchLoop() {
	defer w.loop.Done()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", "path", w.root, "error", err)

		case exp := <-w.expired:
			w.flush(exp)

		case <-w.done:
			return
		}
	}
}

// handleEvent runs on the loop goroutine, which owns the debouncer.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		if w.debouncer.cancel(event.Name) {
			w.logger.Debug("Pending path removed before settling", "path", event.Name)
		}
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Lstat(event.Name); err == nil && info.IsDir() {
			w.addTree(event.Name, true)
			return
		}
	}
	w.debouncer.schedule(event.Name)
}

func (w *Watcher) flush(exp expiry) {
	if !w.debouncer.pop(exp) {
		return
	}
	info, err := os.Lstat(exp.path)
	if errors.Is(err, fs.ErrNotExist) {
		w.logger.Debug("Suppressing settled event for missing path", "path", exp.path)
		return
	}
	if err == nil && info.IsDir() {
		return
	}

	event := hotfolder.FileEvent{Path: exp.path, Timestamp: time.Now().UTC()}
	select {
	case w.eventChan <- event:
	case <-w.done:
	}
}

// expire is called from timer goroutines and hands the expiry back to the loop.
func (w *Watcher) expire(exp expiry) {
	select {
	case w.expired <- exp:
	case <-w.done:
	}
}
