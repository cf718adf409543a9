package hotfolder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const defaultForwardTimeout = 10 * time.Second

// Priority is the processing priority attached to an ingestion request.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// IngestRequest is submitted to the Processing Engine for every accepted event.
type IngestRequest struct {
	Path     string   `json:"path"`
	FolderID string   `json:"folder_id"`
	Priority Priority `json:"priority"`
}

// Engine accepts files for processing.
type Engine interface {
	Submit(ctx context.Context, req IngestRequest) error
}

// Notifier publishes events to live observers.
type Notifier interface {
	Publish(ctx context.Context, event WatcherEvent) error
}

// Forwarder hands accepted events to downstream collaborators.
type Forwarder interface {
	Forward(event WatcherEvent)
}

// ForwarderOptions controls EventForwarder behavior.
type ForwarderOptions struct {
	Timeout  time.Duration
	Recorder Recorder
	Logger   *slog.Logger
}

// EventForwarder submits each event to the Engine and publishes it to the Notifier.
// Both actions run in their own goroutine and never block the caller.
type EventForwarder struct {
	engine   Engine
	notifier Notifier
	timeout  time.Duration
	recorder Recorder
	logger   *slog.Logger
	inflight sync.WaitGroup
}

// NewEventForwarder creates an EventForwarder. A nil engine or notifier disables that target.
func NewEventForwarder(engine Engine, notifier Notifier, options ForwarderOptions) *EventForwarder {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = defaultForwardTimeout
	}
	recorder := options.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &EventForwarder{
		engine:   engine,
		notifier: notifier,
		timeout:  timeout,
		recorder: recorder,
		logger:   logger.With("component", "forwarder"),
	}
}

// Forward dispatches event to both targets and returns immediately.
func (f *EventForwarder) Forward(event WatcherEvent) {
	if f.engine != nil {
		f.inflight.Add(1)
		go f.submit(event)
	}
	if f.notifier != nil {
		f.inflight.Add(1)
		go f.publish(event)
	}
}

// Wait blocks until in-flight forwards finish or ctx is done.
func (f *EventForwarder) Wait(ctx context.Context) error {
	drained := make(chan struct{})
	go func() {
		f.inflight.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *EventForwarder) submit(event WatcherEvent) {
	defer f.inflight.Done()
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	err := f.engine.Submit(ctx, IngestRequest{
		Path:     event.Path,
		FolderID: event.FolderID,
		Priority: PriorityNormal,
	})
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrForwarding, TargetEngine, err)
		f.logger.Warn("Engine submission failed", "folder_id", event.FolderID, "path", event.Path, "error", err)
	} else {
		f.logger.Debug("Submitted to engine", "folder_id", event.FolderID, "path", event.Path)
	}
	f.recorder.Forwarded(TargetEngine, err)
}

func (f *EventForwarder) publish(event WatcherEvent) {
	defer f.inflight.Done()
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	err := f.notifier.Publish(ctx, event)
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrForwarding, TargetNotifier, err)
		f.logger.Warn("Event publish failed", "folder_id", event.FolderID, "path", event.Path, "error", err)
	}
	f.recorder.Forwarded(TargetNotifier, err)
}
