package hotfolder

import (
	"context"
	"errors"
	"sync"
	"time"
)

type fakeDetector struct {
	mu        sync.Mutex
	stability time.Duration
	events    chan<- FileEvent
	root      string
	startErr  error
	started   bool
	stopped   bool
}

func (d *fakeDetector) Start(ctx context.Context, root string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.startErr != nil {
		return d.startErr
	}
	d.root = root
	d.started = true
	return nil
}

func (d *fakeDetector) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
}

// emit simulates a settled file. It reports false once the detector was stopped.
func (d *fakeDetector) emit(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped || !d.started {
		return false
	}
	d.events <- FileEvent{Path: path, Timestamp: time.Now()}
	return true
}

func (d *fakeDetector) isStopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopped
}

type fakeDetectors struct {
	mu        sync.Mutex
	created   []*fakeDetector
	startErr  error
	createErr error
}

func (f *fakeDetectors) factory(stability time.Duration, events chan<- FileEvent) (Detector, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	detector := &fakeDetector{stability: stability, events: events, startErr: f.startErr}
	f.created = append(f.created, detector)
	return detector, nil
}

func (f *fakeDetectors) last() *fakeDetector {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.created) == 0 {
		return nil
	}
	return f.created[len(f.created)-1]
}

func (f *fakeDetectors) at(i int) *fakeDetector {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created[i]
}

type recordingForwarder struct {
	events chan WatcherEvent
}

func newRecordingForwarder() *recordingForwarder {
	return &recordingForwarder{events: make(chan WatcherEvent, 64)}
}

func (f *recordingForwarder) Forward(event WatcherEvent) {
	f.events <- event
}

func (f *recordingForwarder) next(timeout time.Duration) (WatcherEvent, bool) {
	select {
	case event := <-f.events:
		return event, true
	case <-time.After(timeout):
		return WatcherEvent{}, false
	}
}

type fakeEngine struct {
	mu       sync.Mutex
	requests []IngestRequest
	err      error
}

func (e *fakeEngine) Submit(ctx context.Context, req IngestRequest) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.requests = append(e.requests, req)
	return e.err
}

func (e *fakeEngine) submitted() []IngestRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]IngestRequest(nil), e.requests...)
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []WatcherEvent
	err    error
	block  chan struct{}
}

func (n *fakeNotifier) Publish(ctx context.Context, event WatcherEvent) error {
	if n.block != nil {
		<-n.block
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.err
}

func (n *fakeNotifier) published() []WatcherEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]WatcherEvent(nil), n.events...)
}

type countingRecorder struct {
	mu        sync.Mutex
	active    int
	settled   map[string]int
	filtered  map[string]int
	forwarded map[string]int
	failed    map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		settled:   make(map[string]int),
		filtered:  make(map[string]int),
		forwarded: make(map[string]int),
		failed:    make(map[string]int),
	}
}

func (r *countingRecorder) SessionsActive(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = count
}

func (r *countingRecorder) EventSettled(folderID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settled[folderID]++
}

func (r *countingRecorder) EventFiltered(folderID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filtered[folderID]++
}

func (r *countingRecorder) Forwarded(target string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if errors.Is(err, ErrForwarding) {
		r.failed[target]++
		return
	}
	r.forwarded[target]++
}

func (r *countingRecorder) snapshot() (active int, settled, filtered, forwarded, failed map[string]int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copyMap := func(m map[string]int) map[string]int {
		out := make(map[string]int, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out
	}
	return r.active, copyMap(r.settled), copyMap(r.filtered), copyMap(r.forwarded), copyMap(r.failed)
}
