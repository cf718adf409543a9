package hotfolder

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEventForwarder_SubmitsAndPublishes(t *testing.T) {
	engine := &fakeEngine{}
	notifier := &fakeNotifier{}
	recorder := newCountingRecorder()
	forwarder := NewEventForwarder(engine, notifier, ForwarderOptions{Recorder: recorder})

	event := NewWatcherEvent("scans", "/srv/scans/a.jpg", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	forwarder.Forward(event)
	if err := forwarder.Wait(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	requests := engine.submitted()
	if len(requests) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(requests))
	}
	want := IngestRequest{Path: "/srv/scans/a.jpg", FolderID: "scans", Priority: PriorityNormal}
	if requests[0] != want {
		t.Errorf("expected %+v, got %+v", want, requests[0])
	}

	published := notifier.published()
	if len(published) != 1 || published[0] != event {
		t.Errorf("expected the event to be published once, got %+v", published)
	}
	if published[0].Timestamp != "2024-05-01T10:00:00Z" {
		t.Errorf("unexpected timestamp %s", published[0].Timestamp)
	}

	_, _, _, forwarded, failed := recorder.snapshot()
	if forwarded[TargetEngine] != 1 || forwarded[TargetNotifier] != 1 || len(failed) != 0 {
		t.Errorf("unexpected counts forwarded=%v failed=%v", forwarded, failed)
	}
}

func TestEventForwarder_EngineFailureDoesNotStopNotifier(t *testing.T) {
	engine := &fakeEngine{err: errors.New("connection refused")}
	notifier := &fakeNotifier{}
	recorder := newCountingRecorder()
	forwarder := NewEventForwarder(engine, notifier, ForwarderOptions{Recorder: recorder})

	for _, path := range []string{"/in/1.jpg", "/in/2.jpg", "/in/3.jpg"} {
		forwarder.Forward(NewWatcherEvent("in", path, time.Now()))
	}
	if err := forwarder.Wait(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := len(notifier.published()); got != 3 {
		t.Errorf("expected 3 published events, got %d", got)
	}
	if got := len(engine.submitted()); got != 3 {
		t.Errorf("expected 3 submission attempts without retries, got %d", got)
	}
	_, _, _, _, failed := recorder.snapshot()
	if failed[TargetEngine] != 3 {
		t.Errorf("expected 3 engine failures, got %d", failed[TargetEngine])
	}
}

func TestEventForwarder_ForwardDoesNotBlock(t *testing.T) {
	notifier := &fakeNotifier{block: make(chan struct{})}
	forwarder := NewEventForwarder(&fakeEngine{}, notifier, ForwarderOptions{})

	returned := make(chan struct{})
	go func() {
		forwarder.Forward(NewWatcherEvent("a", "/a/x.png", time.Now()))
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Forward blocked on a slow notifier")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := forwarder.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected Wait to time out while the notifier blocks, got %v", err)
	}

	close(notifier.block)
	if err := forwarder.Wait(context.Background()); err != nil {
		t.Errorf("expected drain after unblock, got %v", err)
	}
}

func TestEventForwarder_NilTargets(t *testing.T) {
	forwarder := NewEventForwarder(nil, nil, ForwarderOptions{})
	forwarder.Forward(NewWatcherEvent("a", "/a/x.png", time.Now()))
	if err := forwarder.Wait(context.Background()); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestSession_ForwardingFailureKeepsSessionAlive(t *testing.T) {
	detectors := &fakeDetectors{}
	engine := &fakeEngine{err: errors.New("503 service unavailable")}
	notifier := &fakeNotifier{}
	forwarder := NewEventForwarder(engine, notifier, ForwarderOptions{})
	registry := NewRegistry(context.Background(), detectors.factory, forwarder, RegistryOptions{})
	defer registry.Close()

	if err := registry.StartWatching(FolderConfig{ID: "in", Path: "/in"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	detector := detectors.last()

	detector.emit("/in/first.jpg")
	waitFor(t, func() bool { return len(notifier.published()) == 1 })
	detector.emit("/in/second.jpg")
	waitFor(t, func() bool { return len(notifier.published()) == 2 })

	if !registry.IsWatching("in") {
		t.Error("session must survive engine failures")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
