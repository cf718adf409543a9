package hotfolder

import (
	"context"
	"time"
)

// EventFileAdded is the only event type produced today. Consumers should treat
// EventType as an open tag.
const EventFileAdded = "file_added"

// WatcherEvent is the normalized unit forwarded downstream.
type WatcherEvent struct {
	EventType string `json:"event_type"`
	Path      string `json:"path"`
	FolderID  string `json:"folder_id"`
	Timestamp string `json:"timestamp"`
}

// NewWatcherEvent builds a file_added event stamped with at in UTC.
func NewWatcherEvent(folderID, path string, at time.Time) WatcherEvent {
	return WatcherEvent{
		EventType: EventFileAdded,
		Path:      path,
		FolderID:  folderID,
		Timestamp: at.UTC().Format(time.RFC3339Nano),
	}
}

// FileEvent is a settled path reported by a Detector.
type FileEvent struct {
	Path      string
	Timestamp time.Time
}

// Detector watches a directory tree and emits a FileEvent once a path stops changing.
type Detector interface {
	// Start installs the OS watch on root. It must fail synchronously when the watch cannot be installed.
	Start(ctx context.Context, root string) error
	// Stop releases the OS watch and returns once no further events will be sent.
	Stop()
}

// DetectorFactory creates a Detector that sends settled events on events.
type DetectorFactory func(stability time.Duration, events chan<- FileEvent) (Detector, error)
