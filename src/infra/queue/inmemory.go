package queue

import (
	"sync"
	"time"

	"github.com/contre95/hotfolder/src/features/hotfolder"
	"github.com/google/uuid"
)

// ProcessingRequest is one queued ingestion.
type ProcessingRequest struct {
	ID       string             `json:"id"`
	Path     string             `json:"path"`
	FolderID string             `json:"folder_id"`
	Priority hotfolder.Priority `json:"priority"`
	AddedAt  time.Time          `json:"added_at"`
}

// InMemoryQueue is the in-process processing queue. Enqueue and Len are its
// only operations and it never takes any other lock.
type InMemoryQueue struct {
	mu    sync.Mutex
	items []ProcessingRequest
}

// NewInMemoryQueue creates an empty queue.
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{}
}

// Enqueue appends an ingestion request and returns the stored item.
func (q *InMemoryQueue) Enqueue(req hotfolder.IngestRequest) ProcessingRequest {
	item := ProcessingRequest{
		ID:       uuid.New().String(),
		Path:     req.Path,
		FolderID: req.FolderID,
		Priority: req.Priority,
		AddedAt:  time.Now().UTC(),
	}
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
	return item
}

// Len returns a snapshot of the queue length.
func (q *InMemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
