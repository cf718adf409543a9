package queue

import (
	"sync"
	"testing"

	"github.com/contre95/hotfolder/src/features/hotfolder"
)

func TestInMemoryQueue_Enqueue(t *testing.T) {
	q := NewInMemoryQueue()
	item := q.Enqueue(hotfolder.IngestRequest{Path: "/in/a.jpg", FolderID: "in", Priority: hotfolder.PriorityNormal})

	if item.ID == "" {
		t.Error("expected an id to be assigned")
	}
	if item.AddedAt.IsZero() {
		t.Error("expected added_at to be set")
	}
	if item.Path != "/in/a.jpg" || item.FolderID != "in" || item.Priority != hotfolder.PriorityNormal {
		t.Errorf("unexpected item %+v", item)
	}
	if q.Len() != 1 {
		t.Errorf("expected length 1, got %d", q.Len())
	}
}

func TestInMemoryQueue_ConcurrentEnqueue(t *testing.T) {
	q := NewInMemoryQueue()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Enqueue(hotfolder.IngestRequest{Path: "/in/x.jpg", FolderID: "in", Priority: hotfolder.PriorityNormal})
			q.Len()
		}()
	}
	wg.Wait()
	if q.Len() != 50 {
		t.Errorf("expected 50 items, got %d", q.Len())
	}
}
