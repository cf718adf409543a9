package engine

import (
	"context"
	"log/slog"

	"github.com/contre95/hotfolder/src/features/hotfolder"
	"github.com/contre95/hotfolder/src/infra/queue"
)

// Local enqueues into the in-process processing queue. Used in demo mode and
// when no external engine is configured.
type Local struct {
	queue *queue.InMemoryQueue
}

// NewLocal creates a Local transport backed by q.
func NewLocal(q *queue.InMemoryQueue) *Local {
	return &Local{queue: q}
}

func (l *Local) Name() string {
	return "local"
}

func (l *Local) Submit(ctx context.Context, req hotfolder.IngestRequest) error {
	item := l.queue.Enqueue(req)
	slog.Debug("Queued locally", "id", item.ID, "path", item.Path, "queue_size", l.queue.Len())
	return nil
}

func (l *Local) Health(ctx context.Context) (bool, error) {
	return true, nil
}
