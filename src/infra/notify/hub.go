package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/contre95/hotfolder/src/features/hotfolder"
)

const defaultSubscriberBuffer = 32

// Hub fans WatcherEvents out to live subscribers such as SSE clients.
// Publish never blocks: a subscriber whose buffer is full misses the event.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uint64]chan hotfolder.WatcherEvent
	nextID      uint64
	buffer      int
	closed      bool
}

// NewHub creates a hub with the given per-subscriber buffer.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	return &Hub{
		subscribers: make(map[uint64]chan hotfolder.WatcherEvent),
		buffer:      buffer,
	}
}

// Subscribe registers a subscriber. The returned cancel func must be called to release it.
func (h *Hub) Subscribe() (<-chan hotfolder.WatcherEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan hotfolder.WatcherEvent, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.nextID++
	id := h.nextID
	h.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub, ok := h.subscribers[id]; ok {
				delete(h.subscribers, id)
				close(sub)
			}
		})
	}
}

// Publish delivers event to every subscriber with room in its buffer.
func (h *Hub) Publish(ctx context.Context, event hotfolder.WatcherEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, sub := range h.subscribers {
		select {
		case sub <- event:
		default:
			slog.Debug("Subscriber lagging, dropping event", "subscriber", id, "path", event.Path)
		}
	}
	return nil
}

// Subscribers returns the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subscribers {
		delete(h.subscribers, id)
		close(sub)
	}
}
