// Package bus is the process-wide broadcast channel between the sync
// orchestrator and the UI state containers. It carries exactly two
// event kinds: SyncCompleted tells subscribers to re-read through the
// unified repositories, DataCleared tells them to discard in-memory
// copies outright (a stale reference could repopulate wiped data).
// There is no replay: a handler registered after an event fired never
// sees it.
package bus

import (
	"context"
	"sync"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
)

type Kind string

const (
	KindSyncCompleted Kind = "sync-completed"
	KindDataCleared   Kind = "data-cleared"
)

// Event has no payload beyond its kind. Origin identifies the backend
// instance that produced it, so cross-instance forwarders can drop
// their own echoes.
type Event struct {
	Kind   Kind   `json:"kind"`
	Origin string `json:"origin,omitempty"`
}

type Handler func(Event)

type Subscription struct {
	id uint64
}

type Hub struct {
	mu   sync.RWMutex
	next uint64
	subs map[uint64]Handler
	log  *logger.Logger
}

func NewHub(baseLog *logger.Logger) *Hub {
	return &Hub{
		subs: make(map[uint64]Handler),
		log:  baseLog.With("component", "EventHub"),
	}
}

func (h *Hub) Subscribe(fn Handler) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	id := h.next
	h.subs[id] = fn
	return &Subscription{id: id}
}

func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, sub.id)
}

// Publish delivers the event to every currently registered handler.
// Handlers run on the publisher's goroutine, outside the hub lock, so
// a handler may unsubscribe itself without deadlocking.
func (h *Hub) Publish(ctx context.Context, evt Event) error {
	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.subs))
	for _, fn := range h.subs {
		handlers = append(handlers, fn)
	}
	h.mu.RUnlock()

	h.log.Debug("Broadcasting event", "kind", string(evt.Kind), "subscribers", len(handlers))
	for _, fn := range handlers {
		fn(evt)
	}
	return nil
}
