package sse

import (
	"sync"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook-backend/internal/bus"
	"github.com/daybook-app/daybook-backend/internal/platform/logger"
)

// Hub delivers sync events to connected UI clients over server-sent
// events. It is the rendering-layer end of the reload protocol: the
// app wires one bus subscription into Broadcast, and every connected
// view reloads (or purges) on what it receives.
type Client struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Outbound chan bus.Event
	done     chan struct{}
}

func (c *Client) Done() <-chan struct{} {
	return c.done
}

type Hub struct {
	mu      sync.RWMutex
	log     *logger.Logger
	clients map[*Client]struct{}
}

func NewHub(baseLog *logger.Logger) *Hub {
	return &Hub{
		log:     baseLog.With("component", "SSEHub"),
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) Register(userID uuid.UUID) *Client {
	client := &Client{
		ID:       uuid.New(),
		UserID:   userID,
		Outbound: make(chan bus.Event, 16),
		done:     make(chan struct{}),
	}
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()
	h.log.Debug("SSE client connected", "client_id", client.ID)
	return client
}

func (h *Hub) Remove(client *Client) {
	h.mu.Lock()
	_, present := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()
	if present {
		close(client.done)
		h.log.Debug("SSE client disconnected", "client_id", client.ID)
	}
}

// Broadcast fans an event out to every connected client. A client too
// slow to drain its buffer is dropped rather than blocking the rest.
func (h *Hub) Broadcast(evt bus.Event) {
	h.mu.RLock()
	stale := make([]*Client, 0)
	for client := range h.clients {
		select {
		case client.Outbound <- evt:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.log.Warn("Dropping slow SSE client", "client_id", client.ID)
		h.Remove(client)
	}
}
