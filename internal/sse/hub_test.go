package sse

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/daybook-app/daybook-backend/internal/bus"
	"github.com/daybook-app/daybook-backend/internal/platform/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(testLogger())
	a := hub.Register(uuid.New())
	b := hub.Register(uuid.Nil) // anonymous viewer

	hub.Broadcast(bus.Event{Kind: bus.KindSyncCompleted})

	assert.Equal(t, bus.KindSyncCompleted, (<-a.Outbound).Kind)
	assert.Equal(t, bus.KindSyncCompleted, (<-b.Outbound).Kind)
}

func TestRemovedClientGetsNothing(t *testing.T) {
	hub := NewHub(testLogger())
	client := hub.Register(uuid.New())
	hub.Remove(client)

	hub.Broadcast(bus.Event{Kind: bus.KindDataCleared})

	select {
	case <-client.Done():
	default:
		t.Fatal("removed client must be signalled done")
	}
	assert.Empty(t, client.Outbound)
}

func TestSlowClientIsDropped(t *testing.T) {
	hub := NewHub(testLogger())
	client := hub.Register(uuid.New())

	// Fill the buffer, then one more to trip the drop path.
	for i := 0; i < cap(client.Outbound); i++ {
		hub.Broadcast(bus.Event{Kind: bus.KindSyncCompleted})
	}
	hub.Broadcast(bus.Event{Kind: bus.KindSyncCompleted})

	select {
	case <-client.Done():
	default:
		t.Fatal("slow client should have been disconnected")
	}

	// Remove on an already dropped client is a no-op, not a panic.
	require.NotPanics(t, func() { hub.Remove(client) })
}
