package bus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func TestHubDeliversToAllSubscribers(t *testing.T) {
	hub := NewHub(testLogger())
	var first, second []Kind

	hub.Subscribe(func(evt Event) { first = append(first, evt.Kind) })
	hub.Subscribe(func(evt Event) { second = append(second, evt.Kind) })

	require.NoError(t, hub.Publish(context.Background(), Event{Kind: KindSyncCompleted}))
	require.NoError(t, hub.Publish(context.Background(), Event{Kind: KindDataCleared}))

	assert.Equal(t, []Kind{KindSyncCompleted, KindDataCleared}, first)
	assert.Equal(t, []Kind{KindSyncCompleted, KindDataCleared}, second)
}

func TestHubHasNoReplay(t *testing.T) {
	hub := NewHub(testLogger())
	require.NoError(t, hub.Publish(context.Background(), Event{Kind: KindSyncCompleted}))

	var got []Kind
	hub.Subscribe(func(evt Event) { got = append(got, evt.Kind) })

	assert.Empty(t, got, "late subscribers never see earlier events")
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub(testLogger())
	var got []Kind
	sub := hub.Subscribe(func(evt Event) { got = append(got, evt.Kind) })

	require.NoError(t, hub.Publish(context.Background(), Event{Kind: KindSyncCompleted}))
	hub.Unsubscribe(sub)
	require.NoError(t, hub.Publish(context.Background(), Event{Kind: KindDataCleared}))

	assert.Equal(t, []Kind{KindSyncCompleted}, got)
}

func TestHubHandlerMayUnsubscribeItself(t *testing.T) {
	hub := NewHub(testLogger())
	var count int
	var sub *Subscription
	sub = hub.Subscribe(func(evt Event) {
		count++
		hub.Unsubscribe(sub)
	})

	require.NoError(t, hub.Publish(context.Background(), Event{Kind: KindSyncCompleted}))
	require.NoError(t, hub.Publish(context.Background(), Event{Kind: KindSyncCompleted}))

	assert.Equal(t, 1, count)
}
