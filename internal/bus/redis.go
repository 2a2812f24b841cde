package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
)

// RedisForwarder fans sync events out across backend instances. Each
// instance publishes its own events to one Redis channel and injects
// everything it receives from other instances into the local hub, so
// a push completed on one device's backend still reloads views served
// by another.
type RedisForwarder struct {
	log      *logger.Logger
	rdb      *goredis.Client
	channel  string
	instance string
}

func NewRedisForwarder(log *logger.Logger, instance string) (*RedisForwarder, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	channel := strings.TrimSpace(os.Getenv("REDIS_CHANNEL"))
	if channel == "" {
		channel = "daybook-sync"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisForwarder{
		log:      log.With("component", "RedisForwarder"),
		rdb:      rdb,
		channel:  channel,
		instance: instance,
	}, nil
}

func (f *RedisForwarder) Publish(ctx context.Context, evt Event) error {
	evt.Origin = f.instance
	raw, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return f.rdb.Publish(ctx, f.channel, raw).Err()
}

// Start subscribes to the shared channel and feeds foreign events into
// the local hub until ctx is cancelled. Events published by this
// instance are dropped; the hub already delivered them locally.
func (f *RedisForwarder) Start(ctx context.Context, hub *Hub) error {
	sub := f.rdb.Subscribe(ctx, f.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				var evt Event
				if err := json.Unmarshal([]byte(m.Payload), &evt); err != nil {
					f.log.Warn("Bad forwarded event payload", "error", err)
					continue
				}
				if evt.Origin == f.instance {
					continue
				}
				_ = hub.Publish(ctx, evt)
			}
		}
	}()

	return nil
}

func (f *RedisForwarder) Close() error {
	if f == nil || f.rdb == nil {
		return nil
	}
	return f.rdb.Close()
}
