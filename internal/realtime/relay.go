package realtime

import (
	"context"

	"github.com/lalith-99/vidstream/internal/events"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Relay forwards every event on the Redis channel to the hub, keyed by the
// event's topic. It returns when ctx is cancelled.
func Relay(ctx context.Context, rdb redis.UniversalClient, channel string, hub *Hub, logger *zap.Logger) error {
	return events.Subscribe(ctx, rdb, channel, logger, func(e events.Event, raw []byte) {
		hub.Broadcast(e.Topic, raw)
	})
}
