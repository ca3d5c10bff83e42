package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Subscribe delivers every event on channel to handle until ctx is
// cancelled. Messages that do not decode are logged and skipped.
func Subscribe(ctx context.Context, rdb redis.UniversalClient, channel string, logger *zap.Logger, handle func(Event, []byte)) error {
	sub := rdb.Subscribe(ctx, channel)
	defer sub.Close()

	// Block until the server confirms the subscription.
	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var e Event
			if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
				logger.Warn("dropping malformed event", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			handle(e, []byte(msg.Payload))
		}
	}
}
