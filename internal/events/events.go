// Package events carries domain events over Redis pub/sub.
//
// Services publish after a write has been persisted. Delivery is best
// effort: a failed publish is logged and counted, never returned to the
// caller.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/observ"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Type string

const (
	CommentCreated Type = "comment.created"
	CommentUpdated Type = "comment.updated"
	CommentDeleted Type = "comment.deleted"

	TweetCreated Type = "tweet.created"
	TweetUpdated Type = "tweet.updated"
	TweetDeleted Type = "tweet.deleted"

	PlaylistCreated      Type = "playlist.created"
	PlaylistUpdated      Type = "playlist.updated"
	PlaylistDeleted      Type = "playlist.deleted"
	PlaylistVideoAdded   Type = "playlist.video_added"
	PlaylistVideoRemoved Type = "playlist.video_removed"
)

type Event struct {
	Type       Type      `json:"type"`
	Topic      string    `json:"topic"`
	EntityID   uuid.UUID `json:"entityId"`
	ActorID    uuid.UUID `json:"actorId"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func New(t Type, topic string, entityID, actorID uuid.UUID, payload any) Event {
	return Event{
		Type:       t,
		Topic:      topic,
		EntityID:   entityID,
		ActorID:    actorID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// VideoTopic is where activity under a video goes (its comments).
func VideoTopic(videoID uuid.UUID) string { return "video:" + videoID.String() }

// UserTopic is where activity owned by a user goes (tweets, playlists).
func UserTopic(userID uuid.UUID) string { return "user:" + userID.String() }

type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// RedisPublisher publishes JSON-encoded events to a single channel.
type RedisPublisher struct {
	rdb     redis.UniversalClient
	channel string
	logger  *zap.Logger
}

func NewRedisPublisher(rdb redis.UniversalClient, channel string, logger *zap.Logger) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel, logger: logger}
}

// Publish sends e on the configured channel. Failures are logged and
// counted, never returned.
func (p *RedisPublisher) Publish(ctx context.Context, e Event) {
	err := p.publish(ctx, e)
	observ.RecordEventPublished(string(e.Type), err)
	if err != nil {
		p.logger.Warn("failed to publish event",
			zap.String("type", string(e.Type)),
			zap.String("topic", e.Topic),
			zap.Stringer("entity_id", e.EntityID),
			zap.Error(err),
		)
	}
}

func (p *RedisPublisher) publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := p.rdb.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Nop drops every event. Used when no event bus is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}
