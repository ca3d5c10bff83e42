package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/observ"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestTopics(t *testing.T) {
	id := uuid.MustParse("7f0c1c0e-5d8b-4a57-9a8e-0a3f9c1e2b44")
	assert.Equal(t, "video:7f0c1c0e-5d8b-4a57-9a8e-0a3f9c1e2b44", VideoTopic(id))
	assert.Equal(t, "user:7f0c1c0e-5d8b-4a57-9a8e-0a3f9c1e2b44", UserTopic(id))
}

func TestEvent_JSONShape(t *testing.T) {
	e := New(CommentCreated, "video:x", uuid.New(), uuid.New(), map[string]string{"content": "hello"})

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"type", "topic", "entityId", "actorId", "payload", "occurredAt"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "comment.created", raw["type"])
}

func TestRedisPublisher_SubscribeRoundTrip(t *testing.T) {
	_, rdb := newRedis(t)
	pub := NewRedisPublisher(rdb, "test.events", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu       sync.Mutex
		received []Event
	)
	done := make(chan error, 1)
	go func() {
		done <- Subscribe(ctx, rdb, "test.events", zap.NewNop(), func(e Event, _ []byte) {
			mu.Lock()
			received = append(received, e)
			mu.Unlock()
		})
	}()

	entity := uuid.New()
	before := testutil.ToFloat64(observ.EventsPublishedTotal.WithLabelValues(string(TweetCreated), "ok"))

	// Pub/sub drops messages sent before the subscriber is attached, so
	// keep publishing until one arrives.
	require.Eventually(t, func() bool {
		pub.Publish(ctx, New(TweetCreated, "user:u", entity, uuid.Nil, nil))
		mu.Lock()
		defer mu.Unlock()
		return len(received) > 0
	}, 2*time.Second, 20*time.Millisecond)

	mu.Lock()
	assert.Equal(t, entity, received[0].EntityID)
	assert.Equal(t, TweetCreated, received[0].Type)
	mu.Unlock()

	after := testutil.ToFloat64(observ.EventsPublishedTotal.WithLabelValues(string(TweetCreated), "ok"))
	assert.Greater(t, after, before)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not stop after cancel")
	}
}

func TestRedisPublisher_FailureIsSwallowed(t *testing.T) {
	mr, rdb := newRedis(t)
	pub := NewRedisPublisher(rdb, "test.events", zap.NewNop())
	mr.Close()

	before := testutil.ToFloat64(observ.EventsPublishedTotal.WithLabelValues(string(CommentDeleted), "error"))

	assert.NotPanics(t, func() {
		pub.Publish(context.Background(), New(CommentDeleted, "video:v", uuid.New(), uuid.New(), nil))
	})

	after := testutil.ToFloat64(observ.EventsPublishedTotal.WithLabelValues(string(CommentDeleted), "error"))
	assert.Equal(t, before+1, after)
}
