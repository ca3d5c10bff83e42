// Package realtime fans domain events out to websocket clients.
package realtime

import (
	"context"
	"sync/atomic"

	"github.com/lalith-99/vidstream/internal/observ"
	"go.uber.org/zap"
)

type message struct {
	topic string
	data  []byte
}

// Hub owns the set of connected clients. All mutations of that set happen
// on the Run goroutine.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
	done       chan struct{}
	count      atomic.Int64
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves the hub until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Add(1)
			observ.LiveConnections.Inc()

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
			}

		case m := <-h.broadcast:
			for c := range h.clients {
				if !c.wants(m.topic) {
					continue
				}
				select {
				case c.send <- m.data:
				default:
					h.logger.Debug("dropping slow live client", zap.String("topic", c.topic))
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Add(-1)
	observ.LiveConnections.Dec()
}

// Broadcast queues data for every client subscribed to topic. It does not
// block once the hub has stopped.
func (h *Hub) Broadcast(topic string, data []byte) {
	select {
	case h.broadcast <- message{topic: topic, data: data}:
	case <-h.done:
	}
}

// Clients reports how many clients are connected.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

func (h *Hub) attach(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) detach(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
