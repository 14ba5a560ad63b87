package realtime

import (
	"sort"
	"sync"
)

// Broker opens a named-channel subscription and delivers every published
// payload to the handler. The returned function releases the subscription.
type Broker interface {
	Subscribe(channel string, handler func(payload []byte)) (func(), error)
}

// Hub is a process-local Broker that fans published payloads out to every
// handler registered on the channel. It backs single-instance and test
// setups where no Redis is available; delivery is synchronous and in
// registration order.
type Hub struct {
	mu       sync.Mutex
	nextID   int
	channels map[string]map[int]func([]byte)
}

// NewHub constructs a Hub.
func NewHub() *Hub {
	return &Hub{channels: make(map[string]map[int]func([]byte))}
}

// Subscribe registers a handler on the channel and returns an unsubscribe
// function that should be called on disconnect.
func (h *Hub) Subscribe(channel string, handler func(payload []byte)) (func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	inner, ok := h.channels[channel]
	if !ok {
		inner = make(map[int]func([]byte))
		h.channels[channel] = inner
	}
	id := h.nextID
	h.nextID++
	inner[id] = handler

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(inner, id)
		if len(inner) == 0 {
			delete(h.channels, channel)
		}
	}
	return unsubscribe, nil
}

// Publish delivers a payload to all handlers subscribed to the channel.
func (h *Hub) Publish(channel string, payload []byte) {
	h.mu.Lock()
	inner := h.channels[channel]
	ids := make([]int, 0, len(inner))
	for id := range inner {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]func([]byte), 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, inner[id])
	}
	h.mu.Unlock()

	for _, fn := range handlers {
		fn(payload)
	}
}
