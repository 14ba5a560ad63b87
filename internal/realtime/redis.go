package realtime

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/deskstream/desk-client/pkg/logger"
)

// RedisBroker subscribes to named channels over Redis Pub/Sub. The desk
// backend publishes notification payloads to the same channels, so events
// produced on any backend instance reach this client.
//
// The client must be a *redis.Client rather than redis.Cmdable because
// Cmdable does not declare Subscribe.
type RedisBroker struct {
	client *redis.Client
}

// NewRedisBroker wraps an initialised Redis client.
func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

// Subscribe opens a Pub/Sub subscription on the channel and forwards every
// message payload to the handler from a background goroutine. The returned
// function closes the subscription, which ends the goroutine.
func (b *RedisBroker) Subscribe(channel string, handler func(payload []byte)) (func(), error) {
	ctx := context.Background()

	pubsub := b.client.Subscribe(ctx, channel)

	// Ensure the subscription is established before reading messages.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	go func() {
		for msg := range pubsub.Channel() {
			handler([]byte(msg.Payload))
		}
	}()

	unsubscribe := func() {
		if err := pubsub.Close(); err != nil {
			logger.Errorf("realtime: close redis subscription failed channel=%s error=%v", channel, err)
		}
	}
	return unsubscribe, nil
}
