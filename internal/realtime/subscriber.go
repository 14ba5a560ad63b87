package realtime

import (
	"sync"

	"github.com/deskstream/desk-client/pkg/logger"
)

// DefaultChannelPrefix namespaces desk channels when no prefix is configured.
const DefaultChannelPrefix = "desk"

// Subscriber opens the live event channels for a viewer: one shared channel
// for new public posts and one scoped to the viewer for events addressed to
// them. Real-time delivery is best effort; a failed subscription is logged
// and the full refetch path stays the source of truth.
type Subscriber struct {
	broker Broker
	prefix string
}

// NewSubscriber creates a new Subscriber
func NewSubscriber(broker Broker, prefix string) *Subscriber {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &Subscriber{broker: broker, prefix: prefix}
}

// PostsChannel is the viewer-independent channel announcing new posts.
func (s *Subscriber) PostsChannel() string {
	return s.prefix + ":posts:new"
}

// ViewerChannel is the channel carrying events addressed to one viewer.
func (s *Subscriber) ViewerChannel(viewerID string) string {
	return s.prefix + ":users:" + viewerID + ":events"
}

// Subscribe opens both channels for the viewer and routes every inbound
// payload, untransformed, to onEvent. With no viewer identity the call is a
// no-op. The returned disposer releases every channel this call opened and
// is safe to invoke more than once.
func (s *Subscriber) Subscribe(viewerID string, onEvent func(payload []byte)) func() {
	if viewerID == "" {
		return func() {}
	}

	var disposers []func()
	for _, channel := range []string{s.PostsChannel(), s.ViewerChannel(viewerID)} {
		dispose, err := s.broker.Subscribe(channel, onEvent)
		if err != nil {
			logger.Errorf("realtime: subscribe failed channel=%s error=%v", channel, err)
			continue
		}
		disposers = append(disposers, dispose)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for _, dispose := range disposers {
				dispose()
			}
		})
	}
}
