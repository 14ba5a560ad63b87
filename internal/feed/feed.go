package feed

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/deskstream/desk-client/internal/models"
	"github.com/deskstream/desk-client/internal/realtime"
	"github.com/deskstream/desk-client/internal/store"
	"github.com/deskstream/desk-client/pkg/logger"
)

// API is the slice of the desk backend the feed needs on top of what the
// store already talks to.
type API interface {
	MarkNotificationRead(ctx context.Context, id string) error
}

// Feed is the root composition of the notification subsystem: it owns the
// single store instance, the viewer's live subscription, and the glue that
// turns inbound channel payloads into store prepends.
type Feed struct {
	api   API
	store *store.Store
	sub   *realtime.Subscriber

	mu       sync.Mutex
	viewerID string
	dispose  func()
}

// New creates a new Feed
func New(api API, st *store.Store, sub *realtime.Subscriber) *Feed {
	return &Feed{api: api, store: st, sub: sub}
}

// SetViewer switches the feed to a new viewer identity. Any channels opened
// for the previous viewer are torn down strictly before the new ones open,
// so no stale callback can receive another identity's events. With a viewer
// present the store is reloaded for them afterwards.
func (f *Feed) SetViewer(ctx context.Context, viewerID string) {
	f.mu.Lock()
	if f.dispose != nil {
		f.dispose()
		f.dispose = nil
	}
	f.viewerID = viewerID
	if viewerID != "" {
		f.dispose = f.sub.Subscribe(viewerID, f.handleEvent)
	}
	f.mu.Unlock()

	if viewerID != "" {
		f.store.Load(ctx)
	}
}

// Close tears down the active subscription, if any.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dispose != nil {
		f.dispose()
		f.dispose = nil
	}
	f.viewerID = ""
}

// handleEvent decodes an inbound channel payload and feeds it to the store.
// Payloads that do not carry a notification id are dropped.
func (f *Feed) handleEvent(payload []byte) {
	var n models.Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		logger.Warnf("feed: drop undecodable event error=%v", err)
		return
	}
	if n.ID == "" {
		logger.Warnf("feed: drop event without id")
		return
	}
	f.store.Prepend(n)
}

// Notifications returns the notifications visible under the tab.
func (f *Feed) Notifications(tab store.Tab) []models.Notification {
	return store.Filter(f.store.Notifications(), tab)
}

// Counts returns the current tab tallies.
func (f *Feed) Counts() store.Counts {
	return store.CountsOf(f.store.Notifications())
}

// MarkRead marks one notification read on the server and, only once that
// succeeds, locally. A 404 surfaces as transport.ErrNotFound.
func (f *Feed) MarkRead(ctx context.Context, id string) error {
	if err := f.api.MarkNotificationRead(ctx, id); err != nil {
		return err
	}
	f.store.MarkRead(id)
	return nil
}

// MarkAllRead marks every notification read, server first.
func (f *Feed) MarkAllRead(ctx context.Context) error {
	return f.store.MarkAllRead(ctx)
}
