package store

import (
	"context"
	"sync"
	"time"

	"github.com/deskstream/desk-client/internal/models"
	"github.com/deskstream/desk-client/internal/transport"
	"github.com/deskstream/desk-client/pkg/logger"
)

// API is the slice of the desk backend the store needs.
type API interface {
	FetchNotifications(ctx context.Context, page, limit int) ([]models.Notification, *transport.Meta, error)
	MarkAllNotificationsRead(ctx context.Context) error
}

// Store holds the client-side notification collection, ordered newest first.
// It is the only shared mutable state of the subsystem and is mutated solely
// through the operations below.
type Store struct {
	mu       sync.Mutex
	api      API
	items    []models.Notification
	meta     *transport.Meta
	onChange func()
}

// New creates a new Store
func New(api API) *Store {
	return &Store{api: api}
}

// SetOnChange registers a callback invoked after every mutation, outside the
// store's lock. Intended for the owning shell to trigger a re-render.
func (s *Store) SetOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Notifications returns a copy of the current collection.
func (s *Store) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.Notification, len(s.items))
	copy(items, s.items)
	return items
}

// Meta returns the pagination meta from the last successful load, if any.
func (s *Store) Meta() *transport.Meta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

// Load replaces the whole collection with a fresh page from the server.
// A transport failure is logged and leaves the current state untouched.
func (s *Store) Load(ctx context.Context) {
	s.LoadPage(ctx, 1, 0)
}

// LoadPage is Load with explicit pagination; limit 0 takes the server
// default.
func (s *Store) LoadPage(ctx context.Context, page, limit int) {
	items, meta, err := s.api.FetchNotifications(ctx, page, limit)
	if err != nil {
		logger.Errorf("store: load notifications failed error=%v", err)
		return
	}

	s.mu.Lock()
	s.items = items
	s.meta = meta
	s.mu.Unlock()
	s.notify()
}

// Prepend upserts a newly arrived notification. An unseen id goes to the
// front of the collection; a repeated id replaces the existing record in
// place, so duplicate real-time delivery is idempotent.
func (s *Store) Prepend(n models.Notification) {
	s.mu.Lock()
	replaced := false
	for i := range s.items {
		if s.items[i].ID == n.ID {
			s.items[i] = n
			replaced = true
			break
		}
	}
	if !replaced {
		s.items = append([]models.Notification{n}, s.items...)
	}
	s.mu.Unlock()
	s.notify()
}

// MarkRead sets the read timestamp of the matching record to now. Unknown
// ids are a no-op.
func (s *Store) MarkRead(id string) {
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].ID == id && s.items[i].ReadAt == nil {
			now := time.Now()
			s.items[i].ReadAt = &now
			changed = true
		}
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// MarkAllRead asks the server to mark everything read and applies the same
// change locally only after the server confirms. On failure no timestamp
// moves and the error is returned to the caller.
func (s *Store) MarkAllRead(ctx context.Context) error {
	if err := s.api.MarkAllNotificationsRead(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	now := time.Now()
	for i := range s.items {
		if s.items[i].ReadAt == nil {
			s.items[i].ReadAt = &now
		}
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// UnreadCount is recomputed from the collection on every call.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.items {
		if n.Unread() {
			count++
		}
	}
	return count
}
