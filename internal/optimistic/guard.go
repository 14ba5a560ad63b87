package optimistic

import (
	"errors"
	"sync"
)

// ErrMutationPending is returned when an action arrives while a previous
// mutation on the same controller is still in flight. The new action has no
// effect; callers should keep the triggering control disabled until the
// pending request settles.
var ErrMutationPending = errors.New("mutation already in flight")

// Guard ties async continuations to the lifetime of the owning view. A
// request that resolves after Release must not be applied to state the view
// no longer renders.
type Guard struct {
	mu       sync.Mutex
	released bool
}

// NewGuard creates a new Guard
func NewGuard() *Guard {
	return &Guard{}
}

// Release marks the owning view as gone. Idempotent.
func (g *Guard) Release() {
	g.mu.Lock()
	g.released = true
	g.mu.Unlock()
}

// Active reports whether the owning view is still mounted.
func (g *Guard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.released
}
