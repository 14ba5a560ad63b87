package optimistic

import (
	"context"
	"sync"

	"github.com/deskstream/desk-client/internal/models"
	"github.com/deskstream/desk-client/pkg/logger"
)

// VoteAPI is the single endpoint a vote controller needs.
type VoteAPI interface {
	ToggleVote(ctx context.Context, postID string) (models.VoteState, error)
}

// VoteController manages the viewer's vote on one post. A toggle applies the
// local delta before the request is dispatched, then reconciles with the
// server's authoritative state on success or reverts to the pre-action
// snapshot on failure.
type VoteController struct {
	mu      sync.Mutex
	api     VoteAPI
	guard   *Guard
	postID  string
	state   models.VoteState
	pending bool
	lastErr error
}

// NewVoteController creates a controller seeded with the server-rendered
// vote state for the post.
func NewVoteController(api VoteAPI, postID string, initial models.VoteState, guard *Guard) *VoteController {
	if guard == nil {
		guard = NewGuard()
	}
	return &VoteController{api: api, guard: guard, postID: postID, state: initial}
}

// State returns the vote state as it should render right now.
func (c *VoteController) State() models.VoteState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending reports whether a toggle is in flight; the control should be
// disabled while true.
func (c *VoteController) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Err returns the failure of the last settled toggle, if any. It is cleared
// when the next toggle starts.
func (c *VoteController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Toggle flips the viewer's vote. Count and flag move together in one
// locked update before the request goes out, so no render can observe the
// flag without the matching count. A toggle while one is pending returns
// ErrMutationPending and changes nothing.
func (c *VoteController) Toggle(ctx context.Context) error {
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return ErrMutationPending
	}
	c.pending = true
	c.lastErr = nil

	snapshot := c.state
	if c.state.HasVoted {
		c.state.HasVoted = false
		c.state.Count--
	} else {
		c.state.HasVoted = true
		c.state.Count++
	}
	c.mu.Unlock()

	state, err := c.api.ToggleVote(ctx, c.postID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false

	if !c.guard.Active() {
		// The owning view unmounted mid-flight; its state is dead either way.
		return nil
	}

	if err != nil {
		c.state = snapshot
		c.lastErr = err
		logger.Warnf("optimistic: vote toggle failed post=%s error=%v", c.postID, err)
		return err
	}

	c.state = state
	return nil
}
