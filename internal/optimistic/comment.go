package optimistic

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/deskstream/desk-client/internal/models"
	"github.com/deskstream/desk-client/pkg/logger"
)

// ErrParentNotFound is returned when a reply targets a parent comment that
// is not present in the thread.
var ErrParentNotFound = errors.New("parent comment not found")

// CommentAPI is the single endpoint a comment thread needs.
type CommentAPI interface {
	CreateComment(ctx context.Context, req models.CreateCommentRequest) (models.Comment, error)
}

// Thread manages the comment list of one post, including nested replies.
// Submitting inserts a pending record at its final position immediately;
// the record is replaced in place by the server-confirmed comment on
// success, or removed from that position on failure. It never survives as a
// permanently-unconfirmed entry.
type Thread struct {
	mu       sync.Mutex
	api      CommentAPI
	guard    *Guard
	postID   string
	comments []models.Comment
	pending  bool
	lastErr  error
}

// NewThread creates a thread seeded with the server-rendered comments.
func NewThread(api CommentAPI, postID string, initial []models.Comment, guard *Guard) *Thread {
	if guard == nil {
		guard = NewGuard()
	}
	return &Thread{api: api, guard: guard, postID: postID, comments: copyComments(initial)}
}

// Comments returns a deep copy of the thread as it should render right now.
func (t *Thread) Comments() []models.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copyComments(t.comments)
}

// Pending reports whether a submission is in flight.
func (t *Thread) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Err returns the failure of the last settled submission, if any.
func (t *Thread) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

// Submit posts a new comment, or a reply when parentID is set. The pending
// record is visible in the thread before the request is dispatched. A
// submission while one is in flight returns ErrMutationPending.
func (t *Thread) Submit(ctx context.Context, parentID, authorID, content string) error {
	t.mu.Lock()
	if t.pending {
		t.mu.Unlock()
		return ErrMutationPending
	}

	tempID := "pending-" + uuid.NewString()
	optimisticComment := models.Comment{
		ID:        tempID,
		PostID:    t.postID,
		ParentID:  parentID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now(),
		Pending:   true,
	}

	if parentID == "" {
		t.comments = append(t.comments, optimisticComment)
	} else if !appendReply(t.comments, parentID, optimisticComment) {
		t.mu.Unlock()
		return ErrParentNotFound
	}
	t.pending = true
	t.lastErr = nil
	t.mu.Unlock()

	confirmed, err := t.api.CreateComment(ctx, models.CreateCommentRequest{
		PostID:   t.postID,
		ParentID: parentID,
		Content:  content,
	})

	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = false

	if !t.guard.Active() {
		// The owning view unmounted mid-flight. The server result is not
		// applied, but the unconfirmed record still has to go.
		t.comments, _ = removeByID(t.comments, tempID)
		return nil
	}

	if err != nil {
		t.comments, _ = removeByID(t.comments, tempID)
		t.lastErr = err
		logger.Warnf("optimistic: comment submit failed post=%s error=%v", t.postID, err)
		return err
	}

	confirmed.Pending = false
	if !replaceByID(t.comments, tempID, confirmed) {
		// Should not happen: nothing else removes pending records.
		t.comments = append(t.comments, confirmed)
	}
	return nil
}

func copyComments(comments []models.Comment) []models.Comment {
	if comments == nil {
		return nil
	}
	out := make([]models.Comment, len(comments))
	for i, c := range comments {
		out[i] = c
		out[i].Replies = copyComments(c.Replies)
	}
	return out
}

// appendReply adds the reply to the end of the parent's reply list, looking
// through nested replies as well. Reports whether the parent was found.
func appendReply(comments []models.Comment, parentID string, reply models.Comment) bool {
	for i := range comments {
		if comments[i].ID == parentID {
			comments[i].Replies = append(comments[i].Replies, reply)
			return true
		}
		if appendReply(comments[i].Replies, parentID, reply) {
			return true
		}
	}
	return false
}

// replaceByID swaps the comment with the given id for the replacement,
// keeping its position. Reports whether the id was found.
func replaceByID(comments []models.Comment, id string, replacement models.Comment) bool {
	for i := range comments {
		if comments[i].ID == id {
			comments[i] = replacement
			return true
		}
		if replaceByID(comments[i].Replies, id, replacement) {
			return true
		}
	}
	return false
}

// removeByID deletes the comment with the given id, preserving the order of
// everything around it.
func removeByID(comments []models.Comment, id string) ([]models.Comment, bool) {
	for i := range comments {
		if comments[i].ID == id {
			return append(comments[:i], comments[i+1:]...), true
		}
		if replies, ok := removeByID(comments[i].Replies, id); ok {
			comments[i].Replies = replies
			return comments, true
		}
	}
	return comments, false
}
