package models

import "time"

// Comment represents a comment on a post, with nested replies. Pending marks
// a locally created comment that the server has not confirmed yet; it never
// crosses the wire.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	ParentID  string    `json:"parent_id,omitempty"` // empty for top-level comments
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Replies   []Comment `json:"replies,omitempty"`
	Pending   bool      `json:"-"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	PostID   string `json:"post_id" validate:"required"`
	ParentID string `json:"parent_id,omitempty"`
	Content  string `json:"content" validate:"required,min=1,max=500"`
}
