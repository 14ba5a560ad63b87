package models

import "time"

// NotificationData is the payload attached to a notification. Producers do
// not populate every field: older ones only set Message plus the related
// entity ids, newer ones also carry a type tag.
type NotificationData struct {
	Message   string `json:"message,omitempty"`
	Link      string `json:"link,omitempty"`
	Type      string `json:"type,omitempty"`
	PostID    string `json:"post_id,omitempty"`
	CommentID string `json:"comment_id,omitempty"`
}

// Notification represents a single entry in the viewer's notification feed.
// ReadAt is nil while the notification is unread.
type Notification struct {
	ID        string           `json:"id"`
	Type      string           `json:"type,omitempty"` // post, comment, or empty for generic
	Data      NotificationData `json:"data"`
	ReadAt    *time.Time       `json:"read_at"`
	CreatedAt time.Time        `json:"created_at"`
}

// Unread reports whether the notification has no read timestamp yet.
func (n Notification) Unread() bool {
	return n.ReadAt == nil
}
