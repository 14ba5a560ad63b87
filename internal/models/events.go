package models

import "strings"

// EventKind classifies a notification for tab filtering and counts.
type EventKind string

const (
	EventKindPost    EventKind = "post"
	EventKindComment EventKind = "comment"
	EventKindGeneric EventKind = "generic"
)

// IsPostKind reports whether the notification belongs to the "post" tab.
// The type discriminator is not uniformly populated across event producers,
// so this checks the discriminator, the payload type tag, a substring of the
// discriminator, and finally the related-entity ids (a post id with no
// comment id means a post event).
func IsPostKind(n Notification) bool {
	if n.Type == string(EventKindPost) || n.Data.Type == string(EventKindPost) {
		return true
	}
	if strings.Contains(n.Type, "post") {
		return true
	}
	return n.Data.PostID != "" && n.Data.CommentID == ""
}

// IsCommentKind reports whether the notification belongs to the "comment"
// tab, using the same fallback chain as IsPostKind. A populated comment id
// marks a comment event regardless of the discriminator.
func IsCommentKind(n Notification) bool {
	if n.Type == string(EventKindComment) || n.Data.Type == string(EventKindComment) {
		return true
	}
	if strings.Contains(n.Type, "comment") {
		return true
	}
	return n.Data.CommentID != ""
}

// KindOf collapses the classification to a single kind. Comment signals win
// over post signals because a comment id is the stronger discriminant.
func KindOf(n Notification) EventKind {
	switch {
	case IsCommentKind(n):
		return EventKindComment
	case IsPostKind(n):
		return EventKindPost
	default:
		return EventKindGeneric
	}
}
