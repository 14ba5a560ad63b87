package store

import "github.com/deskstream/desk-client/internal/models"

// Tab selects a filtered view of the notification collection.
type Tab string

const (
	TabAll      Tab = "all"
	TabUnread   Tab = "unread"
	TabPosts    Tab = "post"
	TabComments Tab = "comment"
)

// Counts are the derived tallies shown on the notification tabs. They use
// the same predicates as Filter, so a notification counted under a tab is
// guaranteed to appear in that tab's filtered view.
type Counts struct {
	Total    int
	Unread   int
	Posts    int
	Comments int
}

func matches(n models.Notification, tab Tab) bool {
	switch tab {
	case TabUnread:
		return n.Unread()
	case TabPosts:
		return models.IsPostKind(n)
	case TabComments:
		return models.IsCommentKind(n)
	default:
		return true
	}
}

// Filter returns the notifications visible under the tab, preserving order.
// It never mutates its input.
func Filter(items []models.Notification, tab Tab) []models.Notification {
	filtered := make([]models.Notification, 0, len(items))
	for _, n := range items {
		if matches(n, tab) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

// CountsOf recomputes all tab tallies from the collection.
func CountsOf(items []models.Notification) Counts {
	var c Counts
	c.Total = len(items)
	for _, n := range items {
		if matches(n, TabUnread) {
			c.Unread++
		}
		if matches(n, TabPosts) {
			c.Posts++
		}
		if matches(n, TabComments) {
			c.Comments++
		}
	}
	return c
}
