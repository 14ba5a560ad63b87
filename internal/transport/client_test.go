package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deskstream/desk-client/internal/models"
)

func newTestServer(t *testing.T, register func(e *echo.Echo)) (*httptest.Server, *Client) {
	t.Helper()
	e := echo.New()
	register(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, NewClient(srv.URL, "test-token", 2*time.Second)
}

func TestFetchNotifications(t *testing.T) {
	var gotAuth, gotQuery string
	_, client := newTestServer(t, func(e *echo.Echo) {
		e.GET("/api/notifications", func(c echo.Context) error {
			gotAuth = c.Request().Header.Get("Authorization")
			gotQuery = c.QueryString()
			return c.JSON(http.StatusOK, echo.Map{
				"success": true,
				"data": echo.Map{
					"notifications": []echo.Map{
						{
							"id":         "n2",
							"type":       "comment",
							"data":       echo.Map{"message": "new reply", "comment_id": "c9"},
							"read_at":    nil,
							"created_at": "2026-08-30T12:00:00Z",
						},
						{
							"id":         "n1",
							"data":       echo.Map{"message": "welcome"},
							"read_at":    "2026-08-29T09:00:00Z",
							"created_at": "2026-08-29T08:00:00Z",
						},
					},
				},
				"meta": echo.Map{
					"currentPage":     1,
					"totalPages":      3,
					"totalItems":      42,
					"itemsPerPage":    20,
					"hasNextPage":     true,
					"hasPreviousPage": false,
				},
			})
		})
	})

	items, meta, err := client.FetchNotifications(context.Background(), 0, 999)
	if err != nil {
		t.Fatalf("FetchNotifications failed: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Expected bearer token header, got %q", gotAuth)
	}
	if gotQuery != "page=1&limit=20" {
		t.Errorf("Expected clamped pagination params, got %q", gotQuery)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(items))
	}
	if items[0].ID != "n2" || !items[0].Unread() || items[0].Data.CommentID != "c9" {
		t.Errorf("Unexpected first notification: %+v", items[0])
	}
	if items[1].ReadAt == nil {
		t.Error("Expected n1 to carry a read timestamp")
	}
	if meta == nil || meta.TotalItems != 42 || !meta.HasNextPage {
		t.Errorf("Unexpected meta: %+v", meta)
	}
}

func TestMarkNotificationReadNotFound(t *testing.T) {
	_, client := newTestServer(t, func(e *echo.Echo) {
		e.PUT("/api/notifications/:id/read", func(c echo.Context) error {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		})
	})

	err := client.MarkNotificationRead(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestServerErrorCarriesMessage(t *testing.T) {
	_, client := newTestServer(t, func(e *echo.Echo) {
		e.PUT("/api/notifications/read-all", func(c echo.Context) error {
			return echo.NewHTTPError(http.StatusInternalServerError, "database unavailable")
		})
	})

	err := client.MarkAllNotificationsRead(context.Background())
	if err == nil {
		t.Fatal("Expected an error")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("Generic failure must not normalize to ErrNotFound")
	}
	if !strings.Contains(err.Error(), "database unavailable") {
		t.Errorf("Expected server message in error, got %v", err)
	}
}

func TestRequestTimeout(t *testing.T) {
	srv, _ := newTestServer(t, func(e *echo.Echo) {
		e.POST("/api/posts/:post_id/votes/toggle", func(c echo.Context) error {
			time.Sleep(200 * time.Millisecond)
			return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{}})
		})
	})
	client := NewClient(srv.URL, "", 20*time.Millisecond)

	_, err := client.ToggleVote(context.Background(), "p1")
	if err == nil {
		t.Fatal("Expected timeout to surface as an error")
	}
}

func TestToggleVote(t *testing.T) {
	_, client := newTestServer(t, func(e *echo.Echo) {
		e.POST("/api/posts/:post_id/votes/toggle", func(c echo.Context) error {
			if c.Param("post_id") != "p1" {
				return echo.NewHTTPError(http.StatusNotFound, "Post not found")
			}
			return c.JSON(http.StatusOK, echo.Map{
				"success": true,
				"data":    echo.Map{"count": 6, "has_voted": true},
			})
		})
	})

	state, err := client.ToggleVote(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ToggleVote failed: %v", err)
	}
	if state.Count != 6 || !state.HasVoted {
		t.Errorf("Expected {6 true}, got %+v", state)
	}

	if _, err := client.ToggleVote(context.Background(), "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing post, got %v", err)
	}
}

func TestCreateComment(t *testing.T) {
	var gotBody models.CreateCommentRequest
	_, client := newTestServer(t, func(e *echo.Echo) {
		e.POST("/api/posts/:post_id/comments", func(c echo.Context) error {
			if err := c.Bind(&gotBody); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON")
			}
			return c.JSON(http.StatusCreated, echo.Map{
				"success": true,
				"data": echo.Map{
					"comment": echo.Map{
						"id":         "c100",
						"post_id":    gotBody.PostID,
						"parent_id":  gotBody.ParentID,
						"author_id":  "alice",
						"content":    gotBody.Content,
						"created_at": "2026-08-30T12:00:00Z",
					},
				},
			})
		})
	})

	comment, err := client.CreateComment(context.Background(), models.CreateCommentRequest{
		PostID:   "p1",
		ParentID: "c2",
		Content:  "a reply",
	})
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if comment.ID != "c100" || comment.ParentID != "c2" || comment.Content != "a reply" {
		t.Errorf("Unexpected confirmed comment: %+v", comment)
	}
	if gotBody.PostID != "p1" {
		t.Errorf("Expected post id in request body, got %q", gotBody.PostID)
	}
}

func TestCreateCommentValidation(t *testing.T) {
	requests := 0
	_, client := newTestServer(t, func(e *echo.Echo) {
		e.POST("/api/posts/:post_id/comments", func(c echo.Context) error {
			requests++
			return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{}})
		})
	})

	tests := []struct {
		name string
		req  models.CreateCommentRequest
	}{
		{name: "missing post id", req: models.CreateCommentRequest{Content: "hi"}},
		{name: "empty content", req: models.CreateCommentRequest{PostID: "p1"}},
		{name: "content too long", req: models.CreateCommentRequest{PostID: "p1", Content: strings.Repeat("x", 501)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := client.CreateComment(context.Background(), tt.req); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
	if requests != 0 {
		t.Errorf("Invalid requests must not reach the server, got %d", requests)
	}
}
