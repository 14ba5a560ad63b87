package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/deskstream/desk-client/internal/models"
	"github.com/deskstream/desk-client/internal/validators"
)

// ErrNotFound is returned when the server reports that the target of a
// request does not exist, so callers can tell it apart from generic failures.
var ErrNotFound = errors.New("target not found")

// Meta carries the pagination block returned alongside list responses.
type Meta struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// envelope is the response wrapper used by every desk API endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *Meta           `json:"meta,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Client issues requests against the desk backend with a fixed timeout and
// an opaque bearer token. A timed-out request surfaces as a plain error; the
// caller decides whether to revert optimistic state.
type Client struct {
	baseURL   string
	token     string
	http      *http.Client
	validator *validators.Validator
}

// NewClient creates a new Client
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		token:     token,
		http:      &http.Client{Timeout: timeout},
		validator: validators.NewValidator(),
	}
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
			return nil, fmt.Errorf("%s %s: %s (status %d)", method, path, env.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	env := &envelope{Success: true}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, env); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}
	return env, nil
}

// FetchNotifications returns one page of the viewer's notifications, newest
// first, with the server's pagination meta. Page and limit are clamped to
// the window the server accepts.
func (c *Client) FetchNotifications(ctx context.Context, page, limit int) ([]models.Notification, *Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	path := fmt.Sprintf("/api/notifications?page=%d&limit=%d", page, limit)
	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, nil, err
	}

	var data struct {
		Notifications []models.Notification `json:"notifications"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, nil, fmt.Errorf("decode notifications: %w", err)
	}
	return data.Notifications, env.Meta, nil
}

// MarkNotificationRead marks a single notification as read on the server.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	path := "/api/notifications/" + url.PathEscape(id) + "/read"
	_, err := c.do(ctx, http.MethodPut, path, nil)
	return err
}

// MarkAllNotificationsRead marks every notification of the viewer as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPut, "/api/notifications/read-all", nil)
	return err
}

// ToggleVote flips the viewer's vote on a post and returns the server's
// authoritative count and flag.
func (c *Client) ToggleVote(ctx context.Context, postID string) (models.VoteState, error) {
	path := "/api/posts/" + url.PathEscape(postID) + "/votes/toggle"
	env, err := c.do(ctx, http.MethodPost, path, nil)
	if err != nil {
		return models.VoteState{}, err
	}

	var state models.VoteState
	if err := json.Unmarshal(env.Data, &state); err != nil {
		return models.VoteState{}, fmt.Errorf("decode vote state: %w", err)
	}
	return state, nil
}

// CreateComment submits a new comment or reply and returns the confirmed
// record with its server-assigned id.
func (c *Client) CreateComment(ctx context.Context, req models.CreateCommentRequest) (models.Comment, error) {
	if err := c.validator.Validate(req); err != nil {
		return models.Comment{}, fmt.Errorf("invalid comment request: %w", err)
	}

	path := "/api/posts/" + url.PathEscape(req.PostID) + "/comments"
	env, err := c.do(ctx, http.MethodPost, path, req)
	if err != nil {
		return models.Comment{}, err
	}

	var data struct {
		Comment models.Comment `json:"comment"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return models.Comment{}, fmt.Errorf("decode comment: %w", err)
	}
	return data.Comment, nil
}
