package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	msgFetchNoteFailed = "Failed to fetch note"
	msgUpdateFailed    = "Update failed"
	msgDeleteFailed    = "Delete failed"
)

// Option configures a service client.
type Option func(*base)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(b *base) { b.http = hc }
}

// WithTimeout sets the per-request timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(b *base) { b.http = &http.Client{Timeout: d} }
}

// WithLogger sets the logger failures are reported to.
func WithLogger(log *slog.Logger) Option {
	return func(b *base) { b.log = log }
}

type base struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func newBase(baseURL string, opts ...Option) base {
	b := base{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// do sends a request and returns the response for any status; callers own the body.
func (b base) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	u := b.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return b.http.Do(req)
}

// call performs a JSON round trip. Any 2xx is success; out may be nil to
// ignore the response body.
func (b base) call(ctx context.Context, op, method, path string, query url.Values, body, out any, fallback string) error {
	resp, err := b.do(ctx, method, path, query, body)
	if err != nil {
		b.log.Error("request failed", "op", op, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp, fallback)
		b.log.Error("request rejected", "op", op, "status", resp.StatusCode, "error", apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		b.log.Error("decode response failed", "op", op, "error", err)
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// UsersClient talks to the users service.
type UsersClient struct {
	base
}

// NewUsersClient creates a client for the users service at baseURL.
func NewUsersClient(baseURL string, opts ...Option) *UsersClient {
	return &UsersClient{base: newBase(baseURL, opts...)}
}

// List fetches every registered user
func (c *UsersClient) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.call(ctx, "list users", http.MethodGet, "/users/", nil, nil, &users, ""); err != nil {
		return nil, err
	}
	return users, nil
}

// Create registers a user and returns it with its assigned id
func (c *UsersClient) Create(ctx context.Context, input CreateUserInput) (*User, error) {
	var user User
	if err := c.call(ctx, "create user", http.MethodPost, "/users/", nil, input, &user, ""); err != nil {
		return nil, err
	}
	return &user, nil
}

// NotesClient talks to the notes service.
type NotesClient struct {
	base
}

// NewNotesClient creates a client for the notes service at baseURL.
func NewNotesClient(baseURL string, opts ...Option) *NotesClient {
	return &NotesClient{base: newBase(baseURL, opts...)}
}

// List fetches notes. A positive ownerID restricts the result to that
// owner; zero means no filter and sends no user_id at all.
func (c *NotesClient) List(ctx context.Context, ownerID int64) ([]Note, error) {
	var query url.Values
	if ownerID > 0 {
		query = url.Values{"user_id": {strconv.FormatInt(ownerID, 10)}}
	}

	var notes []Note
	if err := c.call(ctx, "list notes", http.MethodGet, "/notes/", query, nil, &notes, ""); err != nil {
		return nil, err
	}
	return notes, nil
}

// Get fetches a single note. Failures carry a generic message only.
func (c *NotesClient) Get(ctx context.Context, id int64) (*Note, error) {
	var note Note
	err := c.call(ctx, "get note", http.MethodGet, notePath(id), nil, nil, &note, msgFetchNoteFailed)
	if err != nil {
		return nil, &APIError{Status: statusOf(err), fallback: msgFetchNoteFailed, wrapped: err}
	}
	return &note, nil
}

// Create adds a note
func (c *NotesClient) Create(ctx context.Context, input CreateNoteInput) (*Note, error) {
	var note Note
	if err := c.call(ctx, "create note", http.MethodPost, "/notes/", nil, input, &note, ""); err != nil {
		return nil, err
	}
	return &note, nil
}

// Update replaces the title and content of a note. The response body is not used.
func (c *NotesClient) Update(ctx context.Context, id int64, input UpdateNoteInput) error {
	return c.call(ctx, "update note", http.MethodPut, notePath(id), nil, input, nil, msgUpdateFailed)
}

// Delete removes a note. Only 204 No Content counts as success.
func (c *NotesClient) Delete(ctx context.Context, id int64) error {
	resp, err := c.do(ctx, http.MethodDelete, notePath(id), nil, nil)
	if err != nil {
		c.log.Error("request failed", "op", "delete note", "error", err)
		return fmt.Errorf("delete note: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	apiErr := decodeError(resp, msgDeleteFailed)
	apiErr.wrapped = ErrUnexpectedStatus
	c.log.Error("request rejected", "op", "delete note", "status", resp.StatusCode, "error", apiErr)
	return apiErr
}

func notePath(id int64) string {
	return "/notes/" + strconv.FormatInt(id, 10)
}

// statusOf returns the HTTP status behind err, or 0 for network failures.
func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
