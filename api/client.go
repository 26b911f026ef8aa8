// ABOUTME: REST gateway client for the CRM backend
// ABOUTME: One HTTP call per operation; reads fall back to empty values, writes return *Error
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Client talks to the REST API rooted at baseURL (including the /api prefix).
// It holds no per-user state and is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
	timeout time.Duration
	now     func() time.Time
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithClock overrides the time source used for cache-busting parameters.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  log.New(io.Discard),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (int, []byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

// serverError returns the "error" field of a JSON object body, if any.
func serverError(data []byte) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}
	return envelope.Error
}

func ok(status int) bool {
	return status >= 200 && status < 300
}

// read performs a GET and decodes into out. Failures are logged and reported
// as false; callers substitute their documented fallback.
func (c *Client) read(ctx context.Context, op, path string, query url.Values, out any) bool {
	status, data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err == nil && !ok(status) {
		err = fmt.Errorf("unexpected status %d", status)
	}
	if err == nil {
		if msg := serverError(data); msg != "" {
			err = errors.New(msg)
		}
	}
	if err == nil {
		err = json.Unmarshal(data, out)
	}
	if err != nil {
		c.logger.Warn("read failed, using fallback", "op", op, "url", path, "err", err)
		return false
	}
	return true
}

// write performs a mutating call. A 2xx body carrying an "error" field is a
// failure too.
func (c *Client) write(ctx context.Context, op, method, path string, body, out any) error {
	status, data, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return &Error{Op: op, Message: GenericMessage, Cause: err}
	}

	msg := serverError(data)
	if !ok(status) {
		if msg == "" {
			msg = GenericMessage
		}
		return &Error{Op: op, Status: status, Message: msg}
	}
	if msg != "" {
		return &Error{Op: op, Status: status, Message: msg}
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Op: op, Status: status, Message: GenericMessage, Cause: err}
		}
	}
	return nil
}

// readList is the shared list-read shape: fallback is an empty, non-nil slice.
func readList[T any](ctx context.Context, c *Client, op, path string, query url.Values) []T {
	var out []T
	if !c.read(ctx, op, path, query, &out) || out == nil {
		return []T{}
	}
	return out
}

func (c *Client) missingIdentity(op string) {
	c.logger.Warn("missing user id, skipping request", "op", op)
}

func userQuery(uid string) url.Values {
	return url.Values{"user_id": {uid}}
}
