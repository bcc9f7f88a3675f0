// Package backend talks to the leave management API. A Client is bound to a
// single session; the bearer token travels through an oauth2.Transport so
// request code never touches credentials.
package backend

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
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/session"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout  = 15 * time.Second
	defaultMaxPages = 50
	maxErrorBody    = 64 << 10
)

// Config is shared by every per-session client. MaxPages bounds
// ListApproved; a larger backlog is truncated with a warning.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	MaxPages  int
	Transport http.RoundTripper
}

var _ leave.Gateway = (*Client)(nil)

type Client struct {
	baseURL  string
	http     *http.Client
	sess     *session.Session
	maxPages int
}

func NewClient(cfg Config, sess *session.Session) *Client {
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: &oauth2.Transport{Source: sess, Base: base},
		},
		sess:     sess,
		maxPages: maxPages,
	}
}

// Factory adapts NewClient to leave.GatewayFactory.
func Factory(cfg Config) leave.GatewayFactory {
	return func(sess *session.Session) leave.Gateway {
		return NewClient(cfg, sess)
	}
}

type envelope[T any] struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Data    T      `json:"data"`
}

func get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var env envelope[T]
	if err := c.do(ctx, http.MethodGet, path, query, nil, &env); err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}

func send[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var env envelope[T]
	if err := c.do(ctx, method, path, nil, body, &env); err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := middleware.GetReqID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, session.ErrSessionInvalidated) || errors.Is(err, session.ErrSessionExpired) {
			return fmt.Errorf("%w: %w", leave.ErrUnauthorized, err)
		}
		return fmt.Errorf("%w: %s %s: %w", leave.ErrBackendUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp, method, path)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %w", leave.ErrBackendUnavailable, method, path, err)
	}
	return nil
}

func (c *Client) statusError(resp *http.Response, method, path string) error {
	apiErr := &APIError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Message:    readMessage(resp.Body),
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.sess.Invalidate()
		slog.Warn("Backend rejected session, invalidating",
			"subject", c.sess.Subject(),
			"path", path)
		apiErr.Err = leave.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		apiErr.Err = leave.ErrLeaveRequestNotFound
	case resp.StatusCode >= 500:
		apiErr.Err = leave.ErrBackendUnavailable
	default:
		apiErr.Err = ErrRequestRejected
	}
	return apiErr
}

func readMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}

func filterQuery(filter leave.LeaveRequestFilter) url.Values {
	q := url.Values{}
	for k, v := range filter.Params() {
		q.Set(k, v)
	}
	return q
}
