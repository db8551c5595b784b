package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"
)

// Config identifies the Supabase project the client talks to.
type Config struct {
	BaseURL *url.URL
	AnonKey string
}

// Client builds and executes authenticated requests against one Supabase
// project. Safe for concurrent use; the held session is mutex-guarded and
// each request snapshots the access token at build time.
type Client struct {
	cfg        Config
	httpClient *http.Client

	mu      sync.RWMutex
	session *Session
	store   SessionStore // optional write-through persistence
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Used by tests to
// inject an httptest transport; production code keeps the default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSessionStore attaches a persistent session store. Any session it
// already holds becomes the client's current session.
func WithSessionStore(store SessionStore) Option {
	return func(c *Client) { c.store = store }
}

// NewClient creates a client for the given project configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store != nil {
		session, err := c.store.LoadSession()
		if err != nil {
			slog.Warn("failed to load persisted session", "error", err)
		} else if session != nil {
			c.session = session
		}
	}
	return c
}

// RequestSpec describes one API request.
type RequestSpec struct {
	Method string // defaults to GET
	Path   string
	Query  url.Values
	Body   any    // JSON-marshaled when non-nil
	Prefer string // PostgREST preference header, set verbatim
	// Anonymous requests use the anon key as the bearer token instead of a
	// session access token (pre-auth endpoints: signup, token).
	Anonymous bool
}

// NewRequest builds an *http.Request for the spec. Requests that require
// auth fail with ErrMissingSession when no session is held.
func (c *Client) NewRequest(ctx context.Context, spec RequestSpec) (*http.Request, error) {
	bearer := c.cfg.AnonKey
	if !spec.Anonymous {
		token, ok := c.accessToken()
		if !ok {
			return nil, ErrMissingSession
		}
		bearer = token
	}

	u := *c.cfg.BaseURL
	u.Path = spec.Path
	u.RawQuery = spec.Query.Encode()

	method := spec.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if spec.Body != nil {
		encoded, err := json.Marshal(spec.Body)
		if err != nil {
			return nil, fmt.Errorf("supabase: encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("supabase: build request: %w", err)
	}

	req.Header.Set("apikey", c.cfg.AnonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if spec.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if spec.Prefer != "" {
		req.Header.Set("Prefer", spec.Prefer)
	}
	return req, nil
}

// Execute performs the request and decodes the 2xx body into T. Non-2xx
// responses return an *ErrorResponse; undecodable 2xx bodies return an
// error wrapping ErrCorruptPayload.
func Execute[T any](ctx context.Context, c *Client, spec RequestSpec) (T, error) {
	var payload T
	body, err := c.execute(ctx, spec)
	if err != nil {
		return payload, err
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}
	return payload, nil
}

// ExecuteVoid performs the request and discards any body. Used for calls
// that may legitimately return no content (delete).
func (c *Client) ExecuteVoid(ctx context.Context, spec RequestSpec) error {
	_, err := c.execute(ctx, spec)
	return err
}

// execute sends the request and classifies the response: 2xx returns the
// body bytes, anything else an *ErrorResponse.
func (c *Client) execute(ctx context.Context, spec RequestSpec) ([]byte, error) {
	req, err := c.NewRequest(ctx, spec)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase: %s %s: %w", req.Method, spec.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("supabase: read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newErrorResponse(resp.StatusCode, body)
	}
	return body, nil
}

// Session returns a copy of the current session, or nil when logged out.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	session := *c.session
	return &session
}

// CurrentUserID returns the authenticated user's id. ok is false when
// logged out.
func (c *Client) CurrentUserID() (uuid.UUID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return uuid.Nil, false
	}
	return c.session.User.ID, true
}

// SetSession installs a session and writes it through to the session store
// when one is configured.
func (c *Client) SetSession(session Session) {
	c.mu.Lock()
	c.session = &session
	store := c.store
	c.mu.Unlock()

	if store != nil {
		if err := store.Save(session); err != nil {
			slog.Warn("failed to persist session", "error", err)
		}
	}
}

// ClearSession drops the held session and clears the session store when one
// is configured.
func (c *Client) ClearSession() {
	c.mu.Lock()
	c.session = nil
	store := c.store
	c.mu.Unlock()

	if store != nil {
		if err := store.Clear(); err != nil {
			slog.Warn("failed to clear persisted session", "error", err)
		}
	}
}

func (c *Client) accessToken() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return "", false
	}
	return c.session.AccessToken, true
}
