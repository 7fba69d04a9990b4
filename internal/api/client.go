// Package api is the single point of contact with the Monivoza backend.
// The Client owns the live session, attaches the bearer token to every
// request, and translates HTTP responses into typed results or errors.
//
// Calls are independent: no retries, no deduplication, no ordering
// between concurrent requests and no response caching. Read-after-write
// consistency is the caller's job (re-fetch after a mutation).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Tosmel2/Monivoza/internal/core"
	"github.com/Tosmel2/Monivoza/internal/log"
	"github.com/Tosmel2/Monivoza/internal/session"
)

// Config holds everything a Client needs. Store and Logger may be nil;
// a memory store and the default logger are used in that case.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Store      session.Store
	Logger     *log.Logger
}

// Client is safe for concurrent use. The session is replaced, never
// mutated, so a reader either sees the whole old session or the whole
// new one.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   session.Store
	logger  *log.Logger

	mu   sync.RWMutex
	sess *session.Session
}

// New creates a Client. It performs no I/O; call Restore to rehydrate a
// persisted session.
func New(cfg Config) *Client {
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}
	store := cfg.Store
	if store == nil {
		store = session.NewMemoryStore()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   httpc,
		store:   store,
		logger:  logger.WithComponent(log.ComponentAPI),
	}
}

// Restore loads a previously persisted session, if any. Called once at
// startup.
func (c *Client) Restore() error {
	s, ok, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !ok {
		return nil
	}
	c.mu.Lock()
	c.sess = &s
	c.mu.Unlock()
	c.logger.Debug("session restored", log.FieldUserEmail, s.User.Email)
	return nil
}

// IsAuthenticated reports whether a token is currently held. No I/O.
func (c *Client) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sess != nil && c.sess.Token != ""
}

// Token returns the held bearer token, or "" when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.sess == nil {
		return ""
	}
	return c.sess.Token
}

// CurrentUser returns the cached user profile from the session.
func (c *Client) CurrentUser() (core.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.sess == nil {
		return core.User{}, false
	}
	return c.sess.User, true
}

// Logout drops the session locally and clears persisted state. It is
// synchronous, needs no network round-trip, and is idempotent.
func (c *Client) Logout() {
	c.mu.Lock()
	c.sess = nil
	c.mu.Unlock()
	if err := c.store.Clear(); err != nil {
		c.logger.Warn("failed to clear persisted session", log.FieldError, err)
	}
}

// setSession installs a new session and persists it. Persistence
// failures are logged, not fatal: the in-memory session still works for
// the rest of the process lifetime.
func (c *Client) setSession(s session.Session) {
	c.mu.Lock()
	c.sess = &s
	c.mu.Unlock()
	if err := c.store.Save(s); err != nil {
		c.logger.Warn("failed to persist session", log.FieldError, err)
	}
}

// errorBody is the shape the backend uses for failure messages.
type errorBody struct {
	Message string `json:"message"`
}

// do issues one request. body is marshaled as JSON when non-nil; a 2xx
// response is decoded into out when out is non-nil. On a non-2xx
// response, newErr builds the returned error from the server-supplied
// message (or "" when the body carries none).
func (c *Client) do(ctx context.Context, method, path string, authed bool, body, out any, newErr func(status int, serverMsg string) error) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &NetworkError{Operation: method + " " + path, Err: err}
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &NetworkError{Operation: method + " " + path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.Token())
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed",
			log.FieldMethod, method, log.FieldPath, path, log.FieldError, err)
		return &NetworkError{Operation: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "request completed",
		log.FieldMethod, method,
		log.FieldPath, path,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		_ = json.Unmarshal(raw, &eb)
		return newErr(resp.StatusCode, eb.Message)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &NetworkError{Operation: method + " " + path, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

// call is the shared path for authenticated operations: it fails with
// ErrNotAuthenticated before any network activity when no token is
// held, and maps non-2xx responses to an APIError whose message falls
// back to the given operation description.
func (c *Client) call(ctx context.Context, method, path string, body, out any, fallback string) error {
	if !c.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return c.do(ctx, method, path, true, body, out, func(status int, serverMsg string) error {
		msg := serverMsg
		if msg == "" {
			msg = fallback
		}
		return &APIError{Operation: fallback, StatusCode: status, Message: msg}
	})
}
