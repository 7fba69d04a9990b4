package api

import (
	"context"
	"net/http"

	"github.com/Tosmel2/Monivoza/internal/core"
	"github.com/Tosmel2/Monivoza/internal/log"
	"github.com/Tosmel2/Monivoza/internal/session"
)

// Login authenticates with the backend and, on success, replaces any
// prior session and persists the new one.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", false, body, &result,
		func(status int, serverMsg string) error {
			if serverMsg == "" {
				serverMsg = "Login failed"
			}
			return &AuthError{Message: serverMsg}
		})
	if err != nil {
		return LoginResult{}, err
	}

	c.setSession(session.Session{Token: result.Token, User: result.User})
	c.logger.InfoContext(ctx, "logged in", log.FieldUserEmail, result.User.Email)
	return result, nil
}

// Register creates a backend account. It does not establish a session;
// the caller logs in afterwards. Obvious input mistakes are caught
// before a request is made.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (core.User, error) {
	if err := core.ValidateEmail(req.Email); err != nil {
		return core.User{}, &ValidationError{Message: err.Error()}
	}
	if err := core.ValidatePassword(req.Password); err != nil {
		return core.User{}, &ValidationError{Message: err.Error()}
	}

	var user core.User
	err := c.do(ctx, http.MethodPost, "/auth/register", false, req, &user,
		func(status int, serverMsg string) error {
			if serverMsg == "" {
				serverMsg = "Registration failed"
			}
			return &ValidationError{Message: serverMsg}
		})
	if err != nil {
		return core.User{}, err
	}
	return user, nil
}

// Verify reports whether the held token is still accepted by the
// backend. It is false, never an error, when no token is held or the
// check cannot complete.
func (c *Client) Verify(ctx context.Context) bool {
	if !c.IsAuthenticated() {
		return false
	}
	err := c.do(ctx, http.MethodGet, "/auth/verify", true, nil, nil,
		func(status int, serverMsg string) error {
			return &AuthError{Message: "token rejected"}
		})
	if err != nil {
		c.logger.DebugContext(ctx, "token verification failed", log.FieldError, err)
		return false
	}
	return true
}

// Me fetches the current user profile and refreshes the persisted copy.
func (c *Client) Me(ctx context.Context) (core.User, error) {
	if !c.IsAuthenticated() {
		return core.User{}, ErrNotAuthenticated
	}

	var user core.User
	err := c.do(ctx, http.MethodGet, "/auth/me", true, nil, &user,
		func(status int, serverMsg string) error {
			if serverMsg == "" {
				serverMsg = "Failed to fetch user"
			}
			return &AuthError{Message: serverMsg}
		})
	if err != nil {
		return core.User{}, err
	}

	c.setSession(session.Session{Token: c.Token(), User: user})
	return user, nil
}
