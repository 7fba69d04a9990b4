// Package session owns the client's authenticated session: the bearer
// token plus the cached user profile, persisted as exactly those two
// values across restarts.
package session

import (
	"github.com/Tosmel2/Monivoza/internal/core"
)

// Session is the live authentication state. It is replaced wholesale on
// login and logout, never mutated in place.
type Session struct {
	Token string    `json:"token"`
	User  core.User `json:"user"`
}

// Store persists a session between runs. Load reports ok=false when no
// session is stored; Clear is idempotent.
type Store interface {
	Load() (s Session, ok bool, err error)
	Save(s Session) error
	Clear() error
}

// Keys under which the two persisted values live, regardless of
// backend.
const (
	KeyToken = "auth_token"
	KeyUser  = "user"
)
