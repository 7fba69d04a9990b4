// Package apitest provides a scripted fake of the Monivoza backend for
// client tests: fixed JSON routes, bearer-token checking, and request
// counting so tests can assert that an operation made zero network
// calls.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Tosmel2/Monivoza/internal/core"
)

type route struct {
	status int
	body   any
}

type Server struct {
	ts *httptest.Server

	mu     sync.Mutex
	hits   map[string]int
	routes map[string]route

	email    string
	password string
	token    string
	user     core.User
}

// New starts a stub backend with the given credentials. The server is
// shut down when the test finishes.
func New(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		hits:     make(map[string]int),
		routes:   make(map[string]route),
		email:    "jane@example.com",
		password: "correct-horse",
		token:    "test-token",
		user:     core.User{ID: 1, Email: "jane@example.com", FullName: "Jane Doe", Role: core.RoleUser},
	}
	s.ts = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.ts.Close)
	return s
}

// URL is the base URL clients should point at.
func (s *Server) URL() string { return s.ts.URL }

// Token is the bearer token issued on successful login.
func (s *Server) Token() string { return s.token }

// User is the profile issued on successful login.
func (s *Server) User() core.User { return s.user }

// Credentials returns the accepted email and password.
func (s *Server) Credentials() (email, password string) {
	return s.email, s.password
}

// Handle scripts a JSON response for an authenticated route, keyed by
// "METHOD /path".
func (s *Server) Handle(method, path string, status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = route{status: status, body: body}
}

// Hits reports how many requests reached a route.
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+path]
}

// TotalHits reports how many requests reached the server at all.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	s.mu.Lock()
	s.hits[key]++
	s.mu.Unlock()

	if r.Method == http.MethodPost && r.URL.Path == "/auth/login" {
		s.serveLogin(w, r)
		return
	}
	if r.Method == http.MethodPost && r.URL.Path == "/auth/register" {
		s.serveRegister(w, r)
		return
	}

	// Everything else requires the issued bearer token.
	if r.Header.Get("Authorization") != "Bearer "+s.token {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid or expired token"})
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/auth/verify" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method == http.MethodGet && r.URL.Path == "/auth/me" {
		writeJSON(w, http.StatusOK, s.user)
		return
	}

	s.mu.Lock()
	rt, ok := s.routes[key]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
		return
	}
	writeJSON(w, rt.status, rt.body)
}

func (s *Server) serveLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed request"})
		return
	}
	if creds.Email != s.email || creds.Password != s.password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": s.token, "user": s.user})
}

func (s *Server) serveRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed request"})
		return
	}
	if req.Email == s.email {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Email already registered"})
		return
	}
	writeJSON(w, http.StatusCreated, core.User{ID: 2, Email: req.Email, Role: core.RoleUser})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}
