package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Tosmel2/Monivoza/internal/api/apitest"
	"github.com/Tosmel2/Monivoza/internal/session"
)

func newTestClient(t *testing.T, srv *apitest.Server) (*Client, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	c := New(Config{BaseURL: srv.URL(), Store: store})
	return c, store
}

func login(t *testing.T, c *Client, srv *apitest.Server) {
	t.Helper()
	email, password := srv.Credentials()
	if _, err := c.Login(context.Background(), email, password); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestLoginSuccessEstablishesSession(t *testing.T) {
	srv := apitest.New(t)
	c, store := newTestClient(t, srv)

	email, password := srv.Credentials()
	result, err := c.Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token != srv.Token() {
		t.Errorf("token = %q, want %q", result.Token, srv.Token())
	}
	if result.User.Email != email {
		t.Errorf("user email = %q, want %q", result.User.Email, email)
	}
	if !c.IsAuthenticated() {
		t.Error("expected authenticated client after login")
	}

	// Session persisted
	persisted, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("persisted session: ok=%v err=%v", ok, err)
	}
	if persisted.Token != srv.Token() {
		t.Errorf("persisted token = %q, want %q", persisted.Token, srv.Token())
	}
}

func TestLoginWrongPasswordSurfacesServerMessage(t *testing.T) {
	srv := apitest.New(t)
	c, _ := newTestClient(t, srv)

	email, _ := srv.Credentials()
	_, err := c.Login(context.Background(), email, "wrong-password")
	if err == nil {
		t.Fatal("expected error")
	}
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %T", err)
	}
	if authErr.Message != "Invalid credentials" {
		t.Errorf("message = %q, want %q", authErr.Message, "Invalid credentials")
	}
	if c.IsAuthenticated() {
		t.Error("failed login must not establish a session")
	}
}

func TestLoginReplacesPriorSession(t *testing.T) {
	srv := apitest.New(t)
	c, _ := newTestClient(t, srv)

	login(t, c, srv)
	first := c.Token()
	login(t, c, srv)
	if c.Token() != first {
		t.Errorf("token changed unexpectedly")
	}
	if user, ok := c.CurrentUser(); !ok || user.Email != srv.User().Email {
		t.Errorf("current user = %+v ok=%v", user, ok)
	}
}

func TestLogoutIsLocalAndIdempotent(t *testing.T) {
	srv := apitest.New(t)
	c, store := newTestClient(t, srv)
	login(t, c, srv)

	before := srv.TotalHits()
	c.Logout()
	c.Logout()

	if c.IsAuthenticated() {
		t.Error("expected unauthenticated client after logout")
	}
	if _, ok, _ := store.Load(); ok {
		t.Error("expected persisted session cleared")
	}
	if srv.TotalHits() != before {
		t.Error("logout must not make network calls")
	}
}

func TestRestoreRehydratesSession(t *testing.T) {
	srv := apitest.New(t)
	store := session.NewMemoryStore()
	if err := store.Save(session.Session{Token: srv.Token(), User: srv.User()}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	c := New(Config{BaseURL: srv.URL(), Store: store})
	if c.IsAuthenticated() {
		t.Fatal("client must not load the store before Restore")
	}
	if err := c.Restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !c.IsAuthenticated() {
		t.Fatal("expected session after restore")
	}
	if user, ok := c.CurrentUser(); !ok || user.Email != srv.User().Email {
		t.Fatalf("current user = %+v ok=%v", user, ok)
	}
	if !c.Verify(context.Background()) {
		t.Error("restored token should verify")
	}
}

func TestRegisterValidatesBeforeNetwork(t *testing.T) {
	srv := apitest.New(t)
	c, _ := newTestClient(t, srv)

	cases := []RegisterRequest{
		{FirstName: "A", LastName: "B", Email: "not-an-email", Password: "longenough"},
		{FirstName: "A", LastName: "B", Email: "a@b.co", Password: "short"},
	}
	for _, req := range cases {
		_, err := c.Register(context.Background(), req)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected *ValidationError for %+v, got %v", req, err)
		}
	}
	if srv.TotalHits() != 0 {
		t.Errorf("expected zero network calls, got %d", srv.TotalHits())
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := apitest.New(t)
	c, _ := newTestClient(t, srv)

	email, _ := srv.Credentials()
	_, err := c.Register(context.Background(), RegisterRequest{
		FirstName: "Jane", LastName: "Doe", Email: email, Password: "longenough",
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if vErr.Message != "Email already registered" {
		t.Errorf("message = %q", vErr.Message)
	}
	if c.IsAuthenticated() {
		t.Error("register must not establish a session")
	}
}

func TestRegisterSuccessDoesNotEstablishSession(t *testing.T) {
	srv := apitest.New(t)
	c, _ := newTestClient(t, srv)

	user, err := c.Register(context.Background(), RegisterRequest{
		FirstName: "New", LastName: "User", Email: "new@example.com", Password: "longenough",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "new@example.com" {
		t.Errorf("user email = %q", user.Email)
	}
	if c.IsAuthenticated() {
		t.Error("register must not establish a session")
	}
}

func TestVerify(t *testing.T) {
	srv := apitest.New(t)
	c, _ := newTestClient(t, srv)

	if c.Verify(context.Background()) {
		t.Error("verify must be false without a token")
	}
	if srv.TotalHits() != 0 {
		t.Error("verify without a token must not hit the network")
	}

	login(t, c, srv)
	if !c.Verify(context.Background()) {
		t.Error("verify should be true after login")
	}

	// Stale token
	stale := New(Config{BaseURL: srv.URL()})
	stale.setSession(session.Session{Token: "expired"})
	if stale.Verify(context.Background()) {
		t.Error("verify should be false for a rejected token")
	}
}

func TestMe(t *testing.T) {
	srv := apitest.New(t)
	c, store := newTestClient(t, srv)

	// No token: immediate failure, no network
	_, err := c.Me(context.Background())
	var authErr *AuthError
	if !errors.As(err, &authErr) || authErr.Message != "Not authenticated" {
		t.Fatalf("expected Not authenticated, got %v", err)
	}
	if srv.TotalHits() != 0 {
		t.Error("Me without a token must not hit the network")
	}

	login(t, c, srv)
	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if user.Email != srv.User().Email {
		t.Errorf("user = %+v", user)
	}

	// Refreshed profile persisted
	persisted, ok, _ := store.Load()
	if !ok || persisted.User.Email != srv.User().Email {
		t.Errorf("persisted user = %+v ok=%v", persisted.User, ok)
	}

	// Rejected token
	stale := New(Config{BaseURL: srv.URL()})
	stale.setSession(session.Session{Token: "expired"})
	if _, err := stale.Me(context.Background()); !errors.As(err, &authErr) {
		t.Errorf("expected *AuthError for rejected token, got %v", err)
	}
}

func TestNetworkErrorOnUnreachableServer(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()

	c := New(Config{BaseURL: dead.URL})
	_, err := c.Login(context.Background(), "a@b.co", "longenough")
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %T: %v", err, err)
	}
}

func TestNetworkErrorOnMalformedResponse(t *testing.T) {
	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("not json"))
	}))
	defer garbage.Close()

	c := New(Config{BaseURL: garbage.URL})
	_, err := c.Login(context.Background(), "a@b.co", "longenough")
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %T: %v", err, err)
	}
}
