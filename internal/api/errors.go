package api

import "fmt"

// The client never swallows a failure: every error carries a
// human-readable message, either the server-supplied one or a fallback
// naming the failed operation.

// AuthError means no token was held for an authenticated operation, or
// the server rejected the credentials or token.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// ErrNotAuthenticated is returned before any network activity when an
// authenticated operation is attempted without a held token.
var ErrNotAuthenticated = &AuthError{Message: "Not authenticated"}

// ValidationError means the server rejected a request body.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// APIError is any other non-2xx response from the backend.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// NetworkError means the request never completed or the response body
// could not be decoded.
type NetworkError struct {
	Operation string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
