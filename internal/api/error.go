// Package api holds the error taxonomy and request plumbing shared by the
// identity and order collaborator clients.
package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates the collaborator no longer recognizes the
	// session. Callers clear the session and redirect to login.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnavailable indicates the collaborator could not be reached or
	// failed server-side. Backend unavailability is not an authentication
	// failure: callers surface the error and leave all state untouched.
	ErrUnavailable = errors.New("service unavailable")
	// ErrRejected indicates the collaborator understood and refused the
	// request (e.g. a concurrent modification made a transition invalid).
	ErrRejected = errors.New("request rejected")
)

// Error is a collaborator call failure carrying the HTTP status for
// diagnostics. It unwraps to one of the sentinel kinds above.
type Error struct {
	Op     string
	Status int
	Body   string
	kind   error
}

func (e *Error) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: %v (status=%d body=%s)", e.Op, e.kind, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: %v (status=%d)", e.Op, e.kind, e.Status)
}

func (e *Error) Unwrap() error { return e.kind }

// StatusError builds an Error for op from an HTTP response status, using the
// default classification: 401/403 are unauthorized, 5xx is unavailable,
// anything else is a rejection.
func StatusError(op string, status int, body string) *Error {
	return &Error{Op: op, Status: status, Body: body, kind: Classify(status)}
}

// AuthError builds an Error whose kind is forced to ErrUnauthorized. The
// identity client uses it for 404 on session lookup, which means the session
// no longer exists rather than a missing resource.
func AuthError(op string, status int, body string) *Error {
	return &Error{Op: op, Status: status, Body: body, kind: ErrUnauthorized}
}

// TransportError wraps a failed round trip as ErrUnavailable.
func TransportError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}

// Classify maps an HTTP status to a sentinel error kind.
func Classify(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrUnauthorized
	case status >= 500:
		return ErrUnavailable
	default:
		return ErrRejected
	}
}
