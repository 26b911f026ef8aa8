// ABOUTME: Error types returned by gateway write operations
// ABOUTME: Carries the server-provided message or a generic fallback
package api

import (
	"errors"
	"fmt"

	"github.com/harperreed/riwora/session"
)

// GenericMessage is shown when the server gave no usable error text.
const GenericMessage = "An unknown API error occurred"

// ErrMissingIdentity is returned by identity-scoped writes called without a
// user id. No request is sent.
var ErrMissingIdentity = session.ErrNoIdentity

// Error is a failed write. Message is safe to show to the user.
type Error struct {
	Op      string
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// UserMessage extracts the user-facing text from err, falling back to
// GenericMessage for errors that did not come from the gateway.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrMissingIdentity) {
		return "User ID is missing"
	}
	return GenericMessage
}
