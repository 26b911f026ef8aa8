// ABOUTME: Current-user identity resolved once at startup and injected downward
// ABOUTME: An empty identity means nobody is logged in
package session

import "errors"

// ErrNoIdentity is returned when an identity-scoped operation runs without a
// logged-in user.
var ErrNoIdentity = errors.New("no user identity: log in first")

// Identity is the resolved current user. The zero value is "not logged in".
type Identity struct {
	UserID string
}

// Present reports whether a user is logged in.
func (i Identity) Present() bool {
	return i.UserID != ""
}

// Require returns the user id or ErrNoIdentity.
func (i Identity) Require() (string, error) {
	if !i.Present() {
		return "", ErrNoIdentity
	}
	return i.UserID, nil
}
