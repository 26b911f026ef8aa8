// ABOUTME: Tests for the persisted session store
// ABOUTME: Covers login persistence, logout clearing, and identity resolution
package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserIDRoundTrip(t *testing.T) {
	s := NewTestStore(t)

	id, err := s.UserID()
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, s.SetUserID("u1"))
	id, err = s.UserID()
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	require.NoError(t, s.ClearUserID())
	id, err = s.UserID()
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestSetUserIDRejectsEmpty(t *testing.T) {
	s := NewTestStore(t)
	err := s.SetUserID("")
	if !errors.Is(err, ErrNoIdentity) {
		t.Fatalf("expected ErrNoIdentity, got %v", err)
	}
}

func TestIdentity(t *testing.T) {
	s := NewTestStore(t)

	ident, err := s.Identity()
	require.NoError(t, err)
	assert.False(t, ident.Present())
	_, err = ident.Require()
	assert.ErrorIs(t, err, ErrNoIdentity)

	require.NoError(t, s.SetUserID("u42"))
	ident, err = s.Identity()
	require.NoError(t, err)
	uid, err := ident.Require()
	require.NoError(t, err)
	assert.Equal(t, "u42", uid)
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetUserID("persisted"))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	id, err := s.UserID()
	require.NoError(t, err)
	assert.Equal(t, "persisted", id)
}
