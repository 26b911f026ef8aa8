// ABOUTME: Test utilities for creating isolated session stores
// ABOUTME: Uses in-memory BadgerDB so tests never touch the user's data dir
package session

import "testing"

// NewTestStore opens an in-memory store that is closed when the test ends.
func NewTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("Failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Logf("Warning: failed to close test store: %v", err)
		}
	})
	return s
}
