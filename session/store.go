// ABOUTME: Badger-backed local key-value store for persisted session state
// ABOUTME: Holds the single user_id key written by login and cleared by logout
package session

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v3"
)

// UserIDKey is the only key the client persists.
const UserIDKey = "user_id"

// Store wraps a badger database. Badger holds a directory lock, so only one
// process can open a given data dir at a time.
type Store struct {
	db *badger.DB
	mu sync.RWMutex
}

// Open opens (creating if needed) the store rooted at dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session dir: %w", err)
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory session store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Get returns the value for key, or nil when the key is absent.
func (s *Store) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		result, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	return result, err
}

func (s *Store) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// UserID returns the persisted user id, or "" when nobody is logged in.
func (s *Store) UserID() (string, error) {
	v, err := s.Get(UserIDKey)
	if err != nil {
		return "", fmt.Errorf("failed to read user id: %w", err)
	}
	return string(v), nil
}

// SetUserID persists the id returned by a successful login.
func (s *Store) SetUserID(id string) error {
	if id == "" {
		return ErrNoIdentity
	}
	if err := s.Set(UserIDKey, []byte(id)); err != nil {
		return fmt.Errorf("failed to save user id: %w", err)
	}
	return nil
}

// ClearUserID forgets the logged-in user.
func (s *Store) ClearUserID() error {
	if err := s.Delete(UserIDKey); err != nil {
		return fmt.Errorf("failed to clear user id: %w", err)
	}
	return nil
}

// Identity reads the user id once and returns it as an injectable Identity.
func (s *Store) Identity() (Identity, error) {
	id, err := s.UserID()
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: id}, nil
}
