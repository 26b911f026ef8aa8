// ABOUTME: Ordered, id-keyed list store used to reconcile local and server items
// ABOUTME: Upsert keeps first-appearance position with last-write content; supports provisional items
package liststore

import "sync"

// Keyer is implemented by every entity that can live in a Store.
type Keyer interface {
	Key() string
}

// Matcher reports whether a confirmed server item stands for a provisional one.
type Matcher[T Keyer] func(provisional, confirmed T) bool

type entry[T Keyer] struct {
	item          T
	correlationID string
}

// Store is an ordered map keyed by Key(). The zero value is not usable; call New.
type Store[T Keyer] struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]*entry[T]
	pending map[string]string // correlation id -> key
	match   Matcher[T]
}

// Option configures a Store.
type Option[T Keyer] func(*Store[T])

// WithMatcher sets the rule used by Replace to retire provisional items whose
// server copy arrived under a different key.
func WithMatcher[T Keyer](m Matcher[T]) Option[T] {
	return func(s *Store[T]) { s.match = m }
}

func New[T Keyer](opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		entries: make(map[string]*entry[T]),
		pending: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upsert appends a new key at the end or replaces an existing key in place.
func (s *Store[T]) Upsert(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsert(item, "")
}

func (s *Store[T]) upsert(item T, correlationID string) {
	key := item.Key()
	if e, ok := s.entries[key]; ok {
		if e.correlationID != "" && correlationID == "" {
			delete(s.pending, e.correlationID)
		}
		e.item = item
		e.correlationID = correlationID
		return
	}
	s.order = append(s.order, key)
	s.entries[key] = &entry[T]{item: item, correlationID: correlationID}
}

// Merge appends items and collapses duplicates, the rule applied on every
// local mutation path.
func (s *Store[T]) Merge(items ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.upsert(item, "")
	}
}

// Replace makes the server list authoritative. Provisional items survive
// unless a confirmed item has the same key or satisfies the Matcher.
func (s *Store[T]) Replace(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var survivors []*entry[T]
	for _, key := range s.order {
		e := s.entries[key]
		if e.correlationID == "" {
			continue
		}
		if s.confirmedBy(e.item, items) {
			delete(s.pending, e.correlationID)
			continue
		}
		survivors = append(survivors, e)
	}

	s.order = s.order[:0]
	s.entries = make(map[string]*entry[T], len(items)+len(survivors))
	for _, item := range items {
		s.upsert(item, "")
	}
	for _, e := range survivors {
		s.upsert(e.item, e.correlationID)
	}
}

func (s *Store[T]) confirmedBy(provisional T, confirmed []T) bool {
	for _, c := range confirmed {
		if c.Key() == provisional.Key() {
			return true
		}
		if s.match != nil && s.match(provisional, c) {
			return true
		}
	}
	return false
}

// AddProvisional inserts an optimistic item tagged with a client correlation id.
func (s *Store[T]) AddProvisional(correlationID string, item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.pending[correlationID]; ok {
		s.remove(old)
	}
	s.pending[correlationID] = item.Key()
	s.upsert(item, correlationID)
}

// Confirm swaps the provisional item for the server-confirmed one, keeping its
// position. If the confirmed key is already present (a refetch won the race)
// the provisional entry is simply dropped.
func (s *Store[T]) Confirm(correlationID string, item T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.pending[correlationID]
	delete(s.pending, correlationID)
	if !ok {
		s.upsert(item, "")
		return
	}
	if _, exists := s.entries[item.Key()]; exists && item.Key() != key {
		s.remove(key)
		s.upsert(item, "")
		return
	}
	for i, k := range s.order {
		if k == key {
			s.order[i] = item.Key()
			break
		}
	}
	delete(s.entries, key)
	s.entries[item.Key()] = &entry[T]{item: item}
}

// Discard drops a provisional item, e.g. after the write failed.
func (s *Store[T]) Discard(correlationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key, ok := s.pending[correlationID]; ok {
		delete(s.pending, correlationID)
		s.remove(key)
	}
}

func (s *Store[T]) remove(key string) {
	if _, ok := s.entries[key]; !ok {
		return
	}
	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// IsProvisional reports whether the item stored under key is unconfirmed.
func (s *Store[T]) IsProvisional(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return ok && e.correlationID != ""
}

// Get returns the item stored under key.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	return e.item, true
}

// Items returns a snapshot in display order. It is never nil.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.entries[key].item)
	}
	return out
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Clear empties the store, provisional items included.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.entries = make(map[string]*entry[T])
	s.pending = make(map[string]string)
}

// Dedup collapses items to one entry per key: first-appearance position,
// last-occurrence content.
func Dedup[T Keyer](items []T) []T {
	index := make(map[string]int, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.Key()]; ok {
			out[i] = item
			continue
		}
		index[item.Key()] = len(out)
		out = append(out, item)
	}
	return out
}
