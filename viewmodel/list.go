// ABOUTME: Generic list view-model with fetch-on-mount and trigger-driven refetch
// ABOUTME: Backed by a liststore.Store so local merges and server replaces stay deduplicated
package viewmodel

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/harperreed/riwora/liststore"
)

// Fetch loads a collection. It returns an error only for conditions the user
// must see (a missing identity); transport failures are already an empty list.
type Fetch[T any] func(ctx context.Context) ([]T, error)

// List holds the last fetched collection for one screen.
type List[T liststore.Keyer] struct {
	mu        sync.Mutex
	fetch     Fetch[T]
	store     *liststore.Store[T]
	state     State
	err       error
	life      lifetime
	listeners []func(Snapshot[T])
	unwatch   []func()
	logger    *log.Logger
}

func NewList[T liststore.Keyer](fetch Fetch[T], store *liststore.Store[T], opts ...Option) *List[T] {
	if store == nil {
		store = liststore.New[T]()
	}
	o := buildOptions(opts)
	return &List[T]{
		fetch:  fetch,
		store:  store,
		logger: o.logger,
	}
}

// Mount starts the view lifetime under parent and loads.
func (l *List[T]) Mount(parent context.Context) error {
	l.mu.Lock()
	l.life.mount(parent)
	l.mu.Unlock()
	return l.Load()
}

// Unmount ends the view lifetime; in-flight results are discarded.
func (l *List[T]) Unmount() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.life.unmount()
}

func (l *List[T]) Mounted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.life.mounted()
}

// Load enters Loading, fetches, and replaces the list with the result.
func (l *List[T]) Load() error {
	l.mu.Lock()
	ctx, gen, ok := l.life.next()
	if !ok {
		l.mu.Unlock()
		return ErrNotMounted
	}
	l.state = Loading
	l.mu.Unlock()
	l.notify()

	items, err := l.fetch(ctx)

	l.mu.Lock()
	if !l.life.current(ctx, gen) {
		l.mu.Unlock()
		l.logger.Debug("discarding stale list result", "generation", gen)
		return ErrStale
	}
	if err == nil {
		l.store.Replace(items)
	} else {
		l.store.Clear()
	}
	l.state = Loaded
	l.err = err
	l.mu.Unlock()
	l.notify()
	return err
}

// Refresh is a user-initiated Load.
func (l *List[T]) Refresh() error {
	return l.Load()
}

// Watch reloads the list every time t is bumped while the view is mounted.
func (l *List[T]) Watch(t *Trigger) {
	cancel := t.Subscribe(func(uint64) {
		if l.Mounted() {
			_ = l.Load()
		}
	})
	l.mu.Lock()
	l.unwatch = append(l.unwatch, cancel)
	l.mu.Unlock()
}

// Close drops every trigger subscription and ends the lifetime.
func (l *List[T]) Close() {
	l.mu.Lock()
	unwatch := l.unwatch
	l.unwatch = nil
	l.life.unmount()
	l.mu.Unlock()
	for _, fn := range unwatch {
		fn()
	}
}

// OnChange registers fn to receive a snapshot after every state change.
func (l *List[T]) OnChange(fn func(Snapshot[T])) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

func (l *List[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot[T]{State: l.state, Items: l.store.Items(), Err: l.err}
}

func (l *List[T]) Items() []T {
	return l.store.Items()
}

func (l *List[T]) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *List[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Upsert merges one confirmed item into the list in place.
func (l *List[T]) Upsert(item T) {
	l.store.Upsert(item)
	l.notify()
}

func (l *List[T]) Merge(items ...T) {
	l.store.Merge(items...)
	l.notify()
}

func (l *List[T]) AddProvisional(correlationID string, item T) {
	l.store.AddProvisional(correlationID, item)
	l.notify()
}

func (l *List[T]) Confirm(correlationID string, item T) {
	l.store.Confirm(correlationID, item)
	l.notify()
}

func (l *List[T]) Discard(correlationID string) {
	l.store.Discard(correlationID)
	l.notify()
}

func (l *List[T]) IsProvisional(key string) bool {
	return l.store.IsProvisional(key)
}

func (l *List[T]) notify() {
	l.mu.Lock()
	listeners := append([]func(Snapshot[T]){}, l.listeners...)
	snap := Snapshot[T]{State: l.state, Items: l.store.Items(), Err: l.err}
	l.mu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
}
