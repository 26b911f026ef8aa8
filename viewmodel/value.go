// ABOUTME: Single-value view-model for aggregates such as the dashboard and profile
// ABOUTME: Optionally clears the previous value before publishing a reload
package viewmodel

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// FetchOne loads a single value; nil means "nothing to show".
type FetchOne[T any] func(ctx context.Context) (*T, error)

type Value[T any] struct {
	mu             sync.Mutex
	fetch          FetchOne[T]
	value          *T
	state          State
	err            error
	life           lifetime
	clearBeforeSet bool
	listeners      []func(ValueSnapshot[T])
	unwatch        []func()
	logger         *log.Logger
}

func NewValue[T any](fetch FetchOne[T], opts ...Option) *Value[T] {
	o := buildOptions(opts)
	return &Value[T]{
		fetch:          fetch,
		clearBeforeSet: o.clearBeforeSet,
		logger:         o.logger,
	}
}

func (v *Value[T]) Mount(parent context.Context) error {
	v.mu.Lock()
	v.life.mount(parent)
	v.mu.Unlock()
	return v.Load()
}

func (v *Value[T]) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.life.unmount()
}

func (v *Value[T]) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.life.mounted()
}

func (v *Value[T]) Load() error {
	v.mu.Lock()
	ctx, gen, ok := v.life.next()
	if !ok {
		v.mu.Unlock()
		return ErrNotMounted
	}
	v.state = Loading
	if v.clearBeforeSet {
		v.value = nil
	}
	v.mu.Unlock()
	v.notify()

	val, err := v.fetch(ctx)

	v.mu.Lock()
	if !v.life.current(ctx, gen) {
		v.mu.Unlock()
		v.logger.Debug("discarding stale value result", "generation", gen)
		return ErrStale
	}
	v.value = val
	v.state = Loaded
	v.err = err
	v.mu.Unlock()
	v.notify()
	return err
}

func (v *Value[T]) Refresh() error {
	return v.Load()
}

func (v *Value[T]) Watch(t *Trigger) {
	cancel := t.Subscribe(func(uint64) {
		if v.Mounted() {
			_ = v.Load()
		}
	})
	v.mu.Lock()
	v.unwatch = append(v.unwatch, cancel)
	v.mu.Unlock()
}

func (v *Value[T]) Close() {
	v.mu.Lock()
	unwatch := v.unwatch
	v.unwatch = nil
	v.life.unmount()
	v.mu.Unlock()
	for _, fn := range unwatch {
		fn()
	}
}

func (v *Value[T]) OnChange(fn func(ValueSnapshot[T])) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = append(v.listeners, fn)
}

func (v *Value[T]) Snapshot() ValueSnapshot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Get returns the current value, or nil.
func (v *Value[T]) Get() *T {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.value == nil {
		return nil
	}
	out := *v.value
	return &out
}

func (v *Value[T]) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *Value[T]) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Set replaces the value locally, e.g. after an optimistic toggle.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	v.value = &val
	v.mu.Unlock()
	v.notify()
}

func (v *Value[T]) snapshotLocked() ValueSnapshot[T] {
	snap := ValueSnapshot[T]{State: v.state, Err: v.err}
	if v.value != nil {
		copied := *v.value
		snap.Value = &copied
	}
	return snap
}

func (v *Value[T]) notify() {
	v.mu.Lock()
	listeners := append([]func(ValueSnapshot[T]){}, v.listeners...)
	snap := v.snapshotLocked()
	v.mu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
}
