// ABOUTME: Load states, snapshots, and view lifetime bookkeeping shared by screens
// ABOUTME: Generations plus a cancellable lifetime context discard stale results
package viewmodel

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// State is where a screen is in its fetch cycle.
type State int

const (
	Idle State = iota
	Loading
	Loaded
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	}
	return "unknown"
}

var (
	// ErrNotMounted is returned by Load on a screen that is not on display.
	ErrNotMounted = errors.New("view is not mounted")

	// ErrStale is returned by Load when its result was discarded because the
	// view unmounted or a newer load started.
	ErrStale = errors.New("load result discarded")
)

// Snapshot is an immutable copy of a List's state.
type Snapshot[T any] struct {
	State State
	Items []T
	Err   error
}

// ValueSnapshot is an immutable copy of a Value's state. Value is nil while
// nothing is loaded (or after a clear-before-set reload started).
type ValueSnapshot[T any] struct {
	State State
	Value *T
	Err   error
}

type options struct {
	logger         *log.Logger
	clearBeforeSet bool
}

// Option configures a List or Value.
type Option func(*options)

func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ClearBeforeSet makes a Value publish an empty value when a reload starts,
// so hosts redraw from scratch once the new value lands.
func ClearBeforeSet() Option {
	return func(o *options) { o.clearBeforeSet = true }
}

func buildOptions(opts []Option) options {
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// lifetime tracks the mounted view and the load generation. Callers hold
// their own mutex around every method.
type lifetime struct {
	ctx    context.Context
	cancel context.CancelFunc
	gen    uint64
}

func (lt *lifetime) mount(parent context.Context) {
	if lt.cancel != nil {
		lt.cancel()
	}
	lt.ctx, lt.cancel = context.WithCancel(parent)
	lt.gen++
}

func (lt *lifetime) unmount() {
	if lt.cancel != nil {
		lt.cancel()
		lt.cancel = nil
	}
	lt.ctx = nil
	lt.gen++
}

func (lt *lifetime) mounted() bool {
	return lt.ctx != nil
}

// next starts a new load generation bound to the current lifetime.
func (lt *lifetime) next() (context.Context, uint64, bool) {
	if lt.ctx == nil {
		return nil, 0, false
	}
	lt.gen++
	return lt.ctx, lt.gen, true
}

func (lt *lifetime) current(ctx context.Context, gen uint64) bool {
	return lt.ctx != nil && gen == lt.gen && ctx.Err() == nil
}
