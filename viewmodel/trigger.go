// ABOUTME: Refresh triggers, the only cross-screen invalidation mechanism
// ABOUTME: Bumping a trigger reloads every mounted view watching it
package viewmodel

import "sync"

// Trigger is a versioned token. Subscribers run synchronously on Bump.
type Trigger struct {
	mu      sync.Mutex
	version uint64
	subs    map[int]func(uint64)
	nextID  int
}

func NewTrigger() *Trigger {
	return &Trigger{subs: make(map[int]func(uint64))}
}

// Bump advances the version and notifies subscribers.
func (t *Trigger) Bump() uint64 {
	t.mu.Lock()
	t.version++
	version := t.version
	subs := make([]func(uint64), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}
	t.mu.Unlock()

	for _, fn := range subs {
		fn(version)
	}
	return version
}

func (t *Trigger) Version() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.version
}

// Subscribe registers fn and returns a function that removes it.
func (t *Trigger) Subscribe(fn func(uint64)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.subs, id)
	}
}

// Triggers groups the app-wide refresh tokens.
type Triggers struct {
	Dashboard *Trigger
	Customers *Trigger
	Deals     *Trigger
	Tasks     *Trigger
}

func NewTriggers() *Triggers {
	return &Triggers{
		Dashboard: NewTrigger(),
		Customers: NewTrigger(),
		Deals:     NewTrigger(),
		Tasks:     NewTrigger(),
	}
}
