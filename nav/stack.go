// ABOUTME: Navigation stack of routes with typed params
// ABOUTME: The root is chosen once from the resolved identity: Login or Dashboard
package nav

import (
	"sync"

	"github.com/harperreed/riwora/session"
)

type Entry struct {
	Route  Route
	Params any
}

// ParamsAs extracts e's params as T.
func ParamsAs[T any](e Entry) (T, bool) {
	p, ok := e.Params.(T)
	return p, ok
}

type Stack struct {
	mu        sync.Mutex
	entries   []Entry
	listeners []func(Entry)
}

// NewStack starts at Login when nobody is logged in, else at Dashboard. This
// is the only place the app checks for a missing identity before rendering.
func NewStack(ident session.Identity) *Stack {
	root := Entry{Route: Login}
	if ident.Present() {
		root = Entry{Route: Dashboard}
	}
	return &Stack{entries: []Entry{root}}
}

func (s *Stack) Current() Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[len(s.entries)-1]
}

func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Entries returns a copy of the stack, root first.
func (s *Stack) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

func (s *Stack) Push(route Route, params any) error {
	if err := validate(route, params); err != nil {
		return err
	}
	s.mu.Lock()
	s.entries = append(s.entries, Entry{Route: route, Params: params})
	s.mu.Unlock()
	s.notify()
	return nil
}

// Navigate returns to route if it is already on the stack, replacing its
// params, otherwise pushes it.
func (s *Stack) Navigate(route Route, params any) error {
	if err := validate(route, params); err != nil {
		return err
	}
	s.mu.Lock()
	found := false
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Route == route {
			s.entries = s.entries[:i+1]
			s.entries[i].Params = params
			found = true
			break
		}
	}
	if !found {
		s.entries = append(s.entries, Entry{Route: route, Params: params})
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// Pop removes the top entry. The root is never popped.
func (s *Stack) Pop() (Entry, bool) {
	s.mu.Lock()
	if len(s.entries) == 1 {
		s.mu.Unlock()
		return Entry{}, false
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	s.mu.Unlock()
	s.notify()
	return top, true
}

// Reset replaces the whole stack with route, as after login or logout.
func (s *Stack) Reset(route Route, params any) error {
	if err := validate(route, params); err != nil {
		return err
	}
	s.mu.Lock()
	s.entries = []Entry{{Route: route, Params: params}}
	s.mu.Unlock()
	s.notify()
	return nil
}

// OnChange registers fn to receive the new top entry after every move.
func (s *Stack) OnChange(fn func(Entry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Stack) notify() {
	s.mu.Lock()
	top := s.entries[len(s.entries)-1]
	listeners := append([]func(Entry){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(top)
	}
}
