// ABOUTME: Shared fake REST backend for view-model tests
// ABOUTME: Routes by method and path and counts requests per route
package viewmodel

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/harperreed/riwora/api"
	"github.com/harperreed/riwora/session"
)

type fakeBackend struct {
	mu       sync.Mutex
	calls    map[string]int
	handlers map[string]http.HandlerFunc
}

func newFakeBackend(t *testing.T) (*fakeBackend, *api.Client) {
	t.Helper()
	f := &fakeBackend{
		calls:    make(map[string]int),
		handlers: make(map[string]http.HandlerFunc),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path
		f.mu.Lock()
		f.calls[route]++
		h := f.handlers[route]
		f.mu.Unlock()
		if h == nil {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, api.NewClient(srv.URL + "/api")
}

func (f *fakeBackend) handle(route string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[route] = h
}

// respond serves a fixed JSON body.
func (f *fakeBackend) respond(route string, status int, v any) {
	f.handle(route, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, v)
	})
}

func (f *fakeBackend) count(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[route]
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func testEnv(client *api.Client, uid string) Env {
	return Env{
		API:      client,
		Identity: session.Identity{UserID: uid},
		Triggers: NewTriggers(),
	}
}
