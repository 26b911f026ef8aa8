// ABOUTME: Collaborators injected into every screen at construction
// ABOUTME: Identity is resolved once by the host; screens never re-read storage
package viewmodel

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/harperreed/riwora/api"
	"github.com/harperreed/riwora/session"
)

type Env struct {
	API      *api.Client
	Identity session.Identity
	Triggers *Triggers
	Logger   *log.Logger
}

// withDefaults fills optional collaborators so screens can use them freely.
func (e Env) withDefaults() Env {
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	if e.Triggers == nil {
		e.Triggers = NewTriggers()
	}
	return e
}

// Mountable is anything a navigation host can put on and take off screen.
type Mountable interface {
	Mount(ctx context.Context) error
	Unmount()
}
