// ABOUTME: Search screen: customer search plus the combined search across entities
package viewmodel

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/harperreed/riwora/models"
)

type Search struct {
	*List[models.Customer]
	Global *Value[models.SearchResults]

	mu    sync.Mutex
	query string
}

func NewSearch(env Env) *Search {
	env = env.withDefaults()
	s := &Search{}
	s.List = NewList[models.Customer](func(ctx context.Context) ([]models.Customer, error) {
		return env.API.SearchCustomers(ctx, s.Query()), nil
	}, nil, WithLogger(env.Logger))
	s.Global = NewValue[models.SearchResults](func(ctx context.Context) (*models.SearchResults, error) {
		res := env.API.Search(ctx, s.Query())
		return &res, nil
	}, WithLogger(env.Logger))
	return s
}

func (s *Search) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *Search) Mount(ctx context.Context) error {
	return errors.Join(ignoreStale(s.List.Mount(ctx)), ignoreStale(s.Global.Mount(ctx)))
}

func (s *Search) Unmount() {
	s.List.Unmount()
	s.Global.Unmount()
}

// SetQuery stores q and reruns both searches.
func (s *Search) SetQuery(q string) error {
	s.mu.Lock()
	s.query = strings.TrimSpace(q)
	s.mu.Unlock()
	return errors.Join(ignoreStale(s.List.Load()), ignoreStale(s.Global.Load()))
}
