// ABOUTME: Inbox screen: the latest message exchanged with each customer
// ABOUTME: Customer names are resolved concurrently with an "Unknown User" fallback
package viewmodel

import (
	"context"

	"github.com/harperreed/riwora/models"
	"golang.org/x/sync/errgroup"
)

const (
	UnknownUser = "Unknown User"

	nameLookupLimit = 4
)

type Inbox struct {
	*List[models.InboxEntry]
}

func NewInbox(env Env) *Inbox {
	env = env.withDefaults()
	list := NewList[models.InboxEntry](func(ctx context.Context) ([]models.InboxEntry, error) {
		uid, err := env.Identity.Require()
		if err != nil {
			return nil, err
		}
		latest := LatestPerReceiver(env.API.Messages(ctx, uid))
		return resolveNames(ctx, env, latest), nil
	}, nil, WithLogger(env.Logger))
	return &Inbox{List: list}
}

// LatestPerReceiver keeps the newest message for each receiver, in order of
// each receiver's first appearance.
func LatestPerReceiver(msgs []models.Message) []models.Message {
	index := make(map[string]int)
	out := make([]models.Message, 0, len(msgs))
	for _, m := range msgs {
		i, ok := index[m.Receiver]
		if !ok {
			index[m.Receiver] = len(out)
			out = append(out, m)
			continue
		}
		if m.Time().After(out[i].Time()) {
			out[i] = m
		}
	}
	return out
}

func resolveNames(ctx context.Context, env Env, latest []models.Message) []models.InboxEntry {
	names := make([]string, len(latest))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(nameLookupLimit)
	for i, m := range latest {
		if m.Receiver == "" {
			continue
		}
		g.Go(func() error {
			cust := env.API.Customer(gctx, m.Receiver)
			if cust != nil && cust.FirstName != "" && cust.LastName != "" {
				names[i] = cust.FirstName + " " + cust.LastName
			}
			return nil
		})
	}
	_ = g.Wait()

	entries := make([]models.InboxEntry, 0, len(latest))
	for i, m := range latest {
		name := names[i]
		if name == "" {
			name = UnknownUser
		}
		entries = append(entries, models.InboxEntry{Message: m, CustomerName: name})
	}
	return entries
}
