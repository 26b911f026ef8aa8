// ABOUTME: Customer profile screen: detail, notes, and purchase history
// ABOUTME: New notes merge the server's copy by id so stale duplicates collapse
package viewmodel

import (
	"context"
	"errors"
	"strings"

	"github.com/harperreed/riwora/models"
)

type CustomerProfile struct {
	Detail    *Value[models.Customer]
	Notes     *List[models.Note]
	Purchases *List[models.Purchase]

	customer models.Customer
	env      Env
}

func NewCustomerProfile(env Env, c models.Customer) *CustomerProfile {
	env = env.withDefaults()
	p := &CustomerProfile{customer: c, env: env}

	p.Detail = NewValue[models.Customer](func(ctx context.Context) (*models.Customer, error) {
		if fetched := env.API.Customer(ctx, c.ID); fetched != nil {
			return fetched, nil
		}
		fallback := c
		return &fallback, nil
	}, WithLogger(env.Logger))
	p.Notes = NewList[models.Note](func(ctx context.Context) ([]models.Note, error) {
		return env.API.CustomerNotes(ctx, c.ID), nil
	}, nil, WithLogger(env.Logger))
	p.Purchases = NewList[models.Purchase](func(ctx context.Context) ([]models.Purchase, error) {
		return env.API.CustomerPurchases(ctx, c.ID), nil
	}, nil, WithLogger(env.Logger))
	return p
}

// Customer returns the freshest customer record available.
func (p *CustomerProfile) Customer() models.Customer {
	if v := p.Detail.Get(); v != nil {
		return *v
	}
	return p.customer
}

func (p *CustomerProfile) Mount(ctx context.Context) error {
	return errors.Join(
		ignoreStale(p.Detail.Mount(ctx)),
		ignoreStale(p.Notes.Mount(ctx)),
		ignoreStale(p.Purchases.Mount(ctx)),
	)
}

func (p *CustomerProfile) Unmount() {
	p.Detail.Unmount()
	p.Notes.Unmount()
	p.Purchases.Unmount()
}

func (p *CustomerProfile) Refresh() error {
	return errors.Join(
		ignoreStale(p.Detail.Load()),
		ignoreStale(p.Notes.Load()),
		ignoreStale(p.Purchases.Load()),
	)
}

// AddNote posts a note and upserts the server's response into the list.
func (p *CustomerProfile) AddNote(ctx context.Context, title, content string) (Dialog, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return reject("Title and Content cannot be empty.", nil)
	}

	note, err := p.env.API.AddCustomerNote(ctx, p.customer.ID, title, content)
	if err != nil {
		p.env.Logger.Warn("add note failed", "customer", p.customer.ID, "err", err)
		return reject(serverMessage(err, "Failed to add note."), err)
	}
	if note.ID != "" {
		p.Notes.Upsert(note)
	}
	return successDialog("Note added successfully!"), nil
}

func ignoreStale(err error) error {
	if errors.Is(err, ErrStale) {
		return nil
	}
	return err
}
