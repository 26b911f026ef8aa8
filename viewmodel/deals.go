// ABOUTME: Deal screens: open/closed lists and the add-deal form
package viewmodel

import (
	"context"
	"strings"

	"github.com/harperreed/riwora/models"
)

type Deals struct {
	*List[models.Deal]
	Status models.DealStatus
}

func NewDeals(env Env, status models.DealStatus) *Deals {
	env = env.withDefaults()
	list := NewList[models.Deal](func(ctx context.Context) ([]models.Deal, error) {
		uid, err := env.Identity.Require()
		if err != nil {
			return nil, err
		}
		return env.API.DealsByStatus(ctx, uid, status), nil
	}, nil, WithLogger(env.Logger))
	list.Watch(env.Triggers.Deals)
	return &Deals{List: list, Status: status}
}

type AddDealForm struct {
	Title       string
	Description string

	env Env
}

func NewAddDealForm(env Env) *AddDealForm {
	return &AddDealForm{env: env.withDefaults()}
}

// Submit validates, checks the identity before any request, and creates the
// deal with status open.
func (f *AddDealForm) Submit(ctx context.Context) (Dialog, error) {
	title := strings.TrimSpace(f.Title)
	desc := strings.TrimSpace(f.Description)
	if title == "" || desc == "" {
		return reject("Please fill in all fields.", nil)
	}
	uid, err := f.env.Identity.Require()
	if err != nil {
		return reject("User not found.", err)
	}

	if _, err := f.env.API.AddDeal(ctx, uid, title, desc); err != nil {
		f.env.Logger.Warn("add deal failed", "err", err)
		return reject(serverMessage(err, "Failed to add deal."), err)
	}

	f.env.Triggers.Deals.Bump()
	f.env.Triggers.Dashboard.Bump()
	return successDialog("Deal added successfully!"), nil
}
