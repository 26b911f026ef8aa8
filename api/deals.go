// ABOUTME: Deal (lead) operations split by open/closed status
// ABOUTME: New deals always start open
package api

import (
	"context"
	"net/http"

	"github.com/harperreed/riwora/models"
)

func (c *Client) OpenDeals(ctx context.Context, uid string) []models.Deal {
	if uid == "" {
		c.missingIdentity("open deals")
		return []models.Deal{}
	}
	return readList[models.Deal](ctx, c, "open deals", "/open-deals", userQuery(uid))
}

func (c *Client) ClosedDeals(ctx context.Context, uid string) []models.Deal {
	if uid == "" {
		c.missingIdentity("closed deals")
		return []models.Deal{}
	}
	return readList[models.Deal](ctx, c, "closed deals", "/closed-deals", userQuery(uid))
}

// DealsByStatus routes to the list endpoint for status.
func (c *Client) DealsByStatus(ctx context.Context, uid string, status models.DealStatus) []models.Deal {
	if status == models.DealClosed {
		return c.ClosedDeals(ctx, uid)
	}
	return c.OpenDeals(ctx, uid)
}

func (c *Client) AddDeal(ctx context.Context, uid, title, description string) (models.Deal, error) {
	if uid == "" {
		return models.Deal{}, ErrMissingIdentity
	}
	body := struct {
		UserID      string            `json:"user_id"`
		Title       string            `json:"title"`
		Description string            `json:"description"`
		Status      models.DealStatus `json:"status"`
	}{uid, title, description, models.DealOpen}

	var out models.Deal
	if err := c.write(ctx, "add deal", http.MethodPost, "/add-deal", body, &out); err != nil {
		return models.Deal{}, err
	}
	return out, nil
}
