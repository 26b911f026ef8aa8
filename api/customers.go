// ABOUTME: Customer operations: typed lists, detail, notes, purchases, and search
// ABOUTME: Reads fall back to empty lists; writes return *Error
package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/harperreed/riwora/models"
)

// CustomerInput is the writable subset of a customer.
type CustomerInput struct {
	FirstName string              `json:"first_name,omitempty"`
	LastName  string              `json:"last_name,omitempty"`
	Email     string              `json:"email,omitempty"`
	Phone     string              `json:"phone,omitempty"`
	Type      models.CustomerType `json:"type,omitempty"`
	Notes     string              `json:"notes,omitempty"`
}

func (c *Client) NewCustomers(ctx context.Context, uid string) []models.Customer {
	if uid == "" {
		c.missingIdentity("new customers")
		return []models.Customer{}
	}
	q := userQuery(uid)
	q.Set("type", string(models.CustomerNew))
	return readList[models.Customer](ctx, c, "new customers", "/new-customers", q)
}

func (c *Client) PendingCustomers(ctx context.Context, uid string) []models.Customer {
	if uid == "" {
		c.missingIdentity("pending customers")
		return []models.Customer{}
	}
	return readList[models.Customer](ctx, c, "pending customers", "/pending-customers", userQuery(uid))
}

func (c *Client) BeBackCustomers(ctx context.Context, uid string) []models.Customer {
	if uid == "" {
		c.missingIdentity("be-back customers")
		return []models.Customer{}
	}
	return readList[models.Customer](ctx, c, "be-back customers", "/beback-customers", userQuery(uid))
}

// CustomersByType routes to the list endpoint for t.
func (c *Client) CustomersByType(ctx context.Context, uid string, t models.CustomerType) []models.Customer {
	switch t {
	case models.CustomerNew:
		return c.NewCustomers(ctx, uid)
	case models.CustomerPending:
		return c.PendingCustomers(ctx, uid)
	case models.CustomerBeBack:
		return c.BeBackCustomers(ctx, uid)
	}
	c.logger.Warn("unknown customer type", "type", t)
	return []models.Customer{}
}

// Customer fetches one customer, or nil when it cannot be loaded.
func (c *Client) Customer(ctx context.Context, id string) *models.Customer {
	if id == "" {
		return nil
	}
	var cust models.Customer
	if !c.read(ctx, "customer", "/customer/"+url.PathEscape(id), nil, &cust) {
		return nil
	}
	if cust.ID == "" {
		cust.ID = id
	}
	return &cust
}

// AddCustomer creates a customer owned by uid.
func (c *Client) AddCustomer(ctx context.Context, uid string, in CustomerInput) (models.Customer, error) {
	if uid == "" {
		return models.Customer{}, ErrMissingIdentity
	}
	body := struct {
		UserID string `json:"user_id"`
		CustomerInput
	}{uid, in}

	var out models.Customer
	if err := c.write(ctx, "add customer", http.MethodPost, "/add-customer", body, &out); err != nil {
		return models.Customer{}, err
	}
	return out, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, in CustomerInput) error {
	return c.write(ctx, "update customer", http.MethodPut, "/customer/"+url.PathEscape(id), in, nil)
}

func (c *Client) CustomerNotes(ctx context.Context, id string) []models.Note {
	return readList[models.Note](ctx, c, "customer notes", "/customer/"+url.PathEscape(id)+"/notes", nil)
}

// AddCustomerNote returns the stored note as the server echoed it.
func (c *Client) AddCustomerNote(ctx context.Context, id, title, content string) (models.Note, error) {
	body := map[string]string{"title": title, "content": content}

	var note models.Note
	if err := c.write(ctx, "add note", http.MethodPost, "/customer/"+url.PathEscape(id)+"/notes", body, &note); err != nil {
		return models.Note{}, err
	}
	return note, nil
}

func (c *Client) CustomerPurchases(ctx context.Context, id string) []models.Purchase {
	return readList[models.Purchase](ctx, c, "customer purchases", "/customer/"+url.PathEscape(id)+"/purchases", nil)
}

// SearchCustomers returns customers matching query. A blank query matches
// nothing and sends no request.
func (c *Client) SearchCustomers(ctx context.Context, query string) []models.Customer {
	if strings.TrimSpace(query) == "" {
		return []models.Customer{}
	}
	return readList[models.Customer](ctx, c, "search customers", "/search-customers", url.Values{"query": {query}})
}

// Search queries customers, deals, and products at once.
func (c *Client) Search(ctx context.Context, query string) models.SearchResults {
	if strings.TrimSpace(query) == "" {
		return models.SearchResults{}
	}
	var out models.SearchResults
	if !c.read(ctx, "search", "/search", url.Values{"query": {query}}, &out) {
		return models.SearchResults{}
	}
	return out
}
