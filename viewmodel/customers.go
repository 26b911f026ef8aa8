// ABOUTME: Customer list screens and the add/edit customer forms
// ABOUTME: Adding a customer bumps both the dashboard and customer-list triggers
package viewmodel

import (
	"context"
	"strings"

	"github.com/harperreed/riwora/api"
	"github.com/harperreed/riwora/models"
)

type Customers struct {
	*List[models.Customer]
	Type models.CustomerType
}

func NewCustomers(env Env, t models.CustomerType) *Customers {
	env = env.withDefaults()
	list := NewList[models.Customer](func(ctx context.Context) ([]models.Customer, error) {
		uid, err := env.Identity.Require()
		if err != nil {
			return nil, err
		}
		return env.API.CustomersByType(ctx, uid, t), nil
	}, nil, WithLogger(env.Logger))
	list.Watch(env.Triggers.Customers)
	return &Customers{List: list, Type: t}
}

type AddCustomerForm struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Type      models.CustomerType
	Notes     string

	env Env
}

// NewAddCustomerForm preselects t, defaulting to new.
func NewAddCustomerForm(env Env, t models.CustomerType) *AddCustomerForm {
	if t == "" {
		t = models.CustomerNew
	}
	return &AddCustomerForm{Type: t, env: env.withDefaults()}
}

func (f *AddCustomerForm) input() api.CustomerInput {
	return api.CustomerInput{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
		Type:      f.Type,
		Notes:     strings.TrimSpace(f.Notes),
	}
}

func (f *AddCustomerForm) Submit(ctx context.Context) (Dialog, error) {
	in := f.input()
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Phone == "" || in.Type == "" {
		return reject("Please fill in all required fields.", nil)
	}
	t, ok := models.ParseCustomerType(string(in.Type))
	if !ok {
		return reject("Please fill in all required fields.", nil)
	}
	in.Type = t

	uid, err := f.env.Identity.Require()
	if err != nil {
		return reject("User not found. Please log in again.", err)
	}

	if _, err := f.env.API.AddCustomer(ctx, uid, in); err != nil {
		f.env.Logger.Warn("add customer failed", "err", err)
		return reject(serverMessage(err, "An unknown error occurred."), err)
	}

	f.env.Triggers.Customers.Bump()
	f.env.Triggers.Dashboard.Bump()
	return successDialog("Customer added successfully!"), nil
}

// EditCustomerForm edits an existing customer, prefilled from the list item.
type EditCustomerForm struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Type      models.CustomerType
	Notes     string

	env Env
}

func NewEditCustomerForm(env Env, c models.Customer) *EditCustomerForm {
	first, last := c.FirstName, c.LastName
	if first == "" && last == "" {
		// list rows may only carry a display name
		parts := strings.Fields(c.Name)
		if len(parts) > 0 {
			first = parts[0]
		}
		if len(parts) > 1 {
			last = parts[1]
		}
	}
	return &EditCustomerForm{
		ID:        c.ID,
		FirstName: first,
		LastName:  last,
		Email:     c.Email,
		Phone:     c.Phone,
		Type:      c.Type,
		Notes:     c.Notes,
		env:       env.withDefaults(),
	}
}

func (f *EditCustomerForm) Submit(ctx context.Context) (Dialog, error) {
	if f.ID == "" {
		return reject("An unknown error occurred", nil)
	}
	in := api.CustomerInput{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
		Type:      f.Type,
		Notes:     f.Notes,
	}
	if in.Type != "" {
		t, ok := models.ParseCustomerType(string(in.Type))
		if !ok {
			return reject("Customer type must be new, be_back, or pending.", nil)
		}
		in.Type = t
	}

	if err := f.env.API.UpdateCustomer(ctx, f.ID, in); err != nil {
		f.env.Logger.Warn("update customer failed", "id", f.ID, "err", err)
		return reject(api.UserMessage(err), err)
	}

	f.env.Triggers.Customers.Bump()
	f.env.Triggers.Dashboard.Bump()
	return successDialog("Customer updated successfully!"), nil
}
