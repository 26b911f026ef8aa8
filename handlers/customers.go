// ABOUTME: Customer MCP tool handlers
// ABOUTME: Implements list, get, add, update, note, and search tools over the REST gateway
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/riwora/models"
	"github.com/harperreed/riwora/viewmodel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type CustomerHandlers struct {
	env viewmodel.Env
}

func NewCustomerHandlers(env viewmodel.Env) *CustomerHandlers {
	return &CustomerHandlers{env: env}
}

type ListCustomersInput struct {
	Type string `json:"type,omitempty" jsonschema:"Customer list: new (default), be_back, or pending"`
}

type CustomerListOutput struct {
	Customers []models.Customer `json:"customers"`
}

func parseType(s string) (models.CustomerType, error) {
	if s == "" {
		return models.CustomerNew, nil
	}
	t, ok := models.ParseCustomerType(s)
	if !ok {
		return "", fmt.Errorf("invalid type: %s (valid: new, be_back, pending)", s)
	}
	return t, nil
}

func (h *CustomerHandlers) ListCustomers(ctx context.Context, _ *mcp.CallToolRequest, input ListCustomersInput) (*mcp.CallToolResult, CustomerListOutput, error) {
	t, err := parseType(input.Type)
	if err != nil {
		return nil, CustomerListOutput{}, err
	}
	items, err := loadList(ctx, viewmodel.NewCustomers(h.env, t).List)
	if err != nil {
		return nil, CustomerListOutput{}, err
	}
	return nil, CustomerListOutput{Customers: items}, nil
}

type GetCustomerInput struct {
	ID string `json:"id" jsonschema:"Customer ID (required)"`
}

type CustomerDetailOutput struct {
	Customer  models.Customer   `json:"customer"`
	Notes     []models.Note     `json:"notes"`
	Purchases []models.Purchase `json:"purchases"`
}

func (h *CustomerHandlers) GetCustomer(ctx context.Context, _ *mcp.CallToolRequest, input GetCustomerInput) (*mcp.CallToolResult, CustomerDetailOutput, error) {
	if input.ID == "" {
		return nil, CustomerDetailOutput{}, fmt.Errorf("id is required")
	}
	out, err := h.profile(ctx, input.ID)
	if err != nil {
		return nil, CustomerDetailOutput{}, err
	}
	return nil, out, nil
}

// profile loads a customer with notes and purchases through the profile screen.
func (h *CustomerHandlers) profile(ctx context.Context, id string) (CustomerDetailOutput, error) {
	p := viewmodel.NewCustomerProfile(h.env, models.Customer{ID: id})
	if err := p.Mount(ctx); err != nil {
		return CustomerDetailOutput{}, err
	}
	defer p.Unmount()

	c := p.Customer()
	if c.FullName() == "" {
		return CustomerDetailOutput{}, fmt.Errorf("customer not found: %s", id)
	}
	return CustomerDetailOutput{
		Customer:  c,
		Notes:     p.Notes.Items(),
		Purchases: p.Purchases.Items(),
	}, nil
}

type AddCustomerInput struct {
	FirstName string `json:"first_name" jsonschema:"First name (required)"`
	LastName  string `json:"last_name" jsonschema:"Last name (required)"`
	Email     string `json:"email" jsonschema:"Email address (required)"`
	Phone     string `json:"phone" jsonschema:"Phone number (required)"`
	Type      string `json:"type,omitempty" jsonschema:"new (default), be_back, or pending"`
	Notes     string `json:"notes,omitempty" jsonschema:"Free-form notes"`
}

func (h *CustomerHandlers) AddCustomer(ctx context.Context, _ *mcp.CallToolRequest, input AddCustomerInput) (*mcp.CallToolResult, DialogOutput, error) {
	t, err := parseType(input.Type)
	if err != nil {
		return nil, DialogOutput{}, err
	}
	form := viewmodel.NewAddCustomerForm(h.env, t)
	form.FirstName = input.FirstName
	form.LastName = input.LastName
	form.Email = input.Email
	form.Phone = input.Phone
	form.Notes = input.Notes
	return submitted(form.Submit(ctx))
}

type UpdateCustomerInput struct {
	ID        string `json:"id" jsonschema:"Customer ID (required)"`
	FirstName string `json:"first_name,omitempty" jsonschema:"New first name"`
	LastName  string `json:"last_name,omitempty" jsonschema:"New last name"`
	Email     string `json:"email,omitempty" jsonschema:"New email"`
	Phone     string `json:"phone,omitempty" jsonschema:"New phone"`
	Type      string `json:"type,omitempty" jsonschema:"Move to list: new, be_back, or pending"`
	Notes     string `json:"notes,omitempty" jsonschema:"Replacement notes"`
}

func (h *CustomerHandlers) UpdateCustomer(ctx context.Context, _ *mcp.CallToolRequest, input UpdateCustomerInput) (*mcp.CallToolResult, DialogOutput, error) {
	if input.ID == "" {
		return nil, DialogOutput{}, fmt.Errorf("id is required")
	}
	current := models.Customer{ID: input.ID}
	if c := h.env.API.Customer(ctx, input.ID); c != nil {
		current = *c
	}

	form := viewmodel.NewEditCustomerForm(h.env, current)
	if input.FirstName != "" {
		form.FirstName = input.FirstName
	}
	if input.LastName != "" {
		form.LastName = input.LastName
	}
	if input.Email != "" {
		form.Email = input.Email
	}
	if input.Phone != "" {
		form.Phone = input.Phone
	}
	if input.Type != "" {
		form.Type = models.CustomerType(input.Type)
	}
	if input.Notes != "" {
		form.Notes = input.Notes
	}
	return submitted(form.Submit(ctx))
}

type AddNoteInput struct {
	CustomerID string `json:"customer_id" jsonschema:"Customer ID (required)"`
	Title      string `json:"title" jsonschema:"Note title (required)"`
	Content    string `json:"content" jsonschema:"Note body (required)"`
}

func (h *CustomerHandlers) AddNote(ctx context.Context, _ *mcp.CallToolRequest, input AddNoteInput) (*mcp.CallToolResult, DialogOutput, error) {
	if input.CustomerID == "" {
		return nil, DialogOutput{}, fmt.Errorf("customer_id is required")
	}
	p := viewmodel.NewCustomerProfile(h.env, models.Customer{ID: input.CustomerID})
	return submitted(p.AddNote(ctx, input.Title, input.Content))
}

type SearchInput struct {
	Query string `json:"query" jsonschema:"Text matched against customers, deals, and products"`
}

func (h *CustomerHandlers) Search(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, models.SearchResults, error) {
	s := viewmodel.NewSearch(h.env)
	if err := s.Mount(ctx); err != nil {
		return nil, models.SearchResults{}, err
	}
	defer s.Unmount()
	if err := s.SetQuery(input.Query); err != nil {
		return nil, models.SearchResults{}, err
	}

	out := models.SearchResults{Customers: s.Items()}
	if g := s.Global.Get(); g != nil {
		out.Deals = g.Deals
		out.Products = g.Products
		if len(g.Customers) > 0 {
			out.Customers = g.Customers
		}
	}
	return nil, out, nil
}
