// ABOUTME: MCP prompt handlers for reusable CRM workflow templates
// ABOUTME: Builds customer-summary and pipeline-review prompts from live data
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/riwora/models"
	"github.com/harperreed/riwora/viewmodel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PromptHandlers struct {
	customers *CustomerHandlers
	deals     *DealHandlers
	env       viewmodel.Env
}

func NewPromptHandlers(env viewmodel.Env) *PromptHandlers {
	return &PromptHandlers{
		customers: NewCustomerHandlers(env),
		deals:     NewDealHandlers(env),
		env:       env,
	}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "customer-summary":
		return h.customerSummary(ctx, request.Params.Arguments)
	case "pipeline-review":
		return h.pipelineReview(ctx)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) customerSummary(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	id, ok := args["customer_id"]
	if !ok || id == "" {
		return nil, fmt.Errorf("customer_id is required")
	}
	detail, err := h.customers.profile(ctx, id)
	if err != nil {
		return nil, err
	}
	c := detail.Customer

	var b strings.Builder
	b.WriteString("Please summarize this customer and suggest a next step:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", c.FullName())
	fmt.Fprintf(&b, "List: %s\n", c.Type.Label())
	if c.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", c.Email)
	}
	if c.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	}
	if c.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", c.Notes)
	}
	if len(detail.Notes) > 0 {
		b.WriteString("\nVisit notes:\n")
		for _, n := range detail.Notes {
			fmt.Fprintf(&b, "- %s: %s\n", n.Title, n.Content)
		}
	}
	if len(detail.Purchases) > 0 {
		b.WriteString("\nPurchases:\n")
		for _, p := range detail.Purchases {
			fmt.Fprintf(&b, "- %s (%s)\n", p.Name, p.SKU)
		}
	}

	return userPrompt(fmt.Sprintf("Summary for customer: %s", c.FullName()), b.String()), nil
}

func (h *PromptHandlers) pipelineReview(ctx context.Context) (*mcp.GetPromptResult, error) {
	_, d, err := h.deals.GetDashboard(ctx, nil, struct{}{})
	if err != nil {
		return nil, err
	}
	open, err := loadList(ctx, viewmodel.NewDeals(h.env, models.DealOpen).List)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Please review my sales pipeline and tell me where to focus today.\n\n")
	fmt.Fprintf(&b, "Customers: %d new, %d pending, %d be-back\n", d.NewCustomers, d.PendingCustomers, d.BeBackCustomers)
	fmt.Fprintf(&b, "Deals: %d open, %d closed\n", d.OpenDeals, d.ClosedDeals)
	fmt.Fprintf(&b, "Sales: %d\n", d.Sales)
	if len(open) > 0 {
		b.WriteString("\nOpen deals:\n")
		for _, deal := range open {
			fmt.Fprintf(&b, "- %s: %s\n", deal.Title, deal.Description)
		}
	}
	if len(d.Tasks) > 0 {
		b.WriteString("\nTasks:\n")
		for _, t := range d.Tasks {
			row := viewmodel.NewTaskRow(t)
			fmt.Fprintf(&b, "- %s [%s, %s] %s\n", row.Title, row.StatusLabel, row.PriorityLabel, row.Deadline)
		}
	}

	return userPrompt("Pipeline review", b.String()), nil
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}
