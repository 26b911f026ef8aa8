// ABOUTME: MCP resource handlers for exposing CRM data
// ABOUTME: Serves riwora://dashboard, riwora://tasks, and riwora://customers/{id} as JSON
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harperreed/riwora/viewmodel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const resourceScheme = "riwora://"

type ResourceHandlers struct {
	customers *CustomerHandlers
	deals     *DealHandlers
}

func NewResourceHandlers(env viewmodel.Env) *ResourceHandlers {
	return &ResourceHandlers{
		customers: NewCustomerHandlers(env),
		deals:     NewDealHandlers(env),
	}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")
	switch parts[0] {
	case "dashboard":
		_, d, err := h.deals.GetDashboard(ctx, nil, struct{}{})
		if err != nil {
			return nil, err
		}
		return jsonResource(uri, d)

	case "tasks":
		_, out, err := h.deals.ListTasks(ctx, nil, struct{}{})
		if err != nil {
			return nil, err
		}
		return jsonResource(uri, out)

	case "customers":
		if len(parts) < 2 || parts[1] == "" {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		out, err := h.customers.profile(ctx, parts[1])
		if err != nil {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		return jsonResource(uri, out)

	default:
		return nil, mcp.ResourceNotFoundError(uri)
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
