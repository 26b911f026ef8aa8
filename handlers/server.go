// ABOUTME: MCP server assembly for the CRM gateway
// ABOUTME: Registers tools, resources, and prompts; the CLI runs it on stdio
package handlers

import (
	"github.com/harperreed/riwora/viewmodel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server acting as the user in env.Identity.
func NewServer(env viewmodel.Env, version string) *mcp.Server {
	customers := NewCustomerHandlers(env)
	deals := NewDealHandlers(env)
	messages := NewMessageHandlers(env)
	resources := NewResourceHandlers(env)
	prompts := NewPromptHandlers(env)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "riwora",
		Version: version,
	}, nil)

	// Customers
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_customers",
		Description: "List customers in one of the new, be_back, or pending lists",
	}, customers.ListCustomers)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_customer",
		Description: "Get a customer with their visit notes and purchase history",
	}, customers.GetCustomer)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_customer",
		Description: "Add a new customer to the CRM",
	}, customers.AddCustomer)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_customer",
		Description: "Update an existing customer's details or move them to another list",
	}, customers.UpdateCustomer)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_customer_note",
		Description: "Add a titled note to a customer",
	}, customers.AddNote)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search",
		Description: "Search customers, deals, and products by text",
	}, customers.Search)

	// Deals and tasks
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_deals",
		Description: "List open or closed deals",
	}, deals.ListDeals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_deal",
		Description: "Create a new open deal",
	}, deals.AddDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks with status and priority labels",
	}, deals.ListTasks)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_task",
		Description: "Create a task with optional deadline, status, and priority",
	}, deals.AddTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Get customer, deal, listing, and sales counters plus tasks",
	}, deals.GetDashboard)

	// Messages
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_inbox",
		Description: "List the latest message exchanged with each customer",
	}, messages.ListInbox)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_conversation",
		Description: "Get every message exchanged with a customer",
	}, messages.GetConversation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "send_message",
		Description: "Send a message to a customer",
	}, messages.SendMessage)

	// Resources
	server.AddResource(&mcp.Resource{
		URI:      resourceScheme + "dashboard",
		Name:     "dashboard",
		MIMEType: "application/json",
	}, resources.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:      resourceScheme + "tasks",
		Name:     "tasks",
		MIMEType: "application/json",
	}, resources.ReadResource)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: resourceScheme + "customers/{id}",
		Name:        "customer",
		MIMEType:    "application/json",
	}, resources.ReadResource)

	// Prompts
	server.AddPrompt(&mcp.Prompt{
		Name:        "customer-summary",
		Description: "Summarize a customer and suggest a next step",
		Arguments: []*mcp.PromptArgument{
			{Name: "customer_id", Description: "Customer ID", Required: true},
		},
	}, prompts.GetPrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "pipeline-review",
		Description: "Review the pipeline and today's tasks",
	}, prompts.GetPrompt)

	return server
}
