// ABOUTME: Deal and task MCP tool handlers
// ABOUTME: Implements list_deals, add_deal, list_tasks, add_task, and get_dashboard
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/riwora/liststore"
	"github.com/harperreed/riwora/models"
	"github.com/harperreed/riwora/viewmodel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type DealHandlers struct {
	env viewmodel.Env
	now func() time.Time
}

func NewDealHandlers(env viewmodel.Env) *DealHandlers {
	return &DealHandlers{env: env, now: time.Now}
}

type ListDealsInput struct {
	Status string `json:"status,omitempty" jsonschema:"Deal status: open (default) or closed"`
}

type DealListOutput struct {
	Deals []models.Deal `json:"deals"`
}

func (h *DealHandlers) ListDeals(ctx context.Context, _ *mcp.CallToolRequest, input ListDealsInput) (*mcp.CallToolResult, DealListOutput, error) {
	status := models.DealOpen
	switch input.Status {
	case "", string(models.DealOpen):
	case string(models.DealClosed):
		status = models.DealClosed
	default:
		return nil, DealListOutput{}, fmt.Errorf("invalid status: %s (valid: open, closed)", input.Status)
	}

	items, err := loadList(ctx, viewmodel.NewDeals(h.env, status).List)
	if err != nil {
		return nil, DealListOutput{}, err
	}
	return nil, DealListOutput{Deals: items}, nil
}

type AddDealInput struct {
	Title       string `json:"title" jsonschema:"Deal title (required)"`
	Description string `json:"description" jsonschema:"Deal description (required)"`
}

type DialogOutput struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (h *DealHandlers) AddDeal(ctx context.Context, _ *mcp.CallToolRequest, input AddDealInput) (*mcp.CallToolResult, DialogOutput, error) {
	form := viewmodel.NewAddDealForm(h.env)
	form.Title = input.Title
	form.Description = input.Description
	return submitted(form.Submit(ctx))
}

type TaskListOutput struct {
	Tasks []viewmodel.TaskRow `json:"tasks"`
}

func (h *DealHandlers) ListTasks(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, TaskListOutput, error) {
	tasks := viewmodel.NewTasks(h.env)
	if _, err := loadList(ctx, tasks.List); err != nil {
		return nil, TaskListOutput{}, err
	}
	return nil, TaskListOutput{Tasks: tasks.Rows()}, nil
}

type AddTaskInput struct {
	Title       string `json:"title" jsonschema:"Task title (required)"`
	Description string `json:"description,omitempty" jsonschema:"Task details"`
	Deadline    string `json:"deadline,omitempty" jsonschema:"Due date as YYYY-MM-DD (default today)"`
	Status      string `json:"status,omitempty" jsonschema:"notStarted (default), inProgress, done, or archived"`
	Priority    string `json:"priority,omitempty" jsonschema:"high, medium (default), or low"`
}

func (h *DealHandlers) AddTask(ctx context.Context, _ *mcp.CallToolRequest, input AddTaskInput) (*mcp.CallToolResult, DialogOutput, error) {
	form := viewmodel.NewAddTaskForm(h.env, h.now())
	form.Title = input.Title
	form.Description = input.Description
	if input.Deadline != "" {
		form.Deadline = input.Deadline
	}
	if input.Status != "" {
		form.Status = models.TaskStatus(input.Status)
	}
	if input.Priority != "" {
		form.Priority = models.TaskPriority(input.Priority)
	}
	return submitted(form.Submit(ctx))
}

func (h *DealHandlers) GetDashboard(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, models.Dashboard, error) {
	d := viewmodel.NewDashboard(h.env)
	defer d.Close()
	if err := d.Mount(ctx); err != nil {
		return nil, models.EmptyDashboard(), err
	}
	defer d.Unmount()
	if err := d.Err(); err != nil {
		return nil, models.EmptyDashboard(), err
	}
	return nil, d.Data(), nil
}

// loadList mounts a list for the duration of one tool call.
func loadList[T liststore.Keyer](ctx context.Context, l *viewmodel.List[T]) ([]T, error) {
	defer l.Close()
	if err := l.Mount(ctx); err != nil {
		return nil, err
	}
	defer l.Unmount()
	if err := l.Err(); err != nil {
		return nil, err
	}
	return l.Items(), nil
}

// submitted turns a form result into a tool result. Rejections become tool
// errors carrying the dialog text.
func submitted(d viewmodel.Dialog, err error) (*mcp.CallToolResult, DialogOutput, error) {
	if err != nil {
		return nil, DialogOutput{}, fmt.Errorf("%s", d.Message)
	}
	return nil, DialogOutput{Title: d.Title, Message: d.Message}, nil
}
