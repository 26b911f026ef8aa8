// ABOUTME: Task operations: list by user and create
package api

import (
	"context"
	"net/http"

	"github.com/harperreed/riwora/models"
)

type TaskInput struct {
	Title       string              `json:"title"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	Deadline    string              `json:"deadline,omitempty"`
	Description string              `json:"description,omitempty"`
}

func (c *Client) Tasks(ctx context.Context, uid string) []models.Task {
	if uid == "" {
		c.missingIdentity("tasks")
		return []models.Task{}
	}
	return readList[models.Task](ctx, c, "tasks", "/tasks", userQuery(uid))
}

func (c *Client) AddTask(ctx context.Context, uid string, in TaskInput) (models.Task, error) {
	if uid == "" {
		return models.Task{}, ErrMissingIdentity
	}
	body := struct {
		UserID string `json:"user_id"`
		TaskInput
	}{uid, in}

	var out models.Task
	if err := c.write(ctx, "add task", http.MethodPost, "/add-task", body, &out); err != nil {
		return models.Task{}, err
	}
	return out, nil
}
