// ABOUTME: Task screens: list with display rows, read-only detail, and the add form
// ABOUTME: Status and priority edits on the detail screen stay local and are flagged unsaved
package viewmodel

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/harperreed/riwora/api"
	"github.com/harperreed/riwora/models"
)

// TaskRow is a task shaped for display.
type TaskRow struct {
	ID            string
	Title         string
	StatusLabel   string
	StatusColor   string
	PriorityLabel string
	PriorityColor string
	Deadline      string
}

func NewTaskRow(t models.Task) TaskRow {
	return TaskRow{
		ID:            t.ID,
		Title:         t.Title,
		StatusLabel:   t.Status.Label(),
		StatusColor:   t.Status.Color(),
		PriorityLabel: t.Priority.Label(),
		PriorityColor: t.Priority.Color(),
		Deadline:      models.FormatDeadline(t.Deadline),
	}
}

func taskRows(tasks []models.Task) []TaskRow {
	rows := make([]TaskRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, NewTaskRow(t))
	}
	return rows
}

type Tasks struct {
	*List[models.Task]
}

func NewTasks(env Env) *Tasks {
	env = env.withDefaults()
	list := NewList[models.Task](func(ctx context.Context) ([]models.Task, error) {
		uid, err := env.Identity.Require()
		if err != nil {
			return nil, err
		}
		return env.API.Tasks(ctx, uid), nil
	}, nil, WithLogger(env.Logger))
	list.Watch(env.Triggers.Tasks)
	return &Tasks{List: list}
}

func (t *Tasks) Rows() []TaskRow {
	return taskRows(t.Items())
}

// TaskDetail shows one task. The backend has no task update endpoint, so
// edits only change the local copy.
type TaskDetail struct {
	mu      sync.Mutex
	task    models.Task
	unsaved bool
}

func NewTaskDetail(task models.Task) *TaskDetail {
	return &TaskDetail{task: task}
}

func (d *TaskDetail) Task() models.Task {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.task
}

func (d *TaskDetail) Row() TaskRow {
	return NewTaskRow(d.Task())
}

func (d *TaskDetail) SetStatus(s models.TaskStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.task.Status.Normalized() == s.Normalized() {
		return
	}
	d.task.Status = s.Normalized()
	d.unsaved = true
}

func (d *TaskDetail) SetPriority(p models.TaskPriority) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.task.Priority.Normalized() == p.Normalized() {
		return
	}
	d.task.Priority = p.Normalized()
	d.unsaved = true
}

// Unsaved reports whether the local copy differs from what was fetched.
func (d *TaskDetail) Unsaved() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.unsaved
}

type AddTaskForm struct {
	Title       string
	Description string
	Deadline    string
	Status      models.TaskStatus
	Priority    models.TaskPriority

	env Env
}

// NewAddTaskForm starts with the defaults of a fresh task: not started,
// medium priority, due today.
func NewAddTaskForm(env Env, now time.Time) *AddTaskForm {
	return &AddTaskForm{
		Status:   models.TaskNotStarted,
		Priority: models.PriorityMedium,
		Deadline: now.Format("2006-01-02"),
		env:      env.withDefaults(),
	}
}

func (f *AddTaskForm) Submit(ctx context.Context) (Dialog, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return reject("Task title cannot be empty.", nil)
	}
	status := f.Status.Normalized()
	if !status.Known() {
		return reject(fmt.Sprintf("Unknown task status %q.", f.Status), nil)
	}
	priority := f.Priority.Normalized()
	if !priority.Known() {
		return reject(fmt.Sprintf("Unknown task priority %q.", f.Priority), nil)
	}
	if f.Deadline != "" && models.ParseTime(f.Deadline).IsZero() {
		return reject("Deadline must be a date like 2006-01-02.", nil)
	}
	uid, err := f.env.Identity.Require()
	if err != nil {
		return reject("User not found.", err)
	}

	_, err = f.env.API.AddTask(ctx, uid, api.TaskInput{
		Title:       title,
		Status:      status,
		Priority:    priority,
		Deadline:    f.Deadline,
		Description: strings.TrimSpace(f.Description),
	})
	if err != nil {
		f.env.Logger.Warn("add task failed", "err", err)
		return reject(serverMessage(err, "Failed to add task."), err)
	}

	f.env.Triggers.Tasks.Bump()
	f.env.Triggers.Dashboard.Bump()
	return successDialog("Task added successfully!"), nil
}
