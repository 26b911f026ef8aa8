// ABOUTME: Sandbox deal and task operations
// ABOUTME: Deals are partitioned by open/closed status; tasks belong to a user
package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/riwora/models"
)

func CreateDeal(db *sql.DB, d *models.Deal) error {
	d.ID = uuid.New().String()
	if d.Status == "" {
		d.Status = models.DealOpen
	}
	now := time.Now()
	d.CreatedAt = timestamp(now)

	_, err := db.Exec(`
		INSERT INTO deals (id, user_id, title, description, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, d.ID, d.UserID, d.Title, d.Description, d.Status, now)
	return err
}

func ListDealsByStatus(db *sql.DB, userID string, status models.DealStatus) ([]models.Deal, error) {
	rows, err := db.Query(`
		SELECT id, user_id, title, description, status, created_at FROM deals
		WHERE user_id = ? AND status = ?
		ORDER BY created_at DESC
	`, userID, status)
	if err != nil {
		return nil, err
	}
	return collectDeals(rows)
}

func SearchDeals(db *sql.DB, query string, limit int) ([]models.Deal, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := db.Query(`
		SELECT id, user_id, title, description, status, created_at FROM deals
		WHERE LOWER(title) LIKE ? OR LOWER(description) LIKE ?
		ORDER BY created_at DESC
		LIMIT ?
	`, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	return collectDeals(rows)
}

func collectDeals(rows *sql.Rows) ([]models.Deal, error) {
	defer rows.Close()
	deals := []models.Deal{}
	for rows.Next() {
		var d models.Deal
		var created time.Time
		if err := rows.Scan(&d.ID, &d.UserID, &d.Title, &d.Description, &d.Status, &created); err != nil {
			return nil, err
		}
		d.CreatedAt = timestamp(created)
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

func CreateTask(db *sql.DB, t *models.Task) error {
	t.ID = uuid.New().String()
	if t.Status == "" {
		t.Status = models.TaskNotStarted
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	now := time.Now()
	t.CreatedAt = timestamp(now)

	_, err := db.Exec(`
		INSERT INTO tasks (id, user_id, title, status, priority, deadline, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.UserID, t.Title, t.Status, t.Priority, t.Deadline, t.Description, now)
	return err
}

func ListTasks(db *sql.DB, userID string) ([]models.Task, error) {
	rows, err := db.Query(`
		SELECT id, user_id, title, status, priority, deadline, description, created_at FROM tasks
		WHERE user_id = ?
		ORDER BY CASE WHEN deadline = '' THEN 1 ELSE 0 END, deadline ASC, created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		var created time.Time
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Status, &t.Priority, &t.Deadline, &t.Description, &created); err != nil {
			return nil, err
		}
		t.CreatedAt = timestamp(created)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
