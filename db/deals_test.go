// ABOUTME: Tests for sandbox deal and task operations
// ABOUTME: Covers status partitioning, search, and task defaults
package db

import (
	"testing"

	"github.com/harperreed/riwora/models"
)

func TestDealsByStatus(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	open := &models.Deal{UserID: "u1", Title: "Sofa", Description: "Leather"}
	if err := CreateDeal(db, open); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}
	if open.Status != models.DealOpen {
		t.Errorf("expected default status open, got %s", open.Status)
	}
	if open.CreatedAt == "" {
		t.Error("CreatedAt was not set")
	}

	closed := &models.Deal{UserID: "u1", Title: "Table", Status: models.DealClosed}
	if err := CreateDeal(db, closed); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	opens, err := ListDealsByStatus(db, "u1", models.DealOpen)
	if err != nil {
		t.Fatalf("ListDealsByStatus failed: %v", err)
	}
	if len(opens) != 1 || opens[0].ID != open.ID {
		t.Errorf("expected only open deal, got %+v", opens)
	}
	if models.ParseTime(opens[0].CreatedAt).IsZero() {
		t.Errorf("expected parseable created_at, got %q", opens[0].CreatedAt)
	}

	found, err := SearchDeals(db, "leather", 5)
	if err != nil {
		t.Fatalf("SearchDeals failed: %v", err)
	}
	if len(found) != 1 || found[0].Title != "Sofa" {
		t.Errorf("unexpected search results: %+v", found)
	}

	bad := &models.Deal{UserID: "u1", Title: "x", Status: "lost"}
	if err := CreateDeal(db, bad); err == nil {
		t.Error("expected CHECK constraint to reject status lost")
	}
}

func TestTasks(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	later := &models.Task{UserID: "u1", Title: "Later", Deadline: "2024-05-01"}
	sooner := &models.Task{UserID: "u1", Title: "Sooner", Deadline: "2024-04-01", Priority: models.PriorityHigh}
	undated := &models.Task{UserID: "u1", Title: "Someday"}
	for _, task := range []*models.Task{undated, later, sooner} {
		if err := CreateTask(db, task); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}
	if later.Status != models.TaskNotStarted || later.Priority != models.PriorityMedium {
		t.Errorf("expected defaults, got %s/%s", later.Status, later.Priority)
	}

	tasks, err := ListTasks(db, "u1")
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	order := []string{tasks[0].Title, tasks[1].Title, tasks[2].Title}
	want := []string{"Sooner", "Later", "Someday"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("expected order %v, got %v", want, order)
			break
		}
	}
}
