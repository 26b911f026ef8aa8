// ABOUTME: Tests for sandbox customer and note operations
// ABOUTME: Covers per-type listing, updates, search, and notes
package db

import (
	"errors"
	"testing"

	"github.com/harperreed/riwora/models"
)

func TestCreateAndListCustomersByType(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	fresh := &models.Customer{UserID: "u1", FirstName: "Ada", LastName: "Lovelace"}
	if err := CreateCustomer(db, fresh); err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}
	if fresh.Type != models.CustomerNew {
		t.Errorf("expected default type new, got %s", fresh.Type)
	}

	back := &models.Customer{UserID: "u1", FirstName: "Grace", LastName: "Hopper", Type: models.CustomerBeBack}
	if err := CreateCustomer(db, back); err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}
	other := &models.Customer{UserID: "u2", FirstName: "Alan", LastName: "Turing"}
	if err := CreateCustomer(db, other); err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}

	news, err := ListCustomersByType(db, "u1", models.CustomerNew)
	if err != nil {
		t.Fatalf("ListCustomersByType failed: %v", err)
	}
	if len(news) != 1 || news[0].ID != fresh.ID {
		t.Errorf("expected only %s, got %+v", fresh.ID, news)
	}
	if news[0].Name != "Ada Lovelace" {
		t.Errorf("expected display name, got %q", news[0].Name)
	}

	pending, err := ListCustomersByType(db, "u1", models.CustomerPending)
	if err != nil {
		t.Fatalf("ListCustomersByType failed: %v", err)
	}
	if pending == nil || len(pending) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", pending)
	}
}

func TestUpdateCustomer(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	c := &models.Customer{UserID: "u1", FirstName: "Ada", LastName: "Lovelace", Phone: "555"}
	if err := CreateCustomer(db, c); err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}

	updated, err := UpdateCustomer(db, c.ID, models.Customer{Email: "ada@example.com", Type: models.CustomerPending, Notes: "call"})
	if err != nil {
		t.Fatalf("UpdateCustomer failed: %v", err)
	}
	if updated.Phone != "555" || updated.Email != "ada@example.com" || updated.Type != models.CustomerPending {
		t.Errorf("unexpected update result: %+v", updated)
	}

	got, err := GetCustomer(db, c.ID)
	if err != nil {
		t.Fatalf("GetCustomer failed: %v", err)
	}
	if got.Notes != "call" {
		t.Errorf("expected notes to persist, got %q", got.Notes)
	}

	if _, err := UpdateCustomer(db, "missing", models.Customer{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchCustomers(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, c := range []*models.Customer{
		{UserID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@engines.io"},
		{UserID: "u1", FirstName: "Grace", LastName: "Hopper", Phone: "555-0100"},
	} {
		if err := CreateCustomer(db, c); err != nil {
			t.Fatalf("CreateCustomer failed: %v", err)
		}
	}

	tests := []struct {
		query string
		want  int
	}{
		{"ada love", 1},
		{"ENGINES", 1},
		{"555", 1},
		{"a", 2},
		{"zzz", 0},
	}
	for _, tt := range tests {
		got, err := SearchCustomers(db, tt.query, 10)
		if err != nil {
			t.Fatalf("SearchCustomers(%q) failed: %v", tt.query, err)
		}
		if len(got) != tt.want {
			t.Errorf("SearchCustomers(%q): expected %d results, got %d", tt.query, tt.want, len(got))
		}
	}
}

func TestCustomerNotes(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	c := &models.Customer{UserID: "u1", FirstName: "Ada", LastName: "Lovelace"}
	if err := CreateCustomer(db, c); err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}

	note := &models.Note{Title: "Visit", Content: "Liked the blue one"}
	if err := CreateNote(db, c.ID, note); err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	if note.ID == "" {
		t.Error("note ID was not set")
	}

	notes, err := ListNotes(db, c.ID)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "Visit" {
		t.Errorf("unexpected notes: %+v", notes)
	}

	if err := CreateNote(db, "missing", &models.Note{Title: "x", Content: "y"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown customer, got %v", err)
	}
}
