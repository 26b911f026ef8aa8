// ABOUTME: Sandbox customer operations
// ABOUTME: Handles CRUD, per-type listing, search, and customer notes
package db

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/riwora/models"
)

const customerColumns = `id, user_id, first_name, last_name, email, phone, type, notes`

func scanCustomer(row interface{ Scan(...any) error }) (models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Type, &c.Notes)
	c.Name = c.FullName()
	return c, err
}

func CreateCustomer(db *sql.DB, c *models.Customer) error {
	c.ID = uuid.New().String()
	now := time.Now()
	if c.Type == "" {
		c.Type = models.CustomerNew
	}
	c.Name = c.FullName()

	_, err := db.Exec(`
		INSERT INTO customers (id, user_id, first_name, last_name, email, phone, type, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.UserID, c.FirstName, c.LastName, c.Email, c.Phone, c.Type, c.Notes, now, now)
	return err
}

func GetCustomer(db *sql.DB, id string) (*models.Customer, error) {
	c, err := scanCustomer(db.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCustomer overwrites the non-empty fields of c onto the stored row.
func UpdateCustomer(db *sql.DB, id string, c models.Customer) (*models.Customer, error) {
	existing, err := GetCustomer(db, id)
	if err != nil {
		return nil, err
	}
	if c.FirstName != "" {
		existing.FirstName = c.FirstName
	}
	if c.LastName != "" {
		existing.LastName = c.LastName
	}
	if c.Email != "" {
		existing.Email = c.Email
	}
	if c.Phone != "" {
		existing.Phone = c.Phone
	}
	if c.Type != "" {
		existing.Type = c.Type
	}
	existing.Notes = c.Notes
	existing.Name = existing.FullName()

	_, err = db.Exec(`
		UPDATE customers SET first_name = ?, last_name = ?, email = ?, phone = ?, type = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, existing.FirstName, existing.LastName, existing.Email, existing.Phone, existing.Type, existing.Notes, time.Now(), id)
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func ListCustomersByType(db *sql.DB, userID string, t models.CustomerType) ([]models.Customer, error) {
	rows, err := db.Query(`
		SELECT `+customerColumns+` FROM customers
		WHERE user_id = ? AND type = ?
		ORDER BY created_at DESC
	`, userID, t)
	if err != nil {
		return nil, err
	}
	return collectCustomers(rows)
}

// SearchCustomers matches names, email, and phone case-insensitively.
func SearchCustomers(db *sql.DB, query string, limit int) ([]models.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := db.Query(`
		SELECT `+customerColumns+` FROM customers
		WHERE LOWER(first_name || ' ' || last_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?
		ORDER BY created_at DESC
		LIMIT ?
	`, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	return collectCustomers(rows)
}

func collectCustomers(rows *sql.Rows) ([]models.Customer, error) {
	defer rows.Close()
	customers := []models.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func CreateNote(db *sql.DB, customerID string, n *models.Note) error {
	if _, err := GetCustomer(db, customerID); err != nil {
		return err
	}
	n.ID = uuid.New().String()
	_, err := db.Exec(`
		INSERT INTO customer_notes (id, customer_id, title, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, n.ID, customerID, n.Title, n.Content, time.Now())
	return err
}

func ListNotes(db *sql.DB, customerID string) ([]models.Note, error) {
	rows, err := db.Query(`
		SELECT id, title, content FROM customer_notes
		WHERE customer_id = ?
		ORDER BY created_at ASC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
