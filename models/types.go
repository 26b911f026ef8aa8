// ABOUTME: Data models for CRM entities exchanged with the REST API
// ABOUTME: Defines Customer, Deal, Task, Note, Message, User, and Dashboard structs
package models

import (
	"encoding/json"
	"strings"
	"time"
)

// CustomerType partitions customers into the three dashboard lists.
type CustomerType string

const (
	CustomerNew     CustomerType = "new"
	CustomerBeBack  CustomerType = "be_back"
	CustomerPending CustomerType = "pending"
)

// DealStatus is the only partition key used for deal routing.
type DealStatus string

const (
	DealOpen   DealStatus = "open"
	DealClosed DealStatus = "closed"
)

type Customer struct {
	ID        string       `json:"id"`
	FirstName string       `json:"first_name,omitempty"`
	LastName  string       `json:"last_name,omitempty"`
	Name      string       `json:"name,omitempty"`
	Email     string       `json:"email,omitempty"`
	Phone     string       `json:"phone,omitempty"`
	Type      CustomerType `json:"type,omitempty"`
	Notes     string       `json:"notes,omitempty"`
	UserID    string       `json:"user_id,omitempty"`
}

// UnmarshalJSON accepts both the snake_case list shape and the camelCase
// shape returned by the customer detail endpoint.
func (c *Customer) UnmarshalJSON(data []byte) error {
	type plain Customer
	var aux struct {
		plain
		CamelFirst string `json:"firstName"`
		CamelLast  string `json:"lastName"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Customer(aux.plain)
	if c.FirstName == "" {
		c.FirstName = aux.CamelFirst
	}
	if c.LastName == "" {
		c.LastName = aux.CamelLast
	}
	return nil
}

// Key returns the customer id.
func (c Customer) Key() string { return c.ID }

// FullName returns "First Last", falling back to the display name.
func (c Customer) FullName() string {
	full := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if full == "" {
		return c.Name
	}
	return full
}

type Deal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      DealStatus `json:"status"`
	UserID      string     `json:"user_id,omitempty"`
	CreatedAt   string     `json:"created_at,omitempty"`
}

func (d Deal) Key() string { return d.ID }

type Task struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Deadline    string       `json:"deadline,omitempty"`
	Description string       `json:"description,omitempty"`
	UserID      string       `json:"user_id,omitempty"`
	CreatedAt   string       `json:"created_at,omitempty"`
}

func (t Task) Key() string { return t.ID }

type Note struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (n Note) Key() string { return n.ID }

type Message struct {
	ID       string `json:"_id"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Message  string `json:"message"`
	Date     string `json:"date"`
}

func (m Message) Key() string { return m.ID }

// Time parses Date; the zero time is returned for unparseable values.
func (m Message) Time() time.Time {
	return ParseTime(m.Date)
}

// InboxEntry is the latest message exchanged with one customer.
type InboxEntry struct {
	Message
	CustomerName string `json:"customerName"`
}

// Key is the receiver: the inbox holds one entry per customer.
func (e InboxEntry) Key() string { return e.Receiver }

type Purchase struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	SKU   string `json:"sku"`
	Image string `json:"image,omitempty"`
}

func (p Purchase) Key() string { return p.ID }

type NotificationPrefs struct {
	PushNotifications bool `json:"pushNotifications"`
	NewMessages       bool `json:"newMessages"`
	NewCustomers      bool `json:"newCustomers"`
	NewTasks          bool `json:"newTasks"`
}

type User struct {
	ID            string             `json:"id"`
	FirstName     string             `json:"first_name"`
	LastName      string             `json:"last_name"`
	Email         string             `json:"email"`
	CompanyName   string             `json:"company_name,omitempty"`
	Notifications *NotificationPrefs `json:"notifications,omitempty"`
}

type Dashboard struct {
	NewCustomers     int    `json:"newCustomers"`
	PendingCustomers int    `json:"pendingCustomers"`
	BeBackCustomers  int    `json:"beBackCustomers"`
	ActiveListings   int    `json:"activeListings"`
	Sales            int64  `json:"sales"`
	OpenDeals        int    `json:"openDeals"`
	ClosedDeals      int    `json:"closedDeals"`
	Tasks            []Task `json:"tasks"`
}

// EmptyDashboard is the fallback shown when the aggregate cannot be fetched.
func EmptyDashboard() Dashboard {
	return Dashboard{Tasks: []Task{}}
}

type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	SKU   string `json:"sku,omitempty"`
	Price int64  `json:"price,omitempty"`
}

type SearchResults struct {
	Customers []Customer `json:"customers,omitempty"`
	Deals     []Deal     `json:"deals,omitempty"`
	Products  []Product  `json:"products,omitempty"`
}

// ParseTime accepts RFC3339 timestamps (with or without fractional seconds)
// and bare dates.
func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
