// ABOUTME: Sandbox messaging operations
// ABOUTME: Stores messages between a user and customers, ordered by date
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/riwora/models"
)

func CreateMessage(db *sql.DB, m *models.Message) error {
	m.ID = uuid.New().String()
	now := time.Now()
	m.Date = timestamp(now)

	_, err := db.Exec(`
		INSERT INTO messages (id, sender, receiver, message, date)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, m.Sender, m.Receiver, m.Message, now)
	return err
}

// ListMessagesBySender returns every message userID sent, oldest first.
func ListMessagesBySender(db *sql.DB, userID string) ([]models.Message, error) {
	rows, err := db.Query(`
		SELECT id, sender, receiver, message, date FROM messages
		WHERE sender = ?
		ORDER BY date ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

// Conversation returns messages in both directions between a and b.
func Conversation(db *sql.DB, a, b string) ([]models.Message, error) {
	rows, err := db.Query(`
		SELECT id, sender, receiver, message, date FROM messages
		WHERE (sender = ? AND receiver = ?) OR (sender = ? AND receiver = ?)
		ORDER BY date ASC
	`, a, b, b, a)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

func collectMessages(rows *sql.Rows) ([]models.Message, error) {
	defer rows.Close()
	msgs := []models.Message{}
	for rows.Next() {
		var m models.Message
		var date time.Time
		if err := rows.Scan(&m.ID, &m.Sender, &m.Receiver, &m.Message, &date); err != nil {
			return nil, err
		}
		m.Date = timestamp(date)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
