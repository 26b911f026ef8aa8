// ABOUTME: Sandbox user accounts: signup, login, profile, and password flows
// ABOUTME: Passwords are stored as bcrypt hashes
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/riwora/models"
	"golang.org/x/crypto/bcrypt"
)

// CreateUser registers user with password and sets user.ID.
func CreateUser(db *sql.DB, user *models.User, password string) error {
	email := strings.ToLower(strings.TrimSpace(user.Email))
	var exists int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.ID = uuid.New().String()
	user.Email = email
	_, err = db.Exec(`
		INSERT INTO users (id, first_name, last_name, company_name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, user.ID, user.FirstName, user.LastName, user.CompanyName, user.Email, string(hash), time.Now())
	return err
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, string, error) {
	u := &models.User{Notifications: &models.NotificationPrefs{}}
	var hash string
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.CompanyName, &u.Email, &hash,
		&u.Notifications.PushNotifications, &u.Notifications.NewMessages,
		&u.Notifications.NewCustomers, &u.Notifications.NewTasks)
	if err != nil {
		return nil, "", err
	}
	return u, hash, nil
}

const userColumns = `id, first_name, last_name, company_name, email, password_hash,
	push_notifications, new_messages, new_customers, new_tasks`

func GetUser(db *sql.DB, id string) (*models.User, error) {
	u, _, err := scanUser(db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

// Authenticate returns the user whose email and password match.
func Authenticate(db *sql.DB, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, hash, err := scanUser(db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// ProfileFields are the editable profile columns; empty values are skipped.
type ProfileFields struct {
	FirstName   string
	LastName    string
	Email       string
	CompanyName string
}

func UpdateUser(db *sql.DB, id string, f ProfileFields) error {
	sets := []string{}
	args := []any{}
	add := func(col, val string) {
		if val != "" {
			sets = append(sets, col+" = ?")
			args = append(args, val)
		}
	}
	add("first_name", f.FirstName)
	add("last_name", f.LastName)
	add("email", strings.ToLower(strings.TrimSpace(f.Email)))
	add("company_name", f.CompanyName)
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	res, err := db.Exec(`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return ErrEmailTaken
		}
		return err
	}
	return requireRow(res)
}

func UpdateNotifications(db *sql.DB, id string, p models.NotificationPrefs) error {
	res, err := db.Exec(`
		UPDATE users SET push_notifications = ?, new_messages = ?, new_customers = ?, new_tasks = ?
		WHERE id = ?
	`, p.PushNotifications, p.NewMessages, p.NewCustomers, p.NewTasks, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ChangePassword replaces the password after verifying current.
func ChangePassword(db *sql.DB, id, current, next string) error {
	var hash string
	err := db.QueryRow(`SELECT password_hash FROM users WHERE id = ?`, id).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	return setPassword(db, `id = ?`, id, next)
}

// CreateResetToken stores and returns a one-time reset token for email.
func CreateResetToken(db *sql.DB, email string) (string, error) {
	token := uuid.New().String()
	res, err := db.Exec(`UPDATE users SET reset_token = ? WHERE email = ?`, token, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", err
	}
	if err := requireRow(res); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword consumes token and sets a new password.
func ResetPassword(db *sql.DB, token, next string) error {
	if token == "" {
		return ErrNotFound
	}
	return setPassword(db, `reset_token = ?`, token, next)
}

func setPassword(db *sql.DB, where, arg, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	res, err := db.Exec(`UPDATE users SET password_hash = ?, reset_token = NULL WHERE `+where, string(hash), arg)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
