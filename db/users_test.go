// ABOUTME: Tests for sandbox user accounts
// ABOUTME: Covers signup, login, profile edits, notifications, and password flows
package db

import (
	"errors"
	"testing"

	"github.com/harperreed/riwora/models"
)

func TestCreateUserAndAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := &models.User{FirstName: "Ada", LastName: "Lovelace", Email: " Ada@Example.com ", CompanyName: "Engines"}
	if err := CreateUser(db, user, "s3cret"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.ID == "" {
		t.Fatal("user ID was not set")
	}
	if user.Email != "ada@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}

	got, err := Authenticate(db, "ADA@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("expected %s, got %s", user.ID, got.ID)
	}

	if _, err := Authenticate(db, "ada@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := Authenticate(db, "nobody@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	dup := &models.User{FirstName: "A", LastName: "L", Email: "ada@example.com"}
	if err := CreateUser(db, dup, "x"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUpdateUserAndNotifications(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := &models.User{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"}
	if err := CreateUser(db, user, "pw"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := UpdateUser(db, user.ID, ProfileFields{CompanyName: "Navy"}); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if err := UpdateNotifications(db, user.ID, models.NotificationPrefs{NewMessages: true, NewTasks: true}); err != nil {
		t.Fatalf("UpdateNotifications failed: %v", err)
	}

	got, err := GetUser(db, user.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.CompanyName != "Navy" || got.FirstName != "Grace" {
		t.Errorf("unexpected profile: %+v", got)
	}
	if !got.Notifications.NewMessages || !got.Notifications.NewTasks || got.Notifications.PushNotifications {
		t.Errorf("unexpected notifications: %+v", got.Notifications)
	}

	if err := UpdateUser(db, "missing", ProfileFields{FirstName: "X"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := GetUser(db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPasswordFlows(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := &models.User{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com"}
	if err := CreateUser(db, user, "first"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := ChangePassword(db, user.ID, "nope", "second"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := ChangePassword(db, user.ID, "first", "second"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
	if _, err := Authenticate(db, "alan@example.com", "second"); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}

	token, err := CreateResetToken(db, "alan@example.com")
	if err != nil {
		t.Fatalf("CreateResetToken failed: %v", err)
	}
	if err := ResetPassword(db, token, "third"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}
	if _, err := Authenticate(db, "alan@example.com", "third"); err != nil {
		t.Errorf("login after reset failed: %v", err)
	}

	// Tokens are single use
	if err := ResetPassword(db, token, "fourth"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected reused token to fail, got %v", err)
	}
	if _, err := CreateResetToken(db, "ghost@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown email, got %v", err)
	}
}
